package repositories

import (
	"context"
	"errors"
	"fmt"

	"equipment-panel/internal/entities"
	"equipment-panel/pkg/constants"
	apperrors "equipment-panel/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const userTableRepo = "users"

var userSelectColumns = []string{"id", "username", "password", "role", "created_at", "updated_at"}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context) ([]entities.User, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	CreateUser(ctx context.Context, entity *entities.User) (uint64, error)
	UpdateRole(ctx context.Context, id uint64, role constants.Role) error
	DeleteUser(ctx context.Context, id uint64) error
}

type UserRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var (
		user entities.User
		role string
	)
	err := row.Scan(&user.ID, &user.Username, &user.Password, &role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	user.Role = constants.Role(role)
	return &user, nil
}

func (r *UserRepository) GetUsers(ctx context.Context) ([]entities.User, error) {
	query, args, err := psql.Select(userSelectColumns...).From(userTableRepo).OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Выполнение SQL-запроса списка пользователей", zap.String("query", query))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("čitanje korisnika: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	query, args, err := psql.Select(userSelectColumns...).From(userTableRepo).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	query, args, err := psql.Select(userSelectColumns...).From(userTableRepo).Where(sq.Eq{"username": username}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *UserRepository) CreateUser(ctx context.Context, entity *entities.User) (uint64, error) {
	query, args, err := psql.Insert(userTableRepo).
		Columns("username", "password", "role").
		Values(entity.Username, entity.Password, string(entity.Role)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.ErrConflict
		}
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uint64, role constants.Role) error {
	query, args, err := psql.Update(userTableRepo).
		Set("role", string(role)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteUser: оборудование пользователя остаётся, user_id обнуляется (ON DELETE SET NULL).
func (r *UserRepository) DeleteUser(ctx context.Context, id uint64) error {
	query, args, err := psql.Delete(userTableRepo).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
