package repositories

import (
	"context"
	"errors"
	"fmt"

	"equipment-panel/internal/entities"
	apperrors "equipment-panel/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const equipmentTable = "equipments"

var equipmentSelectColumns = []string{
	"e.id", "e.name", "e.serial_number", "e.location", "e.status", "e.user_id",
	"e.created_at", "e.updated_at", "u.username",
}

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	ExistsBySerialNumber(ctx context.Context, serialNumber string, excludeID uint64) (bool, error)
	CreateEquipment(ctx context.Context, entity *entities.Equipment) (uint64, error)
	UpdateEquipment(ctx context.Context, entity *entities.Equipment) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func selectEquipment() sq.SelectBuilder {
	return psql.Select(equipmentSelectColumns...).
		From(equipmentTable + " e").
		LeftJoin("users u ON u.id = e.user_id")
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.Name, &e.SerialNumber, &e.Location, &e.Status, &e.UserID,
		&e.CreatedAt, &e.UpdatedAt, &e.Username,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context) ([]entities.Equipment, error) {
	query, args, err := selectEquipment().OrderBy("e.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("sastavljanje upita za opremu: %w", err)
	}
	r.logger.Debug("Выполнение SQL-запроса списка оборудования", zap.String("query", query))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("čitanje opreme: %w", err)
	}
	defer rows.Close()

	items := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query, args, err := selectEquipment().Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("sastavljanje upita za opremu: %w", err)
	}
	return scanEquipment(r.storage.QueryRow(ctx, query, args...))
}

func (r *EquipmentRepository) ExistsBySerialNumber(ctx context.Context, serialNumber string, excludeID uint64) (bool, error) {
	builder := psql.Select("1").From(equipmentTable).Where(sq.Eq{"serial_number": serialNumber}).Limit(1)
	if excludeID != 0 {
		builder = builder.Where(sq.NotEq{"id": excludeID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.storage.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, entity *entities.Equipment) (uint64, error) {
	query, args, err := psql.Insert(equipmentTable).
		Columns("name", "serial_number", "location", "status", "user_id").
		Values(entity.Name, entity.SerialNumber, entity.Location, entity.Status, entity.UserID).
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

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, entity *entities.Equipment) error {
	query, args, err := psql.Update(equipmentTable).
		Set("name", entity.Name).
		Set("serial_number", entity.SerialNumber).
		Set("location", entity.Location).
		Set("status", entity.Status).
		Set("user_id", entity.UserID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": entity.ID}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	query, args, err := psql.Delete(equipmentTable).Where(sq.Eq{"id": id}).ToSql()
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
