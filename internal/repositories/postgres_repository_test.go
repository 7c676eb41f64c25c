package repositories

import (
	"context"
	"os"
	"testing"

	"equipment-panel/internal/entities"
	"equipment-panel/pkg/constants"
	"equipment-panel/pkg/database/postgresql"
	apperrors "equipment-panel/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// openTestDB: тесты на реальном Postgres запускаются только при заданном TEST_DATABASE_URL.
func openTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL nije postavljen")
	}

	pool := postgresql.ConnectDB(dsn)
	t.Cleanup(pool.Close)
	require.NoError(t, postgresql.Migrate(pool))

	_, err := pool.Exec(context.Background(), "TRUNCATE TABLE equipments, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	return pool
}

func TestPostgresRepositories(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(pool, zap.NewNop())
	equipment := NewEquipmentRepository(pool, zap.NewNop())

	uid, err := users.CreateUser(ctx, &entities.User{Username: "ana", Password: "hash", Role: constants.RoleUser})
	require.NoError(t, err)
	_, err = users.CreateUser(ctx, &entities.User{Username: "ana", Password: "hash", Role: constants.RoleUser})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	eid, err := equipment.CreateEquipment(ctx, &entities.Equipment{
		Name: "Drill", SerialNumber: "SN1", Location: "Lab", Status: "ok", UserID: null.Uint64From(uid),
	})
	require.NoError(t, err)
	_, err = equipment.CreateEquipment(ctx, &entities.Equipment{Name: "Drill", SerialNumber: "SN1", Location: "Lab", Status: "ok"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	found, err := equipment.FindEquipment(ctx, eid)
	require.NoError(t, err)
	assert.Equal(t, null.StringFrom("ana"), found.Username)

	exists, err := equipment.ExistsBySerialNumber(ctx, "SN1", eid)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, users.UpdateRole(ctx, uid, constants.RoleAdmin))
	u, err := users.FindUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleAdmin, u.Role)

	require.NoError(t, users.DeleteUser(ctx, uid))
	items, err := equipment.GetEquipments(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.False(t, items[0].UserID.Valid)
	assert.False(t, items[0].Username.Valid)

	require.NoError(t, equipment.DeleteEquipment(ctx, eid))
	assert.ErrorIs(t, equipment.DeleteEquipment(ctx, eid), apperrors.ErrNotFound)
}
