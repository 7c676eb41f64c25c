package services

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"equipment-panel/internal/dto"
	"equipment-panel/internal/repositories"
	"equipment-panel/pkg/constants"
	apperrors "equipment-panel/pkg/errors"
	"equipment-panel/pkg/service"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type fixture struct {
	users     *UserService
	equipment *EquipmentService
	auth      *AuthService
	export    *ExportService
	userRepo  repositories.UserRepositoryInterface
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	nop := zap.NewNop()
	store := repositories.NewMemoryStore()
	userRepo := repositories.NewMemoryUserRepository(store)
	equipRepo := repositories.NewMemoryEquipmentRepository(store)
	jwtSvc := service.NewJWTService("secret", time.Hour, nop)

	equipment := NewEquipmentService(equipRepo, userRepo, nop)
	return &fixture{
		users:     NewUserService(userRepo, nop),
		equipment: equipment,
		auth:      NewAuthService(userRepo, repositories.NewMemoryCacheRepository(), jwtSvc, nop),
		export:    NewExportService(equipment, nop),
		userRepo:  userRepo,
	}
}

func (f *fixture) createUser(t *testing.T, username string, role constants.Role) uint64 {
	t.Helper()
	require.NoError(t, f.users.CreateUser(context.Background(), dto.CreateUserDTO{Username: username, Password: "lozinka", Role: role}))
	u, err := f.userRepo.FindByUsername(context.Background(), username)
	require.NoError(t, err)
	return u.ID
}

func httpErrorMessage(t *testing.T, err error) (int, string) {
	t.Helper()
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	return httpErr.Code, httpErr.Message
}

func TestUserService_CreateHashesPassword(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "ana", constants.RoleUser)

	u, err := f.userRepo.FindByUsername(context.Background(), "ana")
	require.NoError(t, err)
	assert.NotEqual(t, "lozinka", u.Password)
	assert.Contains(t, u.Password, "$2a$")
}

func TestUserService_DuplicateUsername(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "ana", constants.RoleUser)

	err := f.users.CreateUser(context.Background(), dto.CreateUserDTO{Username: "ana", Password: "x", Role: constants.RoleAdmin})
	code, msg := httpErrorMessage(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Korisničko ime već postoji", msg)
}

func TestUserService_UpdateRole(t *testing.T) {
	f := newFixture(t)
	id := f.createUser(t, "ana", constants.RoleUser)

	require.NoError(t, f.users.UpdateUserRole(context.Background(), id, constants.RoleAdmin))
	users, err := f.users.GetUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, constants.RoleAdmin, users[0].Role)

	var invalid *apperrors.InvalidInputError
	assert.ErrorAs(t, f.users.UpdateUserRole(context.Background(), id, "root"), &invalid)
	assert.ErrorIs(t, f.users.UpdateUserRole(context.Background(), 999, constants.RoleUser), apperrors.ErrNotFound)
}

func TestEquipmentService_CreateAndList(t *testing.T) {
	f := newFixture(t)
	owner := f.createUser(t, "ana", constants.RoleUser)
	ctx := context.Background()

	require.NoError(t, f.equipment.CreateEquipment(ctx, dto.CreateEquipmentDTO{Name: "Drill", SerialNumber: "SN1", Location: "Lab", Status: "ok", UserID: null.Uint64From(owner)}))
	require.NoError(t, f.equipment.CreateEquipment(ctx, dto.CreateEquipmentDTO{Name: "Saw", SerialNumber: "SN2", Location: "Lab", Status: "ok"}))

	items, err := f.equipment.GetEquipments(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "SN1", items[0].SerialNumber)
	assert.Equal(t, null.StringFrom("ana"), items[0].User)
	assert.False(t, items[1].User.Valid)
}

func TestEquipmentService_DuplicateSerial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	payload := dto.CreateEquipmentDTO{Name: "Drill", SerialNumber: "SN1", Location: "Lab", Status: "ok"}

	require.NoError(t, f.equipment.CreateEquipment(ctx, payload))
	code, msg := httpErrorMessage(t, f.equipment.CreateEquipment(ctx, payload))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Duplikat serijskog broja", msg)
}

func TestEquipmentService_UnknownOwnerIsDropped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.equipment.CreateEquipment(ctx, dto.CreateEquipmentDTO{Name: "Drill", SerialNumber: "SN1", Location: "Lab", Status: "ok", UserID: null.Uint64From(42)}))
	items, err := f.equipment.GetEquipments(ctx)
	require.NoError(t, err)
	assert.False(t, items[0].UserID.Valid)
}

func TestEquipmentService_UpdateKeepsOwnSerial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.equipment.CreateEquipment(ctx, dto.CreateEquipmentDTO{Name: "Drill", SerialNumber: "SN1", Location: "Lab", Status: "ok"}))
	items, err := f.equipment.GetEquipments(ctx)
	require.NoError(t, err)

	err = f.equipment.UpdateEquipment(ctx, items[0].ID, dto.UpdateEquipmentDTO{Name: "Drill", SerialNumber: "SN1", Location: "Servis", Status: "kvar"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.equipment.UpdateEquipment(ctx, 999, dto.UpdateEquipmentDTO{SerialNumber: "SN9"}), apperrors.ErrNotFound)
	assert.ErrorIs(t, f.equipment.DeleteEquipment(ctx, 999), apperrors.ErrNotFound)
}

func TestAuthService_LoginLogout(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "admin", constants.RoleAdmin)
	ctx := context.Background()

	_, _, err := f.auth.Login(ctx, dto.LoginDTO{Username: "admin", Password: "pogresno"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, _, err = f.auth.Login(ctx, dto.LoginDTO{Username: "nepostoji", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	token, me, err := f.auth.Login(ctx, dto.LoginDTO{Username: "admin", Password: "lozinka"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, me.IsAdmin())

	revoked, err := f.auth.IsRevoked(ctx, "sid-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, f.auth.Logout(ctx, "sid-1", time.Now().Add(time.Minute)))
	revoked, err = f.auth.IsRevoked(ctx, "sid-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// уже истёкшую сессию отзывать незачем
	require.NoError(t, f.auth.Logout(ctx, "sid-2", time.Now().Add(-time.Minute)))
	revoked, err = f.auth.IsRevoked(ctx, "sid-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestExportService_EquipmentXLSX(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.equipment.CreateEquipment(ctx, dto.CreateEquipmentDTO{Name: "Drill", SerialNumber: "SN1", Location: "Lab", Status: "ok"}))

	data, err := f.export.EquipmentXLSX(ctx)
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Oprema")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ID", "Naziv", "Serijski broj", "Lokacija", "Status", "Korisnik"}, rows[0])
	assert.Equal(t, "SN1", rows[1][2])
}

func TestAuthService_CurrentUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createUser(t, "ana", constants.RoleUser)

	name, role, err := f.auth.CurrentUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ana", name)
	assert.Equal(t, constants.RoleUser, role)

	require.NoError(t, f.users.UpdateUserRole(ctx, id, constants.RoleAdmin))
	_, role, err = f.auth.CurrentUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleAdmin, role)

	require.NoError(t, f.users.DeleteUser(ctx, id))
	_, _, err = f.auth.CurrentUser(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
