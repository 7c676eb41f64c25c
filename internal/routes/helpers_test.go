package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"equipment-panel/internal/dto"
	"equipment-panel/internal/repositories"
	"equipment-panel/pkg/constants"
	"equipment-panel/pkg/customvalidator"
	"equipment-panel/pkg/service"
	"equipment-panel/pkg/utils"
	"equipment-panel/seeders"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testAdminName     = "admin"
	testAdminPassword = "admin123"
	testUserName      = "ana"
	testUserPassword  = "ana123"
)

type testAPI struct {
	Echo      *echo.Echo
	Services  *Services
	UserRepo  repositories.UserRepositoryInterface
	EquipRepo repositories.EquipmentRepositoryInterface
}

// newTestAPI собирает API на хранилище в памяти с администратором и обычным пользователем.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	e := echo.New()
	v := validator.New()
	require.NoError(t, customvalidator.RegisterCustomValidations(v))
	e.Validator = utils.NewValidator(v)

	nop := zap.NewNop()
	loggers := &Loggers{Main: nop, Auth: nop, Equipment: nop, User: nop}

	store := repositories.NewMemoryStore()
	userRepo := repositories.NewMemoryUserRepository(store)
	equipRepo := repositories.NewMemoryEquipmentRepository(store)
	jwtSvc := service.NewJWTService("test-secret", time.Hour, nop)

	svcs := NewServices(equipRepo, userRepo, repositories.NewMemoryCacheRepository(), jwtSvc, loggers)
	RegisterAPIRoutes(e, svcs, jwtSvc, loggers, false)

	ctx := context.Background()
	require.NoError(t, seeders.SeedAdminUser(ctx, userRepo, testAdminName, testAdminPassword))
	require.NoError(t, svcs.User.CreateUser(ctx, dto.CreateUserDTO{
		Username: testUserName,
		Password: testUserPassword,
		Role:     constants.RoleUser,
	}))

	return &testAPI{Echo: e, Services: svcs, UserRepo: userRepo, EquipRepo: equipRepo}
}

func doRequest(e *echo.Echo, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionFrom(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == constants.SessionCookieName && c.Value != "" {
			return c
		}
	}
	return nil
}

func loginAs(t *testing.T, e *echo.Echo, username, password string) *http.Cookie {
	t.Helper()
	rec := doRequest(e, http.MethodPost, "/api/auth/login", dto.LoginDTO{Username: username, Password: password}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookie := sessionFrom(rec)
	require.NotNil(t, cookie)
	return &http.Cookie{Name: cookie.Name, Value: cookie.Value}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

func uitoa(v uint64) string {
	return strconv.FormatUint(v, 10)
}
