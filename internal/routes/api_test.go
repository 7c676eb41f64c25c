package routes

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"equipment-panel/internal/dto"
	"equipment-panel/pkg/constants"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

// APITestSuite гоняет REST-контракт целиком на хранилище в памяти.
type APITestSuite struct {
	suite.Suite
	API         *testAPI
	AdminCookie *http.Cookie
	UserCookie  *http.Cookie
	UserID      uint64
}

func (s *APITestSuite) SetupTest() {
	s.API = newTestAPI(s.T())
	s.AdminCookie = loginAs(s.T(), s.API.Echo, testAdminName, testAdminPassword)
	s.UserCookie = loginAs(s.T(), s.API.Echo, testUserName, testUserPassword)

	user, err := s.API.UserRepo.FindByUsername(context.Background(), testUserName)
	s.Require().NoError(err)
	s.UserID = user.ID
}

func (s *APITestSuite) createEquipment(serial string, userID null.Uint64) {
	rec := doRequest(s.API.Echo, http.MethodPost, "/api/equipment", dto.CreateEquipmentDTO{
		Name:         "Bušilica",
		SerialNumber: serial,
		Location:     "Magacin",
		Status:       "aktivna",
		UserID:       userID,
	}, s.AdminCookie)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
}

func (s *APITestSuite) listEquipment() []dto.EquipmentDTO {
	rec := doRequest(s.API.Echo, http.MethodGet, "/api/equipment", nil, s.UserCookie)
	s.Require().Equal(http.StatusOK, rec.Code)
	var items []dto.EquipmentDTO
	decodeBody(s.T(), rec, &items)
	return items
}

func (s *APITestSuite) TestEquipmentRequiresSession() {
	rec := doRequest(s.API.Echo, http.MethodGet, "/api/equipment", nil, nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	var body dto.ErrorDTO
	decodeBody(s.T(), rec, &body)
	s.NotEmpty(body.Error)
}

func (s *APITestSuite) TestCreateEquipment() {
	rec := doRequest(s.API.Echo, http.MethodPost, "/api/equipment", dto.CreateEquipmentDTO{
		Name: "Bušilica", SerialNumber: "SN-1", Location: "Magacin", Status: "aktivna",
	}, s.AdminCookie)
	s.Equal(http.StatusCreated, rec.Code)

	var msg dto.MessageDTO
	decodeBody(s.T(), rec, &msg)
	s.Equal("Oprema dodata", msg.Message)

	list := doRequest(s.API.Echo, http.MethodGet, "/api/equipment", nil, s.UserCookie)
	s.Equal(http.StatusOK, list.Code)
	s.Contains(list.Body.String(), `"user":null`)
	s.Contains(list.Body.String(), `"user_id":null`)
}

func (s *APITestSuite) TestCreateEquipmentWithOwner() {
	s.createEquipment("SN-1", null.Uint64From(s.UserID))

	items := s.listEquipment()
	s.Require().Len(items, 1)
	s.Equal(null.StringFrom(testUserName), items[0].User)
	s.Equal(null.Uint64From(s.UserID), items[0].UserID)
}

func (s *APITestSuite) TestCreateEquipmentUnknownOwnerStoredAsNull() {
	s.createEquipment("SN-1", null.Uint64From(9999))

	items := s.listEquipment()
	s.Require().Len(items, 1)
	s.False(items[0].UserID.Valid)
	s.False(items[0].User.Valid)
}

func (s *APITestSuite) TestCreateEquipmentDuplicateSerial() {
	s.createEquipment("SN-1", null.Uint64{})

	rec := doRequest(s.API.Echo, http.MethodPost, "/api/equipment", dto.CreateEquipmentDTO{
		Name: "Druga", SerialNumber: "SN-1", Location: "Lab", Status: "ok",
	}, s.AdminCookie)
	s.Equal(http.StatusBadRequest, rec.Code)

	var body dto.ErrorDTO
	decodeBody(s.T(), rec, &body)
	s.Equal("Duplikat serijskog broja", body.Error)
}

func (s *APITestSuite) TestCreateEquipmentValidation() {
	rec := doRequest(s.API.Echo, http.MethodPost, "/api/equipment", dto.CreateEquipmentDTO{SerialNumber: "SN-1"}, s.AdminCookie)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestMutationsRequireAdmin() {
	s.createEquipment("SN-1", null.Uint64{})
	id := s.listEquipment()[0].ID

	cases := []struct {
		method, path string
		body         interface{}
	}{
		{http.MethodPost, "/api/equipment", dto.CreateEquipmentDTO{Name: "a", SerialNumber: "b", Location: "c", Status: "d"}},
		{http.MethodPut, "/api/equipment/" + uitoa(id), dto.UpdateEquipmentDTO{Name: "a", SerialNumber: "b", Location: "c", Status: "d"}},
		{http.MethodDelete, "/api/equipment/" + uitoa(id), nil},
		{http.MethodGet, "/api/users", nil},
		{http.MethodPost, "/api/users", dto.CreateUserDTO{Username: "x", Password: "y", Role: constants.RoleUser}},
		{http.MethodPut, "/api/users/" + uitoa(s.UserID), dto.UpdateUserRoleDTO{Role: constants.RoleAdmin}},
		{http.MethodDelete, "/api/users/" + uitoa(s.UserID), nil},
	}
	for _, tc := range cases {
		rec := doRequest(s.API.Echo, tc.method, tc.path, tc.body, s.UserCookie)
		s.Equal(http.StatusForbidden, rec.Code, "%s %s", tc.method, tc.path)
	}
	s.Len(s.listEquipment(), 1)
}

func (s *APITestSuite) TestUpdateEquipment() {
	s.createEquipment("SN-1", null.Uint64{})
	s.createEquipment("SN-2", null.Uint64{})
	items := s.listEquipment()

	rec := doRequest(s.API.Echo, http.MethodPut, "/api/equipment/"+uitoa(items[0].ID), dto.UpdateEquipmentDTO{
		Name: "Bušilica", SerialNumber: "SN-1", Location: "Servis", Status: "na popravci", UserID: null.Uint64From(s.UserID),
	}, s.AdminCookie)
	s.Equal(http.StatusOK, rec.Code, rec.Body.String())

	updated := s.listEquipment()[0]
	s.Equal("Servis", updated.Location)
	s.Equal(null.StringFrom(testUserName), updated.User)

	dup := doRequest(s.API.Echo, http.MethodPut, "/api/equipment/"+uitoa(items[0].ID), dto.UpdateEquipmentDTO{
		Name: "x", SerialNumber: "SN-2", Location: "x", Status: "x",
	}, s.AdminCookie)
	s.Equal(http.StatusBadRequest, dup.Code)

	missing := doRequest(s.API.Echo, http.MethodPut, "/api/equipment/9999", dto.UpdateEquipmentDTO{
		Name: "x", SerialNumber: "SN-9", Location: "x", Status: "x",
	}, s.AdminCookie)
	s.Equal(http.StatusNotFound, missing.Code)
}

func (s *APITestSuite) TestDeleteEquipment() {
	s.createEquipment("SN-1", null.Uint64{})
	id := s.listEquipment()[0].ID

	rec := doRequest(s.API.Echo, http.MethodDelete, "/api/equipment/"+uitoa(id), nil, s.AdminCookie)
	s.Equal(http.StatusOK, rec.Code)
	s.Empty(s.listEquipment())

	again := doRequest(s.API.Echo, http.MethodDelete, "/api/equipment/"+uitoa(id), nil, s.AdminCookie)
	s.Equal(http.StatusNotFound, again.Code)

	bad := doRequest(s.API.Echo, http.MethodDelete, "/api/equipment/abc", nil, s.AdminCookie)
	s.Equal(http.StatusBadRequest, bad.Code)
}

func (s *APITestSuite) TestListUsersHidesPasswords() {
	rec := doRequest(s.API.Echo, http.MethodGet, "/api/users", nil, s.AdminCookie)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.NotContains(rec.Body.String(), "password")
	s.NotContains(rec.Body.String(), "$2a$")

	var users []dto.UserDTO
	decodeBody(s.T(), rec, &users)
	s.Require().Len(users, 2)
	s.Equal(testAdminName, users[0].Username)
	s.Equal(constants.RoleAdmin, users[0].Role)
}

func (s *APITestSuite) TestCreateUser() {
	rec := doRequest(s.API.Echo, http.MethodPost, "/api/users", dto.CreateUserDTO{
		Username: "marko", Password: "m123", Role: constants.RoleUser,
	}, s.AdminCookie)
	s.Equal(http.StatusCreated, rec.Code)

	var msg dto.MessageDTO
	decodeBody(s.T(), rec, &msg)
	s.Equal("Korisnik dodat", msg.Message)

	loginAs(s.T(), s.API.Echo, "marko", "m123")
}

func (s *APITestSuite) TestCreateUserDuplicateAndInvalidRole() {
	dup := doRequest(s.API.Echo, http.MethodPost, "/api/users", dto.CreateUserDTO{
		Username: testUserName, Password: "x", Role: constants.RoleUser,
	}, s.AdminCookie)
	s.Equal(http.StatusBadRequest, dup.Code)
	var body dto.ErrorDTO
	decodeBody(s.T(), dup, &body)
	s.Equal("Korisničko ime već postoji", body.Error)

	badRole := doRequest(s.API.Echo, http.MethodPost, "/api/users", map[string]string{
		"username": "petar", "password": "x", "role": "root",
	}, s.AdminCookie)
	s.Equal(http.StatusBadRequest, badRole.Code)
}

func (s *APITestSuite) TestUpdateUserRole() {
	rec := doRequest(s.API.Echo, http.MethodPut, "/api/users/"+uitoa(s.UserID), dto.UpdateUserRoleDTO{Role: constants.RoleAdmin}, s.AdminCookie)
	s.Equal(http.StatusOK, rec.Code)
	var msg dto.MessageDTO
	decodeBody(s.T(), rec, &msg)
	s.Equal("Uloga izmenjena", msg.Message)

	user, err := s.API.UserRepo.FindUser(context.Background(), s.UserID)
	s.Require().NoError(err)
	s.Equal(constants.RoleAdmin, user.Role)

	bad := doRequest(s.API.Echo, http.MethodPut, "/api/users/"+uitoa(s.UserID), map[string]string{"role": "root"}, s.AdminCookie)
	s.Equal(http.StatusBadRequest, bad.Code)

	missing := doRequest(s.API.Echo, http.MethodPut, "/api/users/9999", dto.UpdateUserRoleDTO{Role: constants.RoleUser}, s.AdminCookie)
	s.Equal(http.StatusNotFound, missing.Code)
}

func (s *APITestSuite) TestDeleteUserDetachesEquipment() {
	s.createEquipment("SN-1", null.Uint64From(s.UserID))

	rec := doRequest(s.API.Echo, http.MethodDelete, "/api/users/"+uitoa(s.UserID), nil, s.AdminCookie)
	s.Equal(http.StatusOK, rec.Code)

	adminView := doRequest(s.API.Echo, http.MethodGet, "/api/equipment", nil, s.AdminCookie)
	var items []dto.EquipmentDTO
	decodeBody(s.T(), adminView, &items)
	s.Require().Len(items, 1)
	s.False(items[0].UserID.Valid)
	s.False(items[0].User.Valid)
}

func (s *APITestSuite) TestRoleChangeAndDeletionApplyToOpenSessions() {
	ctx := context.Background()
	s.Require().NoError(s.API.Services.User.CreateUser(ctx, dto.CreateUserDTO{Username: "bob", Password: "bob123", Role: constants.RoleAdmin}))
	bob, err := s.API.UserRepo.FindByUsername(ctx, "bob")
	s.Require().NoError(err)
	bobCookie := loginAs(s.T(), s.API.Echo, "bob", "bob123")

	demote := doRequest(s.API.Echo, http.MethodPut, "/api/users/"+uitoa(bob.ID), dto.UpdateUserRoleDTO{Role: constants.RoleUser}, s.AdminCookie)
	s.Require().Equal(http.StatusOK, demote.Code)

	create := doRequest(s.API.Echo, http.MethodPost, "/api/equipment", dto.CreateEquipmentDTO{
		Name: "Testera", SerialNumber: "SN-B", Location: "Magacin", Status: "aktivna",
	}, bobCookie)
	s.Equal(http.StatusForbidden, create.Code)

	meRec := doRequest(s.API.Echo, http.MethodGet, "/api/me", nil, bobCookie)
	s.Require().Equal(http.StatusOK, meRec.Code)
	var me dto.MeDTO
	decodeBody(s.T(), meRec, &me)
	s.Equal(constants.RoleUser, me.Role)

	del := doRequest(s.API.Echo, http.MethodDelete, "/api/users/"+uitoa(bob.ID), nil, s.AdminCookie)
	s.Require().Equal(http.StatusOK, del.Code)

	s.Equal(http.StatusUnauthorized, doRequest(s.API.Echo, http.MethodGet, "/api/me", nil, bobCookie).Code)
	s.Equal(http.StatusUnauthorized, doRequest(s.API.Echo, http.MethodDelete, "/api/equipment/1", nil, bobCookie).Code)
}

func (s *APITestSuite) TestLoginWrongPassword() {
	rec := doRequest(s.API.Echo, http.MethodPost, "/api/auth/login", dto.LoginDTO{Username: testAdminName, Password: "pogresno"}, nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	var body dto.ErrorDTO
	decodeBody(s.T(), rec, &body)
	s.Equal("Pogrešni podaci", body.Error)
	s.Nil(sessionFrom(rec))
}

func (s *APITestSuite) TestMe() {
	rec := doRequest(s.API.Echo, http.MethodGet, "/api/me", nil, s.UserCookie)
	s.Require().Equal(http.StatusOK, rec.Code)

	var me dto.MeDTO
	decodeBody(s.T(), rec, &me)
	s.Equal(testUserName, me.Username)
	s.Equal(constants.RoleUser, me.Role)
	s.False(me.IsAdmin())
}

func (s *APITestSuite) TestLogoutRevokesSession() {
	rec := doRequest(s.API.Echo, http.MethodPost, "/logout", nil, s.UserCookie)
	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/login", rec.Header().Get("Location"))

	after := doRequest(s.API.Echo, http.MethodGet, "/api/equipment", nil, s.UserCookie)
	s.Equal(http.StatusUnauthorized, after.Code)

	// другая сессия продолжает работать
	admin := doRequest(s.API.Echo, http.MethodGet, "/api/equipment", nil, s.AdminCookie)
	s.Equal(http.StatusOK, admin.Code)
}

func (s *APITestSuite) TestLogoutWithoutSessionRedirects() {
	rec := doRequest(s.API.Echo, http.MethodPost, "/logout", nil, nil)
	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/login", rec.Header().Get("Location"))
}

func (s *APITestSuite) TestExportEquipmentXLSX() {
	s.createEquipment("SN-1", null.Uint64From(s.UserID))

	rec := doRequest(s.API.Echo, http.MethodGet, "/api/equipment/export", nil, s.UserCookie)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Content-Disposition"), constants.XLSXExportFileName)

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	s.Require().NoError(err)
	defer f.Close()

	header, err := f.GetCellValue("Oprema", "C1")
	s.Require().NoError(err)
	s.Equal("Serijski broj", header)

	serial, err := f.GetCellValue("Oprema", "C2")
	s.Require().NoError(err)
	s.Equal("SN-1", serial)

	owner, err := f.GetCellValue("Oprema", "F2")
	s.Require().NoError(err)
	s.Equal(testUserName, owner)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
