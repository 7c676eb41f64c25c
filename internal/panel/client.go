package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"equipment-panel/internal/dto"
	"equipment-panel/pkg/constants"

	"go.uber.org/zap"
)

const maxErrorBody = 64 << 10

// APIError - единый тип для любых сбоев обращения к REST API:
// транспорт (StatusCode == 0), не-2xx ответ или битое тело.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("api: status %d: %v", e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// IsUnauthorized сообщает, что сессия отсутствует, истекла или отозвана.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// API - операции доступа к данным, которыми пользуется Controller.
type API interface {
	Me(ctx context.Context) (*dto.MeDTO, error)
	ListEquipment(ctx context.Context) ([]dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) error
	DeleteEquipment(ctx context.Context, id uint64) error
	ListUsers(ctx context.Context) ([]dto.UserDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) error
	UpdateUserRole(ctx context.Context, id uint64, role constants.Role) error
	DeleteUser(ctx context.Context, id uint64) error
}

// Client ходит в REST API от имени одной сессии. Повторов нет.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    string
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			// /logout отвечает редиректом на /login: он нужен как есть, а не HTML логина
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger,
	}
}

// WithSession возвращает копию клиента, которая отправляет cookie сессии.
func (c *Client) WithSession(token string) *Client {
	cp := *c
	cp.session = token
	return &cp
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Err: fmt.Errorf("encode %s %s: %w", method, path, err)}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &APIError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: c.session})
	}
	return req, nil
}

// send выполняет запрос; любой ответ вне 2xx превращается в *APIError.
func (c *Client) send(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("API недоступен", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, &APIError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp, nil
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		apiErr.Err = err
		return apiErr
	}
	var payload dto.ErrorDTO
	if json.Unmarshal(raw, &payload) == nil {
		apiErr.Message = payload.Error
	}
	return apiErr
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode %s %s: %w", method, path, err)}
	}
	return nil
}

// Login возвращает токен сессии из Set-Cookie и текущего пользователя.
func (c *Client) Login(ctx context.Context, username, password string) (string, *dto.MeDTO, error) {
	resp, err := c.send(ctx, http.MethodPost, "/api/auth/login", dto.LoginDTO{Username: username, Password: password})
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	var me dto.MeDTO
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return "", nil, &APIError{StatusCode: resp.StatusCode, Err: err}
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == constants.SessionCookieName && cookie.Value != "" {
			return cookie.Value, &me, nil
		}
	}
	return "", nil, &APIError{StatusCode: resp.StatusCode, Err: errors.New("odgovor bez cookie sesije")}
}

func (c *Client) Me(ctx context.Context) (*dto.MeDTO, error) {
	var me dto.MeDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/me", nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

func (c *Client) ListEquipment(ctx context.Context) ([]dto.EquipmentDTO, error) {
	var items []dto.EquipmentDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/equipment", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) error {
	return c.doJSON(ctx, http.MethodPost, "/api/equipment", payload, nil)
}

func (c *Client) DeleteEquipment(ctx context.Context, id uint64) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/equipment/"+strconv.FormatUint(id, 10), nil, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]dto.UserDTO, error) {
	var users []dto.UserDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, payload dto.CreateUserDTO) error {
	return c.doJSON(ctx, http.MethodPost, "/api/users", payload, nil)
}

func (c *Client) UpdateUserRole(ctx context.Context, id uint64, role constants.Role) error {
	return c.doJSON(ctx, http.MethodPut, "/api/users/"+strconv.FormatUint(id, 10), dto.UpdateUserRoleDTO{Role: role}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id uint64) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/users/"+strconv.FormatUint(id, 10), nil, nil)
}

// Logout: сервер отвечает 302 на /login. Ошибкой считается только сбой транспорта.
func (c *Client) Logout(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/logout", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) ExportEquipmentXLSX(ctx context.Context) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, "/api/equipment/export", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Err: err}
	}
	return data, nil
}
