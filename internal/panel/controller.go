package panel

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"equipment-panel/internal/dto"
	"equipment-panel/pkg/constants"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

const (
	alertPrefix         = "Greška: "
	fallbackCreateError = "nepoznata greška"
	roleUpdateFailed    = "Greška pri izmeni uloge"
)

// State - состояние страницы для одного запроса панели.
// Ошибки пользователю видны только через Alert.
type State struct {
	Viewer        dto.MeDTO
	Equipment     []dto.EquipmentDTO
	Users         []dto.UserDTO
	EquipmentForm url.Values
	UserForm      url.Values
	Alert         string
}

type Controller struct {
	api    API
	logger *zap.Logger
	state  State
}

func NewController(api API, logger *zap.Logger) *Controller {
	return &Controller{api: api, logger: logger}
}

func (c *Controller) State() State {
	return c.state
}

// Init определяет зрителя и загружает коллекции. Ошибка возвращается,
// только если не удалось получить текущего пользователя.
func (c *Controller) Init(ctx context.Context) error {
	me, err := c.api.Me(ctx)
	if err != nil {
		return err
	}
	c.state.Viewer = *me

	c.LoadEquipment(ctx)
	if me.IsAdmin() {
		c.LoadUsers(ctx)
	}
	return nil
}

// LoadEquipment при ошибке оставляет таблицу как есть.
func (c *Controller) LoadEquipment(ctx context.Context) {
	items, err := c.api.ListEquipment(ctx)
	if err != nil {
		c.logger.Warn("Ошибка при загрузке оборудования", zap.Error(err))
		return
	}
	c.state.Equipment = items
}

// LoadUsers загружает список только для администратора: остальным API отвечает 403.
func (c *Controller) LoadUsers(ctx context.Context) {
	if !c.state.Viewer.IsAdmin() {
		return
	}
	users, err := c.api.ListUsers(ctx)
	if err != nil {
		c.logger.Warn("Ошибка при загрузке пользователей", zap.Error(err))
		return
	}
	c.state.Users = users
}

func (c *Controller) SubmitEquipment(ctx context.Context, form url.Values) {
	if err := c.api.CreateEquipment(ctx, EquipmentPayload(form)); err != nil {
		c.logger.Info("Оборудование не создано", zap.Error(err))
		c.state.EquipmentForm = form
		c.state.Alert = createFailureMessage(err)
		return
	}
	c.state.EquipmentForm = nil
	c.LoadEquipment(ctx)
}

func (c *Controller) SubmitUser(ctx context.Context, form url.Values) {
	if err := c.api.CreateUser(ctx, UserPayload(form)); err != nil {
		c.logger.Info("Пользователь не создан", zap.Error(err))
		kept := url.Values{}
		for k, v := range form {
			if k != "password" {
				kept[k] = v
			}
		}
		c.state.UserForm = kept
		c.state.Alert = createFailureMessage(err)
		return
	}
	c.state.UserForm = nil
	c.LoadUsers(ctx)
}

// DeleteEquipment: ошибка только логируется.
func (c *Controller) DeleteEquipment(ctx context.Context, id uint64) {
	if err := c.api.DeleteEquipment(ctx, id); err != nil {
		c.logger.Warn("Ошибка при удалении оборудования", zap.Uint64("id", id), zap.Error(err))
		return
	}
	c.LoadEquipment(ctx)
}

// DeleteUser перезагружает и оборудование: у техники удалённого пользователя владелец обнуляется.
func (c *Controller) DeleteUser(ctx context.Context, id uint64) {
	if err := c.api.DeleteUser(ctx, id); err != nil {
		c.logger.Warn("Ошибка при удалении пользователя", zap.Uint64("id", id), zap.Error(err))
		return
	}
	c.LoadUsers(ctx)
	c.LoadEquipment(ctx)
}

func (c *Controller) UpdateUserRole(ctx context.Context, id uint64, role constants.Role) {
	if err := c.api.UpdateUserRole(ctx, id, role); err != nil {
		c.logger.Warn("Ошибка при изменении роли", zap.Uint64("id", id), zap.Error(err))
		c.state.Alert = roleUpdateFailed
		return
	}
	c.LoadUsers(ctx)
}

// ExportCSV строит CSV из отрендеренной таблицы оборудования, а не из данных.
func (c *Controller) ExportCSV() (string, error) {
	var buf bytes.Buffer
	if err := RenderPage(&buf, c.state); err != nil {
		return "", err
	}
	rows, err := TableText(&buf, EquipmentTableID)
	if err != nil {
		return "", err
	}
	return ExportCSV(rows), nil
}

// EquipmentPayload: пустой или нечисловой user_id становится null.
func EquipmentPayload(form url.Values) dto.CreateEquipmentDTO {
	payload := dto.CreateEquipmentDTO{
		Name:         strings.TrimSpace(form.Get("name")),
		SerialNumber: strings.TrimSpace(form.Get("serial_number")),
		Location:     strings.TrimSpace(form.Get("location")),
		Status:       strings.TrimSpace(form.Get("status")),
	}
	if id, err := strconv.ParseUint(form.Get("user_id"), 10, 64); err == nil && id != 0 {
		payload.UserID = null.Uint64From(id)
	}
	return payload
}

func UserPayload(form url.Values) dto.CreateUserDTO {
	return dto.CreateUserDTO{
		Username: strings.TrimSpace(form.Get("username")),
		Password: form.Get("password"),
		Role:     constants.Role(form.Get("role")),
	}
}

func createFailureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return alertPrefix + apiErr.Message
	}
	return alertPrefix + fallbackCreateError
}

func roleOrDefault(raw string) constants.Role {
	role := constants.Role(raw)
	if role.IsValid() {
		return role
	}
	return constants.RoleUser
}
