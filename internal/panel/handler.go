package panel

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"equipment-panel/pkg/constants"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler - HTTP-поверхность панели. На каждый запрос создаётся свой Controller.
type Handler struct {
	client       *Client
	secureCookie bool
	logger       *zap.Logger
}

func NewHandler(client *Client, secureCookie bool, logger *zap.Logger) *Handler {
	return &Handler{client: client, secureCookie: secureCookie, logger: logger}
}

func (h *Handler) sessionCookie(value string, expires time.Time) *http.Cookie {
	cookie := new(http.Cookie)
	cookie.Name = constants.SessionCookieName
	cookie.Value = value
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.Secure = h.secureCookie
	cookie.SameSite = http.SameSiteLaxMode
	cookie.Expires = expires
	if value == "" {
		cookie.MaxAge = -1
	}
	return cookie
}

func (h *Handler) session(c echo.Context) string {
	cookie, err := c.Cookie(constants.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *Handler) toLogin(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", time.Unix(0, 0)))
	return c.Redirect(http.StatusFound, "/login")
}

// withController создаёт контроллер для сессии запроса, выполняет Init и
// передаёт его в fn. Без валидной сессии отправляет на /login.
func (h *Handler) withController(c echo.Context, fn func(*Controller) error) error {
	token := h.session(c)
	if token == "" {
		return h.toLogin(c)
	}

	ctrl := NewController(h.client.WithSession(token), h.logger)
	if err := ctrl.Init(c.Request().Context()); err != nil {
		if IsUnauthorized(err) {
			return h.toLogin(c)
		}
		h.logger.Error("Не удалось получить текущего пользователя", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, "API nije dostupan")
	}
	return fn(ctrl)
}

func (h *Handler) render(c echo.Context, ctrl *Controller) error {
	var buf bytes.Buffer
	if err := RenderPage(&buf, ctrl.State()); err != nil {
		h.logger.Error("Ошибка рендера страницы", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Greška pri prikazu stranice")
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (h *Handler) renderLogin(c echo.Context, code int, page LoginPage) error {
	var buf bytes.Buffer
	if err := RenderLogin(&buf, page); err != nil {
		h.logger.Error("Ошибка рендера страницы входа", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Greška pri prikazu stranice")
	}
	return c.HTMLBlob(code, buf.Bytes())
}

func (h *Handler) LoginPage(c echo.Context) error {
	return h.renderLogin(c, http.StatusOK, LoginPage{})
}

func (h *Handler) Login(c echo.Context) error {
	username := c.FormValue("username")
	token, me, err := h.client.Login(c.Request().Context(), username, c.FormValue("password"))
	if err != nil {
		page := LoginPage{Username: username, Error: "Pogrešni podaci"}
		code := http.StatusUnauthorized
		if !IsUnauthorized(err) {
			h.logger.Error("Ошибка входа", zap.Error(err))
			page.Error = "Prijava trenutno nije moguća"
			code = http.StatusBadGateway
		}
		return h.renderLogin(c, code, page)
	}

	h.logger.Info("Вход в панель", zap.String("username", me.Username), zap.String("role", me.Role.String()))
	c.SetCookie(h.sessionCookie(token, time.Time{}))
	return c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Index(c echo.Context) error {
	return h.withController(c, func(ctrl *Controller) error {
		return h.render(c, ctrl)
	})
}

func (h *Handler) CreateEquipment(c echo.Context) error {
	return h.withController(c, func(ctrl *Controller) error {
		form, err := c.FormParams()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Neispravna forma")
		}
		ctrl.SubmitEquipment(c.Request().Context(), form)
		return h.render(c, ctrl)
	})
}

func (h *Handler) DeleteEquipment(c echo.Context) error {
	return h.withController(c, func(ctrl *Controller) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		ctrl.DeleteEquipment(c.Request().Context(), id)
		return h.render(c, ctrl)
	})
}

func (h *Handler) CreateUser(c echo.Context) error {
	return h.withController(c, func(ctrl *Controller) error {
		form, err := c.FormParams()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Neispravna forma")
		}
		ctrl.SubmitUser(c.Request().Context(), form)
		return h.render(c, ctrl)
	})
}

func (h *Handler) UpdateUserRole(c echo.Context) error {
	return h.withController(c, func(ctrl *Controller) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		ctrl.UpdateUserRole(c.Request().Context(), id, constants.Role(c.FormValue("role")))
		return h.render(c, ctrl)
	})
}

func (h *Handler) DeleteUser(c echo.Context) error {
	return h.withController(c, func(ctrl *Controller) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		ctrl.DeleteUser(c.Request().Context(), id)
		return h.render(c, ctrl)
	})
}

func (h *Handler) ExportCSV(c echo.Context) error {
	return h.withController(c, func(ctrl *Controller) error {
		csv, err := ctrl.ExportCSV()
		if err != nil {
			h.logger.Error("Ошибка экспорта CSV", zap.Error(err))
			return echo.NewHTTPError(http.StatusInternalServerError, "Greška pri izvozu")
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, attachment(constants.CSVExportFileName))
		return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
	})
}

func (h *Handler) ExportXLSX(c echo.Context) error {
	token := h.session(c)
	if token == "" {
		return h.toLogin(c)
	}

	data, err := h.client.WithSession(token).ExportEquipmentXLSX(c.Request().Context())
	if err != nil {
		if IsUnauthorized(err) {
			return h.toLogin(c)
		}
		h.logger.Error("Ошибка экспорта XLSX", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, "Greška pri izvozu")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, attachment(constants.XLSXExportFileName))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Logout завершается редиректом на /login при любом исходе.
func (h *Handler) Logout(c echo.Context) error {
	if token := h.session(c); token != "" {
		if err := h.client.WithSession(token).Logout(c.Request().Context()); err != nil {
			h.logger.Warn("Logout: API недоступен", zap.Error(err))
		}
	}
	return h.toLogin(c)
}

func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Neispravan ID")
	}
	return id, nil
}

func attachment(name string) string {
	return fmt.Sprintf("attachment; filename=%q", name)
}
