// pkg/constants/constants.go
package constants

//============== ROLES ==============

// Role определяет роль пользователя панели.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// String возвращает строковое представление роли.
func (r Role) String() string {
	return string(r)
}

// IsValid сообщает, известна ли роль.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

//============== SESSION ==============

const (
	// SessionCookieName - cookie, в которой живёт токен сессии (и у API, и у панели).
	SessionCookieName = "session"
	// RevokedSessionKeyPrefix - префикс ключей Redis для отозванных сессий.
	RevokedSessionKeyPrefix = "revoked_session:"
)

//============== EXPORT ==============

const (
	CSVExportFileName  = "oprema.csv"
	XLSXExportFileName = "oprema.xlsx"
)
