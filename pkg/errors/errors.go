package errors

import "fmt"

var (
	// JWT и сессии
	ErrInvalidSigningMethod = fmt.Errorf("neispravan metod potpisa tokena")
	ErrInvalidToken         = fmt.Errorf("neispravan token sesije")
	ErrTokenExpired         = fmt.Errorf("sesija je istekla")
	ErrTokenRevoked         = fmt.Errorf("sesija je zatvorena")

	// Авторизация
	ErrEmptySession       = fmt.Errorf("niste prijavljeni")
	ErrInvalidCredentials = fmt.Errorf("Pogrešni podaci")
	ErrUnauthorized       = fmt.Errorf("neautorizovan pristup")
	ErrForbidden          = fmt.Errorf("pristup dozvoljen samo administratoru")

	// Контекст
	ErrUserNotFoundInContext = fmt.Errorf("korisnik nije pronađen u kontekstu zahteva")

	// Общие
	ErrNotFound   = fmt.Errorf("zapis nije pronađen")
	ErrBadRequest = fmt.Errorf("neispravan zahtev")
	ErrConflict   = fmt.Errorf("zapis već postoji")
)

// HttpError несёт HTTP-код и сообщение для клиента; Err уходит только в лог.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Context: context,
	}
}

// Кастомные типы ошибок
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
