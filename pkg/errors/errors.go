package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Is - прокидываем стандартный errors.Is, чтобы вызывающим не нужен был второй импорт.
func Is(err, target error) bool { return stderrors.Is(err, target) }

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")

	// Авторизация
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrAccountDisabled    = fmt.Errorf("учётная запись отключена")
	ErrTooManyAttempts    = fmt.Errorf("слишком много попыток входа, попробуйте позже")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Заявки
	ErrDuplicateRequest = fmt.Errorf("заявка с таким requestId уже существует")
	ErrInvalidStatus    = fmt.Errorf("недопустимый статус")

	// Загрузка файлов
	ErrUnsupportedMediaType = fmt.Errorf("недопустимый тип файла")
	ErrPayloadTooLarge      = fmt.Errorf("размер файла превышает лимит")
	ErrStorageIO            = fmt.Errorf("ошибка файлового хранилища")
)

// HttpError несёт HTTP-код, сообщение для клиента и внутреннюю причину.
// Details попадают в тело ответа, Context - только в логи.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Details: details,
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

// StatusCode возвращает HTTP-код для известных доменных ошибок.
// Неизвестные ошибки считаются внутренними.
func StatusCode(err error) int {
	var invalidInput *InvalidInputError
	if stderrors.As(err, &invalidInput) {
		return http.StatusBadRequest
	}

	switch {
	case err == nil:
		return http.StatusOK
	case Is(err, ErrNotFound):
		return http.StatusNotFound
	case Is(err, ErrDuplicateRequest):
		return http.StatusConflict
	case Is(err, ErrInvalidStatus), Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case Is(err, ErrAccountDisabled):
		return http.StatusForbidden
	case Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
