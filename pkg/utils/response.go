package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "approval-system/pkg/errors"
	"approval-system/pkg/types"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status     bool              `json:"status"`
	Body       interface{}       `json:"body,omitempty"`
	Message    string            `json:"message"`
	Pagination *types.Pagination `json:"pagination,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{
		Status:  true,
		Body:    body,
		Message: message,
	})
}

// PaginatedResponse возвращает список вместе с метаданными пагинации.
// total считается независимо от limit/offset.
func PaginatedResponse(ctx echo.Context, body interface{}, message string, total uint64, filter types.Filter) error {
	return ctx.JSON(http.StatusOK, &HTTPResponse{
		Status:  true,
		Body:    body,
		Message: message,
		Pagination: &types.Pagination{
			Total:  total,
			Limit:  filter.Limit,
			Offset: filter.Offset,
		},
	})
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}

		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": "Ошибка валидации: " + strings.Join(msgs, "; ")})
	}

	var invalidInput *apperrors.InvalidInputError
	if errors.As(err, &invalidInput) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": invalidInput.Message})
	}

	// Известные доменные ошибки отдаем с их кодом, остальное прячем за 500.
	if code := apperrors.StatusCode(err); code != http.StatusInternalServerError {
		return c.JSON(code, map[string]interface{}{"status": false, "message": err.Error()})
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "Внутренняя ошибка сервера",
	})
}
