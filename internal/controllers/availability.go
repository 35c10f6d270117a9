package controllers

import (
	"net/http"

	"approval-system/internal/dto"
	"approval-system/internal/services"
	"approval-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AvailabilityController struct {
	availabilityService services.AvailabilityServiceInterface
	logger              *zap.Logger
}

func NewAvailabilityController(
	availabilityService services.AvailabilityServiceInterface,
	logger *zap.Logger,
) *AvailabilityController {
	return &AvailabilityController{availabilityService: availabilityService, logger: logger}
}

func (c *AvailabilityController) Check(ctx echo.Context) error {
	var payload dto.AvailabilityCheckDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.availabilityService.Check(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Проверка доступности выполнена", http.StatusOK)
}

func (c *AvailabilityController) ListByUser(ctx echo.Context) error {
	res, err := c.availabilityService.ListByUser(ctx.Request().Context(), ctx.Param("userId"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список недоступности получен", http.StatusOK)
}
