package controllers

import (
	"fmt"
	"net/http"

	"approval-system/internal/dto"
	"approval-system/internal/services"
	"approval-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type TravelRequestController struct {
	travelService services.TravelRequestServiceInterface
	logger        *zap.Logger
}

func NewTravelRequestController(
	travelService services.TravelRequestServiceInterface,
	logger *zap.Logger,
) *TravelRequestController {
	return &TravelRequestController{
		travelService: travelService,
		logger:        logger,
	}
}

// requestOrigin восстанавливает внешний адрес сервера для построения
// публичных ссылок на файлы.
func requestOrigin(ctx echo.Context) string {
	return fmt.Sprintf("%s://%s", ctx.Scheme(), ctx.Request().Host)
}

func (c *TravelRequestController) Create(ctx echo.Context) error {
	var payload dto.CreateTravelRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.travelService.Create(ctx.Request().Context(), payload, requestOrigin(ctx))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Командировочная заявка создана", http.StatusCreated)
}

func (c *TravelRequestController) List(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.travelService.List(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.PaginatedResponse(ctx, res, "Список командировочных заявок получен", total, filter)
}

func (c *TravelRequestController) Get(ctx echo.Context) error {
	res, err := c.travelService.GetByRequestID(ctx.Request().Context(), ctx.Param("requestId"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Командировочная заявка получена", http.StatusOK)
}

func (c *TravelRequestController) SetStatus(ctx echo.Context) error {
	var payload dto.UpdateStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.travelService.SetStatus(ctx.Request().Context(), ctx.Param("requestId"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статус заявки обновлен", http.StatusOK)
}

func (c *TravelRequestController) SetExpenseStatus(ctx echo.Context) error {
	var payload dto.UpdateLineItemStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.travelService.SetExpenseStatus(ctx.Request().Context(),
		ctx.Param("requestId"), ctx.Param("expenseId"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статус вложения обновлен", http.StatusOK)
}

func (c *TravelRequestController) Update(ctx echo.Context) error {
	var payload dto.UpdateRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"), c.logger)
	}

	res, err := c.travelService.UpdateFields(ctx.Request().Context(), ctx.Param("requestId"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявка обновлена", http.StatusOK)
}

func (c *TravelRequestController) Delete(ctx echo.Context) error {
	if err := c.travelService.Delete(ctx.Request().Context(), ctx.Param("requestId")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Заявка удалена", http.StatusOK)
}
