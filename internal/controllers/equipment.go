package controllers

import (
	"net/http"

	"approval-system/internal/dto"
	"approval-system/internal/services"
	"approval-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type EquipmentRequestController struct {
	equipmentService services.EquipmentRequestServiceInterface
	logger           *zap.Logger
}

func NewEquipmentRequestController(
	equipmentService services.EquipmentRequestServiceInterface,
	logger *zap.Logger,
) *EquipmentRequestController {
	return &EquipmentRequestController{
		equipmentService: equipmentService,
		logger:           logger,
	}
}

func (c *EquipmentRequestController) Create(ctx echo.Context) error {
	var payload dto.CreateEquipmentRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.Create(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявка на оборудование создана", http.StatusCreated)
}

func (c *EquipmentRequestController) List(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.equipmentService.List(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.PaginatedResponse(ctx, res, "Список заявок на оборудование получен", total, filter)
}

func (c *EquipmentRequestController) Get(ctx echo.Context) error {
	res, err := c.equipmentService.GetByRequestID(ctx.Request().Context(), ctx.Param("requestId"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявка на оборудование получена", http.StatusOK)
}

func (c *EquipmentRequestController) SetStatus(ctx echo.Context) error {
	var payload dto.UpdateStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.SetStatus(ctx.Request().Context(), ctx.Param("requestId"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статус заявки обновлен", http.StatusOK)
}

func (c *EquipmentRequestController) SetItemStatus(ctx echo.Context) error {
	var payload dto.UpdateLineItemStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.SetItemStatus(ctx.Request().Context(),
		ctx.Param("requestId"), ctx.Param("itemId"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статус позиции обновлен", http.StatusOK)
}

func (c *EquipmentRequestController) Update(ctx echo.Context) error {
	var payload dto.UpdateRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"), c.logger)
	}

	res, err := c.equipmentService.UpdateFields(ctx.Request().Context(), ctx.Param("requestId"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявка обновлена", http.StatusOK)
}

func (c *EquipmentRequestController) Delete(ctx echo.Context) error {
	if err := c.equipmentService.Delete(ctx.Request().Context(), ctx.Param("requestId")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Заявка удалена", http.StatusOK)
}
