package controllers

import (
	"net/http"

	"approval-system/internal/dto"
	"approval-system/internal/services"
	"approval-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type VacationRequestController struct {
	vacationService services.VacationRequestServiceInterface
	logger          *zap.Logger
}

func NewVacationRequestController(
	vacationService services.VacationRequestServiceInterface,
	logger *zap.Logger,
) *VacationRequestController {
	return &VacationRequestController{
		vacationService: vacationService,
		logger:          logger,
	}
}

func (c *VacationRequestController) Create(ctx echo.Context) error {
	var payload dto.CreateVacationRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.vacationService.Create(ctx.Request().Context(), payload, requestOrigin(ctx))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Отпускная заявка создана", http.StatusCreated)
}

func (c *VacationRequestController) List(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.vacationService.List(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.PaginatedResponse(ctx, res, "Список отпускных заявок получен", total, filter)
}

func (c *VacationRequestController) Get(ctx echo.Context) error {
	res, err := c.vacationService.GetByRequestID(ctx.Request().Context(), ctx.Param("requestId"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Отпускная заявка получена", http.StatusOK)
}

func (c *VacationRequestController) SetStatus(ctx echo.Context) error {
	var payload dto.UpdateStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.vacationService.SetStatus(ctx.Request().Context(), ctx.Param("requestId"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статус заявки обновлен", http.StatusOK)
}

func (c *VacationRequestController) SetAttachmentStatus(ctx echo.Context) error {
	var payload dto.UpdateLineItemStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.vacationService.SetAttachmentStatus(ctx.Request().Context(),
		ctx.Param("requestId"), ctx.Param("attachmentId"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статус вложения обновлен", http.StatusOK)
}

func (c *VacationRequestController) Update(ctx echo.Context) error {
	var payload dto.UpdateRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"), c.logger)
	}

	res, err := c.vacationService.UpdateFields(ctx.Request().Context(), ctx.Param("requestId"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявка обновлена", http.StatusOK)
}

func (c *VacationRequestController) AddComment(ctx echo.Context) error {
	var payload struct {
		UserID  string `json:"userId" validate:"required"`
		Message string `json:"message" validate:"required"`
	}
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.vacationService.AddComment(ctx.Request().Context(),
		ctx.Param("requestId"), payload.UserID, payload.Message)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Комментарий добавлен", http.StatusCreated)
}

func (c *VacationRequestController) Delete(ctx echo.Context) error {
	if err := c.vacationService.Delete(ctx.Request().Context(), ctx.Param("requestId")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Заявка удалена", http.StatusOK)
}
