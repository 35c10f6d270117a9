package controllers

import (
	"approval-system/internal/services"
	"approval-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type RequestFeedController struct {
	feedService services.RequestFeedServiceInterface
	logger      *zap.Logger
}

func NewRequestFeedController(feedService services.RequestFeedServiceInterface, logger *zap.Logger) *RequestFeedController {
	return &RequestFeedController{feedService: feedService, logger: logger}
}

func (c *RequestFeedController) List(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.feedService.List(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.PaginatedResponse(ctx, res, "Сводный список заявок получен", total, filter)
}
