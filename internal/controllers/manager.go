package controllers

import (
	"net/http"

	"approval-system/internal/services"
	"approval-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ManagerController struct {
	managerService services.ManagerServiceInterface
	logger         *zap.Logger
}

func NewManagerController(managerService services.ManagerServiceInterface, logger *zap.Logger) *ManagerController {
	return &ManagerController{managerService: managerService, logger: logger}
}

func (c *ManagerController) List(ctx echo.Context) error {
	res, err := c.managerService.List(ctx.Request().Context(), ctx.QueryParam("email"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список менеджеров получен", http.StatusOK)
}

// Resolve отдает каноничный managerId для произвольной ссылки.
func (c *ManagerController) Resolve(ctx echo.Context) error {
	resolved := c.managerService.Resolve(ctx.Request().Context(), ctx.Param("id"))
	return utils.SuccessResponse(ctx, map[string]string{"managerId": resolved}, "Менеджер разрешен", http.StatusOK)
}
