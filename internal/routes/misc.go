package routes

import (
	"approval-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runAuthRouter(api *echo.Group, ctrl *controllers.AuthController) {
	{
		api.POST("/auth/login", ctrl.Login)
		api.POST("/auth/register", ctrl.Register)
		api.GET("/users", ctrl.ListUsers)
	}
}

func runManagerRouter(api *echo.Group, ctrl *controllers.ManagerController) {
	{
		api.GET("/managers", ctrl.List)
		api.GET("/managers/resolve/:id", ctrl.Resolve)
	}
}

func runUploadRouter(api *echo.Group, uploadCtrl *controllers.UploadController, fileCtrl *controllers.FileController) {
	{
		api.POST("/upload", uploadCtrl.Upload)
		api.POST("/upload/multiple", uploadCtrl.UploadMultiple)
		api.GET("/files/:requestId/:category/:filename", fileCtrl.Serve)
		api.DELETE("/files/:requestId/:category/:filename", fileCtrl.Delete)
	}
}

func runAvailabilityRouter(api *echo.Group, ctrl *controllers.AvailabilityController) {
	{
		api.POST("/availability/check", ctrl.Check)
		api.GET("/availability/:userId", ctrl.ListByUser)
	}
}

func runReportRouter(api *echo.Group, ctrl *controllers.ReportController) {
	api.GET("/reports/requests", ctrl.GetReport)
}
