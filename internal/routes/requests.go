package routes

import (
	"approval-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runTravelRouter(api *echo.Group, ctrl *controllers.TravelRequestController) {
	{
		api.POST("/travel-requests", ctrl.Create)
		api.GET("/travel-requests", ctrl.List)
		api.GET("/travel-requests/:requestId", ctrl.Get)
		api.PATCH("/travel-requests/:requestId", ctrl.Update)
		api.PATCH("/travel-requests/:requestId/status", ctrl.SetStatus)
		api.PATCH("/travel-requests/:requestId/expenses/:expenseId/status", ctrl.SetExpenseStatus)
		api.DELETE("/travel-requests/:requestId", ctrl.Delete)
	}
}

func runVacationRouter(api *echo.Group, ctrl *controllers.VacationRequestController) {
	{
		api.POST("/vacation-requests", ctrl.Create)
		api.GET("/vacation-requests", ctrl.List)
		api.GET("/vacation-requests/:requestId", ctrl.Get)
		api.PATCH("/vacation-requests/:requestId", ctrl.Update)
		api.PATCH("/vacation-requests/:requestId/status", ctrl.SetStatus)
		api.PATCH("/vacation-requests/:requestId/attachments/:attachmentId/status", ctrl.SetAttachmentStatus)
		api.POST("/vacation-requests/:requestId/comments", ctrl.AddComment)
		api.DELETE("/vacation-requests/:requestId", ctrl.Delete)
	}
}

func runEquipmentRouter(api *echo.Group, ctrl *controllers.EquipmentRequestController) {
	{
		api.POST("/equipment-requests", ctrl.Create)
		api.GET("/equipment-requests", ctrl.List)
		api.GET("/equipment-requests/:requestId", ctrl.Get)
		api.PATCH("/equipment-requests/:requestId", ctrl.Update)
		api.PATCH("/equipment-requests/:requestId/status", ctrl.SetStatus)
		api.PATCH("/equipment-requests/:requestId/items/:itemId/status", ctrl.SetItemStatus)
		api.DELETE("/equipment-requests/:requestId", ctrl.Delete)
	}
}

func runFeedRouter(api *echo.Group, ctrl *controllers.RequestFeedController) {
	api.GET("/requests", ctrl.List)
}
