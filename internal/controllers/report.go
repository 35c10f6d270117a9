package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"approval-system/internal/entities"
	"approval-system/internal/services"
	"approval-system/pkg/types"
	"approval-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetReport строит сводный отчет по заявкам. format=xlsx отдает файл,
// по умолчанию - JSON.
func (c *ReportController) GetReport(ctx echo.Context) error {
	filter := parseReportFilter(ctx)

	rows, err := c.reportService.GetReport(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if ctx.QueryParam("format") == "xlsx" {
		return c.respondWithXLSX(ctx, rows)
	}
	return utils.SuccessResponse(ctx, rows, "Отчет сформирован", http.StatusOK)
}

func parseReportFilter(ctx echo.Context) types.ReportFilter {
	filter := types.ReportFilter{}
	if raw := ctx.QueryParam("types"); raw != "" {
		filter.Types = strings.Split(raw, ",")
	}
	if raw := ctx.QueryParam("statuses"); raw != "" {
		filter.Statuses = strings.Split(raw, ",")
	}
	if raw := ctx.QueryParam("dateFrom"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.DateFrom = &t
		}
	}
	if raw := ctx.QueryParam("dateTo"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.DateTo = &t
		}
	}
	return filter
}

var reportHeaders = []interface{}{
	"Номер заявки", "Тип", "Статус", "Дата подачи", "Сотрудник",
	"Менеджер", "Содержание", "Кем одобрено", "Дата решения", "Причина отклонения",
}

func reportRowToSlice(row entities.ReportRow) []interface{} {
	dateFmt := "02.01.2006"
	var userID, approvedBy, approvedDate, rejectionReason string
	if row.UserID != nil {
		userID = *row.UserID
	}
	if row.ApprovedBy != nil {
		approvedBy = *row.ApprovedBy
	}
	if row.ApprovedDate != nil {
		approvedDate = row.ApprovedDate.Format(dateFmt)
	}
	if row.RejectionReason != nil {
		rejectionReason = *row.RejectionReason
	}
	return []interface{}{
		row.RequestID, row.RequestType, row.Status, row.SubmittedDate.Format(dateFmt),
		userID, row.ManagerID, row.Summary, approvedBy, approvedDate, rejectionReason,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, rows []entities.ReportRow) error {
	f := excelize.NewFile()
	sheet := "Отчет по заявкам"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "J1", style)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := reportRowToSlice(row)
		f.SetSheetRow(sheet, cell, &values)
	}
	f.SetColWidth(sheet, "A", "A", 18)
	f.SetColWidth(sheet, "D", "F", 20)
	f.SetColWidth(sheet, "G", "G", 40)
	f.SetColWidth(sheet, "J", "J", 40)

	fileName := fmt.Sprintf("requests_report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
