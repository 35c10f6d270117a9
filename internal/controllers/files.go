package controllers

import (
	"mime"
	"net/http"
	"path/filepath"

	"approval-system/internal/services"
	"approval-system/pkg/config"
	"approval-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FileController отдает и удаляет закоммиченные вложения по адресу
// /api/files/{requestId}/{categorySlug}/{filename}.
type FileController struct {
	uploadService services.UploadServiceInterface
	logger        *zap.Logger
}

func NewFileController(uploadService services.UploadServiceInterface, logger *zap.Logger) *FileController {
	return &FileController{uploadService: uploadService, logger: logger}
}

func (c *FileController) Serve(ctx echo.Context) error {
	requestID := ctx.Param("requestId")
	category := config.InternalCategory(ctx.Param("category"))
	filename := ctx.Param("filename")

	reader, err := c.uploadService.Open(filename, category, requestID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return ctx.Stream(http.StatusOK, contentType, reader)
}

func (c *FileController) Delete(ctx echo.Context) error {
	requestID := ctx.Param("requestId")
	category := config.InternalCategory(ctx.Param("category"))
	filename := ctx.Param("filename")

	if err := c.uploadService.Delete(filename, category, requestID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Файл удален", http.StatusOK)
}
