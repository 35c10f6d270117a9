package controllers

import (
	"net/http"

	"approval-system/internal/services"
	apperrors "approval-system/pkg/errors"
	"approval-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type UploadController struct {
	uploadService services.UploadServiceInterface
	logger        *zap.Logger
}

func NewUploadController(uploadService services.UploadServiceInterface, logger *zap.Logger) *UploadController {
	return &UploadController{uploadService: uploadService, logger: logger}
}

// Upload кладет один файл во временную зону и возвращает его
// сгенерированное имя - им клиент потом ссылается при создании заявки.
func (c *UploadController) Upload(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Файл не был передан", apperrors.ErrBadRequest, nil),
			c.logger)
	}

	staged, err := c.uploadService.StageFile(fileHeader)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, staged, "Файл загружен", http.StatusCreated)
}

func (c *UploadController) UploadMultiple(ctx echo.Context) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Некорректная multipart-форма", apperrors.ErrBadRequest, nil),
			c.logger)
	}

	staged, err := c.uploadService.StageFiles(form.File["files"])
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, staged, "Файлы загружены", http.StatusCreated)
}
