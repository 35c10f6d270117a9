package services

import (
	"io"
	"mime/multipart"

	"approval-system/pkg/config"
	apperrors "approval-system/pkg/errors"
	"approval-system/pkg/filestorage"

	"go.uber.org/zap"
)

type UploadServiceInterface interface {
	StageFile(file *multipart.FileHeader) (*filestorage.StagedFile, error)
	StageFiles(files []*multipart.FileHeader) ([]filestorage.StagedFile, error)
	Commit(storedName, category, requestID string) (string, error)
	Open(filename, category, requestID string) (io.ReadCloser, error)
	Delete(filename, category, requestID string) error
}

type UploadService struct {
	fileStorage filestorage.FileStorageInterface
	logger      *zap.Logger
}

func NewUploadService(fileStorage filestorage.FileStorageInterface, logger *zap.Logger) UploadServiceInterface {
	return &UploadService{fileStorage: fileStorage, logger: logger}
}

func (s *UploadService) StageFile(file *multipart.FileHeader) (*filestorage.StagedFile, error) {
	src, err := file.Open()
	if err != nil {
		return nil, apperrors.ErrStorageIO
	}
	defer src.Close()

	return s.fileStorage.Stage(src, file.Filename, file.Size, file.Header.Get("Content-Type"))
}

// StageFiles принимает пачку файлов (не больше MaxFilesPerUpload).
// Ошибка на любом файле откатывает уже положенные в temp копии.
func (s *UploadService) StageFiles(files []*multipart.FileHeader) ([]filestorage.StagedFile, error) {
	if len(files) == 0 {
		return nil, apperrors.NewInvalidInputError("не передано ни одного файла")
	}
	if len(files) > config.MaxFilesPerUpload {
		return nil, apperrors.NewInvalidInputError("слишком много файлов: максимум %d", config.MaxFilesPerUpload)
	}

	staged := make([]filestorage.StagedFile, 0, len(files))
	for _, file := range files {
		result, err := s.StageFile(file)
		if err != nil {
			for _, done := range staged {
				if cleanupErr := s.fileStorage.DeleteStaged(done.StoredName); cleanupErr != nil {
					s.logger.Warn("не удалось убрать staged-файл после сбоя",
						zap.String("storedName", done.StoredName), zap.Error(cleanupErr))
				}
			}
			return nil, err
		}
		staged = append(staged, *result)
	}
	return staged, nil
}

func (s *UploadService) Commit(storedName, category, requestID string) (string, error) {
	return s.fileStorage.Commit(storedName, category, requestID)
}

func (s *UploadService) Open(filename, category, requestID string) (io.ReadCloser, error) {
	return s.fileStorage.Open(filename, category, requestID)
}

func (s *UploadService) Delete(filename, category, requestID string) error {
	return s.fileStorage.Delete(filename, category, requestID)
}
