// pkg/filestorage/local_filestorage.go

package filestorage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"approval-system/pkg/config"
	apperrors "approval-system/pkg/errors"
)

// StagedFile - результат постановки файла во временную зону.
type StagedFile struct {
	StoredName   string `json:"storedFileName"`
	OriginalName string `json:"fileName"`
	Size         int64  `json:"fileSize"`
	MimeType     string `json:"fileType"`
}

// FileStorageInterface определяет контракт хранилища вложений.
// Файлы сначала попадают в temp (Stage), затем переносятся в постоянное
// место {requestId}/{categoryDir} (Commit). Resolve - чистое вычисление
// пути, файловую систему не трогает.
type FileStorageInterface interface {
	Stage(file io.Reader, originalName string, size int64, mimeType string) (*StagedFile, error)
	DeleteStaged(storedName string) error
	Commit(storedName, category, requestID string) (string, error)
	Resolve(filename, category, requestID string) string
	Exists(filename, category, requestID string) bool
	Open(filename, category, requestID string) (io.ReadCloser, error)
	Delete(filename, category, requestID string) error
	PublicURL(filename, category, requestID, origin string) string
}

type LocalFileStorage struct {
	basePath string
}

func NewLocalFileStorage(basePath string) (FileStorageInterface, error) {
	for _, dir := range []string{basePath, filepath.Join(basePath, "temp")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию %s: %w", dir, err)
		}
	}
	return &LocalFileStorage{basePath: basePath}, nil
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9-_]`)

// GenerateUniqueFilename собирает безопасное уникальное имя:
// очищенная база (до 50 символов) + метка времени + случайный суффикс,
// расширение исходного файла сохраняется.
func GenerateUniqueFilename(originalName string) string {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)
	sanitized := unsafeNameChars.ReplaceAllString(base, "_")
	if len(sanitized) > 50 {
		sanitized = sanitized[:50]
	}

	buf := make([]byte, 8)
	_, _ = rand.Read(buf)

	return fmt.Sprintf("%s_%d_%s%s", sanitized, time.Now().UnixMilli(), hex.EncodeToString(buf), ext)
}

func (s *LocalFileStorage) Stage(file io.Reader, originalName string, size int64, mimeType string) (*StagedFile, error) {
	if !slices.Contains(config.AllowedMimeTypes, mimeType) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedMediaType, mimeType)
	}
	if size > config.MaxUploadSizeBytes {
		return nil, fmt.Errorf("%w: %d байт при лимите %d", apperrors.ErrPayloadTooLarge, size, config.MaxUploadSizeBytes)
	}

	storedName := GenerateUniqueFilename(originalName)
	tempPath := filepath.Join(s.basePath, "temp", storedName)

	dst, err := os.Create(tempPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageIO, err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(file, config.MaxUploadSizeBytes+1))
	if err != nil {
		_ = os.Remove(tempPath)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageIO, err)
	}
	// Заявленный размер мог не совпасть с фактическим - проверяем ещё раз.
	if written > config.MaxUploadSizeBytes {
		_ = os.Remove(tempPath)
		return nil, fmt.Errorf("%w: %d байт при лимите %d", apperrors.ErrPayloadTooLarge, written, config.MaxUploadSizeBytes)
	}

	return &StagedFile{
		StoredName:   storedName,
		OriginalName: filepath.Base(originalName),
		Size:         written,
		MimeType:     mimeType,
	}, nil
}

// DeleteStaged убирает файл из временной зоны (например, когда запрос
// отклонён валидацией уже после записи байтов на диск).
func (s *LocalFileStorage) DeleteStaged(storedName string) error {
	err := os.Remove(filepath.Join(s.basePath, "temp", filepath.Base(storedName)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", apperrors.ErrStorageIO, err)
	}
	return nil
}

// Commit переносит файл из temp в постоянное место {requestId}/{categoryDir}.
func (s *LocalFileStorage) Commit(storedName, category, requestID string) (string, error) {
	tempPath := filepath.Join(s.basePath, "temp", filepath.Base(storedName))
	finalDir := filepath.Join(s.basePath, requestID, config.CategoryDirectory(category))

	if err := os.MkdirAll(finalDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrStorageIO, err)
	}

	finalPath := filepath.Join(finalDir, filepath.Base(storedName))
	if err := os.Rename(tempPath, finalPath); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrStorageIO, err)
	}

	return finalPath, nil
}

func (s *LocalFileStorage) Resolve(filename, category, requestID string) string {
	return filepath.Join(s.basePath, requestID, config.CategoryDirectory(category), filepath.Base(filename))
}

func (s *LocalFileStorage) Exists(filename, category, requestID string) bool {
	_, err := os.Stat(s.Resolve(filename, category, requestID))
	return err == nil
}

func (s *LocalFileStorage) Open(filename, category, requestID string) (io.ReadCloser, error) {
	f, err := os.Open(s.Resolve(filename, category, requestID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageIO, err)
	}
	return f, nil
}

func (s *LocalFileStorage) Delete(filename, category, requestID string) error {
	err := os.Remove(s.Resolve(filename, category, requestID))
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: %v", apperrors.ErrStorageIO, err)
	}
	return nil
}

// PublicURL строит клиентский адрес файла по фиксированному шаблону
// /files/{requestId}/{categoryDir}/{filename}.
func (s *LocalFileStorage) PublicURL(filename, category, requestID, origin string) string {
	return fmt.Sprintf("%s/api/files/%s/%s/%s",
		strings.TrimSuffix(origin, "/"), requestID, config.CategoryDirectory(category), filepath.Base(filename))
}
