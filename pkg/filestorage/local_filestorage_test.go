package filestorage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"approval-system/pkg/config"
	apperrors "approval-system/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) FileStorageInterface {
	t.Helper()
	storage, err := NewLocalFileStorage(t.TempDir())
	require.NoError(t, err, "Не удалось инициализировать хранилище")
	return storage
}

func TestGenerateUniqueFilename(t *testing.T) {
	name := GenerateUniqueFilename("отчёт о командировке (final).pdf")

	assert.True(t, strings.HasSuffix(name, ".pdf"), "расширение должно сохраняться")
	assert.NotContains(t, name, " ")
	assert.NotContains(t, name, "(")
	assert.NotContains(t, name, "/")

	// Два вызова подряд не должны коллидировать.
	assert.NotEqual(t, name, GenerateUniqueFilename("отчёт о командировке (final).pdf"))
}

func TestLocalFileStorage_StageAndCommit(t *testing.T) {
	storage := newTestStorage(t)

	content := "содержимое чека"
	staged, err := storage.Stage(strings.NewReader(content), "receipt.pdf", int64(len(content)), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "receipt.pdf", staged.OriginalName)
	assert.Equal(t, int64(len(content)), staged.Size)

	finalPath, err := storage.Commit(staged.StoredName, "foodCosts", "TRV-1001")
	require.NoError(t, err)
	assert.Contains(t, finalPath, filepath.Join("TRV-1001", "food-costs"))

	// После переноса файл читается из постоянного места.
	assert.True(t, storage.Exists(staged.StoredName, "foodCosts", "TRV-1001"))

	f, err := storage.Open(staged.StoredName, "foodCosts", "TRV-1001")
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, content, string(data))
}

func TestLocalFileStorage_StageRejectsBadInput(t *testing.T) {
	storage := newTestStorage(t)

	t.Run("неподдерживаемый тип", func(t *testing.T) {
		_, err := storage.Stage(strings.NewReader("x"), "script.sh", 1, "application/x-sh")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrUnsupportedMediaType))
	})

	t.Run("превышение заявленного размера", func(t *testing.T) {
		_, err := storage.Stage(strings.NewReader("x"), "big.pdf", config.MaxUploadSizeBytes+1, "application/pdf")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrPayloadTooLarge))
	})
}

func TestLocalFileStorage_UnknownCategoryGoesToMisc(t *testing.T) {
	storage := newTestStorage(t)

	staged, err := storage.Stage(strings.NewReader("вложение"), "scan.png", 8, "image/png")
	require.NoError(t, err)

	finalPath, err := storage.Commit(staged.StoredName, "", "VAC-2002")
	require.NoError(t, err)
	assert.Contains(t, finalPath, filepath.Join("VAC-2002", "misc"))
}

func TestLocalFileStorage_DeleteStaged(t *testing.T) {
	storage := newTestStorage(t)

	staged, err := storage.Stage(strings.NewReader("временный"), "tmp.pdf", 9, "application/pdf")
	require.NoError(t, err)

	require.NoError(t, storage.DeleteStaged(staged.StoredName))
	// Повторное удаление не считается ошибкой.
	require.NoError(t, storage.DeleteStaged(staged.StoredName))
}

func TestLocalFileStorage_DeleteAndOpenMissing(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.Open("nope.pdf", "foodCosts", "TRV-404")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	err = storage.Delete("nope.pdf", "foodCosts", "TRV-404")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestLocalFileStorage_PublicURL(t *testing.T) {
	storage := newTestStorage(t)

	url := storage.PublicURL("receipt_1_ab.pdf", "travelCosts", "TRV-1001", "http://localhost:8080/")
	assert.Equal(t, "http://localhost:8080/api/files/TRV-1001/travel-costs/receipt_1_ab.pdf", url)
}

func TestNewLocalFileStorageCreatesTempDir(t *testing.T) {
	base := t.TempDir()
	_, err := NewLocalFileStorage(filepath.Join(base, "uploads"))
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(base, "uploads", "temp"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
