package config

// MaxUploadSizeBytes - потолок размера одного файла (10 MiB).
const MaxUploadSizeBytes int64 = 10 * 1024 * 1024

// MaxFilesPerUpload - лимит множественной загрузки за один запрос.
const MaxFilesPerUpload = 10

// AllowedMimeTypes - белый список типов вложений: PDF, изображения
// и офисные документы (старый и OOXML форматы Word/Excel).
var AllowedMimeTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// CategoryDirectories отображает внутреннюю категорию вложения
// в каталог на диске. Неизвестные категории складываются в misc.
var CategoryDirectories = map[string]string{
	"foodCosts":   "food-costs",
	"travelCosts": "travel-costs",
	"stayCosts":   "stay-costs",
}

// ExternalCategories - обратная карта: слаг из URL во внутреннюю категорию.
var ExternalCategories = map[string]string{
	"food-costs":   "foodCosts",
	"travel-costs": "travelCosts",
	"stay-costs":   "stayCosts",
}

// CategoryDirectory возвращает каталог для категории с фолбэком в misc.
func CategoryDirectory(category string) string {
	if dir, ok := CategoryDirectories[category]; ok {
		return dir
	}
	return "misc"
}

// InternalCategory переводит слаг из URL во внутреннюю категорию.
// Незнакомый слаг используется как есть.
func InternalCategory(slug string) string {
	if cat, ok := ExternalCategories[slug]; ok {
		return cat
	}
	return slug
}
