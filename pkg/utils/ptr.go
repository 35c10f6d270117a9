package utils

import (
	"math"
	"strconv"
	"strings"
)

func StringPtr(s string) *string { return &s }

// FormatFileSize печатает размер файла в человекочитаемом виде,
// как это делал исходный загрузчик: "1.5 KB", "2 MB".
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	const k = 1024
	sizes := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}
	v := math.Round(float64(bytes)/math.Pow(k, float64(i))*100) / 100
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return strings.TrimSuffix(s, ".0") + " " + sizes[i]
}
