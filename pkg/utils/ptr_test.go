package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "0 Bytes", FormatFileSize(0))
	assert.Equal(t, "500 Bytes", FormatFileSize(500))
	assert.Equal(t, "1023 Bytes", FormatFileSize(1023))
	assert.Equal(t, "1 KB", FormatFileSize(1024))
	assert.Equal(t, "1.5 KB", FormatFileSize(1536))
	assert.Equal(t, "1 MB", FormatFileSize(1024*1024))
	assert.Equal(t, "2.5 MB", FormatFileSize(2621440))
	assert.Equal(t, "10 MB", FormatFileSize(10*1024*1024))
	assert.Equal(t, "1 GB", FormatFileSize(1024*1024*1024))
}
