package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterFromQuery(t *testing.T) {
	t.Run("значения по умолчанию", func(t *testing.T) {
		filter := ParseFilterFromQuery(url.Values{})

		assert.Equal(t, DefaultLimit, filter.Limit)
		assert.Equal(t, 0, filter.Offset)
		assert.Empty(t, filter.Status)
	})

	t.Run("полный набор параметров", func(t *testing.T) {
		values := url.Values{}
		values.Set("status", "PENDING_APPROVAL")
		values.Set("managerId", "MGR003")
		values.Set("userId", "USR001")
		values.Set("limit", "25")
		values.Set("offset", "75")

		filter := ParseFilterFromQuery(values)

		assert.Equal(t, "PENDING_APPROVAL", filter.Status)
		assert.Equal(t, "MGR003", filter.ManagerID)
		assert.Equal(t, "USR001", filter.UserID)
		assert.Equal(t, 25, filter.Limit)
		assert.Equal(t, 75, filter.Offset)
	})

	t.Run("limit обрезается по потолку", func(t *testing.T) {
		values := url.Values{"limit": {"9999"}}
		assert.Equal(t, MaxLimit, ParseFilterFromQuery(values).Limit)
	})

	t.Run("мусорные и отрицательные значения игнорируются", func(t *testing.T) {
		values := url.Values{"limit": {"abc"}, "offset": {"-5"}}
		filter := ParseFilterFromQuery(values)

		assert.Equal(t, DefaultLimit, filter.Limit)
		assert.Equal(t, 0, filter.Offset)
	})
}
