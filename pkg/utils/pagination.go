package utils

import (
	"net/url"
	"strconv"

	"approval-system/pkg/types"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// ParseFilterFromQuery разбирает фильтры списка заявок из query-параметров.
func ParseFilterFromQuery(values url.Values) types.Filter {
	filter := types.Filter{
		Status:    values.Get("status"),
		ManagerID: values.Get("managerId"),
		UserID:    values.Get("userId"),
		Limit:     DefaultLimit,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				filter.Limit = MaxLimit
			} else {
				filter.Limit = l
			}
		}
	}

	if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filter.Offset = o
		}
	}

	return filter
}
