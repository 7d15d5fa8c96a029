package util

import (
	"math"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Calculate turns page and size into offset and limit. Pages too far out to
// address are pinned so that offset+limit still fits in an int.
func Calculate(page, size int) (offset int, limit int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if last := (math.MaxInt - size) / size; page-1 > last {
		page = last + 1
	}
	offset = (page - 1) * size
	return offset, size
}

// Window returns the part of a slice of length n covered by offset and limit.
func Window(n, offset, limit int) (lo, hi int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	if limit < 0 {
		limit = 0
	}
	hi = n
	if limit < n-offset {
		hi = offset + limit
	}
	return offset, hi
}
