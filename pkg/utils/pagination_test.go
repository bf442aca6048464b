package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams_Defaults(t *testing.T) {
	p := GetPaginationParams(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)

	p = GetPaginationParams(-1, 500)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)

	p = GetPaginationParams(3, 50)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.Limit)
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, GetPaginationParams(1, 20).CalculateOffset())
	assert.Equal(t, 40, GetPaginationParams(3, 20).CalculateOffset())
}

func TestCalculateMeta(t *testing.T) {
	meta := CalculateMeta(45, 2, 20)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, int64(45), meta.TotalCount)
	assert.Equal(t, 3, meta.TotalPages)

	meta = CalculateMeta(0, 1, 20)
	assert.Equal(t, 0, meta.TotalPages)
}
