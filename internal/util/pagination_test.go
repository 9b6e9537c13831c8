package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	page, size := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, size)

	page, size = NormalizePage(-3, 500)
	assert.Equal(t, 1, page)
	assert.Equal(t, MaxPageSize, size)

	page, size = NormalizePage(4, 25)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, size)
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, PageOffset(1, 20))
	assert.Equal(t, 40, PageOffset(3, 20))
}

func TestEstimateTotalPages(t *testing.T) {
	assert.Equal(t, 0, EstimateTotalPages(0, 20))
	assert.Equal(t, 1, EstimateTotalPages(20, 20))
	assert.Equal(t, 2, EstimateTotalPages(21, 20))
	assert.Equal(t, 0, EstimateTotalPages(10, 0))
}
