package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, pageCount(0, 10))
	assert.Equal(t, 1, pageCount(1, 10))
	assert.Equal(t, 1, pageCount(10, 10))
	assert.Equal(t, 2, pageCount(11, 10))
	assert.Equal(t, 4, pageCount(10, 3))
}

func TestRoundRating(t *testing.T) {
	// ratings [4, 5, 5] average to 4.666..., reported as 4.7
	assert.Equal(t, 4.7, roundRating(14.0/3.0))
	assert.Equal(t, 3.0, roundRating(3.0))
	assert.Equal(t, 2.5, roundRating(2.45))
	assert.Equal(t, 1.2, roundRating(1.24))
}

func TestSortByColumn(t *testing.T) {
	assert.Equal(t, "feedback.created_at", SortByDate.column())
	assert.Equal(t, "feedback.rating", SortByRating.column())
	assert.Equal(t, "ASC", SortAsc.direction())
	assert.Equal(t, "DESC", SortDesc.direction())
}
