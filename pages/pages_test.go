package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimatePage(t *testing.T) {
	tests := []struct {
		name    string
		perPage int
		ordinal int
		want    int
	}{
		{"first paragraph", 0, 1, 1},
		{"last of first page", 0, 24, 1},
		{"boundary", 0, 25, 2},
		{"second page", 0, 49, 2},
		{"third page", 0, 50, 3},
		{"zero ordinal", 0, 0, 1},
		{"negative ordinal", 0, -40, 1},
		{"custom constant", 10, 35, 4},
		{"negative constant uses default", -5, 30, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := Estimator{ParagraphsPerPage: tt.perPage}
			assert.Equal(t, tt.want, est.EstimatePage(tt.ordinal, 1000))
		})
	}
}

func TestEstimatePage_Monotonic(t *testing.T) {
	for _, perPage := range []int{1, 7, 25, 100} {
		est := Estimator{ParagraphsPerPage: perPage}
		prev := est.EstimatePage(1, 500)
		assert.GreaterOrEqual(t, prev, 1)
		for ordinal := 2; ordinal <= 500; ordinal++ {
			page := est.EstimatePage(ordinal, 500)
			assert.GreaterOrEqual(t, page, prev, "perPage=%d ordinal=%d", perPage, ordinal)
			prev = page
		}
	}
}

func TestEstimatePage_Default(t *testing.T) {
	assert.Equal(t, 25, Estimator{}.PerPage())
	assert.Equal(t, 5, EstimatePage(100, 100))
}
