package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{name: "empty", total: 0, limit: 10, want: 0},
		{name: "exact fit", total: 20, limit: 10, want: 2},
		{name: "partial last page", total: 21, limit: 10, want: 3},
		{name: "single item", total: 1, limit: 5, want: 1},
		{name: "zero limit", total: 50, limit: 0, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit))
		})
	}
}

func TestProduct_FinalPrice(t *testing.T) {
	t.Parallel()

	p := Product{Price: 100, Discount: 30}
	assert.InDelta(t, 70, p.FinalPrice(), 1e-9)

	free := Product{Price: 59.99, Discount: 100}
	assert.InDelta(t, 0, free.FinalPrice(), 1e-9)

	plain := Product{Price: 15}
	assert.InDelta(t, 15, plain.FinalPrice(), 1e-9)
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "Electronics", want: "electronics"},
		{name: "trailing space collapses to same slug", input: "Electronics ", want: "electronics"},
		{name: "ampersand expands", input: "Home & Garden", want: "home-and-garden"},
		{name: "mixed case", input: "Laptop Bags", want: "laptop-bags"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}
