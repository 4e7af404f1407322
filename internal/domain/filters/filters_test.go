package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortIsSafe(t *testing.T) {
	f := Filters{SortSafelist: []string{"id", "starts_at"}}
	for _, sort := range []string{"id", "-id", "starts_at", "-starts_at"} {
		f.Sort = sort
		assert.True(t, f.SortIsSafe(), sort)
	}
	for _, sort := range []string{"", "qr_token", "-qr_token", "id; DROP TABLE movies"} {
		f.Sort = sort
		assert.False(t, f.SortIsSafe(), sort)
	}
}

func TestSortColumn(t *testing.T) {
	f := Filters{Sort: "-starts_at", SortSafelist: []string{"id", "starts_at"}}
	assert.Equal(t, "starts_at", f.SortColumn())
	assert.Equal(t, DescSort, f.SortDirection())

	f.Sort = "id"
	assert.Equal(t, "id", f.SortColumn())
	assert.Equal(t, AscSort, f.SortDirection())

	f.Sort = "qr_token"
	assert.Panics(t, func() { f.SortColumn() })
}

func TestPagination(t *testing.T) {
	f := Filters{}
	assert.Equal(t, 20, f.Limit())
	assert.Equal(t, 0, f.Offset())

	f = Filters{Page: 3, PageSize: 10}
	assert.Equal(t, 10, f.Limit())
	assert.Equal(t, 20, f.Offset())
}
