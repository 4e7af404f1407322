package filters

import (
	"errors"
	"strings"
)

const (
	AscSort  = "ASC"
	DescSort = "DESC"
)

type Filters struct {
	Page         int    `schema:"page" validate:"omitempty,gt=0"`
	PageSize     int    `schema:"page_size" validate:"omitempty,gt=0,lte=100"`
	Sort         string `schema:"sort"`
	SortSafelist []string
}

// SortIsSafe reports whether Sort names a safelisted column. Callers must
// check it before handing client input to SortColumn.
func (f *Filters) SortIsSafe() bool {
	s := strings.TrimPrefix(f.Sort, "-")
	for _, safeValue := range f.SortSafelist {
		if strings.EqualFold(s, safeValue) {
			return true
		}
	}
	return false
}

func (f *Filters) SortColumn() string {
	s := strings.TrimPrefix(f.Sort, "-")
	for _, safeValue := range f.SortSafelist {
		if strings.EqualFold(s, safeValue) {
			return s
		}
	}
	panic(errors.New("Unknown sort column: " + f.Sort))
}

func (f *Filters) SortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return DescSort
	}
	return AscSort
}

func (f *Filters) Limit() int {
	if f.PageSize == 0 {
		return 20
	}
	return f.PageSize
}

func (f *Filters) Offset() int {
	if f.Page == 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}
