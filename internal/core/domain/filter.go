package domain

import (
	"fmt"
	"sort"
	"strings"
)

// MaxFilterCategories is the business limit on categories per query.
const MaxFilterCategories = 3

// filterAll is the sentinel for unspecified filter fields, so that an
// empty field and an explicit "all" derive the same cache key.
const filterAll = "all"

// Filter identifies a logical query against the event catalog.
// It is transient; only its derived cache key is ever persisted.
type Filter struct {
	CityName   string
	Categories []string
	SearchTerm string
	Page       int
	PageSize   int
}

// Validate checks the filter against catalog business rules.
func (f Filter) Validate() error {
	if len(f.Categories) > MaxFilterCategories {
		return fmt.Errorf("%w: at most %d categories per query", ErrInvalidInput, MaxFilterCategories)
	}
	if f.Page < 0 || f.PageSize < 0 {
		return fmt.Errorf("%w: negative pagination", ErrInvalidInput)
	}
	return nil
}

// CacheKey derives the canonical key for paged list queries.
// Semantically equal filters must produce identical keys: categories are
// sorted before joining, empty fields collapse to the "all" sentinel and
// the search term is trimmed but otherwise used verbatim (case-sensitive).
func (f Filter) CacheKey() string {
	return fmt.Sprintf("%s-%s-%s-%d-%d",
		f.cityKey(), f.categoriesKey(), f.searchKey(), f.Page, f.PageSize)
}

// MapCacheKey derives the canonical key for unpaged map queries.
func (f Filter) MapCacheKey() string {
	return fmt.Sprintf("%s-%s-%s-map", f.cityKey(), f.categoriesKey(), f.searchKey())
}

func (f Filter) cityKey() string {
	if f.CityName == "" {
		return filterAll
	}
	return f.CityName
}

func (f Filter) categoriesKey() string {
	if len(f.Categories) == 0 {
		return filterAll
	}
	sorted := append([]string(nil), f.Categories...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func (f Filter) searchKey() string {
	term := strings.TrimSpace(f.SearchTerm)
	if term == "" {
		return filterAll
	}
	return term
}
