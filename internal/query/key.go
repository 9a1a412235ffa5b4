// Package query wraps repository and analytics reads behind hierarchical
// cache keys with stale-while-revalidate semantics, and layers write-triggered
// invalidation over repository mutations so readers and writers never
// coordinate directly.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/bekzodm/hamyon/internal/model"
)

// Key addresses one cached read result. Keys are hierarchical: a shorter key
// is an invalidation root for every longer key it prefixes, so invalidating
// Key{"transactions"} drops every cached transaction read regardless of its
// filter.
type Key []string

// String renders the key as a slash-joined path.
func (k Key) String() string {
	return strings.Join(k, "/")
}

// HasPrefix reports whether prefix is an ancestor of (or equal to) k.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Entity family roots, the coarse invalidation units.
var (
	TransactionsKey = Key{"transactions"}
	CategoriesKey   = Key{"categories"}
)

// CategoryStatsRoot covers every cached per-category stats month.
var CategoryStatsRoot = Key{"categories", "stats"}

// TransactionListKey identifies one filtered transaction listing.
func TransactionListKey(filter model.TransactionFilter) Key {
	return Key{"transactions", "list", filterDescriptor(filter)}
}

// MonthlyStatsKey identifies one month's income/expense summary.
func MonthlyStatsKey(month time.Time) Key {
	return Key{"transactions", "stats", month.Format("2006-01")}
}

// CategoryListKey identifies a category listing, optionally type-filtered.
func CategoryListKey(typ *model.TransactionType) Key {
	descriptor := "all"
	if typ != nil {
		descriptor = string(*typ)
	}
	return Key{"categories", "list", descriptor}
}

// CategoryStatsKey identifies one month's per-category budget stats.
func CategoryStatsKey(month time.Time) Key {
	return Key{"categories", "stats", month.Format("2006-01")}
}

// filterDescriptor encodes a transaction filter into a stable key segment.
// Absent fields are omitted so equivalent filters share a cache entry.
func filterDescriptor(filter model.TransactionFilter) string {
	if filter.IsZero() {
		return "all"
	}

	var parts []string
	if filter.Month != nil {
		parts = append(parts, "month="+filter.Month.Format("2006-01"))
	}
	if filter.CategoryID != nil {
		parts = append(parts, fmt.Sprintf("category=%d", *filter.CategoryID))
	}
	if filter.Type != nil {
		parts = append(parts, "type="+string(*filter.Type))
	}
	return strings.Join(parts, ",")
}
