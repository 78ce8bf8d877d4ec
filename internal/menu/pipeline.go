package menu

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"resto-dashboard/internal/domain"
)

type SortKey string

const (
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
)

var nameCollator = collate.New(language.English, collate.IgnoreCase)

// Filter is the displayed-list state: selected categories (empty selection
// keeps everything), an optional price ceiling, a case-insensitive name
// search, and a sort key.
type Filter struct {
	Categories []string
	MaxPrice   *float64
	Search     string
	Sort       SortKey
}

// Apply runs category, price, and search predicates in that order, then
// stable-sorts so ties keep their catalog order. The input slice is never
// mutated.
func (f Filter) Apply(dishes []domain.Dish) []domain.Dish {
	filtered := make([]domain.Dish, 0, len(dishes))

	selected := map[string]bool{}
	for _, c := range f.Categories {
		selected[c] = true
	}
	query := strings.ToLower(strings.TrimSpace(f.Search))

	for _, dish := range dishes {
		if len(selected) > 0 && !selected[dish.Category] {
			continue
		}
		if f.MaxPrice != nil && *f.MaxPrice >= 0 && dish.Price > *f.MaxPrice {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(dish.Name), query) {
			continue
		}
		filtered = append(filtered, dish)
	}

	switch f.Sort {
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price > filtered[j].Price
		})
	case SortNameAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return nameCollator.CompareString(filtered[i].Name, filtered[j].Name) < 0
		})
	case SortNameDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return nameCollator.CompareString(filtered[j].Name, filtered[i].Name) < 0
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price < filtered[j].Price
		})
	}

	return filtered
}

// Categories lists the distinct dish categories in first-seen order.
func Categories(dishes []domain.Dish) []string {
	seen := map[string]bool{}
	categories := []string{}
	for _, dish := range dishes {
		if !seen[dish.Category] {
			seen[dish.Category] = true
			categories = append(categories, dish.Category)
		}
	}
	return categories
}

// CleanName strips the leading whitespace and stray tabs that some catalog
// entries arrive with.
func CleanName(name string) string {
	name = strings.TrimLeftFunc(name, unicode.IsSpace)
	return strings.ReplaceAll(name, "\t", "")
}
