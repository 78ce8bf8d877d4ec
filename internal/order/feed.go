package order

import (
	"sort"
	"time"

	"resto-dashboard/internal/domain"
)

// Summary carries the dashboard's headline numbers derived from the order
// feed.
type Summary struct {
	ActiveOrders     int    `json:"active_orders"`
	OrdersToday      int    `json:"orders_today"`
	MostPopularDish  string `json:"most_popular_dish,omitempty"`
	MostPopularCount int    `json:"most_popular_count,omitempty"`
}

// ActiveOrders keeps only orders still marked Active, in feed order.
func ActiveOrders(orders []domain.OrderView) []domain.OrderView {
	active := []domain.OrderView{}
	for _, o := range orders {
		if o.Status == domain.StatusActive {
			active = append(active, o)
		}
	}
	return active
}

// ArchivedOrders keeps completed orders, newest first.
func ArchivedOrders(orders []domain.OrderView) []domain.OrderView {
	archived := []domain.OrderView{}
	for _, o := range orders {
		if o.Completed() {
			archived = append(archived, o)
		}
	}
	sort.SliceStable(archived, func(i, j int) bool {
		return archived[i].CreatedAt.After(archived[j].CreatedAt)
	})
	return archived
}

// Summarize computes the feed aggregates relative to now: active order
// count, orders created on the same calendar day as now (local time,
// time-of-day ignored), and today's most popular dish by summed line-item
// quantity. A line item without a quantity counts as one unit. Popularity
// ties go to the dish seen first in feed order.
func Summarize(orders []domain.OrderView, now time.Time) Summary {
	s := Summary{}

	counts := map[string]int{}
	var firstSeen []string

	for _, o := range orders {
		if o.Status == domain.StatusActive {
			s.ActiveOrders++
		}
		if !sameDay(o.CreatedAt, now) {
			continue
		}
		s.OrdersToday++
		for _, item := range o.Items {
			if item.Name == "" {
				continue
			}
			qty := item.Quantity
			if qty < 1 {
				qty = 1
			}
			if _, ok := counts[item.Name]; !ok {
				firstSeen = append(firstSeen, item.Name)
			}
			counts[item.Name] += qty
		}
	}

	for _, name := range firstSeen {
		if counts[name] > s.MostPopularCount {
			s.MostPopularDish = name
			s.MostPopularCount = counts[name]
		}
	}

	return s
}

func sameDay(t, ref time.Time) bool {
	t = t.In(ref.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
