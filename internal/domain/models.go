package domain

import "time"

// Order statuses as reported by the backend. The dashboard filters on
// these two values; an order with any other status appears in neither the
// active nor the archived view.
const (
	StatusActive    = "Active"
	StatusCompleted = "Completed"
)

type Allergen struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Dish is a catalog item. It carries no quantity; a dish placed in a cart
// becomes a CartEntry.
type Dish struct {
	ID          int        `json:"id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Category    string     `json:"category"`
	IsAvailable bool       `json:"is_available"`
	IsVisible   bool       `json:"is_visible"`
	ImageURL    string     `json:"image_url,omitempty"`
	Allergens   []Allergen `json:"allergens,omitempty"`
}

// CartEntry is a dish snapshot plus the number of units requested.
// Quantity is always >= 1 inside a cart.
type CartEntry struct {
	Dish
	Quantity int `json:"quantity"`
}

// Order is the outbound payload submitted to the backend. Field names match
// the backend's order intake contract.
type Order struct {
	TableID       int         `json:"tableId"`
	EstimatedTime int         `json:"estimatedTime"`
	CreatedAt     time.Time   `json:"createdAt"`
	TotalPrice    float64     `json:"totalPrice"`
	Notes         string      `json:"notes,omitempty"`
	Dishes        []CartEntry `json:"dishes"`
}

// OrderView is a persisted order as returned by the backend.
type OrderView struct {
	ID            int         `json:"id"`
	TableNumber   int         `json:"table_number"`
	EstimatedTime int         `json:"estimated_time"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	TotalAmount   float64     `json:"total_amount"`
	Notes         string      `json:"notes"`
	Items         []CartEntry `json:"items"`
}

// Completed reports whether the order has reached its terminal status.
// The only transition the dashboard performs is Active -> Completed.
func (o OrderView) Completed() bool {
	return o.Status == StatusCompleted
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

type TokenPair struct {
	Username string `json:"username"`
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
}

type UserInfo struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	IsAuthenticated bool   `json:"is_authenticated"`
	IsStaff         bool   `json:"is_staff"`
}

// ReportRequest dates are backend-formatted (YYYY-MM-DD) and passed through
// untouched.
type ReportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	FilterBy  string `json:"filter_by"`
}

type ReportResponse struct {
	FileURL string `json:"file_url"`
}
