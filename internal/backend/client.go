package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"resto-dashboard/internal/domain"
)

// HTTPClient lets tests substitute the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// API is the restaurant backend collaborator. Every method maps to one
// upstream endpoint; bearer-token methods take the token explicitly.
type API interface {
	Register(ctx context.Context, reg domain.Registration) (domain.UserInfo, error)
	Login(ctx context.Context, creds domain.Credentials) (domain.TokenPair, error)
	CurrentUser(ctx context.Context, token string) (domain.UserInfo, error)
	ListDishes(ctx context.Context) ([]domain.Dish, error)
	CreateDish(ctx context.Context, form io.Reader, contentType, token string) error
	HideDish(ctx context.Context, dishID int, token string) (domain.Dish, error)
	ListAllergens(ctx context.Context) ([]domain.Allergen, error)
	ListOrders(ctx context.Context, token string) ([]domain.OrderView, error)
	SubmitOrder(ctx context.Context, order domain.Order, token string) error
	UpdateOrderStatus(ctx context.Context, orderID int, token string) (domain.OrderView, error)
	GenerateReport(ctx context.Context, req domain.ReportRequest) (domain.ReportResponse, error)
}

// APIError carries the upstream status and detail so proxy routes can
// forward both verbatim.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return e.Detail
}

type Client struct {
	baseURL string
	client  HTTPClient
}

func NewClient(baseURL string, client HTTPClient) *Client {
	return &Client{baseURL: baseURL, client: client}
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.UserInfo, error) {
	var user domain.UserInfo
	err := c.doJSON(ctx, http.MethodPost, "/users/register", reg, "", &user, "Failed to register user")
	return user, err
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.TokenPair, error) {
	var pair domain.TokenPair
	err := c.doJSON(ctx, http.MethodPost, "/users/token/pair", creds, "", &pair, "Invalid credentials")
	return pair, err
}

func (c *Client) CurrentUser(ctx context.Context, token string) (domain.UserInfo, error) {
	var user domain.UserInfo
	err := c.doJSON(ctx, http.MethodGet, "/users/me", nil, token, &user, "Failed to fetch user role")
	return user, err
}

func (c *Client) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	var dishes []domain.Dish
	err := c.doJSON(ctx, http.MethodGet, "/dania/dania", nil, "", &dishes, "Failed to fetch dishes")
	return dishes, err
}

// CreateDish re-streams a multipart form untouched; contentType must carry
// the original boundary.
func (c *Client) CreateDish(ctx context.Context, form io.Reader, contentType, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/dania/dania", form)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("create dish: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, "Failed to create dish")
	}
	return nil
}

func (c *Client) HideDish(ctx context.Context, dishID int, token string) (domain.Dish, error) {
	var dish domain.Dish
	path := fmt.Sprintf("/dania/dania/%d/hide", dishID)
	err := c.doJSON(ctx, http.MethodPost, path, nil, token, &dish, "Failed to hide dish")
	return dish, err
}

func (c *Client) ListAllergens(ctx context.Context) ([]domain.Allergen, error) {
	var allergens []domain.Allergen
	err := c.doJSON(ctx, http.MethodGet, "/dania/alergeny", nil, "", &allergens, "Failed to fetch allergens")
	return allergens, err
}

func (c *Client) ListOrders(ctx context.Context, token string) ([]domain.OrderView, error) {
	var orders []domain.OrderView
	err := c.doJSON(ctx, http.MethodGet, "/dania/orders", nil, token, &orders, "Failed to fetch orders")
	return orders, err
}

func (c *Client) SubmitOrder(ctx context.Context, order domain.Order, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/dania/orders", order, token, nil, "Failed to submit order")
}

// UpdateOrderStatus archives an order. The body is an empty JSON object;
// the backend owns the Active -> Completed transition.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int, token string) (domain.OrderView, error) {
	var updated domain.OrderView
	path := fmt.Sprintf("/dania/orders/%d/status", orderID)
	err := c.doJSON(ctx, http.MethodPost, path, struct{}{}, token, &updated, "Failed to update order status")
	return updated, err
}

func (c *Client) GenerateReport(ctx context.Context, report domain.ReportRequest) (domain.ReportResponse, error) {
	var resp domain.ReportResponse
	err := c.doJSON(ctx, http.MethodPost, "/reports/generate", report, "", &resp, "Failed to generate report")
	return resp, err
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, token string, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, fallback)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// decodeError extracts the backend's {"detail": ...} body, falling back to
// a per-operation generic message when it is absent or unreadable.
func decodeError(resp *http.Response, fallback string) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	detail := fallback
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Detail != "" {
		detail = payload.Detail
	}
	return &APIError{Status: resp.StatusCode, Detail: detail}
}

var _ API = (*Client)(nil)
