package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-dashboard/internal/domain"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, server.Client()), server
}

func TestClient_Login(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/token/pair", r.URL.Path)

		var creds domain.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds.Username)

		json.NewEncoder(w).Encode(domain.TokenPair{Username: "alice", Access: "tok", Refresh: "ref"})
	})
	defer server.Close()

	pair, err := client.Login(context.Background(), domain.Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", pair.Access)
}

func TestClient_LoginRejected(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "No active account found"})
	})
	defer server.Close()

	_, err := client.Login(context.Background(), domain.Credentials{Username: "alice", Password: "bad"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "No active account found", apiErr.Detail)
}

func TestClient_ErrorFallbackWhenDetailMissing(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"not JSON", "<html>gateway timeout</html>"},
		{"no detail field", `{"error":"nope"}`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				io.WriteString(w, testCase.body)
			})
			defer server.Close()

			_, err := client.ListDishes(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, "Failed to fetch dishes", apiErr.Detail)
		})
	}
}

func TestClient_SubmitOrder(t *testing.T) {
	var received domain.Order
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dania/orders", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{}`)
	})
	defer server.Close()

	order := domain.Order{
		TableID:       4,
		EstimatedTime: 20,
		TotalPrice:    25,
		Dishes: []domain.CartEntry{
			{Dish: domain.Dish{ID: 1, Name: "Soup", Price: 5}, Quantity: 5},
		},
	}
	require.NoError(t, client.SubmitOrder(context.Background(), order, "tok"))
	assert.Equal(t, 4, received.TableID)
	assert.Equal(t, 25.0, received.TotalPrice)
	require.Len(t, received.Dishes, 1)
	assert.Equal(t, 5, received.Dishes[0].Quantity)
}

func TestClient_ListOrdersSendsBearer(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dania/orders", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]domain.OrderView{{ID: 7, Status: domain.StatusActive}})
	})
	defer server.Close()

	orders, err := client.ListOrders(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 7, orders[0].ID)
}

func TestClient_ListDishesIsUnauthenticated(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]domain.Dish{{ID: 1, Name: "Soup"}})
	})
	defer server.Close()

	dishes, err := client.ListDishes(context.Background())
	require.NoError(t, err)
	assert.Len(t, dishes, 1)
}

func TestClient_HideDish(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/dania/dania/9/hide", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(domain.Dish{ID: 9, IsVisible: false})
	})
	defer server.Close()

	dish, err := client.HideDish(context.Background(), 9, "tok")
	require.NoError(t, err)
	assert.Equal(t, 9, dish.ID)
	assert.False(t, dish.IsVisible)
}

func TestClient_UpdateOrderStatusSendsEmptyObject(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dania/orders/3/status", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{}`, string(body))
		json.NewEncoder(w).Encode(domain.OrderView{ID: 3, Status: domain.StatusCompleted})
	})
	defer server.Close()

	updated, err := client.UpdateOrderStatus(context.Background(), 3, "tok")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
}

func TestClient_CreateDishStreamsMultipart(t *testing.T) {
	const contentType = "multipart/form-data; boundary=xyz"
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dania/dania", r.URL.Path)
		assert.Equal(t, contentType, r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "--xyz")
		w.WriteHeader(http.StatusCreated)
	})
	defer server.Close()

	form := strings.NewReader("--xyz\r\nContent-Disposition: form-data; name=\"name\"\r\n\r\nSoup\r\n--xyz--\r\n")
	require.NoError(t, client.CreateDish(context.Background(), form, contentType, "tok"))
}

func TestClient_GenerateReport(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports/generate", r.URL.Path)
		var req domain.ReportRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "overall_income", req.FilterBy)
		json.NewEncoder(w).Encode(domain.ReportResponse{FileURL: "/media/report.pdf"})
	})
	defer server.Close()

	resp, err := client.GenerateReport(context.Background(), domain.ReportRequest{
		StartDate: "2025-05-01",
		EndDate:   "2025-05-04",
		FilterBy:  "overall_income",
	})
	require.NoError(t, err)
	assert.Equal(t, "/media/report.pdf", resp.FileURL)
}

func TestClient_CurrentUser(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(domain.UserInfo{Username: "alice", IsStaff: true})
	})
	defer server.Close()

	user, err := client.CurrentUser(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, user.IsStaff)
}
