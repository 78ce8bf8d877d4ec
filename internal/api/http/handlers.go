package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"resto-dashboard/internal/auth"
	"resto-dashboard/internal/backend"
	"resto-dashboard/internal/cart"
	"resto-dashboard/internal/domain"
	"resto-dashboard/internal/menu"
	"resto-dashboard/internal/order"
	"resto-dashboard/internal/session"
)

type Handler struct {
	Backend  backend.API
	Carts    cart.Store
	Menu     *menu.Service
	Composer *order.Composer
	Gateway  *order.Gateway
	QR       order.QRGenerator

	// SecureCookies is off in development so the dashboard works over
	// plain HTTP.
	SecureCookies bool
}

func NewHandler(api backend.API, carts cart.Store, menuSvc *menu.Service, composer *order.Composer, gateway *order.Gateway, qr order.QRGenerator, secureCookies bool) *Handler {
	return &Handler{
		Backend:       api,
		Carts:         carts,
		Menu:          menuSvc,
		Composer:      composer,
		Gateway:       gateway,
		QR:            qr,
		SecureCookies: secureCookies,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/register", h.register).Methods("POST")
	r.HandleFunc("/api/login", h.login).Methods("POST")
	r.HandleFunc("/api/logout", h.logout).Methods("POST")
	r.HandleFunc("/api/user", h.currentUser).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/menu", h.createDish).Methods("POST")
	r.HandleFunc("/api/menu/categories", h.getCategories).Methods("GET")
	r.HandleFunc("/api/menu/{dishId}/hide", h.hideDish).Methods("POST")
	r.HandleFunc("/api/allergens", h.getAllergens).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/items/{dishId}", h.removeCartItem).Methods("DELETE")

	r.HandleFunc("/api/orders", h.submitOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/active", h.getActiveOrders).Methods("GET")
	r.HandleFunc("/api/orders/archive", h.getArchivedOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/api/archive", h.archiveOrder).Methods("POST")

	r.HandleFunc("/api/dashboard/summary", h.getSummary).Methods("GET")
	r.HandleFunc("/api/reports", h.generateReport).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "resto-dashboard",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

type registerRequest struct {
	Username         string `json:"username"`
	Password         string `json:"password"`
	Email            string `json:"email"`
	RepeatedPassword string `json:"repeated_password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RepeatedPassword != "" && req.RepeatedPassword != req.Password {
		respondDetail(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	user, err := h.Backend.Register(r.Context(), domain.Registration{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pair, err := h.Backend.Login(r.Context(), creds)
	if err != nil {
		h.upstreamError(w, err)
		return
	}

	auth.SetAccessToken(w, pair.Access, h.SecureCookies)
	respondJSON(w, http.StatusOK, map[string]string{
		"username": pair.Username,
		"message":  "Logged in successfully",
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	auth.DeleteAccessToken(w, h.SecureCookies)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.AccessToken(r)
	if !ok {
		respondDetail(w, http.StatusUnauthorized, "Unauthorized: No access token found")
		return
	}

	user, err := h.Backend.CurrentUser(r.Context(), token)
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	dishes, err := h.Menu.Filtered(r.Context(), filter)
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dishes)
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Menu.Categories(r.Context())
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *Handler) createDish(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.AccessToken(r)
	if !ok {
		respondDetail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.Backend.CreateDish(r.Context(), r.Body, r.Header.Get("Content-Type"), token); err != nil {
		h.upstreamError(w, err)
		return
	}

	h.Menu.Invalidate(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"message": "Dish created successfully"})
}

func (h *Handler) hideDish(w http.ResponseWriter, r *http.Request) {
	dishID, err := strconv.Atoi(mux.Vars(r)["dishId"])
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid dish ID")
		return
	}
	token, ok := auth.AccessToken(r)
	if !ok {
		respondDetail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	dish, err := h.Backend.HideDish(r.Context(), dishID, token)
	if err != nil {
		h.upstreamError(w, err)
		return
	}

	h.Menu.Invalidate(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Dish hidden successfully",
		"dish":    dish,
	})
}

func (h *Handler) getAllergens(w http.ResponseWriter, r *http.Request) {
	allergens, err := h.Backend.ListAllergens(r.Context())
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, allergens)
}

type cartView struct {
	Items      []domain.CartEntry `json:"items"`
	TotalPrice float64            `json:"total_price"`
}

// newCartView normalizes a nil entry slice so an empty cart serializes as
// "items": [] no matter which store backs it.
func newCartView(entries []domain.CartEntry) cartView {
	if entries == nil {
		entries = []domain.CartEntry{}
	}
	return cartView{Items: entries, TotalPrice: cart.Total(entries)}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	sessionID := session.ID(w, r)
	entries, err := h.Carts.Entries(r.Context(), sessionID)
	if err != nil {
		respondDetail(w, http.StatusInternalServerError, "Failed to read cart")
		return
	}
	respondJSON(w, http.StatusOK, newCartView(entries))
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var dish domain.Dish
	if err := json.NewDecoder(r.Body).Decode(&dish); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sessionID := session.ID(w, r)
	if err := h.Carts.Add(r.Context(), sessionID, dish); err != nil {
		respondDetail(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	h.respondCart(w, r, sessionID)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	dishID, err := strconv.Atoi(mux.Vars(r)["dishId"])
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid dish ID")
		return
	}

	sessionID := session.ID(w, r)
	if err := h.Carts.Remove(r.Context(), sessionID, dishID); err != nil {
		respondDetail(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	h.respondCart(w, r, sessionID)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := session.ID(w, r)
	if err := h.Carts.Clear(r.Context(), sessionID); err != nil {
		respondDetail(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	h.respondCart(w, r, sessionID)
}

func (h *Handler) respondCart(w http.ResponseWriter, r *http.Request, sessionID string) {
	entries, err := h.Carts.Entries(r.Context(), sessionID)
	if err != nil {
		respondDetail(w, http.StatusInternalServerError, "Failed to read cart")
		return
	}
	respondJSON(w, http.StatusOK, newCartView(entries))
}

func (h *Handler) submitOrder(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.AccessToken(r)
	if !ok {
		respondDetail(w, http.StatusUnauthorized, "Unauthorized: No access token found")
		return
	}

	var req order.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sessionID := session.ID(w, r)
	entries, err := h.Carts.Entries(r.Context(), sessionID)
	if err != nil {
		respondDetail(w, http.StatusInternalServerError, "Failed to read cart")
		return
	}

	composed, err := h.Composer.Compose(entries, req)
	if err != nil {
		respondDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Gateway.Submit(r.Context(), sessionID, composed, token); err != nil {
		if errors.Is(err, order.ErrSubmissionInFlight) {
			respondDetail(w, http.StatusConflict, err.Error())
			return
		}
		h.upstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Order submitted successfully"})
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.fetchOrders(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) getActiveOrders(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.fetchOrders(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, order.ActiveOrders(orders))
}

func (h *Handler) getArchivedOrders(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.fetchOrders(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, order.ArchivedOrders(orders))
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.fetchOrders(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, order.Summarize(orders, time.Now()))
}

func (h *Handler) fetchOrders(w http.ResponseWriter, r *http.Request) ([]domain.OrderView, bool) {
	token, ok := auth.AccessToken(r)
	if !ok {
		respondDetail(w, http.StatusUnauthorized, "Unauthorized: No access token found")
		return nil, false
	}
	orders, err := h.Backend.ListOrders(r.Context(), token)
	if err != nil {
		h.upstreamError(w, err)
		return nil, false
	}
	return orders, true
}

type archiveRequest struct {
	OrderID int `json:"order_id"`
}

func (h *Handler) archiveOrder(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.AccessToken(r)
	if !ok {
		respondDetail(w, http.StatusUnauthorized, "Unauthorized: No access token found")
		return
	}

	var req archiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.Backend.UpdateOrderStatus(r.Context(), req.OrderID, token)
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	png, err := h.QR.Generate(orderID)
	if err != nil {
		respondDetail(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) generateReport(w http.ResponseWriter, r *http.Request) {
	var req domain.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := h.Backend.GenerateReport(r.Context(), req)
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// upstreamError forwards the backend's status and detail verbatim; anything
// that never produced a backend response becomes a 502.
func (h *Handler) upstreamError(w http.ResponseWriter, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		respondDetail(w, apiErr.Status, apiErr.Detail)
		return
	}
	log.Printf("ERROR: backend request failed: %v", err)
	respondDetail(w, http.StatusBadGateway, err.Error())
}

func filterFromQuery(r *http.Request) menu.Filter {
	q := r.URL.Query()
	filter := menu.Filter{
		Categories: q["category"],
		Search:     q.Get("search"),
		Sort:       menu.SortKey(q.Get("sort")),
	}
	if raw := q.Get("max_price"); raw != "" {
		if maxPrice, err := strconv.ParseFloat(raw, 64); err == nil && maxPrice >= 0 {
			filter.MaxPrice = &maxPrice
		}
	}
	return filter
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}
