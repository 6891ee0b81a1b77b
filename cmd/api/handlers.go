package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	"restaurant/pkg/logger"
	"restaurant/pkg/menu"
	"restaurant/pkg/order"
	"restaurant/pkg/otel"
	"restaurant/pkg/restaurant"
	"restaurant/pkg/validation"
)

type handlers struct {
	svc *restaurant.Service
	log *logger.Logger
}

func newRouter(h *handlers, tracer trace.Tracer) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(traceMiddleware(tracer))
	r.Use(h.accessLogMiddleware)

	r.HandleFunc("/menu", h.addMenuItemHandler).Methods(http.MethodPost)
	r.HandleFunc("/menu", h.listMenuHandler).Methods(http.MethodGet)
	r.HandleFunc("/menu/{id:[0-9]+}", h.getMenuItemHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/orders").Subrouter()
	api.HandleFunc("", h.createOrderHandler).Methods(http.MethodPost)
	api.HandleFunc("", h.listOrdersHandler).Methods(http.MethodGet)
	api.HandleFunc("/{id:[0-9]+}", h.getOrderHandler).Methods(http.MethodGet)
	api.HandleFunc("/{id:[0-9]+}/items", h.addItemToOrderHandler).Methods(http.MethodPost)
	api.HandleFunc("/{id:[0-9]+}/complete", h.completeOrderHandler).Methods(http.MethodPost)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

// addMenuItemRequest is the payload for adding a menu item.
type addMenuItemRequest struct {
	Name  string      `json:"name"`
	Price json.Number `json:"price" swaggertype:"number"`
}

// addItemRequest is the payload for adding a line to an order.
type addItemRequest struct {
	MenuItemID int         `json:"menu_item_id"`
	Quantity   json.Number `json:"quantity" swaggertype:"integer"`
}

// menuItemResponse is a menu item as rendered to clients.
type menuItemResponse struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price" swaggertype:"string"`
	Label string          `json:"label"`
}

// orderResponse is an order as rendered to clients.
type orderResponse struct {
	ID        int             `json:"id"`
	Lines     []order.Line    `json:"lines"`
	Total     decimal.Decimal `json:"total" swaggertype:"string"`
	Completed bool            `json:"completed"`
	Status    order.Status    `json:"status"`
	Summary   string          `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func toMenuItemResponse(i menu.Item) menuItemResponse {
	return menuItemResponse{ID: i.ID, Name: i.Name, Price: i.Price, Label: i.String()}
}

func toOrderResponse(o order.Order) orderResponse {
	return orderResponse{
		ID:        o.ID,
		Lines:     o.Lines(),
		Total:     o.Total,
		Completed: o.Completed,
		Status:    o.Status(),
		Summary:   o.Describe(),
	}
}

// addMenuItemHandler adds an item to the menu.
// @Summary Add menu item
// @Accept json
// @Produce json
// @Param item body addMenuItemRequest true "Menu item"
// @Success 201 {object} menuItemResponse
// @Failure 400 {object} errorResponse
// @Router /menu [post]
func (h *handlers) addMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "addMenuItemHandler")
	defer span.End()

	var req addMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	price, err := validation.ParsePrice(req.Price.String())
	if err != nil {
		h.writeError(w, r.WithContext(ctx), err)
		return
	}
	item, err := h.svc.AddMenuItem(ctx, req.Name, price)
	if err != nil {
		h.writeError(w, r.WithContext(ctx), err)
		return
	}
	writeJSON(w, http.StatusCreated, toMenuItemResponse(item))
}

// listMenuHandler lists menu items.
// @Summary List menu
// @Produce json
// @Success 200 {array} menuItemResponse
// @Router /menu [get]
func (h *handlers) listMenuHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listMenuHandler")
	defer span.End()

	items := h.svc.Menu(ctx)
	out := make([]menuItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, toMenuItemResponse(i))
	}
	writeJSON(w, http.StatusOK, out)
}

// getMenuItemHandler retrieves a menu item by ID.
// @Summary Get menu item
// @Produce json
// @Param id path int true "Menu item ID"
// @Success 200 {object} menuItemResponse
// @Failure 404 {object} errorResponse
// @Router /menu/{id} [get]
func (h *handlers) getMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getMenuItemHandler")
	defer span.End()

	id, ok := pathID(r)
	if !ok {
		h.writeError(w, r.WithContext(ctx), restaurant.SelectionError{Kind: restaurant.KindMenuItem})
		return
	}
	item, ok := h.svc.MenuItem(ctx, id)
	if !ok {
		h.writeError(w, r.WithContext(ctx), restaurant.SelectionError{Kind: restaurant.KindMenuItem, ID: id})
		return
	}
	writeJSON(w, http.StatusOK, toMenuItemResponse(item))
}

// createOrderHandler opens a new empty order.
// @Summary Create order
// @Produce json
// @Success 201 {object} orderResponse
// @Router /orders [post]
func (h *handlers) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createOrderHandler")
	defer span.End()

	o := h.svc.CreateOrder(ctx)
	writeJSON(w, http.StatusCreated, toOrderResponse(o))
}

// listOrdersHandler lists orders.
// @Summary List orders
// @Produce json
// @Success 200 {array} orderResponse
// @Router /orders [get]
func (h *handlers) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listOrdersHandler")
	defer span.End()

	orders := h.svc.Orders(ctx)
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, out)
}

// getOrderHandler retrieves an order by ID.
// @Summary Get order
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} orderResponse
// @Failure 404 {object} errorResponse
// @Router /orders/{id} [get]
func (h *handlers) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getOrderHandler")
	defer span.End()

	id, ok := pathID(r)
	if !ok {
		h.writeError(w, r.WithContext(ctx), restaurant.SelectionError{Kind: restaurant.KindOrder})
		return
	}
	o, ok := h.svc.Order(ctx, id)
	if !ok {
		h.writeError(w, r.WithContext(ctx), restaurant.SelectionError{Kind: restaurant.KindOrder, ID: id})
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

// addItemToOrderHandler adds a menu item to an order.
// @Summary Add item to order
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param line body addItemRequest true "Line item"
// @Success 200 {object} orderResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /orders/{id}/items [post]
func (h *handlers) addItemToOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "addItemToOrderHandler")
	defer span.End()

	id, ok := pathID(r)
	if !ok {
		h.writeError(w, r.WithContext(ctx), restaurant.SelectionError{Kind: restaurant.KindOrder})
		return
	}
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	qty, err := validation.ParseQuantity(req.Quantity.String())
	if err != nil {
		h.writeError(w, r.WithContext(ctx), err)
		return
	}
	o, err := h.svc.AddItemToOrder(ctx, id, req.MenuItemID, qty)
	if err != nil {
		h.writeError(w, r.WithContext(ctx), err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

// completeOrderHandler marks an order as completed.
// @Summary Complete order
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} orderResponse
// @Failure 404 {object} errorResponse
// @Router /orders/{id}/complete [post]
func (h *handlers) completeOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "completeOrderHandler")
	defer span.End()

	id, ok := pathID(r)
	if !ok {
		h.writeError(w, r.WithContext(ctx), restaurant.SelectionError{Kind: restaurant.KindOrder})
		return
	}
	o, err := h.svc.CompleteOrder(ctx, id)
	if err != nil {
		h.writeError(w, r.WithContext(ctx), err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr validation.ValidationError
	var serr restaurant.SelectionError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.As(err, &serr):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: serr.Error()})
	case errors.Is(err, restaurant.ErrOrderCompleted):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		h.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// pathID reads the {id} route variable. The route only matches digits, so
// failure means the id does not fit in an int.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, false
	}
	return id, true
}

const requestIDHeader = "X-Request-ID"

// requestIDMiddleware echoes the caller's request id or assigns a new one.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func traceMiddleware(tracer trace.Tracer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := otel.InjectTracing(r.Context(), tracer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *handlers) accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.log.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"request_id", r.Header.Get(requestIDHeader),
			"duration", time.Since(start).String(),
		)
	})
}
