package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/ticketing/internal/access"
	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/Domenick1991/ticketing/internal/service/orders"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service orders.OrderUseCase
}

type orderResponse struct {
	ID         int64  `json:"id"`
	User       int64  `json:"user"`
	Event      int64  `json:"event"`
	Ticket     int64  `json:"ticket"`
	Quantity   int    `json:"quantity"`
	TotalPrice string `json:"total_price"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

func newOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:         o.ID,
		User:       o.UserID,
		Event:      o.EventID,
		Ticket:     o.TicketID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice.StringFixed(2),
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt.Format(time.RFC3339),
	}
}

func NewOrderHandler(service orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.modify(access.ActionUpdate))
	router.PATCH("/:id", h.modify(access.ActionUpdate))
	router.DELETE("/:id", h.modify(access.ActionDelete))
}

func (h *OrderHandler) create(c *gin.Context) {
	principal := principalFrom(c)
	if !principal.Authenticated() {
		writeError(c, domain.ErrUnauthorized)
		return
	}

	var req orders.PlaceOrderInput
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.service.PlaceOrder(c.Request.Context(), principal, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newOrderResponse(*order))
}

func (h *OrderHandler) list(c *gin.Context) {
	list, err := h.service.ListOrders(c.Request.Context(), principalFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]orderResponse, 0, len(list))
	for _, o := range list {
		resp = append(resp, newOrderResponse(o))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), principalFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newOrderResponse(*order))
}

// modify answers update and delete requests; orders never change once placed.
func (h *OrderHandler) modify(action access.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		if err := h.service.ModifyOrder(c.Request.Context(), principalFrom(c), id, action); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
