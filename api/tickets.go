package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/Domenick1991/ticketing/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	service catalog.TicketUseCase
}

type ticketResponse struct {
	ID                int64  `json:"id"`
	Event             int64  `json:"event"`
	Type              string `json:"type"`
	Price             string `json:"price"`
	Quantity          int    `json:"quantity"`
	AvailableQuantity int    `json:"available_quantity"`
}

func newTicketResponse(t domain.TicketType) ticketResponse {
	return ticketResponse{
		ID:                t.ID,
		Event:             t.EventID,
		Type:              string(t.Category),
		Price:             t.Price.StringFixed(2),
		Quantity:          t.Quantity,
		AvailableQuantity: t.Available,
	}
}

func NewTicketHandler(service catalog.TicketUseCase) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

// list accepts an optional ?event= filter.
func (h *TicketHandler) list(c *gin.Context) {
	var eventID int64
	if raw := c.Query("event"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeError(c, domain.Invalid("event", "event must be a positive integer"))
			return
		}
		eventID = id
	}

	tickets, err := h.service.ListTickets(c.Request.Context(), eventID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]ticketResponse, 0, len(tickets))
	for _, t := range tickets {
		resp = append(resp, newTicketResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TicketHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ticket, err := h.service.GetTicket(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTicketResponse(*ticket))
}

func (h *TicketHandler) create(c *gin.Context) {
	var req catalog.TicketInput
	if !bindJSON(c, &req) {
		return
	}

	ticket, err := h.service.CreateTicket(c.Request.Context(), principalFrom(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTicketResponse(*ticket))
}

func (h *TicketHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req catalog.TicketInput
	if !bindJSON(c, &req) {
		return
	}

	ticket, err := h.service.UpdateTicket(c.Request.Context(), principalFrom(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTicketResponse(*ticket))
}

func (h *TicketHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteTicket(c.Request.Context(), principalFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
