package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/Domenick1991/ticketing/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	service catalog.EventUseCase
}

type eventResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Venue       int64  `json:"venue"`
	Organizer   int64  `json:"organizer"`
}

func newEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Date:        e.Date.Format(time.RFC3339),
		Venue:       e.VenueID,
		Organizer:   e.OrganizerID,
	}
}

func NewEventHandler(service catalog.EventUseCase) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *EventHandler) list(c *gin.Context) {
	events, err := h.service.ListEvents(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]eventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, newEventResponse(e))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	event, err := h.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newEventResponse(*event))
}

func (h *EventHandler) create(c *gin.Context) {
	var req catalog.EventInput
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.service.CreateEvent(c.Request.Context(), principalFrom(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newEventResponse(*event))
}

func (h *EventHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req catalog.EventInput
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.service.UpdateEvent(c.Request.Context(), principalFrom(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newEventResponse(*event))
}

func (h *EventHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteEvent(c.Request.Context(), principalFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
