package api

import (
	"net/http"

	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/Domenick1991/ticketing/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type VenueHandler struct {
	service catalog.VenueUseCase
}

type venueResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
}

func newVenueResponse(v domain.Venue) venueResponse {
	return venueResponse{ID: v.ID, Name: v.Name, Address: v.Address, Capacity: v.Capacity}
}

func NewVenueHandler(service catalog.VenueUseCase) *VenueHandler {
	return &VenueHandler{service: service}
}

func (h *VenueHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *VenueHandler) list(c *gin.Context) {
	venues, err := h.service.ListVenues(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]venueResponse, 0, len(venues))
	for _, v := range venues {
		resp = append(resp, newVenueResponse(v))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VenueHandler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	venue, err := h.service.GetVenue(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newVenueResponse(*venue))
}

func (h *VenueHandler) create(c *gin.Context) {
	var req catalog.VenueInput
	if !bindJSON(c, &req) {
		return
	}

	venue, err := h.service.CreateVenue(c.Request.Context(), principalFrom(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newVenueResponse(*venue))
}

func (h *VenueHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req catalog.VenueInput
	if !bindJSON(c, &req) {
		return
	}

	venue, err := h.service.UpdateVenue(c.Request.Context(), principalFrom(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newVenueResponse(*venue))
}

func (h *VenueHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteVenue(c.Request.Context(), principalFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
