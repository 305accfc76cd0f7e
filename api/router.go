package api

import (
	"github.com/Domenick1991/ticketing/internal/service/catalog"
	"github.com/Domenick1991/ticketing/internal/service/orders"
	"github.com/Domenick1991/ticketing/internal/service/users"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Services struct {
	Orders  orders.OrderUseCase
	Venues  catalog.VenueUseCase
	Events  catalog.EventUseCase
	Tickets catalog.TicketUseCase
	Users   users.UserUseCase
}

// NewRouter wires the REST resources onto a fresh gin engine.
func NewRouter(log *zap.Logger, tokens TokenParser, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), Authenticate(tokens))

	NewOrderHandler(svc.Orders).Register(router.Group("/orders"))
	NewVenueHandler(svc.Venues).Register(router.Group("/venues"))
	NewEventHandler(svc.Events).Register(router.Group("/events"))
	NewTicketHandler(svc.Tickets).Register(router.Group("/tickets"))
	NewUserHandler(svc.Users).Register(router.Group("/users"))

	return router
}
