package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domenick1991/ticketing/internal/access"
	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/Domenick1991/ticketing/internal/service/orders"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestNewRouter_OrderRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := &MockTokenParser{}
	tokens.On("Parse", "alice").Return(customer, nil)

	orderService := &MockOrderUseCase{}
	orderService.On("ModifyOrder", mock.Anything, customer, int64(1), mock.AnythingOfType("access.Action")).Return(domain.ErrMethodNotAllowed)
	orderService.On("PlaceOrder", mock.Anything, customer, orders.PlaceOrderInput{TicketID: 1, Quantity: 1000}).Return(nil, domain.ErrInsufficientInventory)

	router := NewRouter(zap.NewNop(), tokens, Services{
		Orders:  orderService,
		Venues:  &MockVenueUseCase{},
		Events:  &MockEventUseCase{},
		Tickets: &MockTicketUseCase{},
		Users:   &MockUserUseCase{},
	})

	testCases := []struct {
		method string
		path   string
		body   string
		auth   string
		status int
	}{
		{method: "POST", path: "/orders", body: `{"ticket": 1, "quantity": 1}`, status: http.StatusUnauthorized},
		{method: "POST", path: "/orders", body: `{"ticket": 1, "quantity": 1000}`, auth: "Bearer alice", status: http.StatusConflict},
		{method: "PUT", path: "/orders/1", body: `{}`, auth: "Bearer alice", status: http.StatusMethodNotAllowed},
		{method: "PATCH", path: "/orders/1", body: `{}`, auth: "Bearer alice", status: http.StatusMethodNotAllowed},
		{method: "DELETE", path: "/orders/1", auth: "Bearer alice", status: http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
		})
	}

	orderService.AssertCalled(t, "ModifyOrder", mock.Anything, customer, int64(1), access.ActionDelete)
}
