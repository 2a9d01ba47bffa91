package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/farm_ledger/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger/internal/handlers"
	"github.com/SscSPs/farm_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

func newRouter(db handlers.Pinger, metricsHandler http.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers.RegisterRoutes(r, &config.Config{JWTSecret: "secret", AllowAnonymous: true}, &services.ServiceContainer{
		Material:    new(MockMaterialService),
		Budget:      new(MockBudgetService),
		Procurement: new(MockProcurementService),
		Reporting:   new(MockReportingService),
	}, db, metricsHandler)
	return r
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		db     handlers.Pinger
		status int
	}{
		{name: "no database", db: nil, status: http.StatusOK},
		{name: "database up", db: fakePinger{}, status: http.StatusOK},
		{name: "database down", db: fakePinger{err: errors.New("refused")}, status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/health", nil)

			newRouter(tt.db, nil).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestMetricsRouteOnlyWhenEnabled(t *testing.T) {
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	newRouter(nil, metricsHandler).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	newRouter(nil, nil).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
