package routes

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pr-tracker-api-server/config"
	"pr-tracker-api-server/internal/auth"
	"pr-tracker-api-server/internal/cache"
	"pr-tracker-api-server/internal/models"
	"pr-tracker-api-server/internal/notify"
	"pr-tracker-api-server/internal/socket"
	"pr-tracker-api-server/internal/state"
	"pr-tracker-api-server/internal/supply"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type emptySource struct{}

func (emptySource) Requests() []models.PurchaseRequest { return nil }
func (emptySource) Loading() bool                      { return true }
func (emptySource) Revision() uint64                   { return 0 }
func (emptySource) Epoch() string                      { return "test" }

func (emptySource) Get(string) (models.PurchaseRequest, bool) {
	return models.PurchaseRequest{}, false
}

type noUsers struct{}

func (noUsers) FindByEmail(context.Context, string) (models.User, error) {
	return models.User{}, errors.New("unavailable")
}

func setup(t *testing.T, rate string) (*gin.Engine, *auth.Issuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	issuer, err := auth.NewIssuer("secret", "1h")
	require.NoError(t, err)
	cfg := config.Config{}
	cfg.RateLimit.Rate = rate
	cfg.Server.AllowedOrigins = []string{"http://localhost:5173"}

	router, err := SetupRouter(Deps{
		Config:   cfg,
		Logger:   zap.NewNop(),
		Issuer:   issuer,
		Users:    noUsers{},
		Source:   emptySource{},
		Notifier: notify.NewChannel(state.NewValue(models.Notification{})),
		Supply:   supply.NewService(supply.NewMemoryStore(), 0, zap.NewNop()),
		Cache:    cache.NewInMemoryCache(),
		Hub:      socket.NewHub(zap.NewNop()),
	})
	require.NoError(t, err)
	return router, issuer
}

func call(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, issuer := setup(t, "60-M")

	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/api/v1/purchase-requests", "", "").Code)

	token, err := issuer.GenerateJWT("u-1", "d@example.com", models.RoleDemand)
	require.NoError(t, err)
	w := call(r, http.MethodGet, "/api/v1/sync/status", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"loading":true,"revision":0,"count":0}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSupplyWritesAreRoleGatedAndLimited(t *testing.T) {
	r, issuer := setup(t, "1-M")
	demand, err := issuer.GenerateJWT("u-1", "d@example.com", models.RoleDemand)
	require.NoError(t, err)
	ops, err := issuer.GenerateJWT("u-2", "o@example.com", models.RoleSupplyOps)
	require.NoError(t, err)

	body := `{"agmId":"AGM-1","skuId":"SKU-1"}`
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodPost, "/api/v1/supply-inputs", demand, body).Code)
	assert.Equal(t, http.StatusCreated, call(r, http.MethodPost, "/api/v1/supply-inputs", ops, body).Code)
	assert.Equal(t, http.StatusTooManyRequests, call(r, http.MethodPost, "/api/v1/supply-inputs", ops, body).Code)

	// reads are not limited
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/v1/supply-inputs", demand, "").Code)
}

func TestExportWithoutStorage(t *testing.T) {
	r, issuer := setup(t, "60-M")
	admin, err := issuer.GenerateJWT("u-1", "a@example.com", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, call(r, http.MethodPost, "/api/v1/views/export", admin, `{"view":"all"}`).Code)
}

func TestLoginLookupFailure(t *testing.T) {
	r, _ := setup(t, "60-M")
	w := call(r, http.MethodPost, "/api/v1/auth/login", "", `{"email":"a@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
