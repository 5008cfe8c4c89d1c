package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weddingmoments/studio-backend/internal/catalog/domain"
	"github.com/weddingmoments/studio-backend/internal/catalog/service"
	"github.com/weddingmoments/studio-backend/internal/docstore"
)

type testEnv struct {
	router *gin.Engine
	store  *service.Store
	repo   docstore.Collection[domain.Service]
}

func setupEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := docstore.NewRedisCollection[domain.Service](client, "test", "services")
	store := service.NewStore(repo)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = store.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		client.Close()
		mr.Close()
	})

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	require.NoError(t, store.Feed().Wait(waitCtx))

	h := New(store)
	router := gin.New()
	h.RegisterPublic(router.Group("/api/v1"))
	h.RegisterAdmin(router.Group("/api/v1/admin"))

	return &testEnv{router: router, store: store, repo: repo}
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) waitForCount(t *testing.T, view service.View, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return len(e.store.List(view)) == n }, 2*time.Second, 10*time.Millisecond)
}

func validForm() gin.H {
	return gin.H{
		"name":        "Maternity Shoot",
		"description": "Glowing portraits",
		"subServices": []gin.H{
			{"name": "Photo Shoot Service", "pricePerDay": 900},
			{"name": "Album", "pricePerDay": 1500, "pricingType": "manual", "customUnit": "album"},
		},
	}
}

func TestCreateService(t *testing.T) {
	env := setupEnv(t)

	t.Run("creates a service from the form", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/api/v1/admin/services", validForm())
		require.Equal(t, http.StatusCreated, rr.Code)

		var resp struct {
			OK      bool           `json:"ok"`
			Service domain.Service `json:"service"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.Equal(t, "maternity-shoot", resp.Service.ID)
		assert.Equal(t, "album", resp.Service.SubServices[1].CustomUnit)
		env.waitForCount(t, service.ViewAdmin, 1)
	})

	t.Run("duplicate is a conflict", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/api/v1/admin/services", validForm())
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	invalid := map[string]gin.H{
		"missing name":        {"description": "d", "subServices": []gin.H{{"name": "a", "pricePerDay": 1}}},
		"blank description":   {"name": "n", "description": "  ", "subServices": []gin.H{{"name": "a", "pricePerDay": 1}}},
		"no sub-services":     {"name": "n", "description": "d", "subServices": []gin.H{}},
		"negative price":      {"name": "n", "description": "d", "subServices": []gin.H{{"name": "a", "pricePerDay": -5}}},
		"unnamed sub-service": {"name": "n", "description": "d", "subServices": []gin.H{{"name": "", "pricePerDay": 5}}},
	}
	for name, body := range invalid {
		t.Run("rejects "+name, func(t *testing.T) {
			rr := env.do(http.MethodPost, "/api/v1/admin/services", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), invalidFormMessage)
		})
	}

	t.Run("rejects repeated sub-service ids", func(t *testing.T) {
		body := gin.H{"name": "Twin", "description": "d", "subServices": []gin.H{
			{"id": "x", "name": "a", "pricePerDay": 100},
			{"id": "x", "name": "b", "pricePerDay": 900},
		}}
		rr := env.do(http.MethodPost, "/api/v1/admin/services", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "sub-service ids must be unique")
	})

	t.Run("invalid forms never reach the store", func(t *testing.T) {
		all, err := env.repo.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestStorefrontVisibility(t *testing.T) {
	env := setupEnv(t)
	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/api/v1/admin/services", validForm()).Code)
	env.waitForCount(t, service.ViewStorefront, 1)

	rr := env.do(http.MethodPost, "/api/v1/admin/services/maternity-shoot/toggle", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true,"isActive":false}`, rr.Body.String())

	env.waitForCount(t, service.ViewStorefront, 0)

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/v1/services/maternity-shoot", nil).Code)

	var list struct {
		Services []domain.Service `json:"services"`
	}
	rr = env.do(http.MethodGet, "/api/v1/admin/services", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list.Services, 1)
}

func TestUpdateAndDeleteService(t *testing.T) {
	env := setupEnv(t)
	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/api/v1/admin/services", validForm()).Code)

	rr := env.do(http.MethodPatch, "/api/v1/admin/services/maternity-shoot", gin.H{"offer": "10% OFF"})
	require.Equal(t, http.StatusOK, rr.Code)
	stored, err := env.repo.Get(context.Background(), "maternity-shoot")
	require.NoError(t, err)
	assert.Equal(t, "10% OFF", stored.Offer)

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPatch, "/api/v1/admin/services/maternity-shoot", gin.H{"name": " "}).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPatch, "/api/v1/admin/services/maternity-shoot", gin.H{"subServices": []gin.H{
		{"id": "s1", "name": "a", "pricePerDay": 1},
		{"id": "s1", "name": "b", "pricePerDay": 2},
	}}).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPatch, "/api/v1/admin/services/nope", gin.H{"offer": "x"}).Code)

	assert.Equal(t, http.StatusOK, env.do(http.MethodDelete, "/api/v1/admin/services/maternity-shoot", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, "/api/v1/admin/services/maternity-shoot", nil).Code)
}

func TestPricesAndStats(t *testing.T) {
	env := setupEnv(t)
	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/v1/admin/services/reset", nil).Code)
	env.waitForCount(t, service.ViewAdmin, 5)

	rr := env.do(http.MethodPut, "/api/v1/admin/pricing", gin.H{
		"prices": gin.H{"baby-shoot": gin.H{"baby-photo": 700}},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	require.Eventually(t, func() bool {
		svc, err := env.store.Get("baby-shoot", service.ViewAdmin)
		return err == nil && svc.SubServices[0].PricePerDay == 700
	}, 2*time.Second, 10*time.Millisecond)

	bad := env.do(http.MethodPut, "/api/v1/admin/pricing", gin.H{
		"prices": gin.H{"baby-shoot": gin.H{"baby-photo": -1}},
	})
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	var resp struct {
		Stats domain.Stats `json:"stats"`
	}
	rr = env.do(http.MethodGet, "/api/v1/admin/stats", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Stats.TotalServices)
	assert.Equal(t, float64(3000), resp.Stats.HighestPrice)
	assert.Equal(t, float64(500), resp.Stats.LowestPrice)
}

func TestExportAndImportPreview(t *testing.T) {
	env := setupEnv(t)
	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/v1/admin/services/reset", nil).Code)
	env.waitForCount(t, service.ViewAdmin, 5)

	rr := env.do(http.MethodGet, "/api/v1/admin/catalog/export", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), `filename="services-`)
	exported := rr.Body.Bytes()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/catalog/import", bytes.NewReader(exported))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Committed bool                  `json:"committed"`
		Preview   service.ImportPreview `json:"preview"`
		Message   string                `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Committed)
	assert.Equal(t, 5, resp.Preview.Count)
	assert.Equal(t, "Found 5 services in file", resp.Message)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/catalog/import", bytes.NewReader([]byte("not json")))
	rr = httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPricingUnits(t *testing.T) {
	env := setupEnv(t)
	rr := env.do(http.MethodGet, "/api/v1/pricing/units", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"label":"Per Day"`)
}
