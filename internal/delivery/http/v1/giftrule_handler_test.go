package v1

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geeta-backend/internal/domain"
	infracache "geeta-backend/internal/infrastructure/cache"
	"geeta-backend/internal/repository/memrepo"
	"geeta-backend/internal/rulecache"
	"geeta-backend/internal/usecase"
)

type stubProductRepo struct {
	known map[uuid.UUID]domain.ProductSnapshot
}

func (s *stubProductRepo) GetProductSnapshot(_ context.Context, id uuid.UUID) (*domain.ProductSnapshot, error) {
	p, ok := s.known[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "product", ID: id.String()}
	}
	return &p, nil
}

// brokenRuleRepo simulates a store outage on listings.
type brokenRuleRepo struct {
	*memrepo.GiftRuleRepository
}

func (b *brokenRuleRepo) ListGiftRules(context.Context, domain.GiftRuleFilter) ([]domain.GiftRule, error) {
	return nil, &domain.TransientError{Op: "gift_rules.list", Err: errors.New("dial tcp: connection refused")}
}

type testServer struct {
	mux     *http.ServeMux
	product domain.ProductSnapshot
}

func newTestServer(t *testing.T, ruleRepo domain.GiftRuleRepository) *testServer {
	t.Helper()

	product := domain.ProductSnapshot{ID: uuid.New(), Name: "Copper Bottle", Price: 49900}
	products := &stubProductRepo{known: map[uuid.UUID]domain.ProductSnapshot{product.ID: product}}

	rc := rulecache.New(ruleRepo, infracache.NewMemoryCache(time.Minute, time.Hour), time.Minute)
	adminHandler := NewAdminGiftRuleHandler(usecase.NewGiftRuleUsecase(ruleRepo, products, rc))
	publicHandler := NewGiftRuleHandler(usecase.NewEligibilityUsecase(rc))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/gift-rules", publicHandler.GetActiveGiftRules)
	mux.HandleFunc("GET /api/v1/cart/gift-eligibility", publicHandler.GetGiftEligibility)
	mux.HandleFunc("GET /api/v1/admin/gift-rules", adminHandler.ListGiftRules)
	mux.HandleFunc("POST /api/v1/admin/gift-rules", adminHandler.CreateGiftRule)
	mux.HandleFunc("GET /api/v1/admin/gift-rules/{id}", adminHandler.GetGiftRule)
	mux.HandleFunc("PUT /api/v1/admin/gift-rules/{id}", adminHandler.UpdateGiftRule)
	mux.HandleFunc("DELETE /api/v1/admin/gift-rules/{id}", adminHandler.DeleteGiftRule)

	return &testServer{mux: mux, product: product}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, domain.Response) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	var resp domain.Response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func (s *testServer) createRule(t *testing.T, threshold int64, status string) uuid.UUID {
	t.Helper()

	body := `{"minCartValue": ` + strconv.FormatInt(threshold, 10) +
		`, "giftProductId": "` + s.product.ID.String() + `", "status": "` + status + `"}`
	rec, resp := s.do(t, http.MethodPost, "/api/v1/admin/gift-rules", body)
	require.Equal(t, http.StatusCreated, rec.Code, resp.Message)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var rule domain.GiftRule
	require.NoError(t, json.Unmarshal(data, &rule))
	return rule.ID
}

func TestCreateGiftRule_Created(t *testing.T) {
	s := newTestServer(t, memrepo.NewGiftRuleRepository())

	body := `{"minCartValue": 20000, "giftProductId": "` + s.product.ID.String() + `"}`
	rec, resp := s.do(t, http.MethodPost, "/api/v1/admin/gift-rules", body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
}

func TestCreateGiftRule_ValidationIs400(t *testing.T) {
	s := newTestServer(t, memrepo.NewGiftRuleRepository())

	body := `{"minCartValue": -10, "giftProductId": "` + s.product.ID.String() + `"}`
	rec, resp := s.do(t, http.MethodPost, "/api/v1/admin/gift-rules", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "minCartValue", "response must name the offending field")
}

func TestGetGiftRule_UnknownIs404(t *testing.T) {
	s := newTestServer(t, memrepo.NewGiftRuleRepository())

	rec, resp := s.do(t, http.MethodGet, "/api/v1/admin/gift-rules/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
}

func TestDeleteGiftRule_RepeatedDeleteIs404(t *testing.T) {
	s := newTestServer(t, memrepo.NewGiftRuleRepository())
	id := s.createRule(t, 20000, "active")

	rec, _ := s.do(t, http.MethodDelete, "/api/v1/admin/gift-rules/"+id.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/api/v1/admin/gift-rules/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListGiftRules_PaginationMeta(t *testing.T) {
	s := newTestServer(t, memrepo.NewGiftRuleRepository())
	s.createRule(t, 20000, "active")
	s.createRule(t, 50000, "inactive")

	rec, resp := s.do(t, http.MethodGet, "/api/v1/admin/gift-rules?page=1&limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	meta, err := json.Marshal(resp.Meta)
	require.NoError(t, err)
	var p domain.Pagination
	require.NoError(t, json.Unmarshal(meta, &p))
	assert.Equal(t, int64(2), p.TotalItems)
	assert.Equal(t, 2, p.TotalPages)
}

func TestPublicGiftRules_ActiveOnly(t *testing.T) {
	s := newTestServer(t, memrepo.NewGiftRuleRepository())
	activeID := s.createRule(t, 20000, "active")
	s.createRule(t, 50000, "inactive")

	rec, resp := s.do(t, http.MethodGet, "/api/v1/gift-rules", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var rules []domain.GiftRule
	require.NoError(t, json.Unmarshal(data, &rules))
	require.Len(t, rules, 1, "customer surface must expose only active rules")
	assert.Equal(t, activeID, rules[0].ID)
}

func TestGiftEligibility_WorkedExample(t *testing.T) {
	s := newTestServer(t, memrepo.NewGiftRuleRepository())
	a := s.createRule(t, 200, "active")
	b := s.createRule(t, 500, "active")

	rec, resp := s.do(t, http.MethodGet, "/api/v1/cart/gift-eligibility?subtotal=600", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var res domain.Resolution
	require.NoError(t, json.Unmarshal(data, &res))

	require.Len(t, res.Qualified, 2)
	assert.Equal(t, a, res.Qualified[0].ID)
	assert.Equal(t, b, res.Qualified[1].ID)
	require.NotNil(t, res.Primary)
	assert.Equal(t, b, res.Primary.ID)
	assert.Nil(t, res.NextTier)
}

func TestGiftEligibility_BadSubtotals(t *testing.T) {
	s := newTestServer(t, memrepo.NewGiftRuleRepository())
	s.createRule(t, 200, "active")

	for _, subtotal := range []string{"-5", "NaN", "Inf", "abc", ""} {
		rec, resp := s.do(t, http.MethodGet, "/api/v1/cart/gift-eligibility?subtotal="+subtotal, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "subtotal=%q", subtotal)
		assert.False(t, resp.Success)
	}
}

func TestGiftEligibility_StoreOutageIs503(t *testing.T) {
	s := newTestServer(t, &brokenRuleRepo{GiftRuleRepository: memrepo.NewGiftRuleRepository()})

	rec, resp := s.do(t, http.MethodGet, "/api/v1/cart/gift-eligibility?subtotal=600", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, resp.Success)
}
