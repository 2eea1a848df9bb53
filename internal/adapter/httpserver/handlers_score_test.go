package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ZulAmi/proofwork/internal/domain"
	"github.com/ZulAmi/proofwork/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppService struct {
	score       *domain.TrustScore
	scoreErr    error
	analysis    *domain.ReviewAnalysis
	analysisErr error

	lastAddress string
	lastForced  bool
}

func (f *fakeAppService) TrustScore(_ context.Context, address string, forceRefresh bool) (*domain.TrustScore, error) {
	f.lastAddress = address
	f.lastForced = forceRefresh
	return f.score, f.scoreErr
}

func (f *fakeAppService) AnalyzeReviews(_ context.Context, address string) (*domain.ReviewAnalysis, error) {
	f.lastAddress = address
	return f.analysis, f.analysisErr
}

func testConfig() *config.Config {
	return &config.Config{
		Port:               "8000",
		RateLimitPerSecond: 1000,
		RateLimitBurst:     1000,
	}
}

func newTestServer(t *testing.T, cfg *config.Config, app *fakeAppService) *Server {
	t.Helper()
	return NewServer(cfg, app, nil)
}

func doRequest(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func TestHandleTrustScore_ReturnsScoreJSON(t *testing.T) {
	app := &fakeAppService{score: &domain.TrustScore{
		Address:       "0xworker",
		Score:         87.5,
		Confidence:    0.3,
		ReviewCount:   3,
		AverageRating: 4.5,
	}}
	srv := newTestServer(t, testConfig(), app)

	req := httptest.NewRequest(http.MethodGet, "/api/freelancers/0xworker/trust-score", nil)
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0xworker", app.lastAddress)
	assert.False(t, app.lastForced)

	var body domain.TrustScore
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 87.5, body.Score)
	assert.Equal(t, 3, body.ReviewCount)
}

func TestHandleTrustScore_ForceRefreshQueryParam(t *testing.T) {
	app := &fakeAppService{score: &domain.TrustScore{Address: "0xworker"}}
	srv := newTestServer(t, testConfig(), app)

	req := httptest.NewRequest(http.MethodGet, "/api/freelancers/0xworker/trust-score?force_refresh=true", nil)
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, app.lastForced)
}

func TestHandleTrustScore_InvalidForceRefresh(t *testing.T) {
	app := &fakeAppService{score: &domain.TrustScore{}}
	srv := newTestServer(t, testConfig(), app)

	req := httptest.NewRequest(http.MethodGet, "/api/freelancers/0xworker/trust-score?force_refresh=banana", nil)
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "force_refresh")
}

func TestHandleTrustScore_AddressTooLong(t *testing.T) {
	app := &fakeAppService{score: &domain.TrustScore{}}
	srv := newTestServer(t, testConfig(), app)

	long := strings.Repeat("a", maxAddressLen+1)
	req := httptest.NewRequest(http.MethodGet, "/api/freelancers/"+long+"/trust-score", nil)
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTrustScore_ServiceErrorMapsTo500(t *testing.T) {
	app := &fakeAppService{scoreErr: errors.New("boom")}
	srv := newTestServer(t, testConfig(), app)

	req := httptest.NewRequest(http.MethodGet, "/api/freelancers/0xworker/trust-score", nil)
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleAnalyzeReviews_ReturnsReportJSON(t *testing.T) {
	app := &fakeAppService{analysis: &domain.ReviewAnalysis{
		Address: "0xworker",
		Reviews: []domain.AnalyzedReview{},
		Summary: domain.AnalysisSummary{ReviewCount: 0},
	}}
	srv := newTestServer(t, testConfig(), app)

	req := httptest.NewRequest(http.MethodGet, "/api/freelancers/0xworker/reviews/analyze", nil)
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body domain.ReviewAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "0xworker", body.Address)
	assert.NotNil(t, body.Reviews)
}

func TestRequireAPIKey_MissingKeyRejected(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = "secret-key"
	app := &fakeAppService{score: &domain.TrustScore{}}
	srv := newTestServer(t, cfg, app)

	req := httptest.NewRequest(http.MethodGet, "/api/freelancers/0xworker/trust-score", nil)
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAPIKey_WrongKeyRejected(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = "secret-key"
	app := &fakeAppService{score: &domain.TrustScore{}}
	srv := newTestServer(t, cfg, app)

	req := httptest.NewRequest(http.MethodGet, "/api/freelancers/0xworker/trust-score", nil)
	req.Header.Set(apiKeyHeader, "wrong")
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAPIKey_ValidKeyAccepted(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = "secret-key"
	app := &fakeAppService{score: &domain.TrustScore{}}
	srv := newTestServer(t, cfg, app)

	req := httptest.NewRequest(http.MethodGet, "/api/freelancers/0xworker/trust-score", nil)
	req.Header.Set(apiKeyHeader, "secret-key")
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAPIKey_BlankConfigDisablesAuth(t *testing.T) {
	app := &fakeAppService{score: &domain.TrustScore{}}
	srv := newTestServer(t, testConfig(), app)

	req := httptest.NewRequest(http.MethodGet, "/api/freelancers/0xworker/trust-score", nil)
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthEndpoints_NoAuthRequired(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = "secret-key"
	srv := newTestServer(t, cfg, &fakeAppService{})

	for _, path := range []string{"/health/live", "/health/ready", "/health/startup", "/version"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := doRequest(srv, req)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
	}
}
