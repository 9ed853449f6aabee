package webapi_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/fxconvert/pkg/money"
	"github.com/amirasaad/fxconvert/webapi/common"
	"github.com/amirasaad/fxconvert/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestRootRoute(t *testing.T) {
	app, _ := testutils.NewTestApp(t, nil)

	resp := testutils.MakeRequest(t, app, fiber.MethodGet, "/", "")
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "running")
}

func TestNotFoundRoute(t *testing.T) {
	app, _ := testutils.NewTestApp(t, nil)

	resp := testutils.MakeRequest(t, app, fiber.MethodGet, "/doesnotexist", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, common.MIMEProblemJSON, resp.Header.Get(fiber.HeaderContentType))
	pd := testutils.DecodeJSON[common.ProblemDetails](t, resp)
	assert.Equal(t, fiber.StatusNotFound, pd.Status)
	assert.Equal(t, "/doesnotexist", pd.Instance)
}

func TestSwaggerDoc(t *testing.T) {
	app, _ := testutils.NewTestApp(t, nil)

	resp := testutils.MakeRequest(t, app, fiber.MethodGet, "/swagger/doc.json", "")
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "/api/convert")
}

func TestMetricsRoute(t *testing.T) {
	app, rates := testutils.NewTestApp(t, nil)
	rates.EXPECT().FetchRates(mock.Anything, money.USD).Return(testutils.USDRates(), nil).Once()

	resp := testutils.MakeRequest(t, app, fiber.MethodGet, "/api/convert?amount=1&from=USD&to=EUR", "")
	_ = resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = testutils.MakeRequest(t, app, fiber.MethodGet, "/metrics", "")
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `fxconvert_test_conversions_total{from="USD",outcome="ok",to="EUR"} 1`)
}

func TestMetricsRoute_Disabled(t *testing.T) {
	cfg := testutils.TestConfig()
	cfg.Metrics.Enabled = false
	app, _ := testutils.NewTestApp(t, cfg)

	resp := testutils.MakeRequest(t, app, fiber.MethodGet, "/metrics", "")
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

type RateLimitTestSuite struct {
	suite.Suite
	app *fiber.App
}

func (s *RateLimitTestSuite) SetupTest() {
	cfg := testutils.TestConfig()
	cfg.RateLimit.MaxRequests = 5
	cfg.RateLimit.Window = time.Second
	s.app, _ = testutils.NewTestApp(s.T(), cfg)
}

func (s *RateLimitTestSuite) TestRateLimit() {
	// Send requests until rate limit is hit
	for i := range [6]int{} {
		resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/api/currencies", "")
		_ = resp.Body.Close()

		if i < 5 {
			s.Equal(fiber.StatusOK, resp.StatusCode, "Expected OK for request %d", i+1)
		} else {
			s.Equal(fiber.StatusTooManyRequests, resp.StatusCode, "Expected Too Many Requests for request %d", i+1)
			s.Equal(common.MIMEProblemJSON, resp.Header.Get(fiber.HeaderContentType))
		}
	}

	// The health check is not limited
	resp := testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/", "")
	_ = resp.Body.Close()
	s.Equal(fiber.StatusOK, resp.StatusCode)

	// Wait for the rate limit window to reset
	time.Sleep(2 * time.Second)

	resp = testutils.MakeRequest(s.T(), s.app, fiber.MethodGet, "/api/currencies", "")
	_ = resp.Body.Close()
	s.Equal(fiber.StatusOK, resp.StatusCode, "Expected OK after rate limit reset")
}

func (s *RateLimitTestSuite) TestRateLimit_PerForwardedClient() {
	for range [5]int{} {
		resp := s.requestFrom("203.0.113.1, 10.0.0.1")
		_ = resp.Body.Close()
	}
	limited := s.requestFrom("203.0.113.1")
	_ = limited.Body.Close()
	s.Equal(fiber.StatusTooManyRequests, limited.StatusCode)

	other := s.requestFrom("198.51.100.7")
	_ = other.Body.Close()
	s.Equal(fiber.StatusOK, other.StatusCode)
}

func (s *RateLimitTestSuite) requestFrom(forwardedFor string) *http.Response {
	req := httptest.NewRequest(fiber.MethodGet, "/api/currencies", nil)
	req.Header.Set("X-Forwarded-For", forwardedFor)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

func TestRateLimitTestSuite(t *testing.T) {
	suite.Run(t, new(RateLimitTestSuite))
}
