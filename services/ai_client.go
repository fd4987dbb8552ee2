package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/tripplanhq/tripplan-backend/logger"
	"github.com/tripplanhq/tripplan-backend/metrics"
	"github.com/tripplanhq/tripplan-backend/models"
	"github.com/tripplanhq/tripplan-backend/utils"
)

const (
	aiRequestTimeout = 120 * time.Second
	aiHealthTimeout  = 5 * time.Second
)

// AIClient talks to the AI recommendation service over HTTP.
// Recommendation generation is slow, so the request client carries a
// long timeout; the health probe uses a short one.
type AIClient struct {
	baseURL      string
	httpClient   *http.Client
	healthClient *http.Client
	log          logger.Logger
	metrics      *metrics.Metrics
}

// NewAIClient creates a new AIClient. The base URL comes from
// AI_RECOMMENDATION_SERVICE_URL, falling back to the compose-network
// default.
func NewAIClient(log logger.Logger, m *metrics.Metrics) *AIClient {
	baseURL := os.Getenv("AI_RECOMMENDATION_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://ai-recommendation-service:3003"
	}
	return &AIClient{
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: aiRequestTimeout},
		healthClient: &http.Client{Timeout: aiHealthTimeout},
		log:          log,
		metrics:      m,
	}
}

// NewAIClientWithBaseURL creates an AIClient against an explicit base
// URL, for tests.
func NewAIClientWithBaseURL(baseURL string, log logger.Logger, m *metrics.Metrics) *AIClient {
	c := NewAIClient(log, m)
	c.baseURL = baseURL
	return c
}

// GetRecommendations requests a trip recommendation from the AI service
// and maps its failure modes onto the API error taxonomy.
func (c *AIClient) GetRecommendations(req *models.AIRecommendRequest) (*models.AIRecommendation, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, utils.NewInternalError("Failed to get AI recommendations")
	}

	httpReq, err := http.NewRequest(http.MethodPost,
		c.baseURL+"/internal/v1/ai/recommend", bytes.NewReader(body))
	if err != nil {
		return nil, utils.NewInternalError("Failed to get AI recommendations")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isConnectionError(err) {
			c.metrics.ObserveAICall("unavailable")
			c.log.Error("AI service unreachable", "url", c.baseURL, "error", err)
			return nil, utils.NewServiceUnavailableError("AI recommendation service is unavailable")
		}
		c.metrics.ObserveAICall("error")
		c.log.Error("AI service request failed", "error", err)
		return nil, utils.NewInternalError("Failed to get AI recommendations")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ObserveAICall("error")
		return nil, utils.NewInternalError("Failed to get AI recommendations")
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		c.metrics.ObserveAICall("rate_limited")
		return nil, utils.NewTooManyRequestsError("Too many requests to AI service")
	case resp.StatusCode >= 500:
		c.metrics.ObserveAICall("upstream_error")
		detail := errorDetail(raw)
		if detail == "" {
			detail = "AI recommendation service is temporarily unavailable"
		}
		return nil, utils.NewServiceUnavailableError(fmt.Sprintf("AI service error: %s", detail))
	case resp.StatusCode >= 400:
		c.metrics.ObserveAICall("rejected")
		detail := errorDetail(raw)
		if detail == "" {
			detail = "Invalid request to AI service"
		}
		return nil, utils.NewBadRequestError(fmt.Sprintf("AI service validation error: %s", detail))
	}

	var rec models.AIRecommendation
	if err := json.Unmarshal(raw, &rec); err != nil {
		c.metrics.ObserveAICall("error")
		c.log.Error("AI service returned malformed payload", "error", err)
		return nil, utils.NewInternalError("Failed to get AI recommendations")
	}

	c.metrics.ObserveAICall("success")
	return &rec, nil
}

// HealthCheck probes the AI service's health endpoint.
func (c *AIClient) HealthCheck() bool {
	resp, err := c.healthClient.Get(c.baseURL + "/recommender/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// isConnectionError reports whether err means the service could not be
// reached at all, as opposed to reaching it and failing.
func isConnectionError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func errorDetail(raw []byte) string {
	var body models.AIErrorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.DetailString()
}
