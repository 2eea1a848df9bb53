package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/ZulAmi/proofwork/internal/metrics"
)

// DefaultMaxInputLen bounds the text prefix sent to the classifier so cost
// stays predictable on very long comments.
const DefaultMaxInputLen = 512

const requestTimeout = 10 * time.Second

// HTTPAnalyzer classifies text through an external inference endpoint that
// speaks the usual sentiment-pipeline shape: {"label": "POSITIVE"|"NEGATIVE",
// "score": 0..1}. Any failure, transport or otherwise, degrades to neutral.
type HTTPAnalyzer struct {
	endpoint    string
	maxInputLen int
	client      *http.Client
}

func NewHTTPAnalyzer(endpoint string, maxInputLen int) *HTTPAnalyzer {
	if maxInputLen <= 0 {
		maxInputLen = DefaultMaxInputLen
	}
	return &HTTPAnalyzer{
		endpoint:    endpoint,
		maxInputLen: maxInputLen,
		client:      &http.Client{Timeout: requestTimeout},
	}
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Polarity returns the signed sentiment strength of text in [-1,1].
func (a *HTTPAnalyzer) Polarity(ctx context.Context, text string) float64 {
	if text == "" {
		return 0
	}
	text = truncate(text, a.maxInputLen)

	score, err := a.classify(ctx, text)
	if err != nil {
		slog.Warn("Sentiment classification failed, using neutral polarity", "error", err)
		metrics.SentimentRequestsTotal.WithLabelValues("error").Inc()
		return 0
	}
	metrics.SentimentRequestsTotal.WithLabelValues("success").Inc()
	return score
}

func (a *HTTPAnalyzer) classify(ctx context.Context, text string) (float64, error) {
	body, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("classifier call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var result classifyResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return 0, fmt.Errorf("unmarshal response: %w", err)
	}

	polarity := clampUnit(result.Score)
	if result.Label == "NEGATIVE" {
		polarity = -polarity
	}
	return polarity, nil
}

// truncate cuts text to at most max bytes without splitting a UTF-8 rune, so
// the classifier never receives invalid UTF-8.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Noop always reports neutral polarity. Injected when no sentiment endpoint
// is configured, so absence of the model is an explicit dependency variant
// rather than a runtime existence check.
type Noop struct{}

func (Noop) Polarity(context.Context, string) float64 { return 0 }
