// Package eventbus publishes score lifecycle events over NATS so downstream
// consumers (indexers, notification services) can react to fresh scores
// without polling the API.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ZulAmi/proofwork/internal/domain"
	"github.com/ZulAmi/proofwork/internal/metrics"
	"github.com/nats-io/nats.go"
)

// SubjectScoreComputed is the NATS subject for freshly computed trust scores.
const SubjectScoreComputed = "proofwork.trustscore.computed"

type Publisher struct {
	conn *nats.Conn
}

func Connect(url string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			slog.Info("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: nc}, nil
}

func (p *Publisher) PublishScoreComputed(_ context.Context, score *domain.TrustScore) error {
	payload, err := json.Marshal(score)
	if err != nil {
		metrics.ScoreEventsPublishedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("marshal score event: %w", err)
	}
	if err := p.conn.Publish(SubjectScoreComputed, payload); err != nil {
		metrics.ScoreEventsPublishedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("publish score event: %w", err)
	}
	metrics.ScoreEventsPublishedTotal.WithLabelValues("success").Inc()
	return nil
}

func (p *Publisher) Close() {
	p.conn.Close()
}

// Noop is the explicit "event bus unavailable" variant.
type Noop struct{}

func (Noop) PublishScoreComputed(context.Context, *domain.TrustScore) error { return nil }
