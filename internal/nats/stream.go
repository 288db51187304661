package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/use-this-search/clustering-platform/internal/model"
)

const (
	// StreamName is the name of the clustering events stream.
	StreamName = "CLUSTERING"

	// SubjectPrefix is the prefix for all clustering subjects.
	SubjectPrefix = "clustering"
)

// EventType tags an analysis lifecycle event.
type EventType string

const (
	EventAnalysisCompleted EventType = "completed"
	EventAnalysisDeleted   EventType = "deleted"
)

// AnalysisEvent is the payload published for analysis lifecycle events.
// Downstream admin analytics consume these instead of polling the store.
type AnalysisEvent struct {
	Type                  EventType `json:"type"`
	AnalysisID            string    `json:"analysis_id"`
	UserID                string    `json:"user_id"`
	CompanyID             string    `json:"company_id"`
	TotalKeywords         int       `json:"total_keywords,omitempty"`
	TotalClusters         int       `json:"total_clusters,omitempty"`
	ProcessingTimeSeconds float64   `json:"processing_time_seconds,omitempty"`
	OccurredAt            time.Time `json:"occurred_at"`
}

// Publisher publishes analysis events to JetStream. It implements the
// service.EventPublisher contract.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher on an established client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// EnsureStream ensures the clustering stream exists with proper configuration.
func (p *Publisher) EnsureStream(ctx context.Context) error {
	js := p.client.JetStream()

	// Check if stream exists
	_, err := js.Stream(ctx, StreamName)
	if err == nil {
		return nil // Stream already exists
	}

	_, err = js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      90 * 24 * time.Hour,
		MaxBytes:    10 * 1024 * 1024 * 1024, // 10GB
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Compression: jetstream.S2Compression,
		Description: "Keyword clustering analysis lifecycle events",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// EventSubject returns the subject for an analysis event.
func EventSubject(companyID, userID string, eventType EventType) string {
	return fmt.Sprintf("%s.%s.%s.%s", SubjectPrefix, companyID, userID, eventType)
}

// AnalysisCompleted publishes a completed-analysis event.
func (p *Publisher) AnalysisCompleted(ctx context.Context, a *model.Analysis) error {
	return p.publish(ctx, AnalysisEvent{
		Type:                  EventAnalysisCompleted,
		AnalysisID:            a.ID,
		UserID:                a.UserID,
		CompanyID:             a.CompanyID,
		TotalKeywords:         a.TotalKeywords,
		TotalClusters:         a.TotalClusters,
		ProcessingTimeSeconds: a.ProcessingTimeSeconds,
		OccurredAt:            time.Now().UTC(),
	})
}

// AnalysisDeleted publishes a deleted-analysis event.
func (p *Publisher) AnalysisDeleted(ctx context.Context, userID, companyID, analysisID string) error {
	return p.publish(ctx, AnalysisEvent{
		Type:       EventAnalysisDeleted,
		AnalysisID: analysisID,
		UserID:     userID,
		CompanyID:  companyID,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Publisher) publish(ctx context.Context, event AnalysisEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := EventSubject(event.CompanyID, event.UserID, event.Type)
	if _, err := p.client.JetStream().Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
