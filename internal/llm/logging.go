package llm

import (
	"context"
	"log"
	"time"
)

// RequestEvent captures a single completion call for auditing and cost
// tracking. Stored by the EventRecorder; failures to record never fail the
// request itself.
type RequestEvent struct {
	Provider     string
	Model        string
	Purpose      string
	PromptChars  int
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	At           time.Time
}

// EventRecorder persists RequestEvents. The store package provides the
// MongoDB-backed implementation.
type EventRecorder interface {
	RecordLLMRequest(ctx context.Context, ev RequestEvent) error
}

// LoggingProvider is a decorator that records every completion call as an
// event and logs failures.
type LoggingProvider struct {
	inner    Provider
	recorder EventRecorder
	purpose  string
}

// WithLogging wraps a Provider with event recording. The purpose label
// distinguishes schedule generation from tips and insights traffic.
func WithLogging(p Provider, recorder EventRecorder, purpose string) Provider {
	return &LoggingProvider{inner: p, recorder: recorder, purpose: purpose}
}

func (l *LoggingProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Complete(ctx, req)

	ev := RequestEvent{
		Provider:    l.inner.Name(),
		Purpose:     l.purpose,
		PromptChars: len(req.Prompt),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		At:          start,
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		log.Printf("llm: %s %s request failed: %v", l.purpose, l.inner.Name(), err)
	}

	if l.recorder != nil {
		if recErr := l.recorder.RecordLLMRequest(ctx, ev); recErr != nil {
			log.Printf("llm: failed to record request event: %v", recErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) Name() string {
	return l.inner.Name()
}
