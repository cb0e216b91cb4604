// Package tutor runs the two outbound flows of a view: the chat round trip
// and the search-to-recommendation bridge.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"TraceTutor/internal/backend"
	"TraceTutor/internal/session"
)

const instrumentationName = "tracetutor/tutor"

var (
	// ErrEmptyInput is returned by Send for empty or whitespace-only input.
	ErrEmptyInput = errors.New("empty input")
	// ErrEmptyQuery is returned by Recommend for an empty search query.
	ErrEmptyQuery = errors.New("empty query")
	// ErrRoundTripPending is returned by Send while a reply is outstanding.
	ErrRoundTripPending = errors.New("a chat round trip is already pending")
)

// ChatBackend sends one system instruction and one user message.
type ChatBackend interface {
	Chat(ctx context.Context, system, user string) (*backend.Completion, error)
}

// Tutor wires the chat backend and the recommendation completer to view state.
type Tutor struct {
	chat      ChatBackend
	completer backend.Completer
	logger    *slog.Logger
	tracer    trace.Tracer
	meter     metric.Meter

	requests metric.Int64Counter
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

// Option configures a Tutor.
type Option func(*Tutor)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tutor) { t.logger = l }
}

// WithTracer sets the tracer.
func WithTracer(tr trace.Tracer) Option {
	return func(t *Tutor) { t.tracer = tr }
}

// WithMeter sets the meter.
func WithMeter(m metric.Meter) Option {
	return func(t *Tutor) { t.meter = m }
}

// New creates a Tutor. Logger, tracer and meter default to the globals.
func New(chat ChatBackend, completer backend.Completer, opts ...Option) *Tutor {
	t := &Tutor{
		chat:      chat,
		completer: completer,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	if t.tracer == nil {
		t.tracer = otel.Tracer(instrumentationName)
	}
	if t.meter == nil {
		t.meter = otel.Meter(instrumentationName)
	}

	var err error
	if t.requests, err = t.meter.Int64Counter("tutor.chat.requests",
		metric.WithDescription("Chat round trips issued")); err != nil {
		t.logger.Warn("failed to create counter", "name", "tutor.chat.requests", "error", err)
	}
	if t.failures, err = t.meter.Int64Counter("tutor.chat.failures",
		metric.WithDescription("Chat round trips answered with the fallback reply")); err != nil {
		t.logger.Warn("failed to create counter", "name", "tutor.chat.failures", "error", err)
	}
	if t.duration, err = t.meter.Float64Histogram("http.client.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds")); err != nil {
		t.logger.Warn("failed to create histogram", "error", err)
	}
	return t
}

// Send runs one chat round trip for st. The user message is appended and the
// view marked pending before the request is issued; exactly one assistant
// message follows, either the reply or FallbackReply. Provider failures are
// logged and never returned.
//
// The request is detached from ctx cancellation so that a closed tab or a
// dropped connection does not abandon it halfway.
func (t *Tutor) Send(ctx context.Context, st *session.State, input string) (session.Message, error) {
	if strings.TrimSpace(input) == "" {
		return session.Message{}, ErrEmptyInput
	}
	if !st.BeginRoundTrip(input) {
		return session.Message{}, ErrRoundTripPending
	}

	reply := session.AssistantMessage(FallbackReply)
	defer func() { st.EndRoundTrip(reply) }()

	ctx, span := t.tracer.Start(context.WithoutCancel(ctx), "chat_round_trip")
	defer span.End()

	if t.requests != nil {
		t.requests.Add(ctx, 1)
	}

	start := time.Now()
	completion, err := t.chat.Chat(ctx, SystemPrompt, input)
	if t.duration != nil {
		t.duration.Record(ctx, float64(time.Since(start).Milliseconds()))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "chat round trip failed")
		if t.failures != nil {
			t.failures.Add(ctx, 1)
		}
		attrs := []any{"error", err}
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			attrs = append(attrs, "status", apiErr.StatusCode, "body", apiErr.Body)
		}
		t.logger.Error("chat round trip failed", attrs...)
		return reply, nil
	}

	span.SetAttributes(attribute.Int("reply.length", len(completion.Content)))
	t.recordUsage(ctx, completion.Usage)
	t.logger.Info("chat round trip completed", "duration_ms", time.Since(start).Milliseconds())

	reply = session.AssistantMessage(completion.Content)
	return reply, nil
}

// Recommend asks the completer for a learning path for query. On success the
// header and the generated text are appended and the tutor tab is selected.
// On failure the transcript is untouched and the error is returned.
func (t *Tutor) Recommend(ctx context.Context, st *session.State, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrEmptyQuery
	}

	ctx, span := t.tracer.Start(ctx, "recommend_learning_path")
	defer span.End()

	text, err := t.completer.Complete(ctx, RecommendationPrompt(query))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "recommendation failed")
		t.logger.Error("learning path recommendation failed", "query", query, "error", err)
		return fmt.Errorf("failed to generate learning path: %w", err)
	}

	st.Append(
		session.AssistantMessage(RecommendationHeader(query)),
		session.AssistantMessage(text),
	)
	st.SelectTab(session.TabTutor)

	t.logger.Info("learning path recommended", "query", query)
	return nil
}

func (t *Tutor) recordUsage(ctx context.Context, usage map[string]int64) {
	for key, val := range usage {
		counter, err := t.meter.Int64Counter(
			fmt.Sprintf("llm.usage.%s", key),
			metric.WithDescription(fmt.Sprintf("LLM usage metric: %s", key)),
		)
		if err != nil {
			t.logger.Warn("failed to create counter", "key", key, "error", err)
			continue
		}
		counter.Add(ctx, val)
	}
}
