package generator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	outcomeOK              = "ok"
	outcomeEmptyCompletion = "empty_completion"
	outcomeServiceError    = "service_error"
)

var (
	generateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "turing",
		Subsystem: "generator",
		Name:      "generate_duration_seconds",
		Help:      "Duration of text generation round trips",
	}, []string{"model", "outcome"})

	generateFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "turing",
		Subsystem: "generator",
		Name:      "generate_failures_total",
		Help:      "Number of failed text generation calls",
	}, []string{"model", "kind"})
)

// Client implements TextGenerator on top of a provider Backend.
// Each Generate is a single best-effort round trip: no retries, no caching.
type Client struct {
	backend  Backend
	provider string
	model    string
	system   string
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithLogger sets the logger used for failure diagnostics.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSystemInstruction attaches a system message to every prompt.
func WithSystemInstruction(system string) ClientOption {
	return func(c *Client) {
		c.system = system
	}
}

// NewClient wraps backend. provider/model are only used for labels.
func NewClient(backend Backend, settings LLMSettings, opts ...ClientOption) (*Client, error) {
	if backend == nil {
		return nil, errors.New("llm backend is required")
	}
	c := &Client{
		backend:  backend,
		provider: settings.Provider,
		model:    settings.Model,
		logger:   zerolog.Nop(),
		tracer:   otel.Tracer("turing_judge/generator"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("component", "generator").Str("provider", c.provider).Str("model", c.model).Logger()
	return c, nil
}

// Generate sends prompt to the backend and returns the trimmed completion.
func (c *Client) Generate(parent context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	ctx, span := c.tracer.Start(parent, "generator.generate", trace.WithAttributes(
		attribute.String("provider", c.provider),
		attribute.String("model", c.model),
		attribute.Int("prompt.length", len(prompt)),
	))
	defer span.End()

	start := time.Now()
	raw, err := c.backend.Complete(ctx, Prompt{System: c.system, User: prompt})
	elapsed := time.Since(start)

	if err != nil {
		generateDuration.WithLabelValues(c.model, outcomeServiceError).Observe(elapsed.Seconds())
		generateFailures.WithLabelValues(c.model, outcomeServiceError).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error().Err(err).Dur("elapsed", elapsed).Msg("text generation failed")
		return "", &ServiceError{Provider: c.provider, Model: c.model, Err: err}
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		generateDuration.WithLabelValues(c.model, outcomeEmptyCompletion).Observe(elapsed.Seconds())
		generateFailures.WithLabelValues(c.model, outcomeEmptyCompletion).Inc()
		span.SetStatus(codes.Error, ErrEmptyCompletion.Error())
		c.logger.Warn().Dur("elapsed", elapsed).Msg("text generation returned blank completion")
		return "", ErrEmptyCompletion
	}

	generateDuration.WithLabelValues(c.model, outcomeOK).Observe(elapsed.Seconds())
	span.SetAttributes(attribute.Int("completion.length", len(text)))
	c.logger.Debug().Dur("elapsed", elapsed).Int("completion_length", len(text)).Msg("text generated")
	return text, nil
}
