// Package jetstream implements the account and basin clients on top of NATS
// JetStream.
//
// Basins are records in a key-value bucket, every stream of a basin is a
// JetStream stream carrying its basin, name and storage class as metadata.
package jetstream

import (
	"context"
	"log/slog"
	"time"

	"github.com/levelfourab/s2-go/types"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// basinsBucket is the key-value bucket holding one record per basin.
	basinsBucket = "s2-basins"

	// defaultRetention is used when neither the stream nor its basin define a
	// retention policy.
	defaultRetention = 7 * 24 * time.Hour

	// maxListLimit is the default and maximum number of results of a listing.
	maxListLimit = 1000
)

type Client struct {
	js     jetstream.JetStream
	logger *slog.Logger
	tracer trace.Tracer

	// maxRetries is the number of times an idempotent read is retried when
	// the service is unavailable.
	maxRetries    uint64
	retryInterval time.Duration
}

// Option configures a [Client].
type Option func(*Client)

// WithTracerProvider sets the provider of the tracer used for client spans.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer("s2-go/jetstream")
	}
}

// WithMaxRetries sets how many times reads are retried when the service is
// unavailable. Zero disables retries.
func WithMaxRetries(n uint64) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithRetryInterval sets the initial delay between retries.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) {
		c.retryInterval = d
	}
}

func New(js jetstream.JetStream, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		js:            js,
		logger:        logger,
		tracer:        otel.Tracer("s2-go/jetstream"),
		maxRetries:    3,
		retryInterval: 100 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Basin returns a client for the streams of the named basin. The basin is not
// checked until an operation is performed.
func (c *Client) Basin(name string) *BasinClient {
	return &BasinClient{
		Client: c,
		basin:  name,
	}
}

func (c *Client) startSpan(ctx context.Context, op types.Operation, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return c.tracer.Start(
		ctx,
		"s2."+string(op),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(semconv.MessagingSystemKey.String("nats")),
		trace.WithAttributes(attrs...),
	)
}

// fail records err on the span and returns it.
func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(types.ErrorCode(err)))
	return err
}

var _ types.AccountClient = (*Client)(nil)
