// Package s2 connects to the stream store and hands out the services used to
// manage basins and their streams.
package s2

import (
	"log/slog"

	"github.com/levelfourab/s2-go/account"
	"github.com/levelfourab/s2-go/basin"
	backend "github.com/levelfourab/s2-go/internal/jetstream"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel/trace"
)

type Client interface {
	// Account returns the service for managing basins.
	Account() *account.Service

	// Basin returns the service for managing the streams of a basin.
	Basin(name string) *basin.Service

	// Close the client.
	Close() error
}

// Config holds the connection settings of a client.
type Config struct {
	// ServerURL is the URL of the NATS server. Defaults to [nats.DefaultURL].
	ServerURL string
	// AccessToken authenticates the client. Left out of the connection when
	// empty.
	AccessToken string
}

type natsClient struct {
	conn   *nats.Conn
	owned  bool
	logger *slog.Logger

	backend *backend.Client
	account *account.Service
}

// NewClient connects to the server described by cfg.
func NewClient(cfg Config, opts ...ClientOption) (Client, error) {
	options := newClientOptions(opts)

	url := cfg.ServerURL
	if url == "" {
		url = nats.DefaultURL
	}

	natsOpts := append([]nats.Option{nats.Name("s2-go")}, options.natsOptions...)
	if cfg.AccessToken != "" {
		natsOpts = append(natsOpts, nats.Token(cfg.AccessToken))
	}

	conn, err := nats.Connect(url, natsOpts...)
	if err != nil {
		return nil, err
	}

	c, err := newClient(conn, options)
	if err != nil {
		conn.Close()
		return nil, err
	}

	c.owned = true
	return c, nil
}

// NewClientWithConn creates a new client using an existing NATS connection.
// Closing the client leaves the connection open.
func NewClientWithConn(conn *nats.Conn, opts ...ClientOption) (Client, error) {
	return newClient(conn, newClientOptions(opts))
}

func newClient(conn *nats.Conn, options *clientOptions) (*natsClient, error) {
	js, err := jetstream.New(conn)
	if err != nil {
		return nil, err
	}

	backendOpts := []backend.Option{
		backend.WithMaxRetries(options.maxRetries),
	}
	if options.tracerProvider != nil {
		backendOpts = append(backendOpts, backend.WithTracerProvider(options.tracerProvider))
	}

	c := &natsClient{
		conn:    conn,
		logger:  options.logger,
		backend: backend.New(js, options.logger, backendOpts...),
	}
	c.account = account.New(c.backend, options.logger)
	return c, nil
}

func (c *natsClient) Account() *account.Service {
	return c.account
}

func (c *natsClient) Basin(name string) *basin.Service {
	return basin.New(c.backend.Basin(name), c.logger.With(slog.String("basin", name)))
}

func (c *natsClient) Close() error {
	if c.owned {
		c.conn.Close()
	}
	return nil
}

type clientOptions struct {
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	maxRetries     uint64
	natsOptions    []nats.Option
}

func newClientOptions(opts []ClientOption) *clientOptions {
	options := &clientOptions{
		logger:     slog.Default(),
		maxRetries: 3,
	}
	for _, o := range opts {
		o(options)
	}

	if options.logger == nil {
		options.logger = slog.Default()
	}
	return options
}

// ClientOption is an option to configure the client.
type ClientOption func(*clientOptions)

// WithLogger sets the logger used by the client and its services.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithTracerProvider sets the provider used to trace calls to the server.
func WithTracerProvider(tp trace.TracerProvider) ClientOption {
	return func(o *clientOptions) {
		o.tracerProvider = tp
	}
}

// WithMaxRetries sets how many times reads are retried while the server is
// unavailable.
func WithMaxRetries(n uint64) ClientOption {
	return func(o *clientOptions) {
		o.maxRetries = n
	}
}

// WithNATSOptions sets additional options for the NATS connection.
func WithNATSOptions(opts ...nats.Option) ClientOption {
	return func(o *clientOptions) {
		o.natsOptions = opts
	}
}
