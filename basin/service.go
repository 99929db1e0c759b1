// Package basin manages the streams of a single basin.
package basin

import (
	"context"
	"log/slog"

	"github.com/levelfourab/s2-go/config"
	"github.com/levelfourab/s2-go/types"
)

// Service exposes the administrative operations on the streams of a basin.
// It keeps no state besides the client and can be shared between goroutines.
//
// Every operation issues exactly one call to the client. Failures are never
// retried here and are returned wrapped in the error type of the operation,
// such as [DeleteStreamError].
type Service struct {
	client types.BasinClient
	logger *slog.Logger
}

// New creates a service using the given client for the basin.
func New(client types.BasinClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		client: client,
		logger: logger,
	}
}

// ListStreams returns the names of up to limit streams starting with prefix
// that sort after startAfter. A limit of zero uses the service default.
//
// Only names are returned. To page through all streams call again with
// startAfter set to the last name returned, until fewer than limit names
// come back.
func (s *Service) ListStreams(ctx context.Context, prefix string, startAfter string, limit uint64) ([]string, error) {
	req := &types.ListStreamsRequest{
		Prefix:     prefix,
		StartAfter: startAfter,
	}
	if limit > 0 {
		req.Limit = &limit
	}

	s.logger.Debug(
		"Listing streams",
		slog.String("prefix", prefix),
		slog.String("startAfter", startAfter),
		slog.Uint64("limit", limit),
	)

	res, err := s.client.ListStreams(ctx, req)
	if err != nil {
		return nil, &ListStreamsError{Err: err}
	}

	names := make([]string, len(res.Streams))
	for i, stream := range res.Streams {
		names[i] = stream.Name
	}
	return names, nil
}

// CreateStream creates a stream. If cfg is nil the stream inherits the
// default stream config of the basin.
func (s *Service) CreateStream(ctx context.Context, name string, cfg *config.StreamConfig) error {
	req := &types.CreateStreamRequest{
		Stream: name,
	}
	if cfg != nil {
		req.Config = cfg.Canonical()
	}

	s.logger.Debug("Creating stream", slog.String("stream", name))

	if _, err := s.client.CreateStream(ctx, req); err != nil {
		return &CreateStreamError{Err: err}
	}
	return nil
}

// DeleteStream deletes a stream and its records. There is no way to undo
// this.
func (s *Service) DeleteStream(ctx context.Context, name string) error {
	s.logger.Debug("Deleting stream", slog.String("stream", name))

	err := s.client.DeleteStream(ctx, &types.DeleteStreamRequest{
		Stream: name,
	})
	if err != nil {
		return &DeleteStreamError{Err: err}
	}
	return nil
}

// GetStreamConfig returns the current config of a stream.
func (s *Service) GetStreamConfig(ctx context.Context, name string) (*config.StreamConfig, error) {
	s.logger.Debug("Getting stream config", slog.String("stream", name))

	cfg, err := s.client.GetStreamConfig(ctx, name)
	if err != nil {
		return nil, &GetStreamConfigError{Err: err}
	}

	return config.FromCanonicalStreamConfig(cfg), nil
}

// ReconfigureStream updates the fields of a stream listed in mask, using
// the values in cfg. Paths are [config.StorageClassPath] and
// [config.RetentionPolicyPath]. A path in the mask whose value is not set in
// cfg resets that field, fields not in the mask are left as they are.
//
// The mask is sent as given, no comparison with the current config is made.
func (s *Service) ReconfigureStream(ctx context.Context, name string, cfg config.StreamConfig, mask []string) error {
	s.logger.Debug(
		"Reconfiguring stream",
		slog.String("stream", name),
		slog.Any("mask", mask),
	)

	_, err := s.client.ReconfigureStream(ctx, &types.ReconfigureStreamRequest{
		Stream: name,
		Config: cfg.Canonical(),
		Mask:   mask,
	})
	if err != nil {
		return &ReconfigureStreamError{Err: err}
	}
	return nil
}
