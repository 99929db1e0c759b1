// Package account manages the basins of an account.
package account

import (
	"context"
	"log/slog"

	"github.com/levelfourab/s2-go/config"
	"github.com/levelfourab/s2-go/types"
)

// Service exposes the administrative operations on basins. Each method is a
// single call to the client and failures are wrapped in an error type per
// operation.
type Service struct {
	client types.AccountClient
	logger *slog.Logger
}

// New creates a service using the given client for the account.
func New(client types.AccountClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		client: client,
		logger: logger,
	}
}

// ListBasins returns the names of up to limit basins starting with prefix
// that sort after startAfter. A limit of zero uses the service default.
func (s *Service) ListBasins(ctx context.Context, prefix string, startAfter string, limit uint64) ([]string, error) {
	req := &types.ListBasinsRequest{
		Prefix:     prefix,
		StartAfter: startAfter,
	}
	if limit > 0 {
		req.Limit = &limit
	}

	s.logger.Debug("Listing basins", slog.String("prefix", prefix), slog.String("startAfter", startAfter))

	res, err := s.client.ListBasins(ctx, req)
	if err != nil {
		return nil, &ListBasinsError{Err: err}
	}

	names := make([]string, len(res.Basins))
	for i, b := range res.Basins {
		names[i] = b.Name
	}
	return names, nil
}

// CreateBasin creates a basin. If cfg is nil the basin uses the service
// defaults for its streams.
func (s *Service) CreateBasin(ctx context.Context, name string, cfg *config.BasinConfig) error {
	req := &types.CreateBasinRequest{
		Basin: name,
	}
	if cfg != nil {
		req.Config = cfg.Canonical()
	}

	s.logger.Debug("Creating basin", slog.String("basin", name))

	if _, err := s.client.CreateBasin(ctx, req); err != nil {
		return &CreateBasinError{Err: err}
	}
	return nil
}

// DeleteBasin deletes a basin together with all of its streams.
func (s *Service) DeleteBasin(ctx context.Context, name string) error {
	s.logger.Debug("Deleting basin", slog.String("basin", name))

	if err := s.client.DeleteBasin(ctx, &types.DeleteBasinRequest{Basin: name}); err != nil {
		return &DeleteBasinError{Err: err}
	}
	return nil
}

// GetBasinConfig returns the current config of a basin.
func (s *Service) GetBasinConfig(ctx context.Context, name string) (*config.BasinConfig, error) {
	s.logger.Debug("Getting basin config", slog.String("basin", name))

	cfg, err := s.client.GetBasinConfig(ctx, name)
	if err != nil {
		return nil, &GetBasinConfigError{Err: err}
	}

	return config.FromCanonicalBasinConfig(cfg), nil
}

// ReconfigureBasin updates the fields of the basin listed in mask, see
// [config.DefaultStreamConfigPath], [config.StorageClassPath] and
// [config.RetentionPolicyPath].
func (s *Service) ReconfigureBasin(ctx context.Context, name string, cfg config.BasinConfig, mask []string) error {
	s.logger.Debug("Reconfiguring basin", slog.String("basin", name), slog.Any("mask", mask))

	_, err := s.client.ReconfigureBasin(ctx, &types.ReconfigureBasinRequest{
		Basin:  name,
		Config: cfg.Canonical(),
		Mask:   mask,
	})
	if err != nil {
		return &ReconfigureBasinError{Err: err}
	}
	return nil
}
