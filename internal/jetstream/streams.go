package jetstream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/levelfourab/s2-go/types"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// BasinClient manages the streams of a single basin.
type BasinClient struct {
	*Client

	basin string
}

func (b *BasinClient) ListStreams(ctx context.Context, req *types.ListStreamsRequest) (*types.ListStreamsResponse, error) {
	const op = types.OperationListStreams
	ctx, span := b.startSpan(ctx, op, attribute.String("basin", b.basin), attribute.String("prefix", req.Prefix))
	defer span.End()

	if err := validateBasinName(op, b.basin); err != nil {
		return nil, fail(span, err)
	}

	limit := listLimit(req.Limit)

	var streams []types.StreamInfo
	err := b.retry(ctx, op, func() error {
		streams = streams[:0]

		if _, _, err := b.getBasin(ctx, op, b.basin); err != nil {
			return err
		}

		lister := b.js.ListStreams(ctx, jetstream.WithStreamListSubject(basinSubjects(b.basin)))
		for info := range lister.Info() {
			if info.Config.Metadata[metadataBasin] != b.basin {
				continue
			}

			name := info.Config.Metadata[metadataStream]
			if !strings.HasPrefix(name, req.Prefix) || name <= req.StartAfter {
				continue
			}

			streams = append(streams, types.StreamInfo{
				Name:      name,
				CreatedAt: info.Created,
			})
		}

		return lister.Err()
	})
	if err != nil {
		return nil, fail(span, err)
	}

	sort.Slice(streams, func(i, j int) bool {
		return streams[i].Name < streams[j].Name
	})

	res := &types.ListStreamsResponse{
		Streams: streams,
	}
	if len(streams) > limit {
		res.Streams = streams[:limit]
		res.HasMore = true
	}

	span.SetStatus(codes.Ok, "")
	return res, nil
}

func (b *BasinClient) CreateStream(ctx context.Context, req *types.CreateStreamRequest) (*types.StreamInfo, error) {
	const op = types.OperationCreateStream
	ctx, span := b.startSpan(ctx, op, attribute.String("basin", b.basin), attribute.String("stream", req.Stream))
	defer span.End()

	if err := validateBasinName(op, b.basin); err != nil {
		return nil, fail(span, err)
	}

	if err := validateStreamName(op, req.Stream); err != nil {
		return nil, fail(span, err)
	}

	if err := validateStreamConfig(op, req.Config); err != nil {
		return nil, fail(span, err)
	}

	record, _, err := b.getBasin(ctx, op, b.basin)
	if err != nil {
		return nil, fail(span, err)
	}

	name := jetStreamName(b.basin, req.Stream)
	_, err = b.js.Stream(ctx, name)
	if err == nil {
		return nil, fail(span, alreadyExists(op, "stream already exists: "+req.Stream))
	} else if !errors.Is(err, jetstream.ErrStreamNotFound) {
		return nil, fail(span, toServiceError(op, err))
	}

	cfg := resolveStreamConfig(req.Config, record.defaultStreamConfig())

	b.logger.Info(
		"Creating stream",
		slog.String("basin", b.basin),
		slog.String("stream", req.Stream),
		slog.String("storageClass", storageClassName(cfg.StorageClass)),
		slog.Duration("retention", maxAge(cfg.RetentionPolicy)),
	)

	stream, err := b.js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        name,
		Description: req.Stream,
		Subjects:    []string{streamSubject(b.basin, req.Stream)},
		Storage:     jetstream.FileStorage,
		MaxAge:      maxAge(cfg.RetentionPolicy),
		Metadata: map[string]string{
			metadataBasin:        b.basin,
			metadataStream:       req.Stream,
			metadataStorageClass: storageClassName(cfg.StorageClass),
		},
	})
	if err != nil {
		return nil, fail(span, toServiceError(op, fmt.Errorf("could not create stream: %w", err)))
	}

	span.SetStatus(codes.Ok, "")
	return &types.StreamInfo{
		Name:      req.Stream,
		CreatedAt: stream.CachedInfo().Created,
	}, nil
}

func (b *BasinClient) DeleteStream(ctx context.Context, req *types.DeleteStreamRequest) error {
	const op = types.OperationDeleteStream
	ctx, span := b.startSpan(ctx, op, attribute.String("basin", b.basin), attribute.String("stream", req.Stream))
	defer span.End()

	if err := validateBasinName(op, b.basin); err != nil {
		return fail(span, err)
	}

	if err := validateStreamName(op, req.Stream); err != nil {
		return fail(span, err)
	}

	b.logger.Info("Deleting stream", slog.String("basin", b.basin), slog.String("stream", req.Stream))

	err := b.js.DeleteStream(ctx, jetStreamName(b.basin, req.Stream))
	if err != nil {
		if req.IfExists && errors.Is(err, jetstream.ErrStreamNotFound) {
			span.SetStatus(codes.Ok, "")
			return nil
		}

		return fail(span, toServiceError(op, err))
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

func (b *BasinClient) GetStreamConfig(ctx context.Context, stream string) (*types.StreamConfig, error) {
	const op = types.OperationGetStreamConfig
	ctx, span := b.startSpan(ctx, op, attribute.String("basin", b.basin), attribute.String("stream", stream))
	defer span.End()

	if err := validateBasinName(op, b.basin); err != nil {
		return nil, fail(span, err)
	}

	if err := validateStreamName(op, stream); err != nil {
		return nil, fail(span, err)
	}

	var info *jetstream.StreamInfo
	err := b.retry(ctx, op, func() error {
		s, err := b.js.Stream(ctx, jetStreamName(b.basin, stream))
		if err != nil {
			return err
		}

		info = s.CachedInfo()
		return nil
	})
	if err != nil {
		return nil, fail(span, err)
	}

	span.SetStatus(codes.Ok, "")
	return streamConfigOf(info.Config), nil
}

func (b *BasinClient) ReconfigureStream(ctx context.Context, req *types.ReconfigureStreamRequest) (*types.StreamConfig, error) {
	const op = types.OperationReconfigureStream
	ctx, span := b.startSpan(
		ctx,
		op,
		attribute.String("basin", b.basin),
		attribute.String("stream", req.Stream),
		attribute.StringSlice("mask", req.Mask),
	)
	defer span.End()

	if err := validateBasinName(op, b.basin); err != nil {
		return nil, fail(span, err)
	}

	if err := validateStreamName(op, req.Stream); err != nil {
		return nil, fail(span, err)
	}

	fields, err := streamMaskFields(op, req.Mask)
	if err != nil {
		return nil, fail(span, err)
	}

	if err := validateStreamConfig(op, req.Config); err != nil {
		return nil, fail(span, err)
	}

	stream, err := b.js.Stream(ctx, jetStreamName(b.basin, req.Stream))
	if err != nil {
		return nil, fail(span, toServiceError(op, err))
	}

	cfg := stream.CachedInfo().Config
	if len(fields) == 0 {
		span.SetStatus(codes.Ok, "")
		return streamConfigOf(cfg), nil
	}

	// For updates only the masked fields are touched, the rest is kept as is
	if cfg.Metadata == nil {
		cfg.Metadata = make(map[string]string)
	}

	for _, field := range fields {
		switch field {
		case fieldStorageClass:
			class := types.StorageClassUnspecified
			if req.Config != nil {
				class = req.Config.StorageClass
			}
			cfg.Metadata[metadataStorageClass] = storageClassName(class)
		case fieldRetentionPolicy:
			var policy types.RetentionPolicy
			if req.Config != nil {
				policy = req.Config.RetentionPolicy
			}
			cfg.MaxAge = maxAge(policy)
		}
	}

	b.logger.Info(
		"Reconfiguring stream",
		slog.String("basin", b.basin),
		slog.String("stream", req.Stream),
		slog.Any("fields", fields),
	)

	updated, err := b.js.UpdateStream(ctx, cfg)
	if err != nil {
		return nil, fail(span, toServiceError(op, fmt.Errorf("could not update stream: %w", err)))
	}

	span.SetStatus(codes.Ok, "")
	return streamConfigOf(updated.CachedInfo().Config), nil
}

// deleteStreams deletes all JetStream streams of a basin.
func (c *Client) deleteStreams(ctx context.Context, basin string) error {
	lister := c.js.StreamNames(ctx, jetstream.WithStreamListSubject(basinSubjects(basin)))

	var names []string
	for name := range lister.Name() {
		names = append(names, name)
	}

	if err := lister.Err(); err != nil {
		return err
	}

	for _, name := range names {
		err := c.js.DeleteStream(ctx, name)
		if err != nil && !errors.Is(err, jetstream.ErrStreamNotFound) {
			return fmt.Errorf("could not delete stream %s: %w", name, err)
		}
	}

	return nil
}

// listLimit caps the requested limit at maxListLimit, which is also used
// when no limit is given.
func listLimit(limit *uint64) int {
	if limit == nil || *limit == 0 || *limit > maxListLimit {
		return maxListLimit
	}

	return int(*limit)
}
