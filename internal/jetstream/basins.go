package jetstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/levelfourab/s2-go/types"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// basinRecord is the value stored for a basin in the basins bucket.
type basinRecord struct {
	CreatedAt           time.Time     `json:"createdAt"`
	DefaultStreamConfig *streamRecord `json:"defaultStreamConfig,omitempty"`
}

type streamRecord struct {
	StorageClass string `json:"storageClass"`
	// RetentionAge is nil when the basin does not set a retention policy.
	RetentionAge *time.Duration `json:"retentionAge,omitempty"`
}

func newBasinRecord(cfg *types.BasinConfig, createdAt time.Time) *basinRecord {
	res := &basinRecord{CreatedAt: createdAt}
	res.setConfig(cfg)
	return res
}

func (r *basinRecord) setConfig(cfg *types.BasinConfig) {
	r.DefaultStreamConfig = nil
	if cfg == nil || cfg.DefaultStreamConfig == nil {
		return
	}

	sc := &streamRecord{
		StorageClass: storageClassName(cfg.DefaultStreamConfig.StorageClass),
	}
	if cfg.DefaultStreamConfig.RetentionPolicy != nil {
		age := maxAge(cfg.DefaultStreamConfig.RetentionPolicy)
		sc.RetentionAge = &age
	}
	r.DefaultStreamConfig = sc
}

func (r *basinRecord) defaultStreamConfig() *types.StreamConfig {
	if r.DefaultStreamConfig == nil {
		return nil
	}

	res := &types.StreamConfig{
		StorageClass: parseStorageClassName(r.DefaultStreamConfig.StorageClass),
	}
	if r.DefaultStreamConfig.RetentionAge != nil {
		res.RetentionPolicy = types.RetentionPolicyAge(*r.DefaultStreamConfig.RetentionAge)
	}
	return res
}

func (r *basinRecord) config() *types.BasinConfig {
	return &types.BasinConfig{
		DefaultStreamConfig: r.defaultStreamConfig(),
	}
}

// bucket returns the basins bucket, creating it if requested.
func (c *Client) bucket(ctx context.Context, create bool) (jetstream.KeyValue, error) {
	kv, err := c.js.KeyValue(ctx, basinsBucket)
	if err == nil || !create || !errors.Is(err, jetstream.ErrBucketNotFound) {
		return kv, err
	}

	kv, err = c.js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      basinsBucket,
		Description: "Basins and their configuration",
		History:     1,
	})
	if errors.Is(err, jetstream.ErrBucketExists) {
		// Created concurrently
		return c.js.KeyValue(ctx, basinsBucket)
	}

	return kv, err
}

// getBasin loads the record of a basin together with its revision.
func (c *Client) getBasin(ctx context.Context, op types.Operation, basin string) (*basinRecord, uint64, error) {
	kv, err := c.bucket(ctx, false)
	if errors.Is(err, jetstream.ErrBucketNotFound) {
		return nil, 0, notFound(op, "basin not found: "+basin)
	} else if err != nil {
		return nil, 0, toServiceError(op, err)
	}

	entry, err := kv.Get(ctx, basin)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, 0, notFound(op, "basin not found: "+basin)
	} else if err != nil {
		return nil, 0, toServiceError(op, err)
	}

	var record basinRecord
	if err := json.Unmarshal(entry.Value(), &record); err != nil {
		return nil, 0, toServiceError(op, fmt.Errorf("could not decode basin %s: %w", basin, err))
	}

	return &record, entry.Revision(), nil
}

func (c *Client) ListBasins(ctx context.Context, req *types.ListBasinsRequest) (*types.ListBasinsResponse, error) {
	const op = types.OperationListBasins
	ctx, span := c.startSpan(ctx, op, attribute.String("prefix", req.Prefix))
	defer span.End()

	limit := listLimit(req.Limit)

	var names []string
	err := c.retry(ctx, op, func() error {
		kv, err := c.bucket(ctx, false)
		if errors.Is(err, jetstream.ErrBucketNotFound) {
			names = nil
			return nil
		} else if err != nil {
			return err
		}

		keys, err := kv.Keys(ctx)
		if err != nil && !errors.Is(err, jetstream.ErrNoKeysFound) {
			return err
		}

		names = names[:0]
		for _, key := range keys {
			if strings.HasPrefix(key, req.Prefix) && key > req.StartAfter {
				names = append(names, key)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fail(span, err)
	}

	sort.Strings(names)

	res := &types.ListBasinsResponse{}
	if len(names) > limit {
		names = names[:limit]
		res.HasMore = true
	}

	for _, name := range names {
		record, _, err := c.getBasin(ctx, op, name)
		if types.IsNotFound(err) {
			// Deleted while listing
			continue
		} else if err != nil {
			return nil, fail(span, err)
		}

		res.Basins = append(res.Basins, types.BasinInfo{
			Name:      name,
			CreatedAt: record.CreatedAt,
		})
	}

	span.SetStatus(codes.Ok, "")
	return res, nil
}

func (c *Client) CreateBasin(ctx context.Context, req *types.CreateBasinRequest) (*types.BasinInfo, error) {
	const op = types.OperationCreateBasin
	ctx, span := c.startSpan(ctx, op, attribute.String("basin", req.Basin))
	defer span.End()

	if err := validateBasinName(op, req.Basin); err != nil {
		return nil, fail(span, err)
	}

	if err := validateBasinConfig(op, req.Config); err != nil {
		return nil, fail(span, err)
	}

	kv, err := c.bucket(ctx, true)
	if err != nil {
		return nil, fail(span, toServiceError(op, fmt.Errorf("could not open basins bucket: %w", err)))
	}

	record := newBasinRecord(req.Config, time.Now().UTC())
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fail(span, toServiceError(op, err))
	}

	c.logger.Info("Creating basin", slog.String("basin", req.Basin))

	_, err = kv.Create(ctx, req.Basin, data)
	if errors.Is(err, jetstream.ErrKeyExists) {
		return nil, fail(span, alreadyExists(op, "basin already exists: "+req.Basin))
	} else if err != nil {
		return nil, fail(span, toServiceError(op, fmt.Errorf("could not store basin: %w", err)))
	}

	span.SetStatus(codes.Ok, "")
	return &types.BasinInfo{
		Name:      req.Basin,
		CreatedAt: record.CreatedAt,
	}, nil
}

func (c *Client) DeleteBasin(ctx context.Context, req *types.DeleteBasinRequest) error {
	const op = types.OperationDeleteBasin
	ctx, span := c.startSpan(ctx, op, attribute.String("basin", req.Basin))
	defer span.End()

	if err := validateBasinName(op, req.Basin); err != nil {
		return fail(span, err)
	}

	_, _, err := c.getBasin(ctx, op, req.Basin)
	if err != nil {
		if req.IfExists && types.IsNotFound(err) {
			span.SetStatus(codes.Ok, "")
			return nil
		}

		return fail(span, err)
	}

	c.logger.Info("Deleting basin", slog.String("basin", req.Basin))

	if err := c.deleteStreams(ctx, req.Basin); err != nil {
		return fail(span, toServiceError(op, err))
	}

	kv, err := c.bucket(ctx, false)
	if err != nil {
		return fail(span, toServiceError(op, err))
	}

	if err := kv.Purge(ctx, req.Basin); err != nil {
		return fail(span, toServiceError(op, fmt.Errorf("could not delete basin: %w", err)))
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

func (c *Client) GetBasinConfig(ctx context.Context, basin string) (*types.BasinConfig, error) {
	const op = types.OperationGetBasinConfig
	ctx, span := c.startSpan(ctx, op, attribute.String("basin", basin))
	defer span.End()

	if err := validateBasinName(op, basin); err != nil {
		return nil, fail(span, err)
	}

	var record *basinRecord
	err := c.retry(ctx, op, func() error {
		var err error
		record, _, err = c.getBasin(ctx, op, basin)
		return err
	})
	if err != nil {
		return nil, fail(span, err)
	}

	span.SetStatus(codes.Ok, "")
	return record.config(), nil
}

func (c *Client) ReconfigureBasin(ctx context.Context, req *types.ReconfigureBasinRequest) (*types.BasinConfig, error) {
	const op = types.OperationReconfigureBasin
	ctx, span := c.startSpan(ctx, op, attribute.String("basin", req.Basin), attribute.StringSlice("mask", req.Mask))
	defer span.End()

	if err := validateBasinName(op, req.Basin); err != nil {
		return nil, fail(span, err)
	}

	if err := validateBasinConfig(op, req.Config); err != nil {
		return nil, fail(span, err)
	}

	record, revision, err := c.getBasin(ctx, op, req.Basin)
	if err != nil {
		return nil, fail(span, err)
	}

	cfg, err := applyBasinMask(op, record.config(), req.Config, req.Mask)
	if err != nil {
		return nil, fail(span, err)
	}

	record.setConfig(cfg)
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fail(span, toServiceError(op, err))
	}

	c.logger.Info("Reconfiguring basin", slog.String("basin", req.Basin), slog.Any("mask", req.Mask))

	kv, err := c.bucket(ctx, false)
	if err != nil {
		return nil, fail(span, toServiceError(op, err))
	}

	// The revision guards against concurrent updates of the same basin
	if _, err := kv.Update(ctx, req.Basin, data, revision); err != nil {
		return nil, fail(span, toServiceError(op, fmt.Errorf("could not update basin: %w", err)))
	}

	span.SetStatus(codes.Ok, "")
	return record.config(), nil
}
