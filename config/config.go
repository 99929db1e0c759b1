// Package config contains the user-facing configuration of basins and
// streams, and the conversions to and from the canonical service types in
// package [types].
//
// Fields are optional in this package. A nil field means "not specified" and
// is resolved during conversion, never replaced by a zero value.
package config

import "github.com/levelfourab/s2-go/types"

// Field paths used in masks when reconfiguring basins and streams.
const (
	// DefaultStreamConfigPath addresses the whole default stream config of a
	// basin.
	DefaultStreamConfigPath = "default_stream_config"
	// StorageClassPath addresses the storage class.
	StorageClassPath = "default_stream_config.storage_class"
	// RetentionPolicyPath addresses the retention policy.
	RetentionPolicyPath = "default_stream_config.retention_policy"
)

// BasinConfig is the configuration of a basin.
type BasinConfig struct {
	// DefaultStreamConfig is used for streams created without a config. If
	// nil, the service defaults are inherited.
	DefaultStreamConfig *StreamConfig
}

// StreamConfig is the configuration of a stream.
type StreamConfig struct {
	// StorageClass for the stream. If nil, [StorageClassUnspecified] is sent
	// to the service.
	StorageClass *StorageClass
	// RetentionPolicy for the stream. If nil, no policy is sent and the
	// service decides.
	RetentionPolicy RetentionPolicy
}

// Canonical converts the config to the service representation. A basin
// config without a default stream config stays without one.
func (c BasinConfig) Canonical() *types.BasinConfig {
	res := &types.BasinConfig{}
	if c.DefaultStreamConfig != nil {
		res.DefaultStreamConfig = c.DefaultStreamConfig.Canonical()
	}

	return res
}

// Canonical converts the config to the service representation.
func (c StreamConfig) Canonical() *types.StreamConfig {
	res := &types.StreamConfig{
		StorageClass: types.StorageClassUnspecified,
	}

	if c.StorageClass != nil {
		res.StorageClass = c.StorageClass.Canonical()
	}

	if c.RetentionPolicy != nil {
		res.RetentionPolicy = canonicalRetentionPolicy(c.RetentionPolicy)
	}

	return res
}

// FromCanonicalBasinConfig converts a basin config returned by the service.
func FromCanonicalBasinConfig(c *types.BasinConfig) *BasinConfig {
	if c == nil {
		return nil
	}

	return &BasinConfig{
		DefaultStreamConfig: FromCanonicalStreamConfig(c.DefaultStreamConfig),
	}
}

// FromCanonicalStreamConfig converts a stream config returned by the service.
// The storage class is always set in the result, since the service always
// reports one.
func FromCanonicalStreamConfig(c *types.StreamConfig) *StreamConfig {
	if c == nil {
		return nil
	}

	storageClass := FromCanonicalStorageClass(c.StorageClass)
	return &StreamConfig{
		StorageClass:    &storageClass,
		RetentionPolicy: FromCanonicalRetentionPolicy(c.RetentionPolicy),
	}
}
