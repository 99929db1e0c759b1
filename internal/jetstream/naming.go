package jetstream

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/levelfourab/s2-go/types"
	"github.com/nats-io/nats.go/jetstream"
)

// Metadata keys set on every JetStream stream backing a stream.
const (
	metadataBasin        = "s2.basin"
	metadataStream       = "s2.stream"
	metadataStorageClass = "s2.storage_class"
)

const maxStreamNameLength = 512

var basinNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{6,46}[a-z0-9]$`)

func validateBasinName(op types.Operation, name string) error {
	if !basinNamePattern.MatchString(name) {
		return invalidArgument(op, "invalid basin name: "+name)
	}

	return nil
}

func validateStreamName(op types.Operation, name string) error {
	if name == "" {
		return invalidArgument(op, "stream name is required")
	}

	if len(name) > maxStreamNameLength {
		return invalidArgument(op, "stream name is longer than 512 bytes")
	}

	// Names are kept in JSON metadata and would not come back unchanged
	if !utf8.ValidString(name) {
		return invalidArgument(op, "stream name is not valid UTF-8")
	}

	return nil
}

func validateStreamConfig(op types.Operation, cfg *types.StreamConfig) error {
	if cfg == nil {
		return nil
	}

	if age, ok := cfg.RetentionPolicy.(types.RetentionPolicyAge); ok && age < 0 {
		return invalidArgument(op, "retention age must not be negative")
	}

	return nil
}

func validateBasinConfig(op types.Operation, cfg *types.BasinConfig) error {
	if cfg == nil {
		return nil
	}

	return validateStreamConfig(op, cfg.DefaultStreamConfig)
}

// streamKey is derived from the stream name so that any name, including ones
// with characters JetStream does not allow, maps to a valid stream name and
// subject token.
func streamKey(stream string) string {
	sum := sha256.Sum256([]byte(stream))
	return hex.EncodeToString(sum[:16])
}

// jetStreamName returns the name of the JetStream stream backing a stream.
func jetStreamName(basin string, stream string) string {
	return basin + "_" + streamKey(stream)
}

func streamSubject(basin string, stream string) string {
	return "s2." + basin + "." + streamKey(stream)
}

// basinSubjects is the subject filter matching all streams of a basin.
func basinSubjects(basin string) string {
	return "s2." + basin + ".*"
}

func storageClassName(c types.StorageClass) string {
	switch c {
	case types.StorageClassStandard:
		return "standard"
	case types.StorageClassExpress:
		return "express"
	default:
		return "unspecified"
	}
}

func parseStorageClassName(s string) types.StorageClass {
	switch s {
	case "standard":
		return types.StorageClassStandard
	case "express":
		return types.StorageClassExpress
	default:
		return types.StorageClassUnspecified
	}
}

// resolveStreamConfig fills in what requested leaves open, first from the
// default stream config of the basin and then from the service defaults.
func resolveStreamConfig(requested *types.StreamConfig, defaults *types.StreamConfig) types.StreamConfig {
	res := types.StreamConfig{
		StorageClass:    types.StorageClassUnspecified,
		RetentionPolicy: types.RetentionPolicyAge(defaultRetention),
	}

	for _, cfg := range []*types.StreamConfig{defaults, requested} {
		if cfg == nil {
			continue
		}

		if cfg.StorageClass != types.StorageClassUnspecified {
			res.StorageClass = cfg.StorageClass
		}

		if cfg.RetentionPolicy != nil {
			res.RetentionPolicy = cfg.RetentionPolicy
		}
	}

	return res
}

func maxAge(p types.RetentionPolicy) time.Duration {
	if age, ok := p.(types.RetentionPolicyAge); ok {
		return time.Duration(age)
	}

	return defaultRetention
}

// streamConfigOf reads the config of a stream from its JetStream config.
func streamConfigOf(cfg jetstream.StreamConfig) *types.StreamConfig {
	return &types.StreamConfig{
		StorageClass:    parseStorageClassName(cfg.Metadata[metadataStorageClass]),
		RetentionPolicy: types.RetentionPolicyAge(cfg.MaxAge),
	}
}
