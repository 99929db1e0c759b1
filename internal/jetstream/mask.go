package jetstream

import (
	"strings"

	"github.com/levelfourab/s2-go/types"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

// Field names within a stream config.
const (
	fieldStorageClass    = "storage_class"
	fieldRetentionPolicy = "retention_policy"
)

const defaultStreamConfigField = "default_stream_config"

// streamMaskFields returns the stream config fields addressed by mask. Paths
// may be given relative to the stream config or to the default stream config
// of a basin.
func streamMaskFields(op types.Operation, mask []string) ([]string, error) {
	fm := &fieldmaskpb.FieldMask{Paths: mask}
	fm.Normalize()

	fields := make([]string, 0, 2)
	for _, path := range fm.GetPaths() {
		switch strings.TrimPrefix(path, defaultStreamConfigField+".") {
		case fieldStorageClass:
			fields = append(fields, fieldStorageClass)
		case fieldRetentionPolicy:
			fields = append(fields, fieldRetentionPolicy)
		case defaultStreamConfigField:
			fields = append(fields, fieldStorageClass, fieldRetentionPolicy)
		default:
			return nil, invalidArgument(op, "unknown field path in mask: "+path)
		}
	}

	return fields, nil
}

// applyBasinMask applies the masked fields of update to current and returns
// the result. A masked field that is not set in update is cleared.
func applyBasinMask(op types.Operation, current *types.BasinConfig, update *types.BasinConfig, mask []string) (*types.BasinConfig, error) {
	fm := &fieldmaskpb.FieldMask{Paths: mask}
	fm.Normalize()

	res := &types.BasinConfig{}
	if current != nil && current.DefaultStreamConfig != nil {
		sc := *current.DefaultStreamConfig
		res.DefaultStreamConfig = &sc
	}

	var updated *types.StreamConfig
	if update != nil {
		updated = update.DefaultStreamConfig
	}

	for _, path := range fm.GetPaths() {
		switch path {
		case defaultStreamConfigField:
			res.DefaultStreamConfig = nil
			if updated != nil {
				sc := *updated
				res.DefaultStreamConfig = &sc
			}
		case defaultStreamConfigField + "." + fieldStorageClass:
			if res.DefaultStreamConfig == nil {
				res.DefaultStreamConfig = &types.StreamConfig{}
			}

			res.DefaultStreamConfig.StorageClass = types.StorageClassUnspecified
			if updated != nil {
				res.DefaultStreamConfig.StorageClass = updated.StorageClass
			}
		case defaultStreamConfigField + "." + fieldRetentionPolicy:
			if res.DefaultStreamConfig == nil {
				res.DefaultStreamConfig = &types.StreamConfig{}
			}

			res.DefaultStreamConfig.RetentionPolicy = nil
			if updated != nil {
				res.DefaultStreamConfig.RetentionPolicy = updated.RetentionPolicy
			}
		default:
			return nil, invalidArgument(op, "unknown field path in mask: "+path)
		}
	}

	return res, nil
}
