package commands

import (
	"io"

	"github.com/levelfourab/s2-go/config"
	"gopkg.in/yaml.v3"
)

type streamConfigView struct {
	StorageClass    string `yaml:"storage_class"`
	RetentionPolicy string `yaml:"retention_policy,omitempty"`
}

type basinConfigView struct {
	DefaultStreamConfig *streamConfigView `yaml:"default_stream_config,omitempty"`
}

func newStreamConfigView(cfg *config.StreamConfig) *streamConfigView {
	if cfg == nil {
		return nil
	}

	view := &streamConfigView{
		StorageClass: string(config.StorageClassUnspecified),
	}
	if cfg.StorageClass != nil {
		view.StorageClass = string(*cfg.StorageClass)
	}
	if age, ok := cfg.RetentionPolicy.(config.RetentionPolicyAge); ok {
		view.RetentionPolicy = age.Age.String()
	}
	return view
}

func newBasinConfigView(cfg *config.BasinConfig) *basinConfigView {
	if cfg == nil {
		return &basinConfigView{}
	}

	return &basinConfigView{
		DefaultStreamConfig: newStreamConfigView(cfg.DefaultStreamConfig),
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
