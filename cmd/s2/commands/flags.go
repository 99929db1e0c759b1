package commands

import (
	"fmt"

	"github.com/levelfourab/s2-go/config"
	"github.com/spf13/pflag"
)

const (
	flagStorageClass    = "storage-class"
	flagRetentionPolicy = "retention-policy"
)

// streamConfigFlags binds the fields of a stream config to flags.
type streamConfigFlags struct {
	storageClass    config.StorageClass
	retentionPolicy string
}

func (f *streamConfigFlags) register(fs *pflag.FlagSet) {
	fs.Var(&f.storageClass, flagStorageClass, "storage class, one of unspecified, standard or express")
	fs.StringVar(&f.retentionPolicy, flagRetentionPolicy, "", "age after which records are trimmed, such as 1d or 1w")
}

// changed reports whether any of the config flags were given.
func (f *streamConfigFlags) changed(fs *pflag.FlagSet) bool {
	return fs.Changed(flagStorageClass) || fs.Changed(flagRetentionPolicy)
}

// streamConfig returns the config described by the flags that were given.
// An empty retention policy leaves the policy unset.
func (f *streamConfigFlags) streamConfig(fs *pflag.FlagSet) (config.StreamConfig, error) {
	var cfg config.StreamConfig
	if fs.Changed(flagStorageClass) {
		cfg.StorageClass = config.StorageClassOf(f.storageClass)
	}

	if fs.Changed(flagRetentionPolicy) && f.retentionPolicy != "" {
		policy, err := config.ParseRetentionPolicyStrict(f.retentionPolicy)
		if err != nil {
			return cfg, fmt.Errorf("invalid retention policy %q: %w", f.retentionPolicy, err)
		}
		cfg.RetentionPolicy = policy
	}

	return cfg, nil
}

// mask returns the paths for the config flags that were given, so that a
// reconfigure only touches what the user asked for.
func (f *streamConfigFlags) mask(fs *pflag.FlagSet) []string {
	var mask []string
	if fs.Changed(flagStorageClass) {
		mask = append(mask, config.StorageClassPath)
	}
	if fs.Changed(flagRetentionPolicy) {
		mask = append(mask, config.RetentionPolicyPath)
	}
	return mask
}
