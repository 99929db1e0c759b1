package config

import (
	"fmt"
	"strings"

	"github.com/levelfourab/s2-go/types"
)

// StorageClass selects the storage tier used for recent writes.
type StorageClass string

const (
	// StorageClassUnspecified lets the service pick the storage class.
	StorageClassUnspecified StorageClass = "unspecified"
	// StorageClassStandard offers end-to-end latencies under 500 ms.
	StorageClassStandard StorageClass = "standard"
	// StorageClassExpress offers end-to-end latencies under 50 ms.
	StorageClassExpress StorageClass = "express"
)

// StorageClasses lists the recognized storage classes.
var StorageClasses = []StorageClass{
	StorageClassUnspecified,
	StorageClassStandard,
	StorageClassExpress,
}

// ParseStorageClass parses one of the names in [StorageClasses], ignoring
// case.
func ParseStorageClass(s string) (StorageClass, error) {
	v := StorageClass(strings.ToLower(strings.TrimSpace(s)))
	for _, c := range StorageClasses {
		if c == v {
			return c, nil
		}
	}

	return "", fmt.Errorf("unknown storage class %q, expected one of unspecified, standard or express", s)
}

// StorageClassOf returns a pointer to c, for use in [StreamConfig].
func StorageClassOf(c StorageClass) *StorageClass {
	return &c
}

// Canonical maps the storage class to the service enumeration. Values not in
// [StorageClasses] map to [types.StorageClassUnspecified].
func (c StorageClass) Canonical() types.StorageClass {
	switch c {
	case StorageClassStandard:
		return types.StorageClassStandard
	case StorageClassExpress:
		return types.StorageClassExpress
	case StorageClassUnspecified:
		return types.StorageClassUnspecified
	default:
		return types.StorageClassUnspecified
	}
}

// FromCanonicalStorageClass maps a service storage class to its user-facing
// name. Unknown values map to [StorageClassUnspecified].
func FromCanonicalStorageClass(c types.StorageClass) StorageClass {
	switch c {
	case types.StorageClassStandard:
		return StorageClassStandard
	case types.StorageClassExpress:
		return StorageClassExpress
	case types.StorageClassUnspecified:
		return StorageClassUnspecified
	default:
		return StorageClassUnspecified
	}
}

// String implements pflag.Value.
func (c *StorageClass) String() string {
	if c == nil {
		return ""
	}

	return string(*c)
}

// Set implements pflag.Value.
func (c *StorageClass) Set(s string) error {
	v, err := ParseStorageClass(s)
	if err != nil {
		return err
	}

	*c = v
	return nil
}

// Type implements pflag.Value.
func (c *StorageClass) Type() string {
	return "storageClass"
}
