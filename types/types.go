// Package types contains the canonical representation used by the stream
// store service. Values in this package are fully resolved: optional fields
// are either pointers or nil interfaces, enumerations always carry one of
// their defined values.
package types

import "time"

// StorageClass for recent writes.
type StorageClass uint

const (
	// StorageClassUnspecified leaves the choice of storage class to the
	// service.
	StorageClassUnspecified StorageClass = iota
	// StorageClassStandard offers end-to-end latencies under 500 ms.
	StorageClassStandard
	// StorageClassExpress offers end-to-end latencies under 50 ms.
	StorageClassExpress
)

func (c StorageClass) String() string {
	switch c {
	case StorageClassStandard:
		return "STORAGE_CLASS_STANDARD"
	case StorageClassExpress:
		return "STORAGE_CLASS_EXPRESS"
	default:
		return "STORAGE_CLASS_UNSPECIFIED"
	}
}

// RetentionPolicy controls how long records are kept in a stream.
//
// Valid types for RetentionPolicy are:
//   - [RetentionPolicyAge]
type RetentionPolicy interface {
	isRetentionPolicy()
}

// RetentionPolicyAge trims records older than the given age. An age of zero
// means infinite retention.
type RetentionPolicyAge time.Duration

func (RetentionPolicyAge) isRetentionPolicy() {}

// StreamConfig is the configuration of a stream.
type StreamConfig struct {
	// StorageClass for recent writes.
	StorageClass StorageClass
	// RetentionPolicy for the stream. If nil the service default is used.
	RetentionPolicy RetentionPolicy
}

// BasinConfig is the configuration of a basin.
type BasinConfig struct {
	// DefaultStreamConfig is applied to streams created without an explicit
	// configuration. If nil the service defaults are used.
	DefaultStreamConfig *StreamConfig
}

// StreamInfo describes a stream within a basin.
type StreamInfo struct {
	Name      string
	CreatedAt time.Time
}

// BasinInfo describes a basin.
type BasinInfo struct {
	Name      string
	CreatedAt time.Time
}

// ListStreamsRequest lists the streams of a basin.
type ListStreamsRequest struct {
	// Prefix restricts the listing to stream names starting with it.
	Prefix string
	// StartAfter only returns names that lexicographically sort after it.
	// Pass the last name of a previous listing to continue from there.
	StartAfter string
	// Limit is the number of results, up to a maximum of 1000.
	Limit *uint64
}

// ListStreamsResponse is the result of listing streams.
type ListStreamsResponse struct {
	Streams []StreamInfo
	// HasMore indicates there are more results to list with StartAfter.
	HasMore bool
}

// CreateStreamRequest creates a stream in a basin.
type CreateStreamRequest struct {
	// Stream name, unique within the basin.
	Stream string
	// Config of the new stream, nil to inherit the basin defaults.
	Config *StreamConfig
}

// DeleteStreamRequest deletes a stream from a basin.
type DeleteStreamRequest struct {
	Stream string
	// IfExists makes deleting a missing stream a no-op.
	IfExists bool
}

// ReconfigureStreamRequest updates parts of the configuration of a stream.
type ReconfigureStreamRequest struct {
	Stream string
	// Config with the updated values.
	Config *StreamConfig
	// Mask lists the field paths of Config that should be applied.
	Mask []string
}

// ListBasinsRequest lists the basins of an account.
type ListBasinsRequest struct {
	Prefix     string
	StartAfter string
	Limit      *uint64
}

// ListBasinsResponse is the result of listing basins.
type ListBasinsResponse struct {
	Basins  []BasinInfo
	HasMore bool
}

// CreateBasinRequest creates a basin.
type CreateBasinRequest struct {
	// Basin name, between 8 and 48 characters of lowercase letters, digits
	// and hyphens. It can not begin or end with a hyphen.
	Basin  string
	Config *BasinConfig
}

// DeleteBasinRequest deletes a basin and all of its streams.
type DeleteBasinRequest struct {
	Basin    string
	IfExists bool
}

// ReconfigureBasinRequest updates parts of the configuration of a basin.
type ReconfigureBasinRequest struct {
	Basin  string
	Config *BasinConfig
	Mask   []string
}

// Header is a name-value pair attached to a record.
type Header struct {
	Name  []byte
	Value []byte
}

// AppendRecord is a record to be appended to a stream.
type AppendRecord struct {
	Headers []Header
	Body    []byte
}
