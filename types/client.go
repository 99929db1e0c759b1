package types

import "context"

// BasinClient performs stream operations within a single basin. Implementations
// must be safe for concurrent use.
type BasinClient interface {
	// ListStreams lists the streams of the basin.
	ListStreams(ctx context.Context, req *ListStreamsRequest) (*ListStreamsResponse, error)

	// CreateStream creates a new stream.
	CreateStream(ctx context.Context, req *CreateStreamRequest) (*StreamInfo, error)

	// DeleteStream deletes a stream.
	DeleteStream(ctx context.Context, req *DeleteStreamRequest) error

	// GetStreamConfig returns the current configuration of a stream.
	GetStreamConfig(ctx context.Context, stream string) (*StreamConfig, error)

	// ReconfigureStream applies the masked fields of a configuration to a
	// stream and returns the resulting configuration.
	ReconfigureStream(ctx context.Context, req *ReconfigureStreamRequest) (*StreamConfig, error)
}

// AccountClient performs basin operations. Implementations must be safe for
// concurrent use.
type AccountClient interface {
	ListBasins(ctx context.Context, req *ListBasinsRequest) (*ListBasinsResponse, error)

	CreateBasin(ctx context.Context, req *CreateBasinRequest) (*BasinInfo, error)

	DeleteBasin(ctx context.Context, req *DeleteBasinRequest) error

	GetBasinConfig(ctx context.Context, basin string) (*BasinConfig, error)

	ReconfigureBasin(ctx context.Context, req *ReconfigureBasinRequest) (*BasinConfig, error)
}
