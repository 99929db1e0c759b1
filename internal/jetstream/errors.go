package jetstream

import (
	"context"
	"errors"

	"github.com/levelfourab/s2-go/types"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// toServiceError converts an error from NATS into a [types.ServiceError] for
// the given operation. Service errors are returned as is.
func toServiceError(op types.Operation, err error) error {
	if err == nil {
		return nil
	}

	var se *types.ServiceError
	if errors.As(err, &se) {
		return err
	}

	return types.NewServiceError(op, codeOf(err), "", err)
}

func codeOf(err error) types.Code {
	switch {
	case errors.Is(err, jetstream.ErrStreamNotFound),
		errors.Is(err, jetstream.ErrKeyNotFound),
		errors.Is(err, jetstream.ErrBucketNotFound):
		return types.CodeNotFound
	case errors.Is(err, jetstream.ErrStreamNameAlreadyInUse),
		errors.Is(err, jetstream.ErrKeyExists):
		return types.CodeAlreadyExists
	case errors.Is(err, jetstream.ErrInvalidStreamName),
		errors.Is(err, jetstream.ErrStreamNameRequired),
		errors.Is(err, jetstream.ErrInvalidKey):
		return types.CodeInvalidArgument
	case errors.Is(err, nats.ErrTimeout),
		errors.Is(err, nats.ErrNoResponders),
		errors.Is(err, nats.ErrConnectionReconnecting),
		errors.Is(err, jetstream.ErrJetStreamNotEnabled),
		errors.Is(err, context.DeadlineExceeded):
		return types.CodeUnavailable
	}

	var apiErr *jetstream.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode == jetstream.JSErrCodeStreamWrongLastSequence {
		// Concurrent update of a basin record, safe to try again
		return types.CodeUnavailable
	}

	return types.CodeInternal
}

func invalidArgument(op types.Operation, message string) error {
	return types.NewServiceError(op, types.CodeInvalidArgument, message, nil)
}

func notFound(op types.Operation, message string) error {
	return types.NewServiceError(op, types.CodeNotFound, message, nil)
}

func alreadyExists(op types.Operation, message string) error {
	return types.NewServiceError(op, types.CodeAlreadyExists, message, nil)
}
