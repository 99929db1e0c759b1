package basin

// ListStreamsError is returned when listing streams fails.
type ListStreamsError struct {
	Err error
}

func (e *ListStreamsError) Error() string {
	return "failed to list streams: " + e.Err.Error()
}

func (e *ListStreamsError) Unwrap() error {
	return e.Err
}

func (e *ListStreamsError) Is(target error) bool {
	_, ok := target.(*ListStreamsError)
	return ok
}

// CreateStreamError is returned when a stream could not be created.
type CreateStreamError struct {
	Err error
}

func (e *CreateStreamError) Error() string {
	return "failed to create stream: " + e.Err.Error()
}

func (e *CreateStreamError) Unwrap() error {
	return e.Err
}

func (e *CreateStreamError) Is(target error) bool {
	_, ok := target.(*CreateStreamError)
	return ok
}

// DeleteStreamError is returned when a stream could not be deleted.
type DeleteStreamError struct {
	Err error
}

func (e *DeleteStreamError) Error() string {
	return "failed to delete stream: " + e.Err.Error()
}

func (e *DeleteStreamError) Unwrap() error {
	return e.Err
}

func (e *DeleteStreamError) Is(target error) bool {
	_, ok := target.(*DeleteStreamError)
	return ok
}

// GetStreamConfigError is returned when the config of a stream could not be
// fetched.
type GetStreamConfigError struct {
	Err error
}

func (e *GetStreamConfigError) Error() string {
	return "failed to get stream config: " + e.Err.Error()
}

func (e *GetStreamConfigError) Unwrap() error {
	return e.Err
}

func (e *GetStreamConfigError) Is(target error) bool {
	_, ok := target.(*GetStreamConfigError)
	return ok
}

// ReconfigureStreamError is returned when a stream could not be reconfigured.
type ReconfigureStreamError struct {
	Err error
}

func (e *ReconfigureStreamError) Error() string {
	return "failed to reconfigure stream: " + e.Err.Error()
}

func (e *ReconfigureStreamError) Unwrap() error {
	return e.Err
}

func (e *ReconfigureStreamError) Is(target error) bool {
	_, ok := target.(*ReconfigureStreamError)
	return ok
}
