package account

// ListBasinsError is returned when listing basins fails.
type ListBasinsError struct {
	Err error
}

func (e *ListBasinsError) Error() string {
	return "failed to list basins: " + e.Err.Error()
}

func (e *ListBasinsError) Unwrap() error {
	return e.Err
}

func (e *ListBasinsError) Is(target error) bool {
	_, ok := target.(*ListBasinsError)
	return ok
}

// CreateBasinError is returned when a basin could not be created.
type CreateBasinError struct {
	Err error
}

func (e *CreateBasinError) Error() string {
	return "failed to create basin: " + e.Err.Error()
}

func (e *CreateBasinError) Unwrap() error {
	return e.Err
}

func (e *CreateBasinError) Is(target error) bool {
	_, ok := target.(*CreateBasinError)
	return ok
}

// DeleteBasinError is returned when a basin could not be deleted.
type DeleteBasinError struct {
	Err error
}

func (e *DeleteBasinError) Error() string {
	return "failed to delete basin: " + e.Err.Error()
}

func (e *DeleteBasinError) Unwrap() error {
	return e.Err
}

func (e *DeleteBasinError) Is(target error) bool {
	_, ok := target.(*DeleteBasinError)
	return ok
}

// GetBasinConfigError is returned when the config of a basin could not be
// fetched.
type GetBasinConfigError struct {
	Err error
}

func (e *GetBasinConfigError) Error() string {
	return "failed to get basin config: " + e.Err.Error()
}

func (e *GetBasinConfigError) Unwrap() error {
	return e.Err
}

func (e *GetBasinConfigError) Is(target error) bool {
	_, ok := target.(*GetBasinConfigError)
	return ok
}

// ReconfigureBasinError is returned when a basin could not be reconfigured.
type ReconfigureBasinError struct {
	Err error
}

func (e *ReconfigureBasinError) Error() string {
	return "failed to reconfigure basin: " + e.Err.Error()
}

func (e *ReconfigureBasinError) Unwrap() error {
	return e.Err
}

func (e *ReconfigureBasinError) Is(target error) bool {
	_, ok := target.(*ReconfigureBasinError)
	return ok
}
