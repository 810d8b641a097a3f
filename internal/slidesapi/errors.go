package slidesapi

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// RemoteAPIError is a non-2xx response from the Slides service. Prior
// batch chunks are not rolled back when it occurs; the presentation may
// be left partially built.
type RemoteAPIError struct {
	Status  int
	Message string
	Cause   error
}

func (e *RemoteAPIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("slides API error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("slides API error: %s", e.Message)
}

func (e *RemoteAPIError) Unwrap() error {
	return e.Cause
}

// wrapError normalizes transport errors into RemoteAPIError, keeping
// the HTTP status when the Google client exposes one.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &RemoteAPIError{
			Status:  gerr.Code,
			Message: fmt.Sprintf("%s: %s", op, gerr.Message),
			Cause:   err,
		}
	}
	return &RemoteAPIError{
		Message: fmt.Sprintf("%s: %v", op, err),
		Cause:   err,
	}
}
