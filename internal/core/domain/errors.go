package domain

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by local storage backends for an absent key.
var ErrKeyNotFound = errors.New("key not found")

// RemoteError is a request the backend answered but rejected.
type RemoteError struct {
	Op      string
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Status == 401
}
