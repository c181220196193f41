package vm

import "errors"

// asError is errors.As under a name that avoids clashing with the
// project errors package import.
func asError(err error, target any) bool {
	return errors.As(err, target)
}
