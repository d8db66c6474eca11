package usage

import "fmt"

// InvalidArgument is returned when a hook cannot use an argument value.
func InvalidArgument(arg, value, reason string) *Error {
	return &Error{
		Kind:    ErrInvalidArgument,
		Message: fmt.Sprintf("invalid %s %q: %s", arg, value, reason),
	}
}

// InvalidConfigKey is returned for keys the configuration does not know.
func InvalidConfigKey(key string) *Error {
	return &Error{
		Kind:    ErrInvalidConfigKey,
		Message: fmt.Sprintf("unknown config key '%s'", key),
	}
}

// NotFound is returned when an indexed entry does not exist.
func NotFound(what string, index int) *Error {
	return &Error{
		Kind:    ErrNotFound,
		Message: fmt.Sprintf("%s %d: index out of bound", what, index),
	}
}
