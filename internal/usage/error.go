package usage

import "errors"

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrArity
	ErrIncomplete
	ErrNoMatch
	ErrNameCollision
	ErrHook
	ErrInvalidArgument
	ErrInvalidConfigKey
	ErrNotFound
	ErrUnknownParent
)

// Exit codes:
//
//	Exit 1: Environment/system errors
//	  - Unknown errors
//	  - No matching command
//	  - Name collision or unknown parent at registration
//	  - Hook failure
//	  - Invalid config key
//	  - Entry not found
//
//	Exit 2: User input errors
//	  - Too few arguments for a command
//	  - Incomplete command
//	  - Invalid argument value
var exitCodes = map[ErrorKind]int{
	ErrUnknown:          1,
	ErrArity:            2,
	ErrIncomplete:       2,
	ErrNoMatch:          1,
	ErrNameCollision:    1,
	ErrHook:             1,
	ErrInvalidArgument:  2,
	ErrInvalidConfigKey: 1,
	ErrNotFound:         1,
	ErrUnknownParent:    1,
}

func (k ErrorKind) String() string {
	switch k {
	case ErrArity:
		return "arity"
	case ErrIncomplete:
		return "incomplete"
	case ErrNoMatch:
		return "no match"
	case ErrNameCollision:
		return "name collision"
	case ErrHook:
		return "hook"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrInvalidConfigKey:
		return "invalid config key"
	case ErrNotFound:
		return "not found"
	case ErrUnknownParent:
		return "unknown parent"
	default:
		return "unknown"
	}
}

// Error represents a user-facing usage error with semantic type information.
type Error struct {
	Kind    ErrorKind
	Message string

	// Usage is the usage line of the node that raised the error, if any.
	Usage string

	// Continuations lists the child names that were valid at the point of failure.
	Continuations []string
	Suggestions   []string

	Err      error
	ExitCode int // computed from Kind if zero
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; otherwise, the code is derived from Kind.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// KindOf returns the kind of the first *Error in err's chain, or ErrUnknown.
func KindOf(err error) ErrorKind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return ErrUnknown
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
