package usage

import (
	"fmt"
	"strings"
)

// Arity is returned when a command needs more argument tokens than remain.
func Arity(name string, want, got int, usageLine string) *Error {
	return &Error{
		Kind:    ErrArity,
		Message: fmt.Sprintf("%q command requires %d argument(s), got %d", name, want, got),
		Usage:   usageLine,
	}
}

// Incomplete is returned when input ends at a command that needs a subcommand.
func Incomplete(name string, continuations []string, usageLine string) *Error {
	return &Error{
		Kind:          ErrIncomplete,
		Message:       fmt.Sprintf("%q command requires one of: %s", name, strings.Join(continuations, ", ")),
		Usage:         usageLine,
		Continuations: continuations,
	}
}

// NoMatch is returned when a token does not name any child of the current command.
func NoMatch(token string, continuations []string, usageLine string, suggestions ...string) *Error {
	msg := fmt.Sprintf("args did not match: %s", token)
	if len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
	}
	return &Error{
		Kind:          ErrNoMatch,
		Message:       msg,
		Usage:         usageLine,
		Continuations: continuations,
		Suggestions:   suggestions,
	}
}

// NameCollision is recorded when a command is registered twice under one parent.
func NameCollision(parent, name string) *Error {
	return &Error{
		Kind:    ErrNameCollision,
		Message: fmt.Sprintf("command %q already registered under %q, keeping the first", name, parent),
	}
}

// UnknownParent is recorded when a command names a parent that was never
// registered, usually because the parent itself collided.
func UnknownParent(name string, parent int, err error) *Error {
	return &Error{
		Kind:    ErrUnknownParent,
		Message: fmt.Sprintf("command %q not registered: parent %d does not exist", name, parent),
		Err:     err,
	}
}

// Hook wraps an error returned by a command's hook.
func Hook(name string, err error) *Error {
	return &Error{
		Kind:    ErrHook,
		Message: fmt.Sprintf("%s: %v", name, err),
		Err:     err,
	}
}
