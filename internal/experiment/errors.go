package experiment

import (
	"errors"
	"fmt"
	"strings"
)

// ErrResolutionAborted signals that the user cancelled conflict resolution.
// The caller is expected to discard the candidate configuration and restart
// parameter collection from scratch, not retry the current check.
var ErrResolutionAborted = errors.New("resolution aborted: restart parameter collection")

// ConstraintViolation reports a configuration field that failed validation,
// naming the field and the rule it violated. It is always recoverable by
// re-collecting input.
type ConstraintViolation struct {
	Field string
	Rule  string
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("constraint violation on %s: %s", e.Field, e.Rule)
}

// UnknownStateFamilyError reports an unrecognized state family token.
type UnknownStateFamilyError struct {
	Token string
}

func (e *UnknownStateFamilyError) Error() string {
	return fmt.Sprintf("unknown state family %q (valid: %s)", e.Token, strings.Join(ValidStateTypes, ", "))
}

// UnknownNoiseFamilyError reports an unrecognized noise family token.
type UnknownNoiseFamilyError struct {
	Token string
}

func (e *UnknownNoiseFamilyError) Error() string {
	return fmt.Sprintf("unknown noise family %q (valid: %s)", e.Token, strings.Join(ValidNoiseTypes, ", "))
}
