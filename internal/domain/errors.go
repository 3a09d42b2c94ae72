package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
	ErrPrecondition = errors.New("precondition failed")
	ErrConflict     = errors.New("conflict")
)

// Message keys attached to domain errors. The HTTP layer translates them.
const (
	MsgProjectNotFound      = "project not found"
	MsgProjectNameTaken     = "project with this name already exists"
	MsgProjectClosed        = "closed project cannot be edited"
	MsgProjectHasFunds      = "project has received funds and cannot be deleted"
	MsgFullAmountBelowFunds = "full amount cannot be less than invested amount"
	MsgFundsAlreadyAssigned = "funds are already distributed"
	MsgNameRequired         = "project name cannot be empty"
	MsgNameTooLong          = "project name is too long"
	MsgDescriptionRequired  = "project description cannot be empty"
	MsgAmountPositive       = "amount must be positive"
	MsgEmptyPatch           = "nothing to update"
)

// DetailError pairs a sentinel kind with a message key.
type DetailError struct {
	Kind error
	Key  string
}

func (e *DetailError) Error() string { return e.Kind.Error() + ": " + e.Key }

func (e *DetailError) Unwrap() error { return e.Kind }

// Fail builds a DetailError for kind with message key.
func Fail(kind error, key string) error {
	return &DetailError{Kind: kind, Key: key}
}

// MessageKey extracts the message key of err, or "" when none is attached.
func MessageKey(err error) string {
	var de *DetailError
	if errors.As(err, &de) {
		return de.Key
	}
	return ""
}
