package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrInvalidOTP    = errors.New("invalid otp")
	ErrExpiredOTP    = errors.New("expired otp")
	ErrUnverified    = errors.New("unverified")
	ErrWrongPassword = errors.New("wrong password")
	ErrDelivery      = errors.New("delivery failed")
	ErrStore         = errors.New("store failure")
	ErrConflict      = errors.New("conflict")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
)

// Error pairs a sentinel kind with the message shown to API clients.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// NewError returns an error of the given kind carrying a client-facing message.
func NewError(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}
