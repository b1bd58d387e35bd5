package core

import "errors"

// Domain errors returned by the engine. The transport layer maps these to
// wire status codes.
var (
	ErrDuplicateIdentity = errors.New("identity already logged in")
	ErrUnknownIdentity   = errors.New("unknown identity")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrBadRequest        = errors.New("bad request")
)
