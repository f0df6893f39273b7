package caserequest

import "errors"

var (
	ErrRequestNotFound      = errors.New("case request not found")
	ErrInvalidRequestType   = errors.New("requestType must be Lien, Garnishment or Release")
	ErrUnknownCategory      = errors.New("unknown file category")
	ErrConfirmationRequired = errors.New("deletion must be confirmed with a valid token")
)
