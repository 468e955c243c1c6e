package service

import "errors"

var (
	ErrUnknownUser          = errors.New("unknown user")
	ErrUnjoinedAccount      = errors.New("unjoined account")
	ErrAlreadyJoinedAccount = errors.New("already joined account")
	ErrInvalidPassword      = errors.New("invalid password")
	ErrSamePassword         = errors.New("cannot change to the same password")
	ErrCannotRemoveYourself = errors.New("cannot remove yourself")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrUnknownNotice        = errors.New("unknown notice")
)
