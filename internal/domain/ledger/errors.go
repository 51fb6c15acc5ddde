package ledger

import "errors"

var (
	ErrHandleRequired          = errors.New("handle required")
	ErrInvalidHandle           = errors.New("invalid handle")
	ErrInsufficientScore       = errors.New("insufficient score")
	ErrLinkNotFound            = errors.New("link not found")
	ErrOwnLink                 = errors.New("cannot verify own link")
	ErrAlreadyLiked            = errors.New("link already liked")
	ErrNotLiked                = errors.New("link not liked")
	ErrVerificationUnavailable = errors.New("verification unavailable")
	ErrStorageUnavailable      = errors.New("storage unavailable")
)

// IsTransient reports whether err is an infrastructure failure the caller
// may retry. Every other ledger error needs a changed input.
func IsTransient(err error) bool {
	return errors.Is(err, ErrVerificationUnavailable) || errors.Is(err, ErrStorageUnavailable)
}
