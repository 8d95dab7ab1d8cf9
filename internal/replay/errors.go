package replay

import "github.com/go-faster/errors"

var (
	ErrInvalidRange  = errors.New("invalid nonce range")
	ErrInvalidTarget = errors.New("invalid target")
)
