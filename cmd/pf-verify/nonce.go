package main

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

// nonceFlag accepts the full uint64 range and rejects negative input
// explicitly instead of reporting it as a parse failure.
type nonceFlag uint64

func (n *nonceFlag) String() string {
	return strconv.FormatUint(uint64(*n), 10)
}

func (n *nonceFlag) Set(s string) error {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		return errors.Errorf("nonce must be >= 0, got %s", s)
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return errors.Errorf("nonce %q is not a non-negative integer", s)
	}
	*n = nonceFlag(v)
	return nil
}

func (n *nonceFlag) Type() string {
	return "uint64"
}
