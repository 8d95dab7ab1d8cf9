package logger

import (
	"crypto/sha256"
	"encoding/hex"

	"go.uber.org/zap"
)

// SeedHash returns a field with the first 16 hex chars of the seed's SHA-256.
// Raw server seeds are never logged.
func SeedHash(key, seed string) zap.Field {
	h := sha256.Sum256([]byte(seed))
	return zap.String(key, hex.EncodeToString(h[:])[:16])
}
