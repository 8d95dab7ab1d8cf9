package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	// CommitmentLength is the hex length of a SHA-256 commitment.
	CommitmentLength = sha256.Size * 2

	rollBuckets = 10000
	rollScale   = -2
)

// ComputeCommitment returns the lowercase hex SHA-256 of the server seed.
func ComputeCommitment(serverSeed string) string {
	h := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(h[:])
}

// Message builds the HMAC payload for a round: "<client>:<nonce>".
func Message(clientSeed string, nonce uint64) string {
	return clientSeed + ":" + strconv.FormatUint(nonce, 10)
}

// Digest computes HMAC-SHA256 keyed with the server seed over the round message.
func Digest(serverSeed, clientSeed string, nonce uint64) [sha256.Size]byte {
	h := hmac.New(sha256.New, []byte(serverSeed))
	h.Write([]byte(Message(clientSeed, nonce)))

	var out [sha256.Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// ComputeRoll derives the dice roll for a round.
//
// The first 8 bytes of the digest are read as a big-endian uint64, reduced
// modulo 10000 and scaled by 1/100, giving 0.00 through 99.99.
func ComputeRoll(serverSeed, clientSeed string, nonce uint64) Roll {
	d := Digest(serverSeed, clientSeed, nonce)
	return rollFromDigest(d[:])
}

func rollFromDigest(d []byte) Roll {
	v := binary.BigEndian.Uint64(d[:8])
	return decimal.New(int64(v%rollBuckets), rollScale)
}

// FormatRoll renders a roll with exactly two fractional digits.
func FormatRoll(r Roll) string {
	return r.StringFixed(-rollScale)
}
