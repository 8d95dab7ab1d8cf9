package engine

import "encoding/hex"

// VerifyRound checks a revealed server seed against the commitment published
// before the round and, when they match, recomputes the roll.
//
// The comparison is a plain string equality. By the time a round is audited
// the server seed is public, so there is nothing to leak through timing.
// A mismatch is a reportable result, not an error.
func VerifyRound(published, serverSeed, clientSeed string, nonce uint64) Result {
	computed := ComputeCommitment(serverSeed)
	res := Result{
		Published:  published,
		Computed:   computed,
		ClientSeed: clientSeed,
		Nonce:      nonce,
	}

	if computed != published {
		return res
	}

	d := Digest(serverSeed, clientSeed, nonce)
	roll := rollFromDigest(d[:])

	res.CommitmentMatch = true
	res.Valid = true
	res.Roll = &roll
	res.Digest = hex.EncodeToString(d[:])
	return res
}

// IsCommitment reports whether s looks like a lowercase SHA-256 hex digest.
func IsCommitment(s string) bool {
	if len(s) != CommitmentLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
