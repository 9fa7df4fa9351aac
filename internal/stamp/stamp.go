// Package stamp mints content-bound admission stamps for verification
// records. The leading-zero difficulty is an informational rate signal, not a
// security primitive: it never gates persistence.
package stamp

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// DifficultyTarget is the number of leading zero hex characters required for
// a stamp to count as meeting difficulty.
const DifficultyTarget = 4

// Stamp is a derived, content-bound identifier.
type Stamp struct {
	Hash             string `json:"hash"`
	LeadingZeroCount int    `json:"leading_zeros"`
	MeetsDifficulty  bool   `json:"meets_difficulty"`
}

// ID returns the verification record key derived from the stamp.
func (s Stamp) ID() string {
	return s.Hash
}

// Mint computes the stamp for the given submission content at the given
// moment. The millisecond timestamp is folded into the digest so identical
// content submitted twice yields distinct record keys.
func Mint(content string, at time.Time) Stamp {
	payload := fmt.Sprintf("%s:%d", content, at.UnixMilli())
	digest := sha256.Sum256([]byte(payload))
	hash := hex.EncodeToString(digest[:])

	zeros := countLeadingZeros(hash)
	return Stamp{
		Hash:             hash,
		LeadingZeroCount: zeros,
		MeetsDifficulty:  zeros >= DifficultyTarget,
	}
}

func countLeadingZeros(hash string) int {
	count := 0
	for _, c := range hash {
		if c != '0' {
			break
		}
		count++
	}
	return count
}
