package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// VisitorHash derives the daily-rotating pseudonymous visitor identifier:
// the first 16 hex characters of sha256(addr + "YYYY-MM-DD"), with the date
// taken at the UTC day boundary.
//
// The same address produces the same hash within one UTC day and a different
// hash on the next, which bounds cross-day linkability of unique-visitor
// counts. The function is total: an empty or malformed address hashes to a
// stable, non-identifying value.
func VisitorHash(addr string, day time.Time) string {
	sum := sha256.Sum256([]byte(addr + day.UTC().Format("2006-01-02")))
	return hex.EncodeToString(sum[:])[:16]
}
