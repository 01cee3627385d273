// Package dedupe reduces raw survey rows to one per identity claim.
// Deterministic and synchronous: same input order, same output.
package dedupe

import (
	"log"

	"invite-bot/internal/models"
)

// ByIdentityClaim keeps the first row seen per non-empty identity claim
// and drops rows with an empty claim entirely. Output order is
// first-seen order.
func ByIdentityClaim(rows []models.Response) []models.Response {
	seen := map[string]bool{}
	out := []models.Response{}
	for _, r := range rows {
		if r.IdentityClaim == "" {
			continue
		}
		if seen[r.IdentityClaim] {
			continue
		}
		seen[r.IdentityClaim] = true
		out = append(out, r)
	}
	log.Printf("dedupe: %d rows in, %d unique by identity claim", len(rows), len(out))
	return out
}
