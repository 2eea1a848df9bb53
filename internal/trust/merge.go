package trust

import "github.com/ZulAmi/proofwork/internal/domain"

// Merge combines two review feeds into one, keeping at most one review per
// distinct reviewer. The primary feed is authoritative: when both feeds carry
// a review from the same reviewer, the primary version wins unconditionally
// and the secondary version is discarded whole, never merged field by field.
// Output order is the primary feed's order followed by surviving secondary
// reviews in their own order.
func Merge(primary, secondary []domain.Review) []domain.Review {
	merged := make([]domain.Review, 0, len(primary)+len(secondary))
	seen := make(map[string]struct{}, len(primary)+len(secondary))

	for _, r := range primary {
		merged = append(merged, r)
		seen[r.ReviewerID] = struct{}{}
	}
	for _, r := range secondary {
		if _, ok := seen[r.ReviewerID]; ok {
			continue
		}
		merged = append(merged, r)
		seen[r.ReviewerID] = struct{}{}
	}
	return merged
}
