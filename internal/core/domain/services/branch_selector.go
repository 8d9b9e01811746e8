package services

import (
	"errors"
	"math"
	"sort"

	"mealroute/internal/core/domain/model/catalog"
	"mealroute/internal/core/domain/model/kernel"
)

// ErrNoBranchFound is returned when no branch qualifies for selection. This
// covers an empty candidate set, a set filtered down to nothing by the active
// flag, and candidates that all exceed the distance limit. Read-side callers
// translate it to an empty result; the placement path surfaces it as a
// business rejection.
var ErrNoBranchFound = errors.New("no eligible branch found")

// BranchSelector is a stateless domain service that ranks restaurant branches
// against a customer location.
//
// Selection rules:
//   - branches with an unknown location are never candidates
//   - with activeOnly, inactive branches are filtered out first
//   - the nearest remaining branch wins; ties go to the first encountered,
//     so results are deterministic for a fixed input ordering
type BranchSelector struct{}

// NewBranchSelector creates a new BranchSelector instance.
func NewBranchSelector() BranchSelector {
	return BranchSelector{}
}

// Nearest returns the branch closest to customer. maxDistanceKm of 0 means
// unlimited; a positive value excludes branches farther than the limit.
// Returns ErrNoBranchFound when no candidate qualifies, and a validation
// error when customer is an unknown location.
func (s BranchSelector) Nearest(
	customer kernel.Location,
	branches []*catalog.Branch,
	activeOnly bool,
	maxDistanceKm float64,
) (*catalog.Branch, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	var (
		best     *catalog.Branch
		bestDist = math.MaxFloat64
	)

	for _, b := range branches {
		dist, eligible, err := s.candidateDistance(customer, b, activeOnly)
		if err != nil {
			return nil, err
		}
		if !eligible {
			continue
		}
		if maxDistanceKm > 0 && dist > maxDistanceKm {
			continue
		}
		if dist < bestDist {
			bestDist = dist
			best = b
		}
	}

	if best == nil {
		return nil, ErrNoBranchFound
	}

	return best, nil
}

// Within returns all branches no farther than radiusKm from customer,
// preserving the relative order of the input slice. The active filter is
// applied before the distance check, like Nearest.
func (s BranchSelector) Within(
	customer kernel.Location,
	branches []*catalog.Branch,
	radiusKm float64,
	activeOnly bool,
) ([]*catalog.Branch, error) {
	ranked, err := s.rankWithin(customer, branches, radiusKm, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]*catalog.Branch, 0, len(ranked))
	for _, r := range ranked {
		result = append(result, r.branch)
	}
	return result, nil
}

// WithinSorted behaves like Within but orders the result ascending by
// distance, for display purposes. The sort is stable, so branches at the same
// distance keep their input order.
func (s BranchSelector) WithinSorted(
	customer kernel.Location,
	branches []*catalog.Branch,
	radiusKm float64,
	activeOnly bool,
) ([]RankedBranch, error) {
	ranked, err := s.rankWithin(customer, branches, radiusKm, activeOnly)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})
	return ranked, nil
}

// RankedBranch pairs a branch with its computed distance to the customer.
type RankedBranch struct {
	DistanceKm float64
	branch     *catalog.Branch
}

// Branch returns the ranked branch.
func (r RankedBranch) Branch() *catalog.Branch {
	return r.branch
}

func (s BranchSelector) rankWithin(
	customer kernel.Location,
	branches []*catalog.Branch,
	radiusKm float64,
	activeOnly bool,
) ([]RankedBranch, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	result := make([]RankedBranch, 0, len(branches))
	for _, b := range branches {
		dist, eligible, err := s.candidateDistance(customer, b, activeOnly)
		if err != nil {
			return nil, err
		}
		if !eligible || dist > radiusKm {
			continue
		}
		result = append(result, RankedBranch{DistanceKm: dist, branch: b})
	}
	return result, nil
}

// candidateDistance validates the branch and computes its distance to the
// customer, reporting eligibility under the active and known-location rules.
func (s BranchSelector) candidateDistance(
	customer kernel.Location,
	b *catalog.Branch,
	activeOnly bool,
) (float64, bool, error) {
	if err := b.Validate(); err != nil {
		return 0, false, err
	}
	if activeOnly && !b.Active() {
		return 0, false, nil
	}
	if !b.HasKnownLocation() {
		return 0, false, nil
	}

	dist, err := customer.DistanceKm(b.Location())
	if err != nil {
		return 0, false, err
	}
	return dist, true, nil
}
