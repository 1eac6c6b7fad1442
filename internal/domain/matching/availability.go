package matching

import (
	"fmt"
	"sort"
)

// AvailabilityOverlap is the pairwise scheduling compatibility between
// two participants: the fraction of their combined weekly slots they
// share, plus the shared "{day}_{timeslot}" labels.
type AvailabilityOverlap struct {
	Percentage  float64
	CommonSlots []string
}

// Overlap expands both weekly availability mappings into flat slot
// sets and computes |A ∩ B| / |A ∪ B|. If either side has no
// availability at all, the overlap is zero with no common slots.
func Overlap(a, b map[string][]string) AvailabilityOverlap {
	if len(a) == 0 || len(b) == 0 {
		return AvailabilityOverlap{Percentage: 0, CommonSlots: []string{}}
	}

	slotsA := expandSlots(a)
	slotsB := expandSlots(b)

	common := make([]string, 0)
	union := len(slotsA)
	for slot := range slotsB {
		if _, ok := slotsA[slot]; ok {
			common = append(common, slot)
		} else {
			union++
		}
	}
	sort.Strings(common)

	if union == 0 {
		return AvailabilityOverlap{Percentage: 0, CommonSlots: common}
	}
	return AvailabilityOverlap{
		Percentage:  float64(len(common)) / float64(union),
		CommonSlots: common,
	}
}

func expandSlots(availability map[string][]string) map[string]struct{} {
	slots := make(map[string]struct{})
	for day, times := range availability {
		for _, slot := range times {
			slots[fmt.Sprintf("%s_%s", day, slot)] = struct{}{}
		}
	}
	return slots
}
