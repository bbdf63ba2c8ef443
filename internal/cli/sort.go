package cli

import (
	"sort"
	"strings"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByEvent SortOrder = "event"
	SortByCount SortOrder = "count"
)

// sortRosters orders rosters by event name, or by participant count
// (largest first) with the event name breaking ties.
func sortRosters(rosters []EventRoster, order SortOrder) {
	switch order {
	case SortByCount:
		sort.SliceStable(rosters, func(i, j int) bool {
			ni, nj := len(rosters[i].Participants), len(rosters[j].Participants)
			if ni != nj {
				return ni > nj
			}
			return compareByEvent(rosters[i], rosters[j])
		})
	default:
		sort.SliceStable(rosters, func(i, j int) bool {
			return compareByEvent(rosters[i], rosters[j])
		})
	}
}

func compareByEvent(a, b EventRoster) bool {
	la, lb := strings.ToLower(a.Event), strings.ToLower(b.Event)
	if la != lb {
		return la < lb
	}
	return a.Event < b.Event
}
