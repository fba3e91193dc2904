/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package assess

import (
	"sort"
)

// DefaultPriorities is the report order of the checks
var DefaultPriorities = map[CheckName]int{
	CheckConversion:     1,
	CheckAttribution:    2,
	CheckSymlinks:       3,
	CheckPlaceholders:   4,
	CheckSquare:         5,
	CheckImageQuality:   6,
	CheckBuildScript:    7,
	CheckSearchEngines:  8,
	CheckSocials:        9,
	CheckDeviceDetector: 10,
}

// GetPriority returns the position of a check; unknown checks go last
func GetPriority(check CheckName) int {
	if priority, exists := DefaultPriorities[check]; exists {
		return priority
	}
	return 999
}

// OrderChecks returns checks sorted by priority, then name
func OrderChecks(checks []CheckName) []CheckName {
	ordered := make([]CheckName, len(checks))
	copy(ordered, checks)

	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := GetPriority(ordered[i]), GetPriority(ordered[j])
		if pi != pj {
			return pi < pj
		}
		return ordered[i] < ordered[j]
	})

	return ordered
}
