package achievement

// FilterCandidates returns the definitions eligible for evaluation:
// not yet unlocked and with every prerequisite unlocked.
// Declaration order is preserved.
func FilterCandidates(defs []Definition, unlocked map[string]bool) []Definition {
	var out []Definition
	for _, d := range defs {
		if unlocked[d.ID] {
			continue
		}
		if !PrerequisitesMet(d, unlocked) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// PrerequisitesMet reports whether every prerequisite of d is unlocked.
func PrerequisitesMet(d Definition, unlocked map[string]bool) bool {
	for _, pre := range d.PrerequisiteIDs {
		if !unlocked[pre] {
			return false
		}
	}
	return true
}

// MissingPrerequisites lists d's prerequisites that are still locked, in declaration order.
func MissingPrerequisites(d Definition, unlocked map[string]bool) []string {
	var out []string
	for _, pre := range d.PrerequisiteIDs {
		if !unlocked[pre] {
			out = append(out, pre)
		}
	}
	return out
}
