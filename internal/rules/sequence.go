package rules

import (
	"fmt"
	"slices"
)

type Scope int

const (
	ScopeSection Scope = iota
	ScopeFile
)

func (s Scope) String() string {
	return [...]string{"section", "file"}[s]
}

func (s Scope) title() string {
	return [...]string{"Section", "File"}[s]
}

// CheckSequence returns one reason per ordering violation among sibling ordinals.
// Duplicate ordinals are not reported.
func CheckSequence(scope Scope, ordinals []int) []string {
	if len(ordinals) == 0 {
		return nil
	}

	var (
		reasons []string
		seen    = make(map[int]struct{}, len(ordinals))
	)

	for _, n := range ordinals {
		seen[n] = struct{}{}
	}

	if slices.Min(ordinals) != 1 {
		reasons = append(reasons, fmt.Sprintf("%s order must start from 1", scope.title()))
	}

	for i := 1; i <= slices.Max(ordinals); i++ {
		if _, ok := seen[i]; !ok {
			reasons = append(reasons, fmt.Sprintf("Missing expected %s order: %d", scope, i))
		}
	}

	return reasons
}
