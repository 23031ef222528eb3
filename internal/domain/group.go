package domain

import "fmt"

// AirportGroup is a named destination cluster (e.g., "arizona" covering PHX,
// TUS and FLG) with a designated primary member. Groups widen the candidate
// search without fragmenting the user-facing destination concept.
type AirportGroup struct {
	// Name is the group identifier (lowercase, e.g., "arizona")
	Name string `json:"name"`

	// Primary is the IATA code of the group's main airport
	Primary string `json:"primary"`

	// Members are the IATA codes of all airports in the group, including Primary
	Members []string `json:"members"`
}

// Validate checks that the group is well formed and the primary airport is a member.
func (g *AirportGroup) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("%w: group name is required", ErrInvalidRequest)
	}
	if len(g.Members) == 0 {
		return fmt.Errorf("%w: group %q has no members", ErrInvalidRequest, g.Name)
	}
	if !g.Contains(g.Primary) {
		return fmt.Errorf("%w: primary %q is not a member of group %q", ErrInvalidRequest, g.Primary, g.Name)
	}
	return nil
}

// Contains reports whether the given airport code is a member of the group.
func (g *AirportGroup) Contains(code string) bool {
	for _, m := range g.Members {
		if m == code {
			return true
		}
	}
	return false
}
