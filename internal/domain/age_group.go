package domain

import "time"

// AgeGroup labels an age bucket used for participants and material targeting.
type AgeGroup struct {
	ID        string
	Group     string
	CreatedAt time.Time
}

func (g AgeGroup) Validate() error {
	p := Problems{}
	requireText(p, "group", g.Group, 10)
	return p.Err()
}
