package domain

import "time"

// Participant is an enrolled programme member.
type Participant struct {
	ID             string
	Name           string
	AgeGroupID     string
	Village        string
	HasHIV         bool
	IsInSchool     bool
	DOB            time.Time
	EnrollmentDate time.Time
	CreatedAt      time.Time
}

func (p Participant) Validate() error {
	pr := Problems{}
	requireText(pr, "name", p.Name, 100)
	requireRef(pr, "age_group", p.AgeGroupID)
	requireText(pr, "village", p.Village, 100)
	requireDate(pr, "dob", p.DOB)
	requireDate(pr, "enrollment_date", p.EnrollmentDate)
	return pr.Err()
}
