package domain

import "time"

// Facilitator is a person who runs events.
type Facilitator struct {
	ID          string
	Name        string
	DOB         time.Time
	Gender      string
	Facilitates string
	Contact     *string
	CreatedAt   time.Time
}

func (f Facilitator) Validate() error {
	p := Problems{}
	requireText(p, "name", f.Name, 100)
	requireDate(p, "dob", f.DOB)
	requireText(p, "gender", f.Gender, 10)
	requireText(p, "facilitates", f.Facilitates, 255)
	if f.Contact != nil {
		maxLength(p, "contact", *f.Contact, 100)
	}
	return p.Err()
}
