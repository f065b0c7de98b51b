package domain

import "time"

// Material is an inventory item handed out at events.
type Material struct {
	ID            string
	Name          string
	Stock         int
	TargetGroupID string
	CreatedAt     time.Time
}

func (m Material) Validate() error {
	p := Problems{}
	requireText(p, "name", m.Name, 100)
	if m.Stock < 0 {
		p.Add("stock", "must be greater than or equal to 0")
	}
	requireRef(p, "target_group", m.TargetGroupID)
	return p.Err()
}

// MaterialEvent records a quantity of a material allocated to an event.
type MaterialEvent struct {
	ID         string
	MaterialID string
	EventID    string
	Quantity   int
	CreatedAt  time.Time
}

func (me MaterialEvent) Validate() error {
	p := Problems{}
	requireRef(p, "material", me.MaterialID)
	requireRef(p, "event", me.EventID)
	if me.Quantity <= 0 {
		p.Add("quantity", "must be greater than 0")
	}
	return p.Err()
}
