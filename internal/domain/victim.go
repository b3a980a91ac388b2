package domain

import "context"

// Victim is the single record kind held by the store.
// ID is zero until the record has been created.
type Victim struct {
	ID          int64
	Name        string
	Description string
}

// VictimPatch carries a partial update. Nil fields are left unchanged.
type VictimPatch struct {
	Name        *string
	Description *string
}

// Empty reports whether the patch changes nothing.
func (p VictimPatch) Empty() bool {
	return p.Name == nil && p.Description == nil
}

// Apply copies the supplied fields onto v.
func (p VictimPatch) Apply(v *Victim) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
}

// VictimRepository defines persistence operations for victims.
// Implementations assign monotonically increasing IDs that are never reused,
// and List returns records in insertion order.
type VictimRepository interface {
	Create(ctx context.Context, victim *Victim) error
	GetByID(ctx context.Context, id int64) (*Victim, error)
	List(ctx context.Context) ([]Victim, error)
	// Update applies the patch atomically and returns the stored result.
	Update(ctx context.Context, id int64, patch VictimPatch) (*Victim, error)
	Delete(ctx context.Context, id int64) error
}
