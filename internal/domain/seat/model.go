package seat

import (
	"github.com/samber/lo"
)

// Ledger records which staff hold the admin seats of an organization.
// It is only ever written with a compare-and-swap on Version.
type Ledger struct {
	ID             string   `bson:"_id" json:"id"`
	OrganizationID string   `bson:"organization_id" json:"organization_id"`
	Holders        []string `bson:"holders" json:"holders"`
	Version        int64    `bson:"version" json:"version"`
}

// Holds reports whether the staff member holds a seat
func (l *Ledger) Holds(staffID string) bool {
	return lo.Contains(l.Holders, staffID)
}

// Claim returns a copy of the ledger with the seat added
func (l *Ledger) Claim(staffID string) *Ledger {
	next := *l
	next.Holders = append(append([]string{}, l.Holders...), staffID)
	next.Version = l.Version + 1
	return &next
}

// Release returns a copy of the ledger without the seat
func (l *Ledger) Release(staffID string) *Ledger {
	next := *l
	next.Holders = lo.Without(l.Holders, staffID)
	next.Version = l.Version + 1
	return &next
}
