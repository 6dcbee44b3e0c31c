package location

import "github.com/afyastaff/afyastaff/internal/types"

// Location is a facility of an organization
type Location struct {
	ID      string `bson:"_id" json:"id"`
	Name    string `bson:"name" json:"name"`
	County  string `bson:"county" json:"county"`
	Address string `bson:"address" json:"address,omitempty"`

	types.BaseModel `bson:",inline"`
}
