package role

import "github.com/afyastaff/afyastaff/internal/types"

// CustomRole grants capabilities on top of a staff member's system role
type CustomRole struct {
	ID           string             `bson:"_id" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Capabilities []types.Capability `bson:"capabilities" json:"capabilities"`

	types.BaseModel `bson:",inline"`
}
