package dto

import "github.com/afyastaff/afyastaff/internal/types"

// LimitUsage is one usage bar
type LimitUsage struct {
	Used      int  `json:"used"`
	Max       int  `json:"max"`
	Available bool `json:"available"`
}

func NewLimitUsage(used, max int) LimitUsage {
	return LimitUsage{Used: used, Max: max, Available: used < max}
}

type UsageResponse struct {
	Plan       types.PlanID `json:"plan"`
	Locations  LimitUsage   `json:"locations"`
	Staff      LimitUsage   `json:"staff"`
	AdminSeats LimitUsage   `json:"admin_seats"`
}
