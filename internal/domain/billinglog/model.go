package billinglog

import (
	"time"

	"github.com/afyastaff/afyastaff/internal/types"
)

// BillingLog is a write once audit entry of a billing transition
type BillingLog struct {
	ID             string             `bson:"_id" json:"id"`
	OrganizationID string             `bson:"organization_id" json:"organization_id"`
	SubscriptionID string             `bson:"subscription_id" json:"subscription_id"`
	Event          types.BillingEvent `bson:"event" json:"event"`
	FromState      types.BillingState `bson:"from_state" json:"from_state,omitempty"`
	ToState        types.BillingState `bson:"to_state" json:"to_state,omitempty"`
	FromPlan       types.PlanID       `bson:"from_plan" json:"from_plan,omitempty"`
	ToPlan         types.PlanID       `bson:"to_plan" json:"to_plan,omitempty"`
	PaymentID      string             `bson:"payment_id" json:"payment_id,omitempty"`
	Reason         string             `bson:"reason" json:"reason,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	CreatedBy      string             `bson:"created_by" json:"created_by"`
}
