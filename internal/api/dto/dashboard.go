package dto

// OverviewResponse is the dashboard landing payload. Each section loads
// independently; a failed section is nil and its message is in Errors.
type OverviewResponse struct {
	Organization *OrganizationResponse  `json:"organization,omitempty"`
	Billing      *BillingStatusResponse `json:"billing,omitempty"`
	Usage        *UsageResponse         `json:"usage,omitempty"`
	Errors       map[string]string      `json:"errors,omitempty"`
}
