package models

import "time"

// Plan is a subscription tier. Values are closed; anything else is rejected
// at the binding layer.
type Plan string

const (
	PlanStarter    Plan = "starter"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// Valid reports whether p is one of the known subscription tiers.
func (p Plan) Valid() bool {
	switch p {
	case PlanStarter, PlanPro, PlanEnterprise:
		return true
	}
	return false
}

// User represents a registered account. Username, email, and the optional
// external auth id are unique across all users; an empty ExternalAuthID
// means the user has no linked external identity.
type User struct {
	ID                    int       `json:"id"`
	Username              string    `json:"username"`
	Email                 string    `json:"email"`
	Password              string    `json:"-"`
	ExternalAuthID        string    `json:"external_auth_id,omitempty"`
	Plan                  Plan      `json:"plan"`
	BillingCustomerID     string    `json:"billing_customer_id,omitempty"`
	BillingSubscriptionID string    `json:"billing_subscription_id,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

// Clone returns a value copy of the user. The store hands out and accepts
// only clones so external mutation can never alias its internal records.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
