package admin

type SetRoleRequest struct {
	Role string `json:"role" validate:"required,account_role"`
}

// FlagRequest toggles a moderation flag. A missing value means true.
type FlagRequest struct {
	Value *bool `json:"value"`
}

func (r *FlagRequest) Enabled() bool {
	return r == nil || r.Value == nil || *r.Value
}

type PayoutStatusRequest struct {
	Status string `json:"status" validate:"required,payout_status"`
}
