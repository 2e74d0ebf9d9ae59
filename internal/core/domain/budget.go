package domain

import "time"

// Budget is the per-account spending ceiling. Value 0 means "unset": no
// overspend check applies. At most one budget exists per account; it is
// created lazily with Value 0 and never deleted.
type Budget struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Value     float64   `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
