package domain

import "time"

// AdminSetting is one entry of the site-wide key/value configuration bag
// (display name, contact details, social links).
type AdminSetting struct {
	Key       string    `json:"key" bson:"_id"`
	Value     *string   `json:"value" bson:"value"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
