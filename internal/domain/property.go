package domain

import "time"

// Property is the free-form "todo" listing resource. ExpireDate is stamped at
// creation time and is not independently settable through the API.
// TODO: expose expire_date on create/update once product confirms whether the
// /today and /next7days windows are meant to run against a real expiry.
type Property struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OwnerID    uint      `gorm:"index" json:"owner_id"`
	Content    string    `gorm:"not null" json:"content"`
	Priority   string    `json:"priority"`
	Flag       string    `json:"flag"`
	CreatedAt  time.Time `json:"created_at"`
	ExpireDate time.Time `gorm:"index" json:"expire_date"`
}
