package models

import "time"

// Pledge records a donor's commitment to fund one approved request.
// The unique index on request_id makes the one-pledge-per-request rule
// hold even when two donors accept at the same moment.
type Pledge struct {
	PledgeID   int       `gorm:"primaryKey;column:pledge_id" json:"pledge_id"`
	DonorID    int       `gorm:"column:donor_id" json:"donor_id"`
	RequestID  int       `gorm:"column:request_id;uniqueIndex:ux_pledges_request" json:"request_id"`
	Amount     float64   `gorm:"column:amount" json:"amount"`
	IsFulfill  bool      `gorm:"column:is_fulfill" json:"is_fulfill"`
	AcceptedAt time.Time `gorm:"column:accepted_at" json:"accepted_at"`

	// Relations
	Donor   Account           `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	Request AssistanceRequest `gorm:"foreignKey:RequestID" json:"request,omitempty"`
}

func (Pledge) TableName() string {
	return "pledges"
}
