package models

import "time"

// Role values stored on accounts.role
const (
	RoleUser          = "user"
	RoleDonor         = "donor"
	RoleAdmin         = "admin"
	RoleSurveyOfficer = "survey_officer"
)

// Donor approval states stored on accounts.donor_status
const (
	DonorPending  = "PENDING"
	DonorActive   = "ACTIVE"
	DonorRejected = "REJECTED"
)

// Account is the single identity record for every role. Donor-specific
// columns stay empty for the other roles.
type Account struct {
	AccountID        int        `gorm:"primaryKey;column:account_id" json:"account_id"`
	Name             string     `gorm:"column:name" json:"name"`
	Email            string     `gorm:"column:email;unique" json:"email"`
	CNIC             *string    `gorm:"column:cnic;unique" json:"cnic,omitempty"`
	Password         string     `gorm:"column:password" json:"-"`
	Role             string     `gorm:"column:role" json:"role"`
	Phone            *string    `gorm:"column:phone" json:"phone,omitempty"`
	Address          *string    `gorm:"column:address" json:"address,omitempty"`
	City             *string    `gorm:"column:city" json:"city,omitempty"`
	OrganizationName *string    `gorm:"column:organization_name" json:"organization_name,omitempty"`
	DonorStatus      *string    `gorm:"column:donor_status" json:"donor_status,omitempty"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// IsActiveDonor reports whether the account is a donor cleared to log in.
func (a *Account) IsActiveDonor() bool {
	return a.Role == RoleDonor && a.DonorStatus != nil && *a.DonorStatus == DonorActive
}
