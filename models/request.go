package models

import "time"

// Request statuses stored on assistance_requests.status
const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
)

// AssistanceRequest is an aid application submitted by an applicant.
// Rows are never deleted; the admin decision and the survey track only
// flip status columns.
type AssistanceRequest struct {
	RequestID            int        `gorm:"primaryKey;column:request_id" json:"request_id"`
	AccountID            int        `gorm:"column:account_id" json:"account_id"`
	FullName             string     `gorm:"column:full_name" json:"full_name"`
	FatherName           string     `gorm:"column:father_name" json:"father_name"`
	CnicNumber           string     `gorm:"column:cnic_number" json:"cnic_number"`
	PhoneNumber          string     `gorm:"column:phone_number" json:"phone_number"`
	FamilyMembers        int        `gorm:"column:family_members" json:"family_members"`
	MonthlyIncome        int        `gorm:"column:monthly_income" json:"monthly_income"`
	HomeType             string     `gorm:"column:home_type" json:"home_type"`
	MaritalStatus        string     `gorm:"column:marital_status" json:"marital_status"`
	AssistanceType       string     `gorm:"column:assistance_type" json:"assistance_type"`
	Amount               *float64   `gorm:"column:amount" json:"amount,omitempty"`
	Description          string     `gorm:"column:description" json:"description"`
	Status               string     `gorm:"column:status;default:PENDING" json:"status"`
	RejectionReason      *string    `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	ForwardedToSurvey    bool       `gorm:"column:forwarded_to_survey" json:"forwarded_to_survey"`
	VerificationComplete bool       `gorm:"column:verification_complete" json:"verification_complete"`
	CnicFront            string     `gorm:"column:cnic_front" json:"cnic_front"`
	CnicBack             *string    `gorm:"column:cnic_back" json:"cnic_back,omitempty"`
	Document             *string    `gorm:"column:document" json:"document,omitempty"`
	CreateAt             *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt             *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Applicant Account `gorm:"foreignKey:AccountID" json:"applicant,omitempty"`
}

func (AssistanceRequest) TableName() string {
	return "assistance_requests"
}
