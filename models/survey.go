package models

import (
	"strings"
	"time"
)

// Survey statuses stored on surveys.status (officer-facing spelling)
const (
	SurveyPending   = "Pending"
	SurveyCompleted = "Completed"
)

// Recommendations an officer may select when completing a survey.
const (
	RecommendEligible    = "Eligible"
	RecommendNotEligible = "Not Eligible"
	RecommendNeedsInfo   = "Needs Info"
)

// Survey is the field verification record for a forwarded request.
// OfficerID stays NULL while the survey sits in the unassigned pool.
type Survey struct {
	SurveyID       int        `gorm:"primaryKey;column:survey_id" json:"survey_id"`
	RequestID      int        `gorm:"column:request_id;uniqueIndex:ux_surveys_request" json:"request_id"`
	OfficerID      *int       `gorm:"column:officer_id" json:"officer_id,omitempty"`
	Status         string     `gorm:"column:status;default:Pending" json:"status"`
	Recommendation *string    `gorm:"column:recommendation" json:"recommendation,omitempty"`
	Report         *string    `gorm:"column:report" json:"report,omitempty"`
	SentToAdmin    bool       `gorm:"column:sent_to_admin" json:"sent_to_admin"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Request     AssistanceRequest  `gorm:"foreignKey:RequestID" json:"request,omitempty"`
	Officer     *Account           `gorm:"foreignKey:OfficerID" json:"officer,omitempty"`
	Attachments []SurveyAttachment `gorm:"foreignKey:SurveyID" json:"attachments,omitempty"`
}

// SurveyAttachment is an uploaded piece of field evidence referenced by URL.
type SurveyAttachment struct {
	AttachmentID int       `gorm:"primaryKey;column:attachment_id" json:"attachment_id"`
	SurveyID     int       `gorm:"column:survey_id" json:"survey_id"`
	OriginalName string    `gorm:"column:original_name" json:"original_name"`
	URL          string    `gorm:"column:url" json:"url"`
	UploadedBy   int       `gorm:"column:uploaded_by" json:"uploaded_by"`
	UploadedAt   time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
}

func (Survey) TableName() string {
	return "surveys"
}

func (SurveyAttachment) TableName() string {
	return "survey_attachments"
}

// NormalizedStatus is the lowercase status the admin dashboard filters on.
func (s *Survey) NormalizedStatus() string {
	return strings.ToLower(s.Status)
}

// ValidRecommendation reports whether the value is one of the enumerated choices.
func ValidRecommendation(value string) bool {
	switch value {
	case RecommendEligible, RecommendNotEligible, RecommendNeedsInfo:
		return true
	}
	return false
}
