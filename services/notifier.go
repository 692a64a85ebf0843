package services

import (
	"fmt"
	"log"
	"time"
	"welfare-assistance-api/config"
	"welfare-assistance-api/models"

	"gorm.io/gorm"
)

// sendMailFunc is swapped out in tests.
var sendMailFunc = config.SendMail

// Notifier records in-app notifications and dispatches email copies.
// Mail failures are logged and never fail the triggering transition.
type Notifier struct {
	db *gorm.DB
}

func NewNotifier(db *gorm.DB) *Notifier {
	return &Notifier{db: db}
}

func (n *Notifier) Push(accountID int, title, message, notifType string, requestID *int) {
	notification := models.Notification{
		AccountID:        accountID,
		Title:            title,
		Message:          message,
		Type:             notifType,
		RelatedRequestID: requestID,
		IsRead:           false,
		CreateAt:         time.Now(),
	}

	if err := n.db.Create(&notification).Error; err != nil {
		log.Printf("Failed to create notification for account %d: %v", accountID, err)
	}
}

func (n *Notifier) Email(accountID int, subject, html string) {
	var account models.Account
	if err := n.db.First(&account, accountID).Error; err != nil {
		log.Printf("Failed to load account %d for email: %v", accountID, err)
		return
	}

	if err := sendMailFunc([]string{account.Email}, subject, html); err != nil {
		log.Printf("Failed to send email to %s: %v", account.Email, err)
	}
}

// NotifyDecision tells the applicant the admin's decision on a request.
func (n *Notifier) NotifyDecision(request *models.AssistanceRequest) {
	requestID := request.RequestID

	switch request.Status {
	case models.RequestApproved:
		n.Push(request.AccountID, "Request Approved",
			fmt.Sprintf("Your %s request has been approved and is now visible to donors.", request.AssistanceType),
			"success", &requestID)
		n.Email(request.AccountID, "Your assistance request was approved",
			fmt.Sprintf("<p>Dear %s,</p><p>Your %s request has been approved.</p>", request.FullName, request.AssistanceType))
	case models.RequestRejected:
		reason := ""
		if request.RejectionReason != nil {
			reason = *request.RejectionReason
		}
		n.Push(request.AccountID, "Request Rejected",
			fmt.Sprintf("Your %s request was rejected: %s", request.AssistanceType, reason),
			"error", &requestID)
		n.Email(request.AccountID, "Your assistance request was rejected",
			fmt.Sprintf("<p>Dear %s,</p><p>Your %s request was rejected.</p><p>Reason: %s</p>", request.FullName, request.AssistanceType, reason))
	}
}

// NotifyPledge tells the applicant a donor committed to their request.
func (n *Notifier) NotifyPledge(pledge *models.Pledge, request *models.AssistanceRequest) {
	requestID := request.RequestID
	n.Push(request.AccountID, "Donor Pledged",
		fmt.Sprintf("A donor pledged %.0f toward your %s request.", pledge.Amount, request.AssistanceType),
		"success", &requestID)
}

// NotifyDonorStatus tells a donor their account was activated or rejected.
func (n *Notifier) NotifyDonorStatus(donor *models.Account) {
	if donor.DonorStatus == nil {
		return
	}

	switch *donor.DonorStatus {
	case models.DonorActive:
		n.Push(donor.AccountID, "Account Activated", "Your donor account has been approved. You can now log in.", "success", nil)
		n.Email(donor.AccountID, "Donor account approved",
			fmt.Sprintf("<p>Dear %s,</p><p>Your donor account has been approved by the admin.</p>", donor.Name))
	case models.DonorRejected:
		n.Push(donor.AccountID, "Account Rejected", "Your donor account application was rejected.", "error", nil)
	}
}
