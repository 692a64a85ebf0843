package services

import (
	"errors"
	"strings"
	"time"
	"welfare-assistance-api/models"

	"gorm.io/gorm"
)

// LifecycleService owns the status workflow of an assistance request:
// PENDING -> APPROVED | REJECTED, with the survey forwarding flag layered
// on top of APPROVED. Both terminal states stay terminal.
type LifecycleService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewLifecycleService(db *gorm.DB) *LifecycleService {
	return &LifecycleService{db: db, notifier: NewNotifier(db)}
}

// SubmitInput carries the applicant form fields. File fields hold the
// URLs returned by the upload step, not raw file contents.
type SubmitInput struct {
	AccountID      int
	FullName       string
	FatherName     string
	CnicNumber     string
	PhoneNumber    string
	FamilyMembers  int
	MonthlyIncome  int
	HomeType       string
	MaritalStatus  string
	AssistanceType string
	Amount         *float64
	Description    string
	CnicFront      string
	CnicBack       *string
	Document       *string
}

// Submit validates the form and creates a PENDING request.
func (s *LifecycleService) Submit(in SubmitInput) (*models.AssistanceRequest, error) {
	required := map[string]string{
		"full_name":             in.FullName,
		"father_name":           in.FatherName,
		"cnic_number":           in.CnicNumber,
		"home_type":             in.HomeType,
		"marital_status":        in.MaritalStatus,
		"assistance_type":       in.AssistanceType,
		"situation_description": in.Description,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return nil, validationErr("Missing required field: " + field)
		}
	}
	if in.FamilyMembers <= 0 || in.MonthlyIncome < 0 {
		return nil, validationErr("Missing required fields")
	}
	if in.CnicFront == "" {
		return nil, validationErr("CNIC Front image is required")
	}

	now := time.Now()
	request := models.AssistanceRequest{
		AccountID:      in.AccountID,
		FullName:       in.FullName,
		FatherName:     in.FatherName,
		CnicNumber:     in.CnicNumber,
		PhoneNumber:    in.PhoneNumber,
		FamilyMembers:  in.FamilyMembers,
		MonthlyIncome:  in.MonthlyIncome,
		HomeType:       in.HomeType,
		MaritalStatus:  in.MaritalStatus,
		AssistanceType: in.AssistanceType,
		Amount:         in.Amount,
		Description:    in.Description,
		Status:         models.RequestPending,
		CnicFront:      in.CnicFront,
		CnicBack:       in.CnicBack,
		Document:       in.Document,
		CreateAt:       &now,
		UpdateAt:       &now,
	}

	if err := s.db.Create(&request).Error; err != nil {
		return nil, err
	}

	return &request, nil
}

// SetStatus applies the admin decision. Only PENDING requests may move,
// and only to APPROVED or REJECTED. The rejection reason is stored iff
// the decision is REJECTED; approval clears any stale reason.
func (s *LifecycleService) SetStatus(requestID int, newStatus, rejectionReason string) (*models.AssistanceRequest, error) {
	status := strings.ToUpper(strings.TrimSpace(newStatus))
	if status != models.RequestApproved && status != models.RequestRejected {
		return nil, validationErr("Status must be approved or rejected")
	}
	if status == models.RequestRejected && strings.TrimSpace(rejectionReason) == "" {
		return nil, validationErr("Rejection reason is required")
	}

	var request models.AssistanceRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", requestID).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":    status,
			"update_at": now,
		}
		if status == models.RequestRejected {
			updates["rejection_reason"] = strings.TrimSpace(rejectionReason)
		} else {
			updates["rejection_reason"] = nil
		}

		// Conditional update keeps double decisions out even when two
		// admin tabs race each other.
		res := tx.Model(&models.AssistanceRequest{}).
			Where("request_id = ? AND status = ?", requestID, models.RequestPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		return tx.Where("request_id = ?", requestID).First(&request).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyDecision(&request)

	return &request, nil
}

// ForwardToSurvey hands an approved request to the survey workflow.
// Same operation as SurveyService.Assign with no survey row yet.
func (s *LifecycleService) ForwardToSurvey(requestID int, officerID *int) (*models.Survey, error) {
	return NewSurveyService(s.db).Assign(requestID, officerID)
}

// ListByStatus returns requests in a status, newest first. An empty
// status returns everything.
func (s *LifecycleService) ListByStatus(status string) ([]models.AssistanceRequest, error) {
	var requests []models.AssistanceRequest
	query := s.db.Preload("Applicant").Order("create_at DESC")
	if status != "" {
		query = query.Where("status = ?", strings.ToUpper(status))
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListByAccount returns one applicant's own requests, newest first.
func (s *LifecycleService) ListByAccount(accountID int) ([]models.AssistanceRequest, error) {
	var requests []models.AssistanceRequest
	if err := s.db.Where("account_id = ?", accountID).
		Order("create_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Get returns a single request by id.
func (s *LifecycleService) Get(requestID int) (*models.AssistanceRequest, error) {
	var request models.AssistanceRequest
	if err := s.db.Preload("Applicant").Where("request_id = ?", requestID).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}
