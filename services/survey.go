package services

import (
	"errors"
	"strings"
	"time"
	"welfare-assistance-api/models"

	"gorm.io/gorm"
)

// SurveyService tracks field verification of forwarded requests.
type SurveyService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewSurveyService(db *gorm.DB) *SurveyService {
	return &SurveyService{db: db, notifier: NewNotifier(db)}
}

// Assign forwards a request to the survey workflow, or reassigns the
// officer when a survey already exists. A nil officerID puts the survey
// in the unassigned pool, claimable by any officer.
func (s *SurveyService) Assign(requestID int, officerID *int) (*models.Survey, error) {
	var survey models.Survey
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("request_id = ?", requestID).First(&survey).Error
		if err == nil {
			// Reassign only; forwarding already happened.
			now := time.Now()
			return tx.Model(&survey).Updates(map[string]interface{}{
				"officer_id": officerID,
				"update_at":  now,
			}).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var request models.AssistanceRequest
		if err := tx.Where("request_id = ?", requestID).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := time.Now()
		res := tx.Model(&models.AssistanceRequest{}).
			Where("request_id = ? AND status = ? AND forwarded_to_survey = ?",
				requestID, models.RequestApproved, false).
			Updates(map[string]interface{}{
				"forwarded_to_survey": true,
				"update_at":           now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		survey = models.Survey{
			RequestID: requestID,
			OfficerID: officerID,
			Status:    models.SurveyPending,
			CreateAt:  &now,
			UpdateAt:  &now,
		}
		return tx.Create(&survey).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Request").Preload("Request.Applicant").
		First(&survey, survey.SurveyID).Error; err != nil {
		return nil, err
	}

	if survey.OfficerID != nil {
		requestID := survey.RequestID
		s.notifier.Push(*survey.OfficerID, "Survey Assigned",
			"A request has been assigned to you for field verification.", "info", &requestID)
	}

	return &survey, nil
}

// AttachmentInput is one uploaded evidence file referenced by URL.
type AttachmentInput struct {
	OriginalName string `json:"original_name"`
	URL          string `json:"url"`
}

// SubmitReport records the officer's findings and completes the survey.
// An unassigned survey is claimed by whoever submits first.
func (s *SurveyService) SubmitReport(surveyID, officerID int, report, recommendation string, attachments []AttachmentInput) (*models.Survey, error) {
	if strings.TrimSpace(report) == "" {
		return nil, validationErr("Report text is required")
	}
	if !models.ValidRecommendation(recommendation) {
		return nil, validationErr("Recommendation must be Eligible, Not Eligible or Needs Info")
	}

	var survey models.Survey
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("survey_id = ?", surveyID).First(&survey).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if survey.OfficerID != nil && *survey.OfficerID != officerID {
			return ErrForbidden
		}
		if survey.Status == models.SurveyCompleted {
			return ErrInvalidTransition
		}

		now := time.Now()
		trimmed := strings.TrimSpace(report)
		if err := tx.Model(&survey).Updates(map[string]interface{}{
			"officer_id":     officerID,
			"status":         models.SurveyCompleted,
			"recommendation": recommendation,
			"report":         trimmed,
			"sent_to_admin":  true,
			"update_at":      now,
		}).Error; err != nil {
			return err
		}

		for _, att := range attachments {
			if strings.TrimSpace(att.URL) == "" {
				continue
			}
			row := models.SurveyAttachment{
				SurveyID:     surveyID,
				OriginalName: att.OriginalName,
				URL:          att.URL,
				UploadedBy:   officerID,
				UploadedAt:   now,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.AssistanceRequest{}).
			Where("request_id = ?", survey.RequestID).
			Updates(map[string]interface{}{
				"verification_complete": true,
				"update_at":             now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Request").Preload("Attachments").
		First(&survey, surveyID).Error; err != nil {
		return nil, err
	}

	return &survey, nil
}

// AddAttachment stores one uploaded file reference against a survey.
func (s *SurveyService) AddAttachment(surveyID, officerID int, originalName, url string) (*models.SurveyAttachment, error) {
	var survey models.Survey
	if err := s.db.Where("survey_id = ?", surveyID).First(&survey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if survey.OfficerID != nil && *survey.OfficerID != officerID {
		return nil, ErrForbidden
	}

	attachment := models.SurveyAttachment{
		SurveyID:     surveyID,
		OriginalName: originalName,
		URL:          url,
		UploadedBy:   officerID,
		UploadedAt:   time.Now(),
	}
	if err := s.db.Create(&attachment).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// ListByOfficer returns the officer queue: surveys assigned to them plus
// the unassigned pool, newest first.
func (s *SurveyService) ListByOfficer(officerID int) ([]models.Survey, error) {
	var surveys []models.Survey
	if err := s.db.Preload("Request").Preload("Request.Applicant").Preload("Attachments").
		Where("officer_id = ? OR officer_id IS NULL", officerID).
		Order("create_at DESC").Find(&surveys).Error; err != nil {
		return nil, err
	}
	return surveys, nil
}

// ListCompleted returns completed surveys for the admin view, newest first.
func (s *SurveyService) ListCompleted() ([]models.Survey, error) {
	var surveys []models.Survey
	if err := s.db.Preload("Request").Preload("Request.Applicant").
		Preload("Officer").Preload("Attachments").
		Where("status = ?", models.SurveyCompleted).
		Order("update_at DESC").Find(&surveys).Error; err != nil {
		return nil, err
	}
	return surveys, nil
}
