package services

import (
	"errors"
	"strings"
	"time"
	"welfare-assistance-api/models"

	"gorm.io/gorm"
)

// PledgeService records donor commitments. At most one pledge may ever
// reference a request; the transaction plus the unique index on
// pledges.request_id uphold that under concurrent accepts.
type PledgeService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewPledgeService(db *gorm.DB) *PledgeService {
	return &PledgeService{db: db, notifier: NewNotifier(db)}
}

// AcceptRequest creates the pledge for an approved, unpledged request.
func (s *PledgeService) AcceptRequest(donorID, requestID int, amount float64) (*models.Pledge, error) {
	if amount <= 0 {
		return nil, validationErr("Pledge amount must be positive")
	}

	var donor models.Account
	if err := s.db.Where("account_id = ? AND role = ?", donorID, models.RoleDonor).First(&donor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !donor.IsActiveDonor() {
		return nil, ErrForbidden
	}

	var pledge models.Pledge
	var request models.AssistanceRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", requestID).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if request.Status != models.RequestApproved {
			return ErrInvalidTransition
		}

		var existing int64
		if err := tx.Model(&models.Pledge{}).Where("request_id = ?", requestID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicatePledge
		}

		pledge = models.Pledge{
			DonorID:    donorID,
			RequestID:  requestID,
			Amount:     amount,
			IsFulfill:  request.Amount != nil && amount >= *request.Amount,
			AcceptedAt: time.Now(),
		}
		if err := tx.Create(&pledge).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicatePledge
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyPledge(&pledge, &request)

	return &pledge, nil
}

// ListByDonor returns one donor's pledges with their requests.
func (s *PledgeService) ListByDonor(donorID int) ([]models.Pledge, error) {
	var pledges []models.Pledge
	if err := s.db.Preload("Request").Preload("Request.Applicant").
		Where("donor_id = ?", donorID).
		Order("accepted_at DESC").Find(&pledges).Error; err != nil {
		return nil, err
	}
	return pledges, nil
}

// ListAll returns the admin view of pledges, newest first, capped at 100.
func (s *PledgeService) ListAll() ([]models.Pledge, error) {
	var pledges []models.Pledge
	if err := s.db.Preload("Donor").Preload("Request").Preload("Request.Applicant").
		Order("accepted_at DESC").Limit(100).Find(&pledges).Error; err != nil {
		return nil, err
	}
	return pledges, nil
}

// AvailableRequests returns approved requests no donor has pledged yet,
// most recently approved first. This is the donor-facing pool.
func (s *PledgeService) AvailableRequests() ([]models.AssistanceRequest, error) {
	var requests []models.AssistanceRequest
	if err := s.db.Preload("Applicant").
		Where("status = ?", models.RequestApproved).
		Where("request_id NOT IN (?)", s.db.Model(&models.Pledge{}).Select("request_id")).
		Order("update_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// DonorStats summarizes a donor's giving for their dashboard.
type DonorStats struct {
	TotalDonated     float64 `json:"totalDonated"`
	AcceptedRequests int     `json:"acceptedRequests"`
	MonthlyDonations float64 `json:"monthlyDonations"`
	ImpactScore      int     `json:"impactScore"`
}

// Stats computes donor totals. Impact score is 1 point per 1000 PKR.
func (s *PledgeService) Stats(donorID int) (*DonorStats, error) {
	var pledges []models.Pledge
	if err := s.db.Where("donor_id = ?", donorID).
		Order("accepted_at ASC").Find(&pledges).Error; err != nil {
		return nil, err
	}

	stats := &DonorStats{AcceptedRequests: len(pledges)}
	for _, p := range pledges {
		stats.TotalDonated += p.Amount
	}

	if len(pledges) > 0 {
		first := pledges[0].AcceptedAt
		last := pledges[len(pledges)-1].AcceptedAt
		months := (last.Year()-first.Year())*12 + int(last.Month()) - int(first.Month()) + 1
		if months < 1 {
			months = 1
		}
		stats.MonthlyDonations = stats.TotalDonated / float64(months)
	}

	stats.ImpactScore = int(stats.TotalDonated / 1000)

	return stats, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
