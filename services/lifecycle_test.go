package services

import (
	"errors"
	"testing"
	"time"
	"welfare-assistance-api/models"
)

func TestSubmitCreatesPendingRequest(t *testing.T) {
	db := openTestDB(t)
	applicant := seedAccount(t, db, "Ayesha Khan", "ayesha@example.com", models.RoleUser, "")

	request := submitTestRequest(t, db, applicant.AccountID, 5000)

	if request.Status != models.RequestPending {
		t.Fatalf("expected status PENDING, got %s", request.Status)
	}
	if request.RejectionReason != nil {
		t.Fatalf("fresh request should have no rejection reason")
	}
	if request.ForwardedToSurvey {
		t.Fatalf("fresh request should not be forwarded")
	}
}

func TestSubmitRequiresCnicFront(t *testing.T) {
	db := openTestDB(t)
	applicant := seedAccount(t, db, "Ayesha Khan", "ayesha@example.com", models.RoleUser, "")

	input := SubmitInput{
		AccountID:      applicant.AccountID,
		FullName:       "Ayesha Khan",
		FatherName:     "Imran Khan",
		CnicNumber:     "3520112223334",
		PhoneNumber:    "03001234567",
		FamilyMembers:  5,
		MonthlyIncome:  18000,
		HomeType:       "rented",
		MaritalStatus:  "married",
		AssistanceType: "aid",
		Description:    "Lost income after flooding.",
	}

	_, err := NewLifecycleService(db).Submit(input)
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSubmitRejectsEmptyRequiredField(t *testing.T) {
	db := openTestDB(t)
	applicant := seedAccount(t, db, "Ayesha Khan", "ayesha@example.com", models.RoleUser, "")

	input := SubmitInput{
		AccountID:      applicant.AccountID,
		FullName:       "Ayesha Khan",
		FatherName:     "Imran Khan",
		CnicNumber:     "3520112223334",
		FamilyMembers:  5,
		MonthlyIncome:  18000,
		HomeType:       "rented",
		MaritalStatus:  "married",
		AssistanceType: "aid",
		Description:    "   ",
		CnicFront:      "/uploads/front.jpg",
	}

	_, err := NewLifecycleService(db).Submit(input)
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError for blank description, got %v", err)
	}
}

func TestSetStatusApproveThenReapproveFails(t *testing.T) {
	db := openTestDB(t)
	applicant := seedAccount(t, db, "Ayesha Khan", "ayesha@example.com", models.RoleUser, "")
	request := submitTestRequest(t, db, applicant.AccountID, 0)

	approved := approveTestRequest(t, db, request.RequestID)
	if approved.Status != models.RequestApproved {
		t.Fatalf("expected APPROVED, got %s", approved.Status)
	}

	_, err := NewLifecycleService(db).SetStatus(request.RequestID, "approved", "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on double approval, got %v", err)
	}
}

func TestSetStatusRejectStoresReason(t *testing.T) {
	db := openTestDB(t)
	applicant := seedAccount(t, db, "Ayesha Khan", "ayesha@example.com", models.RoleUser, "")
	request := submitTestRequest(t, db, applicant.AccountID, 0)

	svc := NewLifecycleService(db)

	if _, err := svc.SetStatus(request.RequestID, "rejected", ""); !IsValidation(err) {
		t.Fatalf("expected ValidationError without reason, got %v", err)
	}

	rejected, err := svc.SetStatus(request.RequestID, "rejected", "Insufficient documentation")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != models.RequestRejected {
		t.Fatalf("expected REJECTED, got %s", rejected.Status)
	}
	if rejected.RejectionReason == nil || *rejected.RejectionReason != "Insufficient documentation" {
		t.Fatalf("rejection reason not stored: %+v", rejected.RejectionReason)
	}

	// Terminal: a second decision must fail
	if _, err := svc.SetStatus(request.RequestID, "approved", ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition after rejection, got %v", err)
	}
}

func TestSetStatusUnknownStatus(t *testing.T) {
	db := openTestDB(t)
	applicant := seedAccount(t, db, "Ayesha Khan", "ayesha@example.com", models.RoleUser, "")
	request := submitTestRequest(t, db, applicant.AccountID, 0)

	if _, err := NewLifecycleService(db).SetStatus(request.RequestID, "fulfilled", ""); !IsValidation(err) {
		t.Fatalf("expected ValidationError for unknown status, got %v", err)
	}
}

func TestSetStatusUnknownRequest(t *testing.T) {
	db := openTestDB(t)

	if _, err := NewLifecycleService(db).SetStatus(9999, "approved", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApprovalClearsStaleRejectionReason(t *testing.T) {
	db := openTestDB(t)
	applicant := seedAccount(t, db, "Ayesha Khan", "ayesha@example.com", models.RoleUser, "")
	request := submitTestRequest(t, db, applicant.AccountID, 0)

	// Simulate legacy data carrying a reason on a pending row
	if err := db.Model(&models.AssistanceRequest{}).
		Where("request_id = ?", request.RequestID).
		Update("rejection_reason", "stale").Error; err != nil {
		t.Fatalf("seed stale reason: %v", err)
	}

	approved := approveTestRequest(t, db, request.RequestID)
	if approved.RejectionReason != nil {
		t.Fatalf("approval must clear rejection reason, got %q", *approved.RejectionReason)
	}
}

func TestForwardToSurveyRequiresApproval(t *testing.T) {
	db := openTestDB(t)
	applicant := seedAccount(t, db, "Ayesha Khan", "ayesha@example.com", models.RoleUser, "")
	request := submitTestRequest(t, db, applicant.AccountID, 0)

	svc := NewLifecycleService(db)

	if _, err := svc.ForwardToSurvey(request.RequestID, nil); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for pending request, got %v", err)
	}

	approveTestRequest(t, db, request.RequestID)

	survey, err := svc.ForwardToSurvey(request.RequestID, nil)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if survey.OfficerID != nil {
		t.Fatalf("expected unassigned survey, got officer %d", *survey.OfficerID)
	}
	if survey.Status != models.SurveyPending {
		t.Fatalf("expected survey Pending, got %s", survey.Status)
	}

	var reloaded models.AssistanceRequest
	if err := db.First(&reloaded, request.RequestID).Error; err != nil {
		t.Fatalf("reload request: %v", err)
	}
	if !reloaded.ForwardedToSurvey {
		t.Fatalf("forwarded_to_survey flag not set")
	}
}

func TestListByStatusNewestFirst(t *testing.T) {
	db := openTestDB(t)
	applicant := seedAccount(t, db, "Ayesha Khan", "ayesha@example.com", models.RoleUser, "")

	first := submitTestRequest(t, db, applicant.AccountID, 0)
	second := submitTestRequest(t, db, applicant.AccountID, 0)

	// Force distinct timestamps; sqlite time resolution can collapse them
	if err := db.Model(&models.AssistanceRequest{}).
		Where("request_id = ?", first.RequestID).
		Update("create_at", first.CreateAt.Add(-time.Minute)).Error; err != nil {
		t.Fatalf("adjust timestamp: %v", err)
	}

	pending, err := NewLifecycleService(db).ListByStatus("pending")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending requests, got %d", len(pending))
	}
	if pending[0].RequestID != second.RequestID {
		t.Fatalf("expected newest request first, got %d", pending[0].RequestID)
	}
}

func TestDecisionCreatesNotification(t *testing.T) {
	db := openTestDB(t)
	applicant := seedAccount(t, db, "Ayesha Khan", "ayesha@example.com", models.RoleUser, "")
	request := submitTestRequest(t, db, applicant.AccountID, 0)

	approveTestRequest(t, db, request.RequestID)

	var count int64
	if err := db.Model(&models.Notification{}).
		Where("account_id = ? AND is_read = ?", applicant.AccountID, false).
		Count(&count).Error; err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 unread notification, got %d", count)
	}
}
