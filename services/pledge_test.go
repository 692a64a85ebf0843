package services

import (
	"errors"
	"testing"
	"time"
	"welfare-assistance-api/models"
)

func TestAcceptRequestCreatesSinglePledge(t *testing.T) {
	db := openTestDB(t)
	applicant := seedAccount(t, db, "Ayesha Khan", "ayesha@example.com", models.RoleUser, "")
	donor := seedAccount(t, db, "Bilal Trust", "donor@example.com", models.RoleDonor, models.DonorActive)
	other := seedAccount(t, db, "Second Donor", "donor2@example.com", models.RoleDonor, models.DonorActive)

	request := submitTestRequest(t, db, applicant.AccountID, 5000)
	approveTestRequest(t, db, request.RequestID)

	svc := NewPledgeService(db)

	pledge, err := svc.AcceptRequest(donor.AccountID, request.RequestID, 5000)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if !pledge.IsFulfill {
		t.Fatalf("pledge covering the full amount should be marked fulfilled")
	}

	// Second donor hits the at-most-one-pledge invariant
	if _, err := svc.AcceptRequest(other.AccountID, request.RequestID, 3000); !errors.Is(err, ErrDuplicatePledge) {
		t.Fatalf("expected ErrDuplicatePledge, got %v", err)
	}
}

func TestAcceptRequestPartialPledgeNotFulfilled(t *testing.T) {
	db := openTestDB(t)
	applicant := seedAccount(t, db, "Ayesha Khan", "ayesha@example.com", models.RoleUser, "")
	donor := seedAccount(t, db, "Bilal Trust", "donor@example.com", models.RoleDonor, models.DonorActive)

	request := submitTestRequest(t, db, applicant.AccountID, 10000)
	approveTestRequest(t, db, request.RequestID)

	pledge, err := NewPledgeService(db).AcceptRequest(donor.AccountID, request.RequestID, 2500)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if pledge.IsFulfill {
		t.Fatalf("partial pledge must not be marked fulfilled")
	}
}

func TestAcceptRequestRequiresActiveDonor(t *testing.T) {
	db := openTestDB(t)
	applicant := seedAccount(t, db, "Ayesha Khan", "ayesha@example.com", models.RoleUser, "")
	pending := seedAccount(t, db, "Pending Donor", "pending@example.com", models.RoleDonor, models.DonorPending)

	request := submitTestRequest(t, db, applicant.AccountID, 5000)
	approveTestRequest(t, db, request.RequestID)

	if _, err := NewPledgeService(db).AcceptRequest(pending.AccountID, request.RequestID, 5000); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for pending donor, got %v", err)
	}
}

func TestAcceptRequestRequiresApprovedRequest(t *testing.T) {
	db := openTestDB(t)
	applicant := seedAccount(t, db, "Ayesha Khan", "ayesha@example.com", models.RoleUser, "")
	donor := seedAccount(t, db, "Bilal Trust", "donor@example.com", models.RoleDonor, models.DonorActive)

	request := submitTestRequest(t, db, applicant.AccountID, 5000)

	if _, err := NewPledgeService(db).AcceptRequest(donor.AccountID, request.RequestID, 5000); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for pending request, got %v", err)
	}
}

func TestAvailableRequestsExcludesPledged(t *testing.T) {
	db := openTestDB(t)
	applicant := seedAccount(t, db, "Ayesha Khan", "ayesha@example.com", models.RoleUser, "")
	donor := seedAccount(t, db, "Bilal Trust", "donor@example.com", models.RoleDonor, models.DonorActive)

	first := submitTestRequest(t, db, applicant.AccountID, 5000)
	second := submitTestRequest(t, db, applicant.AccountID, 8000)
	approveTestRequest(t, db, first.RequestID)
	approveTestRequest(t, db, second.RequestID)

	svc := NewPledgeService(db)

	available, err := svc.AvailableRequests()
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	if len(available) != 2 {
		t.Fatalf("expected 2 available requests, got %d", len(available))
	}

	if _, err := svc.AcceptRequest(donor.AccountID, first.RequestID, 5000); err != nil {
		t.Fatalf("accept: %v", err)
	}

	available, err = svc.AvailableRequests()
	if err != nil {
		t.Fatalf("available after pledge: %v", err)
	}
	if len(available) != 1 || available[0].RequestID != second.RequestID {
		t.Fatalf("pledged request still visible in the pool: %+v", available)
	}
}

func TestDonorStats(t *testing.T) {
	db := openTestDB(t)
	applicant := seedAccount(t, db, "Ayesha Khan", "ayesha@example.com", models.RoleUser, "")
	donor := seedAccount(t, db, "Bilal Trust", "donor@example.com", models.RoleDonor, models.DonorActive)

	svc := NewPledgeService(db)

	for i, amount := range []float64{5000, 3000} {
		request := submitTestRequest(t, db, applicant.AccountID, amount)
		approveTestRequest(t, db, request.RequestID)
		pledge, err := svc.AcceptRequest(donor.AccountID, request.RequestID, amount)
		if err != nil {
			t.Fatalf("accept %d: %v", i, err)
		}
		// Spread pledges across two calendar months
		accepted := time.Date(2026, time.Month(3+i), 10, 12, 0, 0, 0, time.UTC)
		if err := db.Model(&models.Pledge{}).
			Where("pledge_id = ?", pledge.PledgeID).
			Update("accepted_at", accepted).Error; err != nil {
			t.Fatalf("adjust accepted_at: %v", err)
		}
	}

	stats, err := svc.Stats(donor.AccountID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalDonated != 8000 {
		t.Fatalf("expected 8000 donated, got %f", stats.TotalDonated)
	}
	if stats.AcceptedRequests != 2 {
		t.Fatalf("expected 2 accepted requests, got %d", stats.AcceptedRequests)
	}
	if stats.MonthlyDonations != 4000 {
		t.Fatalf("expected 4000 per month, got %f", stats.MonthlyDonations)
	}
	if stats.ImpactScore != 8 {
		t.Fatalf("expected impact score 8, got %d", stats.ImpactScore)
	}
}

func TestListAllNewestFirst(t *testing.T) {
	db := openTestDB(t)
	applicant := seedAccount(t, db, "Ayesha Khan", "ayesha@example.com", models.RoleUser, "")
	donor := seedAccount(t, db, "Bilal Trust", "donor@example.com", models.RoleDonor, models.DonorActive)

	svc := NewPledgeService(db)

	var pledgeIDs []int
	for i := 0; i < 3; i++ {
		request := submitTestRequest(t, db, applicant.AccountID, 1000)
		approveTestRequest(t, db, request.RequestID)
		pledge, err := svc.AcceptRequest(donor.AccountID, request.RequestID, 1000)
		if err != nil {
			t.Fatalf("accept %d: %v", i, err)
		}
		accepted := time.Date(2026, time.January, 1+i, 0, 0, 0, 0, time.UTC)
		if err := db.Model(&models.Pledge{}).
			Where("pledge_id = ?", pledge.PledgeID).
			Update("accepted_at", accepted).Error; err != nil {
			t.Fatalf("adjust accepted_at: %v", err)
		}
		pledgeIDs = append(pledgeIDs, pledge.PledgeID)
	}

	pledges, err := svc.ListAll()
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(pledges) != 3 {
		t.Fatalf("expected 3 pledges, got %d", len(pledges))
	}
	if pledges[0].PledgeID != pledgeIDs[2] {
		t.Fatalf("expected newest pledge first, got %d", pledges[0].PledgeID)
	}
}
