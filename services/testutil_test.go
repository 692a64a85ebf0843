package services

import (
	"testing"
	"time"
	"welfare-assistance-api/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with the full schema.
// MaxOpenConns(1) keeps every transaction on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// Keep tests quiet; mail delivery is exercised nowhere near here.
	sendMailFunc = func(to []string, subject, html string) error { return nil }

	return db
}

func seedAccount(t *testing.T, db *gorm.DB, name, email, role string, donorStatus string) *models.Account {
	t.Helper()

	now := time.Now()
	account := models.Account{
		Name:     name,
		Email:    email,
		Password: "not-a-real-hash",
		Role:     role,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if donorStatus != "" {
		account.DonorStatus = &donorStatus
	}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("seed account %s: %v", email, err)
	}
	return &account
}

func submitTestRequest(t *testing.T, db *gorm.DB, accountID int, amount float64) *models.AssistanceRequest {
	t.Helper()

	input := SubmitInput{
		AccountID:      accountID,
		FullName:       "Ayesha Khan",
		FatherName:     "Imran Khan",
		CnicNumber:     "3520112223334",
		PhoneNumber:    "03001234567",
		FamilyMembers:  5,
		MonthlyIncome:  18000,
		HomeType:       "rented",
		MaritalStatus:  "married",
		AssistanceType: "aid",
		Description:    "Lost income after flooding, five dependents.",
		CnicFront:      "/uploads/front.jpg",
	}
	if amount > 0 {
		input.Amount = &amount
	}

	request, err := NewLifecycleService(db).Submit(input)
	if err != nil {
		t.Fatalf("submit request: %v", err)
	}
	return request
}

func approveTestRequest(t *testing.T, db *gorm.DB, requestID int) *models.AssistanceRequest {
	t.Helper()

	request, err := NewLifecycleService(db).SetStatus(requestID, "approved", "")
	if err != nil {
		t.Fatalf("approve request %d: %v", requestID, err)
	}
	return request
}
