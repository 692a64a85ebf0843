// Bootstrap utility to create the initial admin account.
// cmd/seed-admin/main.go
package main

import (
	"flag"
	"log"
	"time"
	"welfare-assistance-api/config"
	"welfare-assistance-api/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	name := flag.String("name", "Administrator", "admin display name")
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Usage: seed-admin -email <email> -password <password> [-name <name>]")
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	if err := models.Migrate(config.DB); err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	var existing models.Account
	if err := config.DB.Where("email = ?", *email).First(&existing).Error; err == nil {
		log.Fatalf("Account with email %s already exists", *email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	now := time.Now()
	admin := models.Account{
		Name:     *name,
		Email:    *email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
		CreateAt: &now,
		UpdateAt: &now,
	}

	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin account:", err)
	}

	log.Printf("Admin account %s created successfully", *email)
}
