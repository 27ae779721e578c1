package main

import (
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sitescope/backend/internal/db"
)

// SeedConfig holds seed configuration
type SeedConfig struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Force     bool
}

// NewSeedConfig creates a new seed configuration
func NewSeedConfig() *SeedConfig {
	email := flag.String("email", "admin@sitescope.app", "Superuser email")
	password := flag.String("password", "adminpass", "Superuser password")
	firstName := flag.String("first-name", "Admin", "Superuser first name")
	lastName := flag.String("last-name", "", "Superuser last name")
	force := flag.Bool("force", false, "Force recreation of the superuser")

	flag.Parse()

	return &SeedConfig{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
		Force:     *force,
	}
}

func main() {
	config := NewSeedConfig()

	// Validate configuration
	if config.Email == "" {
		log.Fatal("Email cannot be empty")
	}
	if config.Password == "" {
		log.Fatal("Password cannot be empty")
	}
	if len(config.Password) < 8 {
		log.Fatal("Password must be at least 8 characters long")
	}

	log.Println("Starting database seeding...")

	// Initialize database connection
	dbConn, err := db.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Check if the superuser already exists
	var existingUser db.User
	err = dbConn.Where("email = ?", config.Email).First(&existingUser).Error
	if err == nil {
		if !config.Force {
			log.Printf("Superuser '%s' already exists. Use -force flag to recreate.", config.Email)
			return
		}

		log.Printf("Recreating superuser '%s'...", config.Email)
		if err := dbConn.Delete(&existingUser).Error; err != nil {
			log.Fatalf("Failed to delete existing user: %v", err)
		}
	} else if err != gorm.ErrRecordNotFound {
		log.Fatalf("Database error checking existing user: %v", err)
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(config.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// Superusers are created verified, staff and superuser.
	superuser := db.User{
		Email:       config.Email,
		Password:    string(hashedPassword),
		FirstName:   config.FirstName,
		LastName:    config.LastName,
		IsVerified:  true,
		IsStaff:     true,
		IsSuperuser: true,
	}

	if err := dbConn.Create(&superuser).Error; err != nil {
		log.Fatalf("Failed to create superuser: %v", err)
	}

	log.Printf("Successfully created superuser: %s", config.Email)
	log.Printf("User ID: %d", superuser.ID)
	log.Println("Database seeding completed successfully")
}
