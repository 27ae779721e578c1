package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sitescope/backend/internal/db"
)

// ErrEmailTaken is returned when registering an address that already has
// an account.
var ErrEmailTaken = errors.New("a user with this email already exists")

// CreateUser creates a new unverified user with a bcrypt-hashed password.
func CreateUser(dbConn *gorm.DB, email, password, firstName, lastName string) (*db.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password cannot be empty")
	}

	var count int64
	if err := dbConn.Model(&db.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := db.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := dbConn.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func GetUserByEmail(dbConn *gorm.DB, email string) (*db.User, error) {
	var user db.User
	err := dbConn.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// MarkVerified flips the user's verified flag after a successful
// registration OTP check.
func MarkVerified(dbConn *gorm.DB, email string) error {
	return dbConn.Model(&db.User{}).Where("email = ?", email).Update("is_verified", true).Error
}

// UpdatePassword replaces the user's password hash.
func UpdatePassword(dbConn *gorm.DB, email, newPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return dbConn.Model(&db.User{}).Where("email = ?", email).Update("password", string(hashed)).Error
}

// CheckPassword compares a candidate password against the stored hash.
func CheckPassword(user *db.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}
