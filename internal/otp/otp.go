// Package otp manages the lifecycle of one-time codes: generation,
// supersede-on-create, verification and single-use invalidation.
package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/sitescope/backend/internal/db"
)

// TTL is how long a freshly issued code stays valid.
const TTL = 10 * time.Minute

var (
	// ErrInvalidCode means no unused OTP matches (email, code, purpose).
	ErrInvalidCode = errors.New("invalid OTP code")
	// ErrExpired means the OTP matched but its validity window has passed.
	// The row is left untouched so the audit trail shows it unconsumed.
	ErrExpired = errors.New("OTP has expired")
)

// Create issues a fresh code for (email, purpose). All prior unused codes
// of the same pair are marked used first; the supersede and the insert run
// in one transaction so at most one unused OTP exists per pair even under
// concurrent requests.
func Create(dbConn *gorm.DB, email, purpose string) (*db.OTP, error) {
	var record *db.OTP
	err := dbConn.Transaction(func(tx *gorm.DB) error {
		created, txErr := CreateTx(tx, email, purpose)
		if txErr != nil {
			return txErr
		}
		record = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// CreateTx is Create running inside an existing transaction. Callers that
// need the OTP issued atomically with other writes (registration) use this.
func CreateTx(tx *gorm.DB, email, purpose string) (*db.OTP, error) {
	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	if err := tx.Model(&db.OTP{}).
		Where("email = ? AND purpose = ? AND used = ?", email, purpose, false).
		Update("used", true).Error; err != nil {
		return nil, fmt.Errorf("failed to supersede previous OTPs: %w", err)
	}

	record := &db.OTP{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(TTL),
	}
	if err := tx.Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to create OTP: %w", err)
	}
	return record, nil
}

// Verify consumes the OTP matching (email, code, purpose) if it is still
// valid. An unknown code returns ErrInvalidCode; a matched but expired code
// returns ErrExpired without consuming it, so the holder may not gain
// anything from a stale code while newer attempts stay possible.
func Verify(dbConn *gorm.DB, email, code, purpose string) (*db.OTP, error) {
	var record db.OTP
	err := dbConn.Where("email = ? AND code = ? AND purpose = ? AND used = ?",
		email, code, purpose, false).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}

	if !record.Valid() {
		return nil, ErrExpired
	}

	if err := dbConn.Model(&record).Update("used", true).Error; err != nil {
		return nil, fmt.Errorf("failed to consume OTP: %w", err)
	}
	record.Used = true
	return &record, nil
}

// generateCode draws six digits independently and uniformly from 0-9.
func generateCode() (string, error) {
	code := make([]byte, 6)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}
