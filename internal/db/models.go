package db

import "time"

// OTP purposes
const (
	PurposeRegistration  = "registration"
	PurposePasswordReset = "password_reset"
)

// User represents a registered account. Accounts start unverified and
// become verified only through registration OTP confirmation.
type User struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password    string    `gorm:"not null;size:255" json:"-"`
	FirstName   string    `gorm:"size:100" json:"first_name"`
	LastName    string    `gorm:"size:100" json:"last_name"`
	IsVerified  bool      `gorm:"default:false" json:"is_verified"`
	IsStaff     bool      `gorm:"default:false" json:"-"`
	IsSuperuser bool      `gorm:"default:false" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

// FullName returns the display name, falling back to the email address.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}

// OTP is a one-time code bound to an email and purpose. Rows are never
// deleted; superseded and consumed codes are kept with used=true.
type OTP struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"index;not null;size:255" json:"email"`
	Code      string    `gorm:"not null;size:6" json:"-"`
	Purpose   string    `gorm:"index;not null;size:20" json:"purpose"`
	Used      bool      `gorm:"default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// Valid reports whether the OTP is still usable: unused and unexpired.
func (o *OTP) Valid() bool {
	return !o.Used && time.Now().Before(o.ExpiresAt)
}
