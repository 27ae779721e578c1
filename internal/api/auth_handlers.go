package api

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sitescope/backend/internal/db"
	"github.com/sitescope/backend/internal/mailer"
	"github.com/sitescope/backend/internal/middleware"
	"github.com/sitescope/backend/internal/otp"
	"github.com/sitescope/backend/internal/service"
)

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Password2 string `json:"password2" binding:"required"`
	FirstName string `json:"first_name" binding:"omitempty,max=100"`
	LastName  string `json:"last_name" binding:"omitempty,max=100"`
}

// VerifyOTPRequest represents the OTP verification payload
type VerifyOTPRequest struct {
	Email   string `json:"email" binding:"required,email"`
	OTPCode string `json:"otp_code" binding:"required,len=6"`
}

// ResendOTPRequest represents the OTP resend payload
type ResendOTPRequest struct {
	Email   string `json:"email" binding:"required,email"`
	OTPType string `json:"otp_type" binding:"omitempty,oneof=registration password_reset"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest represents the forgot-password payload
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents the password reset payload
type ResetPasswordRequest struct {
	Email        string `json:"email" binding:"required,email"`
	OTPCode      string `json:"otp_code" binding:"required,len=6"`
	NewPassword  string `json:"new_password" binding:"required,min=8"`
	NewPassword2 string `json:"new_password2" binding:"required"`
}

// Config holds authentication configuration
type Config struct {
	JWTSecret     string
	TokenDuration time.Duration
}

// NewAuthConfig creates a new auth configuration
func NewAuthConfig() *Config {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logrus.Warn("JWT_SECRET not set, using default secret")
		secret = "changeme"
	}

	duration := 24 * time.Hour
	if durationStr := os.Getenv("JWT_DURATION"); durationStr != "" {
		if parsed, err := time.ParseDuration(durationStr); err == nil {
			duration = parsed
		}
	}

	return &Config{
		JWTSecret:     secret,
		TokenDuration: duration,
	}
}

// generateToken signs a JWT for the user, establishing their session.
func generateToken(config *Config, user *db.User) (string, error) {
	expiresAt := time.Now().Add(config.TokenDuration)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	})
	return token.SignedString([]byte(config.JWTSecret))
}

// sendOTPEmail delivers the code best-effort and reports whether it went out.
func sendOTPEmail(mail *mailer.Mailer, email, code, purpose string) bool {
	if err := mail.SendOTP(email, code, purpose); err != nil {
		logrus.Errorf("Failed to send OTP email to %s: %v", email, err)
		return false
	}
	logrus.Infof("OTP email sent to %s", email)
	return true
}

// RegisterHandler creates an unverified user and sends a registration OTP.
// User and OTP are created in one transaction so a failure leaves no
// half-registered account behind.
func RegisterHandler(dbConn *gorm.DB, mail *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"errors":  gin.H{"detail": err.Error()},
			})
			return
		}

		if req.Password != req.Password2 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"errors":  gin.H{"password": "Password fields didn't match."},
			})
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		var otpRecord *db.OTP
		err := dbConn.Transaction(func(tx *gorm.DB) error {
			if _, txErr := service.CreateUser(tx, req.Email, req.Password, req.FirstName, req.LastName); txErr != nil {
				return txErr
			}
			created, txErr := otp.CreateTx(tx, req.Email, db.PurposeRegistration)
			if txErr != nil {
				return txErr
			}
			otpRecord = created
			return nil
		})
		if err != nil {
			if errors.Is(err, service.ErrEmailTaken) {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"errors":  gin.H{"email": "A user with this email already exists."},
				})
				return
			}
			logrus.Errorf("Registration failed for %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}

		emailSent := sendOTPEmail(mail, req.Email, otpRecord.Code, db.PurposeRegistration)

		c.JSON(http.StatusCreated, gin.H{
			"success":  true,
			"message":  "Registration successful. Please check your email for OTP.",
			"email":    req.Email,
			"otp_sent": emailSent,
		})
	}
}

// VerifyOTPHandler consumes a registration OTP, marks the user verified
// and establishes a session.
func VerifyOTPHandler(dbConn *gorm.DB, config *Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"errors":  gin.H{"detail": err.Error()},
			})
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if _, err := otp.Verify(dbConn, req.Email, req.OTPCode, db.PurposeRegistration); err != nil {
			respondOTPError(c, req.Email, err)
			return
		}

		user, err := service.GetUserByEmail(dbConn, req.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found."})
				return
			}
			logrus.Errorf("Failed to load user %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}

		if err := service.MarkVerified(dbConn, req.Email); err != nil {
			logrus.Errorf("Failed to mark %s verified: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		user.IsVerified = true

		token, err := generateToken(config, user)
		if err != nil {
			logrus.Errorf("Failed to sign JWT token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Email verified successfully. You are now logged in.",
			"user":    user,
			"token":   token,
		})
	}
}

// ResendOTPHandler issues a fresh OTP, superseding prior unused codes.
func ResendOTPHandler(dbConn *gorm.DB, mail *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResendOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Email is required.",
			})
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.OTPType == "" {
			req.OTPType = db.PurposeRegistration
		}

		user, err := service.GetUserByEmail(dbConn, req.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found."})
				return
			}
			logrus.Errorf("Failed to load user %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}

		if req.OTPType == db.PurposeRegistration && user.IsVerified {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email already verified."})
			return
		}

		otpRecord, err := otp.Create(dbConn, req.Email, req.OTPType)
		if err != nil {
			logrus.Errorf("Failed to create OTP for %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}

		emailSent := sendOTPEmail(mail, req.Email, otpRecord.Code, req.OTPType)

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "OTP sent successfully. Please check your email.",
			"otp_sent": emailSent,
		})
	}
}

// LoginHandler authenticates with email and password.
func LoginHandler(dbConn *gorm.DB, config *Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"errors":  gin.H{"detail": err.Error()},
			})
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		user, err := service.GetUserByEmail(dbConn, req.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid email or password."})
				return
			}
			logrus.Errorf("Database error during login: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
			return
		}

		if !service.CheckPassword(user, req.Password) {
			logrus.Warnf("Failed login attempt for %s", req.Email)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid email or password."})
			return
		}

		if !user.IsVerified {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Please verify your email before logging in."})
			return
		}

		token, err := generateToken(config, user)
		if err != nil {
			logrus.Errorf("Failed to sign JWT token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate token"})
			return
		}

		logrus.Infof("Successful login for %s", req.Email)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful.",
			"user":    user,
			"token":   token,
		})
	}
}

// LogoutHandler ends the session. Tokens are stateless, so this only
// confirms the client should discard its copy.
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Logout successful.",
		})
	}
}

// CurrentUserHandler returns the authenticated user's record.
func CurrentUserHandler(dbConn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userCtx, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authenticated"})
			return
		}

		user, err := service.GetUserByEmail(dbConn, userCtx.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found."})
				return
			}
			logrus.Errorf("Failed to load user %s: %v", userCtx.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

// ForgotPasswordHandler sends a password-reset OTP to a verified account.
func ForgotPasswordHandler(dbConn *gorm.DB, mail *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"errors":  gin.H{"detail": err.Error()},
			})
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		user, err := service.GetUserByEmail(dbConn, req.Email)
		if err != nil || !user.IsVerified {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"errors":  gin.H{"email": "No verified account found with this email."},
			})
			return
		}

		otpRecord, err := otp.Create(dbConn, req.Email, db.PurposePasswordReset)
		if err != nil {
			logrus.Errorf("Failed to create OTP for %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}

		emailSent := sendOTPEmail(mail, req.Email, otpRecord.Code, db.PurposePasswordReset)

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Password reset OTP sent. Please check your email.",
			"email":    req.Email,
			"otp_sent": emailSent,
		})
	}
}

// ResetPasswordHandler consumes a password-reset OTP and updates the password.
func ResetPasswordHandler(dbConn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"errors":  gin.H{"detail": err.Error()},
			})
			return
		}

		if req.NewPassword != req.NewPassword2 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"errors":  gin.H{"new_password": "Password fields didn't match."},
			})
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if _, err := otp.Verify(dbConn, req.Email, req.OTPCode, db.PurposePasswordReset); err != nil {
			respondOTPError(c, req.Email, err)
			return
		}

		if _, err := service.GetUserByEmail(dbConn, req.Email); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found."})
				return
			}
			logrus.Errorf("Failed to load user %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}

		if err := service.UpdatePassword(dbConn, req.Email, req.NewPassword); err != nil {
			logrus.Errorf("Failed to update password for %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Password reset successfully. You can now login with your new password.",
		})
	}
}

// respondOTPError maps OTP verification failures onto responses. Invalid
// and expired codes are both client errors; anything else is internal.
func respondOTPError(c *gin.Context, email string, err error) {
	switch {
	case errors.Is(err, otp.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid OTP code."})
	case errors.Is(err, otp.ErrExpired):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "OTP has expired. Please request a new one."})
	default:
		logrus.Errorf("OTP verification failed for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}
