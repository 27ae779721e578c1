package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sitescope/backend/internal/db"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock
}

func TestCreateUserHashesPassword(t *testing.T) {
	gormDB, mock := newMockDB(t)

	mock.ExpectQuery("SELECT count(.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	user, err := CreateUser(gormDB, "user@example.com", "password123", "Ada", "Lovelace")
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", user.Email)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	assert.False(t, user.IsVerified)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	gormDB, mock := newMockDB(t)

	mock.ExpectQuery("SELECT count(.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := CreateUser(gormDB, "user@example.com", "password123", "", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateUserRejectsEmptyFields(t *testing.T) {
	gormDB, _ := newMockDB(t)

	_, err := CreateUser(gormDB, "", "password123", "", "")
	assert.Error(t, err)

	_, err = CreateUser(gormDB, "user@example.com", "", "", "")
	assert.Error(t, err)
}

func TestCheckPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &db.User{Password: string(hashed)}

	assert.True(t, CheckPassword(user, "password123"))
	assert.False(t, CheckPassword(user, "wrongpassword"))
}

func TestFullName(t *testing.T) {
	cases := []struct {
		user db.User
		want string
	}{
		{db.User{FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{db.User{FirstName: "Ada"}, "Ada"},
		{db.User{LastName: "Lovelace"}, "Lovelace"},
		{db.User{Email: "user@example.com"}, "user@example.com"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.user.FullName())
	}
}
