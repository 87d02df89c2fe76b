package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/willowgate/school-api/model"
	"github.com/willowgate/school-api/utils/auth"
)

func adminRows(columns []string) *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

func TestAuthenticateUnknownAccount(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	mock.ExpectQuery(`SELECT \* FROM "admins"`).
		WillReturnRows(adminRows([]string{"id"}))

	_, err := svc.Authenticate("nobody", "irrelevant")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticateLockedBeforePasswordCheck(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	// No password hash in the row: a locked account must fail before
	// the password is ever compared
	mock.ExpectQuery(`SELECT \* FROM "admins"`).
		WillReturnRows(adminRows([]string{"id", "is_active", "is_locked"}).AddRow(1, true, true))

	_, err := svc.Authenticate("admin", "correct-password")
	if !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("got %v, want ErrAccountLocked", err)
	}
}

func TestAuthenticateDeactivatedAccount(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	mock.ExpectQuery(`SELECT \* FROM "admins"`).
		WillReturnRows(adminRows([]string{"id", "is_active", "is_locked"}).AddRow(1, false, false))

	_, err := svc.Authenticate("admin", "correct-password")
	if !errors.Is(err, ErrAccountDeactivated) {
		t.Fatalf("got %v, want ErrAccountDeactivated", err)
	}
}

func TestAuthenticateWrongPasswordRecordsFailure(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	hash, err := auth.HashPassword("the-real-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	mock.ExpectQuery(`SELECT \* FROM "admins"`).
		WillReturnRows(adminRows([]string{"id", "password_hash", "is_active", "is_locked", "failed_login_attempts"}).
			AddRow(1, hash, true, false, 0))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "admins" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err = svc.Authenticate("admin", "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAuthenticateSuccessResetsCounter(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	hash, err := auth.HashPassword("the-real-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	mock.ExpectQuery(`SELECT \* FROM "admins"`).
		WillReturnRows(adminRows([]string{"id", "role", "password_hash", "is_active", "is_locked", "failed_login_attempts"}).
			AddRow(1, model.RoleAdmin, hash, true, false, 3))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "admins" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	admin, err := svc.Authenticate("admin", "the-real-password")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	if admin.FailedLoginAttempts != 0 {
		t.Errorf("failure counter = %d, want 0", admin.FailedLoginAttempts)
	}
	if admin.LastLogin == nil {
		t.Error("last login should be stamped")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
