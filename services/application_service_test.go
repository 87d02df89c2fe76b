package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/willowgate/school-api/config"
	"github.com/willowgate/school-api/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB opens a gorm handle over a sqlmock connection
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}

	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		DuplicateWindow:  30 * 24 * time.Hour,
		MaxLoginAttempts: 5,
		LockoutDuration:  30 * time.Minute,
	}
}

func TestApplicationCreateRejectsDuplicateWindow(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewApplicationService(db, testConfig())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	app := &model.Application{GuardianEmail: "guardian@example.com"}
	err := svc.Create(app)
	if !errors.Is(err, ErrDuplicateApplication) {
		t.Fatalf("got %v, want ErrDuplicateApplication", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestApplicationCreateAssignsNumberAndPendingStatus(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewApplicationService(db, testConfig())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO application_counters`).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	app := &model.Application{
		FirstName:     "Amara",
		LastName:      "Osei",
		GuardianName:  "Kwame Osei",
		GuardianEmail: "guardian@example.com",
		GuardianPhone: "08012345678",
		Program:       model.ProgramPrimary,
		Status:        model.ApplicationApproved, // caller-supplied status must be ignored
	}
	if err := svc.Create(app); err != nil {
		t.Fatalf("create: %v", err)
	}

	want := model.FormatApplicationNumber(time.Now().Year(), 7)
	if app.ApplicationNumber != want {
		t.Errorf("application number = %q, want %q", app.ApplicationNumber, want)
	}
	if app.Status != model.ApplicationPending {
		t.Errorf("status = %q, want pending", app.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

// Any of the four statuses is accepted from any source state, so an
// approved application can be sent back to pending. The reviewer id,
// notes and timestamp land in the same update.
func TestApplicationUpdateStatusAcceptsAnyTarget(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewApplicationService(db, testConfig())

	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(4, "approved"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	app, err := svc.UpdateStatus(4, model.ApplicationPending, 2, "reopening for another look")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}

	if app.Status != model.ApplicationPending {
		t.Errorf("status = %q, want pending", app.Status)
	}
	if app.ReviewedByID == nil || *app.ReviewedByID != 2 {
		t.Error("reviewer attribution missing")
	}
	if app.ReviewNotes != "reopening for another look" {
		t.Errorf("review notes = %q", app.ReviewNotes)
	}
	if app.ReviewedAt == nil {
		t.Error("reviewed_at should be stamped")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestApplicationGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewApplicationService(db, testConfig())

	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(99)
	if !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("got %v, want ErrApplicationNotFound", err)
	}
}
