package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/willowgate/school-api/model"
)

func TestSubscribeRejectsActiveSubscriber(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewNewsletterService(db)

	mock.ExpectQuery(`SELECT \* FROM "newsletter_subscribers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "status"}).
			AddRow(1, "reader@example.com", "active"))

	_, err := svc.Subscribe("reader@example.com", "", nil)
	if !errors.Is(err, ErrAlreadySubscribed) {
		t.Fatalf("got %v, want ErrAlreadySubscribed", err)
	}
}

func TestSubscribeReactivatesUnsubscribedRecord(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewNewsletterService(db)

	mock.ExpectQuery(`SELECT \* FROM "newsletter_subscribers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "status", "send_count", "open_count"}).
			AddRow(7, "reader@example.com", "unsubscribed", 12, 4))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "newsletter_subscribers" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sub, err := svc.Subscribe("reader@example.com", "", nil)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if sub.ID != 7 {
		t.Errorf("id = %d, want the existing record 7", sub.ID)
	}
	if sub.Status != model.SubscriberActive {
		t.Errorf("status = %q, want active", sub.Status)
	}
	if sub.SendCount != 12 || sub.OpenCount != 4 {
		t.Error("engagement counters must survive reactivation")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSubscribeCreatesNewRecord(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewNewsletterService(db)

	mock.ExpectQuery(`SELECT \* FROM "newsletter_subscribers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "newsletter_subscribers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	sub, err := svc.Subscribe("new@example.com", "New Reader", []string{"events"})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if sub.Status != model.SubscriberActive {
		t.Errorf("status = %q, want active", sub.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
