package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/willowgate/school-api/model"
)

func messageRow(id uint, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "status"}).AddRow(id, status)
}

func TestMessageGetMarksUnreadAsRead(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMessageService(db)

	mock.ExpectQuery(`SELECT \* FROM "messages"`).
		WillReturnRows(messageRow(5, "unread"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "messages" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	msg, err := svc.Get(5)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if msg.Status != model.MessageRead {
		t.Errorf("status = %q, want read", msg.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestMessageGetLeavesReadAlone(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMessageService(db)

	mock.ExpectQuery(`SELECT \* FROM "messages"`).
		WillReturnRows(messageRow(5, "read"))

	msg, err := svc.Get(5)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if msg.Status != model.MessageRead {
		t.Errorf("status = %q, want read", msg.Status)
	}

	// No update statement may run for an already read message
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestMessageUpdateStatusRejectsReplied(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMessageService(db)

	mock.ExpectQuery(`SELECT \* FROM "messages"`).
		WillReturnRows(messageRow(5, "read"))

	_, err := svc.UpdateStatus(5, model.MessageReplied)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
}

func TestMessageUpdateStatusRejectsResolvedReopening(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMessageService(db)

	mock.ExpectQuery(`SELECT \* FROM "messages"`).
		WillReturnRows(messageRow(5, "resolved"))

	_, err := svc.UpdateStatus(5, model.MessageRead)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
}

func TestMessageRespondSetsRepliedAndAttribution(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMessageService(db)

	mock.ExpectQuery(`SELECT \* FROM "messages"`).
		WillReturnRows(messageRow(5, "read"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "messages" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	msg, err := svc.Respond(5, 3, "Thank you for reaching out.")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}

	if msg.Status != model.MessageReplied {
		t.Errorf("status = %q, want replied", msg.Status)
	}
	if msg.Response != "Thank you for reaching out." {
		t.Errorf("response = %q", msg.Response)
	}
	if msg.RespondedByID == nil || *msg.RespondedByID != 3 {
		t.Error("responder attribution missing")
	}
	if msg.RespondedAt == nil {
		t.Error("responded_at should be stamped")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

// A second response replaces the first one wholesale, including the
// responder and the timestamp
func TestMessageRespondOverwritesPreviousResponse(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMessageService(db)

	mock.ExpectQuery(`SELECT \* FROM "messages"`).
		WillReturnRows(messageRow(5, "read"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "messages" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	first, err := svc.Respond(5, 3, "First draft answer.")
	if err != nil {
		t.Fatalf("first respond: %v", err)
	}
	firstStamp := *first.RespondedAt

	mock.ExpectQuery(`SELECT \* FROM "messages"`).
		WillReturnRows(messageRow(5, "replied"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "messages" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	second, err := svc.Respond(5, 7, "Corrected answer.")
	if err != nil {
		t.Fatalf("second respond: %v", err)
	}

	if second.Response != "Corrected answer." {
		t.Errorf("response = %q, want the second text", second.Response)
	}
	if second.RespondedByID == nil || *second.RespondedByID != 7 {
		t.Error("attribution should move to the second responder")
	}
	if second.RespondedAt == nil || second.RespondedAt.Before(firstStamp) {
		t.Error("responded_at should be re-stamped")
	}
	if second.Status != model.MessageReplied {
		t.Errorf("status = %q, want replied", second.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestMessageDeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMessageService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "messages" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := svc.Delete(99); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("got %v, want ErrMessageNotFound", err)
	}
}
