package assignment

import (
	"errors"
	"testing"
	"time"

	"po-workflow-backend/internal/domain/fault"
)

func pendingAssignment() *Assignment {
	return &Assignment{
		AssignmentID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		PoIDs:        []string{"PO-1-10", "PO-1-20"},
		AssignedBy:   "coordinator",
		AssignedTo:   "staff",
		Status:       StatusPending,
	}
}

func TestRespond_Approve(t *testing.T) {
	a := pendingAssignment()
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	if err := a.Respond(ActionApprove, "", at); err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if a.Status != StatusApproved {
		t.Fatalf("status = %s, want APPROVED", a.Status)
	}
	if a.RespondedAt == nil || !a.RespondedAt.Equal(at) {
		t.Fatalf("responded_at = %v, want %v", a.RespondedAt, at)
	}
}

func TestRespond_RejectRequiresReason(t *testing.T) {
	a := pendingAssignment()

	err := a.Respond(ActionReject, "", time.Now().UTC())
	if !errors.Is(err, fault.ErrValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
	if a.Status != StatusPending {
		t.Fatalf("failed respond must not change status, got %s", a.Status)
	}

	if err := a.Respond(ActionReject, "wrong team", time.Now().UTC()); err != nil {
		t.Fatalf("Respond with reason: %v", err)
	}
	if a.Status != StatusRejected || a.RejectionReason != "wrong team" {
		t.Fatalf("unexpected assignment: %+v", a)
	}
}

func TestRespond_Terminal(t *testing.T) {
	a := pendingAssignment()
	if err := a.Respond(ActionApprove, "", time.Now().UTC()); err != nil {
		t.Fatalf("first respond: %v", err)
	}

	err := a.Respond(ActionReject, "changed my mind", time.Now().UTC())
	if !errors.Is(err, fault.ErrState) {
		t.Fatalf("second respond: want state error, got %v", err)
	}
	if a.Status != StatusApproved {
		t.Fatalf("second respond mutated status: %s", a.Status)
	}
}

func TestRespond_UnknownAction(t *testing.T) {
	a := pendingAssignment()
	if err := a.Respond(Action("MAYBE"), "", time.Now().UTC()); !errors.Is(err, fault.ErrValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}
