package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	assignmentDomain "po-workflow-backend/internal/domain/assignment"
	eventDomain "po-workflow-backend/internal/domain/event"
	epoDomain "po-workflow-backend/internal/domain/externalpo"
	polineDomain "po-workflow-backend/internal/domain/poline"
	"po-workflow-backend/internal/domain/uow"
	"po-workflow-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type approvalEventSQLite struct {
	ID           uint64    `gorm:"primaryKey;column:id"`
	EventID      string    `gorm:"size:32;uniqueIndex;column:event_id"`
	ExternalPOID string    `gorm:"size:32;column:external_po_id"`
	Stage        string    `gorm:"column:stage"`
	Action       string    `gorm:"column:action"`
	ActorID      string    `gorm:"column:actor_id"`
	Remarks      string    `gorm:"type:text;column:remarks"`
	FromStatus   string    `gorm:"column:from_status"`
	ToStatus     string    `gorm:"column:to_status"`
	OccurredAt   time.Time `gorm:"column:occurred_at"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (approvalEventSQLite) TableName() string { return "approval_events" }

// openUowTestDB migrates every table, so UoW can orchestrate all repos.
func openUowTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&userSQLite{}, &poLineSQLite{}, &assignmentSQLite{}, &externalPoSQLite{}, &approvalEventSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

// ----------------------------- Tests -----------------------------

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	lineRepo := NewPoLineRepository(db)
	asgRepo := NewAssignmentRepository(db)

	asgID := id.NewID32()
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		// lines and the assignment row must commit in the same tx
		if err := r.PoLines.CreateBatch(ctx, []*polineDomain.PoLine{
			makeLine("PN-UOW-1", "10"), makeLine("PN-UOW-1", "20"),
		}); err != nil {
			return err
		}
		ids := []string{"PN-UOW-1-10", "PN-UOW-1-20"}
		if err := r.PoLines.ClaimAssignment(ctx, ids, "pm-1"); err != nil {
			return err
		}
		a := makeAssignment("admin-1", "pm-1", ids...)
		a.AssignmentID = asgID
		return r.Assignments.Create(ctx, a)
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	// Verify post-commit visibility
	if _, err := asgRepo.GetByAssignmentID(ctx, asgID); err != nil {
		t.Fatalf("assignment not visible after commit: %v", err)
	}
	lines, err := lineRepo.GetByPoIDs(ctx, []string{"PN-UOW-1-10"})
	if err != nil || len(lines) != 1 || !lines[0].IsAssigned {
		t.Fatalf("claimed line not visible after commit: err=%v lines=%+v", err, lines)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	lineRepo := NewPoLineRepository(db)
	asgRepo := NewAssignmentRepository(db)

	sentinel := errors.New("boom")
	asgID := id.NewID32()

	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.PoLines.CreateBatch(ctx, []*polineDomain.PoLine{makeLine("PN-UOW-2", "10")}); err != nil {
			return err
		}
		a := makeAssignment("admin-1", "pm-1", "PN-UOW-2-10")
		a.AssignmentID = asgID
		if err := r.Assignments.Create(ctx, a); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	// None should exist after rollback
	if _, err := asgRepo.GetByAssignmentID(ctx, asgID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected assignment not found after rollback, got %v", err)
	}
	lines, err := lineRepo.GetByPoIDs(ctx, []string{"PN-UOW-2-10"})
	if err != nil || len(lines) != 0 {
		t.Fatalf("expected no lines after rollback, got err=%v lines=%+v", err, lines)
	}
}

func TestGormUoW_WithinExternalPOTx_Commit(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	poRepo := NewExternalPORepository(db)
	evRepo := NewEventRepository(db)

	// Seed a submitted PO (outside tx)
	seed := makeExternalPO("EPO-2026-0100", "pm-1")
	now := time.Now().UTC()
	if err := seed.Submit(now); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := poRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed external po: %v", err)
	}

	// Execute WithinExternalPOTx: should fetch the locked row and pass it to fn
	if err := guow.WithinExternalPOTx(ctx, seed.ExternalPOID, func(r uow.Repos, po *epoDomain.ExternalPO) error {
		if po == nil || po.ExternalPOID != seed.ExternalPOID || po.Status != epoDomain.StatusPendingPD {
			t.Fatalf("unexpected po passed to fn: %+v", po)
		}

		from := po.Status
		if err := po.ApplyApproval(epoDomain.LevelPD, epoDomain.ActionApprove, "pd-1", "ok", "", now.Add(time.Hour)); err != nil {
			return err
		}
		if err := r.ExternalPOs.Save(ctx, po); err != nil {
			return err
		}
		return r.Events.Create(ctx, &eventDomain.ApprovalEvent{
			EventID:      id.NewID32(),
			ExternalPOID: po.ExternalPOID,
			Stage:        eventDomain.StagePD,
			Action:       string(epoDomain.ActionApprove),
			ActorID:      "pd-1",
			FromStatus:   string(from),
			ToStatus:     string(po.Status),
			OccurredAt:   now.Add(time.Hour),
		})
	}); err != nil {
		t.Fatalf("WithinExternalPOTx commit err: %v", err)
	}

	// Verify changes
	got, err := poRepo.GetByExternalPOID(ctx, seed.ExternalPOID)
	if err != nil {
		t.Fatalf("GetByExternalPOID post-commit: %v", err)
	}
	if got.Status != epoDomain.StatusPendingAdmin {
		t.Fatalf("status not updated, got=%s", got.Status)
	}
	events, err := evRepo.ListByExternalPOID(ctx, seed.ExternalPOID)
	if err != nil || len(events) != 1 || events[0].Stage != eventDomain.StagePD {
		t.Fatalf("event not visible after commit: err=%v events=%+v", err, events)
	}
}

func TestGormUoW_WithinExternalPOTx_Rollback(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	poRepo := NewExternalPORepository(db)
	evRepo := NewEventRepository(db)

	seed := makeExternalPO("EPO-2026-0101", "pm-1")
	now := time.Now().UTC()
	if err := seed.Submit(now); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := poRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed external po: %v", err)
	}

	sentinel := errors.New("stop")

	_ = guow.WithinExternalPOTx(ctx, seed.ExternalPOID, func(r uow.Repos, po *epoDomain.ExternalPO) error {
		if err := po.ApplyApproval(epoDomain.LevelPD, epoDomain.ActionApprove, "pd-1", "", "", now); err != nil {
			return err
		}
		if err := r.ExternalPOs.Save(ctx, po); err != nil {
			return err
		}
		if err := r.Events.Create(ctx, &eventDomain.ApprovalEvent{
			EventID: id.NewID32(), ExternalPOID: po.ExternalPOID,
			Stage: eventDomain.StagePD, Action: "APPROVE", OccurredAt: now,
		}); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	// After rollback: status unchanged, event absent
	got, err := poRepo.GetByExternalPOID(ctx, seed.ExternalPOID)
	if err != nil {
		t.Fatalf("post-rollback fetch: %v", err)
	}
	if got.Status != epoDomain.StatusPendingPD {
		t.Fatalf("expected PENDING_PD_APPROVAL after rollback, got %s", got.Status)
	}
	events, err := evRepo.ListByExternalPOID(ctx, seed.ExternalPOID)
	if err != nil || len(events) != 0 {
		t.Fatalf("expected no events after rollback, got err=%v events=%+v", err, events)
	}
}

func TestGormUoW_WithinExternalPOTx_NotFound(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)

	err := guow.WithinExternalPOTx(ctx, "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", func(r uow.Repos, po *epoDomain.ExternalPO) error {
		t.Fatalf("callback should not be called when po missing")
		return nil
	})
	if err == nil {
		t.Fatalf("expected error when po not found")
	}
}

func TestGormUoW_WithinAssignmentTx_CommitAndNotFound(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	lineRepo := NewPoLineRepository(db)
	asgRepo := NewAssignmentRepository(db)

	// Seed claimed lines and their pending assignment
	if err := lineRepo.CreateBatch(ctx, []*polineDomain.PoLine{makeLine("PN-UOW-3", "10")}); err != nil {
		t.Fatalf("seed lines: %v", err)
	}
	if err := lineRepo.ClaimAssignment(ctx, []string{"PN-UOW-3-10"}, "pm-9"); err != nil {
		t.Fatalf("seed claim: %v", err)
	}
	seed := makeAssignment("admin-1", "pm-9", "PN-UOW-3-10")
	if err := asgRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	// Reject inside the tx and release the lines back to the pool
	now := time.Now().UTC()
	if err := guow.WithinAssignmentTx(ctx, seed.AssignmentID, func(r uow.Repos, a *assignmentDomain.Assignment) error {
		if a == nil || a.Status != assignmentDomain.StatusPending {
			t.Fatalf("unexpected assignment passed to fn: %+v", a)
		}
		if err := a.Respond(assignmentDomain.ActionReject, "wrong crew", now); err != nil {
			return err
		}
		if err := r.Assignments.Save(ctx, a); err != nil {
			return err
		}
		return r.PoLines.ReleaseAssignment(ctx, a.PoIDs)
	}); err != nil {
		t.Fatalf("WithinAssignmentTx commit err: %v", err)
	}

	gotAsg, err := asgRepo.GetByAssignmentID(ctx, seed.AssignmentID)
	if err != nil || gotAsg.Status != assignmentDomain.StatusRejected {
		t.Fatalf("assignment not rejected: err=%v got=%+v", err, gotAsg)
	}
	lines, err := lineRepo.GetByPoIDs(ctx, []string{"PN-UOW-3-10"})
	if err != nil || len(lines) != 1 || lines[0].IsAssigned {
		t.Fatalf("lines not released: err=%v lines=%+v", err, lines)
	}

	// Missing assignment: callback never runs
	err = guow.WithinAssignmentTx(ctx, "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", func(r uow.Repos, a *assignmentDomain.Assignment) error {
		t.Fatalf("callback should not be called when assignment missing")
		return nil
	})
	if err == nil {
		t.Fatalf("expected error when assignment not found")
	}
}
