package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"strings"
	"testing"

	"gorm.io/gorm"

	domain "po-workflow-backend/internal/domain/assignment"
	"po-workflow-backend/internal/domain/poline"
	"po-workflow-backend/internal/domain/uow"
	"po-workflow-backend/internal/domain/user"
	"po-workflow-backend/internal/testutil/assignmentmock"
	"po-workflow-backend/internal/testutil/notifymock"
	"po-workflow-backend/internal/testutil/polinemock"
	"po-workflow-backend/internal/testutil/uowmock"
	"po-workflow-backend/internal/testutil/usermock"
	"po-workflow-backend/internal/usecase/assignment"
)

func newAssignmentHandler(repo *assignmentmock.Repo, tx *uowmock.UoW) *AssignmentHandler {
	return NewAssignmentHandler(assignment.NewUsecase(repo, tx, notifymock.New()))
}

func pendingAssignment(id, assignedBy, assignedTo string) *domain.Assignment {
	return &domain.Assignment{
		AssignmentID: id,
		PoIDs:        []string{strings.Repeat("1", 32)},
		AssignedBy:   assignedBy,
		AssignedTo:   assignedTo,
		Status:       domain.StatusPending,
	}
}

func assignmentLockedUoW(r uow.Repos, a *domain.Assignment) *uowmock.UoW {
	return uowmock.New().WithWithinAssignmentTx(
		func(ctx context.Context, assignmentID string, fn func(uow.Repos, *domain.Assignment) error) error {
			if a == nil || a.AssignmentID != assignmentID {
				return gorm.ErrRecordNotFound
			}
			return fn(r, a)
		})
}

func TestCreateAssignment_Success(t *testing.T) {
	e := newEchoWithValidator()
	coordinator := makeActorWithRole(strings.Repeat("9", 32), user.RoleCoordinator)
	assigneeID := strings.Repeat("a", 32)
	lineIDs := []string{strings.Repeat("1", 32), strings.Repeat("2", 32)}

	users := &usermock.Repo{
		GetByUserIDFn: func(ctx context.Context, userID string) (*user.User, error) {
			return makeActorWithRole(assigneeID, user.RolePM), nil
		},
	}
	lines := &polinemock.Repo{
		GetByPoIDsFn: func(ctx context.Context, poIDs []string) ([]poline.PoLine, error) {
			out := make([]poline.PoLine, 0, len(poIDs))
			for _, pid := range poIDs {
				out = append(out, poline.PoLine{PoID: pid, PoNumber: "4500009999", PoLineNo: "10"})
			}
			return out, nil
		},
		ClaimAssignmentFn: func(ctx context.Context, poIDs []string, assignedTo string) error {
			return nil
		},
	}
	repo := &assignmentmock.Repo{
		CreateFn: func(ctx context.Context, a *domain.Assignment) error { return nil },
	}
	tx := uowmock.New().WithWithinTx(func(ctx context.Context, fn func(uow.Repos) error) error {
		return fn(uow.Repos{Users: users, PoLines: lines, Assignments: repo})
	})
	h := newAssignmentHandler(repo, tx)

	body := map[string]any{
		"po_ids":      lineIDs,
		"assigned_to": assigneeID,
		"notes":       "Q3 fiber batch",
	}
	c, rec := newRequestCtx(e, stdhttp.MethodPost, "/api/assignments", mustJSON(body), coordinator)

	if err := h.CreateAssignment(c); err != nil {
		t.Fatalf("CreateAssignment error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	var dto assignment.AssignmentDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.Status != string(domain.StatusPending) || dto.AssignedBy != coordinator.UserID {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestCreateAssignment_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	h := newAssignmentHandler(&assignmentmock.Repo{}, uowmock.New())

	coordinator := makeActorWithRole(strings.Repeat("9", 32), user.RoleCoordinator)
	body := map[string]any{"assigned_to": "short"}
	c, rec := newRequestCtx(e, stdhttp.MethodPost, "/api/assignments", mustJSON(body), coordinator)

	if err := h.CreateAssignment(c); err != nil {
		t.Fatalf("CreateAssignment error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (%s)", rec.Code, rec.Body.String())
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if !containsFieldMsg(er.Details, "PoIDs", "is required") {
		t.Fatalf("missing po_ids detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "AssignedTo", "must be 32-char lowercase hex") {
		t.Fatalf("missing assigned_to detail: %+v", er.Details)
	}
}

func TestCreateAssignment_Forbidden(t *testing.T) {
	e := newEchoWithValidator()
	h := newAssignmentHandler(&assignmentmock.Repo{}, uowmock.New())

	pm := makeActorWithRole(strings.Repeat("a", 32), user.RolePM)
	body := map[string]any{
		"po_ids":      []string{strings.Repeat("1", 32)},
		"assigned_to": strings.Repeat("b", 32),
	}
	c, rec := newRequestCtx(e, stdhttp.MethodPost, "/api/assignments", mustJSON(body), pm)

	if err := h.CreateAssignment(c); err != nil {
		t.Fatalf("CreateAssignment error: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403 (%s)", rec.Code, rec.Body.String())
	}
}

func TestRespondAssignment_RejectReleasesLines(t *testing.T) {
	e := newEchoWithValidator()
	assignee := makeActorWithRole(strings.Repeat("a", 32), user.RolePM)
	a := pendingAssignment(strings.Repeat("5", 32), strings.Repeat("9", 32), assignee.UserID)

	released := false
	lines := &polinemock.Repo{
		ReleaseAssignmentFn: func(ctx context.Context, poIDs []string) error {
			released = true
			return nil
		},
	}
	repo := &assignmentmock.Repo{
		SaveFn: func(ctx context.Context, a *domain.Assignment) error { return nil },
	}
	h := newAssignmentHandler(repo, assignmentLockedUoW(uow.Repos{PoLines: lines, Assignments: repo}, a))

	body := map[string]any{"action": "REJECT", "rejection_reason": "workload full"}
	c, rec := newRequestCtx(e, stdhttp.MethodPost, "/api/assignments/"+a.AssignmentID+"/respond", mustJSON(body), assignee)
	c.SetParamNames("assignment_id")
	c.SetParamValues(a.AssignmentID)

	if err := h.RespondAssignment(c); err != nil {
		t.Fatalf("RespondAssignment error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	var dto assignment.AssignmentDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.Status != string(domain.StatusRejected) {
		t.Fatalf("status = %s, want %s", dto.Status, domain.StatusRejected)
	}
	if !released {
		t.Fatalf("rejecting must return the lines to the pool")
	}
}

func TestRespondAssignment_MissingParam(t *testing.T) {
	e := newEchoWithValidator()
	h := newAssignmentHandler(&assignmentmock.Repo{}, uowmock.New())

	assignee := makeActorWithRole(strings.Repeat("a", 32), user.RolePM)
	body := map[string]any{"action": "APPROVE"}
	c, rec := newRequestCtx(e, stdhttp.MethodPost, "/api/assignments//respond", mustJSON(body), assignee)

	if err := h.RespondAssignment(c); err != nil {
		t.Fatalf("RespondAssignment error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body.String())
	}
}

func TestListMyAssignments_Envelope(t *testing.T) {
	e := newEchoWithValidator()
	assignee := makeActorWithRole(strings.Repeat("a", 32), user.RolePM)

	var gotFilter domain.ListFilter
	repo := &assignmentmock.Repo{
		ListFn: func(ctx context.Context, f domain.ListFilter, limit, offset int) ([]domain.Assignment, int64, error) {
			gotFilter = f
			return []domain.Assignment{
				*pendingAssignment(strings.Repeat("5", 32), strings.Repeat("9", 32), assignee.UserID),
			}, 1, nil
		},
	}
	h := newAssignmentHandler(repo, uowmock.New())

	c, rec := newRequestCtx(e, stdhttp.MethodGet, "/api/assignments/my?status=PENDING", nil, assignee)

	if err := h.ListMyAssignments(c); err != nil {
		t.Fatalf("ListMyAssignments error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	if gotFilter.AssignedTo != assignee.UserID || gotFilter.Status != domain.StatusPending {
		t.Fatalf("filter not scoped to actor: %+v", gotFilter)
	}

	var page struct {
		Data      []assignment.AssignmentDTO `json:"data"`
		TotalRows int64                      `json:"total_rows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(page.Data) != 1 || page.TotalRows != 1 {
		t.Fatalf("unexpected envelope: %+v", page)
	}
}

func TestGetAssignment_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	repo := &assignmentmock.Repo{
		GetByAssignmentIDFn: func(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	h := newAssignmentHandler(repo, uowmock.New())

	admin := makeActorWithRole(strings.Repeat("9", 32), user.RoleAdmin)
	c, rec := newRequestCtx(e, stdhttp.MethodGet, "/api/assignments/"+strings.Repeat("5", 32), nil, admin)
	c.SetParamNames("assignment_id")
	c.SetParamValues(strings.Repeat("5", 32))

	if err := h.GetAssignment(c); err != nil {
		t.Fatalf("GetAssignment error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404 (%s)", rec.Code, rec.Body.String())
	}
}
