package assignment

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "po-workflow-backend/internal/domain/assignment"
	"po-workflow-backend/internal/domain/fault"
	"po-workflow-backend/internal/domain/poline"
	"po-workflow-backend/internal/domain/uow"
	"po-workflow-backend/internal/domain/user"
	"po-workflow-backend/internal/notify"
	"po-workflow-backend/pkg/id"
)

type Usecase struct {
	repo     domain.Repository
	uow      uow.UnitOfWork
	notifier notify.Notifier
}

func NewUsecase(repo domain.Repository, tx uow.UnitOfWork, n notify.Notifier) *Usecase {
	return &Usecase{repo: repo, uow: tx, notifier: n}
}

func parseAction(s string) (domain.Action, error) {
	switch a := domain.Action(strings.ToUpper(s)); a {
	case domain.ActionApprove, domain.ActionReject:
		return a, nil
	}
	return "", fault.Validationf("unknown action %q", s)
}

func checkPoIDs(poIDs []string) error {
	if len(poIDs) == 0 {
		return fault.Validationf("po_ids must not be empty")
	}
	seen := make(map[string]struct{}, len(poIDs))
	for _, pid := range poIDs {
		if pid == "" {
			return fault.Validationf("po_ids must not contain empty ids")
		}
		if _, dup := seen[pid]; dup {
			return fault.Validationf("po_ids contains %s twice", pid)
		}
		seen[pid] = struct{}{}
	}
	return nil
}

// Create claims the lines for the assignee and opens a pending ledger entry.
// The claim is a compare-and-set: losing a race over any line fails the
// whole batch.
func (u *Usecase) Create(ctx context.Context, actor *user.User, in CreateAssignmentInput) (*AssignmentDTO, error) {
	if !actor.CanAssignPOs {
		return nil, fault.Authorizationf("user %s may not assign po lines", actor.UserID)
	}
	if err := checkPoIDs(in.PoIDs); err != nil {
		return nil, err
	}
	if in.AssignedTo == "" {
		return nil, fault.Validationf("assigned_to is required")
	}

	var dto *AssignmentDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		assignee, err := r.Users.GetByUserID(ctx, in.AssignedTo)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fault.Validationf("assignee %s does not exist", in.AssignedTo)
			}
			return err
		}
		if !assignee.IsActive {
			return fault.Validationf("assignee %s is not active", in.AssignedTo)
		}

		lines, err := r.PoLines.GetByPoIDs(ctx, in.PoIDs)
		if err != nil {
			return err
		}
		byID := make(map[string]poline.PoLine, len(lines))
		for _, l := range lines {
			byID[l.PoID] = l
		}
		for _, pid := range in.PoIDs {
			l, ok := byID[pid]
			if !ok {
				return fault.Validationf("po line %s does not exist", pid)
			}
			if l.IsAssigned {
				return fault.Validationf("po line %s is already assigned", pid)
			}
			if l.HasExternalPO {
				return fault.Validationf("po line %s already belongs to an external po", pid)
			}
		}

		if err := r.PoLines.ClaimAssignment(ctx, in.PoIDs, in.AssignedTo); err != nil {
			if errors.Is(err, poline.ErrLinesUnavailable) {
				return fault.Validationf("one or more po lines are no longer available")
			}
			return err
		}

		a := &domain.Assignment{
			AssignmentID: id.NewID32(),
			PoIDs:        in.PoIDs,
			AssignedBy:   actor.UserID,
			AssignedTo:   in.AssignedTo,
			Notes:        in.Notes,
			Status:       domain.StatusPending,
		}
		if err := r.Assignments.Create(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notifier.Publish(notify.Event{
		Kind:         notify.KindAssignmentCreated,
		AssignmentID: dto.AssignmentID,
		Status:       dto.Status,
		ActorID:      actor.UserID,
		Message:      "po lines assigned, awaiting response",
		OccurredAt:   time.Now().UTC(),
	})
	return dto, nil
}

// Respond records the assignee's approve or reject. Rejecting returns the
// lines to the unassigned pool.
func (u *Usecase) Respond(ctx context.Context, actor *user.User, assignmentID string, in RespondInput) (*AssignmentDTO, error) {
	action, err := parseAction(in.Action)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var dto *AssignmentDTO

	err = u.uow.WithinAssignmentTx(ctx, assignmentID, func(r uow.Repos, a *domain.Assignment) error {
		if a.AssignedTo != actor.UserID {
			return fault.Authorizationf("assignment %s belongs to another user", assignmentID)
		}
		if err := a.Respond(action, in.RejectionReason, now); err != nil {
			return err
		}
		if err := r.Assignments.Save(ctx, a); err != nil {
			return err
		}
		if a.Status == domain.StatusRejected {
			if err := r.PoLines.ReleaseAssignment(ctx, a.PoIDs); err != nil {
				return err
			}
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFoundf("assignment %s not found", assignmentID)
		}
		return nil, err
	}

	u.notifier.Publish(notify.Event{
		Kind:         notify.KindAssignmentResponded,
		AssignmentID: dto.AssignmentID,
		Status:       dto.Status,
		ActorID:      actor.UserID,
		Message:      "assignment " + strings.ToLower(dto.Status),
		OccurredAt:   now,
	})
	return dto, nil
}

func (u *Usecase) List(ctx context.Context, actor *user.User, f domain.ListFilter, page, pageSize int) ([]AssignmentDTO, int64, error) {
	if !actor.CanAssignPOs && !actor.CanViewAllData {
		return nil, 0, fault.Authorizationf("user %s may not list assignments", actor.UserID)
	}
	return u.list(ctx, f, page, pageSize)
}

// ListMy returns the actor's own inbox, any role.
func (u *Usecase) ListMy(ctx context.Context, actor *user.User, f domain.ListFilter, page, pageSize int) ([]AssignmentDTO, int64, error) {
	f.AssignedTo = actor.UserID
	return u.list(ctx, f, page, pageSize)
}

func (u *Usecase) list(ctx context.Context, f domain.ListFilter, page, pageSize int) ([]AssignmentDTO, int64, error) {
	items, total, err := u.repo.List(ctx, f, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]AssignmentDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *toDTO(&items[i]))
	}
	return dtos, total, nil
}

func (u *Usecase) Get(ctx context.Context, actor *user.User, assignmentID string) (*AssignmentDTO, error) {
	a, err := u.repo.GetByAssignmentID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFoundf("assignment %s not found", assignmentID)
		}
		return nil, err
	}
	if a.AssignedBy != actor.UserID && a.AssignedTo != actor.UserID && !actor.CanViewAllData {
		return nil, fault.Authorizationf("user %s may not view assignment %s", actor.UserID, assignmentID)
	}
	return toDTO(a), nil
}
