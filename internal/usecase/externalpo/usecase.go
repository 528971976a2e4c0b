package externalpo

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"po-workflow-backend/internal/domain/event"
	epo "po-workflow-backend/internal/domain/externalpo"
	"po-workflow-backend/internal/domain/fault"
	"po-workflow-backend/internal/domain/poline"
	"po-workflow-backend/internal/domain/uow"
	"po-workflow-backend/internal/domain/user"
	"po-workflow-backend/internal/notify"
	"po-workflow-backend/pkg/id"
)

type Usecase struct {
	repo     epo.Repository
	uow      uow.UnitOfWork
	notifier notify.Notifier
}

// NewUsecase: the repo serves reads, the UoW serves every mutation.
func NewUsecase(repo epo.Repository, tx uow.UnitOfWork, n notify.Notifier) *Usecase {
	return &Usecase{repo: repo, uow: tx, notifier: n}
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

func checkSBCUser(sbc *user.User) error {
	if sbc.Role != user.RoleSBC || !sbc.IsActive {
		return fault.Validationf("assigned_to_sbc must be an active SBC user")
	}
	return nil
}

// snapshotLines resolves the requested ids against the fetched rows,
// keeping request order, and totals the line amounts.
func snapshotLines(poIDs []string, lines []poline.PoLine) ([]epo.LineSnapshot, decimal.Decimal, error) {
	byID := make(map[string]poline.PoLine, len(lines))
	for _, l := range lines {
		byID[l.PoID] = l
	}
	snap := make([]epo.LineSnapshot, 0, len(poIDs))
	total := decimal.Zero
	for _, pid := range poIDs {
		l, ok := byID[pid]
		if !ok {
			return nil, decimal.Zero, fault.Validationf("po line %s does not exist", pid)
		}
		snap = append(snap, epo.LineSnapshot{
			PoID:       l.PoID,
			PoNumber:   l.PoNumber,
			PoLineNo:   l.PoLineNo,
			LineAmount: l.LineAmount,
		})
		total = total.Add(l.LineAmount)
	}
	return snap, total, nil
}

// checkLinesEligible verifies every line is assigned (to the actor unless
// they may create from any line) and not already attached.
func checkLinesEligible(actor *user.User, lines []poline.PoLine) error {
	for _, l := range lines {
		if !l.IsAssigned {
			return fault.Validationf("po line %s is not assigned", l.PoID)
		}
		if !actor.CanCreateExternalPOAny {
			if l.AssignedTo == nil || *l.AssignedTo != actor.UserID {
				return fault.Validationf("po line %s is not assigned to you", l.PoID)
			}
		}
		if l.HasExternalPO {
			return fault.Validationf("po line %s is already attached to an external po", l.PoID)
		}
	}
	return nil
}

// ownerScope narrows the CAS attach to the actor's own lines unless the
// actor may create from any assigned line.
func ownerScope(actor *user.User) string {
	if actor.CanCreateExternalPOAny {
		return ""
	}
	return actor.UserID
}

func (u *Usecase) Create(ctx context.Context, actor *user.User, in CreateExternalPOInput) (*ExternalPODTO, error) {
	if !actor.CanCreateExternalPO() {
		return nil, fault.Authorizationf("user %s may not create external pos", actor.UserID)
	}
	if err := checkPoIDs(in.PoIDs); err != nil {
		return nil, err
	}
	if in.AssignedToSBC == "" {
		return nil, fault.Validationf("assigned_to_sbc is required")
	}

	now := time.Now().UTC()
	var dto *ExternalPODTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		sbc, err := r.Users.GetByUserID(ctx, in.AssignedToSBC)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fault.Validationf("sbc user %s does not exist", in.AssignedToSBC)
			}
			return err
		}
		if err := checkSBCUser(sbc); err != nil {
			return err
		}

		lines, err := r.PoLines.GetByPoIDs(ctx, in.PoIDs)
		if err != nil {
			return err
		}
		snap, total, err := snapshotLines(in.PoIDs, lines)
		if err != nil {
			return err
		}
		if err := checkLinesEligible(actor, lines); err != nil {
			return err
		}

		seq, err := r.ExternalPOs.NextInternalPoSeq(ctx, now.Year())
		if err != nil {
			return err
		}

		e := &epo.ExternalPO{
			ExternalPOID:         id.NewID32(),
			InternalPoID:         id.FormatInternalPoID(now.Year(), seq),
			PoIDs:                in.PoIDs,
			Lines:                snap,
			AssignedToSBC:        in.AssignedToSBC,
			AssignmentNotes:      in.AssignmentNotes,
			InternalNotes:        in.InternalNotes,
			EstimatedTotalAmount: total,
			Status:               epo.StatusDraft,
			SBCResponseStatus:    epo.SBCPending,
			CreatedBy:            actor.UserID,
		}
		if !in.AsDraft {
			if err := e.Submit(now); err != nil {
				return err
			}
		}

		// the CAS attach is the race arbiter: a concurrent create over
		// overlapping lines loses here and rolls back
		if err := r.PoLines.AttachExternalPO(ctx, in.PoIDs, ownerScope(actor), e.ExternalPOID); err != nil {
			if errors.Is(err, poline.ErrLinesUnavailable) {
				return fault.Validationf("one or more po lines are no longer available")
			}
			return err
		}

		if err := r.ExternalPOs.Create(ctx, e); err != nil {
			return err
		}
		if !in.AsDraft {
			ev := event.NewForTransition(e.ExternalPOID, event.StageSubmit, "SUBMIT", actor.UserID, "",
				string(epo.StatusDraft), string(e.Status), now)
			if err := r.Events.Create(ctx, ev); err != nil {
				return err
			}
		}

		dto = ToDTO(e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !in.AsDraft {
		u.notifier.Publish(notify.Event{
			Kind:         notify.KindExternalPOSubmitted,
			ExternalPOID: dto.ExternalPOID,
			InternalPoID: dto.InternalPoID,
			Status:       dto.Status,
			ActorID:      actor.UserID,
			Message:      "external po submitted for approval",
			OccurredAt:   now,
		})
	}
	return dto, nil
}

func (u *Usecase) UpdateDraft(ctx context.Context, actor *user.User, externalPoID string, in UpdateDraftInput) (*ExternalPODTO, error) {
	if in.PoIDs != nil {
		if err := checkPoIDs(in.PoIDs); err != nil {
			return nil, err
		}
	}

	var dto *ExternalPODTO

	err := u.uow.WithinExternalPOTx(ctx, externalPoID, func(r uow.Repos, e *epo.ExternalPO) error {
		if e.CreatedBy != actor.UserID {
			return fault.Authorizationf("only the creator may edit a draft")
		}
		if e.Status != epo.StatusDraft {
			return fault.Statef("external po %s is %s, only drafts can be edited", e.ExternalPOID, e.Status)
		}

		if in.AssignedToSBC != nil {
			sbc, err := r.Users.GetByUserID(ctx, *in.AssignedToSBC)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fault.Validationf("sbc user %s does not exist", *in.AssignedToSBC)
				}
				return err
			}
			if err := checkSBCUser(sbc); err != nil {
				return err
			}
			e.AssignedToSBC = *in.AssignedToSBC
		}
		if in.AssignmentNotes != nil {
			e.AssignmentNotes = *in.AssignmentNotes
		}
		if in.InternalNotes != nil {
			e.InternalNotes = *in.InternalNotes
		}

		if in.PoIDs != nil {
			if err := u.replaceDraftLines(ctx, r, actor, e, in.PoIDs); err != nil {
				return err
			}
		}

		if err := r.ExternalPOs.Save(ctx, e); err != nil {
			return err
		}
		dto = ToDTO(e)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFoundf("external po %s not found", externalPoID)
		}
		return nil, err
	}
	return dto, nil
}

// replaceDraftLines swaps the draft's line set: dropped lines are detached,
// newly included ones CAS-attached, and the snapshot re-taken.
func (u *Usecase) replaceDraftLines(ctx context.Context, r uow.Repos, actor *user.User, e *epo.ExternalPO, next []string) error {
	keep := make(map[string]struct{}, len(next))
	for _, pid := range next {
		keep[pid] = struct{}{}
	}
	current := make(map[string]struct{}, len(e.PoIDs))
	var removed []string
	for _, pid := range e.PoIDs {
		current[pid] = struct{}{}
		if _, ok := keep[pid]; !ok {
			removed = append(removed, pid)
		}
	}
	var added []string
	for _, pid := range next {
		if _, ok := current[pid]; !ok {
			added = append(added, pid)
		}
	}

	if len(removed) > 0 {
		if err := r.PoLines.ReleaseExternalPO(ctx, removed); err != nil {
			return err
		}
	}
	if len(added) > 0 {
		lines, err := r.PoLines.GetByPoIDs(ctx, added)
		if err != nil {
			return err
		}
		if _, _, err := snapshotLines(added, lines); err != nil {
			return err
		}
		if err := checkLinesEligible(actor, lines); err != nil {
			return err
		}
		if err := r.PoLines.AttachExternalPO(ctx, added, ownerScope(actor), e.ExternalPOID); err != nil {
			if errors.Is(err, poline.ErrLinesUnavailable) {
				return fault.Validationf("one or more po lines are no longer available")
			}
			return err
		}
	}

	all, err := r.PoLines.GetByPoIDs(ctx, next)
	if err != nil {
		return err
	}
	snap, total, err := snapshotLines(next, all)
	if err != nil {
		return err
	}
	e.PoIDs = next
	e.Lines = snap
	e.EstimatedTotalAmount = total
	return nil
}

func (u *Usecase) Submit(ctx context.Context, actor *user.User, externalPoID string) (*ExternalPODTO, error) {
	now := time.Now().UTC()
	var dto *ExternalPODTO

	err := u.uow.WithinExternalPOTx(ctx, externalPoID, func(r uow.Repos, e *epo.ExternalPO) error {
		if e.CreatedBy != actor.UserID {
			return fault.Authorizationf("only the creator may submit")
		}
		from := e.Status
		if err := e.Submit(now); err != nil {
			return err
		}
		if err := r.ExternalPOs.Save(ctx, e); err != nil {
			return err
		}
		ev := event.NewForTransition(e.ExternalPOID, event.StageSubmit, "SUBMIT", actor.UserID, "",
			string(from), string(e.Status), now)
		if err := r.Events.Create(ctx, ev); err != nil {
			return err
		}
		dto = ToDTO(e)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFoundf("external po %s not found", externalPoID)
		}
		return nil, err
	}

	u.notifier.Publish(notify.Event{
		Kind:         notify.KindExternalPOSubmitted,
		ExternalPOID: dto.ExternalPOID,
		InternalPoID: dto.InternalPoID,
		Status:       dto.Status,
		ActorID:      actor.UserID,
		Message:      "external po submitted for approval",
		OccurredAt:   now,
	})
	return dto, nil
}

// Delete removes a draft and detaches its lines. Submitted records are
// immutable history and cannot be deleted.
func (u *Usecase) Delete(ctx context.Context, actor *user.User, externalPoID string) error {
	err := u.uow.WithinExternalPOTx(ctx, externalPoID, func(r uow.Repos, e *epo.ExternalPO) error {
		if e.CreatedBy != actor.UserID {
			return fault.Authorizationf("only the creator may delete a draft")
		}
		if e.Status != epo.StatusDraft {
			return fault.Statef("external po %s is %s, only drafts can be deleted", e.ExternalPOID, e.Status)
		}
		if err := r.PoLines.ReleaseExternalPO(ctx, e.PoIDs); err != nil {
			return err
		}
		return r.ExternalPOs.Delete(ctx, e)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fault.NotFoundf("external po %s not found", externalPoID)
	}
	return err
}

// CanView reports whether the actor may read this record: the creator, the
// assigned SBC, anyone in the approval chain, or an all-data viewer.
func CanView(actor *user.User, e *epo.ExternalPO) bool {
	return actor.CanViewAllData ||
		e.CreatedBy == actor.UserID ||
		e.AssignedToSBC == actor.UserID ||
		actor.CanApproveLevel1 || actor.CanApproveLevel2
}

func (u *Usecase) Get(ctx context.Context, actor *user.User, externalPoID string) (*ExternalPODTO, error) {
	e, err := u.repo.GetByExternalPOID(ctx, externalPoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFoundf("external po %s not found", externalPoID)
		}
		return nil, err
	}
	if !CanView(actor, e) {
		return nil, fault.Authorizationf("user %s may not view external po %s", actor.UserID, externalPoID)
	}
	return ToDTO(e), nil
}

// List returns the actor's own records unless they may view everything.
func (u *Usecase) List(ctx context.Context, actor *user.User, f epo.ListFilter, page, pageSize int) ([]ExternalPODTO, int64, error) {
	if !actor.CanViewAllData {
		f.CreatedBy = actor.UserID
	}
	items, total, err := u.repo.List(ctx, f, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]ExternalPODTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *ToDTO(&items[i]))
	}
	return dtos, total, nil
}

func (u *Usecase) Close(ctx context.Context, actor *user.User, externalPoID string) (*ExternalPODTO, error) {
	now := time.Now().UTC()
	var dto *ExternalPODTO

	err := u.uow.WithinExternalPOTx(ctx, externalPoID, func(r uow.Repos, e *epo.ExternalPO) error {
		if e.CreatedBy != actor.UserID && !actor.CanApproveLevel2 {
			return fault.Authorizationf("user %s may not close external po %s", actor.UserID, externalPoID)
		}
		from := e.Status
		if err := e.Close(now); err != nil {
			return err
		}
		if err := r.ExternalPOs.Save(ctx, e); err != nil {
			return err
		}
		ev := event.NewForTransition(e.ExternalPOID, event.StageClose, "CLOSE", actor.UserID, "",
			string(from), string(e.Status), now)
		if err := r.Events.Create(ctx, ev); err != nil {
			return err
		}
		dto = ToDTO(e)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFoundf("external po %s not found", externalPoID)
		}
		return nil, err
	}

	u.notifier.Publish(notify.Event{
		Kind:         notify.KindExternalPOClosed,
		ExternalPOID: dto.ExternalPOID,
		InternalPoID: dto.InternalPoID,
		Status:       dto.Status,
		ActorID:      actor.UserID,
		Message:      "external po closed",
		OccurredAt:   now,
	})
	return dto, nil
}
