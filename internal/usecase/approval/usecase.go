package approval

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"po-workflow-backend/internal/domain/event"
	epo "po-workflow-backend/internal/domain/externalpo"
	"po-workflow-backend/internal/domain/fault"
	"po-workflow-backend/internal/domain/uow"
	"po-workflow-backend/internal/domain/user"
	"po-workflow-backend/internal/notify"
	epouc "po-workflow-backend/internal/usecase/externalpo"
)

type Usecase struct {
	repo      epo.Repository
	eventRepo event.Repository
	uow       uow.UnitOfWork
	notifier  notify.Notifier

	// releaseLinesOnReject returns rejected lines to the pool so they can
	// be picked up by a fresh external PO.
	releaseLinesOnReject bool
}

func NewUsecase(repo epo.Repository, events event.Repository, tx uow.UnitOfWork, n notify.Notifier, releaseLinesOnReject bool) *Usecase {
	return &Usecase{repo: repo, eventRepo: events, uow: tx, notifier: n, releaseLinesOnReject: releaseLinesOnReject}
}

func parseLevel(s string) (epo.Level, error) {
	switch l := epo.Level(strings.ToUpper(s)); l {
	case epo.LevelPD, epo.LevelAdmin:
		return l, nil
	}
	return "", fault.Validationf("unknown approval level %q", s)
}

func parseAction(s string) (epo.Action, error) {
	switch a := epo.Action(strings.ToUpper(s)); a {
	case epo.ActionApprove, epo.ActionReject:
		return a, nil
	}
	return "", fault.Validationf("unknown action %q", s)
}

func mayApprove(actor *user.User, level epo.Level) bool {
	if level == epo.LevelAdmin {
		return actor.CanApproveLevel2
	}
	return actor.CanApproveLevel1
}

func stageFor(level epo.Level) event.Stage {
	if level == epo.LevelAdmin {
		return event.StageAdmin
	}
	return event.StagePD
}

// ListPending returns the queue for one approval level, newest submission
// (PD) or newest PD approval (Admin) first.
func (u *Usecase) ListPending(ctx context.Context, actor *user.User, level string) ([]epouc.ExternalPODTO, error) {
	lv, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	if !mayApprove(actor, lv) {
		return nil, fault.Authorizationf("user %s may not approve at %s level", actor.UserID, lv)
	}
	items, err := u.repo.ListPendingForLevel(ctx, lv)
	if err != nil {
		return nil, err
	}
	dtos := make([]epouc.ExternalPODTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *epouc.ToDTO(&items[i]))
	}
	return dtos, nil
}

// Respond applies the actor's approval decision at the given level. Acting
// out of turn (admin level while the PO still awaits PD, or vice versa)
// fails the status guard inside ApplyApproval.
func (u *Usecase) Respond(ctx context.Context, actor *user.User, externalPoID string, in RespondInput) (*epouc.ExternalPODTO, error) {
	level, err := parseLevel(in.Level)
	if err != nil {
		return nil, err
	}
	action, err := parseAction(in.Action)
	if err != nil {
		return nil, err
	}
	if !mayApprove(actor, level) {
		return nil, fault.Authorizationf("user %s may not approve at %s level", actor.UserID, level)
	}

	now := time.Now().UTC()
	var dto *epouc.ExternalPODTO

	err = u.uow.WithinExternalPOTx(ctx, externalPoID, func(r uow.Repos, e *epo.ExternalPO) error {
		from := e.Status
		if err := e.ApplyApproval(level, action, actor.UserID, in.Remarks, in.RejectionReason, now); err != nil {
			return err
		}
		if err := r.ExternalPOs.Save(ctx, e); err != nil {
			return err
		}

		remarks := in.Remarks
		if action == epo.ActionReject {
			remarks = in.RejectionReason
		}
		ev := event.NewForTransition(e.ExternalPOID, stageFor(level), string(action), actor.UserID, remarks,
			string(from), string(e.Status), now)
		if err := r.Events.Create(ctx, ev); err != nil {
			return err
		}

		if e.Status == epo.StatusRejected && u.releaseLinesOnReject {
			if err := r.PoLines.ReleaseAll(ctx, e.PoIDs); err != nil {
				return err
			}
		}

		dto = epouc.ToDTO(e)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFoundf("external po %s not found", externalPoID)
		}
		return nil, err
	}

	u.notifier.Publish(notify.Event{
		Kind:         notify.KindExternalPODecided,
		ExternalPOID: dto.ExternalPOID,
		InternalPoID: dto.InternalPoID,
		Status:       dto.Status,
		ActorID:      actor.UserID,
		Message:      decisionMessage(level, action),
		OccurredAt:   now,
	})
	return dto, nil
}

func decisionMessage(level epo.Level, action epo.Action) string {
	if action == epo.ActionReject {
		return "external po rejected"
	}
	if level == epo.LevelAdmin {
		return "external po fully approved"
	}
	return "external po approved by pd, awaiting admin"
}

// ListEvents returns the audit trail, oldest first, for anyone allowed to
// view the record itself.
func (u *Usecase) ListEvents(ctx context.Context, actor *user.User, externalPoID string) ([]EventDTO, error) {
	e, err := u.repo.GetByExternalPOID(ctx, externalPoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFoundf("external po %s not found", externalPoID)
		}
		return nil, err
	}
	if !epouc.CanView(actor, e) {
		return nil, fault.Authorizationf("user %s may not view external po %s", actor.UserID, externalPoID)
	}

	events, err := u.eventRepo.ListByExternalPOID(ctx, externalPoID)
	if err != nil {
		return nil, err
	}
	dtos := make([]EventDTO, 0, len(events))
	for _, ev := range events {
		dtos = append(dtos, EventDTO{
			EventID:      ev.EventID,
			ExternalPOID: ev.ExternalPOID,
			Stage:        string(ev.Stage),
			Action:       ev.Action,
			ActorID:      ev.ActorID,
			Remarks:      ev.Remarks,
			FromStatus:   ev.FromStatus,
			ToStatus:     ev.ToStatus,
			OccurredAt:   ev.OccurredAt,
		})
	}
	return dtos, nil
}
