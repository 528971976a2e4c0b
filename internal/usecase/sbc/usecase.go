package sbc

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
	repo                 epo.Repository
	uow                  uow.UnitOfWork
	notifier             notify.Notifier
	releaseLinesOnReject bool
}

func NewUsecase(repo epo.Repository, tx uow.UnitOfWork, n notify.Notifier, releaseLinesOnReject bool) *Usecase {
	return &Usecase{repo: repo, uow: tx, notifier: n, releaseLinesOnReject: releaseLinesOnReject}
}

func parseAction(s string) (epo.SBCAction, error) {
	switch a := epo.SBCAction(strings.ToUpper(s)); a {
	case epo.SBCActionAccept, epo.SBCActionReject:
		return a, nil
	}
	return "", fault.Validationf("unknown sbc action %q", s)
}

// ListWork returns the actor's open queue: approved POs assigned to them
// that still await a response, newest admin approval first.
func (u *Usecase) ListWork(ctx context.Context, actor *user.User) ([]epouc.ExternalPODTO, error) {
	if !actor.CanViewSBCWork {
		return nil, fault.Authorizationf("user %s may not view sbc work", actor.UserID)
	}
	items, err := u.repo.ListSBCWork(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	dtos := make([]epouc.ExternalPODTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *epouc.ToDTO(&items[i]))
	}
	return dtos, nil
}

// Respond records the SBC's accept or reject. Only the assigned SBC user
// may answer, and only once.
func (u *Usecase) Respond(ctx context.Context, actor *user.User, externalPoID string, in RespondInput) (*epouc.ExternalPODTO, error) {
	action, err := parseAction(in.Action)
	if err != nil {
		return nil, err
	}
	if !actor.CanRespondSBCWork {
		return nil, fault.Authorizationf("user %s may not respond to sbc work", actor.UserID)
	}

	now := time.Now().UTC()
	var dto *epouc.ExternalPODTO

	err = u.uow.WithinExternalPOTx(ctx, externalPoID, func(r uow.Repos, e *epo.ExternalPO) error {
		if e.AssignedToSBC != actor.UserID {
			return fault.Authorizationf("external po %s is assigned to another sbc", externalPoID)
		}

		from := e.SBCResponseStatus
		if err := e.ApplySBCResponse(action, in.RejectionReason, now); err != nil {
			return err
		}
		if err := r.ExternalPOs.Save(ctx, e); err != nil {
			return err
		}

		remarks := ""
		if action == epo.SBCActionReject {
			remarks = in.RejectionReason
		}
		ev := event.NewForTransition(e.ExternalPOID, event.StageSBC, string(action), actor.UserID, remarks,
			string(from), string(e.SBCResponseStatus), now)
		if err := r.Events.Create(ctx, ev); err != nil {
			return err
		}

		if e.SBCResponseStatus == epo.SBCRejected && u.releaseLinesOnReject {
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

	msg := "sbc accepted the work"
	if action == epo.SBCActionReject {
		msg = "sbc rejected the work"
	}
	u.notifier.Publish(notify.Event{
		Kind:         notify.KindSBCResponded,
		ExternalPOID: dto.ExternalPOID,
		InternalPoID: dto.InternalPoID,
		Status:       dto.SBCResponseStatus,
		ActorID:      actor.UserID,
		Message:      msg,
		OccurredAt:   now,
	})
	return dto, nil
}
