package sbc

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"gorm.io/gorm"

	"po-workflow-backend/internal/domain/event"
	epo "po-workflow-backend/internal/domain/externalpo"
	"po-workflow-backend/internal/domain/fault"
	"po-workflow-backend/internal/domain/uow"
	"po-workflow-backend/internal/domain/user"
	"po-workflow-backend/internal/notify"
	"po-workflow-backend/internal/testutil/eventmock"
	"po-workflow-backend/internal/testutil/externalpomock"
	"po-workflow-backend/internal/testutil/notifymock"
	"po-workflow-backend/internal/testutil/polinemock"
	"po-workflow-backend/internal/testutil/uowmock"
)

func makeActor(userID string, role user.Role) *user.User {
	u := &user.User{UserID: userID, Email: userID + "@example.com", Role: role, IsActive: true}
	u.ApplyRoleDefaults()
	return u
}

func approvedPO() *epo.ExternalPO {
	at := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	pd, admin := "pd-user", "admin-user"
	return &epo.ExternalPO{
		ExternalPOID:      "dddddddddddddddddddddddddddddddd",
		InternalPoID:      "EPO-2026-0011",
		PoIDs:             []string{"PO-1-10"},
		AssignedToSBC:     "sbc-user",
		Status:            epo.StatusApproved,
		PdApprovedBy:      &pd,
		PdApprovedAt:      &at,
		AdminApprovedBy:   &admin,
		AdminApprovedAt:   &at,
		SBCResponseStatus: epo.SBCPending,
		CreatedBy:         "pm-user",
	}
}

func lockedUoW(r uow.Repos, e *epo.ExternalPO) *uowmock.UoW {
	return uowmock.New().WithWithinExternalPOTx(
		func(ctx context.Context, externalPoID string, fn func(uow.Repos, *epo.ExternalPO) error) error {
			if e == nil || e.ExternalPOID != externalPoID {
				return gorm.ErrRecordNotFound
			}
			return fn(r, e)
		})
}

// ----------------------------- Tests -----------------------------

func TestListWork(t *testing.T) {
	epos := &externalpomock.Repo{
		ListSBCWorkFn: func(ctx context.Context, sbcUserID string) ([]epo.ExternalPO, error) {
			if sbcUserID != "sbc-user" {
				return nil, nil
			}
			return []epo.ExternalPO{*approvedPO()}, nil
		},
	}
	uc := NewUsecase(epos, uowmock.New(), notifymock.New(), true)

	dtos, err := uc.ListWork(context.Background(), makeActor("sbc-user", user.RoleSBC))
	if err != nil {
		t.Fatalf("ListWork: %v", err)
	}
	if len(dtos) != 1 || dtos[0].SBCResponseStatus != string(epo.SBCPending) {
		t.Fatalf("dtos: %+v", dtos)
	}

	// another sbc sees an empty queue, a pm sees nothing at all
	if dtos, err := uc.ListWork(context.Background(), makeActor("other-sbc", user.RoleSBC)); err != nil || len(dtos) != 0 {
		t.Fatalf("other sbc: dtos=%v err=%v", dtos, err)
	}
	if _, err := uc.ListWork(context.Background(), makeActor("pm-user", user.RolePM)); !errors.Is(err, fault.ErrAuthorization) {
		t.Fatalf("want authorization error, got %v", err)
	}
}

func TestRespond_Accept(t *testing.T) {
	po := approvedPO()
	epos := &externalpomock.Repo{SaveFn: func(ctx context.Context, e *epo.ExternalPO) error { return nil }}
	events := &eventmock.Repo{}
	notifier := notifymock.New()
	uc := NewUsecase(epos, lockedUoW(uow.Repos{ExternalPOs: epos, Events: events}, po), notifier, true)

	dto, err := uc.Respond(context.Background(), makeActor("sbc-user", user.RoleSBC), po.ExternalPOID, RespondInput{Action: "accept"})
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if dto.Status != string(epo.StatusApproved) || dto.SBCResponseStatus != string(epo.SBCAccepted) || dto.SBCAcceptedAt == nil {
		t.Fatalf("dto: %+v", dto)
	}

	evs := events.Created()
	if len(evs) != 1 || evs[0].Stage != event.StageSBC || evs[0].Action != "ACCEPT" {
		t.Fatalf("events: %+v", evs)
	}
	if evs[0].FromStatus != string(epo.SBCPending) || evs[0].ToStatus != string(epo.SBCAccepted) {
		t.Fatalf("event statuses: %+v", evs[0])
	}
	if ntf := notifier.Events(); len(ntf) != 1 || ntf[0].Kind != notify.KindSBCResponded {
		t.Fatalf("notifications: %+v", ntf)
	}
}

func TestRespond_RejectReleasesLines(t *testing.T) {
	po := approvedPO()
	var released []string
	polines := &polinemock.Repo{
		ReleaseAllFn: func(ctx context.Context, poIDs []string) error {
			released = poIDs
			return nil
		},
	}
	epos := &externalpomock.Repo{SaveFn: func(ctx context.Context, e *epo.ExternalPO) error { return nil }}
	uc := NewUsecase(epos, lockedUoW(uow.Repos{ExternalPOs: epos, PoLines: polines, Events: &eventmock.Repo{}}, po), notifymock.New(), true)

	dto, err := uc.Respond(context.Background(), makeActor("sbc-user", user.RoleSBC), po.ExternalPOID, RespondInput{
		Action:          "REJECT",
		RejectionReason: "no crew available",
	})
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if dto.SBCResponseStatus != string(epo.SBCRejected) || dto.SBCRejectionReason != "no crew available" {
		t.Fatalf("dto: %+v", dto)
	}
	if !reflect.DeepEqual(released, []string{"PO-1-10"}) {
		t.Fatalf("released=%v", released)
	}
}

func TestRespond_Errors(t *testing.T) {
	tests := []struct {
		name    string
		actor   *user.User
		po      func() *epo.ExternalPO
		in      RespondInput
		wantErr error
	}{
		{
			name:    "unknown action",
			actor:   makeActor("sbc-user", user.RoleSBC),
			po:      approvedPO,
			in:      RespondInput{Action: "DEFER"},
			wantErr: fault.ErrValidation,
		},
		{
			name:    "pm may not respond",
			actor:   makeActor("pm-user", user.RolePM),
			po:      approvedPO,
			in:      RespondInput{Action: "ACCEPT"},
			wantErr: fault.ErrAuthorization,
		},
		{
			name:    "wrong sbc user",
			actor:   makeActor("other-sbc", user.RoleSBC),
			po:      approvedPO,
			in:      RespondInput{Action: "ACCEPT"},
			wantErr: fault.ErrAuthorization,
		},
		{
			name:  "not approved yet",
			actor: makeActor("sbc-user", user.RoleSBC),
			po: func() *epo.ExternalPO {
				e := approvedPO()
				e.Status = epo.StatusPendingAdmin
				return e
			},
			in:      RespondInput{Action: "ACCEPT"},
			wantErr: fault.ErrState,
		},
		{
			name:  "second response",
			actor: makeActor("sbc-user", user.RoleSBC),
			po: func() *epo.ExternalPO {
				e := approvedPO()
				e.SBCResponseStatus = epo.SBCAccepted
				return e
			},
			in:      RespondInput{Action: "ACCEPT"},
			wantErr: fault.ErrState,
		},
		{
			name:    "reject without reason",
			actor:   makeActor("sbc-user", user.RoleSBC),
			po:      approvedPO,
			in:      RespondInput{Action: "REJECT"},
			wantErr: fault.ErrValidation,
		},
		{
			name:    "missing record",
			actor:   makeActor("sbc-user", user.RoleSBC),
			po:      func() *epo.ExternalPO { return nil },
			in:      RespondInput{Action: "ACCEPT"},
			wantErr: fault.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			epos := &externalpomock.Repo{SaveFn: func(ctx context.Context, e *epo.ExternalPO) error { return nil }}
			uc := NewUsecase(epos, lockedUoW(uow.Repos{ExternalPOs: epos, Events: &eventmock.Repo{}}, tt.po()), notifymock.New(), true)

			_, err := uc.Respond(context.Background(), tt.actor, "dddddddddddddddddddddddddddddddd", tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
		})
	}
}
