package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"strings"
	"testing"

	"po-workflow-backend/internal/domain/event"
	epo "po-workflow-backend/internal/domain/externalpo"
	"po-workflow-backend/internal/domain/uow"
	"po-workflow-backend/internal/domain/user"
	"po-workflow-backend/internal/testutil/eventmock"
	"po-workflow-backend/internal/testutil/externalpomock"
	"po-workflow-backend/internal/testutil/notifymock"
	"po-workflow-backend/internal/testutil/uowmock"
	epouc "po-workflow-backend/internal/usecase/externalpo"
	"po-workflow-backend/internal/usecase/sbc"
)

func newSBCHandler(epos *externalpomock.Repo, tx *uowmock.UoW) *SBCHandler {
	return NewSBCHandler(sbc.NewUsecase(epos, tx, notifymock.New(), true))
}

func approvedPOForSBC(id, creator, sbcID string) *epo.ExternalPO {
	po := draftPO(id, creator)
	po.Status = epo.StatusApproved
	po.AssignedToSBC = sbcID
	return po
}

func TestListSBCWork_ScopedToActor(t *testing.T) {
	e := newEchoWithValidator()
	sbcActor := makeActorWithRole(strings.Repeat("e", 32), user.RoleSBC)
	var gotSBC string
	epos := &externalpomock.Repo{
		ListSBCWorkFn: func(ctx context.Context, sbcUserID string) ([]epo.ExternalPO, error) {
			gotSBC = sbcUserID
			return []epo.ExternalPO{
				*approvedPOForSBC(strings.Repeat("d", 32), strings.Repeat("a", 32), sbcUserID),
			}, nil
		},
	}
	h := newSBCHandler(epos, uowmock.New())

	c, rec := newRequestCtx(e, stdhttp.MethodGet, "/api/sbc/work", nil, sbcActor)

	if err := h.ListSBCWork(c); err != nil {
		t.Fatalf("ListSBCWork error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	if gotSBC != sbcActor.UserID {
		t.Fatalf("work queue queried for %s, want the actor", gotSBC)
	}
	var dtos []epouc.ExternalPODTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dtos); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(dtos) != 1 || dtos[0].Status != string(epo.StatusApproved) {
		t.Fatalf("unexpected queue: %+v", dtos)
	}
}

func TestListSBCWork_Forbidden(t *testing.T) {
	e := newEchoWithValidator()
	h := newSBCHandler(&externalpomock.Repo{}, uowmock.New())

	pm := makeActorWithRole(strings.Repeat("a", 32), user.RolePM)
	c, rec := newRequestCtx(e, stdhttp.MethodGet, "/api/sbc/work", nil, pm)

	if err := h.ListSBCWork(c); err != nil {
		t.Fatalf("ListSBCWork error: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403 (%s)", rec.Code, rec.Body.String())
	}
}

func TestRespondSBC_Accept(t *testing.T) {
	e := newEchoWithValidator()
	sbcActor := makeActorWithRole(strings.Repeat("e", 32), user.RoleSBC)
	po := approvedPOForSBC(strings.Repeat("d", 32), strings.Repeat("a", 32), sbcActor.UserID)

	epos := &externalpomock.Repo{
		SaveFn: func(ctx context.Context, e *epo.ExternalPO) error { return nil },
	}
	events := &eventmock.Repo{}
	h := newSBCHandler(epos, epoLockedUoW(uow.Repos{ExternalPOs: epos, Events: events}, po))

	body := map[string]any{"action": "ACCEPT"}
	c, rec := newRequestCtx(e, stdhttp.MethodPost, "/api/sbc/"+po.ExternalPOID+"/respond", mustJSON(body), sbcActor)
	c.SetParamNames("external_po_id")
	c.SetParamValues(po.ExternalPOID)

	if err := h.RespondSBC(c); err != nil {
		t.Fatalf("RespondSBC error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	var dto epouc.ExternalPODTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.SBCResponseStatus != string(epo.SBCAccepted) {
		t.Fatalf("sbc_response_status = %s, want %s", dto.SBCResponseStatus, epo.SBCAccepted)
	}
	created := events.Created()
	if len(created) != 1 || created[0].Stage != event.StageSBC {
		t.Fatalf("unexpected audit rows: %+v", created)
	}
}

func TestRespondSBC_RejectNeedsReason(t *testing.T) {
	e := newEchoWithValidator()
	sbcActor := makeActorWithRole(strings.Repeat("e", 32), user.RoleSBC)
	po := approvedPOForSBC(strings.Repeat("d", 32), strings.Repeat("a", 32), sbcActor.UserID)

	epos := &externalpomock.Repo{}
	h := newSBCHandler(epos, epoLockedUoW(uow.Repos{ExternalPOs: epos}, po))

	body := map[string]any{"action": "REJECT"}
	c, rec := newRequestCtx(e, stdhttp.MethodPost, "/api/sbc/"+po.ExternalPOID+"/respond", mustJSON(body), sbcActor)
	c.SetParamNames("external_po_id")
	c.SetParamValues(po.ExternalPOID)

	if err := h.RespondSBC(c); err != nil {
		t.Fatalf("RespondSBC error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body.String())
	}
}

func TestRespondSBC_NotAssigned(t *testing.T) {
	e := newEchoWithValidator()
	sbcActor := makeActorWithRole(strings.Repeat("e", 32), user.RoleSBC)
	po := approvedPOForSBC(strings.Repeat("d", 32), strings.Repeat("a", 32), strings.Repeat("c", 32))

	epos := &externalpomock.Repo{}
	h := newSBCHandler(epos, epoLockedUoW(uow.Repos{ExternalPOs: epos}, po))

	body := map[string]any{"action": "ACCEPT"}
	c, rec := newRequestCtx(e, stdhttp.MethodPost, "/api/sbc/"+po.ExternalPOID+"/respond", mustJSON(body), sbcActor)
	c.SetParamNames("external_po_id")
	c.SetParamValues(po.ExternalPOID)

	if err := h.RespondSBC(c); err != nil {
		t.Fatalf("RespondSBC error: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403 (%s)", rec.Code, rec.Body.String())
	}
}
