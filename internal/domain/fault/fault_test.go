package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestConstructors_WrapTheirKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"validation", Validationf("po_ids must not be empty"), ErrValidation},
		{"authorization", Authorizationf("user %s cannot assign", "u1"), ErrAuthorization},
		{"state", Statef("status is %s", "APPROVED"), ErrState},
		{"not found", NotFoundf("external po %s", "x"), ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Fatalf("errors.Is(%v, kind) = false", tt.err)
			}
			// no cross-classification
			for _, other := range []error{ErrValidation, ErrAuthorization, ErrState, ErrNotFound} {
				if other != tt.kind && errors.Is(tt.err, other) {
					t.Fatalf("%v wrongly matches %v", tt.err, other)
				}
			}
		})
	}
}

func TestConstructors_KeepMessageContext(t *testing.T) {
	err := Statef("cannot submit while %s", "REJECTED")
	want := "state error: cannot submit while REJECTED"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestWrappedDeeper_StillClassifies(t *testing.T) {
	inner := Validationf("bad line set")
	outer := fmt.Errorf("create draft: %w", inner)
	if !errors.Is(outer, ErrValidation) {
		t.Fatalf("wrapping lost the kind: %v", outer)
	}
}
