package validator

import (
	"errors"
	"testing"
)

type stageUpdate struct {
	Stage       string `json:"stage" validate:"required,stage"`
	Probability *int   `json:"probability" validate:"omitempty,min=0,max=100"`
}

type listQuery struct {
	Source string `form:"lead_source" validate:"omitempty,max=5"`
}

func TestRegisterOneOfIsCaseInsensitive(t *testing.T) {
	val := New()
	if err := val.RegisterOneOf("stage", "New Inquiry", "Closed Won"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := val.Struct(stageUpdate{Stage: "closed won"}); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}
	if err := val.Struct(stageUpdate{Stage: "bogus"}); err == nil {
		t.Fatal("expected unknown stage to be rejected")
	}
}

func TestFieldsUsesRequestNames(t *testing.T) {
	val := New()
	if err := val.RegisterOneOf("stage", "New Inquiry"); err != nil {
		t.Fatalf("register: %v", err)
	}

	tooHigh := 150
	fields := Fields(val.Struct(stageUpdate{Stage: "nope", Probability: &tooHigh}))
	if fields["stage"] != "stage" || fields["probability"] != "max" {
		t.Fatalf("unexpected fields: %v", fields)
	}

	fields = Fields(val.Struct(listQuery{Source: "Instagram"}))
	if fields["lead_source"] != "max" {
		t.Fatalf("expected form name, got %v", fields)
	}
}

func TestFieldsIgnoresOtherErrors(t *testing.T) {
	if Fields(errors.New("boom")) != nil {
		t.Fatal("expected nil for non-validation errors")
	}
}
