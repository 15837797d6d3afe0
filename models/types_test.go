// ABOUTME: Tests for model validation and record identity
// ABOUTME: Covers required fields, email/range tags, and friendly messages
package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestValidatePartner(t *testing.T) {
	valid := Partner{Name: "Trattoria Nonna", Email: "ciao@nonna.example", Status: PartnerActive}
	if err := Validate(valid); err != nil {
		t.Errorf("valid partner rejected: %v", err)
	}

	if err := Validate(Partner{}); err == nil {
		t.Error("missing name should fail validation")
	} else if !strings.Contains(err.Error(), "name is required") {
		t.Errorf("error = %q, want a friendly required message", err)
	}

	bad := Partner{Name: "X", Email: "not-an-email"}
	if err := Validate(bad); err == nil {
		t.Error("invalid email should fail validation")
	} else if !strings.Contains(err.Error(), "email is not a valid email") {
		t.Errorf("error = %q, want a friendly email message", err)
	}
}

func TestValidateFeedbackRating(t *testing.T) {
	tests := []struct {
		rating int
		ok     bool
	}{
		{0, false},
		{1, true},
		{3, true},
		{5, true},
		{6, false},
	}

	for _, tt := range tests {
		err := Validate(Feedback{Rating: tt.rating})
		if (err == nil) != tt.ok {
			t.Errorf("rating %d: err = %v, want ok=%v", tt.rating, err, tt.ok)
		}
	}
}

func TestValidateReservation(t *testing.T) {
	if err := Validate(Reservation{GuestName: "Sam", PartySize: 0}); err == nil {
		t.Error("party size below 1 should fail")
	}
	if err := Validate(Reservation{GuestName: "Sam", PartySize: 4}); err != nil {
		t.Errorf("valid reservation rejected: %v", err)
	}
}

func TestValidateExperience(t *testing.T) {
	if err := Validate(Experience{}); err == nil {
		t.Error("missing title should fail")
	}
	if err := Validate(Experience{Title: "Night Market"}); err != nil {
		t.Errorf("valid experience rejected: %v", err)
	}
}

func TestRecordIDs(t *testing.T) {
	id := uuid.New()

	records := []interface{ RecordID() string }{
		Partner{ID: id},
		Tour{ID: id},
		Event{ID: id},
		Reservation{ID: id},
		Request{ID: id},
		Feedback{ID: id},
	}
	for _, r := range records {
		if r.RecordID() != id.String() {
			t.Errorf("%T.RecordID() = %q, want %q", r, r.RecordID(), id)
		}
	}
}
