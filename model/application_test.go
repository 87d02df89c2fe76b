package model

import "testing"

func TestApplicationStatusValid(t *testing.T) {
	valid := []ApplicationStatus{ApplicationPending, ApplicationReview, ApplicationApproved, ApplicationRejected}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}

	for _, s := range []ApplicationStatus{"", "accepted", "PENDING", "in_review"} {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestApplicationStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ApplicationStatus
		allowed  bool
	}{
		{ApplicationPending, ApplicationReview, true},
		{ApplicationPending, ApplicationApproved, true},
		{ApplicationPending, ApplicationRejected, true},
		{ApplicationReview, ApplicationApproved, true},
		{ApplicationReview, ApplicationRejected, true},
		{ApplicationReview, ApplicationPending, false},
		{ApplicationApproved, ApplicationRejected, false},
		{ApplicationRejected, ApplicationPending, false},
		{ApplicationApproved, ApplicationPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestIsValidProgram(t *testing.T) {
	for _, p := range []string{ProgramPrimary, ProgramSecondary, ProgramSixthForm} {
		if !IsValidProgram(p) {
			t.Errorf("expected %q to be a valid program", p)
		}
	}
	if IsValidProgram("nursery") {
		t.Error("expected nursery to be rejected")
	}
	if IsValidProgram("") {
		t.Error("expected empty program to be rejected")
	}
}

func TestFormatApplicationNumber(t *testing.T) {
	cases := []struct {
		year, seq int
		want      string
	}{
		{2025, 1, "WG20250001"},
		{2025, 42, "WG20250042"},
		{2026, 9999, "WG20269999"},
		{2026, 10000, "WG202610000"},
	}

	for _, tc := range cases {
		if got := FormatApplicationNumber(tc.year, tc.seq); got != tc.want {
			t.Errorf("FormatApplicationNumber(%d, %d) = %q, want %q", tc.year, tc.seq, got, tc.want)
		}
	}
}
