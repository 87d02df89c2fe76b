package model

import "testing"

func TestContactStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ContactStatus
		allowed  bool
	}{
		{ContactNew, ContactContacted, true},
		{ContactNew, ContactResolved, false},
		{ContactNew, ContactFollowUp, false},
		{ContactContacted, ContactFollowUp, true},
		{ContactContacted, ContactResolved, true},
		{ContactContacted, ContactNew, false},
		{ContactFollowUp, ContactContacted, true},
		{ContactFollowUp, ContactResolved, true},
		{ContactResolved, ContactContacted, false},
		{ContactResolved, ContactNew, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}
