package request

import "testing"

func TestApprovalRequestResolve(t *testing.T) {
	cases := []struct {
		decision string
		approved bool
		ok       bool
	}{
		{"approved", true, true},
		{"approve", true, true},
		{"  Approved  ", true, true},
		{"rejected", false, true},
		{"reject", false, true},
		{"REJECTED", false, true},
		{"maybe", false, false},
		{"", false, false},
	}

	for _, tc := range cases {
		t.Run(tc.decision, func(t *testing.T) {
			approved, ok := ApprovalRequest{Decision: tc.decision}.Resolve()
			if approved != tc.approved || ok != tc.ok {
				t.Fatalf("Resolve(%q) = (%v, %v), want (%v, %v)", tc.decision, approved, ok, tc.approved, tc.ok)
			}
		})
	}
}

func TestTransitionRequestTarget(t *testing.T) {
	r := TransitionRequest{TargetStatus: " diagnosed "}
	if got := r.Target(); string(got) != "diagnosed" {
		t.Fatalf("expected diagnosed, got %q", got)
	}
}
