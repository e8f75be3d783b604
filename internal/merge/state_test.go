package merge

import (
	"errors"
	"testing"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		event   Event
		want    State
		wantErr error
	}{
		{"idle select valid", StateIdle, Event{Kind: EventSelect, Valid: true}, StateReady, nil},
		{"idle select invalid", StateIdle, Event{Kind: EventSelect}, StateIdle, nil},
		{"ready select invalid", StateReady, Event{Kind: EventSelect}, StateIdle, nil},
		{"merging select keeps merging", StateMerging, Event{Kind: EventSelect, Valid: true}, StateMerging, nil},
		{"ready start", StateReady, Event{Kind: EventMergeStart}, StateMerging, nil},
		{"idle start", StateIdle, Event{Kind: EventMergeStart}, StateIdle, ErrNotReady},
		{"merging start", StateMerging, Event{Kind: EventMergeStart}, StateMerging, ErrMergeInProgress},
		{"done valid", StateMerging, Event{Kind: EventMergeDone, Valid: true}, StateReady, nil},
		{"done invalid", StateMerging, Event{Kind: EventMergeDone}, StateIdle, nil},
		{"done outside merge", StateReady, Event{Kind: EventMergeDone, Valid: true}, StateReady, ErrNotMerging},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.from, tt.event)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("state = %v want %v", got, tt.want)
			}
		})
	}
}

func TestTransitionRejectsUnknownEvent(t *testing.T) {
	if _, err := Transition(StateReady, Event{Kind: EventKind(42)}); err == nil {
		t.Fatal("expected error for unknown event")
	}
}

func TestParseSide(t *testing.T) {
	for in, want := range map[string]Side{"left": Left, " Right ": Right, "LEFT": Left} {
		got, err := ParseSide(in)
		if err != nil || got != want {
			t.Errorf("ParseSide(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseSide("middle"); err == nil {
		t.Error("ParseSide(middle) should fail")
	}
}
