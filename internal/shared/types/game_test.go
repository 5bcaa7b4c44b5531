package types

import "testing"

func TestApplyPartialUpdate(t *testing.T) {
	s := GameState{Installed: true, Launching: true}

	// Unset fields leave flags unchanged.
	s.Apply(StateUpdate{Running: Bool(true)})

	if !s.Installed || !s.Launching || !s.Running {
		t.Errorf("unexpected state after partial update: %+v", s)
	}

	s.Apply(StateUpdate{Launching: Bool(false)})
	if s.Launching {
		t.Error("Launching should be cleared")
	}
	if !s.Running || !s.Installed {
		t.Error("untouched flags must survive the update")
	}
}

func TestApplyEmptyUpdateIsNoop(t *testing.T) {
	s := GameState{Installed: true, Uninstalling: true}
	before := s

	s.Apply(StateUpdate{})

	if s != before {
		t.Errorf("empty update changed state: %+v -> %+v", before, s)
	}
}

func TestBusy(t *testing.T) {
	tests := []struct {
		name  string
		state GameState
		want  bool
	}{
		{"idle installed", GameState{Installed: true}, false},
		{"installing", GameState{Installing: true}, true},
		{"running", GameState{Installed: true, Running: true}, true},
		{"launching", GameState{Installed: true, Launching: true}, true},
		{"uninstalling", GameState{Installed: true, Uninstalling: true}, true},
		{"empty", GameState{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Busy(); got != tt.want {
				t.Errorf("Busy() = %v, want %v", got, tt.want)
			}
		})
	}
}
