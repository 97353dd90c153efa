package reactive

import "testing"

func TestSignalGetSet(t *testing.T) {
	s := NewSignal(1)
	if s.Get() != 1 {
		t.Errorf("Get() = %d, want 1", s.Get())
	}
	s.Set(2)
	if s.Peek() != 2 {
		t.Errorf("Peek() = %d, want 2", s.Peek())
	}
	s.Update(func(n int) int { return n * 10 })
	if s.Peek() != 20 {
		t.Errorf("after Update = %d, want 20", s.Peek())
	}
}

func TestSignalIDsAreUnique(t *testing.T) {
	a, b := NewSignal(0), NewSignal(0)
	if a.ID() == b.ID() {
		t.Error("signals should have distinct IDs")
	}
}

func TestSignalSetSameValueDoesNotNotify(t *testing.T) {
	s := NewSignal("x")
	runs := 0
	NewEffect(func() {
		s.Get()
		runs++
	})
	s.Set("x")
	if runs != 1 {
		t.Errorf("effect ran %d times, want 1", runs)
	}
}

func TestSignalWithEquals(t *testing.T) {
	type point struct{ X, Y int }
	s := NewSignal(point{1, 2}).WithEquals(func(a, b point) bool { return a.X == b.X })
	runs := 0
	NewEffect(func() {
		s.Get()
		runs++
	})
	s.Set(point{1, 99})
	if runs != 1 {
		t.Errorf("custom equality ignored, runs = %d", runs)
	}
	s.Set(point{2, 0})
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestDefaultEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"same int", 1, 1, true},
		{"different int", 1, 2, false},
		{"mixed dynamic types", 1, "1", false},
		{"string", "a", "a", true},
		{"bool", true, false, false},
		{"float", 1.5, 1.5, true},
		{"slice", []int{1}, []int{1}, true},
		{"nil", nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultEquals[any](tt.a, tt.b); got != tt.want {
				t.Errorf("defaultEquals(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSignalPeekDoesNotTrack(t *testing.T) {
	s := NewSignal(0)
	e := NewEffect(func() { s.Peek() })
	if e.Dependencies() != 0 || s.Subscribers() != 0 {
		t.Error("Peek must not subscribe")
	}
}

func TestSignalSetAny(t *testing.T) {
	s := NewSignal(0)
	if err := s.SetAny(5); err != nil {
		t.Fatalf("SetAny(5): %v", err)
	}
	if s.Peek() != 5 {
		t.Errorf("Peek() = %d", s.Peek())
	}
	if err := s.SetAny("nope"); err == nil {
		t.Error("SetAny with wrong type should fail")
	}
	if err := s.SetAny(nil); err != nil || s.Peek() != 0 {
		t.Errorf("SetAny(nil) should reset to zero, got %d, %v", s.Peek(), err)
	}
}

func TestSignalStringIsTracked(t *testing.T) {
	s := NewSignal(3)
	var seen string
	NewEffect(func() { seen = s.String() })
	s.Set(4)
	if seen != "4" {
		t.Errorf("String() in effect = %q, want 4", seen)
	}
}
