package input

import "testing"

func TestMapDefaultBindings(t *testing.T) {
	m := DefaultMapper()

	tests := []struct {
		ev       RawEvent
		expected Command
	}{
		{Press("esc"), Quit},
		{Press("q"), Quit},
		{Press("+"), SpeedUp},
		{Press("="), SpeedUp},
		{Press("up"), SpeedUp},
		{Press("-"), SpeedDown},
		{Press("_"), SpeedDown},
		{Press("down"), SpeedDown},
		{Press("x"), None},
		{Press(""), None},
		{Release("esc"), None},
		{Release("+"), None},
		{CloseRequest(), None},
	}

	for _, tc := range tests {
		t.Run(tc.ev.Kind.String()+"/"+tc.ev.Key, func(t *testing.T) {
			if got := m.Map(tc.ev); got != tc.expected {
				t.Errorf("Map(%+v) = %v, expected %v", tc.ev, got, tc.expected)
			}
		})
	}
}

func TestMapCustomBindings(t *testing.T) {
	m := NewMapper(NewBindings([]string{"f"}, []string{"s"}, []string{"x"}))

	if m.Map(Press("f")) != SpeedUp {
		t.Error("f should speed up")
	}
	if m.Map(Press("s")) != SpeedDown {
		t.Error("s should slow down")
	}
	if m.Map(Press("x")) != Quit {
		t.Error("x should quit")
	}
	if m.Map(Press("esc")) != None {
		t.Error("esc is not bound in the custom map")
	}
}

func TestBindingsHelp(t *testing.T) {
	b := DefaultBindings()

	if got := b.Faster.Help().Key; got != "+/=" {
		t.Errorf("Faster help key = %q, expected %q", got, "+/=")
	}
	if got := b.Quit.Help().Desc; got != "quit" {
		t.Errorf("Quit help desc = %q, expected %q", got, "quit")
	}
	if len(b.ShortHelp()) != 3 {
		t.Errorf("ShortHelp() has %d bindings, expected 3", len(b.ShortHelp()))
	}
	if len(b.FullHelp()) != 2 {
		t.Errorf("FullHelp() has %d columns, expected 2", len(b.FullHelp()))
	}
}

func TestCommandString(t *testing.T) {
	tests := map[Command]string{
		None:        "None",
		SpeedUp:     "SpeedUp",
		SpeedDown:   "SpeedDown",
		Quit:        "Quit",
		Command(99): "Unknown",
	}
	for c, expected := range tests {
		if c.String() != expected {
			t.Errorf("Command(%d).String() = %q, expected %q", int(c), c.String(), expected)
		}
	}
}
