package framebuf

import "testing"

func clearTerminalEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONTOUR_PROFILE", "KITTY_WINDOW_ID", "TERM", "TERM_PROGRAM",
		"GHOSTTY_RESOURCES_DIR", "KONSOLE_VERSION",
	} {
		t.Setenv(k, "")
	}
}

func withTerminal(t *testing.T, isTerm bool) {
	t.Helper()
	prev := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return isTerm }
	t.Cleanup(func() { stdoutIsTerminal = prev })
}

func TestDetect_Override(t *testing.T) {
	clearTerminalEnv(t)
	withTerminal(t, false)

	tests := []struct {
		override string
		want     string
	}{
		{"kitty", ProtocolKitty},
		{"Sixel", ProtocolSixel},
		{" halfblock ", ProtocolHalfBlock},
		{"auto", ProtocolHalfBlock},
		{"", ProtocolHalfBlock},
	}
	for _, tt := range tests {
		p, err := Detect(tt.override)
		if err != nil {
			t.Errorf("Detect(%q) error: %v", tt.override, err)
			continue
		}
		if p.Name() != tt.want {
			t.Errorf("Detect(%q) = %s, want %s", tt.override, p.Name(), tt.want)
		}
	}
}

func TestDetect_Unknown(t *testing.T) {
	if _, err := Detect("ascii"); err == nil {
		t.Error("Detect() should reject unknown protocol names")
	}
}

func TestDetect_Auto(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"kitty window", map[string]string{"KITTY_WINDOW_ID": "1"}, ProtocolKitty},
		{"wezterm", map[string]string{"TERM_PROGRAM": "WezTerm"}, ProtocolKitty},
		{"new konsole", map[string]string{"KONSOLE_VERSION": "230801"}, ProtocolKitty},
		{"old konsole", map[string]string{"KONSOLE_VERSION": "210401"}, ProtocolHalfBlock},
		{"foot", map[string]string{"TERM": "foot"}, ProtocolSixel},
		{"contour leaks kitty env", map[string]string{"CONTOUR_PROFILE": "x", "KITTY_WINDOW_ID": "1"}, ProtocolSixel},
		{"xterm", map[string]string{"TERM": "xterm-256color"}, ProtocolSixel},
		{"linux console", map[string]string{"TERM": "linux"}, ProtocolHalfBlock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTerminalEnv(t)
			withTerminal(t, true)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			p, err := Detect("")
			if err != nil {
				t.Fatalf("Detect() error: %v", err)
			}
			if p.Name() != tt.want {
				t.Errorf("Detect() = %s, want %s", p.Name(), tt.want)
			}
		})
	}
}

func TestDetect_NotATerminal(t *testing.T) {
	clearTerminalEnv(t)
	withTerminal(t, false)
	t.Setenv("KITTY_WINDOW_ID", "1")

	p, err := Detect("auto")
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if p.Name() != ProtocolHalfBlock {
		t.Errorf("Detect() = %s, want halfblock when stdout is not a terminal", p.Name())
	}
}
