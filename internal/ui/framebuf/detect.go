package framebuf

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Protocol names accepted by Detect.
const (
	ProtocolAuto      = "auto"
	ProtocolKitty     = "kitty"
	ProtocolSixel     = "sixel"
	ProtocolHalfBlock = "halfblock"
)

const (
	defaultCellWidth  = 8
	defaultCellHeight = 16
)

// stdoutIsTerminal is replaced in tests.
var stdoutIsTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Detect returns the protocol named by override, or the best protocol for
// the current terminal when override is "" or "auto". Graphics protocols are
// only auto-selected when stdout is a terminal; HalfBlock is the fallback.
func Detect(override string) (Protocol, error) {
	switch strings.ToLower(strings.TrimSpace(override)) {
	case ProtocolKitty:
		return KittyProtocol{}, nil
	case ProtocolSixel:
		return NewSixelProtocol(), nil
	case ProtocolHalfBlock:
		return NewHalfBlockProtocol(), nil
	case ProtocolAuto, "":
	default:
		return nil, fmt.Errorf("unknown image protocol %q (want auto, kitty, sixel or halfblock)", override)
	}

	if !stdoutIsTerminal() {
		return NewHalfBlockProtocol(), nil
	}
	if IsKittySupported() {
		return KittyProtocol{}, nil
	}
	if IsSixelSupported() {
		return NewSixelProtocol(), nil
	}
	return NewHalfBlockProtocol(), nil
}

// IsKittySupported checks if the terminal supports Kitty graphics protocol.
func IsKittySupported() bool {
	// Contour sets CONTOUR_PROFILE but doesn't support Kitty protocol.
	// Parent terminal variables can leak into it.
	if os.Getenv("CONTOUR_PROFILE") != "" {
		return false
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	if os.Getenv("TERM_PROGRAM") == "WezTerm" {
		return true
	}
	if os.Getenv("GHOSTTY_RESOURCES_DIR") != "" {
		return true
	}
	// KONSOLE_VERSION is like "220401" for 22.04.01
	if version := os.Getenv("KONSOLE_VERSION"); len(version) >= 4 && version[:4] >= "2204" {
		return true
	}
	return strings.Contains(os.Getenv("TERM"), "kitty")
}

// IsSixelSupported checks if the terminal supports Sixel graphics.
func IsSixelSupported() bool {
	term := os.Getenv("TERM")

	switch os.Getenv("TERM_PROGRAM") {
	case "vscode", "mintty", "iTerm.app", "contour":
		return true
	}
	if term == "foot" || term == "foot-extra" || os.Getenv("CONTOUR_PROFILE") != "" {
		return true
	}
	// xterm only draws sixel when built with --enable-sixel-graphics, which
	// cannot be detected; assume it.
	return term == "xterm" || strings.HasPrefix(term, "xterm-")
}
