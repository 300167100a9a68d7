package keymap

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

var helpContexts = []string{"playback", "slider", "global"}

var shortHelpActions = []Action{
	ActionTogglePause,
	ActionStepBackward,
	ActionStepForward,
	ActionHelp,
	ActionQuit,
}

// Help implements help.KeyMap from bubbles for a set of bindings.
type Help struct {
	byAction map[Action]key.Binding
	groups   [][]key.Binding
}

// NewHelp builds help key bindings from bindings.
func NewHelp(bindings []Binding) Help {
	h := Help{byAction: make(map[Action]key.Binding)}

	byContext := make(map[string][]key.Binding)
	for _, b := range bindings {
		if b.Action == ActionIgnore || len(b.Keys) == 0 {
			continue
		}
		kb := key.NewBinding(
			key.WithKeys(b.Keys...),
			key.WithHelp(helpKeys(b.Keys), strings.ToLower(b.Description)),
		)
		h.byAction[b.Action] = kb
		byContext[b.Context] = append(byContext[b.Context], kb)
	}

	for _, ctx := range helpContexts {
		if group := byContext[ctx]; len(group) > 0 {
			h.groups = append(h.groups, group)
		}
	}
	return h
}

// ShortHelp implements help.KeyMap.
func (h Help) ShortHelp() []key.Binding {
	var out []key.Binding
	for _, a := range shortHelpActions {
		if kb, ok := h.byAction[a]; ok {
			out = append(out, kb)
		}
	}
	return out
}

// FullHelp implements help.KeyMap.
func (h Help) FullHelp() [][]key.Binding {
	return h.groups
}

// helpKeys renders at most two keys for display, spelling out space.
func helpKeys(keys []string) string {
	var shown []string
	for _, k := range keys {
		if k == " " {
			k = "space"
		}
		if len(shown) == 2 {
			break
		}
		if !slices.Contains(shown, k) {
			shown = append(shown, k)
		}
	}
	return strings.Join(shown, "/")
}
