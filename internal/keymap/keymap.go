package keymap

import (
	"fmt"
	"sort"
)

// Binding maps keys to an action and describes it for help.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "slider"
}

// Bindings contains the default key bindings.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "esc", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	// Playback
	{ActionTogglePause, []string{" ", "space", "p"}, "Play/pause", "playback"},
	{ActionStepForward, []string{"right", "l", "."}, "Step one frame forward", "playback"},
	{ActionStepBackward, []string{"left", "h", ","}, "Step one frame back", "playback"},
	{ActionTimestamp, []string{"t"}, "Print timestamp", "playback"},

	// Slider
	{ActionNudgeForward, []string{"shift+right", "L"}, "Seek forward", "slider"},
	{ActionNudgeBack, []string{"shift+left", "H"}, "Seek back", "slider"},
	{ActionFirstFrame, []string{"home", "g"}, "First frame", "slider"},
	{ActionLastFrame, []string{"end", "G"}, "Last frame", "slider"},
}

// WithOverrides returns a copy of base where every action named in overrides
// has its keys replaced. Keys claimed by an override are removed from the
// other bindings so one key never resolves to two actions. Actions that are
// not already present (such as "ignore") are appended in the "global" context.
func WithOverrides(base []Binding, overrides map[string][]string) ([]Binding, error) {
	if len(overrides) == 0 {
		return base, nil
	}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		if !Action(name).Valid() {
			return nil, fmt.Errorf("unknown action %q in key overrides", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	claimed := make(map[string]Action)
	for _, name := range names {
		for _, k := range overrides[name] {
			if prev, ok := claimed[k]; ok {
				return nil, fmt.Errorf("key %q bound to both %q and %q", k, prev, name)
			}
			claimed[k] = Action(name)
		}
	}

	result := make([]Binding, 0, len(base)+len(overrides))
	seen := make(map[Action]bool)
	for _, b := range base {
		if keys, ok := overrides[string(b.Action)]; ok {
			b.Keys = append([]string(nil), keys...)
			seen[b.Action] = true
		} else {
			var kept []string
			for _, k := range b.Keys {
				if _, taken := claimed[k]; !taken {
					kept = append(kept, k)
				}
			}
			b.Keys = kept
		}
		result = append(result, b)
	}

	for _, name := range names {
		if seen[Action(name)] {
			continue
		}
		result = append(result, Binding{
			Action:      Action(name),
			Keys:        append([]string(nil), overrides[name]...),
			Description: string(Action(name)),
			Context:     "global",
		})
	}

	return result, nil
}
