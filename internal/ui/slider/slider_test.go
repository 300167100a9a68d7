package slider

import (
	"strings"
	"testing"

	"github.com/llehouerou/scrub/internal/ui/testutil"
)

func TestSetValue_ClampsAndAlwaysNotifies(t *testing.T) {
	m := New(0, 99)
	var got []int
	m.OnChange(func(v int) { got = append(got, v) })

	m.SetValue(10)
	m.SetValue(10)
	m.SetValue(-5)
	m.SetValue(500)

	want := []int{10, 10, 0, 99}
	if len(got) != len(want) {
		t.Fatalf("callbacks = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("callback %d = %d, want %d", i, got[i], want[i])
		}
	}
	if m.Value() != 99 {
		t.Errorf("Value() = %d, want 99", m.Value())
	}
}

func TestSetValue_CallbackSeesNewValue(t *testing.T) {
	m := New(0, 10)
	var seen int
	m.OnChange(func(int) { seen = m.Value() })

	m.SetValue(7)

	if seen != 7 {
		t.Errorf("Value() inside callback = %d, want 7", seen)
	}
}

func TestNew_InvertedRange(t *testing.T) {
	m := New(5, 2)
	if m.Min() != 5 || m.Max() != 5 {
		t.Errorf("range = [%d, %d], want [5, 5]", m.Min(), m.Max())
	}
}

func TestView(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		width   int
		playing bool
		want    string
	}{
		{
			name:    "empty bar playing",
			value:   0,
			width:   40,
			playing: true,
			want:    "▶   0  " + strings.Repeat("░", 29) + "  99",
		},
		{
			name:  "full bar paused",
			value: 99,
			width: 40,
			want:  "⏸  99  " + strings.Repeat("▓", 29) + "  99",
		},
		{
			name:  "too narrow",
			value: 3,
			width: 10,
			want:  "⏸   3 / 99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(0, 99)
			m.SetWidth(tt.width)
			m.SetValue(tt.value)

			got := testutil.StripANSI(m.View(tt.playing))
			if got != tt.want {
				t.Errorf("View() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestView_FillsWidth(t *testing.T) {
	m := New(0, 12345)
	m.SetWidth(80)
	m.SetValue(1234)

	out := m.View(true)
	if w := testutil.MeasureWidth(out); w != 80 {
		t.Errorf("width = %d, want 80", w)
	}
	if msg := testutil.AssertContains(out, " 1,234"); msg != "" {
		t.Error(msg)
	}
	if msg := testutil.AssertContains(out, "12,345"); msg != "" {
		t.Error(msg)
	}
}

func TestValueAt(t *testing.T) {
	m := New(0, 99)
	m.SetWidth(40)
	// "▶   0  " is 7 cells, the bar spans columns 7..35

	tests := []struct {
		x      int
		want   int
		wantOK bool
	}{
		{x: 6, wantOK: false},
		{x: 7, want: 0, wantOK: true},
		{x: 21, want: 50, wantOK: true},
		{x: 35, want: 99, wantOK: true},
		{x: 36, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := m.ValueAt(tt.x)
		if ok != tt.wantOK {
			t.Errorf("ValueAt(%d) ok = %v, want %v", tt.x, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ValueAt(%d) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestValueAt_TooNarrow(t *testing.T) {
	m := New(0, 99)
	m.SetWidth(10)
	if _, ok := m.ValueAt(5); ok {
		t.Error("ValueAt() on a slider without a bar should report false")
	}
}

func TestBarSpan(t *testing.T) {
	m := New(0, 99)
	m.SetWidth(40)
	if start, w := m.BarSpan(); start != 7 || w != 29 {
		t.Errorf("BarSpan() = (%d, %d), want (7, 29)", start, w)
	}

	m.SetWidth(10)
	if _, w := m.BarSpan(); w != 0 {
		t.Errorf("BarSpan() width = %d, want 0 without a bar", w)
	}
}
