package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/scrub/internal/scrub"
	"github.com/llehouerou/scrub/internal/ui/testutil"
	"github.com/llehouerou/scrub/internal/video"
)

// At 80x24 with the short help the frame takes rows 1..20 and the slider sits
// on row 21. The bar of a 0..99 slider starts at column 7 and is 69 wide.
const (
	testWidth   = 80
	testHeight  = 24
	testSlider  = 21
	testBarMid  = 41
	testBarLast = 75
)

type fixture struct {
	src   *video.Mock
	sched *scrub.ManualScheduler
	h     *testutil.Harness
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	src := video.NewMock(100, 25)
	sched := &scrub.ManualScheduler{}
	now := time.Unix(1_700_000_000, 0)

	m, err := New(src, Options{
		Title:    "clip.mp4",
		Schedule: sched.Schedule,
		Now:      func() time.Time { return now },
	})
	require.NoError(t, err)

	h := testutil.NewHarness(m)
	h.SendSize(testWidth, testHeight)
	return &fixture{src: src, sched: sched, h: h}
}

func (f *fixture) model() Model {
	return f.h.Model().(Model)
}

func (f *fixture) tick() tea.Cmd {
	return f.h.SendMsg(FrameTickMsg(time.Time{}))
}

func TestNew_PrimesFirstFrame(t *testing.T) {
	f := newFixture(t)

	m := f.model()
	assert.Equal(t, 0, m.Controller().Index())
	assert.False(t, m.Controller().Paused())
	assert.NotNil(t, m.Init())
}

func TestNew_PrimeFailure(t *testing.T) {
	src := video.NewMock(10, 25)
	src.FailReads(errors.New("decoder gone"))

	_, err := New(src, Options{})

	var re *scrub.ReadError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "prime", re.Op)
}

func TestTick_AdvancesWhilePlaying(t *testing.T) {
	f := newFixture(t)

	for range 3 {
		cmd := f.tick()
		assert.NotNil(t, cmd, "every tick schedules the next one")
	}

	assert.Equal(t, 3, f.model().Controller().Index())
}

func TestKeys_StepPausesAndMoves(t *testing.T) {
	f := newFixture(t)

	f.h.SendSpecialKey(tea.KeyRight)
	m := f.model()
	assert.Equal(t, 1, m.Controller().Index())
	assert.True(t, m.Controller().Paused())

	f.h.SendKey(",")
	assert.Equal(t, 0, f.model().Controller().Index())

	f.tick()
	assert.Equal(t, 0, f.model().Controller().Index(), "paused ticks hold the frame")
}

func TestKeys_TogglePause(t *testing.T) {
	f := newFixture(t)

	f.h.SendKey("p")
	assert.True(t, f.model().Controller().Paused())
	assert.True(t, f.h.ViewContains("⏸"))

	f.h.SendKey("p")
	assert.False(t, f.model().Controller().Paused())
	assert.True(t, f.h.ViewContains("▶"))
}

func TestKeys_PrintTimestamp(t *testing.T) {
	f := newFixture(t)
	f.h.SendSpecialKey(tea.KeyRight)

	f.h.SendKey("t")

	printed := f.model().Printed()
	require.Len(t, printed, 1)
	assert.Equal(t, "frame 1  0:00:00.040", printed[0])
	assert.True(t, f.h.ViewContains("frame 1  0:00:00.040"))
}

func TestKeys_UnknownKeyWarns(t *testing.T) {
	f := newFixture(t)

	f.h.SendKey("z")

	assert.True(t, f.h.ViewContains(`unbound key "z"`))
	assert.False(t, f.model().Controller().Paused())
}

func TestKeys_Quit(t *testing.T) {
	f := newFixture(t)

	cmd := f.h.SendKey("q")

	assert.True(t, testutil.IsQuit(cmd))
	assert.NoError(t, f.model().Err())
	assert.Nil(t, f.tick(), "no tick after quit")
}

func TestKeys_HelpToggle(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.h.ViewContains("first frame"))

	f.h.SendKey("?")
	assert.True(t, f.h.ViewContains("first frame"))

	f.h.SendKey("?")
	assert.False(t, f.h.ViewContains("first frame"))
}

func TestMouse_ClickSeeksAfterDebounce(t *testing.T) {
	f := newFixture(t)

	f.h.SendClick(testBarMid, testSlider)

	m := f.model()
	assert.True(t, m.Controller().Paused())
	assert.Equal(t, 0, m.Controller().Index(), "seek waits for the debounce")
	require.Equal(t, 1, f.sched.Len())

	f.sched.RunAll()
	assert.True(t, f.h.ViewContains("seeking"))

	f.tick()
	assert.Equal(t, 50, f.model().Controller().Index())
	assert.False(t, f.h.ViewContains("seeking"))
}

func TestMouse_DragClampsToBar(t *testing.T) {
	f := newFixture(t)

	f.h.SendClick(testBarMid, testSlider)
	f.h.SendDrag(testBarLast+20, testSlider-3)
	f.h.SendMsg(tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	f.sched.RunAll()
	f.tick()
	assert.Equal(t, 99, f.model().Controller().Index())

	f.h.SendDrag(testBarMid, testSlider)
	assert.Equal(t, 0, f.sched.Len(), "motion after release is ignored")
}

func TestMouse_IgnoresOtherRows(t *testing.T) {
	f := newFixture(t)

	f.h.SendClick(testBarMid, 5)
	f.h.SendClick(2, testSlider)

	assert.Equal(t, 0, f.sched.Len())
	assert.False(t, f.model().Controller().Paused())
}

func TestTick_ReadErrorQuits(t *testing.T) {
	f := newFixture(t)
	f.src.SetReadError(1, errors.New("corrupt packet"))

	cmd := f.tick()

	assert.True(t, testutil.IsQuit(cmd))
	var re *scrub.ReadError
	require.ErrorAs(t, f.model().Err(), &re)
	assert.Equal(t, 1, re.Target)
}

func TestView_FillsHeight(t *testing.T) {
	f := newFixture(t)

	view := testutil.StripANSI(f.h.View())
	lines := strings.Split(view, "\n")
	assert.Len(t, lines, testHeight)
	assert.Contains(t, lines[0], "clip.mp4")
	assert.Contains(t, lines[testSlider], "99")
}

func TestView_EmptyBeforeSize(t *testing.T) {
	m, err := New(video.NewMock(10, 25), Options{})
	require.NoError(t, err)

	assert.Empty(t, m.View())
}

func TestRemote_PlayPauseAndStatus(t *testing.T) {
	f := newFixture(t)
	f.tick()
	f.tick()

	var sent []tea.Msg
	r := f.model().Remote(func(msg tea.Msg) { sent = append(sent, msg) })

	st := r.Status()
	assert.True(t, st.Playing)
	assert.Equal(t, 80*time.Millisecond, st.Position)
	assert.Equal(t, 4*time.Second, st.Length)
	assert.Equal(t, "clip.mp4", st.Title)

	r.PlayPause()
	require.Len(t, sent, 1)
	f.h.SendMsg(sent[0])

	assert.True(t, f.model().Controller().Paused())
	assert.False(t, r.Status().Playing, "status follows the update")

	f.h.SendMsg(RemoteMsg{Kind: RemotePlay})
	assert.True(t, r.Status().Playing)

	f.h.SendMsg(RemoteMsg{Kind: RemotePause})
	assert.False(t, r.Status().Playing)
}

func TestRemote_SetPositionSeeksThroughDebounce(t *testing.T) {
	f := newFixture(t)

	var sent []tea.Msg
	r := f.model().Remote(func(msg tea.Msg) { sent = append(sent, msg) })
	r.SetPosition(2 * time.Second)
	require.Len(t, sent, 1)
	assert.Equal(t, RemoteMsg{Kind: RemoteSetPosition, Offset: 2 * time.Second}, sent[0])

	f.h.SendMsg(sent[0])
	assert.True(t, f.model().Controller().Paused())
	require.Equal(t, 1, f.sched.Len())

	f.sched.RunAll()
	f.tick()
	assert.Equal(t, 50, f.model().Controller().Index())
	assert.Equal(t, 2*time.Second, r.Status().Position)
}

func TestRemote_SeekIsRelative(t *testing.T) {
	f := newFixture(t)
	for range 10 {
		f.tick()
	}

	f.h.SendMsg(RemoteMsg{Kind: RemoteSeek, Offset: -200 * time.Millisecond})
	f.sched.RunAll()
	f.tick()

	assert.Equal(t, 5, f.model().Controller().Index())
}

func TestRemote_IgnoredAfterQuit(t *testing.T) {
	f := newFixture(t)
	r := f.model().Remote(func(tea.Msg) {})
	f.h.SendKey("q")

	f.h.SendMsg(RemoteMsg{Kind: RemoteSetPosition, Offset: time.Second})

	assert.Equal(t, 0, f.sched.Len())
	assert.False(t, r.Status().Playing)
}
