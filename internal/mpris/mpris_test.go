//go:build linux

package mpris

import (
	"strings"
	"testing"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	calls  []string
	seeks  []time.Duration
	status Status
}

func (f *fakePlayer) PlayPause() { f.calls = append(f.calls, "playpause") }
func (f *fakePlayer) Pause()     { f.calls = append(f.calls, "pause") }
func (f *fakePlayer) Play()      { f.calls = append(f.calls, "play") }

func (f *fakePlayer) Seek(offset time.Duration) {
	f.calls = append(f.calls, "seek")
	f.seeks = append(f.seeks, offset)
}

func (f *fakePlayer) SetPosition(pos time.Duration) {
	f.calls = append(f.calls, "set_position")
	f.seeks = append(f.seeks, pos)
}

func (f *fakePlayer) Status() Status { return f.status }

func TestPlayerAdapter_Transport(t *testing.T) {
	fp := &fakePlayer{}
	p := &playerAdapter{player: fp}

	require.NoError(t, p.PlayPause())
	require.NoError(t, p.Pause())
	require.NoError(t, p.Play())
	require.NoError(t, p.Stop())
	require.NoError(t, p.Next())
	require.NoError(t, p.Previous())

	assert.Equal(t, []string{"playpause", "pause", "play", "pause"}, fp.calls)
}

func TestPlayerAdapter_SeekConvertsMicroseconds(t *testing.T) {
	fp := &fakePlayer{}
	p := &playerAdapter{player: fp}

	require.NoError(t, p.Seek(types.Microseconds(-2_000_000)))
	require.NoError(t, p.SetPosition("/org/mpris/MediaPlayer2/Track/1", types.Microseconds(1_500_000)))

	assert.Equal(t, []string{"seek", "set_position"}, fp.calls)
	assert.Equal(t, []time.Duration{-2 * time.Second, 1500 * time.Millisecond}, fp.seeks)
}

func TestPlayerAdapter_Status(t *testing.T) {
	fp := &fakePlayer{status: Status{
		Playing:  true,
		Position: 49360 * time.Millisecond,
		Length:   2 * time.Minute,
		Title:    "clip.mp4",
		Path:     "/videos/clip.mp4",
	}}
	p := &playerAdapter{player: fp}

	status, err := p.PlaybackStatus()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusPlaying, status)

	pos, err := p.Position()
	require.NoError(t, err)
	assert.Equal(t, int64(49_360_000), pos)

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "clip.mp4", meta.Title)
	assert.Equal(t, types.Microseconds(120_000_000), meta.Length)
	assert.True(t, strings.HasPrefix(string(meta.TrackId), "/org/mpris/MediaPlayer2/Track/"))

	fp.status.Playing = false
	status, err = p.PlaybackStatus()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusPaused, status)
}

func TestPlayerAdapter_NoVideoNoMetadata(t *testing.T) {
	p := &playerAdapter{player: &fakePlayer{}}

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Empty(t, meta.Title)
}

func TestPlayerAdapter_Capabilities(t *testing.T) {
	p := &playerAdapter{player: &fakePlayer{}}

	next, _ := p.CanGoNext()
	prev, _ := p.CanGoPrevious()
	seek, _ := p.CanSeek()
	pause, _ := p.CanPause()
	assert.False(t, next)
	assert.False(t, prev)
	assert.True(t, seek)
	assert.True(t, pause)
}

func TestFormatTrackID_StablePerPath(t *testing.T) {
	a := formatTrackID("/videos/a.mp4")
	assert.Equal(t, a, formatTrackID("/videos/a.mp4"))
	assert.NotEqual(t, a, formatTrackID("/videos/b.mp4"))
}
