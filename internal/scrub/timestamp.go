package scrub

import (
	"fmt"
	"math"
	"time"
)

// Timestamp is a frame position split into hours, minutes and seconds.
// Seconds carries the millisecond fraction.
type Timestamp struct {
	Hours   int
	Minutes int
	Seconds float64
}

// TimestampAt returns the presentation time of frame index at fps.
// A non-positive fps yields the zero timestamp.
func TimestampAt(index int, fps float64) Timestamp {
	if fps <= 0 || index <= 0 {
		return Timestamp{}
	}
	ms := int64(math.Round(float64(index) / fps * 1000))
	return Timestamp{
		Hours:   int(ms / 3_600_000),
		Minutes: int(ms / 60_000 % 60),
		Seconds: float64(ms%60_000) / 1000,
	}
}

// Duration returns the timestamp as a duration, to the millisecond.
func (t Timestamp) Duration() time.Duration {
	ms := int64(t.Hours)*3_600_000 + int64(t.Minutes)*60_000 + int64(math.Round(t.Seconds*1000))
	return time.Duration(ms) * time.Millisecond
}

// String formats as H:MM:SS.mmm.
func (t Timestamp) String() string {
	return fmt.Sprintf("%d:%02d:%06.3f", t.Hours, t.Minutes, t.Seconds)
}
