package video

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	vidio "github.com/AlexEidt/Vidio"
	"github.com/Eyevinn/mp4ff/mp4"
)

// Frame count origins reported in Info.FrameCountSource.
const (
	CountFromContainer = "mp4"
	CountFromProbe     = "ffprobe"
)

var errNotProgressive = errors.New("not a progressive mp4")

// Info describes a probed video stream.
type Info struct {
	Path             string  `yaml:"path"`
	Codec            string  `yaml:"codec"`
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	Frames           int     `yaml:"frames"`
	FrameRate        float64 `yaml:"frame_rate"`
	Duration         float64 `yaml:"duration_seconds"`
	FrameCountSource string  `yaml:"frame_count_source"`
}

// Probe reads stream metadata. ffprobe (through Vidio) supplies dimensions and
// an estimated frame count; for progressive MP4 the sample table is read
// directly so the count is exact.
func Probe(path string) (Info, error) {
	v, err := vidio.NewVideo(path)
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe: %w", err)
	}
	defer v.Close()

	info := Info{
		Path:             path,
		Codec:            v.Codec(),
		Width:            v.Width(),
		Height:           v.Height(),
		Frames:           v.Frames(),
		FrameRate:        v.FPS(),
		Duration:         v.Duration(),
		FrameCountSource: CountFromProbe,
	}

	if isMP4Path(path) {
		if frames, fps, err := probeMP4File(path); err == nil {
			info.Frames = frames
			if fps > 0 {
				info.FrameRate = fps
			}
			info.FrameCountSource = CountFromContainer
		}
	}

	if info.Frames <= 0 && info.Duration > 0 && info.FrameRate > 0 {
		info.Frames = int(math.Round(info.Duration * info.FrameRate))
	}

	return info, nil
}

func isMP4Path(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".m4v", ".mov":
		return true
	}
	return false
}

func probeMP4File(path string) (frames int, fps float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return probeMP4(f)
}

// probeMP4 returns the sample count and average frame rate of the first video
// track of a progressive MP4.
func probeMP4(reader io.ReadSeeker) (frames int, fps float64, err error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return 0, 0, fmt.Errorf("decode mp4: %w", err)
	}

	if mp4File.IsFragmented() || mp4File.Moov == nil {
		return 0, 0, errNotProgressive
	}

	for _, trak := range mp4File.Moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		if trak.Mdia.Mdhd == nil || trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
			return 0, 0, fmt.Errorf("video track %d: missing sample table", trak.Tkhd.TrackID)
		}
		stbl := trak.Mdia.Minf.Stbl
		if stbl.Stsz == nil || stbl.Stsz.SampleNumber == 0 {
			return 0, 0, fmt.Errorf("video track %d: no samples", trak.Tkhd.TrackID)
		}

		count := int(stbl.Stsz.SampleNumber)
		timescale := trak.Mdia.Mdhd.Timescale
		duration := trak.Mdia.Mdhd.Duration
		if timescale == 0 || duration == 0 {
			return count, 0, nil
		}
		return count, float64(count) * float64(timescale) / float64(duration), nil
	}

	return 0, 0, fmt.Errorf("no video track found")
}
