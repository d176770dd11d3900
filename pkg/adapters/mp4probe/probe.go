// Package mp4probe reads video stream information from MP4 and QuickTime
// containers without decoding any samples.
package mp4probe

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/framestrip/pkg/ports"
)

// ErrNoVideoTrack is returned when the container holds no video track.
var ErrNoVideoTrack = errors.New("mp4probe: no video track found")

// Supports reports whether path looks like an ISO-BMFF container.
func Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".m4v", ".mov":
		return true
	}
	return false
}

// ProbeFile reads the stream information of the first video track in path.
func ProbeFile(path string) (ports.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return Probe(f)
}

// Probe reads the stream information of the first video track.
// Sample payloads are not loaded.
func Probe(reader io.ReadSeeker) (ports.VideoInfo, error) {
	mp4File, err := mp4.DecodeFile(reader, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return ports.VideoInfo{}, fmt.Errorf("seek: %w", err)
	}

	return probeFile(mp4File)
}

func probeFile(mp4File *mp4.File) (ports.VideoInfo, error) {
	var moov *mp4.MoovBox
	if mp4File.IsFragmented() && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		moov = mp4File.Moov
	}
	if moov == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}

	for _, trak := range moov.Traks {
		info, ok := probeTrack(trak)
		if !ok {
			continue
		}
		if mp4File.IsFragmented() {
			info.FrameCount = countFragmentSamples(mp4File, trak.Tkhd.TrackID)
			info.FPS = 0
		}
		return info, nil
	}

	return ports.VideoInfo{}, ErrNoVideoTrack
}

func probeTrack(trak *mp4.TrakBox) (ports.VideoInfo, bool) {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
		return ports.VideoInfo{}, false
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return ports.VideoInfo{}, false
	}
	stbl := trak.Mdia.Minf.Stbl

	var info ports.VideoInfo
	found := false
	for _, child := range stbl.Stsd.Children {
		if entry, ok := child.(*mp4.VisualSampleEntryBox); ok {
			info.Width = int(entry.Width)
			info.Height = int(entry.Height)
			info.Codec = codecName(child.Type())
			found = true
			break
		}
	}
	if !found {
		return ports.VideoInfo{}, false
	}

	if stbl.Stsz != nil {
		info.FrameCount = int(stbl.Stsz.SampleNumber)
	}

	if mdhd := trak.Mdia.Mdhd; mdhd != nil && mdhd.Timescale > 0 && mdhd.Duration > 0 && info.FrameCount > 0 {
		seconds := float64(mdhd.Duration) / float64(mdhd.Timescale)
		info.FPS = float64(info.FrameCount) / seconds
	}

	return info, true
}

func countFragmentSamples(mp4File *mp4.File, trackID uint32) int {
	total := 0
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd == nil || traf.Tfhd.TrackID != trackID {
					continue
				}
				for _, trun := range traf.Truns {
					total += int(trun.SampleCount())
				}
			}
		}
	}
	return total
}

func codecName(sampleEntry string) string {
	switch sampleEntry {
	case "avc1", "avc3":
		return "h264"
	case "hvc1", "hev1":
		return "hevc"
	case "av01":
		return "av1"
	case "vp08":
		return "vp8"
	case "vp09":
		return "vp9"
	case "mp4v":
		return "mpeg4"
	default:
		return sampleEntry
	}
}
