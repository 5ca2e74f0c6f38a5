package game

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"
	"github.com/pkg/errors"

	"github.com/iburimskiy/liquid-view/internal/config"
)

// ErrUnsupportedAudio is returned for files beep cannot decode.
var ErrUnsupportedAudio = errors.New("unsupported audio file")

var initSpeaker = speaker.Init

// ambient plays a looping background track that pauses together with the
// liquid surfaces.
type ambient struct {
	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	tap         *levelTap
	meter       levelMeter

	path     string
	paused   bool
	initDone bool
}

func decodeAudio(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, errors.Wrap(ErrUnsupportedAudio, ext)
	}
}

// load replaces the current track with the file at path and starts looping it.
func (a *ambient) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open ambient audio")
	}

	streamer, format, err := decodeAudio(path, f)
	if err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "decode %s", filepath.Base(path))
	}

	// streamer -> loop -> tap -> ctrl
	t := newLevelTap(beep.Loop(-1, streamer), config.AudioRingSize)
	ctrl := &beep.Ctrl{Streamer: t, Paused: a.paused}

	bufferSize := format.SampleRate.N(time.Second / 20)
	if !a.initDone || a.format.SampleRate != format.SampleRate {
		if a.initDone {
			speaker.Clear()
		}
		if err := initSpeaker(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			// The previous track was cleared from the speaker above.
			a.closeCurrent()
			return errors.Wrap(err, "init speaker")
		}
		a.initDone = true
	} else {
		speaker.Clear()
	}
	a.closeCurrent()

	a.currentFile = f
	a.streamer = streamer
	a.format = format
	a.ctrl = ctrl
	a.tap = t
	a.path = path

	speaker.Play(ctrl)
	log.Printf("ambient audio: playing %s (%d Hz)", path, format.SampleRate)
	return nil
}

func (a *ambient) closeCurrent() {
	if a.streamer != nil {
		_ = a.streamer.Close()
		a.streamer = nil
	}
	if a.currentFile != nil {
		_ = a.currentFile.Close()
		a.currentFile = nil
	}
	a.ctrl = nil
	a.tap = nil
}

func (a *ambient) loaded() bool { return a.ctrl != nil }

func (a *ambient) setPaused(paused bool) {
	a.paused = paused
	if a.ctrl == nil {
		return
	}
	speaker.Lock()
	a.ctrl.Paused = paused
	speaker.Unlock()
}

// position reports the playback position within the current loop and the
// track length.
func (a *ambient) position() (time.Duration, time.Duration) {
	if a.streamer == nil {
		return 0, 0
	}
	speaker.Lock()
	pos, length := a.streamer.Position(), a.streamer.Len()
	speaker.Unlock()
	return a.format.SampleRate.D(pos), a.format.SampleRate.D(length)
}

func (a *ambient) level() float64 {
	return a.meter.update(a.tap)
}

func (a *ambient) close() {
	if a.initDone {
		speaker.Clear()
	}
	a.closeCurrent()
}

// openAmbientDialog asks for an audio file. A cancelled dialog returns an
// empty path and no error.
func openAmbientDialog() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Ambient Audio"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", errors.Wrap(err, "select ambient audio")
	}
	return filename, nil
}
