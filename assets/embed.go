package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed audio
var assetsFS embed.FS

// SampleRate is the rate every clip is resampled to for playback.
const SampleRate = 44100

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// AudioContext returns the process-wide audio context, creating it on first
// use.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(SampleRate)
		}
	})
	return audioContext
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	return assetsFS.ReadFile(clean)
}

// LoadAudio loads an embedded audio asset by assets-relative path.
func LoadAudio(path string) ([]byte, error) {
	return LoadFile(path)
}

// clipExtensions are tried in order for bare clip names.
var clipExtensions = []string{".wav", ".ogg", ".mp3"}

// ClipPath maps a clip name such as "door_open" to its embedded file.
// Names that already carry an extension pass through.
func ClipPath(clip string) string {
	clip = strings.TrimSpace(clip)
	if clip == "" || filepath.Ext(clip) != "" {
		return clip
	}
	for _, ext := range clipExtensions {
		p := "audio/" + clip + ext
		if _, err := fs.Stat(assetsFS, p); err == nil {
			return p
		}
	}
	return "audio/" + clip + ".wav"
}

// pcmStream is a decoded clip in 16-bit stereo.
type pcmStream interface {
	io.ReadSeeker
	Length() int64
	SampleRate() int
}

// decodeClip decodes by extension. sampleRate <= 0 keeps the file's rate.
func decodeClip(path string, b []byte, sampleRate int) (pcmStream, error) {
	r := bytes.NewReader(b)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		if sampleRate <= 0 {
			return orErr(wav.DecodeWithoutResampling(r))
		}
		return orErr(wav.DecodeWithSampleRate(sampleRate, r))
	case ".ogg":
		if sampleRate <= 0 {
			return orErr(vorbis.DecodeWithoutResampling(r))
		}
		return orErr(vorbis.DecodeWithSampleRate(sampleRate, r))
	case ".mp3":
		if sampleRate <= 0 {
			return orErr(mp3.DecodeWithoutResampling(r))
		}
		return orErr(mp3.DecodeWithSampleRate(sampleRate, r))
	default:
		return nil, fmt.Errorf("unsupported audio format %q", ext)
	}
}

func orErr[S pcmStream](s S, err error) (pcmStream, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

// LoadAudioPlayer loads an embedded audio asset and creates an audio player.
func LoadAudioPlayer(path string) (*audio.Player, error) {
	clip := ClipPath(path)
	b, err := LoadAudio(clip)
	if err != nil {
		return nil, err
	}

	ctx := AudioContext()
	if filepath.Ext(clip) == ".pcm" {
		// Already-decoded PCM in Ebiten's native format.
		return ctx.NewPlayerFromBytes(b), nil
	}
	stream, err := decodeClip(clip, b, ctx.SampleRate())
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return ctx.NewPlayer(stream)
}

// ClipLength reports a clip's duration in seconds without touching the
// audio device.
func ClipLength(path string) (float64, error) {
	clip := ClipPath(path)
	b, err := LoadAudio(clip)
	if err != nil {
		return 0, err
	}
	stream, err := decodeClip(clip, b, 0)
	if err != nil {
		return 0, fmt.Errorf("decode %q: %w", path, err)
	}
	rate := stream.SampleRate()
	if rate <= 0 {
		return 0, fmt.Errorf("decode %q: no sample rate", path)
	}
	// Decoded streams are 16-bit stereo.
	return float64(stream.Length()) / float64(4*rate), nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
