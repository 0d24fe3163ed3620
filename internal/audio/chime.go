// Package audio provides optional chime playback when a banner presents.
package audio

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Chime plays short presentation sounds. Decoded sounds are cached so
// rapid re-triggering does not re-read the file.
type Chime struct {
	mu     sync.Mutex
	logger *slog.Logger

	volume      float64 // 0.0 to 1.0
	initialized bool
	sampleRate  beep.SampleRate

	cacheMu sync.RWMutex
	cache   map[string]*beep.Buffer
}

// NewChime creates a chime player.
func NewChime(logger *slog.Logger) *Chime {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chime{
		logger:     logger,
		volume:     1.0,
		sampleRate: beep.SampleRate(44100),
		cache:      make(map[string]*beep.Buffer),
	}
}

// SetVolume sets the playback volume, clamped to [0, 1].
func (c *Chime) SetVolume(volume float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = math.Min(1, math.Max(0, volume))
}

// Play plays a sound file. Supports WAV, OGG, and MP3. An empty path is
// a no-op so callers can pass unconfigured chimes through unchecked.
func (c *Chime) Play(path string) error {
	if path == "" {
		return nil
	}
	path = expandPath(path)

	c.cacheMu.RLock()
	buffer, ok := c.cache[path]
	c.cacheMu.RUnlock()

	if !ok {
		var err error
		buffer, err = c.load(path)
		if err != nil {
			c.logger.Warn("failed to load chime", "path", path, "error", err)
			return err
		}
		c.cacheMu.Lock()
		c.cache[path] = buffer
		c.cacheMu.Unlock()
	}

	return c.play(buffer)
}

// load decodes a sound file into a buffer.
func (c *Chime) load(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chime file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode chime: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	if err := c.ensureInitialized(format.SampleRate); err != nil {
		return nil, err
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, nil
}

func (c *Chime) ensureInitialized(sampleRate beep.SampleRate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	bufferSize := sampleRate.N(100 * time.Millisecond)
	if err := speaker.Init(sampleRate, bufferSize); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	c.sampleRate = sampleRate
	c.initialized = true
	return nil
}

func (c *Chime) play(buffer *beep.Buffer) error {
	c.mu.Lock()
	volume := c.volume
	sampleRate := c.sampleRate
	c.mu.Unlock()

	var streamer beep.Streamer = buffer.Streamer(0, buffer.Len())
	if buffer.Format().SampleRate != sampleRate {
		streamer = beep.Resample(4, buffer.Format().SampleRate, sampleRate, streamer)
	}
	if volume < 1.0 {
		streamer = &effects.Volume{
			Streamer: streamer,
			Base:     2,
			Volume:   volumeToDecibels(volume),
			Silent:   volume == 0,
		}
	}
	speaker.Play(streamer)
	return nil
}

// volumeToDecibels converts a linear 0-1 volume to a decibel offset for
// the beep volume effect.
func volumeToDecibels(volume float64) float64 {
	if volume <= 0 {
		return -10
	}
	return math.Log2(volume) * 2
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
