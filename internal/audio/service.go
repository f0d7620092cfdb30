// Package audio synthesizes the rhythm cues: one melody note per hit and a
// downward buzz per miss. Cues are queued and rendered on a worker goroutine so
// callers never block; without an audio device the service stays silent.
package audio

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/piano-fire/internal/core"
)

const (
	sampleRate       = beep.SampleRate(44100)
	defaultQueueSize = 32
	defaultVolume    = 0.3
)

// Sink plays finished streamers.
type Sink interface {
	Play(s beep.Streamer)
	Close()
}

// Options configures a Service.
type Options struct {
	Enabled   bool    // false starts muted
	Volume    float64 // master gain, 0..1; 0 means the default
	QueueSize int
	Logger    *log.Logger
	Sink      Sink // nil opens the system speaker
}

type cueKind int

const (
	cueHit cueKind = iota
	cueMiss
)

type cue struct {
	kind cueKind
	lane int
	freq float64
}

// Service is the cue player used by game sessions.
type Service struct {
	sink    Sink
	volume  float64
	queue   chan cue
	done    chan struct{}
	wg      sync.WaitGroup
	melody  melodyCursor
	logger  *log.Logger
	muted   atomic.Bool
	closed  atomic.Bool
	dropped atomic.Uint64
	once    sync.Once
}

// New creates a cue service. Failure to open the speaker degrades to silence.
func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	vol := opts.Volume
	if vol <= 0 {
		vol = defaultVolume
	}
	vol = core.ClampF(vol, 0, 1)
	size := opts.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}

	s := &Service{
		sink:   opts.Sink,
		volume: vol,
		queue:  make(chan cue, size),
		done:   make(chan struct{}),
		logger: logger.With("component", "audio"),
	}
	s.muted.Store(!opts.Enabled)

	if s.sink == nil {
		sink, err := openSpeaker()
		if err != nil {
			s.logger.Warn("audio unavailable, running silent", "err", err)
		} else {
			s.sink = sink
		}
	}

	if s.sink != nil {
		s.wg.Add(1)
		go s.run()
	}
	return s
}

// Initialize rewinds the melody for a new session.
func (s *Service) Initialize(bpm float64) {
	s.melody.Reset()
	s.logger.Debug("cues initialized", "bpm", bpm)
}

// PlayHit queues the next melody note.
func (s *Service) PlayHit(lane int) {
	freq := s.melody.Next()
	s.enqueue(cue{kind: cueHit, lane: lane, freq: freq})
}

// PlayMiss queues the miss buzz.
func (s *Service) PlayMiss() {
	s.enqueue(cue{kind: cueMiss})
}

// ToggleMute flips the mute state and returns true when now muted.
func (s *Service) ToggleMute() bool {
	for {
		old := s.muted.Load()
		if s.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// IsMuted reports whether cues are suppressed.
func (s *Service) IsMuted() bool {
	return s.muted.Load()
}

// Silent reports whether no audio device is attached.
func (s *Service) Silent() bool {
	return s.sink == nil
}

// Dropped returns how many cues were discarded because the queue was full.
func (s *Service) Dropped() uint64 {
	return s.dropped.Load()
}

// Close stops the worker and releases the device. Safe to call repeatedly.
func (s *Service) Close() {
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.done)
		s.wg.Wait()
		if s.sink != nil {
			s.sink.Close()
		}
	})
}

func (s *Service) enqueue(c cue) {
	if s.closed.Load() || s.muted.Load() || s.sink == nil {
		return
	}
	select {
	case s.queue <- c:
	default:
		s.dropped.Add(1)
	}
}

func (s *Service) run() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case c := <-s.queue:
			s.play(c)
		}
	}
}

func (s *Service) play(c cue) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("cue playback failed", "panic", r)
		}
	}()

	switch c.kind {
	case cueHit:
		s.sink.Play(HitSound(c.freq, s.volume, sampleRate))
	case cueMiss:
		s.sink.Play(MissSound(s.volume, sampleRate))
	}
}

// speakerSink mixes cues into the system speaker.
type speakerSink struct {
	mixer *beep.Mixer
}

func openSpeaker() (*speakerSink, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	sink := &speakerSink{mixer: &beep.Mixer{}}
	speaker.Play(sink.mixer)
	return sink, nil
}

func (k *speakerSink) Play(s beep.Streamer) {
	speaker.Lock()
	k.mixer.Add(s)
	speaker.Unlock()
}

func (k *speakerSink) Close() {
	speaker.Lock()
	k.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// Nop is a silent cue player for headless sessions such as SSH clients.
type Nop struct{}

func (Nop) Initialize(float64) {}
func (Nop) PlayHit(int)        {}
func (Nop) PlayMiss()          {}
func (Nop) ToggleMute() bool   { return true }
func (Nop) IsMuted() bool      { return true }
func (Nop) Close()             {}
