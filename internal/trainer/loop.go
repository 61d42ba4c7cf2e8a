package trainer

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"

	"neuroforge/internal/metrics"
)

// DefaultBaseInterval is the delay between epochs at speed 1.
const DefaultBaseInterval = 100 * time.Millisecond

const defaultLogEvery = 100

// Command edits a session between epochs. It runs on the goroutine that
// called Run, so it may call any Session method.
type Command func(*Session)

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	// Epochs stops the loop after this many completed epochs; 0 runs until
	// ctx is cancelled.
	Epochs       int
	LogEvery     int
	BaseInterval time.Duration
	// Commands is drained between ticks. A nil channel disables it.
	Commands <-chan Command
}

// Run drives s one epoch per tick at s.Interval(BaseInterval) while
// s.Running() is true. Ticks that arrive while the session is paused are
// dropped. The ticker is re-armed whenever a command or epoch changes the
// session speed. The session is paused on return.
func Run(ctx context.Context, s *Session, cfg RunConfig) error {
	if s == nil {
		return errors.New("trainer: session is nil")
	}
	if cfg.Epochs < 0 {
		return errors.Errorf("trainer: epochs must be >= 0 (got %d)", cfg.Epochs)
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = defaultLogEvery
	}
	if cfg.BaseInterval <= 0 {
		cfg.BaseInterval = DefaultBaseInterval
	}

	defer s.Pause()

	interval := s.Interval(cfg.BaseInterval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	rearm := func() {
		if next := s.Interval(cfg.BaseInterval); next != interval {
			interval = next
			ticker.Reset(interval)
		}
	}

	log.Printf("session=%s start topology=%v learning_rate=%.3f speed=%.2f interval=%s running=%t",
		s.ID(), []int(s.Topology()), s.LearningRate(), s.Speed(), interval, s.Running())

	commands := cfg.Commands
	var window metrics.Window
	completed := 0
	for cfg.Epochs == 0 || completed < cfg.Epochs {
		select {
		case <-ctx.Done():
			logStop(s)
			return ctx.Err()
		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			if cmd != nil {
				cmd(s)
			}
			rearm()
			continue
		case <-ticker.C:
		}

		if !s.Running() {
			continue
		}
		start := time.Now()
		if !s.Step() {
			continue
		}
		window.Record(time.Since(start), s.Loss(), s.Accuracy())
		completed++

		if s.Epoch()%cfg.LogEvery == 0 {
			snap := window.Snapshot()
			log.Printf("epoch=%d loss=%.6f accuracy=%d%% epochs_per_sec=%.1f compute_ms=%.3f",
				s.Epoch(),
				snap.LastLoss,
				snap.Accuracy,
				snap.EpochsPerSec,
				snap.AvgComputeMS,
			)
		}
		rearm()
	}

	logStop(s)
	return nil
}

func logStop(s *Session) {
	log.Printf("session=%s stop epoch=%d loss=%.6f accuracy=%d%%",
		s.ID(), s.Epoch(), s.Loss(), metrics.Percent(s.Accuracy()))
}
