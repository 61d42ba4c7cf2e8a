package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"neuroforge/internal/config"
	"neuroforge/internal/metrics"
	"neuroforge/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (empty uses built-in XOR defaults)")
	hidden := flag.String("hidden", "", "Comma separated hidden layer widths, e.g. 4,3")
	lr := flag.String("lr", "", "Learning rate")
	speed := flag.String("speed", "", "Cadence multiplier applied to the base interval")
	epochs := flag.Int("epochs", 0, "Number of epochs to train")
	logEvery := flag.Int("log-every", 0, "Log every N epochs")
	seed := flag.Int64("seed", 0, "PRNG seed")
	edits := newParamEdits()
	flag.Var(&edits.weights, "weight", "Override a weight as layer:neuron:input=value (repeatable)")
	flag.Var(&edits.biases, "bias", "Override a bias as layer:neuron=value (repeatable)")

	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	overrides := config.Overrides{
		HiddenLayers: trainer.ParseHiddenLayers(*hidden),
		Epochs:       *epochs,
		LogEvery:     *logEvery,
		Seed:         *seed,
	}
	if *lr != "" {
		overrides.LearningRate = trainer.ParseLearningRate(*lr)
	}
	if *speed != "" {
		overrides.Speed = trainer.ParseSpeed(*speed)
	}
	cfg.ApplyOverrides(overrides)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	session := trainer.NewSession(trainer.Options{
		HiddenLayers: cfg.HiddenLayers,
		Examples:     cfg.ModelExamples(),
		LearningRate: cfg.LearningRate,
		Speed:        cfg.Speed,
		Seed:         cfg.Seed,
	})
	if err := edits.apply(session); err != nil {
		log.Fatalf("invalid parameter override: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// SIGUSR1 pauses and resumes training without ending the run.
	toggles := make(chan os.Signal, 1)
	signal.Notify(toggles, syscall.SIGUSR1)
	defer signal.Stop(toggles)

	runCfg := trainer.RunConfig{
		Epochs:       cfg.Epochs,
		LogEvery:     cfg.LogEvery,
		BaseInterval: cfg.BaseInterval,
		Commands:     toggleCommands(ctx, toggles),
	}

	session.Start()
	if err := trainer.Run(ctx, session, runCfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("training failed: %v", err)
	}

	report(session)
}

func toggleCommands(ctx context.Context, sigs <-chan os.Signal) <-chan trainer.Command {
	toggle := func(s *trainer.Session) {
		s.Toggle()
		log.Printf("session=%s running=%t epoch=%d", s.ID(), s.Running(), s.Epoch())
	}
	out := make(chan trainer.Command)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigs:
			}
			select {
			case <-ctx.Done():
				return
			case out <- toggle:
			}
		}
	}()
	return out
}

func report(s *trainer.Session) {
	preds := s.Predictions()
	for i, ex := range s.Examples().Examples() {
		if i >= len(preds) {
			log.Printf("example=%d input=%v target=%g prediction=none", i, ex.Input, ex.Target())
			continue
		}
		log.Printf("example=%d input=%v target=%g prediction=%.3f ok=%t",
			i, ex.Input, ex.Target(), preds[i], metrics.Correct(preds[i], ex.Target()))
	}
	log.Printf("epoch=%d loss=%.6f accuracy=%d%%", s.Epoch(), s.Loss(), metrics.Percent(s.Accuracy()))
}
