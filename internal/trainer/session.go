package trainer

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"neuroforge/internal/dataset"
	"neuroforge/internal/metrics"
	"neuroforge/internal/model"
)

const (
	// DefaultLearningRate replaces non-positive or non-finite learning rates.
	DefaultLearningRate = 0.5
	// DefaultSpeed replaces non-positive or non-finite speeds.
	DefaultSpeed = 1.0
	// InitialLoss is reported before the first epoch and after Reset.
	InitialLoss = 1.0
)

// Options seed a new Session. Zero values fall back to defaults.
type Options struct {
	HiddenLayers []int
	Examples     []model.Example
	LearningRate float64
	Speed        float64
	Seed         int64
}

// Session is the mutable training state around an immutable Network.
// It has a single owner: every method must be called from the goroutine
// driving the epochs. Each mutator swaps whole values, so snapshots handed
// out earlier are never modified.
type Session struct {
	id  uuid.UUID
	rng *rand.Rand

	topology     model.Topology
	network      *model.Network
	examples     *dataset.Set
	epoch        int
	loss         float64
	learningRate float64
	speed        float64
	predictions  []float64
	running      bool
}

// NewSession builds a session with a freshly initialized Network.
func NewSession(opts Options) *Session {
	hidden := opts.HiddenLayers
	if len(hidden) == 0 {
		hidden = []int{model.DefaultLayerSize, model.DefaultLayerSize}
	}
	examples := opts.Examples
	if len(examples) == 0 {
		examples = dataset.XOR()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		id:           uuid.New(),
		rng:          rand.New(rand.NewSource(seed)),
		topology:     model.NewTopology(hidden),
		examples:     dataset.New(examples),
		loss:         InitialLoss,
		learningRate: sanitizeLearningRate(opts.LearningRate),
		speed:        sanitizeSpeed(opts.Speed),
	}
	s.network = model.Initialize(s.topology, s.rng)
	return s
}

// ID identifies the session in log lines.
func (s *Session) ID() uuid.UUID { return s.id }

// Network returns the current Network snapshot.
func (s *Session) Network() *model.Network { return s.network }

// Topology returns a copy of the current layer widths.
func (s *Session) Topology() model.Topology { return append(model.Topology(nil), s.topology...) }

// Examples returns the current training set snapshot.
func (s *Session) Examples() *dataset.Set { return s.examples }

// Epoch returns the number of completed epochs since the last Reset.
func (s *Session) Epoch() int { return s.epoch }

// Loss returns the mean squared error of the last epoch.
func (s *Session) Loss() float64 { return s.loss }

// LearningRate returns the step size used by the next epoch.
func (s *Session) LearningRate() float64 { return s.learningRate }

// Speed returns the cadence multiplier applied by Interval.
func (s *Session) Speed() float64 { return s.speed }

// Running reports whether Run should drive epochs for this session.
func (s *Session) Running() bool { return s.running }

// Predictions returns a copy of the last epoch's predictions, aligned with
// the examples. It is empty until the first epoch completes.
func (s *Session) Predictions() []float64 { return append([]float64(nil), s.predictions...) }

// Accuracy returns the share of examples predicted within metrics.Tolerance.
func (s *Session) Accuracy() float64 {
	if s.examples == nil {
		return 0
	}
	return metrics.Accuracy(s.predictions, s.examples.Targets())
}

// Step runs one epoch regardless of Running; Run consults Running before
// calling it. It reports false and leaves all state untouched when there is
// no network to train.
func (s *Session) Step() bool {
	if s.network == nil || s.examples == nil {
		return false
	}
	res, err := TrainOneEpoch(s.network, s.examples.Examples(), s.learningRate)
	if err != nil {
		return false
	}
	s.network = res.Network
	s.loss = res.Loss
	s.predictions = res.Predictions
	s.epoch++
	return true
}

// Start marks the session as training.
func (s *Session) Start() { s.running = true }

// Pause stops training without touching the Network.
func (s *Session) Pause() { s.running = false }

// Toggle flips between training and paused.
func (s *Session) Toggle() { s.running = !s.running }

// Reset stops training, reinitializes the Network and clears progress.
func (s *Session) Reset() {
	s.running = false
	s.epoch = 0
	s.loss = InitialLoss
	s.network = model.Initialize(s.topology, s.rng)
	s.predictions = nil
}

// SetTopology replaces the hidden layer widths and reinitializes the
// Network. Widths are clamped to [1, 10]; an empty list is rejected.
func (s *Session) SetTopology(hidden []int) bool {
	if len(hidden) == 0 {
		return false
	}
	s.topology = model.NewTopology(hidden)
	s.network = model.Initialize(s.topology, s.rng)
	s.predictions = nil
	return true
}

// AddHiddenLayer appends a hidden layer of the default width.
func (s *Session) AddHiddenLayer() {
	s.SetTopology(append(s.topology.Hidden(), model.DefaultLayerSize))
}

// RemoveHiddenLayer drops hidden layer i. The last hidden layer cannot be
// removed.
func (s *Session) RemoveHiddenLayer(i int) bool {
	hidden := s.topology.Hidden()
	if len(hidden) <= 1 || i < 0 || i >= len(hidden) {
		return false
	}
	return s.SetTopology(append(hidden[:i], hidden[i+1:]...))
}

// ResizeHiddenLayer sets the width of hidden layer i, clamped to [1, 10].
func (s *Session) ResizeHiddenLayer(i, size int) bool {
	hidden := s.topology.Hidden()
	if i < 0 || i >= len(hidden) {
		return false
	}
	hidden[i] = model.ClampLayerSize(size)
	return s.SetTopology(hidden)
}

// SetLearningRate sets the step size; non-positive or non-finite values
// fall back to DefaultLearningRate.
func (s *Session) SetLearningRate(rate float64) {
	s.learningRate = sanitizeLearningRate(rate)
}

// SetSpeed sets the cadence multiplier; non-positive or non-finite values
// fall back to DefaultSpeed.
func (s *Session) SetSpeed(speed float64) {
	s.speed = sanitizeSpeed(speed)
}

// Interval returns the delay between epochs for the given base cadence.
func (s *Session) Interval(base time.Duration) time.Duration {
	d := time.Duration(float64(base) / sanitizeSpeed(s.speed))
	if d <= 0 {
		d = 1
	}
	return d
}

// SetTrainingData replaces the whole example set. Predictions beyond the
// new length are dropped.
func (s *Session) SetTrainingData(examples []model.Example) {
	s.examples = dataset.New(examples)
	s.trimPredictions()
}

// AddExample appends a blank {0, 0} -> 0 example.
func (s *Session) AddExample() {
	s.examples = s.examples.Add()
}

// RemoveExample drops example i and its prediction. The last remaining
// example cannot be removed.
func (s *Session) RemoveExample(i int) bool {
	next, ok := s.examples.Remove(i)
	if !ok {
		return false
	}
	s.examples = next
	if i < len(s.predictions) {
		preds := append([]float64(nil), s.predictions[:i]...)
		s.predictions = append(preds, s.predictions[i+1:]...)
	}
	return true
}

// UpdateExample replaces one component of example i, clamped to [0, 1].
func (s *Session) UpdateExample(i int, field dataset.Field, component int, value float64) bool {
	next, ok := s.examples.Update(i, field, component, value)
	if ok {
		s.examples = next
	}
	return ok
}

// SetWeight replaces weight k of neuron j in parameter layer l.
func (s *Session) SetWeight(l, j, k int, value float64) error {
	if s.network == nil {
		return ErrNoNetwork
	}
	next, err := s.network.WithWeight(l, j, k, finiteOrZero(value))
	if err != nil {
		return errors.Wrap(err, "set weight")
	}
	s.network = next
	return nil
}

// SetBias replaces the bias of neuron j in parameter layer l.
func (s *Session) SetBias(l, j int, value float64) error {
	if s.network == nil {
		return ErrNoNetwork
	}
	next, err := s.network.WithBias(l, j, finiteOrZero(value))
	if err != nil {
		return errors.Wrap(err, "set bias")
	}
	s.network = next
	return nil
}

func (s *Session) trimPredictions() {
	if n := s.examples.Len(); len(s.predictions) > n {
		s.predictions = append([]float64(nil), s.predictions[:n]...)
	}
}

func sanitizeLearningRate(rate float64) float64 {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return DefaultLearningRate
	}
	return rate
}

func sanitizeSpeed(speed float64) float64 {
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return DefaultSpeed
	}
	return speed
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
