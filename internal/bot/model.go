package bot

import "sync"

// Model scores candidate moves from the flattened belief-plus-move encoding
// and learns from observed rewards. Implementations must tolerate calls from
// multiple games training in parallel.
type Model interface {
	Predict(features []float64) float64
	PartialFit(inputs [][]float64, targets []float64)
}

// LinearModel is a linear value function trained by stochastic gradient
// descent. It is deliberately simple: the engine's job is producing belief
// vectors and rewards, not sophisticated learning.
type LinearModel struct {
	// mu guards the read-modify-write of the parameters. Parallel games
	// share one model, so unguarded partial fits would race.
	mu           sync.Mutex
	weights      []float64
	bias         float64
	learningRate float64
}

// NewLinearModel creates an untrained model. Weights are sized lazily on
// the first call, since the feature length depends on the player count.
func NewLinearModel(learningRate float64) *LinearModel {
	if learningRate <= 0 {
		learningRate = 1e-6
	}
	return &LinearModel{learningRate: learningRate}
}

// Predict returns the current score for a feature vector.
func (m *LinearModel) Predict(features []float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.predictLocked(features)
}

func (m *LinearModel) predictLocked(features []float64) float64 {
	if len(m.weights) < len(features) {
		m.weights = append(m.weights, make([]float64, len(features)-len(m.weights))...)
	}
	score := m.bias
	for i, f := range features {
		score += m.weights[i] * f
	}
	return score
}

// PartialFit performs one SGD step per sample toward the given targets.
func (m *LinearModel) PartialFit(inputs [][]float64, targets []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, features := range inputs {
		if i >= len(targets) {
			break
		}
		err := targets[i] - m.predictLocked(features)
		step := m.learningRate * err
		for j, f := range features {
			m.weights[j] += step * f
		}
		m.bias += step
	}
}
