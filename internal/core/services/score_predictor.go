package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
	"go.uber.org/zap"
)

const (
	DefaultMinSamples = 5
	DefaultNeighbours = 5

	// Confidence grows with history size until this many nights are known.
	fullConfidenceSamples = 20
)

// ScorePredictor picks between a learned primary predictor and the
// duration/interruption heuristic. It never fails: any problem with the
// primary path degrades to the heuristic.
type ScorePredictor struct {
	primary    domain.Predictor
	minSamples int
	logger     *zap.Logger
}

func NewScorePredictor(primary domain.Predictor, minSamples int, logger *zap.Logger) *ScorePredictor {
	if minSamples <= 0 {
		minSamples = DefaultMinSamples
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScorePredictor{
		primary:    primary,
		minSamples: minSamples,
		logger:     logger,
	}
}

func (p *ScorePredictor) Predict(ctx context.Context, history []*domain.SleepEntry, candidate domain.SleepCandidate) (domain.Prediction, error) {
	if p.primary == nil || len(history) < p.minSamples {
		return domain.HeuristicPrediction(candidate), nil
	}

	prediction, err := p.primary.Predict(ctx, history, candidate)
	if err != nil {
		p.logger.Warn("primary predictor failed, using heuristic",
			zap.Int("history", len(history)),
			zap.Error(err),
		)
		return domain.HeuristicPrediction(candidate), nil
	}

	return prediction, nil
}

// KNNPredictor scores a night from the quality of the most similar nights
// in the user's own history.
type KNNPredictor struct {
	k int
}

func NewKNNPredictor(k int) *KNNPredictor {
	if k <= 0 {
		k = DefaultNeighbours
	}
	return &KNNPredictor{k: k}
}

type neighbour struct {
	distance float64
	quality  int
}

func (p *KNNPredictor) Predict(ctx context.Context, history []*domain.SleepEntry, candidate domain.SleepCandidate) (domain.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Prediction{}, err
	}
	if len(history) == 0 {
		return domain.Prediction{}, domain.ErrEmptyInput
	}
	if math.IsNaN(candidate.SleepDuration) || math.IsInf(candidate.SleepDuration, 0) || candidate.SleepDuration < 0 {
		return domain.Prediction{}, fmt.Errorf("%w: sleep duration must be a non-negative number", domain.ErrInvalidArgument)
	}

	withPhases := candidate.DeepSleep+candidate.RemSleep+candidate.LightSleep > 0

	rows := make([][]float64, len(history))
	for i, e := range history {
		rows[i] = features(domain.CandidateFromEntry(e), withPhases)
	}
	mean, std := columnStats(rows)
	target := normalise(features(candidate, withPhases), mean, std)

	neighbours := make([]neighbour, len(history))
	for i, row := range rows {
		neighbours[i] = neighbour{
			distance: euclidean(normalise(row, mean, std), target),
			quality:  history[i].Quality,
		}
	}
	sort.SliceStable(neighbours, func(i, j int) bool {
		return neighbours[i].distance < neighbours[j].distance
	})

	k := min(p.k, len(neighbours))
	var weighted, weights, distances float64
	for _, n := range neighbours[:k] {
		w := 1 / (n.distance + 1e-6)
		weighted += w * float64(n.quality)
		weights += w
		distances += n.distance
	}

	confidence := 1 / (1 + distances/float64(k))
	confidence *= math.Min(1, float64(len(history))/fullConfidenceSamples)
	confidence = math.Round(confidence*100) / 100

	return domain.Prediction{
		Score:           domain.ClampScore(weighted / weights),
		Confidence:      confidence,
		ConfidenceLevel: domain.ConfidenceLevelOf(confidence),
		Message:         fmt.Sprintf("Predicted from your %d most similar nights", k),
		Method:          domain.PredictionMethodKNN,
	}, nil
}

func features(c domain.SleepCandidate, withPhases bool) []float64 {
	f := []float64{c.SleepDuration, float64(c.Interruptions)}
	if !withPhases {
		return f
	}
	var deep, rem, light float64
	if c.SleepDuration > 0 {
		deep = c.DeepSleep / c.SleepDuration
		rem = c.RemSleep / c.SleepDuration
		light = c.LightSleep / c.SleepDuration
	}
	return append(f, deep, rem, light)
}

func columnStats(rows [][]float64) ([]float64, []float64) {
	dims := len(rows[0])
	mean := make([]float64, dims)
	std := make([]float64, dims)

	for _, row := range rows {
		for d, v := range row {
			mean[d] += v
		}
	}
	for d := range mean {
		mean[d] /= float64(len(rows))
	}

	for _, row := range rows {
		for d, v := range row {
			std[d] += (v - mean[d]) * (v - mean[d])
		}
	}
	for d := range std {
		std[d] = math.Sqrt(std[d] / float64(len(rows)))
	}

	return mean, std
}

// normalise z-scores a vector; constant columns carry no signal and become 0.
func normalise(v, mean, std []float64) []float64 {
	out := make([]float64, len(v))
	for d := range v {
		if std[d] == 0 {
			continue
		}
		out[d] = (v[d] - mean[d]) / std[d]
	}
	return out
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for d := range a {
		sum += (a[d] - b[d]) * (a[d] - b[d])
	}
	return math.Sqrt(sum)
}
