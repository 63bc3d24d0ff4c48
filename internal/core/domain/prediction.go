package domain

import (
	"context"
	"math"
)

type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

const (
	PredictionMethodHeuristic = "heuristic"
	PredictionMethodKNN       = "knn"

	HeuristicConfidence = 0.3
	HeuristicMessage    = "Not enough sleep history yet: score estimated from duration and interruptions"
)

// SleepCandidate is the night to score. Phase fields are optional.
type SleepCandidate struct {
	SleepDuration float64 `json:"sleep_duration"`
	DeepSleep     float64 `json:"deep_sleep,omitempty"`
	RemSleep      float64 `json:"rem_sleep,omitempty"`
	LightSleep    float64 `json:"light_sleep,omitempty"`
	Interruptions int     `json:"interruptions"`
}

func CandidateFromEntry(e *SleepEntry) SleepCandidate {
	return SleepCandidate{
		SleepDuration: e.SleepDuration,
		DeepSleep:     e.DeepSleep,
		RemSleep:      e.RemSleep,
		LightSleep:    e.LightSleep,
		Interruptions: e.Interruptions,
	}
}

type Prediction struct {
	Score           int             `json:"score"`
	Confidence      float64         `json:"confidence"`
	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`
	Message         string          `json:"message"`
	Method          string          `json:"method"`
}

type Predictor interface {
	Predict(ctx context.Context, history []*SleepEntry, candidate SleepCandidate) (Prediction, error)
}

func ConfidenceLevelOf(confidence float64) ConfidenceLevel {
	switch {
	case confidence >= 0.7:
		return ConfidenceHigh
	case confidence >= 0.4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// HeuristicScore rates a night from its length and interruptions alone.
// 7-9 hours scores 100; every hour short costs 15 points, every hour over
// costs 10, every interruption 8. Garbage input is clamped, never rejected.
func HeuristicScore(duration float64, interruptions int) int {
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration < 0 {
		duration = 0
	}
	if interruptions < 0 {
		interruptions = 0
	}

	score := 100.0
	switch {
	case duration < 7:
		score -= (7 - duration) * 15
	case duration > 9:
		score -= (duration - 9) * 10
	}
	score -= float64(interruptions) * 8

	return ClampScore(score)
}

func HeuristicPrediction(candidate SleepCandidate) Prediction {
	return Prediction{
		Score:           HeuristicScore(candidate.SleepDuration, candidate.Interruptions),
		Confidence:      HeuristicConfidence,
		ConfidenceLevel: ConfidenceLow,
		Message:         HeuristicMessage,
		Method:          PredictionMethodHeuristic,
	}
}

func ClampScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(MaxQuality, v))))
}
