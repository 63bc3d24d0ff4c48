package domain

type QualityTier string

const (
	QualityExcellent    QualityTier = "excellent"
	QualityGood         QualityTier = "good"
	QualityAverage      QualityTier = "average"
	QualityBelowAverage QualityTier = "below_average"
	QualityPoor         QualityTier = "poor"
)

func QualityTierOf(score int) QualityTier {
	switch {
	case score >= 80:
		return QualityExcellent
	case score >= 60:
		return QualityGood
	case score >= 40:
		return QualityAverage
	case score >= 20:
		return QualityBelowAverage
	default:
		return QualityPoor
	}
}

// Color is the hex colour clients use for the tier.
func (t QualityTier) Color() string {
	switch t {
	case QualityExcellent:
		return "#38A169"
	case QualityGood:
		return "#4299E1"
	case QualityAverage:
		return "#ECC94B"
	case QualityBelowAverage:
		return "#ED8936"
	default:
		return "#E53E3E"
	}
}

type SleepPhase string

const (
	PhaseDeep  SleepPhase = "deep"
	PhaseRem   SleepPhase = "rem"
	PhaseLight SleepPhase = "light"
)

func PhaseColor(phase SleepPhase) string {
	switch phase {
	case PhaseDeep:
		return "#3B82F6"
	case PhaseRem:
		return "#8B5CF6"
	case PhaseLight:
		return "#A5B4FC"
	default:
		return "#CBD5E0"
	}
}
