package policy

import (
	"liyu1981.xyz/minute-policy-service/pkg/models"
)

const (
	MinTrustScore = 0
	MaxTrustScore = 100
)

// Level ranks, lowest first. levelCount sizes the presentation table so a new
// level cannot be added without a slot for it.
const (
	rankLow = iota
	rankWarning
	rankGood
	rankExcellent
	levelCount
)

type trustBand struct {
	floor int
	level models.TrustLevel
	rank  int
}

// trustBands is the only threshold table. Level, bar color and plant stage
// all read from it. Sorted by floor, descending.
var trustBands = [levelCount]trustBand{
	{floor: 75, level: models.TrustLevelExcellent, rank: rankExcellent},
	{floor: 50, level: models.TrustLevelGood, rank: rankGood},
	{floor: 25, level: models.TrustLevelWarning, rank: rankWarning},
	{floor: 0, level: models.TrustLevelLow, rank: rankLow},
}

type Presentation struct {
	Level      models.TrustLevel `json:"level"`
	Color      string            `json:"color"`
	BarColor   string            `json:"bar_color"`
	PlantStage string            `json:"plant_stage"`
	Label      string            `json:"label"`
	Message    string            `json:"message"`
}

var presentations = [levelCount]Presentation{
	rankLow: {
		Level:      models.TrustLevelLow,
		Color:      "#dc2626",
		BarColor:   "red",
		PlantStage: "wilted",
		Label:      "Needs Care",
		Message:    "Keep trying! Positive behavior helps your plant grow.",
	},
	rankWarning: {
		Level:      models.TrustLevelWarning,
		Color:      "#f59e0b",
		BarColor:   "amber",
		PlantStage: "sprout",
		Label:      "Growing",
		Message:    "You're making progress! Keep it up!",
	},
	rankGood: {
		Level:      models.TrustLevelGood,
		Color:      "#10b981",
		BarColor:   "green",
		PlantStage: "growing",
		Label:      "Thriving",
		Message:    "Great job! Your plant is thriving!",
	},
	rankExcellent: {
		Level:      models.TrustLevelExcellent,
		Color:      "#059669",
		BarColor:   "emerald",
		PlantStage: "blooming",
		Label:      "Blooming",
		Message:    "Amazing work! Your plant is blooming beautifully!",
	},
}

func ValidateTrustScore(score int) error {
	if score < MinTrustScore || score > MaxTrustScore {
		return invalidf("trust score must be within [%d, %d], got %d", MinTrustScore, MaxTrustScore, score)
	}
	return nil
}

func bandOf(score int) (trustBand, error) {
	if err := ValidateTrustScore(score); err != nil {
		return trustBand{}, err
	}
	for _, band := range trustBands {
		if score >= band.floor {
			return band, nil
		}
	}
	// unreachable, the last band floors at MinTrustScore
	return trustBands[levelCount-1], nil
}

func LevelOf(score int) (models.TrustLevel, error) {
	band, err := bandOf(score)
	if err != nil {
		return "", err
	}
	return band.level, nil
}

// LevelRank orders levels low < warning < good < excellent. Unknown levels
// rank -1.
func LevelRank(level models.TrustLevel) int {
	for _, band := range trustBands {
		if band.level == level {
			return band.rank
		}
	}
	return -1
}

func PresentationOf(level models.TrustLevel) (Presentation, error) {
	rank := LevelRank(level)
	if rank < 0 {
		return Presentation{}, invalidf("unknown trust level %q", level)
	}
	return presentations[rank], nil
}

func BarColorOf(score int) (string, error) {
	band, err := bandOf(score)
	if err != nil {
		return "", err
	}
	return presentations[band.rank].BarColor, nil
}

func PrivilegeUnlocked(p models.Privilege, score int) bool {
	return score >= p.RequiredScore
}

type PrivilegeState struct {
	models.Privilege
	Unlocked bool `json:"unlocked"`
}

func PrivilegeStates(privileges []models.Privilege, score int) []PrivilegeState {
	states := make([]PrivilegeState, len(privileges))
	for i, p := range privileges {
		states[i] = PrivilegeState{Privilege: p, Unlocked: PrivilegeUnlocked(p, score)}
	}
	return states
}

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendSteady Trend = "steady"
)

// TrendOf compares the last two samples, which must be in chronological
// order.
func TrendOf(samples []models.TrustSample) Trend {
	if len(samples) < 2 {
		return TrendSteady
	}
	last, prev := samples[len(samples)-1].Score, samples[len(samples)-2].Score
	switch {
	case last > prev:
		return TrendUp
	case last < prev:
		return TrendDown
	default:
		return TrendSteady
	}
}
