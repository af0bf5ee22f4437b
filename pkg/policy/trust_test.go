package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/minute-policy-service/pkg/models"
)

func TestLevelOfThresholds(t *testing.T) {
	cases := map[int]models.TrustLevel{
		0:   models.TrustLevelLow,
		24:  models.TrustLevelLow,
		25:  models.TrustLevelWarning,
		49:  models.TrustLevelWarning,
		50:  models.TrustLevelGood,
		74:  models.TrustLevelGood,
		75:  models.TrustLevelExcellent,
		100: models.TrustLevelExcellent,
	}
	for score, want := range cases {
		got, err := LevelOf(score)
		require.NoError(t, err)
		assert.Equal(t, want, got, "score=%d", score)
	}
}

func TestLevelOfIsMonotonic(t *testing.T) {
	prev := -1
	for score := MinTrustScore; score <= MaxTrustScore; score++ {
		level, err := LevelOf(score)
		require.NoError(t, err)
		rank := LevelRank(level)
		assert.GreaterOrEqual(t, rank, prev, "score=%d", score)
		prev = rank
	}
}

func TestLevelOfRejectsOutOfRange(t *testing.T) {
	for _, score := range []int{-1, 101, 1000} {
		_, err := LevelOf(score)
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = BarColorOf(score)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestBarColorFollowsLevel(t *testing.T) {
	for score := MinTrustScore; score <= MaxTrustScore; score++ {
		level, err := LevelOf(score)
		require.NoError(t, err)
		p, err := PresentationOf(level)
		require.NoError(t, err)
		color, err := BarColorOf(score)
		require.NoError(t, err)
		assert.Equal(t, p.BarColor, color, "score=%d", score)
	}
}

func TestPresentationTableIsExhaustive(t *testing.T) {
	seen := map[models.TrustLevel]bool{}
	for rank, p := range presentations {
		assert.NotEmpty(t, p.Level, "rank %d has no entry", rank)
		assert.NotEmpty(t, p.Color)
		assert.NotEmpty(t, p.BarColor)
		assert.NotEmpty(t, p.PlantStage)
		assert.NotEmpty(t, p.Message)
		assert.Equal(t, rank, LevelRank(p.Level))
		seen[p.Level] = true
	}
	for _, level := range []models.TrustLevel{
		models.TrustLevelLow, models.TrustLevelWarning, models.TrustLevelGood, models.TrustLevelExcellent,
	} {
		assert.True(t, seen[level], "level %s missing", level)
	}

	_, err := PresentationOf("legendary")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPrivilegeUnlockedIsRecomputed(t *testing.T) {
	privileges := []models.Privilege{
		{ID: "1", Name: "Weekend Bonus", RequiredScore: 50},
		{ID: "2", Name: "App Approval", RequiredScore: 60},
		{ID: "3", Name: "Extra Hour", RequiredScore: 70},
		{ID: "4", Name: "Premium Access", RequiredScore: 85},
	}

	for score := MinTrustScore; score <= MaxTrustScore; score++ {
		for _, s := range PrivilegeStates(privileges, score) {
			assert.Equal(t, score >= s.RequiredScore, s.Unlocked)
			assert.Equal(t, PrivilegeUnlocked(s.Privilege, score), s.Unlocked)
		}
	}

	states := PrivilegeStates(privileges, 78)
	assert.True(t, states[2].Unlocked)
	assert.False(t, states[3].Unlocked)
}

func TestTrendOf(t *testing.T) {
	assert.Equal(t, TrendSteady, TrendOf(nil))
	assert.Equal(t, TrendSteady, TrendOf([]models.TrustSample{{Score: 70}}))
	assert.Equal(t, TrendUp, TrendOf([]models.TrustSample{{Score: 65}, {Score: 70}}))
	assert.Equal(t, TrendDown, TrendOf([]models.TrustSample{{Score: 80}, {Score: 78}}))
	assert.Equal(t, TrendSteady, TrendOf([]models.TrustSample{{Score: 1}, {Score: 78}, {Score: 78}}))
}
