package family_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/minute-policy-service/pkg/family"
	"liyu1981.xyz/minute-policy-service/pkg/models"
	_ "liyu1981.xyz/minute-policy-service/pkg/testing"
)

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func TestAddApp(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	state := seedChild(t, fam, 60, 120, 50)

	app, err := fam.Control.AddApp(state.ID, &models.AppControl{
		Name:      " YouTube ",
		Category:  "Entertainment",
		IsAllowed: true,
		TimeLimit: intPtr(60),
		TimeUsed:  45,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, "YouTube", app.Name)
	assert.Equal(t, state.ID, app.ChildID)

	_, err = fam.Control.AddApp(state.ID, &models.AppControl{ID: app.ID, Name: "Again"})
	assert.ErrorIs(t, err, family.ErrConflict)

	_, err = fam.Control.AddApp(state.ID, &models.AppControl{Name: "Over", TimeLimit: intPtr(10), TimeUsed: 20})
	assert.ErrorIs(t, err, family.ErrInvalidInput)

	_, err = fam.Control.AddApp("no-such-child", &models.AppControl{Name: "Spotify"})
	assert.ErrorIs(t, err, family.ErrNotFound)

	apps, err := fam.Control.ListApps(state.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, 60, *apps[0].TimeLimit)
}

func TestAppToggles(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	state := seedChild(t, fam, 60, 120, 50)
	app, err := fam.Control.AddApp(state.ID, &models.AppControl{Name: "Instagram", Category: "Social"})
	require.NoError(t, err)
	assert.False(t, app.IsAllowed)

	for n := 0; n < 2; n++ {
		allowed, err := fam.Control.SetAppAllowed(app.ID, true)
		require.NoError(t, err)
		assert.True(t, allowed.IsAllowed)
	}

	paused, err := fam.Control.SetAppPaused(app.ID, true)
	require.NoError(t, err)
	assert.True(t, paused.IsPaused)
	assert.True(t, paused.IsAllowed)

	_, err = fam.Control.SetAppAllowed("no-such-app", true)
	assert.ErrorIs(t, err, family.ErrNotFound)
}

func TestSetAppTimeLimit(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	state := seedChild(t, fam, 60, 120, 50)
	app, err := fam.Control.AddApp(state.ID, &models.AppControl{Name: "Minecraft", IsAllowed: true, TimeUsed: 50})
	require.NoError(t, err)

	limited, err := fam.Control.SetAppTimeLimit(app.ID, intPtr(30))
	require.NoError(t, err)
	require.NotNil(t, limited.TimeLimit)
	assert.Equal(t, 30, *limited.TimeLimit)
	assert.Equal(t, 30, limited.TimeUsed, "usage is clamped to a lower limit")

	cleared, err := fam.Control.SetAppTimeLimit(app.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.TimeLimit)

	_, err = fam.Control.SetAppTimeLimit(app.ID, intPtr(-1))
	assert.ErrorIs(t, err, family.ErrInvalidInput)
}

func TestRecordAppUsage_PausesAndAlertsOnLimit(t *testing.T) {
	_, fam, m := GetMockFamilyWithMemorySqliteDialector(t, useMocks{Alert: true})
	state := seedChild(t, fam, 60, 120, 50)
	app, err := fam.Control.AddApp(state.ID, &models.AppControl{
		Name: "YouTube", IsAllowed: true, TimeLimit: intPtr(60), TimeUsed: 45,
	})
	require.NoError(t, err)

	var raised *models.Alert
	m.Alert.EXPECT().
		RaiseAlert(gomock.Any()).
		DoAndReturn(func(input *models.Alert) (*models.Alert, error) {
			raised = input
			return input, nil
		}).
		Times(1)

	got, err := fam.Control.RecordAppUsage(app.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 55, got.TimeUsed)
	assert.False(t, got.IsPaused)

	got, err = fam.Control.RecordAppUsage(app.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, 60, got.TimeUsed)
	assert.True(t, got.IsPaused)

	// further usage stays capped and does not alert again
	got, err = fam.Control.RecordAppUsage(app.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 60, got.TimeUsed)

	require.NotNil(t, raised)
	assert.Equal(t, state.ID, raised.ChildID)
	assert.Equal(t, "Emma", raised.ChildName)
	assert.Equal(t, models.AlertTypeTimeLimit, raised.Type)
	assert.Contains(t, raised.Description, "YouTube")
}

func TestRecordAppUsage_NoLimit(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{Alert: true})
	state := seedChild(t, fam, 60, 120, 50)
	app, err := fam.Control.AddApp(state.ID, &models.AppControl{Name: "Khan Academy", IsAllowed: true})
	require.NoError(t, err)

	got, err := fam.Control.RecordAppUsage(app.ID, 500)
	require.NoError(t, err)
	assert.Equal(t, 500, got.TimeUsed)

	_, err = fam.Control.RecordAppUsage(app.ID, -1)
	assert.ErrorIs(t, err, family.ErrInvalidInput)
}

func TestAddWebRule(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	state := seedChild(t, fam, 60, 120, 50)

	rule, err := fam.Control.AddWebRule(state.ID, &models.WebsiteRule{Domain: "https://www.Wikipedia.org/wiki/Go", IsAllowed: true, Category: "Education"})
	require.NoError(t, err)
	assert.Equal(t, "wikipedia.org", rule.Domain)

	again, err := fam.Control.AddWebRule(state.ID, &models.WebsiteRule{Domain: "wikipedia.org", IsAllowed: true})
	require.NoError(t, err)
	assert.Equal(t, rule.ID, again.ID)
	assert.Equal(t, "Education", again.Category)

	moved, err := fam.Control.AddWebRule(state.ID, &models.WebsiteRule{Domain: "wikipedia.org", IsAllowed: false})
	require.NoError(t, err)
	assert.Equal(t, rule.ID, moved.ID)
	assert.False(t, moved.IsAllowed)

	_, err = fam.Control.AddWebRule(state.ID, &models.WebsiteRule{Domain: "not a domain", IsAllowed: true})
	assert.ErrorIs(t, err, family.ErrInvalidInput)

	_, err = fam.Control.AddWebRule("no-such-child", &models.WebsiteRule{Domain: "tiktok.com"})
	assert.ErrorIs(t, err, family.ErrNotFound)
}

func TestListAndRemoveWebRules(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	state := seedChild(t, fam, 60, 120, 50)

	for _, r := range []models.WebsiteRule{
		{Domain: "reddit.com", IsAllowed: false},
		{Domain: "khanacademy.org", IsAllowed: true},
		{Domain: "tiktok.com", IsAllowed: false},
	} {
		_, err := fam.Control.AddWebRule(state.ID, &r)
		require.NoError(t, err)
	}

	all, err := fam.Control.ListWebRules(state.ID, nil)
	require.NoError(t, err)
	domains := func(rules []models.WebsiteRule) []string {
		out := make([]string, len(rules))
		for i, r := range rules {
			out[i] = r.Domain
		}
		return out
	}
	assert.Equal(t, []string{"khanacademy.org", "reddit.com", "tiktok.com"}, domains(all))

	blocked, err := fam.Control.ListWebRules(state.ID, boolPtr(false))
	require.NoError(t, err)
	assert.Equal(t, []string{"reddit.com", "tiktok.com"}, domains(blocked))

	allowed, err := fam.Control.ListWebRules(state.ID, boolPtr(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"khanacademy.org"}, domains(allowed))

	require.NoError(t, fam.Control.RemoveWebRule(blocked[0].ID))
	require.NoError(t, fam.Control.RemoveWebRule(blocked[0].ID), "removing twice is fine")

	blocked, err = fam.Control.ListWebRules(state.ID, boolPtr(false))
	require.NoError(t, err)
	assert.Equal(t, []string{"tiktok.com"}, domains(blocked))
}

func TestWebRuleNotify(t *testing.T) {
	_, fam, m := GetMockFamilyWithMemorySqliteDialector(t, useMocks{Notifier: true})

	m.Notifier.EXPECT().Notify(gomock.Any()).Times(1)
	state := seedChild(t, fam, 60, 120, 50)

	var kinds []models.EventKind
	m.Notifier.EXPECT().Notify(gomock.Any()).Do(func(event models.Event) {
		kinds = append(kinds, event.Kind)
	}).Times(2)

	rule, err := fam.Control.AddWebRule(state.ID, &models.WebsiteRule{Domain: "twitter.com"})
	require.NoError(t, err)
	require.NoError(t, fam.Control.RemoveWebRule(rule.ID))

	assert.Equal(t, []models.EventKind{models.EventWebRulesUpdated, models.EventWebRulesUpdated}, kinds)
}
