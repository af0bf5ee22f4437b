package family_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"liyu1981.xyz/minute-policy-service/pkg/common"
	"liyu1981.xyz/minute-policy-service/pkg/family"
	"liyu1981.xyz/minute-policy-service/pkg/models"
	"liyu1981.xyz/minute-policy-service/pkg/policy"
	_ "liyu1981.xyz/minute-policy-service/pkg/testing"
)

func TestCreateChild(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})

	state := seedChild(t, fam, 125, 240, 78)

	assert.Equal(t, "Emma", state.Name)
	assert.Equal(t, models.TrustLevelExcellent, state.TrustLevel)
	assert.Equal(t, policy.TrendSteady, state.TrustTrend)
	assert.Equal(t, 125, state.Allowance.RemainingMinutes)
	assert.Equal(t, 115, state.Allowance.UsedMinutes)
	assert.Equal(t, policy.AllowancePlenty, state.Allowance.Status)

	require.Len(t, state.Privileges, 4)
	unlocked := map[string]bool{}
	for _, p := range state.Privileges {
		unlocked[p.Name] = p.Unlocked
	}
	assert.Equal(t, map[string]bool{
		"Weekend Bonus":  true,
		"App Approval":   true,
		"Extra Hour":     true,
		"Premium Access": false,
	}, unlocked)

	got, err := fam.Child.GetChild(state.ID)
	require.NoError(t, err)
	assert.Equal(t, state.TrustScore, got.TrustScore)
	assert.Equal(t, state.RemainingTime, got.RemainingTime)
}

func TestCreateChild_FullAllowanceByDefault(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})

	state, err := fam.Child.CreateChild(&models.Child{Name: "Olivia", DailyLimit: 240, TrustScore: 92})
	require.NoError(t, err)
	assert.NotEmpty(t, state.ID)
	assert.Equal(t, 240, state.RemainingTime)
	assert.Equal(t, float64(100), state.Allowance.PercentRemaining)
}

func TestCreateChild_Invalid(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})

	cases := []struct {
		name  string
		input models.Child
	}{
		{"empty name", models.Child{Name: "  ", DailyLimit: 60, TrustScore: 50}},
		{"score too high", models.Child{Name: "Noah", DailyLimit: 60, TrustScore: 101}},
		{"score negative", models.Child{Name: "Noah", DailyLimit: 60, TrustScore: -1}},
		{"remaining above limit", models.Child{Name: "Noah", RemainingTime: 90, DailyLimit: 60, TrustScore: 50}},
		{"negative limit", models.Child{Name: "Noah", DailyLimit: -5, TrustScore: 50}},
		{"privilege out of range", models.Child{Name: "Noah", DailyLimit: 60, TrustScore: 50,
			Privileges: []models.Privilege{{Name: "Extra Hour", RequiredScore: 120}}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := fam.Child.CreateChild(&c.input)
			assert.ErrorIs(t, err, family.ErrInvalidInput)
		})
	}
}

func TestCreateChild_Conflict(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})

	state := seedChild(t, fam, 60, 120, 50)
	_, err := fam.Child.CreateChild(&models.Child{ID: state.ID, Name: "Other", DailyLimit: 60, TrustScore: 10})
	assert.ErrorIs(t, err, family.ErrConflict)
}

func TestGetChild_NotFound(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})

	_, err := fam.Child.GetChild("no-such-child")
	assert.ErrorIs(t, err, family.ErrNotFound)

	_, err = fam.Child.SetPaused("no-such-child", true)
	assert.ErrorIs(t, err, family.ErrNotFound)
}

func TestListChildren(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})

	a := seedChild(t, fam, 60, 120, 30)
	b := seedChild(t, fam, 10, 120, 90)

	children, err := fam.Child.ListChildren()
	require.NoError(t, err)

	found := map[string]models.TrustLevel{}
	for _, c := range children {
		found[c.ID] = c.TrustLevel
	}
	assert.Equal(t, models.TrustLevelWarning, found[a.ID])
	assert.Equal(t, models.TrustLevelExcellent, found[b.ID])
}

func TestSetLocked_Idempotent(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	state := seedChild(t, fam, 60, 120, 50)

	first, err := fam.Child.SetLocked(state.ID, true, "homework", nil)
	require.NoError(t, err)
	second, err := fam.Child.SetLocked(state.ID, true, "homework", nil)
	require.NoError(t, err)

	assert.True(t, first.IsLocked)
	assert.Equal(t, first.IsLocked, second.IsLocked)
	assert.Equal(t, "homework", second.LockReason)

	unlocked, err := fam.Child.SetLocked(state.ID, false, "ignored", nil)
	require.NoError(t, err)
	assert.False(t, unlocked.IsLocked)
	assert.Empty(t, unlocked.LockReason)
}

func TestSetLocked_TimedLockExpires(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	clock := &fakeClock{now: time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)}
	fam.Clock = clock.Now
	state := seedChild(t, fam, 60, 120, 50)

	past := clock.now.Add(-time.Minute)
	_, err := fam.Child.SetLocked(state.ID, true, "", &past)
	assert.ErrorIs(t, err, family.ErrInvalidInput)

	until := clock.now.Add(time.Hour)
	locked, err := fam.Child.SetLocked(state.ID, true, "dinner", &until)
	require.NoError(t, err)
	assert.True(t, locked.IsLocked)
	require.NotNil(t, locked.LockUntil)

	clock.now = clock.now.Add(2 * time.Hour)
	got, err := fam.Child.GetChild(state.ID)
	require.NoError(t, err)
	assert.False(t, got.IsLocked)
	assert.Nil(t, got.LockUntil)
}

func TestSetLocked_ExpiredLockClearedOnWrite(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	clock := &fakeClock{now: time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)}
	fam.Clock = clock.Now
	state := seedChild(t, fam, 60, 120, 50)

	until := clock.now.Add(time.Hour)
	_, err := fam.Child.SetLocked(state.ID, true, "dinner", &until)
	require.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Hour)
	paused, err := fam.Child.SetPaused(state.ID, true)
	require.NoError(t, err)
	assert.True(t, paused.IsPaused)
	assert.False(t, paused.IsLocked)

	var row models.Child
	require.NoError(t, fam.Db.Conn.First(&row, "id = ?", state.ID).Error)
	assert.False(t, row.IsLocked)
	assert.Empty(t, row.LockReason)
	assert.Nil(t, row.LockUntil)
}

func TestSetPaused(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	state := seedChild(t, fam, 60, 120, 50)

	for n := 0; n < 2; n++ {
		paused, err := fam.Child.SetPaused(state.ID, true)
		require.NoError(t, err)
		assert.True(t, paused.IsPaused)
	}

	resumed, err := fam.Child.SetPaused(state.ID, false)
	require.NoError(t, err)
	assert.False(t, resumed.IsPaused)
}

func TestApproveAccess(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	state := seedChild(t, fam, 10, 120, 50)

	_, err := fam.Child.SetLocked(state.ID, true, "bedtime", nil)
	require.NoError(t, err)
	_, err = fam.Child.SetPaused(state.ID, true)
	require.NoError(t, err)

	approved, err := fam.Child.ApproveAccess(state.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, approved.RemainingTime)
	assert.False(t, approved.IsLocked)
	assert.False(t, approved.IsPaused)

	again, err := fam.Child.ApproveAccess(state.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, again.RemainingTime)

	capped, err := fam.Child.ApproveAccess(state.ID, 500)
	require.NoError(t, err)
	assert.Equal(t, 120, capped.RemainingTime)

	_, err = fam.Child.ApproveAccess(state.ID, -1)
	assert.ErrorIs(t, err, family.ErrInvalidInput)
}

func TestRecordUsage_RaisesTimeLimitAlertOnce(t *testing.T) {
	_, fam, m := GetMockFamilyWithMemorySqliteDialector(t, useMocks{Alert: true})
	state := seedChild(t, fam, 30, 120, 50)

	var raised *models.Alert
	m.Alert.EXPECT().
		RaiseAlert(gomock.Any()).
		DoAndReturn(func(input *models.Alert) (*models.Alert, error) {
			raised = input
			return input, nil
		}).
		Times(1)

	used, err := fam.Child.RecordUsage(state.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 10, used.RemainingTime)

	exhausted, err := fam.Child.RecordUsage(state.ID, 45)
	require.NoError(t, err)
	assert.Equal(t, 0, exhausted.RemainingTime)
	assert.Equal(t, policy.AllowanceCritical, exhausted.Allowance.Status)

	// already at zero, no second alert
	_, err = fam.Child.RecordUsage(state.ID, 5)
	require.NoError(t, err)

	require.NotNil(t, raised)
	assert.Equal(t, state.ID, raised.ChildID)
	assert.Equal(t, "Emma", raised.ChildName)
	assert.Equal(t, models.AlertTypeTimeLimit, raised.Type)
	assert.Equal(t, models.SeverityLow, raised.Severity)
}

func TestRecordUsage_AlertFailureDoesNotFailUsage(t *testing.T) {
	_, fam, m := GetMockFamilyWithMemorySqliteDialector(t, useMocks{Alert: true})
	state := seedChild(t, fam, 5, 120, 50)

	m.Alert.EXPECT().RaiseAlert(gomock.Any()).Return(nil, errors.New("store down"))

	got, err := fam.Child.RecordUsage(state.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, got.RemainingTime)
}

func TestRecordUsage_StoresAlertWithLog(t *testing.T) {
	var buf bytes.Buffer
	common.SetTestCaptureLogger(&buf, zap.InfoLevel)
	defer common.SetTestLoggerNop()

	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	state := seedChild(t, fam, 5, 120, 50)

	_, err := fam.Child.RecordUsage(state.ID, 10)
	require.NoError(t, err)

	alerts, err := fam.Alert.ListAlerts(state.ID)
	require.NoError(t, err)
	require.Len(t, alerts.Alerts, 1)
	assert.Equal(t, models.AlertTypeTimeLimit, alerts.Alerts[0].Type)
	assert.Equal(t, 1, alerts.UnreadCount)

	logs := ParseLogs(&buf)
	assert.True(t, findLog(logs, func(lobj map[string]any) bool {
		child, ok := lobj["child"].(map[string]any)
		return lobj["msg"] == "Child command applied" &&
			lobj[common.LoggerFieldCommand] == "record_usage" &&
			ok && child["remaining_time"] == float64(0)
	}), "usage command should be logged with the saved child")
	assert.True(t, findLog(logs, func(lobj map[string]any) bool {
		alert, ok := lobj["alert"].(map[string]any)
		return lobj["msg"] == "Alert saved" && ok && alert["type"] == "time-limit"
	}), "time limit alert should be logged")
}

func TestSetTrustScore(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	state := seedChild(t, fam, 60, 120, 78)

	raised, err := fam.Child.SetTrustScore(state.ID, 90)
	require.NoError(t, err)
	assert.Equal(t, models.TrustLevelExcellent, raised.TrustLevel)
	assert.Equal(t, policy.TrendUp, raised.TrustTrend)
	for _, p := range raised.Privileges {
		assert.True(t, p.Unlocked, p.Name)
	}

	dropped, err := fam.Child.SetTrustScore(state.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, models.TrustLevelWarning, dropped.TrustLevel)
	assert.Equal(t, policy.TrendDown, dropped.TrustTrend)
	for _, p := range dropped.Privileges {
		assert.False(t, p.Unlocked, p.Name)
	}

	// the same score again records nothing new
	_, err = fam.Child.SetTrustScore(state.ID, 40)
	require.NoError(t, err)

	history, err := fam.Child.GetTrustHistory(state.ID)
	require.NoError(t, err)
	scores := common.Mapper(history.Samples, func(s models.TrustSample) int { return s.Score })
	assert.Equal(t, []int{78, 90, 40}, scores)
	assert.Equal(t, policy.TrendDown, history.Trend)

	_, err = fam.Child.SetTrustScore(state.ID, 101)
	assert.ErrorIs(t, err, family.ErrInvalidInput)
}

func TestSetDailyLimitAndResetDay(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	state := seedChild(t, fam, 100, 240, 50)

	app, err := fam.Control.AddApp(state.ID, &models.AppControl{Name: "Minecraft", IsAllowed: true, TimeUsed: 40})
	require.NoError(t, err)

	// 140 minutes used, so a 180 minute limit leaves 40
	lowered, err := fam.Child.SetDailyLimit(state.ID, 180)
	require.NoError(t, err)
	assert.Equal(t, 180, lowered.DailyLimit)
	assert.Equal(t, 40, lowered.RemainingTime)

	floored, err := fam.Child.SetDailyLimit(state.ID, 60)
	require.NoError(t, err)
	assert.Equal(t, 0, floored.RemainingTime)

	reset, err := fam.Child.ResetDay(state.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, reset.RemainingTime)

	apps, err := fam.Control.ListApps(state.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, app.ID, apps[0].ID)
	assert.Equal(t, 0, apps[0].TimeUsed)

	_, err = fam.Child.SetDailyLimit(state.ID, -1)
	assert.ErrorIs(t, err, family.ErrInvalidInput)
}

func TestAddPrivilegeAndSafeSearch(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	state := seedChild(t, fam, 60, 120, 65)

	added, err := fam.Child.AddPrivilege(state.ID, &models.Privilege{Name: "Late Night Movie", RequiredScore: 65})
	require.NoError(t, err)
	require.Len(t, added.Privileges, 5)

	var movie *policy.PrivilegeState
	for i := range added.Privileges {
		if added.Privileges[i].Name == "Late Night Movie" {
			movie = &added.Privileges[i]
		}
	}
	require.NotNil(t, movie)
	assert.True(t, movie.Unlocked)

	_, err = fam.Child.AddPrivilege(state.ID, &models.Privilege{Name: "", RequiredScore: 10})
	assert.ErrorIs(t, err, family.ErrInvalidInput)

	on, err := fam.Child.SetSafeSearch(state.ID, true)
	require.NoError(t, err)
	assert.True(t, on.SafeSearch)
}

func TestChildCommandsNotify(t *testing.T) {
	_, fam, m := GetMockFamilyWithMemorySqliteDialector(t, useMocks{Notifier: true})

	childID := uuid.NewString()
	m.Notifier.EXPECT().Notify(gomock.Any()).Do(func(event models.Event) {
		assert.Equal(t, models.EventChildUpdated, event.Kind)
		assert.Equal(t, childID, event.ChildID)
		assert.IsType(t, &family.ChildState{}, event.Payload)
	}).Times(2)

	_, err := fam.Child.CreateChild(&models.Child{ID: childID, Name: "Noah", DailyLimit: 90, TrustScore: 45})
	require.NoError(t, err)
	_, err = fam.Child.SetPaused(childID, true)
	require.NoError(t, err)
}
