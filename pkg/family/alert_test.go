package family_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"liyu1981.xyz/minute-policy-service/pkg/common"
	"liyu1981.xyz/minute-policy-service/pkg/family"
	"liyu1981.xyz/minute-policy-service/pkg/models"
	_ "liyu1981.xyz/minute-policy-service/pkg/testing"
)

func TestRaiseAlert(t *testing.T) {
	var buf bytes.Buffer
	common.SetTestCaptureLogger(&buf, zap.InfoLevel)
	defer common.SetTestLoggerNop()

	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	state := seedChild(t, fam, 60, 120, 50)

	alert, err := fam.Alert.RaiseAlert(&models.Alert{
		ChildID:     state.ID,
		Type:        models.AlertTypeBypass,
		Severity:    models.SeverityHigh,
		Description: "VPN app installation attempt blocked",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, alert.ID)
	assert.Equal(t, "Emma", alert.ChildName)
	assert.Equal(t, "Bypass Attempt Detected", alert.Title)
	assert.False(t, alert.Timestamp.IsZero())
	assert.False(t, alert.IsRead)

	logs := ParseLogs(&buf)
	assert.True(t, findLog(logs, func(lobj map[string]any) bool {
		a, ok := lobj["alert"].(map[string]any)
		return lobj["msg"] == "Alert saved" &&
			lobj[common.LoggerFieldCategory] == common.LoggerCategoryAlert &&
			ok && a["id"] == alert.ID && a["severity"] == "high"
	}))
}

func TestRaiseAlert_Invalid(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	state := seedChild(t, fam, 60, 120, 50)

	_, err := fam.Alert.RaiseAlert(&models.Alert{ChildID: state.ID, Type: "spam", Severity: models.SeverityLow})
	assert.ErrorIs(t, err, family.ErrInvalidInput)

	_, err = fam.Alert.RaiseAlert(&models.Alert{ChildID: state.ID, Type: models.AlertTypeBypass, Severity: "urgent"})
	assert.ErrorIs(t, err, family.ErrInvalidInput)

	_, err = fam.Alert.RaiseAlert(&models.Alert{ChildID: "no-such-child", Type: models.AlertTypeBypass, Severity: models.SeverityLow})
	assert.ErrorIs(t, err, family.ErrNotFound)

	first, err := fam.Alert.RaiseAlert(&models.Alert{ChildID: state.ID, Type: models.AlertTypeFailClosed, Severity: models.SeverityMedium})
	require.NoError(t, err)
	_, err = fam.Alert.RaiseAlert(&models.Alert{ID: first.ID, ChildID: state.ID, Type: models.AlertTypeFailClosed, Severity: models.SeverityMedium})
	assert.ErrorIs(t, err, family.ErrConflict)
}

func TestListAlerts_NewestFirst(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	state := seedChild(t, fam, 60, 120, 50)

	base := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	for i, typ := range []models.AlertType{models.AlertTypeBypass, models.AlertTypeRiskyMessage, models.AlertTypeTimeLimit} {
		_, err := fam.Alert.RaiseAlert(&models.Alert{
			ChildID:   state.ID,
			Type:      typ,
			Severity:  models.SeverityMedium,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	list, err := fam.Alert.ListAlerts(state.ID)
	require.NoError(t, err)
	require.Len(t, list.Alerts, 3)
	assert.Equal(t, 3, list.UnreadCount)
	assert.Equal(t, models.AlertTypeTimeLimit, list.Alerts[0].Type)
	assert.Equal(t, models.AlertTypeBypass, list.Alerts[2].Type)

	household, err := fam.Alert.ListAlerts("")
	require.NoError(t, err)
	ids := common.Mapper(household.Alerts, func(a models.Alert) string { return a.ID })
	for _, a := range list.Alerts {
		assert.Contains(t, ids, a.ID)
	}

	_, err = fam.Alert.ListAlerts("no-such-child")
	assert.ErrorIs(t, err, family.ErrNotFound)
}

func TestMarkRead_Idempotent(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	state := seedChild(t, fam, 60, 120, 50)
	alert, err := fam.Alert.RaiseAlert(&models.Alert{ChildID: state.ID, Type: models.AlertTypeRiskyMessage, Severity: models.SeverityMedium})
	require.NoError(t, err)

	for n := 0; n < 2; n++ {
		read, err := fam.Alert.MarkRead(alert.ID)
		require.NoError(t, err)
		assert.True(t, read.IsRead)
	}

	list, err := fam.Alert.ListAlerts(state.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, list.UnreadCount)

	_, err = fam.Alert.MarkRead("no-such-alert")
	assert.ErrorIs(t, err, family.ErrNotFound)
}

func TestDismiss_Idempotent(t *testing.T) {
	_, fam, _ := GetMockFamilyWithMemorySqliteDialector(t, useMocks{})
	state := seedChild(t, fam, 60, 120, 50)

	keep, err := fam.Alert.RaiseAlert(&models.Alert{ChildID: state.ID, Type: models.AlertTypeBypass, Severity: models.SeverityHigh})
	require.NoError(t, err)
	gone, err := fam.Alert.RaiseAlert(&models.Alert{ChildID: state.ID, Type: models.AlertTypeFailClosed, Severity: models.SeverityHigh})
	require.NoError(t, err)

	require.NoError(t, fam.Alert.Dismiss(gone.ID))
	require.NoError(t, fam.Alert.Dismiss(gone.ID))
	require.NoError(t, fam.Alert.Dismiss("never-existed"))

	list, err := fam.Alert.ListAlerts(state.ID)
	require.NoError(t, err)
	require.Len(t, list.Alerts, 1)
	assert.Equal(t, keep.ID, list.Alerts[0].ID)

	_, err = fam.Alert.MarkRead(gone.ID)
	assert.ErrorIs(t, err, family.ErrNotFound)

	// a dismissed id stays taken
	_, err = fam.Alert.RaiseAlert(&models.Alert{ID: gone.ID, ChildID: state.ID, Type: models.AlertTypeBypass, Severity: models.SeverityLow})
	assert.ErrorIs(t, err, family.ErrConflict)
}
