package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"liyu1981.xyz/minute-policy-service/pkg/models"
)

func sampleAlerts() []models.Alert {
	now := time.Now()
	return []models.Alert{
		{ID: "2", Type: models.AlertTypeTimeLimit, Severity: models.SeverityLow, Timestamp: now.Add(-time.Hour), IsRead: true},
		{ID: "3", Type: models.AlertTypeRiskyMessage, Severity: models.SeverityHigh, Timestamp: now.Add(-2 * time.Hour)},
		{ID: "1", Type: models.AlertTypeBypass, Severity: models.SeverityMedium, Timestamp: now.Add(-15 * time.Minute)},
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	alert := sampleAlerts()[1]
	before := alert

	assert.True(t, MarkRead(&alert))
	assert.True(t, alert.IsRead)

	afterFirst := alert
	assert.False(t, MarkRead(&alert))
	assert.Equal(t, afterFirst, alert)

	before.IsRead = true
	assert.Equal(t, before, alert, "only IsRead changes")
}

func TestDismissIsIdempotent(t *testing.T) {
	alerts := sampleAlerts()

	once := Dismiss(alerts, "3")
	twice := Dismiss(once, "3")
	assert.Len(t, once, 2)
	assert.Equal(t, once, twice)
	assert.Len(t, alerts, 3, "input must not be modified")

	assert.Equal(t, alerts, Dismiss(alerts, "missing"))
}

func TestUnreadCount(t *testing.T) {
	alerts := sampleAlerts()
	assert.Equal(t, 2, UnreadCount(alerts))
	assert.Equal(t, 1, UnreadCount(Dismiss(alerts, "1")))
	assert.Equal(t, 0, UnreadCount(nil))
}

func TestNewestFirst(t *testing.T) {
	ordered := NewestFirst(sampleAlerts())
	ids := []string{ordered[0].ID, ordered[1].ID, ordered[2].ID}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestAlertEnums(t *testing.T) {
	assert.True(t, ValidAlertType(models.AlertTypeFailClosed))
	assert.False(t, ValidAlertType("spam"))
	assert.True(t, ValidSeverity(models.SeverityHigh))
	assert.False(t, ValidSeverity("urgent"))
}
