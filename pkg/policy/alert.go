package policy

import (
	"slices"

	"liyu1981.xyz/minute-policy-service/pkg/models"
)

func ValidAlertType(t models.AlertType) bool {
	switch t {
	case models.AlertTypeBypass, models.AlertTypeFailClosed, models.AlertTypeRiskyMessage, models.AlertTypeTimeLimit:
		return true
	}
	return false
}

func ValidSeverity(s models.Severity) bool {
	switch s {
	case models.SeverityLow, models.SeverityMedium, models.SeverityHigh:
		return true
	}
	return false
}

// MarkRead flips IsRead to true. It reports whether anything changed.
func MarkRead(alert *models.Alert) bool {
	if alert.IsRead {
		return false
	}
	alert.IsRead = true
	return true
}

// Dismiss returns the alerts without id. Dismissing an absent id returns an
// equal list.
func Dismiss(alerts []models.Alert, id string) []models.Alert {
	return slices.DeleteFunc(slices.Clone(alerts), func(a models.Alert) bool {
		return a.ID == id
	})
}

func UnreadCount(alerts []models.Alert) int {
	count := 0
	for _, a := range alerts {
		if !a.IsRead {
			count++
		}
	}
	return count
}

// NewestFirst returns a copy ordered by timestamp, newest first. Ties keep
// their input order.
func NewestFirst(alerts []models.Alert) []models.Alert {
	ordered := slices.Clone(alerts)
	slices.SortStableFunc(ordered, func(a, b models.Alert) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return ordered
}
