package family

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/minute-policy-service/pkg/common"
	"liyu1981.xyz/minute-policy-service/pkg/models"
	"liyu1981.xyz/minute-policy-service/pkg/policy"
)

type AlertList struct {
	Alerts      []models.Alert `json:"alerts"`
	UnreadCount int            `json:"unread_count"`
}

var defaultAlertTitles = map[models.AlertType]string{
	models.AlertTypeBypass:       "Bypass Attempt Detected",
	models.AlertTypeFailClosed:   "Protection Failed Closed",
	models.AlertTypeRiskyMessage: "Risky Content Detected",
	models.AlertTypeTimeLimit:    "Time Limit Reached",
}

func alertLogger() *zap.Logger {
	return common.GetCategoryLogger(common.LoggerNamePolicyCore, common.LoggerCategoryAlert)
}

func (f *Family) raiseAlert(input *models.Alert) (*models.Alert, error) {
	logger := alertLogger()

	if !policy.ValidAlertType(input.Type) {
		return nil, fmt.Errorf("%w: unknown alert type %q", ErrInvalidInput, input.Type)
	}
	if !policy.ValidSeverity(input.Severity) {
		return nil, fmt.Errorf("%w: unknown alert severity %q", ErrInvalidInput, input.Severity)
	}

	child, err := f.loadChild(f.Db.Conn, input.ChildID)
	if err != nil {
		return nil, err
	}

	alert := models.Alert{
		ID:          input.ID,
		ChildID:     child.ID,
		ChildName:   strings.TrimSpace(input.ChildName),
		Type:        input.Type,
		Severity:    input.Severity,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Timestamp:   input.Timestamp,
	}
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	if alert.ChildName == "" {
		alert.ChildName = child.Name
	}
	if alert.Title == "" {
		alert.Title = defaultAlertTitles[alert.Type]
	}
	if alert.Timestamp.IsZero() {
		alert.Timestamp = f.now()
	}

	logger.Info("Alert found", zap.Reflect("alert", alert))

	f.mu.Lock()
	defer f.mu.Unlock()

	err = f.Db.Conn.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Unscoped().Model(&models.Alert{}).Where("id = ?", alert.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: alert %q already exists", ErrConflict, alert.ID)
		}
		return tx.Create(&alert).Error
	})
	if err != nil {
		logger.Warn("Alert rejected", zap.String("alert_id", alert.ID), zap.Error(err))
		return nil, err
	}

	logger.Info("Alert saved", zap.Reflect("alert", alert))
	f.notify(models.EventAlertRaised, alert.ChildID, alert)
	return &alert, nil
}

// listAlerts returns the active alerts newest first. An empty childID lists
// the whole household.
func (f *Family) listAlerts(childID string) (*AlertList, error) {
	query := f.Db.Conn.Model(&models.Alert{})
	if childID != "" {
		if _, err := f.loadChild(f.Db.Conn, childID); err != nil {
			return nil, err
		}
		query = query.Where("child_id = ?", childID)
	}

	var alerts []models.Alert
	if err := query.Find(&alerts).Error; err != nil {
		return nil, err
	}

	alerts = policy.NewestFirst(alerts)
	return &AlertList{Alerts: alerts, UnreadCount: policy.UnreadCount(alerts)}, nil
}

func (f *Family) markRead(alertID string) (*models.Alert, error) {
	logger := alertLogger()

	f.mu.Lock()
	defer f.mu.Unlock()

	var alert models.Alert
	err := f.Db.Conn.First(&alert, "id = ?", alertID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("alert", alertID)
	}
	if err != nil {
		return nil, err
	}

	if !policy.MarkRead(&alert) {
		logger.Info("Alert already read", zap.String("alert_id", alertID))
		return &alert, nil
	}

	if err := f.Db.Conn.Model(&alert).Update("is_read", true).Error; err != nil {
		return nil, err
	}

	logger.Info("Alert marked read", zap.Reflect("alert", alert))
	f.notify(models.EventAlertRead, alert.ChildID, alert)
	return &alert, nil
}

// dismiss removes the alert from every listing for good. Dismissing an alert
// that is already gone is not an error.
func (f *Family) dismiss(alertID string) error {
	logger := alertLogger()

	f.mu.Lock()
	defer f.mu.Unlock()

	var alert models.Alert
	err := f.Db.Conn.First(&alert, "id = ?", alertID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Info("Alert already dismissed", zap.String("alert_id", alertID))
		return nil
	}
	if err != nil {
		return err
	}

	if err := f.Db.Conn.Delete(&alert).Error; err != nil {
		return err
	}

	logger.Info("Alert dismissed", zap.String("alert_id", alertID))
	f.notify(models.EventAlertDismissed, alert.ChildID, alert)
	return nil
}

type IAlertImpl struct {
	family *Family
}

func (ia *IAlertImpl) RaiseAlert(input *models.Alert) (*models.Alert, error) {
	return ia.family.raiseAlert(input)
}

func (ia *IAlertImpl) ListAlerts(childID string) (*AlertList, error) {
	return ia.family.listAlerts(childID)
}

func (ia *IAlertImpl) MarkRead(alertID string) (*models.Alert, error) {
	return ia.family.markRead(alertID)
}

func (ia *IAlertImpl) Dismiss(alertID string) error {
	return ia.family.dismiss(alertID)
}

func (f *Family) GetIAlert() IAlert {
	return &IAlertImpl{family: f}
}
