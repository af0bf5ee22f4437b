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

func controlLogger() *zap.Logger {
	return common.GetCategoryLogger(common.LoggerNamePolicyCore, common.LoggerCategoryControl)
}

func validateTimeLimit(limit *int, used int) error {
	if used < 0 {
		return fmt.Errorf("%w: time used must not be negative, got %d", ErrInvalidInput, used)
	}
	if limit == nil {
		return nil
	}
	if *limit < 0 {
		return fmt.Errorf("%w: time limit must not be negative, got %d", ErrInvalidInput, *limit)
	}
	if used > *limit {
		return fmt.Errorf("%w: time used %d exceeds time limit %d", ErrInvalidInput, used, *limit)
	}
	return nil
}

func (f *Family) addApp(childID string, input *models.AppControl) (*models.AppControl, error) {
	logger := controlLogger()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: app name must not be empty", ErrInvalidInput)
	}
	if err := validateTimeLimit(input.TimeLimit, input.TimeUsed); err != nil {
		return nil, err
	}

	app := models.AppControl{
		ID:        input.ID,
		ChildID:   childID,
		Name:      name,
		Category:  strings.TrimSpace(input.Category),
		IsAllowed: input.IsAllowed,
		IsPaused:  input.IsPaused,
		TimeLimit: input.TimeLimit,
		TimeUsed:  input.TimeUsed,
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}

	logger.Info("Received app", zap.Reflect("app", app))

	f.mu.Lock()
	defer f.mu.Unlock()

	err := f.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if _, err := f.loadChild(tx, childID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.AppControl{}).Where("id = ?", app.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: app %q already exists", ErrConflict, app.ID)
		}
		return tx.Create(&app).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Saved app", zap.Reflect("app", app))
	f.notify(models.EventAppUpdated, childID, app)
	return &app, nil
}

func (f *Family) listApps(childID string) ([]models.AppControl, error) {
	if _, err := f.loadChild(f.Db.Conn, childID); err != nil {
		return nil, err
	}
	var apps []models.AppControl
	err := f.Db.Conn.Where("child_id = ?", childID).Order("name asc").Find(&apps).Error
	return apps, err
}

func (f *Family) mutateApp(command string, appID string, fn func(app *models.AppControl) error) (*models.AppControl, error) {
	logger := controlLogger().With(zap.String(common.LoggerFieldCommand, command))

	f.mu.Lock()
	defer f.mu.Unlock()

	var app models.AppControl
	err := f.Db.Conn.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&app, "id = ?", appID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("app", appID)
		}
		if err != nil {
			return err
		}
		if err := fn(&app); err != nil {
			return err
		}
		return tx.Save(&app).Error
	})
	if err != nil {
		logger.Warn("App command rejected", zap.String("app_id", appID), zap.Error(err))
		return nil, err
	}

	logger.Info("App command applied", zap.Reflect("app", app))
	f.notify(models.EventAppUpdated, app.ChildID, app)
	return &app, nil
}

func (f *Family) setAppAllowed(appID string, allowed bool) (*models.AppControl, error) {
	return f.mutateApp("set_app_allowed", appID, func(app *models.AppControl) error {
		app.IsAllowed = allowed
		return nil
	})
}

func (f *Family) setAppPaused(appID string, paused bool) (*models.AppControl, error) {
	return f.mutateApp("set_app_paused", appID, func(app *models.AppControl) error {
		app.IsPaused = paused
		return nil
	})
}

// setAppTimeLimit with nil removes the limit. A limit below today's usage
// clamps the usage to it, which leaves the app exhausted for the day.
func (f *Family) setAppTimeLimit(appID string, minutes *int) (*models.AppControl, error) {
	return f.mutateApp("set_app_time_limit", appID, func(app *models.AppControl) error {
		if minutes == nil {
			app.TimeLimit = nil
			return nil
		}
		if *minutes < 0 {
			return fmt.Errorf("%w: time limit must not be negative, got %d", ErrInvalidInput, *minutes)
		}
		limit := *minutes
		app.TimeLimit = &limit
		app.TimeUsed = min(app.TimeUsed, limit)
		return nil
	})
}

func (f *Family) recordAppUsage(appID string, minutes int) (*models.AppControl, error) {
	exhausted := false
	app, err := f.mutateApp("record_app_usage", appID, func(app *models.AppControl) error {
		wasExhausted := app.TimeLimit != nil && app.TimeUsed >= *app.TimeLimit
		used, nowExhausted, err := policy.CapUsage(app.TimeUsed, app.TimeLimit, minutes)
		if err != nil {
			return err
		}
		app.TimeUsed = used
		if nowExhausted && !wasExhausted {
			exhausted = true
			app.IsPaused = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if exhausted {
		childName := ""
		if child, err := f.loadChild(f.Db.Conn, app.ChildID); err == nil {
			childName = child.Name
		}
		f.raiseTimeLimitAlert(app.ChildID, childName, "App Time Limit Reached",
			fmt.Sprintf("%s reached the daily limit for %s", childName, app.Name))
	}
	return app, nil
}

// addWebRule keeps one rule per domain and child. Adding a domain already in
// the same list returns the existing rule; adding it to the other list moves
// it there.
func (f *Family) addWebRule(childID string, input *models.WebsiteRule) (*models.WebsiteRule, error) {
	logger := controlLogger()

	domain, err := policy.NormalizeDomain(input.Domain)
	if err != nil {
		return nil, err
	}

	logger.Info("Received web rule",
		zap.String(common.LoggerFieldChildID, childID),
		zap.String("domain", domain),
		zap.Bool("is_allowed", input.IsAllowed))

	f.mu.Lock()
	defer f.mu.Unlock()

	var rule models.WebsiteRule
	err = f.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if _, err := f.loadChild(tx, childID); err != nil {
			return err
		}

		err := tx.First(&rule, "child_id = ? AND domain = ?", childID, domain).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rule = models.WebsiteRule{
				ID:        uuid.NewString(),
				ChildID:   childID,
				Domain:    domain,
				IsAllowed: input.IsAllowed,
				Category:  strings.TrimSpace(input.Category),
			}
			return tx.Create(&rule).Error
		case err != nil:
			return err
		}

		rule.IsAllowed = input.IsAllowed
		if category := strings.TrimSpace(input.Category); category != "" {
			rule.Category = category
		}
		return tx.Save(&rule).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Saved web rule", zap.Reflect("rule", rule))
	f.notify(models.EventWebRulesUpdated, childID, rule)
	return &rule, nil
}

// removeWebRule succeeds when the rule is already gone.
func (f *Family) removeWebRule(ruleID string) error {
	logger := controlLogger()

	f.mu.Lock()
	defer f.mu.Unlock()

	var rule models.WebsiteRule
	err := f.Db.Conn.First(&rule, "id = ?", ruleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Info("Web rule already removed", zap.String("rule_id", ruleID))
		return nil
	}
	if err != nil {
		return err
	}

	if err := f.Db.Conn.Delete(&models.WebsiteRule{}, "id = ?", ruleID).Error; err != nil {
		return err
	}

	logger.Info("Removed web rule", zap.Reflect("rule", rule))
	f.notify(models.EventWebRulesUpdated, rule.ChildID, rule)
	return nil
}

func (f *Family) listWebRules(childID string, allowed *bool) ([]models.WebsiteRule, error) {
	if _, err := f.loadChild(f.Db.Conn, childID); err != nil {
		return nil, err
	}

	query := f.Db.Conn.Where("child_id = ?", childID)
	if allowed != nil {
		query = query.Where("is_allowed = ?", *allowed)
	}

	var rules []models.WebsiteRule
	err := query.Order("domain asc").Find(&rules).Error
	return rules, err
}

type IControlImpl struct {
	family *Family
}

func (ic *IControlImpl) AddApp(childID string, input *models.AppControl) (*models.AppControl, error) {
	return ic.family.addApp(childID, input)
}

func (ic *IControlImpl) ListApps(childID string) ([]models.AppControl, error) {
	return ic.family.listApps(childID)
}

func (ic *IControlImpl) SetAppAllowed(appID string, allowed bool) (*models.AppControl, error) {
	return ic.family.setAppAllowed(appID, allowed)
}

func (ic *IControlImpl) SetAppPaused(appID string, paused bool) (*models.AppControl, error) {
	return ic.family.setAppPaused(appID, paused)
}

func (ic *IControlImpl) SetAppTimeLimit(appID string, minutes *int) (*models.AppControl, error) {
	return ic.family.setAppTimeLimit(appID, minutes)
}

func (ic *IControlImpl) RecordAppUsage(appID string, minutes int) (*models.AppControl, error) {
	return ic.family.recordAppUsage(appID, minutes)
}

func (ic *IControlImpl) AddWebRule(childID string, input *models.WebsiteRule) (*models.WebsiteRule, error) {
	return ic.family.addWebRule(childID, input)
}

func (ic *IControlImpl) RemoveWebRule(ruleID string) error {
	return ic.family.removeWebRule(ruleID)
}

func (ic *IControlImpl) ListWebRules(childID string, allowed *bool) ([]models.WebsiteRule, error) {
	return ic.family.listWebRules(childID, allowed)
}

func (f *Family) GetIControl() IControl {
	return &IControlImpl{family: f}
}
