package family

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/minute-policy-service/pkg/common"
	"liyu1981.xyz/minute-policy-service/pkg/models"
	"liyu1981.xyz/minute-policy-service/pkg/policy"
)

// ChildState is a child as the dashboards see it: stored fields plus every
// value derived from them.
type ChildState struct {
	models.Child
	TrustLevel models.TrustLevel       `json:"trust_level"`
	Trust      policy.Presentation     `json:"trust"`
	TrustTrend policy.Trend            `json:"trust_trend"`
	Allowance  policy.Allowance        `json:"allowance"`
	Privileges []policy.PrivilegeState `json:"privileges"`
}

type TrustHistory struct {
	ChildID string               `json:"child_id"`
	Samples []models.TrustSample `json:"samples"`
	Trend   policy.Trend         `json:"trend"`
}

func childLogger() *zap.Logger {
	return common.GetCategoryLogger(common.LoggerNamePolicyCore, common.LoggerCategoryChild)
}

func (f *Family) loadChild(tx *gorm.DB, childID string) (*models.Child, error) {
	var child models.Child
	err := tx.First(&child, "id = ?", childID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("child", childID)
	}
	if err != nil {
		return nil, err
	}
	return &child, nil
}

func (f *Family) saveChild(tx *gorm.DB, child *models.Child) error {
	return tx.Omit(clause.Associations).Save(child).Error
}

func (f *Family) buildState(tx *gorm.DB, child *models.Child) (*ChildState, error) {
	var privileges []models.Privilege
	if err := tx.Where("child_id = ?", child.ID).Order("required_score asc").Find(&privileges).Error; err != nil {
		return nil, err
	}

	var recent []models.TrustSample
	if err := tx.Where("child_id = ?", child.ID).Order("timestamp desc").Order("id desc").Limit(2).Find(&recent).Error; err != nil {
		return nil, err
	}
	// TrendOf wants chronological order
	if len(recent) == 2 {
		recent[0], recent[1] = recent[1], recent[0]
	}

	level, err := policy.LevelOf(child.TrustScore)
	if err != nil {
		return nil, err
	}
	presentation, err := policy.PresentationOf(level)
	if err != nil {
		return nil, err
	}
	allowance, err := policy.Account(child.RemainingTime, child.DailyLimit)
	if err != nil {
		return nil, err
	}

	state := &ChildState{
		Child:      *child,
		TrustLevel: level,
		Trust:      presentation,
		TrustTrend: policy.TrendOf(recent),
		Allowance:  allowance,
		Privileges: policy.PrivilegeStates(privileges, child.TrustScore),
	}

	// an expired timed lock reads as unlocked; mutateChild clears the row
	f.clearExpiredLock(&state.Child)
	return state, nil
}

func (f *Family) clearExpiredLock(child *models.Child) bool {
	if !child.IsLocked || child.LockUntil == nil || f.now().Before(*child.LockUntil) {
		return false
	}
	child.IsLocked = false
	child.LockReason = ""
	child.LockUntil = nil
	return true
}

// mutateChild runs fn on the loaded child inside a transaction, saves it and
// returns the new state.
func (f *Family) mutateChild(command string, childID string, fn func(tx *gorm.DB, child *models.Child) error) (*ChildState, error) {
	logger := childLogger().With(
		zap.String(common.LoggerFieldCommand, command),
		zap.String(common.LoggerFieldChildID, childID),
	)

	f.mu.Lock()
	defer f.mu.Unlock()

	var state *ChildState
	err := f.Db.Conn.Transaction(func(tx *gorm.DB) error {
		child, err := f.loadChild(tx, childID)
		if err != nil {
			return err
		}
		if f.clearExpiredLock(child) {
			logger.Info("Expired lock cleared")
		}
		if err := fn(tx, child); err != nil {
			return err
		}
		if err := f.saveChild(tx, child); err != nil {
			return err
		}
		state, err = f.buildState(tx, child)
		return err
	})
	if err != nil {
		logger.Warn("Child command rejected", zap.Error(err))
		return nil, err
	}

	logger.Info("Child command applied", zap.Reflect("child", state.Child))
	f.notify(models.EventChildUpdated, childID, state)
	return state, nil
}

func (f *Family) createChild(input *models.Child) (*ChildState, error) {
	logger := childLogger()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: child name must not be empty", ErrInvalidInput)
	}
	if err := policy.ValidateTrustScore(input.TrustScore); err != nil {
		return nil, err
	}

	remaining := input.RemainingTime
	if remaining == 0 {
		// a new child starts the day with the full allowance
		remaining = input.DailyLimit
	}
	if _, err := policy.Account(remaining, input.DailyLimit); err != nil {
		return nil, err
	}

	child := models.Child{
		ID:            input.ID,
		Name:          name,
		IsOnline:      input.IsOnline,
		RemainingTime: remaining,
		DailyLimit:    input.DailyLimit,
		TrustScore:    input.TrustScore,
		IsLocked:      input.IsLocked,
		IsPaused:      input.IsPaused,
		LockReason:    input.LockReason,
		LockUntil:     input.LockUntil,
		SafeSearch:    input.SafeSearch,
	}
	if child.ID == "" {
		child.ID = uuid.NewString()
	}

	logger.Info("Received child", zap.Reflect("child", child))

	f.mu.Lock()
	defer f.mu.Unlock()

	var state *ChildState
	err := f.Db.Conn.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Child{}).Where("id = ?", child.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: child %q already exists", ErrConflict, child.ID)
		}
		if err := tx.Omit(clause.Associations).Create(&child).Error; err != nil {
			return err
		}

		for _, p := range input.Privileges {
			if err := f.insertPrivilege(tx, child.ID, &p); err != nil {
				return err
			}
		}

		if err := tx.Create(&models.TrustSample{
			ChildID:   child.ID,
			Score:     child.TrustScore,
			Timestamp: f.now(),
		}).Error; err != nil {
			return err
		}

		var err error
		state, err = f.buildState(tx, &child)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Created child", zap.Reflect("child", state.Child))
	f.notify(models.EventChildUpdated, child.ID, state)
	return state, nil
}

func (f *Family) insertPrivilege(tx *gorm.DB, childID string, input *models.Privilege) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: privilege name must not be empty", ErrInvalidInput)
	}
	if err := policy.ValidateTrustScore(input.RequiredScore); err != nil {
		return err
	}
	privilege := models.Privilege{
		ID:            input.ID,
		ChildID:       childID,
		Name:          name,
		RequiredScore: input.RequiredScore,
	}
	if privilege.ID == "" {
		privilege.ID = uuid.NewString()
	}
	return tx.Create(&privilege).Error
}

func (f *Family) getChild(childID string) (*ChildState, error) {
	child, err := f.loadChild(f.Db.Conn, childID)
	if err != nil {
		return nil, err
	}
	return f.buildState(f.Db.Conn, child)
}

func (f *Family) listChildren() ([]ChildState, error) {
	var children []models.Child
	if err := f.Db.Conn.Order("name asc").Order("id asc").Find(&children).Error; err != nil {
		return nil, err
	}

	states := make([]ChildState, 0, len(children))
	for i := range children {
		state, err := f.buildState(f.Db.Conn, &children[i])
		if err != nil {
			return nil, err
		}
		states = append(states, *state)
	}
	return states, nil
}

func (f *Family) setLocked(childID string, locked bool, reason string, until *time.Time) (*ChildState, error) {
	return f.mutateChild("set_locked", childID, func(_ *gorm.DB, child *models.Child) error {
		if locked && until != nil && !until.After(f.now()) {
			return fmt.Errorf("%w: lock end %s is in the past", ErrInvalidInput, until.Format(time.RFC3339))
		}
		child.IsLocked = locked
		if locked {
			child.LockReason = strings.TrimSpace(reason)
			child.LockUntil = until
		} else {
			child.LockReason = ""
			child.LockUntil = nil
		}
		return nil
	})
}

func (f *Family) setPaused(childID string, paused bool) (*ChildState, error) {
	return f.mutateChild("set_paused", childID, func(_ *gorm.DB, child *models.Child) error {
		child.IsPaused = paused
		return nil
	})
}

// approveAccess makes sure at least minutes are available (capped at the
// daily limit) and lifts lock and pause. Repeating it changes nothing.
func (f *Family) approveAccess(childID string, minutes int) (*ChildState, error) {
	return f.mutateChild("approve_access", childID, func(_ *gorm.DB, child *models.Child) error {
		remaining, err := policy.EnsureAtLeast(child.RemainingTime, child.DailyLimit, minutes)
		if err != nil {
			return err
		}
		child.RemainingTime = remaining
		child.IsLocked = false
		child.IsPaused = false
		child.LockReason = ""
		child.LockUntil = nil
		return nil
	})
}

func (f *Family) recordUsage(childID string, minutes int) (*ChildState, error) {
	exhausted := false
	state, err := f.mutateChild("record_usage", childID, func(_ *gorm.DB, child *models.Child) error {
		remaining, err := policy.Consume(child.RemainingTime, child.DailyLimit, minutes)
		if err != nil {
			return err
		}
		exhausted = child.RemainingTime > 0 && remaining == 0
		child.RemainingTime = remaining
		return nil
	})
	if err != nil {
		return nil, err
	}

	if exhausted {
		f.raiseTimeLimitAlert(state.ID, state.Name, "Time Limit Reached",
			fmt.Sprintf("%s reached the daily screen time limit", state.Name))
	}
	return state, nil
}

func (f *Family) raiseTimeLimitAlert(childID, childName, title, description string) {
	if f.Alert == nil {
		childLogger().Error("alert service not available, time limit alert dropped",
			zap.String(common.LoggerFieldChildID, childID))
		return
	}

	_, err := f.Alert.RaiseAlert(&models.Alert{
		ChildID:     childID,
		ChildName:   childName,
		Type:        models.AlertTypeTimeLimit,
		Severity:    models.SeverityLow,
		Title:       title,
		Description: description,
	})
	if err != nil {
		childLogger().Error("Failed to raise time limit alert",
			zap.String(common.LoggerFieldChildID, childID), zap.Error(err))
	}
}

func (f *Family) setTrustScore(childID string, score int) (*ChildState, error) {
	return f.mutateChild("set_trust_score", childID, func(tx *gorm.DB, child *models.Child) error {
		if err := policy.ValidateTrustScore(score); err != nil {
			return err
		}
		if child.TrustScore == score {
			return nil
		}
		child.TrustScore = score
		return tx.Create(&models.TrustSample{
			ChildID:   child.ID,
			Score:     score,
			Timestamp: f.now(),
		}).Error
	})
}

func (f *Family) getTrustHistory(childID string) (*TrustHistory, error) {
	if _, err := f.loadChild(f.Db.Conn, childID); err != nil {
		return nil, err
	}

	var samples []models.TrustSample
	if err := f.Db.Conn.Where("child_id = ?", childID).Order("timestamp asc").Order("id asc").Find(&samples).Error; err != nil {
		return nil, err
	}
	return &TrustHistory{ChildID: childID, Samples: samples, Trend: policy.TrendOf(samples)}, nil
}

func (f *Family) setDailyLimit(childID string, minutes int) (*ChildState, error) {
	return f.mutateChild("set_daily_limit", childID, func(_ *gorm.DB, child *models.Child) error {
		remaining, err := policy.Rebase(child.RemainingTime, child.DailyLimit, minutes)
		if err != nil {
			return err
		}
		child.DailyLimit = minutes
		child.RemainingTime = remaining
		return nil
	})
}

// resetDay restores the full allowance and clears today's app usage.
func (f *Family) resetDay(childID string) (*ChildState, error) {
	return f.mutateChild("reset_day", childID, func(tx *gorm.DB, child *models.Child) error {
		child.RemainingTime = child.DailyLimit
		return tx.Model(&models.AppControl{}).
			Where("child_id = ?", child.ID).
			Update("time_used", 0).Error
	})
}

func (f *Family) addPrivilege(childID string, input *models.Privilege) (*ChildState, error) {
	return f.mutateChild("add_privilege", childID, func(tx *gorm.DB, child *models.Child) error {
		return f.insertPrivilege(tx, child.ID, input)
	})
}

func (f *Family) setSafeSearch(childID string, enabled bool) (*ChildState, error) {
	return f.mutateChild("set_safe_search", childID, func(_ *gorm.DB, child *models.Child) error {
		child.SafeSearch = enabled
		return nil
	})
}

type IChildImpl struct {
	family *Family
}

func (ic *IChildImpl) CreateChild(input *models.Child) (*ChildState, error) {
	return ic.family.createChild(input)
}

func (ic *IChildImpl) GetChild(childID string) (*ChildState, error) {
	return ic.family.getChild(childID)
}

func (ic *IChildImpl) ListChildren() ([]ChildState, error) {
	return ic.family.listChildren()
}

func (ic *IChildImpl) SetLocked(childID string, locked bool, reason string, until *time.Time) (*ChildState, error) {
	return ic.family.setLocked(childID, locked, reason, until)
}

func (ic *IChildImpl) SetPaused(childID string, paused bool) (*ChildState, error) {
	return ic.family.setPaused(childID, paused)
}

func (ic *IChildImpl) ApproveAccess(childID string, minutes int) (*ChildState, error) {
	return ic.family.approveAccess(childID, minutes)
}

func (ic *IChildImpl) RecordUsage(childID string, minutes int) (*ChildState, error) {
	return ic.family.recordUsage(childID, minutes)
}

func (ic *IChildImpl) SetTrustScore(childID string, score int) (*ChildState, error) {
	return ic.family.setTrustScore(childID, score)
}

func (ic *IChildImpl) GetTrustHistory(childID string) (*TrustHistory, error) {
	return ic.family.getTrustHistory(childID)
}

func (ic *IChildImpl) SetDailyLimit(childID string, minutes int) (*ChildState, error) {
	return ic.family.setDailyLimit(childID, minutes)
}

func (ic *IChildImpl) ResetDay(childID string) (*ChildState, error) {
	return ic.family.resetDay(childID)
}

func (ic *IChildImpl) AddPrivilege(childID string, input *models.Privilege) (*ChildState, error) {
	return ic.family.addPrivilege(childID, input)
}

func (ic *IChildImpl) SetSafeSearch(childID string, enabled bool) (*ChildState, error) {
	return ic.family.setSafeSearch(childID, enabled)
}

func (f *Family) GetIChild() IChild {
	return &IChildImpl{family: f}
}
