package family

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/minute-policy-service/pkg/common"
	"liyu1981.xyz/minute-policy-service/pkg/models"
	"liyu1981.xyz/minute-policy-service/pkg/policy"
)

type ScheduleStatus struct {
	ChildID string                `json:"child_id"`
	Day     string                `json:"day"`
	At      string                `json:"at"`
	Type    models.BlockType      `json:"type"`
	Current *models.TimeBlock     `json:"current,omitempty"`
	Next    *policy.UpcomingBlock `json:"next,omitempty"`
}

func scheduleLogger() *zap.Logger {
	return common.GetCategoryLogger(common.LoggerNamePolicyCore, common.LoggerCategorySchedule)
}

// putDaySchedule replaces every block of one day. An empty block list removes
// the day.
func (f *Family) putDaySchedule(childID string, day models.DaySchedule) (*policy.PlacedDay, error) {
	logger := scheduleLogger()

	label := strings.TrimSpace(day.Day)
	if label == "" {
		return nil, fmt.Errorf("%w: day label must not be empty", ErrInvalidInput)
	}
	if err := policy.ValidateDay(day.Blocks); err != nil {
		return nil, err
	}

	ordered := policy.OrderBlocks(day.Blocks)
	blocks := make([]models.TimeBlock, len(ordered))
	for i, b := range ordered {
		blocks[i] = models.TimeBlock{
			ChildID:  childID,
			Day:      label,
			Position: i,
			Start:    b.Start,
			End:      b.End,
			Type:     b.Type,
			Label:    strings.TrimSpace(b.Label),
		}
	}

	logger.Info("Received day schedule",
		zap.String(common.LoggerFieldChildID, childID),
		zap.String("day", label),
		zap.Int("blocks", len(blocks)))

	f.mu.Lock()
	defer f.mu.Unlock()

	err := f.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if _, err := f.loadChild(tx, childID); err != nil {
			return err
		}
		if err := tx.Where("child_id = ? AND day = ?", childID, label).Delete(&models.TimeBlock{}).Error; err != nil {
			return err
		}
		if len(blocks) == 0 {
			return nil
		}
		return tx.Create(&blocks).Error
	})
	if err != nil {
		return nil, err
	}

	placed, err := policy.PlaceDay(models.DaySchedule{Day: label, Blocks: blocks})
	if err != nil {
		return nil, err
	}

	logger.Info("Saved day schedule", zap.Reflect("schedule", placed))
	f.notify(models.EventScheduleUpdated, childID, placed)
	return &placed, nil
}

func (f *Family) loadDays(childID string) ([]models.DaySchedule, error) {
	if _, err := f.loadChild(f.Db.Conn, childID); err != nil {
		return nil, err
	}

	var blocks []models.TimeBlock
	if err := f.Db.Conn.Where("child_id = ?", childID).Order("id asc").Find(&blocks).Error; err != nil {
		return nil, err
	}

	// days keep the order they were first written in
	var days []models.DaySchedule
	index := map[string]int{}
	for _, b := range blocks {
		i, ok := index[b.Day]
		if !ok {
			i = len(days)
			index[b.Day] = i
			days = append(days, models.DaySchedule{Day: b.Day})
		}
		days[i].Blocks = append(days[i].Blocks, b)
	}
	return days, nil
}

func (f *Family) getSchedules(childID string) ([]policy.PlacedDay, error) {
	days, err := f.loadDays(childID)
	if err != nil {
		return nil, err
	}

	placed := make([]policy.PlacedDay, 0, len(days))
	for _, day := range days {
		p, err := policy.PlaceDay(day)
		if err != nil {
			return nil, err
		}
		placed = append(placed, p)
	}
	return placed, nil
}

func (f *Family) getScheduleStatus(childID string, dayLabel string, minute int) (*ScheduleStatus, error) {
	days, err := f.loadDays(childID)
	if err != nil {
		return nil, err
	}

	var day *models.DaySchedule
	for i := range days {
		if days[i].Day == dayLabel {
			day = &days[i]
			break
		}
	}
	if day == nil {
		return nil, notFound("schedule day", dayLabel)
	}

	block, ok, err := policy.BlockAt(*day, minute)
	if err != nil {
		return nil, err
	}
	next, err := policy.NextRestriction(*day, minute)
	if err != nil {
		return nil, err
	}

	status := &ScheduleStatus{
		ChildID: childID,
		Day:     day.Day,
		At:      policy.FormatClock(minute),
		Type:    models.BlockTypeFree,
		Next:    next,
	}
	if ok {
		status.Type = block.Type
		status.Current = &block
	}
	return status, nil
}

type IScheduleImpl struct {
	family *Family
}

func (is *IScheduleImpl) PutDaySchedule(childID string, day models.DaySchedule) (*policy.PlacedDay, error) {
	return is.family.putDaySchedule(childID, day)
}

func (is *IScheduleImpl) GetSchedules(childID string) ([]policy.PlacedDay, error) {
	return is.family.getSchedules(childID)
}

func (is *IScheduleImpl) GetScheduleStatus(childID string, day string, minute int) (*ScheduleStatus, error) {
	return is.family.getScheduleStatus(childID, day, minute)
}

func (f *Family) GetISchedule() ISchedule {
	return &IScheduleImpl{family: f}
}
