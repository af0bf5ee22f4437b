// Package seed loads the demo household the dashboards were designed around:
// three children, Emma's apps and web rules, two day schedules and a few
// alerts.
package seed

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/minute-policy-service/pkg/common"
	"liyu1981.xyz/minute-policy-service/pkg/family"
	"liyu1981.xyz/minute-policy-service/pkg/models"
)

const (
	EmmaID   = "1"
	NoahID   = "2"
	OliviaID = "3"
)

func limit(minutes int) *int {
	return &minutes
}

var demoChildren = []models.Child{
	{
		ID: EmmaID, Name: "Emma", IsOnline: true,
		RemainingTime: 125, DailyLimit: 240, TrustScore: 78,
		Privileges: []models.Privilege{
			{Name: "Weekend Bonus", RequiredScore: 50},
			{Name: "App Approval", RequiredScore: 60},
			{Name: "Extra Hour", RequiredScore: 70},
			{Name: "Premium Access", RequiredScore: 85},
		},
	},
	{
		ID: NoahID, Name: "Noah",
		RemainingTime: 45, DailyLimit: 180, TrustScore: 45, IsPaused: true,
	},
	{
		ID: OliviaID, Name: "Olivia", IsOnline: true,
		RemainingTime: 200, DailyLimit: 240, TrustScore: 92,
	},
}

// Emma's week before today, oldest first; today's score is her current one.
var emmaTrustWeek = []int{65, 70, 68, 75, 78, 80}

var demoSchedules = []models.DaySchedule{
	{
		Day: "Mon-Fri",
		Blocks: []models.TimeBlock{
			{Start: "07:00", End: "08:00", Type: models.BlockTypeFree, Label: "Morning"},
			{Start: "08:00", End: "15:00", Type: models.BlockTypeSchool, Label: "School Hours"},
			{Start: "15:00", End: "17:00", Type: models.BlockTypeFree, Label: "Afternoon"},
			{Start: "17:00", End: "18:00", Type: models.BlockTypeDowntime, Label: "Dinner"},
			{Start: "18:00", End: "20:00", Type: models.BlockTypeFree, Label: "Evening"},
			{Start: "20:00", End: "07:00", Type: models.BlockTypeBedtime, Label: "Bedtime"},
		},
	},
	{
		Day: "Weekend",
		Blocks: []models.TimeBlock{
			{Start: "08:00", End: "12:00", Type: models.BlockTypeFree, Label: "Morning"},
			{Start: "12:00", End: "13:00", Type: models.BlockTypeDowntime, Label: "Lunch"},
			{Start: "13:00", End: "20:00", Type: models.BlockTypeFree, Label: "Afternoon/Evening"},
			{Start: "20:00", End: "08:00", Type: models.BlockTypeBedtime, Label: "Bedtime"},
		},
	},
}

var demoApps = []models.AppControl{
	{ID: "1", Name: "YouTube", Category: "Entertainment", IsAllowed: true, TimeLimit: limit(60), TimeUsed: 35},
	{ID: "2", Name: "Khan Academy", Category: "Education", IsAllowed: true, TimeLimit: limit(120), TimeUsed: 45},
	{ID: "3", Name: "Instagram", Category: "Social Media", IsPaused: true, TimeLimit: limit(30), TimeUsed: 30},
	{ID: "4", Name: "Minecraft", Category: "Gaming", IsAllowed: true, TimeLimit: limit(90), TimeUsed: 20},
	{ID: "5", Name: "Spotify", Category: "Music", IsAllowed: true},
}

var demoWebRules = []models.WebsiteRule{
	{Domain: "wikipedia.org", IsAllowed: true, Category: "Education"},
	{Domain: "khanacademy.org", IsAllowed: true, Category: "Education"},
	{Domain: "scratch.mit.edu", IsAllowed: true, Category: "Creative"},
	{Domain: "coolmathgames.com", IsAllowed: true, Category: "Games"},
	{Domain: "tiktok.com", IsAllowed: false, Category: "Social Media"},
	{Domain: "reddit.com", IsAllowed: false, Category: "Forums"},
	{Domain: "twitter.com", IsAllowed: false, Category: "Social Media"},
}

type demoAlert struct {
	alert models.Alert
	age   time.Duration
	read  bool
}

var demoAlerts = []demoAlert{
	{
		alert: models.Alert{
			ID: "1", ChildID: EmmaID, Type: models.AlertTypeBypass, Severity: models.SeverityMedium,
			Title:       "Bypass Attempt Detected",
			Description: "Emma tried to access Instagram during restricted hours",
		},
		age: 15 * time.Minute,
	},
	{
		alert: models.Alert{
			ID: "2", ChildID: NoahID, Type: models.AlertTypeTimeLimit, Severity: models.SeverityLow,
			Title:       "Time Limit Reached",
			Description: "Noah reached his daily screen time limit",
		},
		age:  time.Hour,
		read: true,
	},
	{
		alert: models.Alert{
			ID: "3", ChildID: EmmaID, Type: models.AlertTypeRiskyMessage, Severity: models.SeverityHigh,
			Title:       "Risky Content Detected",
			Description: "Potential inappropriate message detected in chat app",
		},
		age: 2 * time.Hour,
	},
}

// LoadDemo writes the demo household through the family services. It does
// nothing when the household is already there.
func LoadDemo(fam *family.Family, now time.Time) error {
	logger := common.GetLoggerWith(common.LoggerNameSeed)

	if _, err := fam.Child.GetChild(EmmaID); err == nil {
		logger.Info("demo household already loaded")
		return nil
	} else if !errors.Is(err, family.ErrNotFound) {
		return err
	}

	for i := range demoChildren {
		if _, err := fam.Child.CreateChild(&demoChildren[i]); err != nil {
			return fmt.Errorf("seed child %s: %w", demoChildren[i].Name, err)
		}
		for _, day := range demoSchedules {
			if _, err := fam.Schedule.PutDaySchedule(demoChildren[i].ID, day); err != nil {
				return fmt.Errorf("seed %s schedule for %s: %w", day.Day, demoChildren[i].Name, err)
			}
		}
	}

	if err := seedTrustWeek(fam, now); err != nil {
		return err
	}

	for i := range demoApps {
		if _, err := fam.Control.AddApp(EmmaID, &demoApps[i]); err != nil {
			return fmt.Errorf("seed app %s: %w", demoApps[i].Name, err)
		}
	}

	for i := range demoWebRules {
		if _, err := fam.Control.AddWebRule(EmmaID, &demoWebRules[i]); err != nil {
			return fmt.Errorf("seed web rule %s: %w", demoWebRules[i].Domain, err)
		}
	}

	for _, a := range demoAlerts {
		alert := a.alert
		alert.Timestamp = now.Add(-a.age)
		if _, err := fam.Alert.RaiseAlert(&alert); err != nil {
			return fmt.Errorf("seed alert %s: %w", alert.ID, err)
		}
		if a.read {
			if _, err := fam.Alert.MarkRead(alert.ID); err != nil {
				return fmt.Errorf("seed alert %s: %w", alert.ID, err)
			}
		}
	}

	logger.Info("demo household loaded",
		zap.Int("children", len(demoChildren)),
		zap.Int("apps", len(demoApps)),
		zap.Int("web_rules", len(demoWebRules)),
		zap.Int("alerts", len(demoAlerts)))
	return nil
}

// seedTrustWeek backfills Emma's daily trust samples for the days before
// today.
func seedTrustWeek(fam *family.Family, now time.Time) error {
	samples := make([]models.TrustSample, len(emmaTrustWeek))
	for i, score := range emmaTrustWeek {
		samples[i] = models.TrustSample{
			ChildID:   EmmaID,
			Score:     score,
			Timestamp: now.AddDate(0, 0, i-len(emmaTrustWeek)),
		}
	}
	return fam.Db.Conn.Create(&samples).Error
}
