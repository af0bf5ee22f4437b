package models

import (
	"time"

	"gorm.io/gorm"
)

type TrustLevel string

const (
	TrustLevelLow       TrustLevel = "low"
	TrustLevelWarning   TrustLevel = "warning"
	TrustLevelGood      TrustLevel = "good"
	TrustLevelExcellent TrustLevel = "excellent"
)

type BlockType string

const (
	BlockTypeSchool   BlockType = "school"
	BlockTypeBedtime  BlockType = "bedtime"
	BlockTypeDowntime BlockType = "downtime"
	BlockTypeFree     BlockType = "free"
)

type AlertType string

const (
	AlertTypeBypass       AlertType = "bypass"
	AlertTypeFailClosed   AlertType = "fail-closed"
	AlertTypeRiskyMessage AlertType = "risky-message"
	AlertTypeTimeLimit    AlertType = "time-limit"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Child holds only stored state. Trust level and privilege unlocks are
// derived on read, see family.ChildState.
type Child struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	Name          string     `json:"name"`
	IsOnline      bool       `json:"is_online"`
	RemainingTime int        `json:"remaining_time"`
	DailyLimit    int        `json:"daily_limit"`
	TrustScore    int        `json:"trust_score"`
	IsLocked      bool       `json:"is_locked"`
	IsPaused      bool       `json:"is_paused"`
	LockReason    string     `json:"lock_reason,omitempty"`
	LockUntil     *time.Time `json:"lock_until,omitempty"`
	SafeSearch    bool       `json:"safe_search"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Privileges   []Privilege   `gorm:"foreignKey:ChildID;references:ID" json:"-"`
	TrustSamples []TrustSample `gorm:"foreignKey:ChildID;references:ID" json:"-"`
	TimeBlocks   []TimeBlock   `gorm:"foreignKey:ChildID;references:ID" json:"-"`
	Apps         []AppControl  `gorm:"foreignKey:ChildID;references:ID" json:"-"`
	WebsiteRules []WebsiteRule `gorm:"foreignKey:ChildID;references:ID" json:"-"`
	Alerts       []Alert       `gorm:"foreignKey:ChildID;references:ID" json:"-"`
}

type Privilege struct {
	ID            string `gorm:"primaryKey" json:"id"`
	ChildID       string `gorm:"index" json:"child_id"`
	Name          string `json:"name"`
	RequiredScore int    `json:"required_score"`
}

type TrustSample struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChildID   string    `gorm:"index" json:"child_id"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

type TimeBlock struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	ChildID  string    `gorm:"index:idx_block_day" json:"-"`
	Day      string    `gorm:"index:idx_block_day" json:"-"`
	Position int       `json:"-"`
	Start    string    `json:"start"`
	End      string    `json:"end"`
	Type     BlockType `gorm:"type:varchar(20);check:type IN ('school','bedtime','downtime','free')" json:"type"`
	Label    string    `json:"label"`
}

// DaySchedule is assembled from the stored blocks of one day label
// (for example "Mon-Fri" or "Weekend").
type DaySchedule struct {
	Day    string      `json:"day"`
	Blocks []TimeBlock `json:"blocks"`
}

type AppControl struct {
	ID        string `gorm:"primaryKey" json:"id"`
	ChildID   string `gorm:"index" json:"child_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	IsAllowed bool   `json:"is_allowed"`
	IsPaused  bool   `json:"is_paused"`
	TimeLimit *int   `json:"time_limit,omitempty"`
	TimeUsed  int    `json:"time_used"`
}

type WebsiteRule struct {
	ID        string `gorm:"primaryKey" json:"id"`
	ChildID   string `gorm:"uniqueIndex:idx_rule_domain" json:"child_id"`
	Domain    string `gorm:"uniqueIndex:idx_rule_domain" json:"domain"`
	IsAllowed bool   `json:"is_allowed"`
	Category  string `json:"category,omitempty"`
}

// Alert fields are written once by the monitoring side; only IsRead changes
// afterwards. Dismissal is a soft delete through DeletedAt.
type Alert struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	ChildID     string         `gorm:"index" json:"child_id"`
	ChildName   string         `json:"child_name"`
	Type        AlertType      `gorm:"type:varchar(20);check:type IN ('bypass','fail-closed','risky-message','time-limit')" json:"type"`
	Severity    Severity       `gorm:"type:varchar(10);check:severity IN ('low','medium','high')" json:"severity"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Timestamp   time.Time      `gorm:"index" json:"timestamp"`
	IsRead      bool           `json:"is_read"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type EventKind string

const (
	EventChildUpdated    EventKind = "child.updated"
	EventAppUpdated      EventKind = "app.updated"
	EventWebRulesUpdated EventKind = "web_rules.updated"
	EventScheduleUpdated EventKind = "schedule.updated"
	EventAlertRaised     EventKind = "alert.raised"
	EventAlertRead       EventKind = "alert.read"
	EventAlertDismissed  EventKind = "alert.dismissed"
)

// Event is a state change pushed to live dashboard connections. Not stored.
type Event struct {
	Kind      EventKind `json:"kind"`
	ChildID   string    `json:"child_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}
