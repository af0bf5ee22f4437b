package family

//go:generate mockgen -source=family.go -destination=mocks/mock_family.go -package=mocks

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"liyu1981.xyz/minute-policy-service/pkg/db"
	"liyu1981.xyz/minute-policy-service/pkg/models"
	"liyu1981.xyz/minute-policy-service/pkg/policy"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// ErrInvalidInput is the policy validation error, re-exported so transports
// only need this package to map failures.
var ErrInvalidInput = policy.ErrInvalidInput

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
}

type IChild interface {
	CreateChild(input *models.Child) (*ChildState, error)
	GetChild(childID string) (*ChildState, error)
	ListChildren() ([]ChildState, error)
	SetLocked(childID string, locked bool, reason string, until *time.Time) (*ChildState, error)
	SetPaused(childID string, paused bool) (*ChildState, error)
	ApproveAccess(childID string, minutes int) (*ChildState, error)
	RecordUsage(childID string, minutes int) (*ChildState, error)
	SetTrustScore(childID string, score int) (*ChildState, error)
	GetTrustHistory(childID string) (*TrustHistory, error)
	SetDailyLimit(childID string, minutes int) (*ChildState, error)
	ResetDay(childID string) (*ChildState, error)
	AddPrivilege(childID string, input *models.Privilege) (*ChildState, error)
	SetSafeSearch(childID string, enabled bool) (*ChildState, error)
}

type IControl interface {
	AddApp(childID string, input *models.AppControl) (*models.AppControl, error)
	ListApps(childID string) ([]models.AppControl, error)
	SetAppAllowed(appID string, allowed bool) (*models.AppControl, error)
	SetAppPaused(appID string, paused bool) (*models.AppControl, error)
	SetAppTimeLimit(appID string, minutes *int) (*models.AppControl, error)
	RecordAppUsage(appID string, minutes int) (*models.AppControl, error)
	AddWebRule(childID string, input *models.WebsiteRule) (*models.WebsiteRule, error)
	RemoveWebRule(ruleID string) error
	ListWebRules(childID string, allowed *bool) ([]models.WebsiteRule, error)
}

type ISchedule interface {
	PutDaySchedule(childID string, day models.DaySchedule) (*policy.PlacedDay, error)
	GetSchedules(childID string) ([]policy.PlacedDay, error)
	GetScheduleStatus(childID string, day string, minute int) (*ScheduleStatus, error)
}

type IAlert interface {
	RaiseAlert(input *models.Alert) (*models.Alert, error)
	ListAlerts(childID string) (*AlertList, error)
	MarkRead(alertID string) (*models.Alert, error)
	Dismiss(alertID string) error
}

// INotifier receives every state change after it is saved. Implementations
// must not block.
type INotifier interface {
	Notify(event models.Event)
}

// Family owns the household state. Mutating commands are serialized on mu so
// each load, rule, save sequence sees the previous one's result.
type Family struct {
	Db       db.DB
	Child    IChild
	Control  IControl
	Schedule ISchedule
	Alert    IAlert
	Notifier INotifier
	Clock    func() time.Time

	mu sync.Mutex
}

type ServiceOpts struct {
	Child    IChild
	Control  IControl
	Schedule ISchedule
	Alert    IAlert
	Notifier INotifier
}

func (f *Family) WithServices(opts ServiceOpts) *Family {
	if opts.Child != nil {
		f.Child = opts.Child
	}
	if opts.Control != nil {
		f.Control = opts.Control
	}
	if opts.Schedule != nil {
		f.Schedule = opts.Schedule
	}
	if opts.Alert != nil {
		f.Alert = opts.Alert
	}
	if opts.Notifier != nil {
		f.Notifier = opts.Notifier
	}
	return f
}

// WithDefaultServices wires the store backed implementation of every service.
func (f *Family) WithDefaultServices() *Family {
	return f.WithServices(ServiceOpts{
		Child:    f.GetIChild(),
		Control:  f.GetIControl(),
		Schedule: f.GetISchedule(),
		Alert:    f.GetIAlert(),
	})
}

func (f *Family) now() time.Time {
	if f.Clock != nil {
		return f.Clock()
	}
	return time.Now()
}

func (f *Family) notify(kind models.EventKind, childID string, payload any) {
	if f.Notifier == nil {
		return
	}
	f.Notifier.Notify(models.Event{
		Kind:      kind,
		ChildID:   childID,
		Timestamp: f.now(),
		Payload:   payload,
	})
}
