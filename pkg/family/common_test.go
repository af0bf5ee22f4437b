package family_test

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/minute-policy-service/pkg/db"
	"liyu1981.xyz/minute-policy-service/pkg/family"
	"liyu1981.xyz/minute-policy-service/pkg/family/mocks"
	"liyu1981.xyz/minute-policy-service/pkg/models"
)

type mockServices struct {
	Child    *mocks.MockIChild
	Control  *mocks.MockIControl
	Schedule *mocks.MockISchedule
	Alert    *mocks.MockIAlert
	Notifier *mocks.MockINotifier
}

type useMocks struct {
	Child, Control, Schedule, Alert, Notifier bool
}

func GetMockFamilyWithMemorySqliteDialector(t *testing.T, use useMocks) (
	*gomock.Controller,
	*family.Family,
	mockServices,
) {
	ctrl := gomock.NewController(t)

	m := mockServices{
		Child:    mocks.NewMockIChild(ctrl),
		Control:  mocks.NewMockIControl(ctrl),
		Schedule: mocks.NewMockISchedule(ctrl),
		Alert:    mocks.NewMockIAlert(ctrl),
		Notifier: mocks.NewMockINotifier(ctrl),
	}

	dbInstance := db.GetInstance(db.UseMemorySqliteDialector()) // ensure migrations
	fam := &family.Family{Db: *dbInstance}

	opts := family.ServiceOpts{
		Child:    fam.GetIChild(),
		Control:  fam.GetIControl(),
		Schedule: fam.GetISchedule(),
		Alert:    fam.GetIAlert(),
	}
	if use.Child {
		opts.Child = m.Child
	}
	if use.Control {
		opts.Control = m.Control
	}
	if use.Schedule {
		opts.Schedule = m.Schedule
	}
	if use.Alert {
		opts.Alert = m.Alert
	}
	if use.Notifier {
		opts.Notifier = m.Notifier
	}
	fam.WithServices(opts)

	return ctrl, fam, m
}

// seedChild creates a child through the store so derived state is built the
// same way as in production.
func seedChild(t *testing.T, fam *family.Family, remaining, limit, score int) *family.ChildState {
	state, err := fam.GetIChild().CreateChild(&models.Child{
		ID:            uuid.NewString(),
		Name:          "Emma",
		RemainingTime: remaining,
		DailyLimit:    limit,
		TrustScore:    score,
		Privileges: []models.Privilege{
			{Name: "Weekend Bonus", RequiredScore: 50},
			{Name: "App Approval", RequiredScore: 60},
			{Name: "Extra Hour", RequiredScore: 70},
			{Name: "Premium Access", RequiredScore: 85},
		},
	})
	require.NoError(t, err)
	return state
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

func findLog(logs []any, match func(lobj map[string]any) bool) bool {
	for _, log := range logs {
		if lobj, ok := log.(map[string]any); ok && match(lobj) {
			return true
		}
	}
	return false
}
