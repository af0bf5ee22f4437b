package grpc

import (
	"context"
	"time"

	z "github.com/Oudwins/zog"
	"golang.org/x/time/rate"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/minute-policy-service/pkg/models"
)

type ChildRef struct {
	ChildID string `json:"child_id"`
}

var childRefSchema = z.Struct(z.Shape{
	"ChildID": z.String().Min(1).Required(),
})

type SetLockRequest struct {
	ChildID string     `json:"child_id"`
	Locked  bool       `json:"locked"`
	Reason  string     `json:"reason"`
	Until   *time.Time `json:"until"`
}

var setLockSchema = z.Struct(z.Shape{
	"ChildID": z.String().Min(1).Required(),
	"Reason":  z.String().Max(200),
})

type SetPausedRequest struct {
	ChildID string `json:"child_id"`
	Paused  bool   `json:"paused"`
}

type MinutesRequest struct {
	ChildID string `json:"child_id"`
	Minutes int    `json:"minutes"`
}

var minutesSchema = z.Struct(z.Shape{
	"ChildID": z.String().Min(1).Required(),
	"Minutes": z.Int().GTE(0).LTE(24 * 60),
})

type TrustRequest struct {
	ChildID string `json:"child_id"`
	Score   int    `json:"score"`
}

var trustSchema = z.Struct(z.Shape{
	"ChildID": z.String().Min(1).Required(),
	"Score":   z.Int().GTE(0).LTE(100),
})

type AppFlagRequest struct {
	AppID string `json:"app_id"`
	Value bool   `json:"value"`
}

var appFlagSchema = z.Struct(z.Shape{
	"AppID": z.String().Min(1).Required(),
})

type AppTimeLimitRequest struct {
	AppID     string `json:"app_id"`
	TimeLimit *int   `json:"time_limit"`
}

type AddWebRuleRequest struct {
	ChildID   string `json:"child_id"`
	Domain    string `json:"domain"`
	IsAllowed bool   `json:"is_allowed"`
	Category  string `json:"category"`
}

var addWebRuleSchema = z.Struct(z.Shape{
	"ChildID":  z.String().Min(1).Required(),
	"Domain":   z.String().Min(1).Max(253).Required(),
	"Category": z.String().Max(64),
})

type RuleRef struct {
	RuleID string `json:"rule_id"`
}

type AlertRef struct {
	AlertID string `json:"alert_id"`
}

type SetLimiterRequest struct {
	ChildID string  `json:"child_id"`
	Rate    float64 `json:"rate"`
	Burst   int     `json:"burst"`
}

var setLimiterSchema = z.Struct(z.Shape{
	"ChildID": z.String().Min(1).Required(),
	"Rate":    z.Float64().GT(0).Required(),
	"Burst":   z.Int().GT(0).Required(),
})

func validateID(name string, id *string) error {
	if issues := z.String().Min(1).Required().Validate(id); issues != nil {
		return status.Errorf(codes.InvalidArgument, "validation error: %s %s", name, issues[0].Message)
	}
	return nil
}

// bind decodes in into req and runs schema over it when one is given.
func bind[T any](in *structpb.Struct, req *T, schema *z.StructSchema) error {
	if err := decodeStruct(in, req); err != nil {
		return invalidArgument(err)
	}
	if schema == nil {
		return nil
	}
	if issues := schema.Validate(req); issues != nil {
		return issuesError(issues)
	}
	return nil
}

func (s *PolicyServer) GetChild(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req ChildRef
	if err := bind(in, &req, childRefSchema); err != nil {
		return nil, err
	}
	return reply(s.Family.Child.GetChild(req.ChildID))
}

func (s *PolicyServer) SetLock(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req SetLockRequest
	if err := bind(in, &req, setLockSchema); err != nil {
		return nil, err
	}
	return reply(s.Family.Child.SetLocked(req.ChildID, req.Locked, req.Reason, req.Until))
}

func (s *PolicyServer) SetPaused(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req SetPausedRequest
	if err := bind(in, &req, childRefSchema); err != nil {
		return nil, err
	}
	return reply(s.Family.Child.SetPaused(req.ChildID, req.Paused))
}

func (s *PolicyServer) ApproveAccess(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req MinutesRequest
	if err := bind(in, &req, minutesSchema); err != nil {
		return nil, err
	}
	return reply(s.Family.Child.ApproveAccess(req.ChildID, req.Minutes))
}

func (s *PolicyServer) RecordUsage(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req MinutesRequest
	if err := bind(in, &req, minutesSchema); err != nil {
		return nil, err
	}
	return reply(s.Family.Child.RecordUsage(req.ChildID, req.Minutes))
}

func (s *PolicyServer) SetTrustScore(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req TrustRequest
	if err := bind(in, &req, trustSchema); err != nil {
		return nil, err
	}
	return reply(s.Family.Child.SetTrustScore(req.ChildID, req.Score))
}

func (s *PolicyServer) SetAppAllowed(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req AppFlagRequest
	if err := bind(in, &req, appFlagSchema); err != nil {
		return nil, err
	}
	return reply(s.Family.Control.SetAppAllowed(req.AppID, req.Value))
}

func (s *PolicyServer) SetAppPaused(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req AppFlagRequest
	if err := bind(in, &req, appFlagSchema); err != nil {
		return nil, err
	}
	return reply(s.Family.Control.SetAppPaused(req.AppID, req.Value))
}

func (s *PolicyServer) SetAppTimeLimit(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req AppTimeLimitRequest
	if err := bind(in, &req, appFlagSchema); err != nil {
		return nil, err
	}
	return reply(s.Family.Control.SetAppTimeLimit(req.AppID, req.TimeLimit))
}

func (s *PolicyServer) AddWebRule(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req AddWebRuleRequest
	if err := bind(in, &req, addWebRuleSchema); err != nil {
		return nil, err
	}
	return reply(s.Family.Control.AddWebRule(req.ChildID, &models.WebsiteRule{
		Domain:    req.Domain,
		IsAllowed: req.IsAllowed,
		Category:  req.Category,
	}))
}

func (s *PolicyServer) RemoveWebRule(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req RuleRef
	if err := bind(in, &req, nil); err != nil {
		return nil, err
	}
	if err := validateID("rule_id", &req.RuleID); err != nil {
		return nil, err
	}
	return reply(map[string]any{"status": "ok"}, s.Family.Control.RemoveWebRule(req.RuleID))
}

// ListAlerts with an empty child_id lists the whole household.
func (s *PolicyServer) ListAlerts(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req ChildRef
	if err := bind(in, &req, nil); err != nil {
		return nil, err
	}
	return reply(s.Family.Alert.ListAlerts(req.ChildID))
}

func (s *PolicyServer) MarkAlertRead(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req AlertRef
	if err := bind(in, &req, nil); err != nil {
		return nil, err
	}
	if err := validateID("alert_id", &req.AlertID); err != nil {
		return nil, err
	}
	return reply(s.Family.Alert.MarkRead(req.AlertID))
}

func (s *PolicyServer) DismissAlert(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req AlertRef
	if err := bind(in, &req, nil); err != nil {
		return nil, err
	}
	if err := validateID("alert_id", &req.AlertID); err != nil {
		return nil, err
	}
	return reply(map[string]any{"status": "ok"}, s.Family.Alert.Dismiss(req.AlertID))
}

func (s *PolicyServer) SetLimiter(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req SetLimiterRequest
	if err := bind(in, &req, setLimiterSchema); err != nil {
		return nil, err
	}

	if s.RateLimiterStore == nil {
		return reply(map[string]any{"status": "ignored", "message": "rate limiting is disabled"}, nil)
	}
	s.RateLimiterStore.SetLimiter(req.ChildID, rate.Limit(req.Rate), req.Burst)
	return reply(map[string]any{"status": "ok"}, nil)
}
