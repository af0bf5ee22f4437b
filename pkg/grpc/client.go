package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/minute-policy-service/pkg/family"
	"liyu1981.xyz/minute-policy-service/pkg/models"
)

// Client is a typed wrapper over the Struct based PolicyService.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) call(ctx context.Context, method string, req any, out any, opts ...grpc.CallOption) error {
	in, err := encodeStruct(req)
	if err != nil {
		return err
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, resp, opts...); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeStruct(resp, out)
}

func (c *Client) childState(ctx context.Context, method string, req any) (*family.ChildState, error) {
	var state family.ChildState
	if err := c.call(ctx, method, req, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) app(ctx context.Context, method string, req any) (*models.AppControl, error) {
	var app models.AppControl
	if err := c.call(ctx, method, req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) GetChild(ctx context.Context, childID string) (*family.ChildState, error) {
	return c.childState(ctx, MethodGetChild, ChildRef{ChildID: childID})
}

func (c *Client) SetLock(ctx context.Context, childID string, locked bool, reason string, until *time.Time) (*family.ChildState, error) {
	return c.childState(ctx, MethodSetLock, SetLockRequest{ChildID: childID, Locked: locked, Reason: reason, Until: until})
}

func (c *Client) SetPaused(ctx context.Context, childID string, paused bool) (*family.ChildState, error) {
	return c.childState(ctx, MethodSetPaused, SetPausedRequest{ChildID: childID, Paused: paused})
}

func (c *Client) ApproveAccess(ctx context.Context, childID string, minutes int) (*family.ChildState, error) {
	return c.childState(ctx, MethodApproveAccess, MinutesRequest{ChildID: childID, Minutes: minutes})
}

func (c *Client) RecordUsage(ctx context.Context, childID string, minutes int) (*family.ChildState, error) {
	return c.childState(ctx, MethodRecordUsage, MinutesRequest{ChildID: childID, Minutes: minutes})
}

func (c *Client) SetTrustScore(ctx context.Context, childID string, score int) (*family.ChildState, error) {
	return c.childState(ctx, MethodSetTrustScore, TrustRequest{ChildID: childID, Score: score})
}

func (c *Client) SetAppAllowed(ctx context.Context, appID string, allowed bool) (*models.AppControl, error) {
	return c.app(ctx, MethodSetAppAllowed, AppFlagRequest{AppID: appID, Value: allowed})
}

func (c *Client) SetAppPaused(ctx context.Context, appID string, paused bool) (*models.AppControl, error) {
	return c.app(ctx, MethodSetAppPaused, AppFlagRequest{AppID: appID, Value: paused})
}

func (c *Client) SetAppTimeLimit(ctx context.Context, appID string, minutes *int) (*models.AppControl, error) {
	return c.app(ctx, MethodSetAppTimeLimit, AppTimeLimitRequest{AppID: appID, TimeLimit: minutes})
}

func (c *Client) AddWebRule(ctx context.Context, childID string, domain string, allowed bool) (*models.WebsiteRule, error) {
	var rule models.WebsiteRule
	req := AddWebRuleRequest{ChildID: childID, Domain: domain, IsAllowed: allowed}
	if err := c.call(ctx, MethodAddWebRule, req, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (c *Client) RemoveWebRule(ctx context.Context, ruleID string) error {
	return c.call(ctx, MethodRemoveWebRule, RuleRef{RuleID: ruleID}, nil)
}

func (c *Client) ListAlerts(ctx context.Context, childID string) (*family.AlertList, error) {
	var list family.AlertList
	if err := c.call(ctx, MethodListAlerts, ChildRef{ChildID: childID}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) MarkAlertRead(ctx context.Context, alertID string) (*models.Alert, error) {
	var alert models.Alert
	if err := c.call(ctx, MethodMarkAlertRead, AlertRef{AlertID: alertID}, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

func (c *Client) DismissAlert(ctx context.Context, alertID string) error {
	return c.call(ctx, MethodDismissAlert, AlertRef{AlertID: alertID}, nil)
}

func (c *Client) SetLimiter(ctx context.Context, childID string, childRate float64, childBurst int) error {
	return c.call(ctx, MethodSetLimiter, SetLimiterRequest{ChildID: childID, Rate: childRate, Burst: childBurst}, nil)
}
