package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	z "github.com/Oudwins/zog"
	"github.com/gin-gonic/gin"
	"liyu1981.xyz/minute-policy-service/pkg/common"
	"liyu1981.xyz/minute-policy-service/pkg/models"
)

type PrivilegeRequest struct {
	Name          string `json:"name"`
	RequiredScore int    `json:"required_score"`
}

var privilegeRequestSchema = z.Struct(z.Shape{
	"Name":          z.String().Min(1).Required(),
	"RequiredScore": z.Int().GTE(0).LTE(100),
})

type ChildRequest struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	IsOnline      bool               `json:"is_online"`
	RemainingTime int                `json:"remaining_time"`
	DailyLimit    int                `json:"daily_limit"`
	TrustScore    int                `json:"trust_score"`
	SafeSearch    bool               `json:"safe_search"`
	Privileges    []PrivilegeRequest `json:"privileges"`
}

var childRequestSchema = z.Struct(z.Shape{
	"Name":          z.String().Min(1).Max(64).Required(),
	"RemainingTime": z.Int().GTE(0),
	"DailyLimit":    z.Int().GTE(0),
	"TrustScore":    z.Int().GTE(0).LTE(100),
})

func (rs *RestfulServer) ListChildren(c *gin.Context) {
	children, err := rs.Family.Child.ListChildren()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, children)
}

func (rs *RestfulServer) CreateChild(c *gin.Context) {
	var req ChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	if issues := childRequestSchema.Validate(&req); issues != nil {
		abortWithIssues(c, issues)
		return
	}

	for i := range req.Privileges {
		if issues := privilegeRequestSchema.Validate(&req.Privileges[i]); issues != nil {
			abortWithIssues(c, issues)
			return
		}
	}
	privileges := common.Mapper(req.Privileges, func(p PrivilegeRequest) models.Privilege {
		return models.Privilege{Name: p.Name, RequiredScore: p.RequiredScore}
	})

	state, err := rs.Family.Child.CreateChild(&models.Child{
		ID:            req.ID,
		Name:          req.Name,
		IsOnline:      req.IsOnline,
		RemainingTime: req.RemainingTime,
		DailyLimit:    req.DailyLimit,
		TrustScore:    req.TrustScore,
		SafeSearch:    req.SafeSearch,
		Privileges:    privileges,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

func (rs *RestfulServer) GetChild(c *gin.Context) {
	state, err := rs.Family.Child.GetChild(c.Param("child_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

type LockRequest struct {
	Reason string     `json:"reason"`
	Until  *time.Time `json:"until"`
}

var lockRequestSchema = z.Struct(z.Shape{
	"Reason": z.String().Max(200),
})

// Lock takes an optional body; an empty one locks with no reason and no end.
func (rs *RestfulServer) Lock(c *gin.Context) {
	var req LockRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithBindError(c, err)
		return
	}
	if issues := lockRequestSchema.Validate(&req); issues != nil {
		abortWithIssues(c, issues)
		return
	}

	state, err := rs.Family.Child.SetLocked(c.Param("child_id"), true, req.Reason, req.Until)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (rs *RestfulServer) Unlock(c *gin.Context) {
	state, err := rs.Family.Child.SetLocked(c.Param("child_id"), false, "", nil)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (rs *RestfulServer) Pause(c *gin.Context) {
	rs.setPaused(c, true)
}

func (rs *RestfulServer) Resume(c *gin.Context) {
	rs.setPaused(c, false)
}

func (rs *RestfulServer) setPaused(c *gin.Context, paused bool) {
	state, err := rs.Family.Child.SetPaused(c.Param("child_id"), paused)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// MinutesRequest carries a minute count for allowance commands.
type MinutesRequest struct {
	Minutes int `json:"minutes"`
}

var minutesRequestSchema = z.Struct(z.Shape{
	"Minutes": z.Int().GTE(0).LTE(24 * 60),
})

func bindMinutes(c *gin.Context) (int, bool) {
	var req MinutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return 0, false
	}
	if issues := minutesRequestSchema.Validate(&req); issues != nil {
		abortWithIssues(c, issues)
		return 0, false
	}
	return req.Minutes, true
}

func (rs *RestfulServer) ApproveAccess(c *gin.Context) {
	minutes, ok := bindMinutes(c)
	if !ok {
		return
	}
	state, err := rs.Family.Child.ApproveAccess(c.Param("child_id"), minutes)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (rs *RestfulServer) RecordUsage(c *gin.Context) {
	minutes, ok := bindMinutes(c)
	if !ok {
		return
	}
	state, err := rs.Family.Child.RecordUsage(c.Param("child_id"), minutes)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (rs *RestfulServer) SetDailyLimit(c *gin.Context) {
	minutes, ok := bindMinutes(c)
	if !ok {
		return
	}
	state, err := rs.Family.Child.SetDailyLimit(c.Param("child_id"), minutes)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (rs *RestfulServer) ResetDay(c *gin.Context) {
	state, err := rs.Family.Child.ResetDay(c.Param("child_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

type TrustRequest struct {
	Score int `json:"score"`
}

var trustRequestSchema = z.Struct(z.Shape{
	"Score": z.Int().GTE(0).LTE(100),
})

func (rs *RestfulServer) SetTrustScore(c *gin.Context) {
	var req TrustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	if issues := trustRequestSchema.Validate(&req); issues != nil {
		abortWithIssues(c, issues)
		return
	}

	state, err := rs.Family.Child.SetTrustScore(c.Param("child_id"), req.Score)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (rs *RestfulServer) GetTrustHistory(c *gin.Context) {
	history, err := rs.Family.Child.GetTrustHistory(c.Param("child_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (rs *RestfulServer) AddPrivilege(c *gin.Context) {
	var req PrivilegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	if issues := privilegeRequestSchema.Validate(&req); issues != nil {
		abortWithIssues(c, issues)
		return
	}

	state, err := rs.Family.Child.AddPrivilege(c.Param("child_id"), &models.Privilege{
		Name:          req.Name,
		RequiredScore: req.RequiredScore,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

type SafeSearchRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func (rs *RestfulServer) SetSafeSearch(c *gin.Context) {
	var req SafeSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	state, err := rs.Family.Child.SetSafeSearch(c.Param("child_id"), *req.Enabled)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"Rate":  z.Float64().GT(0).Required(),
	"Burst": z.Int().GT(0).Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	childID := c.Param("child_id")

	var req LimiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	if issues := limiterRequestSchema.Validate(&req); issues != nil {
		abortWithIssues(c, issues)
		return
	}

	if !rs.SetLimiter(childID, req.Rate, req.Burst) {
		c.JSON(http.StatusOK, gin.H{"status": "ignored", "message": "rate limiting is disabled"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
