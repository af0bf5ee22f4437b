package http

import (
	"net/http"
	"strconv"

	z "github.com/Oudwins/zog"
	"github.com/gin-gonic/gin"
	"liyu1981.xyz/minute-policy-service/pkg/models"
)

type AppRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	IsAllowed bool   `json:"is_allowed"`
	IsPaused  bool   `json:"is_paused"`
	TimeLimit *int   `json:"time_limit"`
	TimeUsed  int    `json:"time_used"`
}

var appRequestSchema = z.Struct(z.Shape{
	"Name":     z.String().Min(1).Max(64).Required(),
	"Category": z.String().Max(64),
	"TimeUsed": z.Int().GTE(0),
})

func (rs *RestfulServer) ListApps(c *gin.Context) {
	apps, err := rs.Family.Control.ListApps(c.Param("child_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (rs *RestfulServer) AddApp(c *gin.Context) {
	var req AppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	if issues := appRequestSchema.Validate(&req); issues != nil {
		abortWithIssues(c, issues)
		return
	}

	app, err := rs.Family.Control.AddApp(c.Param("child_id"), &models.AppControl{
		ID:        req.ID,
		Name:      req.Name,
		Category:  req.Category,
		IsAllowed: req.IsAllowed,
		IsPaused:  req.IsPaused,
		TimeLimit: req.TimeLimit,
		TimeUsed:  req.TimeUsed,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

type AppAllowedRequest struct {
	Allowed *bool `json:"allowed" binding:"required"`
}

func (rs *RestfulServer) SetAppAllowed(c *gin.Context) {
	var req AppAllowedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	app, err := rs.Family.Control.SetAppAllowed(c.Param("app_id"), *req.Allowed)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

type AppPausedRequest struct {
	Paused *bool `json:"paused" binding:"required"`
}

func (rs *RestfulServer) SetAppPaused(c *gin.Context) {
	var req AppPausedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	app, err := rs.Family.Control.SetAppPaused(c.Param("app_id"), *req.Paused)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// TimeLimitRequest with a null time_limit removes the limit.
type TimeLimitRequest struct {
	TimeLimit *int `json:"time_limit"`
}

func (rs *RestfulServer) SetAppTimeLimit(c *gin.Context) {
	var req TimeLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	if req.TimeLimit != nil {
		if issues := z.Int().GTE(0).LTE(24 * 60).Validate(req.TimeLimit); issues != nil {
			abortWithKind(c, http.StatusBadRequest, ErrorKindValidation, "time_limit: "+issues[0].Message)
			return
		}
	}

	app, err := rs.Family.Control.SetAppTimeLimit(c.Param("app_id"), req.TimeLimit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (rs *RestfulServer) RecordAppUsage(c *gin.Context) {
	minutes, ok := bindMinutes(c)
	if !ok {
		return
	}
	app, err := rs.Family.Control.RecordAppUsage(c.Param("app_id"), minutes)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

type WebRuleRequest struct {
	Domain    string `json:"domain"`
	IsAllowed bool   `json:"is_allowed"`
	Category  string `json:"category"`
}

var webRuleRequestSchema = z.Struct(z.Shape{
	"Domain":   z.String().Min(1).Max(253).Required(),
	"Category": z.String().Max(64),
})

// ListWebRules filters on ?allowed=true|false when given.
func (rs *RestfulServer) ListWebRules(c *gin.Context) {
	var allowed *bool
	if raw, found := c.GetQuery("allowed"); found {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			abortWithKind(c, http.StatusBadRequest, ErrorKindValidation, "allowed must be true or false")
			return
		}
		allowed = &v
	}

	rules, err := rs.Family.Control.ListWebRules(c.Param("child_id"), allowed)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rules)
}

func (rs *RestfulServer) AddWebRule(c *gin.Context) {
	var req WebRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	if issues := webRuleRequestSchema.Validate(&req); issues != nil {
		abortWithIssues(c, issues)
		return
	}

	rule, err := rs.Family.Control.AddWebRule(c.Param("child_id"), &models.WebsiteRule{
		Domain:    req.Domain,
		IsAllowed: req.IsAllowed,
		Category:  req.Category,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (rs *RestfulServer) RemoveWebRule(c *gin.Context) {
	if err := rs.Family.Control.RemoveWebRule(c.Param("rule_id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
