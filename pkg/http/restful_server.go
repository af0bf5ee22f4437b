package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/minute-policy-service/pkg/common"
	"liyu1981.xyz/minute-policy-service/pkg/family"
)

type RestfulServer struct {
	Server           *gin.Engine
	Family           *family.Family
	RateLimiterStore *family.RateLimiterStore
	Hub              *Hub
}

func restfulLogger(c *gin.Context) *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameRestfulServer,
		zap.String(common.LoggerFieldRemoteAddress, c.ClientIP()),
		zap.String("route", c.FullPath()),
	)
}

func (rs *RestfulServer) CheckChildLimiter(childID string) bool {
	return rs.RateLimiterStore.Allow(childID)
}

func (rs *RestfulServer) SetLimiter(childID string, childRate float64, childBurst int) bool {
	if rs.RateLimiterStore == nil {
		return false
	}
	rs.RateLimiterStore.SetLimiter(childID, rate.Limit(childRate), childBurst)
	return true
}

// limitBy throttles the route on the value of a path parameter.
func (rs *RestfulServer) limitBy(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rs.CheckChildLimiter(c.Param(param)) {
			abortWithKind(c, http.StatusTooManyRequests, ErrorKindRateLimited, "rate limit exceeded")
			return
		}
		c.Next()
	}
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	rs.Server.GET("/children", rs.ListChildren)
	rs.Server.POST("/children", rs.CreateChild)

	// the limiter endpoint itself is never throttled
	rs.Server.POST("/children/:child_id/limiter", rs.PostLimiter)

	children := rs.Server.Group("/children/:child_id", rs.limitBy("child_id"))
	{
		children.GET("", rs.GetChild)
		children.POST("/lock", rs.Lock)
		children.POST("/unlock", rs.Unlock)
		children.POST("/pause", rs.Pause)
		children.POST("/resume", rs.Resume)
		children.POST("/approve-access", rs.ApproveAccess)
		children.POST("/usage", rs.RecordUsage)
		children.POST("/trust", rs.SetTrustScore)
		children.GET("/trust/history", rs.GetTrustHistory)
		children.POST("/daily-limit", rs.SetDailyLimit)
		children.POST("/reset-day", rs.ResetDay)
		children.POST("/privileges", rs.AddPrivilege)
		children.POST("/safe-search", rs.SetSafeSearch)

		children.GET("/apps", rs.ListApps)
		children.POST("/apps", rs.AddApp)

		children.GET("/web-rules", rs.ListWebRules)
		children.POST("/web-rules", rs.AddWebRule)

		children.GET("/schedules", rs.GetSchedules)
		children.PUT("/schedules/:day", rs.PutDaySchedule)
		children.GET("/schedules/:day/status", rs.GetScheduleStatus)
	}

	apps := rs.Server.Group("/apps/:app_id", rs.limitBy("app_id"))
	{
		apps.POST("/allow", rs.SetAppAllowed)
		apps.POST("/pause", rs.SetAppPaused)
		apps.POST("/time-limit", rs.SetAppTimeLimit)
		apps.POST("/usage", rs.RecordAppUsage)
	}

	rs.Server.DELETE("/web-rules/:rule_id", rs.RemoveWebRule)

	rs.Server.GET("/alerts", rs.ListAlerts)
	rs.Server.POST("/alerts", rs.RaiseAlert)
	rs.Server.POST("/alerts/:alert_id/read", rs.MarkAlertRead)
	rs.Server.DELETE("/alerts/:alert_id", rs.DismissAlert)

	if rs.Hub != nil {
		rs.Server.GET("/events", rs.ServeEvents)
	}
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
