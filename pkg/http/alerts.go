package http

import (
	"net/http"
	"time"

	z "github.com/Oudwins/zog"
	"github.com/gin-gonic/gin"
	"liyu1981.xyz/minute-policy-service/pkg/models"
)

type AlertRequest struct {
	ID          string     `json:"id"`
	ChildID     string     `json:"child_id"`
	ChildName   string     `json:"child_name"`
	Type        string     `json:"type"`
	Severity    string     `json:"severity"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Timestamp   *time.Time `json:"timestamp"`
}

var alertRequestSchema = z.Struct(z.Shape{
	"ChildID": z.String().Min(1).Required(),
	"Type": z.String().OneOf([]string{
		string(models.AlertTypeBypass),
		string(models.AlertTypeFailClosed),
		string(models.AlertTypeRiskyMessage),
		string(models.AlertTypeTimeLimit),
	}).Required(),
	"Severity": z.String().OneOf([]string{
		string(models.SeverityLow),
		string(models.SeverityMedium),
		string(models.SeverityHigh),
	}).Required(),
	"Title":       z.String().Max(120),
	"Description": z.String().Max(1000),
})

// ListAlerts lists one child's alerts with ?child_id=, otherwise the whole
// household.
func (rs *RestfulServer) ListAlerts(c *gin.Context) {
	list, err := rs.Family.Alert.ListAlerts(c.Query("child_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (rs *RestfulServer) RaiseAlert(c *gin.Context) {
	var req AlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	if issues := alertRequestSchema.Validate(&req); issues != nil {
		abortWithIssues(c, issues)
		return
	}

	if !rs.CheckChildLimiter(req.ChildID) {
		abortWithKind(c, http.StatusTooManyRequests, ErrorKindRateLimited, "rate limit exceeded")
		return
	}

	alert := models.Alert{
		ID:          req.ID,
		ChildID:     req.ChildID,
		ChildName:   req.ChildName,
		Type:        models.AlertType(req.Type),
		Severity:    models.Severity(req.Severity),
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Timestamp != nil {
		alert.Timestamp = *req.Timestamp
	}

	saved, err := rs.Family.Alert.RaiseAlert(&alert)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (rs *RestfulServer) MarkAlertRead(c *gin.Context) {
	alert, err := rs.Family.Alert.MarkRead(c.Param("alert_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (rs *RestfulServer) DismissAlert(c *gin.Context) {
	if err := rs.Family.Alert.Dismiss(c.Param("alert_id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
