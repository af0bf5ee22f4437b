package http

import (
	"net/http"
	"time"

	z "github.com/Oudwins/zog"
	"github.com/gin-gonic/gin"
	"liyu1981.xyz/minute-policy-service/pkg/common"
	"liyu1981.xyz/minute-policy-service/pkg/models"
	"liyu1981.xyz/minute-policy-service/pkg/policy"
)

type BlockRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

var blockRequestSchema = z.Struct(z.Shape{
	"Start": z.String().Len(5).Required(),
	"End":   z.String().Len(5).Required(),
	"Type": z.String().OneOf([]string{
		string(models.BlockTypeSchool),
		string(models.BlockTypeBedtime),
		string(models.BlockTypeDowntime),
		string(models.BlockTypeFree),
	}).Required(),
	"Label": z.String().Max(64),
})

type DayScheduleRequest struct {
	Blocks []BlockRequest `json:"blocks"`
}

func (rs *RestfulServer) GetSchedules(c *gin.Context) {
	days, err := rs.Family.Schedule.GetSchedules(c.Param("child_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

// PutDaySchedule replaces every block of the day; an empty list removes it.
func (rs *RestfulServer) PutDaySchedule(c *gin.Context) {
	var req DayScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	for i := range req.Blocks {
		if issues := blockRequestSchema.Validate(&req.Blocks[i]); issues != nil {
			abortWithIssues(c, issues)
			return
		}
	}
	blocks := common.Mapper(req.Blocks, func(b BlockRequest) models.TimeBlock {
		return models.TimeBlock{Start: b.Start, End: b.End, Type: models.BlockType(b.Type), Label: b.Label}
	})

	placed, err := rs.Family.Schedule.PutDaySchedule(c.Param("child_id"), models.DaySchedule{
		Day:    c.Param("day"),
		Blocks: blocks,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, placed)
}

// GetScheduleStatus answers for ?at=HH:MM, or the server's local time when
// at is missing.
func (rs *RestfulServer) GetScheduleStatus(c *gin.Context) {
	now := time.Now()
	minute := now.Hour()*60 + now.Minute()
	if at := c.Query("at"); at != "" {
		m, err := policy.ParseClock(at)
		if err != nil {
			abortWithError(c, err)
			return
		}
		minute = m
	}

	status, err := rs.Family.Schedule.GetScheduleStatus(c.Param("child_id"), c.Param("day"), minute)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
