package http

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	z "github.com/Oudwins/zog"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"liyu1981.xyz/minute-policy-service/pkg/family"
)

const (
	ErrorKindValidation  = "validation"
	ErrorKindNotFound    = "not_found"
	ErrorKindConflict    = "conflict"
	ErrorKindRateLimited = "rate_limited"
	ErrorKindInternal    = "internal"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func abortWithKind(c *gin.Context, status int, kind string, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: kind, Message: message})
}

// abortWithError maps a family error onto its status and kind. Anything
// unrecognised is an internal error and gets logged.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, family.ErrInvalidInput):
		abortWithKind(c, http.StatusBadRequest, ErrorKindValidation, err.Error())
	case errors.Is(err, family.ErrNotFound):
		abortWithKind(c, http.StatusNotFound, ErrorKindNotFound, err.Error())
	case errors.Is(err, family.ErrConflict):
		abortWithKind(c, http.StatusConflict, ErrorKindConflict, err.Error())
	default:
		restfulLogger(c).Error("request failed", zap.Error(err))
		abortWithKind(c, http.StatusInternalServerError, ErrorKindInternal, err.Error())
	}
}

func abortWithBindError(c *gin.Context, err error) {
	abortWithKind(c, http.StatusBadRequest, ErrorKindValidation, fmt.Sprintf("invalid request body: %v", err))
}

func abortWithIssues(c *gin.Context, issues z.ZogIssueMap) {
	abortWithKind(c, http.StatusBadRequest, ErrorKindValidation, issueMessage(issues))
}

func issueMessage(issues z.ZogIssueMap) string {
	var parts []string
	for field, list := range issues {
		if strings.HasPrefix(field, "$") {
			continue
		}
		for _, issue := range list {
			parts = append(parts, field+": "+issue.Message)
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
