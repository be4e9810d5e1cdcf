package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/pustaka-ai/pustaka/internal/middleware"
	"github.com/pustaka-ai/pustaka/internal/pkg/errcode"
	appErr "github.com/pustaka-ai/pustaka/internal/pkg/errors"
	"github.com/pustaka-ai/pustaka/internal/pkg/response"
)

func getUserID(c *gin.Context) int64 {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(int64)
	return userID
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, errcode.ErrInvalid, "invalid id")
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int64("user_id", getUserID(c)),
		zap.Error(err),
	)
	switch err {
	case appErr.ErrUnauthorized:
		response.Error(c, errcode.ErrUnauthorized, "unauthorized")
	case appErr.ErrForbidden:
		response.Error(c, errcode.ErrForbidden, "forbidden")
	case appErr.ErrNotFound:
		response.Error(c, errcode.ErrNotFound, "not found")
	case appErr.ErrInvalid:
		response.Error(c, errcode.ErrInvalid, "invalid request")
	case appErr.ErrConflict:
		response.Error(c, errcode.ErrConflict, "conflict")
	case appErr.ErrUnsupportedFormat:
		response.Error(c, errcode.ErrUnsupportedFormat, "unsupported file format")
	case appErr.ErrEmptyDocument:
		response.Error(c, errcode.ErrEmptyDocument, "document has no extractable text")
	case appErr.ErrStillProcessing:
		response.Error(c, errcode.ErrStillProcessing, "document is still processing")
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
