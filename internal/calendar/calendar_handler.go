package calendar

import (
	"net/http"
	"time"

	"github.com/ymnkynp/monkey-timeoff/internal/shared/apperror"
	"github.com/ymnkynp/monkey-timeoff/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("calendar.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.handler")
	}
	return &Handler{service: service, logger: l}
}

// parseRange reads from/to query params, defaulting to the current
// calendar year.
func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)

	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, apperror.InvalidField("from")
		}
		start = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, apperror.InvalidField("to")
		}
		end = t
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperror.InvalidField("to")
	}
	return start, end, nil
}

func (h *Handler) GetICS(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	feed, err := h.service.BuildICS(c.Request.Context(), start, end)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="leaves.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

func (h *Handler) GetCSV(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	export, err := h.service.BuildCSV(c.Request.Context(), start, end)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="leaves.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(export))
}
