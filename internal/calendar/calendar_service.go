package calendar

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/ymnkynp/monkey-timeoff/internal/employee"
	"github.com/ymnkynp/monkey-timeoff/internal/leave"

	"go.uber.org/zap"
)

// LeaveSource is the slice of the leave module the calendar reads from.
type LeaveSource interface {
	FindApprovedInRange(ctx context.Context, start, end time.Time) ([]leave.Leave, error)
}

// NameDirectory resolves employee display names for feed entries.
type NameDirectory interface {
	GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error)
}

//go:generate mockgen -source=calendar_service.go -destination=mock/calendar_service_mock.go -package=mock
type Service interface {
	BuildICS(ctx context.Context, start, end time.Time) (string, error)
	BuildCSV(ctx context.Context, start, end time.Time) (string, error)
}

type service struct {
	leaves    LeaveSource
	directory NameDirectory
	logger    *zap.Logger
}

func NewService(leaves LeaveSource, directory NameDirectory, logger ...*zap.Logger) Service {
	l := zap.L().Named("calendar.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.service")
	}
	return &service{leaves: leaves, directory: directory, logger: l}
}

// BuildICS renders the approved leaves in [start, end] as an iCalendar
// feed of all-day events. DTEND is exclusive per RFC 5545, hence the
// one-day shift.
func (s *service) BuildICS(ctx context.Context, start, end time.Time) (string, error) {
	leaves, err := s.leaves.FindApprovedInRange(ctx, start, end)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//monkey-timeoff//leave-calendar//EN\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")

	now := time.Now().UTC().Format("20060102T150405Z")
	for _, l := range leaves {
		b.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&b, "UID:%s@monkey-timeoff\r\n", l.ID.String())
		fmt.Fprintf(&b, "DTSTAMP:%s\r\n", now)
		fmt.Fprintf(&b, "DTSTART;VALUE=DATE:%s\r\n", l.StartDate.Format("20060102"))
		fmt.Fprintf(&b, "DTEND;VALUE=DATE:%s\r\n", l.EndDate.AddDate(0, 0, 1).Format("20060102"))
		fmt.Fprintf(&b, "SUMMARY:%s (%s)\r\n", escapeICS(s.displayName(ctx, l.EmployeeID.String())), l.LeaveType)
		b.WriteString("TRANSP:TRANSPARENT\r\n")
		b.WriteString("END:VEVENT\r\n")
	}

	b.WriteString("END:VCALENDAR\r\n")
	return b.String(), nil
}

func (s *service) BuildCSV(ctx context.Context, start, end time.Time) (string, error) {
	leaves, err := s.leaves.FindApprovedInRange(ctx, start, end)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"employee_id", "employee_name", "leave_type", "start_date", "end_date", "total_days"}); err != nil {
		return "", err
	}
	for _, l := range leaves {
		row := []string{
			l.EmployeeID.String(),
			s.displayName(ctx, l.EmployeeID.String()),
			l.LeaveType,
			l.StartDate.Format("2006-01-02"),
			l.EndDate.Format("2006-01-02"),
			fmt.Sprintf("%d", l.TotalDays),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// displayName degrades to the raw id when the directory lookup fails;
// a feed entry without a name beats a broken feed.
func (s *service) displayName(ctx context.Context, employeeID string) string {
	e, err := s.directory.GetByID(ctx, employeeID)
	if err != nil {
		s.logger.Warn("calendar name lookup failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return employeeID
	}
	return e.FullName
}

func escapeICS(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}
