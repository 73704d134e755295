package calendar_test

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ymnkynp/monkey-timeoff/internal/calendar"
	"github.com/ymnkynp/monkey-timeoff/internal/employee"
	"github.com/ymnkynp/monkey-timeoff/internal/leave"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveSource struct {
	findApprovedInRangeFn func(ctx context.Context, start, end time.Time) ([]leave.Leave, error)
}

func (f *fakeLeaveSource) FindApprovedInRange(ctx context.Context, start, end time.Time) ([]leave.Leave, error) {
	if f.findApprovedInRangeFn != nil {
		return f.findApprovedInRangeFn(ctx, start, end)
	}
	return nil, nil
}

type fakeNameDirectory struct {
	getByIDFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
}

func (f *fakeNameDirectory) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return employee.EmployeeResponse{}, errors.New("no lookup configured")
}

func approvedLeave(employeeID uuid.UUID, leaveType string, start, end time.Time, days int) leave.Leave {
	return leave.Leave{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		StartDate:  start,
		EndDate:    end,
		TotalDays:  days,
		Status:     leave.StatusApproved,
	}
}

func TestCalendarService_BuildICS(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)

	t.Run("success renders all-day events with exclusive DTEND", func(t *testing.T) {
		source := &fakeLeaveSource{
			findApprovedInRangeFn: func(_ context.Context, _, _ time.Time) ([]leave.Leave, error) {
				return []leave.Leave{approvedLeave(employeeID, "ANNUAL", start, end, 3)}, nil
			},
		}
		directory := &fakeNameDirectory{
			getByIDFn: func(_ context.Context, _ string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{ID: employeeID.String(), FullName: "Sari Wulandari"}, nil
			},
		}
		svc := calendar.NewService(source, directory)

		feed, err := svc.BuildICS(ctx, start, end)

		assert.NoError(t, err)
		assert.Contains(t, feed, "BEGIN:VCALENDAR\r\n")
		assert.Contains(t, feed, "DTSTART;VALUE=DATE:20260907\r\n")
		// DTEND is exclusive: a leave ending Sep 9 ends the morning of Sep 10.
		assert.Contains(t, feed, "DTEND;VALUE=DATE:20260910\r\n")
		assert.Contains(t, feed, "SUMMARY:Sari Wulandari (ANNUAL)\r\n")
		assert.Contains(t, feed, "END:VCALENDAR\r\n")
	})

	t.Run("success escapes reserved characters in names", func(t *testing.T) {
		source := &fakeLeaveSource{
			findApprovedInRangeFn: func(_ context.Context, _, _ time.Time) ([]leave.Leave, error) {
				return []leave.Leave{approvedLeave(employeeID, "SICK", start, end, 3)}, nil
			},
		}
		directory := &fakeNameDirectory{
			getByIDFn: func(_ context.Context, _ string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{FullName: "Wulandari, Sari"}, nil
			},
		}
		svc := calendar.NewService(source, directory)

		feed, err := svc.BuildICS(ctx, start, end)

		assert.NoError(t, err)
		assert.Contains(t, feed, "SUMMARY:Wulandari\\, Sari (SICK)\r\n")
	})

	t.Run("success falls back to the raw id when a lookup fails", func(t *testing.T) {
		source := &fakeLeaveSource{
			findApprovedInRangeFn: func(_ context.Context, _, _ time.Time) ([]leave.Leave, error) {
				return []leave.Leave{approvedLeave(employeeID, "ANNUAL", start, end, 3)}, nil
			},
		}
		svc := calendar.NewService(source, &fakeNameDirectory{})

		feed, err := svc.BuildICS(ctx, start, end)

		assert.NoError(t, err)
		assert.Contains(t, feed, "SUMMARY:"+employeeID.String()+" (ANNUAL)\r\n")
	})

	t.Run("negative source failure", func(t *testing.T) {
		source := &fakeLeaveSource{
			findApprovedInRangeFn: func(_ context.Context, _, _ time.Time) ([]leave.Leave, error) {
				return nil, errors.New("connection refused")
			},
		}
		svc := calendar.NewService(source, &fakeNameDirectory{})

		_, err := svc.BuildICS(ctx, start, end)

		assert.Error(t, err)
	})
}

func TestCalendarService_BuildCSV(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)

	source := &fakeLeaveSource{
		findApprovedInRangeFn: func(_ context.Context, _, _ time.Time) ([]leave.Leave, error) {
			return []leave.Leave{approvedLeave(employeeID, "UNPAID", start, end, 5)}, nil
		},
	}
	directory := &fakeNameDirectory{
		getByIDFn: func(_ context.Context, _ string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{FullName: "Budi Santoso"}, nil
		},
	}
	svc := calendar.NewService(source, directory)

	out, err := svc.BuildCSV(ctx, start, end)
	assert.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, []string{"employee_id", "employee_name", "leave_type", "start_date", "end_date", "total_days"}, records[0])
	assert.Equal(t, []string{employeeID.String(), "Budi Santoso", "UNPAID", "2026-09-07", "2026-09-11", "5"}, records[1])
}
