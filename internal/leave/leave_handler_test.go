package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ymnkynp/monkey-timeoff/internal/leave"
	leaveerrors "github.com/ymnkynp/monkey-timeoff/internal/leave/errors"
	"github.com/ymnkynp/monkey-timeoff/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	submitFn     func(ctx context.Context, employeeID string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error)
	decideFn     func(ctx context.Context, approverID, leaveID string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error)
	revokeFn     func(ctx context.Context, actorID, leaveID string) (leave.LeaveResponse, error)
	cancelFn     func(ctx context.Context, actorID, leaveID string) (leave.LeaveResponse, error)
	getByIDFn    func(ctx context.Context, id string) (leave.LeaveResponse, error)
	getAllFn     func(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error)
	getPendingFn func(ctx context.Context, approverID string) ([]leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, employeeID string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	return f.submitFn(ctx, employeeID, req)
}
func (f *fakeLeaveService) Decide(ctx context.Context, approverID, leaveID string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
	return f.decideFn(ctx, approverID, leaveID, req)
}
func (f *fakeLeaveService) Revoke(ctx context.Context, actorID, leaveID string) (leave.LeaveResponse, error) {
	return f.revokeFn(ctx, actorID, leaveID)
}
func (f *fakeLeaveService) Cancel(ctx context.Context, actorID, leaveID string) (leave.LeaveResponse, error) {
	return f.cancelFn(ctx, actorID, leaveID)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeLeaveService) GetAllByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx, employeeID)
}
func (f *fakeLeaveService) GetPendingForApprover(ctx context.Context, approverID string) ([]leave.LeaveResponse, error) {
	return f.getPendingFn(ctx, approverID)
}

func TestLeaveHandler_Submit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		employeeID := uuid.New().String()

		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, eid string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, employeeID, eid)
				assert.Equal(t, "ANNUAL", req.LeaveType)
				return leave.LeaveResponse{
					ID:         uuid.New().String(),
					EmployeeID: eid,
					LeaveType:  req.LeaveType,
					StartDate:  req.StartDate,
					EndDate:    req.EndDate,
					TotalDays:  3,
					Status:     leave.StatusNew,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type":"ANNUAL","start_date":"2026-09-07","end_date":"2026-09-09","comment":"trip"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", employeeID)

		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, employeeID, got.EmployeeID)
		assert.Equal(t, leave.StatusNew, got.Status)
		assert.Equal(t, 3, got.TotalDays)
	})

	t.Run("negative validation error", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{"leave_type":"HOLIDAY"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", uuid.New().String())

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
	})

	t.Run("negative no manager configured", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, eid string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrNoManagerConfigured
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type":"ANNUAL","start_date":"2026-09-07","end_date":"2026-09-09"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", uuid.New().String())

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, leaveerrors.ErrNoManagerConfigured.Code, env.Error.Code)
	})
}

func TestLeaveHandler_SubmitIdempotency(t *testing.T) {
	employeeID := uuid.New().String()
	body := `{"leave_type":"ANNUAL","start_date":"2026-09-07","end_date":"2026-09-09"}`

	newSubmitContext := func(w *httptest.ResponseRecorder) *gin.Context {
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", employeeID)
		return c
	}

	t.Run("success caches response and releases lock", func(t *testing.T) {
		resp := leave.LeaveResponse{
			ID:         uuid.New().String(),
			EmployeeID: employeeID,
			LeaveType:  "ANNUAL",
			StartDate:  "2026-09-07",
			EndDate:    "2026-09-09",
			TotalDays:  3,
			Status:     leave.StatusNew,
		}
		rdb, redisMock := redismock.NewClientMock()
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, eid string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				return resp, nil
			},
		}

		payload, err := json.Marshal(resp)
		assert.NoError(t, err)

		cacheKey := "idemp:/leaves:" + employeeID + ":req-1"
		lockKey := cacheKey + ":lock"
		redisMock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
		redisMock.ExpectDel(lockKey).SetVal(1)

		h := leave.NewHandlerWithRedis(svc, rdb)
		w := httptest.NewRecorder()
		c := newSubmitContext(w)
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative submit failure still releases lock", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, eid string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrNoManagerConfigured
			},
		}

		cacheKey := "idemp:/leaves:" + employeeID + ":req-2"
		lockKey := cacheKey + ":lock"
		redisMock.ExpectDel(lockKey).SetVal(1)

		h := leave.NewHandlerWithRedis(svc, rdb)
		w := httptest.NewRecorder()
		c := newSubmitContext(w)
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("success without idempotency key skips redis", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, eid string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{ID: uuid.New().String(), Status: leave.StatusNew}, nil
			},
		}

		h := leave.NewHandlerWithRedis(svc, rdb)
		w := httptest.NewRecorder()
		c := newSubmitContext(w)

		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestLeaveHandler_Decide(t *testing.T) {
	leaveID := uuid.New().String()
	approverID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			decideFn: func(ctx context.Context, aid, lid string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, approverID, aid)
				assert.Equal(t, leaveID, lid)
				assert.Equal(t, "APPROVE", req.Decision)
				return leave.LeaveResponse{ID: lid, Status: leave.StatusApproved}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/decision", strings.NewReader(`{"decision":"APPROVE"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", approverID)

		h.Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative already decided maps to conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			decideFn: func(ctx context.Context, aid, lid string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrAlreadyDecided
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/decision", strings.NewReader(`{"decision":"APPROVE"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", approverID)

		h.Decide(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, leaveerrors.ErrAlreadyDecided.Code, env.Error.Code)
	})

	t.Run("negative not an approver maps to forbidden", func(t *testing.T) {
		svc := &fakeLeaveService{
			decideFn: func(ctx context.Context, aid, lid string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrNotAnApprover
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/decision", strings.NewReader(`{"decision":"REJECT"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", approverID)

		h.Decide(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestLeaveHandler_Revoke(t *testing.T) {
	leaveID := uuid.New().String()
	managerID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			revokeFn: func(ctx context.Context, aid, lid string) (leave.LeaveResponse, error) {
				assert.Equal(t, managerID, aid)
				assert.Equal(t, leaveID, lid)
				return leave.LeaveResponse{ID: lid, Status: leave.StatusPendedRevoke}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/revoke", nil)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", managerID)

		h.Revoke(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, leave.StatusPendedRevoke, got.Status)
	})

	t.Run("negative manager-only action", func(t *testing.T) {
		svc := &fakeLeaveService{
			revokeFn: func(ctx context.Context, aid, lid string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrManagerOnlyAction
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/revoke", nil)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("employee_id", uuid.New().String())

		h.Revoke(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestLeaveHandler_GetPendingApprovals(t *testing.T) {
	approverID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			getPendingFn: func(ctx context.Context, aid string) ([]leave.LeaveResponse, error) {
				assert.Equal(t, approverID, aid)
				return []leave.LeaveResponse{
					{ID: uuid.New().String(), Status: leave.StatusNew},
					{ID: uuid.New().String(), Status: leave.StatusPendedRevoke},
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/pending", nil)
		c.Set("employee_id", approverID)

		h.GetPendingApprovals(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got []leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 2)
	})
}
