package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"garagehub/internal/adapter/http/handlers/mocks"
	"garagehub/internal/domain/entities"
	"garagehub/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newJobRouter(h *JobCardHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/jobs", h.CreateJob)
	r.GET("/v1/jobs/:job_id", h.GetJob)
	r.GET("/v1/jobs/:job_id/transitions", h.ListTransitions)
	r.POST("/v1/jobs/:job_id/transition", h.RequestTransition)
	r.POST("/v1/jobs/:job_id/estimate", h.SubmitEstimate)
	r.POST("/v1/jobs/:job_id/estimate/response", h.RespondToEstimate)
	r.POST("/v1/jobs/:job_id/cancel", h.CancelJob)
	r.GET("/v1/job-statuses", h.ListStatuses)
	return r
}

func doRequest(r *gin.Engine, method, path, body string, actor *entities.Actor) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if actor != nil {
		req.Header.Set("X-Actor-ID", actor.ID)
		req.Header.Set("X-Actor-Role", string(actor.Role))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body not json: %v", err)
	}
	return body.Code
}

var testAdvisor = entities.Actor{ID: "sa-1", Role: entities.RoleServiceAdvisor}

func TestJobCardHandler_CreateJob(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIJobCardUseCase(ctrl)
		r := newJobRouter(NewJobCardHandler(uc))

		w := doRequest(r, http.MethodPost, "/v1/jobs", "{", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIJobCardUseCase(ctrl)
		r := newJobRouter(NewJobCardHandler(uc))

		w := doRequest(r, http.MethodPost, "/v1/jobs", `{"customer_id":"cust-1"}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success returns 201", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIJobCardUseCase(ctrl)
		uc.EXPECT().CreateJob(gomock.Any(), gomock.Any()).Return(entities.JobCard{
			ID:        "job-1",
			JobNumber: "JC202608300001",
			Status:    entities.JobStatusRequested,
		}, nil)
		r := newJobRouter(NewJobCardHandler(uc))

		body := `{"customer_id":"cust-1","vehicle_id":"veh-1","branch_id":"br-1","service_type":"regular","intake_type":"drop_off"}`
		w := doRequest(r, http.MethodPost, "/v1/jobs", body, nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
		}

		var resp struct {
			JobNumber string `json:"job_number"`
			Status    string `json:"status"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response not json: %v", err)
		}
		if resp.JobNumber != "JC202608300001" || resp.Status != "requested" {
			t.Fatalf("unexpected response %+v", resp)
		}
	})
}

func TestJobCardHandler_RequestTransition(t *testing.T) {
	t.Run("missing actor headers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIJobCardUseCase(ctrl)
		r := newJobRouter(NewJobCardHandler(uc))

		w := doRequest(r, http.MethodPost, "/v1/jobs/job-1/transition", `{"target_status":"diagnosed"}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if code := errorCode(t, w); code != "INVALID_ACTOR" {
			t.Fatalf("expected INVALID_ACTOR, got %s", code)
		}
	})

	t.Run("rejections map to taxonomy codes", func(t *testing.T) {
		cases := []struct {
			name       string
			ucErr      error
			wantStatus int
			wantCode   string
		}{
			{"invalid transition", usecase.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
			{"role not authorized", usecase.ErrRoleNotAuthorized, http.StatusForbidden, "ROLE_NOT_AUTHORIZED"},
			{"approval gate", usecase.ErrApprovalGateUnmet, http.StatusConflict, "APPROVAL_GATE_UNMET"},
			{"payment gate", usecase.ErrPaymentGateUnmet, http.StatusConflict, "PAYMENT_GATE_UNMET"},
			{"terminal", usecase.ErrJobTerminal, http.StatusConflict, "JOB_TERMINAL"},
			{"concurrent", usecase.ErrConcurrentModification, http.StatusConflict, "CONCURRENT_MODIFICATION"},
			{"not found", usecase.ErrJobNotFound, http.StatusNotFound, "JOB_NOT_FOUND"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				uc := mocks.NewMockIJobCardUseCase(ctrl)
				uc.EXPECT().RequestTransition(gomock.Any(), "job-1", entities.JobStatusDiagnosed, testAdvisor).Return(entities.JobCard{}, tc.ucErr)
				r := newJobRouter(NewJobCardHandler(uc))

				w := doRequest(r, http.MethodPost, "/v1/jobs/job-1/transition", `{"target_status":"diagnosed"}`, &testAdvisor)
				if w.Code != tc.wantStatus {
					t.Fatalf("expected %d, got %d", tc.wantStatus, w.Code)
				}
				if code := errorCode(t, w); code != tc.wantCode {
					t.Fatalf("expected %s, got %s", tc.wantCode, code)
				}
			})
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIJobCardUseCase(ctrl)
		uc.EXPECT().RequestTransition(gomock.Any(), "job-1", entities.JobStatusDiagnosed, testAdvisor).Return(entities.JobCard{
			ID:     "job-1",
			Status: entities.JobStatusDiagnosed,
		}, nil)
		r := newJobRouter(NewJobCardHandler(uc))

		w := doRequest(r, http.MethodPost, "/v1/jobs/job-1/transition", `{"target_status":"diagnosed"}`, &testAdvisor)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
	})
}

func TestJobCardHandler_RespondToEstimate(t *testing.T) {
	cust := entities.Actor{ID: "cust-1", Role: entities.RoleCustomer}

	t.Run("approve decision reaches the usecase", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIJobCardUseCase(ctrl)
		uc.EXPECT().RespondToEstimate(gomock.Any(), "job-1", true, cust).Return(entities.JobCard{
			ID:     "job-1",
			Status: entities.JobStatusEstimateApproved,
		}, nil)
		r := newJobRouter(NewJobCardHandler(uc))

		w := doRequest(r, http.MethodPost, "/v1/jobs/job-1/estimate/response", `{"decision":"approved"}`, &cust)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("unknown decision", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIJobCardUseCase(ctrl)
		r := newJobRouter(NewJobCardHandler(uc))

		w := doRequest(r, http.MethodPost, "/v1/jobs/job-1/estimate/response", `{"decision":"maybe"}`, &cust)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestJobCardHandler_SubmitEstimate(t *testing.T) {
	t.Run("forwards line items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIJobCardUseCase(ctrl)
		uc.EXPECT().SubmitEstimate(gomock.Any(), "job-1", gomock.Any(), testAdvisor).DoAndReturn(
			func(_ interface{}, _ string, cmd usecase.SubmitEstimateCommand, _ entities.Actor) (entities.JobCard, error) {
				if len(cmd.LabourItems) != 1 || cmd.LabourItems[0].Quantity != 2 {
					t.Fatalf("unexpected command %+v", cmd)
				}
				return entities.JobCard{ID: "job-1", Status: entities.JobStatusAwaitingEstimateApproval}, nil
			},
		)
		r := newJobRouter(NewJobCardHandler(uc))

		body := `{"labour_items":[{"description":"Brake pads","quantity":2,"unit_price":"75.00"}]}`
		w := doRequest(r, http.MethodPost, "/v1/jobs/job-1/estimate", body, &testAdvisor)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
	})
}

func TestJobCardHandler_ListStatuses(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIJobCardUseCase(ctrl)
	r := newJobRouter(NewJobCardHandler(uc))

	w := doRequest(r, http.MethodGet, "/v1/job-statuses", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var statuses []struct {
		Status   string `json:"status"`
		Terminal bool   `json:"terminal"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &statuses); err != nil {
		t.Fatalf("response not json: %v", err)
	}
	if len(statuses) != 23 {
		t.Fatalf("expected 23 statuses, got %d", len(statuses))
	}
	if statuses[0].Status != "requested" {
		t.Fatalf("expected requested first, got %s", statuses[0].Status)
	}
}
