package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/project-api/internal/core/domain"
	"github.com/taskhive/project-api/internal/core/ports"
)

type stubTaskService struct {
	createFn func(ctx context.Context, actor ports.Identity, projectID string, input ports.CreateTaskInput) (*domain.Task, error)
}

func (s *stubTaskService) Create(ctx context.Context, actor ports.Identity, projectID string, input ports.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, actor, projectID, input)
}

func TestTaskHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, actor ports.Identity, projectID string, input ports.CreateTaskInput) (*domain.Task, error) {
			if projectID != "p1" || input.Type != "Bug" || input.Status != "Backlog" {
				t.Fatalf("unexpected args: %s %+v", projectID, input)
			}
			return &domain.Task{
				ID:        "t1",
				ProjectID: projectID,
				Title:     input.Title,
				Type:      domain.TaskType(input.Type),
				Status:    domain.TaskStatus(input.Status),
				Reporter:  input.Reporter,
				Assignees: input.Assignees,
			}, nil
		},
	}
	handler := NewTaskHandler(stub)

	body := strings.NewReader(`{"title":"Fix login","type":"Bug","status":"Backlog","reporter":"m1","assignees":["m2"]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/projects/p1/tasks", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "t1" || resp["type"] != "Bug" || resp["status"] != "Backlog" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTaskHandler_Create_InvalidType(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, actor ports.Identity, projectID string, input ports.CreateTaskInput) (*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTaskHandler(stub)

	body := strings.NewReader(`{"title":"Fix login","type":"Epic","status":"Backlog","reporter":"m1"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/projects/p1/tasks", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	err := handler.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestTaskHandler_Create_NotAMember(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, actor ports.Identity, projectID string, input ports.CreateTaskInput) (*domain.Task, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewTaskHandler(stub)

	body := strings.NewReader(`{"title":"Fix login","type":"Bug","status":"Backlog","reporter":"m1"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/projects/p1/tasks", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	err := handler.Create(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
