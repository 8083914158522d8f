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

type stubProjectService struct {
	createFn    func(ctx context.Context, actor ports.Identity, input ports.CreateProjectInput) (*domain.Project, error)
	listFn      func(ctx context.Context, actor ports.Identity) ([]ports.ProjectSummary, error)
	getFn       func(ctx context.Context, slug string) (*domain.ProjectView, error)
	updateFn    func(ctx context.Context, actor ports.Identity, id string, input ports.UpdateProjectInput) error
	removeFn    func(ctx context.Context, actor ports.Identity, id string) error
	addMemberFn func(ctx context.Context, actor ports.Identity, projectID string, input ports.AddMemberInput) (*domain.Member, error)
}

func (s *stubProjectService) Create(ctx context.Context, actor ports.Identity, input ports.CreateProjectInput) (*domain.Project, error) {
	return s.createFn(ctx, actor, input)
}

func (s *stubProjectService) List(ctx context.Context, actor ports.Identity) ([]ports.ProjectSummary, error) {
	return s.listFn(ctx, actor)
}

func (s *stubProjectService) Get(ctx context.Context, slug string) (*domain.ProjectView, error) {
	return s.getFn(ctx, slug)
}

func (s *stubProjectService) Update(ctx context.Context, actor ports.Identity, id string, input ports.UpdateProjectInput) error {
	return s.updateFn(ctx, actor, id, input)
}

func (s *stubProjectService) Remove(ctx context.Context, actor ports.Identity, id string) error {
	return s.removeFn(ctx, actor, id)
}

func (s *stubProjectService) AddMember(ctx context.Context, actor ports.Identity, projectID string, input ports.AddMemberInput) (*domain.Member, error) {
	return s.addMemberFn(ctx, actor, projectID, input)
}

type stubReportService struct {
	reportFn func(ctx context.Context, slug string) (*domain.ProjectReport, error)
}

func (s *stubReportService) Report(ctx context.Context, slug string) (*domain.ProjectReport, error) {
	return s.reportFn(ctx, slug)
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("email", "ana@example.com")
	c.Set("first_name", "Ana")
	c.Set("last_name", "Lima")
	return c
}

func TestProjectHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		createFn: func(ctx context.Context, actor ports.Identity, input ports.CreateProjectInput) (*domain.Project, error) {
			if actor.Email != "ana@example.com" {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			if input.Title != "Apollo" || input.URL != "apollo" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Project{ID: "p1", Title: input.Title, URL: input.URL}, nil
		},
	}
	handler := NewProjectHandler(stub, &stubReportService{})

	body := strings.NewReader(`{"title":"Apollo","url":"apollo","description":"launch tracker"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/projects", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

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
	if resp["id"] != "p1" || resp["title"] != "Apollo" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProjectHandler_Create_MissingTitle(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		createFn: func(ctx context.Context, actor ports.Identity, input ports.CreateProjectInput) (*domain.Project, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewProjectHandler(stub, &stubReportService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/projects", strings.NewReader(`{"url":"apollo"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	err := handler.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProjectHandler_Create_NoClaims(t *testing.T) {
	e := newTestEcho()
	handler := NewProjectHandler(&stubProjectService{}, &stubReportService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/projects", strings.NewReader(`{"title":"Apollo","url":"apollo"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestProjectHandler_List(t *testing.T) {
	e := newTestEcho()
	pm := &domain.Member{ID: "m1", Email: "ana@example.com", FullName: "Ana Lima", Role: domain.RoleAdministrator}
	stub := &stubProjectService{
		listFn: func(ctx context.Context, actor ports.Identity) ([]ports.ProjectSummary, error) {
			return []ports.ProjectSummary{
				{ID: "p1", Title: "Apollo", URL: "apollo", MemberCount: 2, TaskCount: 5, PM: pm},
			}, nil
		},
	}
	handler := NewProjectHandler(stub, &stubReportService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/projects", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("expected one summary, got %+v", resp)
	}
	item := data[0].(map[string]any)
	if item["member_count"] != float64(2) || item["task_count"] != float64(5) {
		t.Fatalf("unexpected counts: %+v", item)
	}
	pmPayload, ok := item["pm"].(map[string]any)
	if !ok || pmPayload["email"] != "ana@example.com" {
		t.Fatalf("expected pm snapshot, got %+v", item)
	}
}

func TestProjectHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		getFn: func(ctx context.Context, slug string) (*domain.ProjectView, error) {
			return nil, domain.ErrProjectNotFound
		},
	}
	handler := NewProjectHandler(stub, &stubReportService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/projects/ghost", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("ghost")

	err := handler.Get(c)
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectHandler_Get_ResolvesRelations(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		getFn: func(ctx context.Context, slug string) (*domain.ProjectView, error) {
			if slug != "apollo" {
				t.Fatalf("unexpected slug: %s", slug)
			}
			return &domain.ProjectView{
				ID:    "p1",
				Title: "Apollo",
				URL:   "apollo",
				Members: []domain.Member{
					{ID: "m1", Email: "ana@example.com", FullName: "Ana Lima", Role: domain.RoleAdministrator},
				},
				Tasks: []domain.Task{
					{ID: "t1", Title: "Design", Type: domain.TypeStory, Status: domain.StatusBacklog, Reporter: "m1"},
				},
			}, nil
		},
	}
	handler := NewProjectHandler(stub, &stubReportService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/projects/apollo", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("apollo")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	members, _ := resp["members"].([]any)
	tasks, _ := resp["tasks"].([]any)
	if len(members) != 1 || len(tasks) != 1 {
		t.Fatalf("expected hydrated relations, got %+v", resp)
	}
}

func TestProjectHandler_Update_Forbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		updateFn: func(ctx context.Context, actor ports.Identity, id string, input ports.UpdateProjectInput) error {
			return domain.ErrForbidden
		},
	}
	handler := NewProjectHandler(stub, &stubReportService{})

	req := httptest.NewRequest(http.MethodPut, "/v1/projects/p1", strings.NewReader(`{"title":"Renamed"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	err := handler.Update(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProjectHandler_Update_PartialFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		updateFn: func(ctx context.Context, actor ports.Identity, id string, input ports.UpdateProjectInput) error {
			if input.Title == nil || *input.Title != "Renamed" {
				t.Fatalf("expected title set, got %+v", input)
			}
			if input.URL != nil || input.Description != nil {
				t.Fatalf("expected untouched fields to stay nil, got %+v", input)
			}
			return nil
		},
	}
	handler := NewProjectHandler(stub, &stubReportService{})

	req := httptest.NewRequest(http.MethodPut, "/v1/projects/p1", strings.NewReader(`{"title":"Renamed"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestProjectHandler_Delete(t *testing.T) {
	e := newTestEcho()
	called := false
	stub := &stubProjectService{
		removeFn: func(ctx context.Context, actor ports.Identity, id string) error {
			called = true
			if id != "p1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	handler := NewProjectHandler(stub, &stubReportService{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/projects/p1", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if !called {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestProjectHandler_AddMember_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		addMemberFn: func(ctx context.Context, actor ports.Identity, projectID string, input ports.AddMemberInput) (*domain.Member, error) {
			if projectID != "p1" || input.Email != "bruno@example.com" || input.Role != domain.RoleMember {
				t.Fatalf("unexpected args: %s %+v", projectID, input)
			}
			return &domain.Member{ID: "m2", Email: input.Email, FullName: "Bruno Reis", Role: input.Role}, nil
		},
	}
	handler := NewProjectHandler(stub, &stubReportService{})

	body := strings.NewReader(`{"email":"bruno@example.com","role":"Member"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/projects/p1/members", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := handler.AddMember(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "m2" || resp["role"] != domain.RoleMember {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestProjectHandler_AddMember_InvalidRole(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		addMemberFn: func(ctx context.Context, actor ports.Identity, projectID string, input ports.AddMemberInput) (*domain.Member, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewProjectHandler(stub, &stubReportService{})

	body := strings.NewReader(`{"email":"bruno@example.com","role":"Owner"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/projects/p1/members", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	err := handler.AddMember(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProjectHandler_AddMember_Duplicate(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		addMemberFn: func(ctx context.Context, actor ports.Identity, projectID string, input ports.AddMemberInput) (*domain.Member, error) {
			return nil, domain.ErrAlreadyMember
		},
	}
	handler := NewProjectHandler(stub, &stubReportService{})

	body := strings.NewReader(`{"email":"bruno@example.com","role":"Member"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/projects/p1/members", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	err := handler.AddMember(c)
	if !errors.Is(err, domain.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestProjectHandler_Report(t *testing.T) {
	e := newTestEcho()
	reports := &stubReportService{
		reportFn: func(ctx context.Context, slug string) (*domain.ProjectReport, error) {
			if slug != "apollo" {
				t.Fatalf("unexpected slug: %s", slug)
			}
			return &domain.ProjectReport{
				Members: []domain.MemberReport{
					{
						Member:      domain.Member{ID: "m1", Email: "ana@example.com", Role: domain.RoleAdministrator},
						TotalReport: 2,
						Assignee:    1,
					},
				},
				Chart: domain.Chart{Status: []int{1, 0, 0, 1}, Type: []int{1, 1, 0}},
			}, nil
		},
	}
	handler := NewProjectHandler(&stubProjectService{}, reports)

	req := httptest.NewRequest(http.MethodGet, "/v1/projects/apollo/report", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("apollo")

	if err := handler.Report(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	members, _ := resp["members"].([]any)
	if len(members) != 1 {
		t.Fatalf("expected one member entry, got %+v", resp)
	}
	entry := members[0].(map[string]any)
	if entry["total_report"] != float64(2) || entry["assignee"] != float64(1) {
		t.Fatalf("unexpected attribution counts: %+v", entry)
	}
	chart, _ := resp["chart"].(map[string]any)
	status, _ := chart["status"].([]any)
	if len(status) != 4 {
		t.Fatalf("expected four status buckets, got %+v", chart)
	}
}
