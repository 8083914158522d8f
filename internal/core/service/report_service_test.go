package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/taskhive/project-api/internal/core/domain"
	"github.com/taskhive/project-api/internal/core/ports"
)

func seedReportedProject(t *testing.T, store *stubStore) *domain.Project {
	t.Helper()
	svc, _, _ := newProjectService(store, newStubUserDirectory())
	created := seedProject(t, svc, store)
	adminID := created.Members[0]

	tasks := []*domain.Task{
		{ProjectID: created.ID, Title: "Fix login", Type: domain.TypeBug, Status: domain.StatusDone, Reporter: adminID, Assignees: []string{adminID}},
		{ProjectID: created.ID, Title: "Write story", Type: domain.TypeStory, Status: domain.StatusBacklog, Reporter: adminID, Assignees: []string{"m-other"}},
		{ProjectID: created.ID, Title: "Chore", Type: domain.TypeTask, Status: "Weird", Reporter: "m-other", Assignees: []string{adminID}},
	}
	for _, task := range tasks {
		if _, err := store.CreateTask(context.Background(), task); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}
	return created
}

func TestReportService_Report_ComputesAndCaches(t *testing.T) {
	store := newStubStore()
	seedReportedProject(t, store)
	cache := newStubCache()
	svc := NewReportService(store, cache, discardLogger)

	report, err := svc.Report(context.Background(), "apollo")
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	if len(report.Members) != 1 {
		t.Fatalf("expected 1 member entry, got %d", len(report.Members))
	}
	entry := report.Members[0]
	if entry.TotalReport != 2 {
		t.Errorf("total_report: want 2, got %d", entry.TotalReport)
	}
	if entry.Assignee != 2 {
		t.Errorf("assignee: want 2, got %d", entry.Assignee)
	}

	// The "Weird" status task is excluded from the status array only.
	if want := []int{1, 0, 0, 1}; !reflect.DeepEqual(report.Chart.Status, want) {
		t.Errorf("chart status: want %v, got %v", want, report.Chart.Status)
	}
	if want := []int{1, 1, 1}; !reflect.DeepEqual(report.Chart.Type, want) {
		t.Errorf("chart type: want %v, got %v", want, report.Chart.Type)
	}

	if cache.entries["apollo"] == nil {
		t.Error("report must be cached under the slug")
	}
}

func TestReportService_Report_ServesFromCache(t *testing.T) {
	store := newStubStore()
	cache := newStubCache()
	cached := &domain.ProjectReport{Chart: domain.Chart{Status: []int{9, 0, 0, 0}, Type: []int{9, 0, 0}}}
	cache.entries["apollo"] = cached

	svc := NewReportService(store, cache, discardLogger)

	// The store holds no such project; a hit must not touch it.
	report, err := svc.Report(context.Background(), "apollo")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !reflect.DeepEqual(report, cached) {
		t.Errorf("expected cached report, got %+v", report)
	}
}

func TestReportService_Report_CacheFailureRecomputes(t *testing.T) {
	store := newStubStore()
	seedReportedProject(t, store)
	cache := newStubCache()
	cache.getErr = errors.New("redis down")

	svc := NewReportService(store, cache, discardLogger)

	report, err := svc.Report(context.Background(), "apollo")
	if err != nil {
		t.Fatalf("cache failure must not fail the report: %v", err)
	}
	if len(report.Members) != 1 {
		t.Errorf("expected recomputed report, got %+v", report)
	}
}

func TestReportService_Report_ProjectNotFound(t *testing.T) {
	svc := NewReportService(newStubStore(), newStubCache(), discardLogger)

	_, err := svc.Report(context.Background(), "missing")
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestReportService_Report_NoCacheConfigured(t *testing.T) {
	store := newStubStore()
	seedReportedProject(t, store)
	svc := NewReportService(store, nil, discardLogger)

	if _, err := svc.Report(context.Background(), "apollo"); err != nil {
		t.Fatalf("nil cache must be tolerated: %v", err)
	}
}

var _ ports.ReportService = (*ReportService)(nil)
