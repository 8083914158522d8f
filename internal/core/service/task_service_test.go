package service

import (
	"context"
	"errors"
	"testing"

	"github.com/taskhive/project-api/internal/core/domain"
	"github.com/taskhive/project-api/internal/core/ports"
)

type stubTaskRepo struct {
	store *stubStore
}

func (r *stubTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return r.store.CreateTask(ctx, task)
}

func newTaskService(store *stubStore) (*TaskService, *stubCache, *stubActivitySink) {
	cache := newStubCache()
	sink := &stubActivitySink{}
	svc := NewTaskService(&stubTaskRepo{store: store}, store, cache, sink, discardLogger)
	return svc, cache, sink
}

func TestTaskService_Create_MemberFilesTask(t *testing.T) {
	store := newStubStore()
	projectSvc, _, _ := newProjectService(store, newStubUserDirectory())
	created := seedProject(t, projectSvc, store)
	adminID := created.Members[0]

	svc, cache, sink := newTaskService(store)

	task, err := svc.Create(context.Background(), actorAna, created.ID, ports.CreateTaskInput{
		Title:     "Fix login",
		Type:      string(domain.TypeBug),
		Status:    string(domain.StatusBacklog),
		Reporter:  adminID,
		Assignees: []string{adminID},
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if task.ID == "" {
		t.Error("task must get an ID assigned")
	}
	if got := len(store.projects[created.ID].Tasks); got != 1 {
		t.Errorf("tasks relation length: want 1, got %d", got)
	}
	if len(cache.invalidated) == 0 || cache.invalidated[0] != "apollo" {
		t.Errorf("report cache must be invalidated, got %v", cache.invalidated)
	}
	kinds := sink.kinds()
	if len(kinds) != 1 || kinds[0] != domain.ActivityTaskCreated {
		t.Errorf("expected task_created activity, got %v", kinds)
	}
}

func TestTaskService_Create_ForbiddenForNonMember(t *testing.T) {
	store := newStubStore()
	projectSvc, _, _ := newProjectService(store, newStubUserDirectory())
	created := seedProject(t, projectSvc, store)

	svc, _, _ := newTaskService(store)

	outsider := ports.Identity{Email: "ghost@example.com"}
	_, err := svc.Create(context.Background(), outsider, created.ID, ports.CreateTaskInput{Title: "x"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(store.tasks) != 0 {
		t.Error("no task must be written for a non-member")
	}
}

func TestTaskService_Create_ProjectNotFound(t *testing.T) {
	svc, _, _ := newTaskService(newStubStore())

	_, err := svc.Create(context.Background(), actorAna, "missing", ports.CreateTaskInput{Title: "x"})
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}
