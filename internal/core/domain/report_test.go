package domain

import (
	"reflect"
	"testing"
)

func TestBuildReport_Chart(t *testing.T) {
	view := &ProjectView{
		Tasks: []Task{
			{Type: TypeBug, Status: StatusDone},
			{Type: TypeStory, Status: StatusBacklog},
			{Type: TypeTask, Status: "Weird"},
		},
	}

	report := BuildReport(view)

	// "Weird" status is silently excluded from the status array; the task
	// still counts towards its recognized type bucket.
	wantStatus := []int{1, 0, 0, 1}
	if !reflect.DeepEqual(report.Chart.Status, wantStatus) {
		t.Errorf("status: want %v, got %v", wantStatus, report.Chart.Status)
	}

	wantType := []int{1, 1, 1}
	if !reflect.DeepEqual(report.Chart.Type, wantType) {
		t.Errorf("type: want %v, got %v", wantType, report.Chart.Type)
	}
}

func TestBuildReport_ChartExcludesUnknownType(t *testing.T) {
	view := &ProjectView{
		Tasks: []Task{
			{Type: "Epic", Status: StatusDone},
			{Type: TypeStory, Status: StatusDevelop},
			{Type: TypeBug, Status: StatusProcess},
		},
	}

	report := BuildReport(view)

	wantType := []int{0, 1, 1}
	if !reflect.DeepEqual(report.Chart.Type, wantType) {
		t.Errorf("type: want %v, got %v", wantType, report.Chart.Type)
	}
	wantStatus := []int{0, 1, 1, 1}
	if !reflect.DeepEqual(report.Chart.Status, wantStatus) {
		t.Errorf("status: want %v, got %v", wantStatus, report.Chart.Status)
	}
}

func TestBuildReport_ChartEmptyProject(t *testing.T) {
	report := BuildReport(&ProjectView{})

	if !reflect.DeepEqual(report.Chart.Status, []int{0, 0, 0, 0}) {
		t.Errorf("status must be fixed-length zeroes, got %v", report.Chart.Status)
	}
	if !reflect.DeepEqual(report.Chart.Type, []int{0, 0, 0}) {
		t.Errorf("type must be fixed-length zeroes, got %v", report.Chart.Type)
	}
	if len(report.Members) != 0 {
		t.Errorf("expected no member entries, got %d", len(report.Members))
	}
}

func TestBuildReport_MemberAttribution(t *testing.T) {
	view := &ProjectView{
		Members: []Member{
			{ID: "m1", Email: "ana@example.com", Role: RoleAdministrator},
		},
		Tasks: []Task{
			{ID: "t1", Reporter: "m1", Assignees: []string{"m1"}, Type: TypeBug, Status: StatusDone},
			{ID: "t2", Reporter: "m1", Assignees: []string{"m2"}, Type: TypeTask, Status: StatusBacklog},
			{ID: "t3", Reporter: "m2", Assignees: []string{"m1", "m2"}, Type: TypeStory, Status: StatusDevelop},
		},
	}

	report := BuildReport(view)

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
	if entry.Email != "ana@example.com" {
		t.Errorf("member snapshot fields must carry through, got %q", entry.Email)
	}
}

func TestBuildReport_AssigneeCountedOncePerTask(t *testing.T) {
	// A malformed assignee list repeating the same member must not double
	// count the task.
	view := &ProjectView{
		Members: []Member{{ID: "m1"}},
		Tasks: []Task{
			{ID: "t1", Reporter: "m2", Assignees: []string{"m1", "m1"}},
		},
	}

	report := BuildReport(view)
	if report.Members[0].Assignee != 1 {
		t.Errorf("assignee: want 1, got %d", report.Members[0].Assignee)
	}
}
