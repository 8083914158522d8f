package domain

import "time"

// TaskType classifies the nature of a task.
type TaskType string

const (
	TypeBug   TaskType = "Bug"
	TypeStory TaskType = "Story"
	TypeTask  TaskType = "Task"
)

// TaskStatus is the workflow column a task sits in.
type TaskStatus string

const (
	StatusBacklog TaskStatus = "Backlog"
	StatusDevelop TaskStatus = "Develop"
	StatusProcess TaskStatus = "Process"
	StatusDone    TaskStatus = "Done"
)

// Task is a unit of work within a single project. Reporter holds the member
// ID that filed the task; Assignees holds the member IDs working on it.
type Task struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Type        TaskType   `json:"type"`
	Status      TaskStatus `json:"status"`
	Reporter    string     `json:"reporter"`
	Assignees   []string   `json:"assignees"`
	CreatedAt   time.Time  `json:"created_at"`
}
