package domain

import "time"

// Activity kinds recorded in the project audit feed.
const (
	ActivityProjectCreated = "project_created"
	ActivityProjectUpdated = "project_updated"
	ActivityProjectDeleted = "project_deleted"
	ActivityMemberAdded    = "member_added"
	ActivityTaskCreated    = "task_created"
)

// Activity is an audit record of a project mutation.
type Activity struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Kind       string    `json:"kind"`
	ActorEmail string    `json:"actor_email"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
