package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createProjectRequest struct {
	Title       string `json:"title"       validate:"required"`
	URL         string `json:"url"         validate:"required"`
	Description string `json:"description"`
}

// updateProjectRequest is a partial update. Pointer fields distinguish
// "absent" from "set to empty"; absent fields are left untouched.
type updateProjectRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1"`
	URL         *string `json:"url"         validate:"omitempty,min=1"`
	Description *string `json:"description"`
}

type addMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required,oneof=Administrator Member"`
}

type createTaskRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description"`
	Type        string   `json:"type"        validate:"required,oneof=Task Story Bug"`
	Status      string   `json:"status"      validate:"required,oneof=Backlog Develop Process Done"`
	Reporter    string   `json:"reporter"    validate:"required"`
	Assignees   []string `json:"assignees"`
}

// --- Response types ---
// Response-only types owned by the transport layer, intentionally separate
// from domain types so the JSON contract is not coupled to internal changes.

type memberResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar,omitempty"`
	Role     string `json:"role"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Reporter    string    `json:"reporter"`
	Assignees   []string  `json:"assignees"`
	CreatedAt   time.Time `json:"created_at"`
}

type createProjectResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type projectDetailResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	URL         string           `json:"url"`
	Description string           `json:"description"`
	Members     []memberResponse `json:"members"`
	Tasks       []taskResponse   `json:"tasks"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// projectSummaryResponse is the lightweight item used in list responses.
// Relation lists collapse to counts; pm is the administrator snapshot.
type projectSummaryResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	URL         string          `json:"url"`
	Description string          `json:"description"`
	MemberCount int             `json:"member_count"`
	TaskCount   int             `json:"task_count"`
	PM          *memberResponse `json:"pm,omitempty"`
}

type listProjectsResponse struct {
	Data []projectSummaryResponse `json:"data"`
}

type memberReportResponse struct {
	memberResponse
	TotalReport int `json:"total_report"`
	Assignee    int `json:"assignee"`
}

type chartResponse struct {
	Status []int `json:"status"`
	Type   []int `json:"type"`
}

type reportResponse struct {
	Members []memberReportResponse `json:"members"`
	Chart   chartResponse          `json:"chart"`
}
