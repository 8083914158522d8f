package handler

import (
	"github.com/taskhive/project-api/internal/core/domain"
	"github.com/taskhive/project-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateProjectInput(req createProjectRequest) ports.CreateProjectInput {
	return ports.CreateProjectInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
	}
}

func toUpdateProjectInput(req updateProjectRequest) ports.UpdateProjectInput {
	return ports.UpdateProjectInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
	}
}

func toCreateTaskInput(req createTaskRequest) ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Status:      req.Status,
		Reporter:    req.Reporter,
		Assignees:   req.Assignees,
	}
}

// --- Service result → HTTP response ---

func toMemberResponse(m domain.Member) memberResponse {
	return memberResponse{
		ID:       m.ID,
		Email:    m.Email,
		FullName: m.FullName,
		Avatar:   m.Avatar,
		Role:     m.Role,
	}
}

func toTaskResponse(t domain.Task) taskResponse {
	assignees := t.Assignees
	if assignees == nil {
		assignees = []string{}
	}
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Type:        string(t.Type),
		Status:      string(t.Status),
		Reporter:    t.Reporter,
		Assignees:   assignees,
		CreatedAt:   t.CreatedAt.UTC(),
	}
}

func toCreateProjectResponse(p *domain.Project) createProjectResponse {
	return createProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		URL:         p.URL,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.UTC(),
	}
}

func toProjectDetailResponse(v *domain.ProjectView) projectDetailResponse {
	members := make([]memberResponse, len(v.Members))
	for i, m := range v.Members {
		members[i] = toMemberResponse(m)
	}
	tasks := make([]taskResponse, len(v.Tasks))
	for i, t := range v.Tasks {
		tasks[i] = toTaskResponse(t)
	}
	return projectDetailResponse{
		ID:          v.ID,
		Title:       v.Title,
		URL:         v.URL,
		Description: v.Description,
		Members:     members,
		Tasks:       tasks,
		CreatedAt:   v.CreatedAt.UTC(),
		UpdatedAt:   v.UpdatedAt.UTC(),
	}
}

func toListProjectsResponse(summaries []ports.ProjectSummary) listProjectsResponse {
	data := make([]projectSummaryResponse, len(summaries))
	for i, s := range summaries {
		item := projectSummaryResponse{
			ID:          s.ID,
			Title:       s.Title,
			URL:         s.URL,
			Description: s.Description,
			MemberCount: s.MemberCount,
			TaskCount:   s.TaskCount,
		}
		if s.PM != nil {
			pm := toMemberResponse(*s.PM)
			item.PM = &pm
		}
		data[i] = item
	}
	return listProjectsResponse{Data: data}
}

func toReportResponse(r *domain.ProjectReport) reportResponse {
	members := make([]memberReportResponse, len(r.Members))
	for i, m := range r.Members {
		members[i] = memberReportResponse{
			memberResponse: toMemberResponse(m.Member),
			TotalReport:    m.TotalReport,
			Assignee:       m.Assignee,
		}
	}
	return reportResponse{
		Members: members,
		Chart: chartResponse{
			Status: r.Chart.Status,
			Type:   r.Chart.Type,
		},
	}
}
