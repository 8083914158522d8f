package domain

// MemberReport is a member annotated with its task attribution counts.
type MemberReport struct {
	Member
	// TotalReport counts tasks the member filed as reporter.
	TotalReport int `json:"total_report"`
	// Assignee counts tasks the member appears on as an assignee.
	Assignee int `json:"assignee"`
}

// Chart holds the task distribution arrays consumed by the charting client.
// Element order is a fixed contract and must not be reordered:
//
//	Status: [Backlog, Develop, Process, Done]
//	Type:   [Task, Story, Bug]
//
// Tasks with an unrecognized status or type are excluded from the arrays.
type Chart struct {
	Status []int `json:"status"`
	Type   []int `json:"type"`
}

// ProjectReport is the full reporting payload for one project.
type ProjectReport struct {
	Members []MemberReport `json:"members"`
	Chart   Chart          `json:"chart"`
}

// BuildReport computes per-member task attribution and the distribution
// chart from an aggregated project view. Counts are full scans of the task
// set per member — O(members × tasks) — which is fine at single-project,
// bounded-team scale.
func BuildReport(view *ProjectView) *ProjectReport {
	members := make([]MemberReport, 0, len(view.Members))
	for _, m := range view.Members {
		entry := MemberReport{Member: m}
		for _, t := range view.Tasks {
			if t.Reporter == m.ID {
				entry.TotalReport++
			}
			for _, a := range t.Assignees {
				if a == m.ID {
					entry.Assignee++
					break
				}
			}
		}
		members = append(members, entry)
	}

	return &ProjectReport{
		Members: members,
		Chart:   buildChart(view.Tasks),
	}
}

func buildChart(tasks []Task) Chart {
	var backlog, develop, process, done int
	var task, story, bug int

	for _, t := range tasks {
		switch t.Status {
		case StatusBacklog:
			backlog++
		case StatusDevelop:
			develop++
		case StatusProcess:
			process++
		case StatusDone:
			done++
		}

		switch t.Type {
		case TypeTask:
			task++
		case TypeStory:
			story++
		case TypeBug:
			bug++
		}
	}

	return Chart{
		Status: []int{backlog, develop, process, done},
		Type:   []int{task, story, bug},
	}
}
