package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskhive/project-api/internal/core/domain"
	"github.com/taskhive/project-api/internal/core/ports"
)

// ReportService computes per-member task attribution and distribution
// charts from an aggregated project view, with a cache-aside layer in front
// of the aggregation query.
type ReportService struct {
	repo   ports.ProjectRepository
	cache  ReportCache
	logger zerolog.Logger
}

func NewReportService(repo ports.ProjectRepository, cache ReportCache, logger zerolog.Logger) *ReportService {
	return &ReportService{repo: repo, cache: cache, logger: logger}
}

// Report returns the reporting payload for the project identified by slug.
// Cache failures are non-fatal: the report is always recomputable from the
// aggregated view.
func (s *ReportService) Report(ctx context.Context, slug string) (*domain.ProjectReport, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, slug)
		if err != nil {
			s.logger.Warn().Err(err).Str("slug", slug).Msg("report cache read failed, recomputing")
		} else if cached != nil {
			return cached, nil
		}
	}

	view, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	report := domain.BuildReport(view)

	if s.cache != nil {
		if err := s.cache.Set(ctx, slug, report); err != nil {
			s.logger.Warn().Err(err).Str("slug", slug).Msg("failed to cache report")
		}
	}

	s.logger.Debug().
		Str("slug", slug).
		Int("members", len(report.Members)).
		Int("tasks", len(view.Tasks)).
		Msg("report generated")

	return report, nil
}
