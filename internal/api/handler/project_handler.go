package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/project-api/internal/api/metrics"
	"github.com/taskhive/project-api/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	projects ports.ProjectService
	reports  ports.ReportService
}

func NewProjectHandler(projects ports.ProjectService, reports ports.ReportService) *ProjectHandler {
	return &ProjectHandler{projects: projects, reports: reports}
}

// Create handles POST /v1/projects.
//
// @Summary      Create a new project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  createProjectResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projects.Create(c.Request().Context(), identity, toCreateProjectInput(req))
	if err != nil {
		return err
	}

	metrics.ProjectsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toCreateProjectResponse(project))
}

// List handles GET /v1/projects.
//
// @Summary      List projects the caller belongs to
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listProjectsResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	summaries, err := h.projects.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListProjectsResponse(summaries))
}

// Get handles GET /v1/projects/:slug.
//
// @Summary      Get a project by slug with members and tasks resolved
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string  true  "Project slug"
// @Success      200   {object}  projectDetailResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/projects/{slug} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	view, err := h.projects.Get(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProjectDetailResponse(view))
}

// Update handles PUT /v1/projects/:id.
//
// @Summary      Update project fields
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project ID"
// @Param        body  body      updateProjectRequest  true  "Fields to update"
// @Success      204   "No Content"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.projects.Update(c.Request().Context(), identity, c.Param("id"), toUpdateProjectInput(req)); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/projects/:id.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Project ID"
// @Success      204  "No Content"
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.projects.Remove(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// AddMember handles POST /v1/projects/:id/members.
//
// @Summary      Enroll a user into a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Project ID"
// @Param        body  body      addMemberRequest  true  "Member email and role"
// @Success      201   {object}  memberResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/projects/{id}/members [post]
func (h *ProjectHandler) AddMember(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req addMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	member, err := h.projects.AddMember(c.Request().Context(), identity, c.Param("id"), ports.AddMemberInput{
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		return err
	}

	metrics.MembersAddedTotal.WithLabelValues(member.Role).Inc()
	return c.JSON(http.StatusCreated, toMemberResponse(*member))
}

// Report handles GET /v1/projects/:slug/report.
//
// @Summary      Get per-member task attribution and distribution chart
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string  true  "Project slug"
// @Success      200   {object}  reportResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/projects/{slug}/report [get]
func (h *ProjectHandler) Report(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	start := time.Now()
	report, err := h.reports.Report(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	metrics.ReportDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, toReportResponse(report))
}
