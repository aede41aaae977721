package handler

import (
	"strings"

	"research-api/internal/delivery/http/dto"
	"research-api/internal/domain/entity"
	"research-api/internal/domain/repository"
	"research-api/internal/usecase/export"

	"github.com/gofiber/fiber/v2"
)

type ProjectHandler struct {
	projectRepo   repository.ProjectRepository
	exportUsecase *export.ExportUsecase
}

func NewProjectHandler(projectRepo repository.ProjectRepository, exportUsecase *export.ExportUsecase) *ProjectHandler {
	return &ProjectHandler{projectRepo: projectRepo, exportUsecase: exportUsecase}
}

// Create godoc
// @Summary      Create a project
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Param        request  body  dto.CreateProjectRequest  true  "Project"
// @Success      201  {object}  dto.ProjectInfo
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	project := &entity.Project{Name: req.Name, Description: req.Description}
	if err := h.projectRepo.Create(c.Context(), project); err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(toProjectInfo(project))
}

// List godoc
// @Summary      List projects
// @Tags         Projects
// @Produce      json
// @Success      200  {array}  dto.ProjectInfo
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	projects, err := h.projectRepo.List(c.Context())
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	infos := make([]dto.ProjectInfo, 0, len(projects))
	for i := range projects {
		infos = append(infos, toProjectInfo(&projects[i]))
	}
	return c.Status(fiber.StatusOK).JSON(infos)
}

// GetByID godoc
// @Summary      Get project by ID
// @Tags         Projects
// @Produce      json
// @Param        id  path  string  true  "Project ID"
// @Success      200  {object}  dto.ProjectInfo
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	project, err := h.projectRepo.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if project == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	}
	return c.Status(fiber.StatusOK).JSON(toProjectInfo(project))
}

// Export godoc
// @Summary      Export a project
// @Description  Renders the project's indexed documents as a Markdown summary or BibTeX bibliography
// @Tags         Projects
// @Produce      plain
// @Param        id      path   string  true   "Project ID"
// @Param        format  query  string  false  "markdown or bibtex" default(markdown)
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/export [get]
func (h *ProjectHandler) Export(c *fiber.Ctx) error {
	projectID := c.Params("id")

	var (
		out string
		err error
	)
	switch c.Query("format", "markdown") {
	case "markdown":
		out, err = h.exportUsecase.Markdown(c.Context(), projectID)
		c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	case "bibtex":
		out, err = h.exportUsecase.BibTeX(c.Context(), projectID)
		c.Set(fiber.HeaderContentType, "application/x-bibtex; charset=utf-8")
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported format, use 'markdown' or 'bibtex'"})
	}
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).SendString(out)
}

func toProjectInfo(project *entity.Project) dto.ProjectInfo {
	return dto.ProjectInfo{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
	}
}
