package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillswap/skillswap-api/internal/api/metrics"
	"github.com/skillswap/skillswap-api/internal/core/ports"
)

// SkillHandler handles HTTP requests for the skill registry.
type SkillHandler struct {
	service ports.SkillService
}

func NewSkillHandler(service ports.SkillService) *SkillHandler {
	return &SkillHandler{service: service}
}

// addSkillRequest mirrors the client payload: the employment fields arrive
// flat and are folded into the employment variant by the service.
type addSkillRequest struct {
	Title           string `json:"title"           validate:"required"`
	Description     string `json:"description"`
	Category        string `json:"category"        validate:"required,oneof=technology cultural sports esports"`
	Type            string `json:"type"            validate:"required,oneof=offer want"`
	ExperienceYears int    `json:"experienceYears"`
	Employed        bool   `json:"employed"`
	EmployedYears   int    `json:"employedYears"`
	Employer        string `json:"employer"`
}

// Add handles POST /v1/skills.
//
// @Summary      Publish a new skill
// @Tags         skills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addSkillRequest  true  "Skill details"
// @Success      201   {object}  domain.Skill
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/skills [post]
func (h *SkillHandler) Add(c echo.Context) error {
	var req addSkillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	skill, err := h.service.Add(c.Request().Context(), ports.AddSkillInput{
		OwnerID:         ownerID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Type:            req.Type,
		ExperienceYears: req.ExperienceYears,
		Employed:        req.Employed,
		EmployedYears:   req.EmployedYears,
		Employer:        req.Employer,
	})
	if err != nil {
		return err
	}

	metrics.SkillsAddedTotal.WithLabelValues(string(skill.Category), string(skill.Type)).Inc()
	return c.JSON(http.StatusCreated, skill)
}

// ListAll handles GET /v1/skills.
//
// @Summary      List all published skills
// @Tags         skills
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.SkillView
// @Failure      401  {object}  errorResponse
// @Router       /v1/skills [get]
func (h *SkillHandler) ListAll(c echo.Context) error {
	views, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// ListMine handles GET /v1/skills/mine.
//
// @Summary      List the caller's skills
// @Tags         skills
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.SkillView
// @Failure      401  {object}  errorResponse
// @Router       /v1/skills/mine [get]
func (h *SkillHandler) ListMine(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListMine(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Requestable handles GET /v1/skills/requestable?q=.
//
// @Summary      List skills the caller may request
// @Tags         skills
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Substring match on title or category"
// @Success      200  {array}   ports.SkillView
// @Failure      401  {object}  errorResponse
// @Router       /v1/skills/requestable [get]
func (h *SkillHandler) Requestable(c echo.Context) error {
	viewerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	views, err := h.service.Requestable(c.Request().Context(), viewerID, c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Withdraw handles DELETE /v1/skills/:id.
//
// @Summary      Withdraw one of the caller's skills
// @Tags         skills
// @Security     BearerAuth
// @Param        id  path  string  true  "Skill id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/skills/{id} [delete]
func (h *SkillHandler) Withdraw(c echo.Context) error {
	requesterID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Withdraw(c.Request().Context(), requesterID, c.Param("id")); err != nil {
		return err
	}

	metrics.SkillsWithdrawnTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
