package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillswap/skillswap-api/internal/api/metrics"
	"github.com/skillswap/skillswap-api/internal/core/domain"
	"github.com/skillswap/skillswap-api/internal/core/ports"
)

// SwapHandler handles HTTP requests for swap creation and the request
// lifecycle.
type SwapHandler struct {
	service ports.SwapService
}

func NewSwapHandler(service ports.SwapService) *SwapHandler {
	return &SwapHandler{service: service}
}

// createSwapRequest carries only the offered/requested pair. The recipient
// is derived server-side from the requested skill's owner.
type createSwapRequest struct {
	OfferedSkill   string `json:"offeredSkill"   validate:"required"`
	RequestedSkill string `json:"requestedSkill" validate:"required"`
}

type updateSwapStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create handles POST /v1/swaps.
//
// @Summary      Open a swap request
// @Tags         swaps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSwapRequest  true  "Offered and requested skill ids"
// @Success      201   {object}  domain.SwapRequest
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/swaps [post]
func (h *SwapHandler) Create(c echo.Context) error {
	var req createSwapRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fromUserID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	request, err := h.service.Create(c.Request().Context(), ports.CreateSwapInput{
		FromUserID:       fromUserID,
		OfferedSkillID:   req.OfferedSkill,
		RequestedSkillID: req.RequestedSkill,
	})
	if err != nil {
		return err
	}

	metrics.SwapsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, request)
}

// Received handles GET /v1/swaps/received.
//
// @Summary      List swap requests addressed to the caller
// @Tags         swaps
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.SwapView
// @Failure      401  {object}  errorResponse
// @Router       /v1/swaps/received [get]
func (h *SwapHandler) Received(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	views, err := h.service.Received(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Sent handles GET /v1/swaps/sent.
//
// @Summary      List swap requests the caller has sent
// @Tags         swaps
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.SwapView
// @Failure      401  {object}  errorResponse
// @Router       /v1/swaps/sent [get]
func (h *SwapHandler) Sent(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	views, err := h.service.Sent(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// UpdateStatus handles PATCH /v1/swaps/:id.
//
// @Summary      Accept or reject a received swap request
// @Tags         swaps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Swap request id"
// @Param        body  body      updateSwapStatusRequest  true  "Terminal status"
// @Success      200   {object}  domain.SwapRequest
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/swaps/{id} [patch]
func (h *SwapHandler) UpdateStatus(c echo.Context) error {
	var req updateSwapStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipientID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	updated, err := h.service.UpdateStatus(c.Request().Context(), recipientID, c.Param("id"), domain.SwapStatus(req.Status))
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			metrics.SwapConflictsTotal.Inc()
		}
		return err
	}

	metrics.SwapDecisionsTotal.WithLabelValues(string(updated.Status)).Inc()
	return c.JSON(http.StatusOK, updated)
}
