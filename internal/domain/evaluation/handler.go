package evaluation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthobs/healthobs/internal/platform/auth"
	"github.com/healthobs/healthobs/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	readGroup.GET("/taxonomy", h.GetTaxonomy)
	readGroup.GET("/evaluations", h.ListEvaluations)
	readGroup.GET("/evaluations/:id", h.GetEvaluation)
	readGroup.GET("/evaluations/:id/state", h.GetState)
	readGroup.GET("/evaluations/:id/report", h.GetReport)

	writeGroup := api.Group("", auth.RequireRole("admin", "physician"))
	writeGroup.POST("/evaluations", h.CreateEvaluation)
	writeGroup.PUT("/evaluations/:id", h.UpdateEvaluation)
	writeGroup.DELETE("/evaluations/:id", h.DeleteEvaluation)
	writeGroup.PUT("/evaluations/:id/measurements/:metricId", h.SetMeasurement)
}

func (h *Handler) CreateEvaluation(c echo.Context) error {
	var ev Evaluation
	if err := c.Bind(&ev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &ev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, ev)
}

func (h *Handler) GetEvaluation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ev, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return notFoundOr500(err)
	}
	return c.JSON(http.StatusOK, ev)
}

func (h *Handler) ListEvaluations(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateEvaluation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var ev Evaluation
	if err := c.Bind(&ev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ev.ID = id
	if err := h.svc.Update(c.Request().Context(), &ev); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "evaluation not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, ev)
}

func (h *Handler) DeleteEvaluation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return notFoundOr500(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SetMeasurement(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var m Measurement
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ev, err := h.svc.SetMeasurement(c.Request().Context(), id, c.Param("metricId"), m)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "evaluation not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, ev)
}

func (h *Handler) GetState(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	hs, err := h.svc.BuildState(c.Request().Context(), id)
	if err != nil {
		return notFoundOr500(err)
	}
	return c.JSON(http.StatusOK, hs)
}

func (h *Handler) GetReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rep, err := h.svc.ComposeReport(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrIncomplete) {
			return echo.NewHTTPError(http.StatusPreconditionFailed, err.Error())
		}
		return notFoundOr500(err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *Handler) GetTaxonomy(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"systems": h.svc.Taxonomy(),
	})
}

func notFoundOr500(err error) error {
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "evaluation not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
