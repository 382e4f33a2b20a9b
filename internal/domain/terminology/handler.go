package terminology

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/fhir"
)

// Handler provides REST endpoints for the source catalog.
type Handler struct {
	svc *Service
}

// NewHandler creates a new terminology handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers terminology routes on the API and FHIR groups.
func (h *Handler) RegisterRoutes(api *echo.Group, fhirGroup *echo.Group) {
	api.GET("/terminology/namaste", h.Search)
	api.GET("/terminology/namaste/:code", h.Get)

	fhirGroup.GET("/CodeSystem/$lookup", h.FHIRLookup)
	fhirGroup.POST("/CodeSystem/$lookup", h.FHIRLookupPost)
	fhirGroup.GET("/ValueSet/$expand", h.ExpandValueSet)
}

// Search handles GET /api/v1/terminology/namaste?q=...
// A missing or blank q returns an empty list, not an error.
func (h *Handler) Search(c echo.Context) error {
	results := h.svc.Search(c.QueryParam("q"))
	return c.JSON(http.StatusOK, results)
}

// Get handles GET /api/v1/terminology/namaste/:code
func (h *Handler) Get(c echo.Context) error {
	e, err := h.svc.Get(c.Param("code"))
	if err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, e)
}

// FHIRLookup handles GET /fhir/CodeSystem/$lookup?system=...&code=...
func (h *Handler) FHIRLookup(c echo.Context) error {
	return h.lookup(c, c.QueryParam("system"), c.QueryParam("code"))
}

// FHIRLookupPost handles POST /fhir/CodeSystem/$lookup with a Parameters body.
func (h *Handler) FHIRLookupPost(c echo.Context) error {
	var params fhir.Parameters
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, fhir.NewOperationOutcome(fhir.IssueSeverityError, fhir.IssueTypeStructure, err.Error()))
	}
	var system, code string
	if p, ok := params.Get("system"); ok {
		system = p.Value()
	}
	if p, ok := params.Get("code"); ok {
		code = p.Value()
	}
	return h.lookup(c, system, code)
}

func (h *Handler) lookup(c echo.Context, system, code string) error {
	if code == "" {
		return c.JSON(http.StatusBadRequest, fhir.RequiredOutcome("code"))
	}
	resp, err := h.svc.Lookup(system, code)
	if err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			return c.JSON(http.StatusNotFound, fhir.NewOperationOutcome(fhir.IssueSeverityError, fhir.IssueTypeNotFound, err.Error()))
		}
		return c.JSON(http.StatusBadRequest, fhir.NewOperationOutcome(fhir.IssueSeverityError, fhir.IssueTypeNotSupported, err.Error()))
	}
	return c.JSON(http.StatusOK, resp)
}

// ExpandValueSet handles GET /fhir/ValueSet/$expand?filter=...
func (h *Handler) ExpandValueSet(c echo.Context) error {
	if url := c.QueryParam("url"); url != "" && url != ValueSetURL {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("ValueSet", url))
	}
	return c.JSON(http.StatusOK, h.svc.Expand(c.QueryParam("filter")))
}
