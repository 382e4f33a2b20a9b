package conceptmap

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/terminology"
	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/fhir"
)

// Handler exposes the concept map over FHIR.
type Handler struct {
	tr *Translator
}

func NewHandler(tr *Translator) *Handler {
	return &Handler{tr: tr}
}

// RegisterRoutes registers concept map routes on the API and FHIR groups.
func (h *Handler) RegisterRoutes(api *echo.Group, fhirGroup *echo.Group) {
	api.GET("/conceptmap/:code", h.Translate)

	fhirGroup.GET("/ConceptMap", h.Search)
	fhirGroup.GET("/ConceptMap/:id", h.Read)
	fhirGroup.GET("/ConceptMap/$translate", h.FHIRTranslate)
	fhirGroup.POST("/ConceptMap/$translate", h.FHIRTranslatePost)
}

// Translate handles GET /api/v1/conceptmap/:code?group=...
// An unmapped code returns an empty list.
func (h *Handler) Translate(c echo.Context) error {
	cands := h.tr.Translate(c.Param("code"))
	if g := c.QueryParam("group"); g != "" {
		group, err := ParseGroup(g)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		cands = Partition(cands, group)
	}
	return c.JSON(http.StatusOK, cands)
}

// Search handles GET /fhir/ConceptMap
func (h *Handler) Search(c echo.Context) error {
	summary := h.tr.Summary(terminology.SystemNAMASTE)
	return c.JSON(http.StatusOK, fhir.NewSearchBundle([]interface{}{summary}))
}

// Read handles GET /fhir/ConceptMap/:id
func (h *Handler) Read(c echo.Context) error {
	id := c.Param("id")
	if id != ConceptMapID {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("ConceptMap", id))
	}
	return c.JSON(http.StatusOK, h.tr.ToFHIR(terminology.SystemNAMASTE))
}

type translateRequest struct {
	code         string
	system       string
	targetSystem string
	group        string
}

// FHIRTranslate handles GET /fhir/ConceptMap/$translate?code=...&system=...
func (h *Handler) FHIRTranslate(c echo.Context) error {
	return h.translate(c, translateRequest{
		code:         c.QueryParam("code"),
		system:       c.QueryParam("system"),
		targetSystem: c.QueryParam("targetsystem"),
		group:        c.QueryParam("group"),
	})
}

// FHIRTranslatePost handles POST /fhir/ConceptMap/$translate with a
// Parameters body.
func (h *Handler) FHIRTranslatePost(c echo.Context) error {
	var params fhir.Parameters
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, fhir.NewOperationOutcome(fhir.IssueSeverityError, fhir.IssueTypeStructure, err.Error()))
	}
	var req translateRequest
	if p, ok := params.Get("code"); ok {
		req.code = p.Value()
	}
	if p, ok := params.Get("system"); ok {
		req.system = p.Value()
	}
	if p, ok := params.Get("targetsystem"); ok {
		req.targetSystem = p.Value()
	}
	if p, ok := params.Get("group"); ok {
		req.group = p.Value()
	}
	return h.translate(c, req)
}

func (h *Handler) translate(c echo.Context, req translateRequest) error {
	if req.code == "" {
		return c.JSON(http.StatusBadRequest, fhir.RequiredOutcome("code"))
	}
	if req.system != "" && req.system != terminology.SystemNAMASTE {
		return c.JSON(http.StatusBadRequest, fhir.NewOperationOutcome(
			fhir.IssueSeverityError, fhir.IssueTypeNotSupported,
			"Unsupported source system '"+req.system+"'"))
	}

	cands := h.tr.Translate(req.code)
	if req.group != "" {
		group, err := ParseGroup(req.group)
		if err != nil {
			return c.JSON(http.StatusBadRequest, fhir.NewOperationOutcome(fhir.IssueSeverityError, fhir.IssueTypeValue, err.Error()))
		}
		cands = Partition(cands, group)
	}
	if req.targetSystem != "" {
		cands = PartitionBySystem(cands, req.targetSystem)
	}
	return c.JSON(http.StatusOK, TranslateParameters(req.code, cands))
}
