package dualcoding

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/conceptmap"
	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/terminology"
	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/fhir"
)

var errUnknownTarget = errors.New("target is not a concept map candidate for the source code")

// Handler exposes synthesis over HTTP. Source codes are resolved against the
// catalog and targets against the concept map, so callers send codes only.
type Handler struct {
	synth   *Synthesizer
	catalog *terminology.Service
	tr      *conceptmap.Translator
}

func NewHandler(synth *Synthesizer, catalog *terminology.Service, tr *conceptmap.Translator) *Handler {
	return &Handler{synth: synth, catalog: catalog, tr: tr}
}

// RegisterRoutes registers dual-coding routes on the API and FHIR groups.
func (h *Handler) RegisterRoutes(api *echo.Group, fhirGroup *echo.Group) {
	api.POST("/dual-coding", h.Create)
	fhirGroup.POST("/Condition/$dual-code", h.FHIRDualCode)
}

// TargetRef names a concept map candidate by system and code.
type TargetRef struct {
	System string `json:"system"`
	Code   string `json:"code"`
}

// Request is the JSON body of POST /api/v1/dual-coding.
type Request struct {
	SourceCode  string      `json:"sourceCode"`
	Targets     []TargetRef `json:"targets"`
	SubjectID   string      `json:"subjectId"`
	EncounterID string      `json:"encounterId"`
}

// Create handles POST /api/v1/dual-coding and returns the Bundle.
func (h *Handler) Create(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fhir.NewOperationOutcome(fhir.IssueSeverityError, fhir.IssueTypeStructure, err.Error()))
	}
	return h.synthesize(c, req)
}

// FHIRDualCode handles POST /fhir/Condition/$dual-code with a Parameters body
// carrying code, subject, encounter and repeated target codings.
func (h *Handler) FHIRDualCode(c echo.Context) error {
	var params fhir.Parameters
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, fhir.NewOperationOutcome(fhir.IssueSeverityError, fhir.IssueTypeStructure, err.Error()))
	}
	var req Request
	for _, p := range params.Parameter {
		switch p.Name {
		case "code":
			req.SourceCode = p.Value()
		case "subject":
			req.SubjectID = p.Value()
		case "encounter":
			req.EncounterID = p.Value()
		case "target":
			if p.ValueCoding != nil {
				req.Targets = append(req.Targets, TargetRef{System: p.ValueCoding.System, Code: p.ValueCoding.Code})
			}
		}
	}
	return h.synthesize(c, req)
}

func (h *Handler) synthesize(c echo.Context, req Request) error {
	if req.SubjectID == "" {
		return c.JSON(http.StatusBadRequest, fhir.RequiredOutcome("subject"))
	}

	var source *terminology.CatalogEntry
	if req.SourceCode != "" {
		e, err := h.catalog.Get(req.SourceCode)
		if err != nil {
			return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("CodeSystem/namaste", req.SourceCode))
		}
		source = &e
	}

	var targets []conceptmap.TargetCandidate
	if source != nil {
		var err error
		targets, err = h.resolveTargets(source.Code, req.Targets)
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, fhir.NewOperationOutcome(fhir.IssueSeverityError, fhir.IssueTypeCodeInvalid, err.Error()))
		}
	}

	out, err := h.synth.Synthesize(c.Request().Context(), source, targets, ContextIDs{
		SubjectID:   req.SubjectID,
		EncounterID: req.EncounterID,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidSelection) {
			return c.JSON(http.StatusUnprocessableEntity, fhir.BusinessRuleOutcome(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, out.Bundle)
}

// resolveTargets maps refs onto the candidates for sourceCode, keeping the
// caller's order.
func (h *Handler) resolveTargets(sourceCode string, refs []TargetRef) ([]conceptmap.TargetCandidate, error) {
	cands := h.tr.Translate(sourceCode)
	out := make([]conceptmap.TargetCandidate, 0, len(refs))
	for _, ref := range refs {
		found := false
		for _, c := range cands {
			if c.Code == ref.Code && (ref.System == "" || c.System == ref.System) {
				out = append(out, c)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s|%s", errUnknownTarget, ref.System, ref.Code)
		}
	}
	return out, nil
}
