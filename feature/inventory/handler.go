package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"inventory-reconciler/core/export"
	"inventory-reconciler/core/logger"
	"inventory-reconciler/core/mapping"
	"inventory-reconciler/core/reconcile"
	"inventory-reconciler/core/table"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for inventory reconciliation.
type Handler struct {
	service *Service
	opts    table.Options
}

// NewHandler creates a new HTTP handler. opts is used to parse uploaded files.
func NewHandler(service *Service, opts table.Options) *Handler {
	return &Handler{service: service, opts: opts}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reconcile")
	group.Post("/", h.HandleReconcile)
	group.Post("/async", h.HandleStart)
	group.Post("/upload", h.HandleUpload)
	group.Get("/latest", h.HandleLatest)
	group.Get("/latest/stock-status", h.HandleStockStatus)
	group.Get("/latest/:set", h.HandleDownload)

	app.Post("/mapping/suggest", h.HandleSuggest)
	app.Get("/feeds", h.HandleListFeeds)
}

// ReconcileResponse is returned by the reconcile endpoints.
type ReconcileResponse struct {
	Result *reconcile.Result `json:"result"`
	Export *ExportReport     `json:"export,omitempty"`
}

// SuggestRequest names the feeds whose headers are compared.
type SuggestRequest struct {
	Source FeedRef `json:"source"`
	Target FeedRef `json:"target"`
}

// HandleReconcile reconciles two stored feeds.
// @Summary Reconcile Feeds
// @Description Loads the source and target feeds from object storage or the database, joins them on the mapping keys and classifies every item. Only one reconciliation runs at a time.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param request body Request true "Mapping and feeds"
// @Success 200 {object} ReconcileResponse
// @Failure 400 {object} map[string]interface{} "Invalid mapping or missing columns"
// @Failure 409 {object} map[string]string "A reconciliation is already running"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	l.Info("Reconciliation requested", zap.Stringer("source", req.Source), zap.Stringer("target", req.Target))

	result, err := h.service.Reconcile(c.Context(), req)
	if err != nil {
		return h.fail(c, l, err)
	}
	return h.respond(c, l, result, req.Export)
}

// HandleStart starts a reconciliation in the background.
// @Summary Start Reconciliation
// @Description Accepts the same body as POST /reconcile but returns immediately. Poll GET /reconcile/latest for the result.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param request body Request true "Mapping and feeds"
// @Success 202 {object} map[string]string "Accepted"
// @Failure 400 {object} map[string]interface{} "Invalid mapping"
// @Failure 409 {object} map[string]string "A reconciliation is already running"
// @Router /reconcile/async [post]
func (h *Handler) HandleStart(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	// The request context ends with this handler.
	if err := h.service.Start(context.Background(), req, nil); err != nil {
		return h.fail(c, l, err)
	}

	l.Info("Background reconciliation started", zap.Stringer("source", req.Source), zap.Stringer("target", req.Target))
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "started"})
}

// HandleUpload reconciles two uploaded files.
// @Summary Reconcile Uploaded Files
// @Description Reconciles a source and a target file (CSV, TSV or XLSX) sent as multipart form data. The mapping is a JSON document in the "mapping" field.
// @Tags reconcile
// @Accept multipart/form-data
// @Produce json
// @Param source formData file true "Source file"
// @Param target formData file true "Target file"
// @Param mapping formData string true "Mapping JSON"
// @Success 200 {object} ReconcileResponse
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 409 {object} map[string]string "A reconciliation is already running"
// @Router /reconcile/upload [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var m mapping.Mapping
	if err := json.Unmarshal([]byte(c.FormValue("mapping")), &m); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid mapping", "details": err.Error()})
	}
	if err := m.Validate(); err != nil {
		return h.fail(c, l, err)
	}

	src, err := h.readUpload(c, "source")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	tgt, err := h.readUpload(c, "target")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.service.ReconcileTables(src, tgt, m)
	if err != nil {
		return h.fail(c, l, err)
	}
	return h.respond(c, l, result, ExportOptions{})
}

func (h *Handler) readUpload(c *fiber.Ctx, field string) (*table.Table, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing %s file", field)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", field, err)
	}
	defer f.Close()

	t, err := table.Read(f, fh.Filename, h.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file: %w", field, err)
	}
	return t, nil
}

// HandleLatest returns the last completed result.
// @Summary Latest Result
// @Description Returns the most recent reconciliation result.
// @Tags reconcile
// @Produce json
// @Success 200 {object} reconcile.Result
// @Failure 404 {object} map[string]string "No reconciliation has completed yet"
// @Router /reconcile/latest [get]
func (h *Handler) HandleLatest(c *fiber.Ctx) error {
	result := h.service.Latest()
	if result == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no reconciliation has completed yet"})
	}
	return c.JSON(result)
}

// HandleStockStatus returns the stock availability report of the last result.
// @Summary Stock Status
// @Description Returns the stock availability report for keys present on both sides of the latest result.
// @Tags reconcile
// @Produce json
// @Success 200 {object} reconcile.StockReport
// @Failure 404 {object} map[string]string "No reconciliation has completed yet"
// @Router /reconcile/latest/stock-status [get]
func (h *Handler) HandleStockStatus(c *fiber.Ctx) error {
	result := h.service.Latest()
	if result == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no reconciliation has completed yet"})
	}
	return c.JSON(result.Stock)
}

// HandleDownload returns one result set of the last result as CSV.
// @Summary Download Result Set
// @Description Downloads one result set of the latest result as a CSV file.
// @Tags reconcile
// @Produce text/csv
// @Param set path string true "Result set" Enums(mismatches, only_in_source, only_in_target, source_in_target_out, target_in_source_out)
// @Success 200 {string} string "CSV file"
// @Failure 404 {object} map[string]string "Unknown set or no result"
// @Router /reconcile/latest/{set} [get]
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	result := h.service.Latest()
	if result == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no reconciliation has completed yet"})
	}

	set := reconcile.SetName(c.Params("set"))
	if _, ok := result.Set(set); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown result set", "set": string(set)})
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, result, set); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Attachment(export.FileName(set, result.CompletedAt))
	return c.Send(buf.Bytes())
}

// HandleSuggest proposes a mapping for two feeds.
// @Summary Suggest Mapping
// @Description Guesses key columns and a first compare pair from the headers of two feeds. The suggestion must be confirmed before use.
// @Tags mapping
// @Accept json
// @Produce json
// @Param request body SuggestRequest true "Feeds"
// @Success 200 {object} mapping.Suggestion
// @Failure 400 {object} map[string]string "Invalid feeds"
// @Router /mapping/suggest [post]
func (h *Handler) HandleSuggest(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SuggestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	suggestion, err := h.service.Suggest(c.Context(), req.Source, req.Target)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(suggestion)
}

// HandleListFeeds lists feed files in the bucket.
// @Summary List Feeds
// @Description Lists the objects under an optional prefix that can be used as feeds.
// @Tags feeds
// @Produce json
// @Param prefix query string false "Object prefix"
// @Success 200 {object} map[string]interface{} "Feed keys"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /feeds [get]
func (h *Handler) HandleListFeeds(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	keys, err := h.service.ListFeeds(c.Context(), c.Query("prefix"))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(fiber.Map{"feeds": keys, "count": len(keys)})
}

func (h *Handler) respond(c *fiber.Ctx, l *zap.Logger, result *reconcile.Result, opts ExportOptions) error {
	resp := ReconcileResponse{Result: result}
	if opts.Any() {
		report, err := h.service.Export(c.Context(), result, opts)
		if err != nil {
			l.Error("Export failed", zap.String("run_id", result.RunID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "reconciliation succeeded but export failed",
				"details": err.Error(),
				"run_id":  result.RunID,
			})
		}
		resp.Export = report
	}
	return c.JSON(resp)
}

// fail maps service errors to HTTP responses.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	var (
		cfgErr     *reconcile.ConfigurationError
		missingErr *reconcile.MissingColumnError
	)

	switch {
	case errors.As(err, &cfgErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid mapping", "problems": cfgErr.Problems})
	case errors.As(err, &missingErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":          "missing columns",
			"source_missing": missingErr.Source,
			"target_missing": missingErr.Target,
		})
	case errors.Is(err, reconcile.ErrBusy):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInvalidFeed), errors.Is(err, ErrNoDatabase), errors.Is(err, ErrNoStorage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
