package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formflow/forms-service/internal/services"
	"github.com/formflow/forms-service/internal/validator"
)

// ExportHandler serves the data dashboard: the aggregated table, per-form
// counts and the file exports.
type ExportHandler struct {
	BaseHandler
	submissions services.SubmissionService
	aggregator  services.AggregatorService
	validator   *validator.Validator
}

func NewExportHandler(
	submissions services.SubmissionService,
	aggregator services.AggregatorService,
	validator *validator.Validator,
	logger *slog.Logger,
) *ExportHandler {
	return &ExportHandler{
		BaseHandler: NewBaseHandler(logger),
		submissions: submissions,
		aggregator:  aggregator,
		validator:   validator,
	}
}

type exportQuery struct {
	Format string `form:"format" validate:"omitempty,export_format"`
}

// GetTable returns the aggregated rectangular table
func (h *ExportHandler) GetTable(c *gin.Context) {
	records, err := h.submissions.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.aggregator.Aggregate(records))
}

// GetCounts returns submission counts per form title
func (h *ExportHandler) GetCounts(c *gin.Context) {
	records, err := h.submissions.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.aggregator.CountsByForm(records))
}

// Export downloads the aggregated table as CSV (default) or XLSX
func (h *ExportHandler) Export(c *gin.Context) {
	var query exportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid query", Details: err.Error()})
		return
	}
	if query.Format == "" {
		query.Format = "csv"
	}
	if err := h.validator.ValidateStruct(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}

	records, err := h.submissions.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	table := h.aggregator.Aggregate(records)

	h.LogRequest(c, "Exporting submissions", "format", query.Format, "records", len(table.Rows))

	switch query.Format {
	case "xlsx":
		payload, err := h.aggregator.ToExcel(table)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", services.ExcelExportFilename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
	default:
		csv := h.aggregator.ToCSV(table)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", services.CSVExportFilename))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
	}
}
