package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gstkit/internal/csvexport"
	"gstkit/internal/domain"
	"gstkit/internal/gst"
	"gstkit/internal/middleware"
	"gstkit/internal/service"
	"gstkit/internal/xlsxexport"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GSTHandler handles GSTIN, place of supply and tax breakup endpoints.
type GSTHandler struct {
	gstService service.GSTService
}

// NewGSTHandler creates a new GSTHandler.
func NewGSTHandler(gstService service.GSTService) *GSTHandler {
	return &GSTHandler{gstService: gstService}
}

// ValidateGSTIN handles POST /api/v1/gstin/validate
func (h *GSTHandler) ValidateGSTIN(c *gin.Context) {
	var req gst.GSTINInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	patch, err := h.gstService.ValidateGSTIN(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, patch)
}

// CheckDigit handles POST /api/v1/gstin/check-digit
func (h *GSTHandler) CheckDigit(c *gin.Context) {
	var req struct {
		GSTIN string `json:"gstin" binding:"required"`
		Label string `json:"label"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "gstin is required")
		return
	}

	if err := h.gstService.CheckDigit(c.Request.Context(), req.GSTIN, req.Label); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"valid": true})
}

// States handles GET /api/v1/states
func (h *GSTHandler) States(c *gin.Context) {
	RespondOK(c, h.gstService.States())
}

// RegionalDetails handles POST /api/v1/regional-details
func (h *GSTHandler) RegionalDetails(c *gin.Context) {
	var req domain.PartyDocument
	if err := c.ShouldBindJSON(&req); err != nil || req.DocType == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "doctype is required")
		return
	}
	if req.Company == "" {
		req.Company = middleware.GetCompany(c)
	}

	details, err := h.gstService.RegionalDetails(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, details)
}

// TaxBreakup handles GET /api/v1/invoices/:name/tax-breakup
// Query: account_wise=true|false, format=json|csv|xlsx (default json).
func (h *GSTHandler) TaxBreakup(c *gin.Context) {
	name := c.Param("name")
	accountWise := false
	if v := c.Query("account_wise"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "account_wise must be a boolean")
			return
		}
		accountWise = parsed
	}

	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "format must be one of json, csv, xlsx")
		return
	}

	breakup, err := h.gstService.TaxBreakup(c.Request.Context(), name, accountWise)
	if err != nil {
		HandleError(c, err)
		return
	}

	switch format {
	case "csv":
		var buf bytes.Buffer
		buf.Write(csvexport.BOM)
		w := csvexport.NewWriter(&buf)
		if err := w.WriteBreakup(breakup); err != nil {
			HandleError(c, err)
			return
		}
		w.Flush()
		if err := w.Error(); err != nil {
			HandleError(c, err)
			return
		}
		attachment(c, csvexport.BuildFilename(name, "csv"))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	case "xlsx":
		var buf bytes.Buffer
		if err := xlsxexport.WriteBreakup(&buf, breakup); err != nil {
			HandleError(c, err)
			return
		}
		attachment(c, csvexport.BuildFilename(name, "xlsx"))
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	default:
		RespondOK(c, gin.H{
			"header":  gst.BreakupHeader(breakup.AllTaxKeys()),
			"breakup": breakup,
		})
	}
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
}
