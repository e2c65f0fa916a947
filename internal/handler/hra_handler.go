package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gstkit/internal/domain"
	"gstkit/internal/middleware"
	"gstkit/internal/service"
)

const requestDateLayout = "2006-01-02"

// HRAHandler handles HRA exemption endpoints.
type HRAHandler struct {
	hraService service.HRAService
}

// NewHRAHandler creates a new HRAHandler.
func NewHRAHandler(hraService service.HRAService) *HRAHandler {
	return &HRAHandler{hraService: hraService}
}

// DeclarationExemption handles POST /api/v1/hra/exemption
func (h *HRAHandler) DeclarationExemption(c *gin.Context) {
	var req domain.TaxExemptionDeclaration
	if err := c.ShouldBindJSON(&req); err != nil || req.Employee == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "employee is required")
		return
	}
	if req.Company == "" {
		req.Company = middleware.GetCompany(c)
	}

	ex, err := h.hraService.DeclarationExemption(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, ex)
}

type proofRequest struct {
	Name                   string           `json:"name"`
	Employee               string           `json:"employee" binding:"required"`
	Company                string           `json:"company"`
	PayrollPeriod          string           `json:"payroll_period"`
	DocStatus              domain.DocStatus `json:"docstatus"`
	RentedFromDate         string           `json:"rented_from_date"`
	RentedToDate           string           `json:"rented_to_date"`
	HouseRentPaymentAmount float64          `json:"house_rent_payment_amount"`
	RentedInMetroCity      bool             `json:"rented_in_metro_city"`
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(requestDateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// PeriodExemption handles POST /api/v1/hra/exemption/period
// Dates are YYYY-MM-DD. The response data is empty when no rent payment is given.
func (h *HRAHandler) PeriodExemption(c *gin.Context) {
	var req proofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "employee is required")
		return
	}
	from, err := parseOptionalDate(req.RentedFromDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "rented_from_date must be YYYY-MM-DD")
		return
	}
	to, err := parseOptionalDate(req.RentedToDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "rented_to_date must be YYYY-MM-DD")
		return
	}
	if req.Company == "" {
		req.Company = middleware.GetCompany(c)
	}

	proof := &domain.ProofSubmission{
		Name:                   req.Name,
		Employee:               req.Employee,
		Company:                req.Company,
		PayrollPeriod:          req.PayrollPeriod,
		DocStatus:              req.DocStatus,
		RentedFromDate:         from,
		RentedToDate:           to,
		HouseRentPaymentAmount: req.HouseRentPaymentAmount,
		RentedInMetroCity:      req.RentedInMetroCity,
	}
	ex, err := h.hraService.ProofExemption(c.Request.Context(), proof)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, ex)
}
