package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gstkit/internal/domain"
	"gstkit/internal/middleware"
	"gstkit/internal/service"
)

// EWayBillHandler handles e-Way Bill download endpoints.
type EWayBillHandler struct {
	ewayBillService service.EWayBillService
}

// NewEWayBillHandler creates a new EWayBillHandler.
func NewEWayBillHandler(ewayBillService service.EWayBillService) *EWayBillHandler {
	return &EWayBillHandler{ewayBillService: ewayBillService}
}

// Download handles GET /api/v1/ewaybill?doctype=Sales%20Invoice&names=A,B
// It responds with the JSON file as an attachment.
func (h *EWayBillHandler) Download(c *gin.Context) {
	names := splitNames(c.Query("names"))
	if len(names) == 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "names is required")
		return
	}
	docType := domain.DocumentType(c.DefaultQuery("doctype", string(domain.DocTypeSalesInvoice)))

	file, err := h.ewayBillService.Generate(c.Request.Context(), docType, names)
	if err != nil {
		HandleError(c, err)
		return
	}

	subject, _ := middleware.GetSubject(c)
	zap.L().Info("e-way bill downloaded",
		zap.String("request_id", c.GetString(middleware.ContextKeyRequestID)),
		zap.String("subject", subject),
		zap.String("file", file.FileName),
	)

	if file.ArchiveURL != "" {
		c.Header("X-Archive-URL", file.ArchiveURL)
	}
	attachment(c, file.FileName)
	c.Data(http.StatusOK, "application/json", file.Content)
}

func splitNames(raw string) []string {
	var names []string
	for _, n := range strings.Split(raw, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
