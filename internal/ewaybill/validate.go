package ewaybill

import (
	"gstkit/internal/domain"
)

// requiredField pairs an invoice field with the label shown when it is missing.
type requiredField struct {
	label string
	isSet func(inv *domain.SalesInvoice) bool
}

var requiredFields = []requiredField{
	{"Company GSTIN", func(inv *domain.SalesInvoice) bool { return inv.CompanyGSTIN != "" }},
	{"Company Address Name", func(inv *domain.SalesInvoice) bool { return inv.CompanyAddress != "" }},
	{"Customer Address Name", func(inv *domain.SalesInvoice) bool { return inv.CustomerAddress != "" }},
	{"Shipping Address Name", func(inv *domain.SalesInvoice) bool { return inv.ShippingAddressName != "" }},
	{"Mode of Transport", func(inv *domain.SalesInvoice) bool { return inv.ModeOfTransport != "" }},
	{"Distance (in km)", func(inv *domain.SalesInvoice) bool { return inv.Distance != 0 }},
}

// RequireSalesInvoice rejects document types other than Sales Invoice.
func RequireSalesInvoice(docType domain.DocumentType) error {
	if docType != domain.DocTypeSalesInvoice {
		return domain.NewValidationError("e-Way Bill JSON can only be generated from Sales Invoice")
	}
	return nil
}

// ValidateInvoice checks that an invoice is eligible for an e-Way Bill.
func ValidateInvoice(inv *domain.SalesInvoice) error {
	if inv.DocStatus != domain.DocStatusSubmitted {
		return domain.NewValidationError("e-Way Bill JSON can only be generated from submitted document")
	}
	if inv.IsReturn {
		return domain.NewValidationError("e-Way Bill JSON cannot be generated for Sales Return as of now")
	}
	if inv.EWayBill != "" {
		return domain.NewValidationError("e-Way Bill already exists for this document")
	}
	for _, f := range requiredFields {
		if !f.isSet(inv) {
			return domain.NewValidationError("%s is required to generate e-Way Bill JSON", f.label)
		}
	}
	if len(inv.CompanyGSTIN) < 15 {
		return domain.NewValidationError("You must be a registered supplier to generate e-Way Bill")
	}
	return nil
}

// SubSupplyType maps the invoice type to the portal's sub-supply code.
func SubSupplyType(t domain.InvoiceType) (int, error) {
	switch t {
	case domain.InvoiceTypeRegular, domain.InvoiceTypeSEZ:
		return 1, nil
	case domain.InvoiceTypeExport, domain.InvoiceTypeDeemedExport:
		return 3, nil
	}
	return 0, domain.NewValidationError("Unsupported Invoice Type for e-Way Bill JSON generation")
}
