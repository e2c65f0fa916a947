package domain

// DocStatus is the lifecycle state of a stored document.
type DocStatus int

const (
	DocStatusDraft     DocStatus = 0
	DocStatusSubmitted DocStatus = 1
	DocStatusCancelled DocStatus = 2
)

// DocumentType names the kinds of documents that carry regional address details.
type DocumentType string

const (
	DocTypeSalesInvoice    DocumentType = "Sales Invoice"
	DocTypeDeliveryNote    DocumentType = "Delivery Note"
	DocTypePurchaseInvoice DocumentType = "Purchase Invoice"
)

// IsSelling reports whether the document is issued by the company to a customer.
func (t DocumentType) IsSelling() bool {
	return t == DocTypeSalesInvoice || t == DocTypeDeliveryNote
}

// TemplateKind is the master doctype holding default taxes for a document type.
type TemplateKind string

const (
	TemplateKindSales    TemplateKind = "Sales Taxes and Charges Template"
	TemplateKindPurchase TemplateKind = "Purchase Taxes and Charges Template"
)

// InvoiceType is the GST classification of a sales invoice.
type InvoiceType string

const (
	InvoiceTypeRegular      InvoiceType = "Regular"
	InvoiceTypeSEZ          InvoiceType = "SEZ"
	InvoiceTypeExport       InvoiceType = "Export"
	InvoiceTypeDeemedExport InvoiceType = "Deemed Export"
)

// PayrollFrequency is how often a salary structure pays out.
type PayrollFrequency string

const (
	PayrollDaily       PayrollFrequency = "Daily"
	PayrollWeekly      PayrollFrequency = "Weekly"
	PayrollFortnightly PayrollFrequency = "Fortnightly"
	PayrollMonthly     PayrollFrequency = "Monthly"
	PayrollBimonthly   PayrollFrequency = "Bimonthly"
)

// GST account roles as configured in GST Settings.
const (
	AccountRoleCGST = "cgst_account"
	AccountRoleSGST = "sgst_account"
	AccountRoleIGST = "igst_account"
	AccountRoleCess = "cess_account"
)

// TaxCategoryValuation marks tax rows that only affect stock valuation.
const TaxCategoryValuation = "Valuation"
