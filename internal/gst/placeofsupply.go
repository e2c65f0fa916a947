package gst

import "gstkit/internal/domain"

// SupplyAddressName picks the counterparty address a document is delivered to:
// the shipping address, else the customer (selling) or supplier (buying) address.
func SupplyAddressName(doc *domain.PartyDocument) string {
	switch doc.DocType {
	case domain.DocTypeSalesInvoice, domain.DocTypeDeliveryNote:
		if doc.ShippingAddressName != "" {
			return doc.ShippingAddressName
		}
		return doc.CustomerAddress
	case domain.DocTypePurchaseInvoice:
		if doc.ShippingAddress != "" {
			return doc.ShippingAddress
		}
		return doc.SupplierAddress
	}
	return ""
}

// PlaceOfSupply formats "{code}-{state}" for an address, or "" when the address
// has no GST state.
func PlaceOfSupply(addr *domain.Address) string {
	if addr == nil || addr.GSTState == "" || addr.GSTStateNumber == "" {
		return ""
	}
	return addr.GSTStateNumber + "-" + addr.GSTState
}

// TemplateQuery describes which default taxes template a document should get.
type TemplateQuery struct {
	Kind       domain.TemplateKind
	Company    string
	InterState bool
}

// TemplateQueryFor decides the template lookup for a document whose place of
// supply is known. ok is false when the document has no GSTIN of its own to
// compare against, in which case no template is applied.
func TemplateQueryFor(doc *domain.PartyDocument, placeOfSupply string) (TemplateQuery, bool) {
	if placeOfSupply == "" {
		return TemplateQuery{}, false
	}
	var kind domain.TemplateKind
	var ownGSTIN string
	switch {
	case doc.DocType.IsSelling():
		kind, ownGSTIN = domain.TemplateKindSales, doc.CompanyGSTIN
	case doc.DocType == domain.DocTypePurchaseInvoice:
		kind, ownGSTIN = domain.TemplateKindPurchase, doc.SupplierGSTIN
	default:
		return TemplateQuery{}, false
	}
	if ownGSTIN == "" {
		return TemplateQuery{}, false
	}
	return TemplateQuery{
		Kind:       kind,
		Company:    doc.Company,
		InterState: IsInterState(ownGSTIN, placeOfSupply),
	}, true
}
