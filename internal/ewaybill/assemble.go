package ewaybill

import (
	"gstkit/internal/domain"
)

// Source is everything needed to assemble the bill of one invoice.
type Source struct {
	Invoice     *domain.SalesInvoice
	Addresses   Addresses
	GSTAccounts []domain.GSTAccount
	// DisableRoundedTotal reports the grand total instead of the rounded total.
	DisableRoundedTotal bool
}

// Assemble validates an invoice and builds its e-Way Bill.
func Assemble(src Source) (*Bill, error) {
	inv := src.Invoice
	if err := ValidateInvoice(inv); err != nil {
		return nil, err
	}

	b := &Bill{
		UserGSTIN:  inv.CompanyGSTIN,
		FromGSTIN:  inv.CompanyGSTIN,
		SupplyType: "O",
		DocType:    "INV",
		DocDate:    inv.PostingDate.Format(dateLayout),
	}
	var err error
	if b.SubSupplyType, err = SubSupplyType(inv.InvoiceType); err != nil {
		return nil, err
	}
	if err := AddressDetails(b, inv, src.Addresses); err != nil {
		return nil, err
	}

	b.TotalValue = inv.Total
	if err := ItemList(b, inv, src.GSTAccounts); err != nil {
		return nil, err
	}
	if src.DisableRoundedTotal {
		b.TotInvValue = inv.GrandTotal
	} else {
		b.TotInvValue = inv.RoundedTotal
	}

	if err := TransportDetails(b, inv); err != nil {
		return nil, err
	}

	b.DocNo = inv.Name
	b.FromTrdName = inv.Company
	b.ToTrdName = inv.CustomerName
	b.FromAddr1 = src.Addresses.Company.AddressLine1
	b.FromAddr2 = src.Addresses.Company.AddressLine2
	b.FromPlace = src.Addresses.Company.City
	b.ToAddr1 = src.Addresses.Shipping.AddressLine1
	b.ToAddr2 = src.Addresses.Shipping.AddressLine2
	b.ToPlace = src.Addresses.Shipping.City
	b.TransporterName = inv.TransporterName
	sanitizeFields(b)
	return b, nil
}
