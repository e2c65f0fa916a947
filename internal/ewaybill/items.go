package ewaybill

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"gstkit/internal/domain"
	"gstkit/internal/gst"
)

// AccountRoles maps each configured GST ledger account to its role
// (cgst_account, sgst_account, igst_account or cess_account).
func AccountRoles(accounts []domain.GSTAccount) (map[string]string, error) {
	if len(accounts) == 0 {
		return nil, domain.NewConfigurationError("Please set GST Accounts in GST Settings")
	}
	roles := make(map[string]string)
	for _, a := range accounts {
		for _, p := range [...]struct{ role, name string }{
			{domain.AccountRoleCGST, a.CGSTAccount},
			{domain.AccountRoleSGST, a.SGSTAccount},
			{domain.AccountRoleIGST, a.IGSTAccount},
			{domain.AccountRoleCess, a.CessAccount},
		} {
			if p.name != "" {
				roles[p.name] = p.role
			}
		}
	}
	return roles, nil
}

type taxTotals struct {
	cgst, sgst, igst, cess, other decimal.Decimal
}

// ItemList builds one item per HSN/SAC code from the invoice's account-wise
// breakup and accumulates the bill's tax totals. CGST, SGST, IGST and cess
// totals are rounded to 2 places after every item.
func ItemList(b *Bill, inv *domain.SalesInvoice, accounts []domain.GSTAccount) error {
	roles, err := AccountRoles(accounts)
	if err != nil {
		return err
	}

	breakup := gst.BreakupByHSN(
		gst.ItemisedTaxFromRows(inv.Taxes, true),
		gst.ItemisedTaxableAmount(inv.Items),
		inv.Items,
		true,
	)

	var tot taxTotals
	b.ItemList = make([]Item, 0, len(breakup.Taxable))
	for _, code := range breakup.Codes {
		taxable, ok := breakup.Taxable[code]
		if !ok {
			continue
		}
		if code == "" {
			return domain.NewValidationError("GST HSN Code does not exist for one or more items")
		}
		hsn, err := strconv.Atoi(strings.TrimSpace(code))
		if err != nil {
			return domain.NewValidationError("GST HSN Code %s must be numeric", code)
		}

		item := Item{HSNCode: hsn, TaxableAmount: taxable}
		for _, account := range breakup.TaxKeys[code] {
			detail := breakup.Tax[code][account]
			amount := decimal.NewFromFloat(detail.Amount)
			switch roles[account] {
			case domain.AccountRoleSGST:
				item.SGSTRate = detail.Rate
				tot.sgst = tot.sgst.Add(amount)
			case domain.AccountRoleCGST:
				item.CGSTRate = detail.Rate
				tot.cgst = tot.cgst.Add(amount)
			case domain.AccountRoleIGST:
				item.IGSTRate = detail.Rate
				tot.igst = tot.igst.Add(amount)
			case domain.AccountRoleCess:
				item.CessRate = detail.Rate
				tot.cess = tot.cess.Add(amount)
			default:
				tot.other = tot.other.Add(amount)
			}
		}
		b.ItemList = append(b.ItemList, item)

		tot.sgst = tot.sgst.Round(2)
		tot.cgst = tot.cgst.Round(2)
		tot.igst = tot.igst.Round(2)
		tot.cess = tot.cess.Round(2)
	}

	b.CGSTValue = tot.cgst.InexactFloat64()
	b.SGSTValue = tot.sgst.InexactFloat64()
	b.IGSTValue = tot.igst.InexactFloat64()
	b.CessValue = tot.cess.InexactFloat64()
	b.OthValue = tot.other.InexactFloat64()
	return nil
}
