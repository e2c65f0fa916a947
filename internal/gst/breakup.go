package gst

import (
	"sort"

	"github.com/shopspring/decimal"

	"gstkit/internal/domain"
)

// TaxDetail is the rate and amount one tax key charges on an item or HSN code.
type TaxDetail struct {
	Rate    float64 `json:"tax_rate"`
	Amount  float64 `json:"tax_amount"`
	Account string  `json:"tax_account,omitempty"`
}

// ItemTaxLine is a single tax charged on an item, keyed by tax description.
type ItemTaxLine struct {
	Description string
	TaxDetail
}

// ItemisedTax maps an item key to the taxes charged on it, in tax row order.
type ItemisedTax map[string][]ItemTaxLine

// ItemisedTaxFromRows extracts per-item taxes from the item-wise detail of each
// tax row. Valuation-only rows are skipped. The account is recorded only when
// withAccount is set.
func ItemisedTaxFromRows(rows []domain.TaxRow, withAccount bool) ItemisedTax {
	out := make(ItemisedTax)
	for i := range rows {
		row := &rows[i]
		if row.Category == domain.TaxCategoryValuation {
			continue
		}
		for _, item := range sortedItemKeys(row.ItemWiseTaxDetail) {
			t := row.ItemWiseTaxDetail[item]
			line := ItemTaxLine{
				Description: row.Description,
				TaxDetail:   TaxDetail{Rate: t.Rate, Amount: t.Amount},
			}
			if withAccount {
				line.Account = row.AccountHead
			}
			out[item] = upsertLine(out[item], line)
		}
	}
	return out
}

// upsertLine replaces the line with the same description, keeping its position.
func upsertLine(lines []ItemTaxLine, line ItemTaxLine) []ItemTaxLine {
	for i := range lines {
		if lines[i].Description == line.Description {
			lines[i] = line
			return lines
		}
	}
	return append(lines, line)
}

func sortedItemKeys(m domain.ItemWiseTaxDetail) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ItemisedTaxableAmount sums the net amount of the items sharing an item key.
func ItemisedTaxableAmount(items []domain.InvoiceItem) map[string]float64 {
	acc := make(map[string]decimal.Decimal)
	for i := range items {
		key := items[i].Key()
		acc[key] = acc[key].Add(decimal.NewFromFloat(items[i].NetAmount))
	}
	out := make(map[string]float64, len(acc))
	for k, v := range acc {
		out[k] = v.InexactFloat64()
	}
	return out
}

// HSNBreakup is the tax breakup of a document grouped by HSN/SAC code.
// Codes lists every code in order of first appearance among the items; the
// empty code collects items without an HSN/SAC code.
type HSNBreakup struct {
	Codes   []string                        `json:"codes"`
	TaxKeys map[string][]string             `json:"tax_keys"`
	Tax     map[string]map[string]TaxDetail `json:"tax"`
	Taxable map[string]float64              `json:"taxable"`
}

// BreakupByHSN re-keys itemised taxes and taxable amounts by HSN/SAC code.
// Amounts for the same code and tax key add up; the rate of the last row seen
// wins. With accountWise the tax key is the account instead of the description.
func BreakupByHSN(itemised ItemisedTax, taxable map[string]float64, items []domain.InvoiceItem, accountWise bool) *HSNBreakup {
	itemHSN := make(map[string]string, len(items))
	var itemOrder []string
	for i := range items {
		key := items[i].Key()
		if _, seen := itemHSN[key]; seen {
			continue
		}
		itemHSN[key] = items[i].GSTHSNCode
		itemOrder = append(itemOrder, key)
	}

	b := &HSNBreakup{
		TaxKeys: make(map[string][]string),
		Tax:     make(map[string]map[string]TaxDetail),
		Taxable: make(map[string]float64),
	}
	seenCode := make(map[string]bool)
	addCode := func(code string) {
		if !seenCode[code] {
			seenCode[code] = true
			b.Codes = append(b.Codes, code)
		}
	}

	amounts := make(map[string]map[string]decimal.Decimal)
	for _, item := range itemisedOrder(itemised, itemOrder) {
		code := itemHSN[item]
		if b.Tax[code] == nil {
			b.Tax[code] = make(map[string]TaxDetail)
			amounts[code] = make(map[string]decimal.Decimal)
		}
		for _, line := range itemised[item] {
			key := line.Description
			if accountWise {
				key = line.Account
			}
			if _, ok := b.Tax[code][key]; !ok {
				b.TaxKeys[code] = append(b.TaxKeys[code], key)
			}
			amounts[code][key] = amounts[code][key].Add(decimal.NewFromFloat(line.Amount))
			b.Tax[code][key] = TaxDetail{
				Rate:    line.Rate,
				Amount:  amounts[code][key].InexactFloat64(),
				Account: line.Account,
			}
		}
	}

	taxableAcc := make(map[string]decimal.Decimal)
	for _, item := range itemOrder {
		amt, ok := taxable[item]
		if !ok {
			continue
		}
		code := itemHSN[item]
		addCode(code)
		taxableAcc[code] = taxableAcc[code].Add(decimal.NewFromFloat(amt))
	}
	for code, v := range taxableAcc {
		b.Taxable[code] = v.InexactFloat64()
	}
	for _, item := range itemisedOrder(itemised, itemOrder) {
		addCode(itemHSN[item])
	}
	return b
}

// itemisedOrder lists the itemised tax keys in document order, followed by any
// keys that no longer match an item.
func itemisedOrder(itemised ItemisedTax, itemOrder []string) []string {
	out := make([]string, 0, len(itemised))
	known := make(map[string]bool, len(itemOrder))
	for _, item := range itemOrder {
		known[item] = true
		if _, ok := itemised[item]; ok {
			out = append(out, item)
		}
	}
	var rest []string
	for item := range itemised {
		if !known[item] {
			rest = append(rest, item)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// BreakupHeader is the header row of the HSN-wise breakup table.
func BreakupHeader(taxKeys []string) []string {
	return append([]string{"HSN/SAC", "Taxable Amount"}, taxKeys...)
}

// AllTaxKeys lists the distinct tax keys of a breakup in order of appearance.
func (b *HSNBreakup) AllTaxKeys() []string {
	seen := make(map[string]bool)
	var out []string
	for _, code := range b.Codes {
		for _, k := range b.TaxKeys[code] {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}
