package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Address is a postal address with its GST registration details.
type Address struct {
	Name           string `db:"name" json:"name"`
	AddressLine1   string `db:"address_line1" json:"address_line1"`
	AddressLine2   string `db:"address_line2" json:"address_line2"`
	City           string `db:"city" json:"city"`
	State          string `db:"state" json:"state"`
	Pincode        string `db:"pincode" json:"pincode"`
	GSTIN          string `db:"gstin" json:"gstin"`
	GSTState       string `db:"gst_state" json:"gst_state"`
	GSTStateNumber string `db:"gst_state_number" json:"gst_state_number"`
}

// PartyDocument is the subset of a sales/delivery/purchase document needed to
// derive its place of supply and default taxes.
type PartyDocument struct {
	DocType             DocumentType `json:"doctype"`
	Company             string       `json:"company"`
	ShippingAddressName string       `json:"shipping_address_name"`
	CustomerAddress     string       `json:"customer_address"`
	ShippingAddress     string       `json:"shipping_address"`
	SupplierAddress     string       `json:"supplier_address"`
	CompanyGSTIN        string       `json:"company_gstin"`
	SupplierGSTIN       string       `json:"supplier_gstin"`
}

// SalesInvoice holds the fields of a sales invoice used for tax breakup and
// e-Way Bill generation.
type SalesInvoice struct {
	Name                string        `db:"name" json:"name"`
	Company             string        `db:"company" json:"company"`
	CustomerName        string        `db:"customer_name" json:"customer_name"`
	DocStatus           DocStatus     `db:"docstatus" json:"docstatus"`
	IsReturn            bool          `db:"is_return" json:"is_return"`
	EWayBill            string        `db:"ewaybill" json:"ewaybill"`
	InvoiceType         InvoiceType   `db:"invoice_type" json:"invoice_type"`
	PostingDate         time.Time     `db:"posting_date" json:"posting_date"`
	CompanyGSTIN        string        `db:"company_gstin" json:"company_gstin"`
	BillingAddressGSTIN string        `db:"billing_address_gstin" json:"billing_address_gstin"`
	CompanyAddress      string        `db:"company_address" json:"company_address"`
	CustomerAddress     string        `db:"customer_address" json:"customer_address"`
	ShippingAddressName string        `db:"shipping_address_name" json:"shipping_address_name"`
	Total               float64       `db:"total" json:"total"`
	GrandTotal          float64       `db:"grand_total" json:"grand_total"`
	RoundedTotal        float64       `db:"rounded_total" json:"rounded_total"`
	ModeOfTransport     string        `db:"mode_of_transport" json:"mode_of_transport"`
	Distance            float64       `db:"distance" json:"distance"`
	GSTTransporterID    string        `db:"gst_transporter_id" json:"gst_transporter_id"`
	TransporterName     string        `db:"transporter_name" json:"transporter_name"`
	VehicleNo           string        `db:"vehicle_no" json:"vehicle_no"`
	GSTVehicleType      string        `db:"gst_vehicle_type" json:"gst_vehicle_type"`
	LRNo                string        `db:"lr_no" json:"lr_no"`
	LRDate              *time.Time    `db:"lr_date" json:"lr_date,omitempty"`
	Items               []InvoiceItem `db:"-" json:"items"`
	Taxes               []TaxRow      `db:"-" json:"taxes"`
}

// InvoiceItem is one line of an invoice.
type InvoiceItem struct {
	ItemCode   string  `db:"item_code" json:"item_code"`
	ItemName   string  `db:"item_name" json:"item_name"`
	GSTHSNCode string  `db:"gst_hsn_code" json:"gst_hsn_code"`
	NetAmount  float64 `db:"net_amount" json:"net_amount"`
}

// Key returns the item code, falling back to the item name.
func (i *InvoiceItem) Key() string {
	if i.ItemCode != "" {
		return i.ItemCode
	}
	return i.ItemName
}

// TaxRow is one row of a document's taxes and charges table.
type TaxRow struct {
	Description       string            `db:"description" json:"description"`
	AccountHead       string            `db:"account_head" json:"account_head"`
	Category          string            `db:"category" json:"category"`
	Rate              float64           `db:"rate" json:"rate"`
	ItemWiseTaxDetail ItemWiseTaxDetail `db:"item_wise_tax_detail" json:"item_wise_tax_detail"`
}

// ItemWiseTaxDetail maps an item key to the rate and amount charged on it.
type ItemWiseTaxDetail map[string]ItemTax

// Scan reads the detail from a JSON column.
func (d *ItemWiseTaxDetail) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("item wise tax detail: unsupported type %T", src)
	}
	return json.Unmarshal(raw, d)
}

// Value writes the detail as JSON.
func (d ItemWiseTaxDetail) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

// ItemTax is the tax charged on a single item by one tax row.
type ItemTax struct {
	Rate   float64
	Amount float64
}

// UnmarshalJSON accepts either a [rate, amount] pair or a bare rate.
func (t *ItemTax) UnmarshalJSON(b []byte) error {
	var pair []json.Number
	if err := json.Unmarshal(b, &pair); err == nil {
		*t = ItemTax{}
		if len(pair) > 0 {
			t.Rate = numberOrZero(pair[0])
		}
		if len(pair) > 1 {
			t.Amount = numberOrZero(pair[1])
		}
		return nil
	}
	var rate json.Number
	if err := json.Unmarshal(b, &rate); err != nil {
		return fmt.Errorf("item tax detail: %w", err)
	}
	*t = ItemTax{Rate: numberOrZero(rate)}
	return nil
}

// MarshalJSON writes the [rate, amount] pair form.
func (t ItemTax) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{t.Rate, t.Amount})
}

func numberOrZero(n json.Number) float64 {
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// GSTAccount maps a company's ledger accounts to GST roles.
type GSTAccount struct {
	Company     string `db:"company" json:"company"`
	CGSTAccount string `db:"cgst_account" json:"cgst_account"`
	SGSTAccount string `db:"sgst_account" json:"sgst_account"`
	IGSTAccount string `db:"igst_account" json:"igst_account"`
	CessAccount string `db:"cess_account" json:"cess_account"`
}

// TaxTemplate is a taxes-and-charges template header.
type TaxTemplate struct {
	Name         string       `db:"name" json:"name"`
	Kind         TemplateKind `db:"kind" json:"kind"`
	Company      string       `db:"company" json:"company"`
	IsInterState bool         `db:"is_inter_state" json:"is_inter_state"`
	IsDefault    bool         `db:"is_default" json:"is_default"`
	Disabled     bool         `db:"disabled" json:"disabled"`
}

// PayrollComponents holds the company-level salary component names used for HRA.
type PayrollComponents struct {
	Company        string `db:"company" json:"company"`
	BasicComponent string `db:"basic_component" json:"basic_component"`
	HRAComponent   string `db:"hra_component" json:"hra_component"`
}

// SalaryAssignment links an employee to the salary structure active on a date.
type SalaryAssignment struct {
	Employee         string           `db:"employee" json:"employee"`
	SalaryStructure  string           `db:"salary_structure" json:"salary_structure"`
	FromDate         time.Time        `db:"from_date" json:"from_date"`
	PayrollFrequency PayrollFrequency `db:"payroll_frequency" json:"payroll_frequency"`
}

// SalaryComponentAmount is one earning line of a previewed salary slip.
type SalaryComponentAmount struct {
	Component string  `db:"salary_component" json:"salary_component"`
	Amount    float64 `db:"amount" json:"amount"`
}

// TaxExemptionDeclaration is an employee's declared house rent for a payroll period.
type TaxExemptionDeclaration struct {
	Name              string    `json:"name"`
	Employee          string    `json:"employee"`
	Company           string    `json:"company"`
	DocStatus         DocStatus `json:"docstatus"`
	MonthlyHouseRent  float64   `json:"monthly_house_rent"`
	RentedInMetroCity bool      `json:"rented_in_metro_city"`
}

// ProofSubmission is an employee's proof of rent paid over a date range.
type ProofSubmission struct {
	Name                   string     `db:"name" json:"name"`
	Employee               string     `db:"employee" json:"employee"`
	Company                string     `db:"company" json:"company"`
	PayrollPeriod          string     `db:"payroll_period" json:"payroll_period"`
	DocStatus              DocStatus  `db:"docstatus" json:"docstatus"`
	RentedFromDate         *time.Time `db:"rented_from_date" json:"rented_from_date"`
	RentedToDate           *time.Time `db:"rented_to_date" json:"rented_to_date"`
	HouseRentPaymentAmount float64    `db:"house_rent_payment_amount" json:"house_rent_payment_amount"`
	RentedInMetroCity      bool       `db:"rented_in_metro_city" json:"rented_in_metro_city"`
}
