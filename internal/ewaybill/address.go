package ewaybill

import (
	"strconv"
	"strings"

	"gstkit/internal/domain"
	"gstkit/internal/gst"
)

const unregisteredPerson = "URP"

// Addresses are the three addresses an invoice ships between. Shipping may
// be the same record as Billing.
type Addresses struct {
	Company  *domain.Address
	Billing  *domain.Address
	Shipping *domain.Address
}

// AddressDetails fills the from/to pin codes, state codes, recipient GSTIN
// and transaction type of a bill.
func AddressDetails(b *Bill, inv *domain.SalesInvoice, addrs Addresses) error {
	var err error
	if b.FromPincode, err = validatePincode(addrs.Company.Pincode, "Company Address"); err != nil {
		return err
	}
	if b.FromStateCode, err = validateStateCode(addrs.Company.GSTStateNumber, "Company Address"); err != nil {
		return err
	}
	b.ActualFromStateCode = b.FromStateCode

	billing := *addrs.Billing
	if len(inv.BillingAddressGSTIN) < 15 {
		b.ToGSTIN = unregisteredPerson
		withResolvedState(&billing)
	} else {
		b.ToGSTIN = inv.BillingAddressGSTIN
	}
	if b.ToPincode, err = validatePincode(billing.Pincode, "Customer Address"); err != nil {
		return err
	}
	if b.ToStateCode, err = validateStateCode(billing.GSTStateNumber, "Customer Address"); err != nil {
		return err
	}

	if inv.CustomerAddress == inv.ShippingAddressName {
		b.TransType = 1
		b.ActualToStateCode = b.ToStateCode
		return nil
	}

	b.TransType = 2
	shipping := *addrs.Shipping
	withResolvedState(&shipping)
	if b.ToPincode, err = validatePincode(shipping.Pincode, "Shipping Address"); err != nil {
		return err
	}
	if b.ActualToStateCode, err = validateStateCode(shipping.GSTStateNumber, "Shipping Address"); err != nil {
		return err
	}
	return nil
}

// withResolvedState fills the GST state and code of a copied address from
// its free-text state when they are not set.
func withResolvedState(a *domain.Address) {
	if region, ok := gst.ResolveState(a.GSTState, a.State); ok {
		a.GSTState = region.State
		a.GSTStateNumber = region.Number
	}
}

func validatePincode(pincode, address string) (int, error) {
	if pincode == "" {
		return 0, domain.NewValidationError("Pin Code doesn't exist for %s", address)
	}
	pincode = strings.ReplaceAll(pincode, " ", "")
	if len(pincode) != 6 || !isDigits(pincode) {
		return 0, domain.NewValidationError("Pin Code for %s is incorrecty formatted. It must be 6 digits (without spaces)", address)
	}
	n, _ := strconv.Atoi(pincode)
	return n, nil
}

func validateStateCode(code, address string) (int, error) {
	if code == "" {
		return 0, domain.NewValidationError("GST State Code not found for %[1]s. Please set GST State in %[1]s", address)
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return 0, domain.NewValidationError("GST State Code not found for %[1]s. Please set GST State in %[1]s", address)
	}
	return n, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
