package ewaybill_test

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstkit/internal/domain"
	"gstkit/internal/ewaybill"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func fixtureInvoice() *domain.SalesInvoice {
	return &domain.SalesInvoice{
		Name:                "SINV-2026-0001",
		Company:             "Acme Traders",
		CustomerName:        "Acme & Co.*!",
		DocStatus:           domain.DocStatusSubmitted,
		InvoiceType:         domain.InvoiceTypeRegular,
		PostingDate:         day("2026-03-05"),
		CompanyGSTIN:        "27AAPFU0939F1ZV",
		BillingAddressGSTIN: "29AAGCB7383J1Z4",
		CompanyAddress:      "Acme-HQ",
		CustomerAddress:     "Cust-Billing",
		ShippingAddressName: "Cust-Billing",
		Total:               1700,
		GrandTotal:          2006.4,
		RoundedTotal:        2006,
		ModeOfTransport:     "Road",
		Distance:            250.4,
		TransporterName:     "Fast & Safe Logistics *Ltd*",
		VehicleNo:           "MH 12 AB 1234",
		GSTVehicleType:      "Regular",
		Items: []domain.InvoiceItem{
			{ItemCode: "WIDGET-A", GSTHSNCode: "8471", NetAmount: 1000},
			{ItemCode: "WIDGET-B", GSTHSNCode: "8471", NetAmount: 500},
			{ItemCode: "SERVICE", GSTHSNCode: "998314", NetAmount: 200},
		},
		Taxes: []domain.TaxRow{
			{
				Description: "IGST @ 18%",
				AccountHead: "IGST - AT",
				ItemWiseTaxDetail: domain.ItemWiseTaxDetail{
					"WIDGET-A": {Rate: 18, Amount: 180.005},
					"WIDGET-B": {Rate: 18, Amount: 90.001},
					"SERVICE":  {Rate: 18, Amount: 36.004},
				},
			},
			{
				Description: "Freight",
				AccountHead: "Freight - AT",
				ItemWiseTaxDetail: domain.ItemWiseTaxDetail{
					"WIDGET-A": {Rate: 0, Amount: 10},
				},
			},
		},
	}
}

func fixtureAddresses() ewaybill.Addresses {
	billing := &domain.Address{
		Name:           "Cust-Billing",
		AddressLine1:   "Plot #4, Whitefield (Phase 2)",
		City:           "Bengaluru",
		Pincode:        "560001",
		GSTState:       "Karnataka",
		GSTStateNumber: "29",
	}
	return ewaybill.Addresses{
		Company: &domain.Address{
			Name:           "Acme-HQ",
			AddressLine1:   "12, MG Road",
			AddressLine2:   "Fort",
			City:           "Mumbai",
			Pincode:        "400 001",
			GSTState:       "Maharashtra",
			GSTStateNumber: "27",
		},
		Billing:  billing,
		Shipping: billing,
	}
}

var fixtureAccounts = []domain.GSTAccount{{
	Company:     "Acme Traders",
	CGSTAccount: "CGST - AT",
	SGSTAccount: "SGST - AT",
	IGSTAccount: "IGST - AT",
}}

func fixtureSource() ewaybill.Source {
	return ewaybill.Source{
		Invoice:     fixtureInvoice(),
		Addresses:   fixtureAddresses(),
		GSTAccounts: fixtureAccounts,
	}
}

func TestAssemble(t *testing.T) {
	b, err := ewaybill.Assemble(fixtureSource())
	require.NoError(t, err)

	assert.Equal(t, "27AAPFU0939F1ZV", b.UserGSTIN)
	assert.Equal(t, "27AAPFU0939F1ZV", b.FromGSTIN)
	assert.Equal(t, "O", b.SupplyType)
	assert.Equal(t, 1, b.SubSupplyType)
	assert.Equal(t, "INV", b.DocType)
	assert.Equal(t, "SINV-2026-0001", b.DocNo)
	assert.Equal(t, "05/03/2026", b.DocDate)

	assert.Equal(t, "Acme Traders", b.FromTrdName)
	assert.Equal(t, "12, MG Road", b.FromAddr1)
	assert.Equal(t, 400001, b.FromPincode)
	assert.Equal(t, 27, b.FromStateCode)
	assert.Equal(t, 27, b.ActualFromStateCode)

	assert.Equal(t, "29AAGCB7383J1Z4", b.ToGSTIN)
	assert.Equal(t, "Acme  Co.", b.ToTrdName)
	assert.Equal(t, "Plot #4, Whitefield Phase 2", b.ToAddr1)
	assert.Equal(t, "Bengaluru", b.ToPlace)
	assert.Equal(t, 560001, b.ToPincode)
	assert.Equal(t, 29, b.ToStateCode)
	assert.Equal(t, 29, b.ActualToStateCode)
	assert.Equal(t, 1, b.TransType)

	require.Len(t, b.ItemList, 2)
	assert.Equal(t, ewaybill.Item{HSNCode: 8471, TaxableAmount: 1500, IGSTRate: 18}, b.ItemList[0])
	assert.Equal(t, ewaybill.Item{HSNCode: 998314, TaxableAmount: 200, IGSTRate: 18}, b.ItemList[1])

	assert.Equal(t, 1700.0, b.TotalValue)
	assert.Equal(t, 306.01, b.IGSTValue)
	assert.Zero(t, b.CGSTValue)
	assert.Equal(t, 10.0, b.OthValue)
	assert.Equal(t, 2006.0, b.TotInvValue)

	assert.Equal(t, 250, b.TransDistance)
	assert.Equal(t, 1, b.TransMode)
	assert.Equal(t, "MH12AB1234", b.VehicleNo)
	assert.Equal(t, "R", b.VehicleType)
	assert.Equal(t, "Fast & Safe Logistics Ltd", b.TransporterName)
	assert.Empty(t, b.TransporterID)
	assert.Empty(t, b.TransDocNo)
	assert.Empty(t, b.TransDocDate)
}

func TestAssemble_DisableRoundedTotal(t *testing.T) {
	src := fixtureSource()
	src.DisableRoundedTotal = true
	b, err := ewaybill.Assemble(src)
	require.NoError(t, err)
	assert.Equal(t, 2006.4, b.TotInvValue)
}

func TestAssemble_UnregisteredRecipient(t *testing.T) {
	src := fixtureSource()
	src.Invoice.BillingAddressGSTIN = ""
	billing := *src.Addresses.Billing
	billing.GSTState, billing.GSTStateNumber, billing.State = "", "", "karnataka"
	src.Addresses.Billing, src.Addresses.Shipping = &billing, &billing

	b, err := ewaybill.Assemble(src)
	require.NoError(t, err)
	assert.Equal(t, "URP", b.ToGSTIN)
	assert.Equal(t, 29, b.ToStateCode)
	assert.Empty(t, billing.GSTStateNumber, "input address must not be modified")
}

func TestAssemble_SeparateShippingAddress(t *testing.T) {
	src := fixtureSource()
	src.Invoice.ShippingAddressName = "Cust-Warehouse"
	src.Addresses.Shipping = &domain.Address{
		Name:         "Cust-Warehouse",
		AddressLine1: "Dock 7",
		City:         "Chennai",
		State:        "Tamil Nadu",
		Pincode:      "600 001",
	}

	b, err := ewaybill.Assemble(src)
	require.NoError(t, err)
	assert.Equal(t, 2, b.TransType)
	assert.Equal(t, 600001, b.ToPincode)
	assert.Equal(t, 29, b.ToStateCode)
	assert.Equal(t, 33, b.ActualToStateCode)
	assert.Equal(t, "Dock 7", b.ToAddr1)
	assert.Equal(t, "Chennai", b.ToPlace)
}

func TestAssemble_Distance(t *testing.T) {
	src := fixtureSource()
	src.Invoice.Distance = 4000
	b, err := ewaybill.Assemble(src)
	require.NoError(t, err)
	assert.Equal(t, 4000, b.TransDistance)

	src = fixtureSource()
	src.Invoice.Distance = 4001
	_, err = ewaybill.Assemble(src)
	require.Error(t, err)
	assert.Equal(t, "Distance cannot be greater than 4000 kms", err.Error())
}

func TestTransportDetails(t *testing.T) {
	lrDate := day("2026-03-06")

	tests := []struct {
		name    string
		mutate  func(inv *domain.SalesInvoice)
		wantErr string
		check   func(t *testing.T, b *ewaybill.Bill)
	}{
		{
			name:    "road without vehicle type",
			mutate:  func(inv *domain.SalesInvoice) { inv.GSTVehicleType = "" },
			wantErr: "Vehicle Type is required if Mode of Transport is Road",
		},
		{
			name: "road without transporter or vehicle",
			mutate: func(inv *domain.SalesInvoice) {
				inv.VehicleNo = ""
			},
			wantErr: "Either GST Transporter ID or Vehicle No is required if Mode of Transport is Road",
		},
		{
			name: "road with transporter id only",
			mutate: func(inv *domain.SalesInvoice) {
				inv.VehicleNo = ""
				inv.GSTTransporterID = "29AAGCB7383J1Z4"
				inv.GSTVehicleType = "Over Dimensional Cargo (ODC)"
			},
			check: func(t *testing.T, b *ewaybill.Bill) {
				assert.Equal(t, "29AAGCB7383J1Z4", b.TransporterID)
				assert.Equal(t, "O", b.VehicleType)
				assert.Empty(t, b.VehicleNo)
			},
		},
		{
			name:    "bad transporter id",
			mutate:  func(inv *domain.SalesInvoice) { inv.GSTTransporterID = "29AAGCB7383J1Z5" },
			wantErr: "Invalid GST Transporter ID! The check digit validation has failed. Please ensure you've typed the GST Transporter ID correctly.",
		},
		{
			name: "rail without receipt",
			mutate: func(inv *domain.SalesInvoice) {
				inv.ModeOfTransport = "Rail"
				inv.LRNo = "RR-1"
			},
			wantErr: "Transport Receipt No and Date are mandatory for your chosen Mode of Transport",
		},
		{
			name: "air with receipt",
			mutate: func(inv *domain.SalesInvoice) {
				inv.ModeOfTransport = "Air"
				inv.LRNo = "AWB/778-1"
				inv.LRDate = &lrDate
			},
			check: func(t *testing.T, b *ewaybill.Bill) {
				assert.Equal(t, 3, b.TransMode)
				assert.Equal(t, "AWB/778-1", b.TransDocNo)
				assert.Equal(t, "06/03/2026", b.TransDocDate)
			},
		},
		{
			name:    "unknown mode",
			mutate:  func(inv *domain.SalesInvoice) { inv.ModeOfTransport = "Pipeline" },
			wantErr: "Unsupported Mode of Transport Pipeline",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := fixtureInvoice()
			tt.mutate(inv)
			var b ewaybill.Bill
			err := ewaybill.TransportDetails(&b, inv)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrValidation))
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			tt.check(t, &b)
		})
	}
}

func TestValidateInvoice(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(inv *domain.SalesInvoice)
		wantErr string
	}{
		{"draft", func(inv *domain.SalesInvoice) { inv.DocStatus = domain.DocStatusDraft }, "e-Way Bill JSON can only be generated from submitted document"},
		{"return", func(inv *domain.SalesInvoice) { inv.IsReturn = true }, "e-Way Bill JSON cannot be generated for Sales Return as of now"},
		{"existing", func(inv *domain.SalesInvoice) { inv.EWayBill = "331000012345" }, "e-Way Bill already exists for this document"},
		{"company gstin", func(inv *domain.SalesInvoice) { inv.CompanyGSTIN = "" }, "Company GSTIN is required to generate e-Way Bill JSON"},
		{"company address", func(inv *domain.SalesInvoice) { inv.CompanyAddress = "" }, "Company Address Name is required to generate e-Way Bill JSON"},
		{"customer address", func(inv *domain.SalesInvoice) { inv.CustomerAddress = "" }, "Customer Address Name is required to generate e-Way Bill JSON"},
		{"shipping address", func(inv *domain.SalesInvoice) { inv.ShippingAddressName = "" }, "Shipping Address Name is required to generate e-Way Bill JSON"},
		{"mode", func(inv *domain.SalesInvoice) { inv.ModeOfTransport = "" }, "Mode of Transport is required to generate e-Way Bill JSON"},
		{"distance", func(inv *domain.SalesInvoice) { inv.Distance = 0 }, "Distance (in km) is required to generate e-Way Bill JSON"},
		{"unregistered supplier", func(inv *domain.SalesInvoice) { inv.CompanyGSTIN = "27AAPFU0939" }, "You must be a registered supplier to generate e-Way Bill"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := fixtureInvoice()
			tt.mutate(inv)
			err := ewaybill.ValidateInvoice(inv)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}

	assert.NoError(t, ewaybill.ValidateInvoice(fixtureInvoice()))
	assert.Error(t, ewaybill.RequireSalesInvoice(domain.DocTypeDeliveryNote))
	assert.NoError(t, ewaybill.RequireSalesInvoice(domain.DocTypeSalesInvoice))
}

func TestSubSupplyType(t *testing.T) {
	for it, want := range map[domain.InvoiceType]int{
		domain.InvoiceTypeRegular:      1,
		domain.InvoiceTypeSEZ:          1,
		domain.InvoiceTypeExport:       3,
		domain.InvoiceTypeDeemedExport: 3,
	} {
		got, err := ewaybill.SubSupplyType(it)
		require.NoError(t, err)
		assert.Equal(t, want, got, string(it))
	}
	_, err := ewaybill.SubSupplyType("Bill of Supply")
	require.Error(t, err)
	assert.Equal(t, "Unsupported Invoice Type for e-Way Bill JSON generation", err.Error())
}

func TestAddressDetails_Pincode(t *testing.T) {
	tests := []struct {
		pin     string
		wantErr string
	}{
		{"", "Pin Code doesn't exist for Company Address"},
		{"4000", "Pin Code for Company Address is incorrecty formatted. It must be 6 digits (without spaces)"},
		{"40000A", "Pin Code for Company Address is incorrecty formatted. It must be 6 digits (without spaces)"},
	}
	for _, tt := range tests {
		t.Run(tt.pin, func(t *testing.T) {
			addrs := fixtureAddresses()
			addrs.Company.Pincode = tt.pin
			var b ewaybill.Bill
			err := ewaybill.AddressDetails(&b, fixtureInvoice(), addrs)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}

	addrs := fixtureAddresses()
	addrs.Company.GSTStateNumber = ""
	var b ewaybill.Bill
	err := ewaybill.AddressDetails(&b, fixtureInvoice(), addrs)
	require.Error(t, err)
	assert.Equal(t, "GST State Code not found for Company Address. Please set GST State in Company Address", err.Error())
}

func TestItemList(t *testing.T) {
	t.Run("missing hsn code", func(t *testing.T) {
		inv := fixtureInvoice()
		inv.Items[2].GSTHSNCode = ""
		var b ewaybill.Bill
		err := ewaybill.ItemList(&b, inv, fixtureAccounts)
		require.Error(t, err)
		assert.Equal(t, "GST HSN Code does not exist for one or more items", err.Error())
	})

	t.Run("non numeric hsn code", func(t *testing.T) {
		inv := fixtureInvoice()
		inv.Items[2].GSTHSNCode = "99-83"
		var b ewaybill.Bill
		err := ewaybill.ItemList(&b, inv, fixtureAccounts)
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("hsn code with surrounding spaces", func(t *testing.T) {
		inv := fixtureInvoice()
		inv.Items[2].GSTHSNCode = " 998314 "
		var b ewaybill.Bill
		require.NoError(t, ewaybill.ItemList(&b, inv, fixtureAccounts))
		codes := make([]int, 0, len(b.ItemList))
		for _, it := range b.ItemList {
			codes = append(codes, it.HSNCode)
		}
		assert.Contains(t, codes, 998314)
	})

	t.Run("no gst accounts", func(t *testing.T) {
		var b ewaybill.Bill
		err := ewaybill.ItemList(&b, fixtureInvoice(), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConfiguration))
		assert.Equal(t, "Please set GST Accounts in GST Settings", err.Error())
	})

	t.Run("totals rounded after every item", func(t *testing.T) {
		inv := fixtureInvoice()
		inv.Taxes = []domain.TaxRow{{
			Description: "CGST",
			AccountHead: "CGST - AT",
			ItemWiseTaxDetail: domain.ItemWiseTaxDetail{
				"WIDGET-A": {Rate: 0.1, Amount: 0.004},
				"SERVICE":  {Rate: 0.1, Amount: 0.004},
			},
		}}
		var b ewaybill.Bill
		require.NoError(t, ewaybill.ItemList(&b, inv, fixtureAccounts))
		assert.Zero(t, b.CGSTValue)
		assert.Equal(t, 0.1, b.ItemList[0].CGSTRate)
	})
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Acme  Co.", ewaybill.Sanitize("Acme & Co.*!", ewaybill.IdentifierChars))
	assert.Equal(t, "Acme & Co.", ewaybill.Sanitize("Acme & Co.*!", ewaybill.AddressChars))
	assert.Equal(t, "INV/2026-01_A", ewaybill.Sanitize("INV/2026-01_A?", ewaybill.IdentifierChars))
	assert.Equal(t, "Café Ñandú", ewaybill.Sanitize("Café Ñandú™", ewaybill.IdentifierChars))
	assert.Equal(t, "", ewaybill.Sanitize("", ewaybill.AddressChars))
	assert.Equal(t, "a+b", ewaybill.Sanitize("a+b!", "+"))
}

func TestEnvelope(t *testing.T) {
	b, err := ewaybill.Assemble(fixtureSource())
	require.NoError(t, err)

	env := ewaybill.NewEnvelope("", []*ewaybill.Bill{b})
	assert.Equal(t, ewaybill.SchemaVersion, env.Version)

	raw, err := env.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n    \"version\": \"1.0.1118\"")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	bills := decoded["billLists"].([]any)
	require.Len(t, bills, 1)
	bill := bills[0].(map[string]any)
	assert.Equal(t, "R", bill["vehicleType"])
	assert.NotContains(t, bill, "transDocDate")
	assert.Contains(t, bill, "OthValue")
	assert.Contains(t, bill, "TotNonAdvolVal")

	text := string(raw)
	assert.Less(t, strings.Index(text, `"billLists"`), strings.Index(text, `"version"`))
	assert.Less(t, strings.Index(text, `"OthValue"`), strings.Index(text, `"actualFromStateCode"`))
	assert.Less(t, strings.Index(text, `"actualFromStateCode"`), strings.Index(text, `"userGstin"`))
	assert.NotContains(t, text, `\u0026`)
	assert.False(t, strings.HasSuffix(text, "\n"))

	empty := ewaybill.NewEnvelope("1.0.0", nil)
	assert.NotNil(t, empty.BillLists)
}

func TestFileName(t *testing.T) {
	single := ewaybill.FileName([]string{"SINV-0001"})
	assert.Regexp(t, regexp.MustCompile(`^SINV-0001_e-WayBill_Data_[0-9a-f]{5}\.json$`), single)

	bulk := ewaybill.FileName([]string{"SINV-0001", "SINV-0002"})
	assert.Regexp(t, regexp.MustCompile(`^Bulk_e-WayBill_Data_[0-9a-f]{5}\.json$`), bulk)
}
