// Package ewaybill builds the e-Way Bill JSON accepted by the GST e-Way Bill
// portal's bulk upload tool from a submitted sales invoice.
package ewaybill

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// SchemaVersion is the bulk upload schema version the payload targets.
const SchemaVersion = "1.0.1118"

const dateLayout = "02/01/2006"

// Bill is one entry of the billLists array.
type Bill struct {
	UserGSTIN           string  `json:"userGstin"`
	FromGSTIN           string  `json:"fromGstin"`
	SupplyType          string  `json:"supplyType"`
	SubSupplyType       int     `json:"subSupplyType"`
	DocType             string  `json:"docType"`
	DocNo               string  `json:"docNo"`
	DocDate             string  `json:"docDate"`
	FromTrdName         string  `json:"fromTrdName"`
	FromAddr1           string  `json:"fromAddr1"`
	FromAddr2           string  `json:"fromAddr2"`
	FromPlace           string  `json:"fromPlace"`
	FromPincode         int     `json:"fromPincode"`
	FromStateCode       int     `json:"fromStateCode"`
	ActualFromStateCode int     `json:"actualFromStateCode"`
	ToGSTIN             string  `json:"toGstin"`
	ToTrdName           string  `json:"toTrdName"`
	ToAddr1             string  `json:"toAddr1"`
	ToAddr2             string  `json:"toAddr2"`
	ToPlace             string  `json:"toPlace"`
	ToPincode           int     `json:"toPincode"`
	ToStateCode         int     `json:"toStateCode"`
	ActualToStateCode   int     `json:"actualToStateCode"`
	TransType           int     `json:"transType"`
	ItemList            []Item  `json:"itemList"`
	TotalValue          float64 `json:"totalValue"`
	CGSTValue           float64 `json:"cgstValue"`
	SGSTValue           float64 `json:"sgstValue"`
	IGSTValue           float64 `json:"igstValue"`
	CessValue           float64 `json:"cessValue"`
	OthValue            float64 `json:"OthValue"`
	TotNonAdvolVal      float64 `json:"TotNonAdvolVal"`
	TotInvValue         float64 `json:"totInvValue"`
	TransporterID       string  `json:"transporterId"`
	TransporterName     string  `json:"transporterName"`
	TransDistance       int     `json:"transDistance"`
	TransMode           int     `json:"transMode"`
	TransDocNo          string  `json:"transDocNo"`
	TransDocDate        string  `json:"transDocDate,omitempty"`
	VehicleNo           string  `json:"vehicleNo,omitempty"`
	VehicleType         string  `json:"vehicleType,omitempty"`
}

// Item is one HSN/SAC line of a bill.
type Item struct {
	HSNCode       int     `json:"hsnCode"`
	TaxableAmount float64 `json:"taxableAmount"`
	QtyUnit       string  `json:"qtyUnit"`
	SGSTRate      float64 `json:"sgstRate"`
	CGSTRate      float64 `json:"cgstRate"`
	IGSTRate      float64 `json:"igstRate"`
	CessRate      float64 `json:"cessRate"`
	CessNonAdvol  float64 `json:"cessNonAdvol"`
}

// Envelope wraps one or more bills for upload.
type Envelope struct {
	Version   string  `json:"version"`
	BillLists []*Bill `json:"billLists"`
}

// NewEnvelope wraps bills with the given schema version, defaulting to
// SchemaVersion.
func NewEnvelope(version string, bills []*Bill) *Envelope {
	if version == "" {
		version = SchemaVersion
	}
	if bills == nil {
		bills = []*Bill{}
	}
	return &Envelope{Version: version, BillLists: bills}
}

// Marshal renders the envelope as the downloadable file body: keys sorted at
// every level, 4-space indentation and no HTML escaping.
func (e *Envelope) Marshal() ([]byte, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshaling e-way bill: %w", err)
	}

	// Maps encode with sorted keys; UseNumber keeps numbers as written.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree map[string]any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("marshaling e-way bill: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(tree); err != nil {
		return nil, fmt.Errorf("marshaling e-way bill: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// FileName names the download: the invoice name for a single bill, "Bulk"
// otherwise, followed by a short random suffix.
func FileName(names []string) string {
	base := "Bulk"
	if len(names) == 1 {
		base = names[0]
	}
	return fmt.Sprintf("%s_e-WayBill_Data_%s.json", base, randomSuffix())
}

func randomSuffix() string {
	return uuid.NewString()[:5]
}
