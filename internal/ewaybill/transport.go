package ewaybill

import (
	"math"
	"strings"

	"gstkit/internal/domain"
	"gstkit/internal/gst"
)

// MaxDistanceKM is the longest distance the portal accepts.
const MaxDistanceKM = 4000

const modeRoad = "Road"

var transportModes = map[string]int{
	modeRoad: 1,
	"Rail":   2,
	"Air":    3,
	"Ship":   4,
}

var vehicleTypes = map[string]string{
	"Regular":                      "R",
	"Over Dimensional Cargo (ODC)": "O",
}

// TransportDetails fills the distance, mode, vehicle and transporter fields.
func TransportDetails(b *Bill, inv *domain.SalesInvoice) error {
	if inv.Distance > MaxDistanceKM {
		return domain.NewValidationError("Distance cannot be greater than 4000 kms")
	}
	b.TransDistance = int(math.RoundToEven(inv.Distance))

	mode, ok := transportModes[inv.ModeOfTransport]
	if !ok {
		return domain.NewValidationError("Unsupported Mode of Transport %s", inv.ModeOfTransport)
	}
	b.TransMode = mode

	if inv.ModeOfTransport == modeRoad {
		if inv.GSTTransporterID == "" && inv.VehicleNo == "" {
			return domain.NewValidationError("Either GST Transporter ID or Vehicle No is required if Mode of Transport is Road")
		}
		if inv.VehicleNo != "" {
			b.VehicleNo = strings.ReplaceAll(inv.VehicleNo, " ", "")
		}
		if inv.GSTVehicleType == "" {
			return domain.NewValidationError("Vehicle Type is required if Mode of Transport is Road")
		}
		vt, ok := vehicleTypes[inv.GSTVehicleType]
		if !ok {
			return domain.NewValidationError("Unsupported Vehicle Type %s", inv.GSTVehicleType)
		}
		b.VehicleType = vt
	} else if inv.LRNo == "" || inv.LRDate == nil {
		return domain.NewValidationError("Transport Receipt No and Date are mandatory for your chosen Mode of Transport")
	}

	b.TransDocNo = inv.LRNo
	if inv.LRDate != nil {
		b.TransDocDate = inv.LRDate.Format(dateLayout)
	}
	if inv.GSTTransporterID != "" {
		if err := gst.ValidateCheckDigit(inv.GSTTransporterID, "GST Transporter ID"); err != nil {
			return err
		}
		b.TransporterID = inv.GSTTransporterID
	}
	return nil
}
