package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gstkit/internal/domain"
	"gstkit/internal/gst"
	"gstkit/internal/port"
)

// RegionalDetails is what a document should get applied after its addresses
// change. Empty fields mean "leave as is".
type RegionalDetails struct {
	PlaceOfSupply   string          `json:"place_of_supply,omitempty"`
	TaxesAndCharges string          `json:"taxes_and_charges,omitempty"`
	Taxes           []domain.TaxRow `json:"taxes,omitempty"`
}

// GSTService exposes GSTIN validation, place of supply resolution and the
// HSN-wise tax breakup of invoices.
type GSTService interface {
	ValidateGSTIN(ctx context.Context, in gst.GSTINInput) (gst.StatePatch, error)
	CheckDigit(ctx context.Context, id, label string) error
	States() []gst.RegionCode
	RegionalDetails(ctx context.Context, doc *domain.PartyDocument) (*RegionalDetails, error)
	TaxBreakup(ctx context.Context, invoice string, accountWise bool) (*gst.HSNBreakup, error)
}

type gstService struct {
	addresses port.AddressRepository
	templates port.TaxTemplateRepository
	invoices  port.InvoiceRepository
	log       *zap.Logger
}

// NewGSTService creates a new GSTService implementation.
func NewGSTService(
	addresses port.AddressRepository,
	templates port.TaxTemplateRepository,
	invoices port.InvoiceRepository,
	log *zap.Logger,
) GSTService {
	if log == nil {
		log = zap.NewNop()
	}
	return &gstService{addresses: addresses, templates: templates, invoices: invoices, log: log}
}

func (s *gstService) ValidateGSTIN(_ context.Context, in gst.GSTINInput) (gst.StatePatch, error) {
	return gst.ValidateGSTIN(in)
}

func (s *gstService) CheckDigit(_ context.Context, id, label string) error {
	return gst.ValidateCheckDigit(id, label)
}

func (s *gstService) States() []gst.RegionCode {
	return gst.States()
}

func (s *gstService) RegionalDetails(ctx context.Context, doc *domain.PartyDocument) (*RegionalDetails, error) {
	out := &RegionalDetails{}
	name := gst.SupplyAddressName(doc)
	if name == "" {
		return out, nil
	}

	addr, err := s.addresses.GetByName(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.Debug("supply address not found", zap.String("address", name))
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("gstService.RegionalDetails: %w", err)
	}

	out.PlaceOfSupply = gst.PlaceOfSupply(addr)
	q, ok := gst.TemplateQueryFor(doc, out.PlaceOfSupply)
	if !ok {
		return out, nil
	}

	tmpl, err := s.templates.FindDefault(ctx, q.Kind, q.Company, q.InterState)
	if errors.Is(err, domain.ErrNotFound) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("gstService.RegionalDetails: %w", err)
	}
	taxes, err := s.templates.ListTaxes(ctx, q.Kind, tmpl.Name)
	if err != nil {
		return nil, fmt.Errorf("gstService.RegionalDetails: %w", err)
	}

	out.TaxesAndCharges = tmpl.Name
	out.Taxes = taxes
	s.log.Debug("default taxes template resolved",
		zap.String("place_of_supply", out.PlaceOfSupply),
		zap.String("template", tmpl.Name),
		zap.Bool("inter_state", q.InterState),
	)
	return out, nil
}

func (s *gstService) TaxBreakup(ctx context.Context, invoice string, accountWise bool) (*gst.HSNBreakup, error) {
	inv, err := s.invoices.GetSalesInvoice(ctx, invoice)
	if err != nil {
		return nil, err
	}
	itemised := gst.ItemisedTaxFromRows(inv.Taxes, accountWise)
	taxable := gst.ItemisedTaxableAmount(inv.Items)
	return gst.BreakupByHSN(itemised, taxable, inv.Items, accountWise), nil
}
