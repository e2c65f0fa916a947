package service

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"

	"gstkit/internal/domain"
	"gstkit/internal/ewaybill"
	"gstkit/internal/port"
)

// EWayBillOptions configures e-Way Bill generation.
type EWayBillOptions struct {
	Version             string
	DisableRoundedTotal bool
	// Archive uploads every generated file to Bucket when storage is set.
	Archive       bool
	Bucket        string
	PresignExpiry int64
}

// EWayBillFile is a generated e-Way Bill download.
type EWayBillFile struct {
	FileName   string
	Content    []byte
	Envelope   *ewaybill.Envelope
	ArchiveURL string
}

// EWayBillService builds e-Way Bill JSON files for sales invoices.
type EWayBillService interface {
	Generate(ctx context.Context, docType domain.DocumentType, names []string) (*EWayBillFile, error)
}

type ewayBillService struct {
	invoices  port.InvoiceRepository
	addresses port.AddressRepository
	settings  port.GSTSettingsRepository
	storage   port.ObjectStorage
	opts      EWayBillOptions
	log       *zap.Logger
}

// NewEWayBillService creates a new EWayBillService implementation. storage may
// be nil, which disables archiving.
func NewEWayBillService(
	invoices port.InvoiceRepository,
	addresses port.AddressRepository,
	settings port.GSTSettingsRepository,
	storage port.ObjectStorage,
	opts EWayBillOptions,
	log *zap.Logger,
) EWayBillService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ewayBillService{
		invoices:  invoices,
		addresses: addresses,
		settings:  settings,
		storage:   storage,
		opts:      opts,
		log:       log,
	}
}

func (s *ewayBillService) Generate(ctx context.Context, docType domain.DocumentType, names []string) (*EWayBillFile, error) {
	if err := ewaybill.RequireSalesInvoice(docType); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, domain.NewValidationError("No Sales Invoice selected for e-Way Bill JSON generation")
	}

	accounts := make(map[string][]domain.GSTAccount)
	bills := make([]*ewaybill.Bill, 0, len(names))
	for _, name := range names {
		bill, err := s.billFor(ctx, name, accounts)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}

	env := ewaybill.NewEnvelope(s.opts.Version, bills)
	content, err := env.Marshal()
	if err != nil {
		return nil, err
	}
	file := &EWayBillFile{
		FileName: ewaybill.FileName(names),
		Content:  content,
		Envelope: env,
	}
	s.log.Info("e-way bill generated", zap.Int("bills", len(bills)), zap.String("file", file.FileName))

	if s.opts.Archive && s.storage != nil {
		file.ArchiveURL = s.archive(ctx, file)
	}
	return file, nil
}

func (s *ewayBillService) billFor(ctx context.Context, name string, accountsByCompany map[string][]domain.GSTAccount) (*ewaybill.Bill, error) {
	inv, err := s.invoices.GetSalesInvoice(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("ewayBillService.billFor %s: %w", name, err)
	}
	// Address names are only known to be present once the invoice passed validation.
	if err := ewaybill.ValidateInvoice(inv); err != nil {
		return nil, err
	}

	var addrs ewaybill.Addresses
	if addrs.Company, err = s.addresses.GetByName(ctx, inv.CompanyAddress); err != nil {
		return nil, fmt.Errorf("ewayBillService.billFor %s: company address: %w", name, err)
	}
	if addrs.Billing, err = s.addresses.GetByName(ctx, inv.CustomerAddress); err != nil {
		return nil, fmt.Errorf("ewayBillService.billFor %s: customer address: %w", name, err)
	}
	addrs.Shipping = addrs.Billing
	if inv.ShippingAddressName != inv.CustomerAddress {
		if addrs.Shipping, err = s.addresses.GetByName(ctx, inv.ShippingAddressName); err != nil {
			return nil, fmt.Errorf("ewayBillService.billFor %s: shipping address: %w", name, err)
		}
	}

	accounts, ok := accountsByCompany[inv.Company]
	if !ok {
		if accounts, err = s.settings.ListAccounts(ctx, inv.Company); err != nil {
			return nil, fmt.Errorf("ewayBillService.billFor %s: %w", name, err)
		}
		accountsByCompany[inv.Company] = accounts
	}

	return ewaybill.Assemble(ewaybill.Source{
		Invoice:             inv,
		Addresses:           addrs,
		GSTAccounts:         accounts,
		DisableRoundedTotal: s.opts.DisableRoundedTotal,
	})
}

// archive uploads the file and returns a presigned download URL. Failures are
// logged and leave the URL empty; the download itself is still served.
func (s *ewayBillService) archive(ctx context.Context, file *EWayBillFile) string {
	key := "ewaybills/" + file.FileName
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.opts.Bucket,
		Key:         key,
		Body:        bytes.NewReader(file.Content),
		ContentType: "application/json",
		Size:        int64(len(file.Content)),
	})
	if err != nil {
		s.log.Warn("e-way bill archive upload failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	url, err := s.storage.GetPresignedURL(ctx, s.opts.Bucket, key, s.opts.PresignExpiry)
	if err != nil {
		s.log.Warn("e-way bill presign failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}
