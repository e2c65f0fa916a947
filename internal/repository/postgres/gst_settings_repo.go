package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gstkit/internal/domain"
	"gstkit/internal/port"
)

type gstSettingsRepo struct {
	db *sqlx.DB
}

// NewGSTSettingsRepo creates a new PostgreSQL-backed GSTSettingsRepository.
func NewGSTSettingsRepo(db *sqlx.DB) port.GSTSettingsRepository {
	return &gstSettingsRepo{db: db}
}

func (r *gstSettingsRepo) ListAccounts(ctx context.Context, company string) ([]domain.GSTAccount, error) {
	var accounts []domain.GSTAccount
	err := r.db.SelectContext(ctx, &accounts,
		`SELECT company, cgst_account, sgst_account, igst_account, cess_account
		 FROM gst_accounts WHERE company = $1 ORDER BY idx`, company)
	if err != nil {
		return nil, fmt.Errorf("gstSettingsRepo.ListAccounts: %w", err)
	}
	return accounts, nil
}
