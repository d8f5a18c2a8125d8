package reportrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

const reportColumns = `id, order_id, bundle_id, bundle_item_id, user_amount, payment_link,
        additional_images, additional_description, quantity, payable_yuan, payable_mnt,
        created_at, updated_at`

func scanReport(row pgx.Row) (*domain.AgentReport, error) {
	var report domain.AgentReport
	err := row.Scan(&report.ID, &report.OrderID, &report.BundleID, &report.BundleItemID,
		&report.UserAmount, &report.PaymentLink, &report.AdditionalImages, &report.AdditionalDescription,
		&report.Quantity, &report.PayableYuan, &report.PayableMNT, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *Repository) Save(ctx context.Context, report *domain.AgentReport) (*domain.AgentReport, error) {
	query := `
        INSERT INTO agent_reports (order_id, bundle_id, bundle_item_id, user_amount, payment_link,
            additional_images, additional_description, quantity, payable_yuan, payable_mnt)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING ` + reportColumns + `
	`
	saved, err := scanReport(r.db.QueryRow(ctx, query,
		report.OrderID, report.BundleID, report.BundleItemID, report.UserAmount, report.PaymentLink,
		report.AdditionalImages, report.AdditionalDescription, report.Quantity,
		report.PayableYuan, report.PayableMNT))
	if err != nil {
		zap.L().Error("can't save report", zap.Error(err))
		return nil, err
	}
	return saved, nil
}

func (r *Repository) Update(ctx context.Context, report *domain.AgentReport) (*domain.AgentReport, error) {
	query := `
        UPDATE agent_reports
        SET user_amount = $1, payment_link = $2, additional_images = $3,
            additional_description = $4, quantity = $5, payable_yuan = $6, payable_mnt = $7,
            updated_at = now()
        WHERE id = $8
        RETURNING ` + reportColumns + `
	`
	updated, err := scanReport(r.db.QueryRow(ctx, query,
		report.UserAmount, report.PaymentLink, report.AdditionalImages, report.AdditionalDescription,
		report.Quantity, report.PayableYuan, report.PayableMNT, report.ID))
	if err != nil {
		zap.L().Error("can't update report", zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (r *Repository) FindByOrderID(ctx context.Context, orderID int) (*domain.AgentReport, error) {
	query := `
        SELECT ` + reportColumns + `
        FROM agent_reports
        WHERE order_id = $1
	`
	return r.findOne(ctx, query, orderID)
}

func (r *Repository) FindByBundleID(ctx context.Context, bundleID int) (*domain.AgentReport, error) {
	query := `
        SELECT ` + reportColumns + `
        FROM agent_reports
        WHERE bundle_id = $1
	`
	return r.findOne(ctx, query, bundleID)
}

func (r *Repository) FindByItemID(ctx context.Context, itemID int) (*domain.AgentReport, error) {
	query := `
        SELECT ` + reportColumns + `
        FROM agent_reports
        WHERE bundle_item_id = $1
	`
	return r.findOne(ctx, query, itemID)
}

func (r *Repository) findOne(ctx context.Context, query string, arg any) (*domain.AgentReport, error) {
	report, err := scanReport(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find report", zap.Error(err))
		return nil, err
	}
	return report, nil
}

// FindByItemIDs returns reports keyed by bundle item id.
func (r *Repository) FindByItemIDs(ctx context.Context, itemIDs []int) (map[int]*domain.AgentReport, error) {
	query := `
        SELECT ` + reportColumns + `
        FROM agent_reports
        WHERE bundle_item_id = ANY($1)
	`
	rows, err := r.db.Query(ctx, query, itemIDs)
	if err != nil {
		zap.L().Error("can't find item reports", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	reports := make(map[int]*domain.AgentReport)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			zap.L().Error("can't scan report row", zap.Error(err))
			return nil, err
		}
		if report.BundleItemID != nil {
			reports[*report.BundleItemID] = report
		}
	}
	return reports, nil
}
