package bundlerepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

const bundleColumns = `id, owner_id, agent_id, status, report_mode, payment_method,
        user_payment_verified, agent_payment_paid, track_code, archived_by_user, created_at, updated_at`

func scanBundle(row pgx.Row) (*domain.BundleOrder, error) {
	var bundle domain.BundleOrder
	err := row.Scan(&bundle.ID, &bundle.OwnerID, &bundle.AgentID, &bundle.Status, &bundle.ReportMode,
		&bundle.PaymentMethod, &bundle.UserPaymentVerified, &bundle.AgentPaymentPaid,
		&bundle.TrackCode, &bundle.ArchivedByUser, &bundle.CreatedAt, &bundle.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &bundle, nil
}

// Save inserts the bundle and all of its items in one transaction.
func (r *Repository) Save(ctx context.Context, bundle *domain.BundleOrder) (*domain.BundleOrder, error) {
	var saved *domain.BundleOrder
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		query := `
            INSERT INTO bundle_orders (owner_id, status)
            VALUES ($1, $2)
            RETURNING ` + bundleColumns + `
        `
		created, err := scanBundle(r.db.QueryRow(ctx, query, bundle.OwnerID, bundle.Status))
		if err != nil {
			zap.L().Error("can't save bundle", zap.Error(err))
			return err
		}

		itemQuery := `
            INSERT INTO bundle_items (bundle_id, position, product_name, description, image_urls)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING id
        `
		for i := range bundle.Items {
			item := &bundle.Items[i]
			item.BundleID = created.ID
			item.Position = i
			err := r.db.QueryRow(ctx, itemQuery,
				created.ID, i, item.ProductName, item.Description, item.ImageURLs).Scan(&item.ID)
			if err != nil {
				zap.L().Error("can't save bundle item", zap.Error(err))
				return err
			}
		}
		created.Items = bundle.Items
		saved = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.BundleOrder, error) {
	query := `
        SELECT ` + bundleColumns + `
        FROM bundle_orders
        WHERE id = $1
    `
	bundle, err := scanBundle(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find bundle", zap.Error(err))
		return nil, err
	}
	return bundle, nil
}

// FindByIDForUpdate loads the bundle under its row lock; call inside a
// transaction to serialize concurrent transitions on the same bundle.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int) (*domain.BundleOrder, error) {
	query := `
        SELECT ` + bundleColumns + `
        FROM bundle_orders
        WHERE id = $1
        FOR UPDATE
    `
	bundle, err := scanBundle(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find bundle for update", zap.Error(err))
		return nil, err
	}
	return bundle, nil
}

func (r *Repository) Update(ctx context.Context, bundle *domain.BundleOrder) error {
	query := `
        UPDATE bundle_orders
        SET agent_id = $1, status = $2, report_mode = $3, payment_method = $4,
            user_payment_verified = $5, agent_payment_paid = $6, track_code = $7,
            archived_by_user = $8, updated_at = now()
        WHERE id = $9
    `
	_, err := r.db.Exec(ctx, query, bundle.AgentID, bundle.Status, bundle.ReportMode,
		bundle.PaymentMethod, bundle.UserPaymentVerified, bundle.AgentPaymentPaid,
		bundle.TrackCode, bundle.ArchivedByUser, bundle.ID)
	if err != nil {
		zap.L().Error("can't update bundle", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	query := `
        DELETE FROM bundle_orders
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		zap.L().Error("can't delete bundle", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByOwner(ctx context.Context, ownerID int) ([]domain.BundleOrder, error) {
	query := `
        SELECT ` + bundleColumns + `
        FROM bundle_orders
        WHERE owner_id = $1
        ORDER BY created_at DESC
    `
	return r.findMany(ctx, query, ownerID)
}

func (r *Repository) FindOpen(ctx context.Context) ([]domain.BundleOrder, error) {
	query := `
        SELECT ` + bundleColumns + `
        FROM bundle_orders
        WHERE status = $1
        ORDER BY created_at ASC
    `
	return r.findMany(ctx, query, domain.StatusPublished)
}

func (r *Repository) findMany(ctx context.Context, query string, args ...any) ([]domain.BundleOrder, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get bundles", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var bundles []domain.BundleOrder
	for rows.Next() {
		bundle, err := scanBundle(rows)
		if err != nil {
			zap.L().Error("can't scan bundle row", zap.Error(err))
			return nil, err
		}
		bundles = append(bundles, *bundle)
	}
	return bundles, nil
}

func (r *Repository) FindItems(ctx context.Context, bundleID int) ([]domain.BundleItem, error) {
	query := `
        SELECT id, bundle_id, position, product_name, description, image_urls
        FROM bundle_items
        WHERE bundle_id = $1
        ORDER BY position
    `
	rows, err := r.db.Query(ctx, query, bundleID)
	if err != nil {
		zap.L().Error("can't get bundle items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []domain.BundleItem
	for rows.Next() {
		var item domain.BundleItem
		err := rows.Scan(&item.ID, &item.BundleID, &item.Position,
			&item.ProductName, &item.Description, &item.ImageURLs)
		if err != nil {
			zap.L().Error("can't scan bundle item row", zap.Error(err))
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) FindItem(ctx context.Context, itemID int) (*domain.BundleItem, error) {
	query := `
        SELECT id, bundle_id, position, product_name, description, image_urls
        FROM bundle_items
        WHERE id = $1
    `
	var item domain.BundleItem
	err := r.db.QueryRow(ctx, query, itemID).Scan(&item.ID, &item.BundleID, &item.Position,
		&item.ProductName, &item.Description, &item.ImageURLs)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find bundle item", zap.Error(err))
		return nil, err
	}
	return &item, nil
}

func (r *Repository) AgentOutcomes(ctx context.Context, agentID int) (completed, cancelled int, err error) {
	query := `
        SELECT
            COUNT(*) FILTER (WHERE status = $2),
            COUNT(*) FILTER (WHERE status = $3)
        FROM bundle_orders
        WHERE agent_id = $1
    `
	err = r.db.QueryRow(ctx, query, agentID, domain.StatusCompleted, domain.StatusCancelled).
		Scan(&completed, &cancelled)
	if err != nil {
		zap.L().Error("can't count agent bundle outcomes", zap.Error(err))
		return 0, 0, err
	}
	return completed, cancelled, nil
}
