package orderrepo

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
	return &Repository{
		db: db,
	}
}

const orderColumns = `id, owner_id, agent_id, product_name, description, image_urls, status,
        payment_method, user_payment_verified, agent_payment_paid, track_code, archived_by_user,
        created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(&order.ID, &order.OwnerID, &order.AgentID, &order.ProductName, &order.Description,
		&order.ImageURLs, &order.Status, &order.PaymentMethod, &order.UserPaymentVerified,
		&order.AgentPaymentPaid, &order.TrackCode, &order.ArchivedByUser, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	query := `
        INSERT INTO orders (owner_id, product_name, description, image_urls, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + orderColumns + `
    `
	saved, err := scanOrder(r.db.QueryRow(ctx, query,
		order.OwnerID, order.ProductName, order.Description, order.ImageURLs, order.Status))
	if err != nil {
		zap.L().Error("can't save order", zap.Error(err))
		return nil, err
	}
	return saved, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE id = $1
    `
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find order", zap.Error(err))
		return nil, err
	}
	return order, nil
}

// FindByIDForUpdate loads the order under its row lock; call inside a
// transaction to serialize concurrent transitions on the same order.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int) (*domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE id = $1
        FOR UPDATE
    `
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find order for update", zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *Repository) Update(ctx context.Context, order *domain.Order) error {
	query := `
        UPDATE orders
        SET agent_id = $1, status = $2, payment_method = $3, user_payment_verified = $4,
            agent_payment_paid = $5, track_code = $6, archived_by_user = $7, updated_at = now()
        WHERE id = $8
    `
	_, err := r.db.Exec(ctx, query, order.AgentID, order.Status, order.PaymentMethod,
		order.UserPaymentVerified, order.AgentPaymentPaid, order.TrackCode, order.ArchivedByUser, order.ID)
	if err != nil {
		zap.L().Error("can't update order", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	query := `
        DELETE FROM orders
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		zap.L().Error("can't delete order", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByOwner(ctx context.Context, ownerID int) ([]domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE owner_id = $1
        ORDER BY created_at DESC
    `
	return r.findMany(ctx, query, ownerID)
}

// FindOpen returns the unclaimed feed agents pick orders from.
func (r *Repository) FindOpen(ctx context.Context) ([]domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE status = $1
        ORDER BY created_at ASC
    `
	return r.findMany(ctx, query, domain.StatusPublished)
}

func (r *Repository) FindByAgent(ctx context.Context, agentID int) ([]domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE agent_id = $1
        ORDER BY created_at DESC
    `
	return r.findMany(ctx, query, agentID)
}

func (r *Repository) findMany(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			zap.L().Error("can't scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *Repository) CountActiveByOwner(ctx context.Context, ownerID int) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM orders
        WHERE owner_id = $1 AND status NOT IN ($2, $3)
    `
	var count int
	err := r.db.QueryRow(ctx, query, ownerID, domain.StatusCompleted, domain.StatusCancelled).Scan(&count)
	if err != nil {
		zap.L().Error("can't count active orders", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *Repository) CountCreatedToday(ctx context.Context, ownerID int) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM orders
        WHERE owner_id = $1 AND created_at::date = now()::date
    `
	var count int
	err := r.db.QueryRow(ctx, query, ownerID).Scan(&count)
	if err != nil {
		zap.L().Error("can't count today's orders", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// AgentOutcomes counts terminal orders handled by the agent, split by outcome.
func (r *Repository) AgentOutcomes(ctx context.Context, agentID int) (completed, cancelled int, err error) {
	query := `
        SELECT
            COUNT(*) FILTER (WHERE status = $2),
            COUNT(*) FILTER (WHERE status = $3)
        FROM orders
        WHERE agent_id = $1
    `
	err = r.db.QueryRow(ctx, query, agentID, domain.StatusCompleted, domain.StatusCancelled).
		Scan(&completed, &cancelled)
	if err != nil {
		zap.L().Error("can't count agent outcomes", zap.Error(err))
		return 0, 0, err
	}
	return completed, cancelled, nil
}
