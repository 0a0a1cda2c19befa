package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/erp_core_backend/internal/apperrors"
	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxProductRepository stores the product catalog.
type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepository {
	return &PgxProductRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepository = (*PgxProductRepository)(nil)

const productColumns = `product_id, organization_id, sku, name, category, unit_price, cost_price, status, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ProductID, &p.OrganizationID, &p.SKU, &p.Name, &p.Category,
		&p.UnitPrice, &p.CostPrice, &p.Status,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return &p, nil
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (product_id, organization_id, sku, name, category, unit_price, cost_price, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		product.ProductID, product.OrganizationID, product.SKU, product.Name,
		product.Category, product.UnitPrice, product.CostPrice, product.Status,
		product.CreatedAt, product.CreatedBy, product.LastUpdatedAt, product.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: product sku %s", apperrors.ErrDuplicate, product.SKU)
		}
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products
		SET name = $1, category = $2, unit_price = $3, cost_price = $4, status = $5, last_updated_at = $6, last_updated_by = $7
		WHERE product_id = $8;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		product.Name, product.Category, product.UnitPrice, product.CostPrice,
		product.Status, product.LastUpdatedAt, product.LastUpdatedBy, product.ProductID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, product.ProductID)
	}
	return nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	return scanProduct(r.conn(ctx).QueryRow(ctx, query, productID))
}

func (r *PgxProductRepository) FindProductBySKU(ctx context.Context, organizationID, sku string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE organization_id = $1 AND sku = $2;`
	return scanProduct(r.conn(ctx).QueryRow(ctx, query, organizationID, sku))
}

func (r *PgxProductRepository) ListProducts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE organization_id = $1 ORDER BY sku`
	args := []any{organizationID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := r.conn(ctx).Query(ctx, query+`;`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// PgxStockRepository stores stock levels and the movement log.
type PgxStockRepository struct {
	BaseRepository
}

func newPgxStockRepository(pool *pgxpool.Pool) portsrepo.StockRepository {
	return &PgxStockRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.StockRepository = (*PgxStockRepository)(nil)

const stockLevelColumns = `product_id, organization_id, quantity, reserved, minimum_quantity, maximum_quantity, location, created_at, created_by, last_updated_at, last_updated_by`

func scanStockLevel(row pgx.Row) (*domain.StockLevel, error) {
	var s domain.StockLevel
	err := row.Scan(
		&s.ProductID, &s.OrganizationID, &s.Quantity, &s.Reserved,
		&s.MinimumQuantity, &s.MaximumQuantity, &s.Location,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan stock level: %w", err)
	}
	return &s, nil
}

// FindStockLevel reads a product's stock row. Inside a transaction the row is
// locked until commit so concurrent units of work serialize on it.
func (r *PgxStockRepository) FindStockLevel(ctx context.Context, productID string) (*domain.StockLevel, error) {
	query := `SELECT ` + stockLevelColumns + ` FROM stock_levels WHERE product_id = $1`
	if _, inTx := ctx.Value(txCtxKey{}).(pgx.Tx); inTx {
		query += ` FOR UPDATE`
	}
	return scanStockLevel(r.conn(ctx).QueryRow(ctx, query+`;`, productID))
}

func (r *PgxStockRepository) ListStockLevels(ctx context.Context, organizationID string) ([]domain.StockLevel, error) {
	query := `SELECT ` + stockLevelColumns + ` FROM stock_levels WHERE organization_id = $1 ORDER BY product_id;`
	rows, err := r.conn(ctx).Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock levels: %w", err)
	}
	defer rows.Close()

	var levels []domain.StockLevel
	for rows.Next() {
		s, err := scanStockLevel(rows)
		if err != nil {
			return nil, err
		}
		levels = append(levels, *s)
	}
	return levels, rows.Err()
}

func (r *PgxStockRepository) SaveStockLevel(ctx context.Context, level domain.StockLevel) error {
	query := `
		INSERT INTO stock_levels (product_id, organization_id, quantity, reserved, minimum_quantity, maximum_quantity, location, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		level.ProductID, level.OrganizationID, level.Quantity, level.Reserved,
		level.MinimumQuantity, level.MaximumQuantity, level.Location,
		level.CreatedAt, level.CreatedBy, level.LastUpdatedAt, level.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: stock level for product %s", apperrors.ErrDuplicate, level.ProductID)
		}
		return fmt.Errorf("failed to insert stock level: %w", err)
	}
	return nil
}

func (r *PgxStockRepository) UpdateStockLevel(ctx context.Context, level domain.StockLevel) error {
	query := `
		UPDATE stock_levels
		SET quantity = $1, reserved = $2, minimum_quantity = $3, maximum_quantity = $4, location = $5, last_updated_at = $6, last_updated_by = $7
		WHERE product_id = $8;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		level.Quantity, level.Reserved, level.MinimumQuantity, level.MaximumQuantity,
		level.Location, level.LastUpdatedAt, level.LastUpdatedBy, level.ProductID,
	)
	if err != nil {
		return fmt.Errorf("failed to update stock level: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: stock level for product %s", apperrors.ErrNotFound, level.ProductID)
	}
	return nil
}

func (r *PgxStockRepository) AppendMovement(ctx context.Context, movement domain.StockMovement) error {
	query := `
		INSERT INTO stock_movements (movement_id, organization_id, product_id, delta, reason, reference, unit_of_work_id, moved_at, moved_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		movement.MovementID, movement.OrganizationID, movement.ProductID,
		movement.Delta, movement.Reason, movement.Reference,
		movement.UnitOfWorkID, movement.MovedAt, movement.MovedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stock movement: %w", err)
	}
	return nil
}

func (r *PgxStockRepository) ListMovementsByProduct(ctx context.Context, productID string) ([]domain.StockMovement, error) {
	query := `
		SELECT movement_id, organization_id, product_id, delta, reason, COALESCE(reference, ''), unit_of_work_id, moved_at, moved_by
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY moved_at;
	`
	rows, err := r.conn(ctx).Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	defer rows.Close()

	var movements []domain.StockMovement
	for rows.Next() {
		var m domain.StockMovement
		err := rows.Scan(
			&m.MovementID, &m.OrganizationID, &m.ProductID, &m.Delta, &m.Reason,
			&m.Reference, &m.UnitOfWorkID, &m.MovedAt, &m.MovedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock movement: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

func (r *PgxStockRepository) SumMovementsByProduct(ctx context.Context, productID string) (int64, error) {
	query := `SELECT COALESCE(SUM(delta), 0) FROM stock_movements WHERE product_id = $1;`
	var sum int64
	if err := r.conn(ctx).QueryRow(ctx, query, productID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum stock movements: %w", err)
	}
	return sum, nil
}
