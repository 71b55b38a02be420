package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kivi-backend/internal/models"
)

type VendorPriceRepository struct {
	DB *pgxpool.Pool
}

func NewVendorPriceRepository(db *pgxpool.Pool) *VendorPriceRepository {
	return &VendorPriceRepository{DB: db}
}

const vendorPriceColumns = `
	vp.id, vp.vendor_id, v.name, vp.product_id, p.name,
	vp.unit, vp.base_price, vp.markup_percentage, vp.available, vp.updated_at
`

func scanVendorPrice(row pgx.Row) (*models.VendorPrice, error) {
	vp := &models.VendorPrice{}
	err := row.Scan(
		&vp.ID,
		&vp.VendorID,
		&vp.VendorName,
		&vp.ProductID,
		&vp.ProductName,
		&vp.Unit,
		&vp.BasePrice,
		&vp.MarkupPercentage,
		&vp.Available,
		&vp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	vp.SalePrice = models.ComputeSalePrice(vp.BasePrice, vp.MarkupPercentage)
	return vp, nil
}

func (r *VendorPriceRepository) Create(ctx context.Context, vendorID int, req *models.CreateVendorPriceRequest) (*models.VendorPrice, error) {
	query := `
		INSERT INTO vendor_prices (vendor_id, product_id, unit, base_price, markup_percentage, available)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id, updated_at
	`
	vp := &models.VendorPrice{
		VendorID:         vendorID,
		ProductID:        req.ProductID,
		Unit:             req.Unit,
		BasePrice:        req.BasePrice,
		MarkupPercentage: req.MarkupPercentage,
		Available:        true,
	}
	err := r.DB.QueryRow(ctx, query,
		vendorID, req.ProductID, req.Unit, req.BasePrice, req.MarkupPercentage,
	).Scan(&vp.ID, &vp.UpdatedAt)
	if err != nil {
		return nil, err
	}
	vp.SalePrice = models.ComputeSalePrice(vp.BasePrice, vp.MarkupPercentage)
	return vp, nil
}

func (r *VendorPriceRepository) GetByID(ctx context.Context, id int) (*models.VendorPrice, error) {
	query := `
		SELECT ` + vendorPriceColumns + `
		FROM vendor_prices vp
		JOIN vendors v ON v.id = vp.vendor_id
		JOIN products p ON p.id = vp.product_id
		WHERE vp.id = $1
	`
	vp, err := scanVendorPrice(r.DB.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return vp, err
}

func (r *VendorPriceRepository) List(ctx context.Context, filter *models.VendorPriceFilter) ([]*models.VendorPrice, error) {
	query := `
		SELECT ` + vendorPriceColumns + `
		FROM vendor_prices vp
		JOIN vendors v ON v.id = vp.vendor_id
		JOIN products p ON p.id = vp.product_id
		WHERE ($1 = 0 OR vp.vendor_id = $1)
		  AND ($2 = 0 OR vp.product_id = $2)
		  AND ($3 = FALSE OR vp.available = TRUE)
		ORDER BY v.name, p.name, vp.unit
	`
	rows, err := r.DB.Query(ctx, query, filter.VendorID, filter.ProductID, filter.AvailableOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []*models.VendorPrice
	for rows.Next() {
		vp, err := scanVendorPrice(rows)
		if err != nil {
			return nil, err
		}
		prices = append(prices, vp)
	}
	return prices, rows.Err()
}

func (r *VendorPriceRepository) Update(ctx context.Context, id int, req *models.UpdateVendorPriceRequest) (bool, error) {
	query := `
		UPDATE vendor_prices
		SET unit = $1,
		    base_price = $2,
		    markup_percentage = $3,
		    available = COALESCE($4, available),
		    updated_at = NOW()
		WHERE id = $5
	`
	tag, err := r.DB.Exec(ctx, query,
		req.Unit, req.BasePrice, req.MarkupPercentage, req.Available, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *VendorPriceRepository) ToggleAvailability(ctx context.Context, id int) (*models.VendorPrice, error) {
	query := `
		UPDATE vendor_prices
		SET available = NOT available, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.DB.Exec(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *VendorPriceRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.DB.Exec(ctx, "DELETE FROM vendor_prices WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// BatchUpsert replaces or inserts one vendor's price round in a single
// transaction, so a half-applied round never becomes visible.
func (r *VendorPriceRepository) BatchUpsert(ctx context.Context, vendorID int, prices []models.CreateVendorPriceRequest) (int, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO vendor_prices (vendor_id, product_id, unit, base_price, markup_percentage, available)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (vendor_id, product_id, unit)
		DO UPDATE SET base_price = EXCLUDED.base_price,
		              markup_percentage = EXCLUDED.markup_percentage,
		              available = TRUE,
		              updated_at = NOW()
	`
	for _, p := range prices {
		if _, err := tx.Exec(ctx, query, vendorID, p.ProductID, p.Unit, p.BasePrice, p.MarkupPercentage); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(prices), nil
}
