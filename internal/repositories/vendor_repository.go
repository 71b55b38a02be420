package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kivi-backend/internal/models"
)

type VendorRepository struct {
	DB *pgxpool.Pool
}

func NewVendorRepository(db *pgxpool.Pool) *VendorRepository {
	return &VendorRepository{DB: db}
}

func (r *VendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	query := `
		INSERT INTO vendors (name, phone, market)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(ctx, query,
		vendor.Name,
		vendor.Phone,
		vendor.Market,
	).Scan(&vendor.ID, &vendor.CreatedAt)
}

func (r *VendorRepository) GetByID(ctx context.Context, id int) (*models.Vendor, error) {
	query := `
		SELECT id, name, COALESCE(phone, ''), COALESCE(market, ''), created_at
		FROM vendors
		WHERE id = $1
	`
	vendor := &models.Vendor{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&vendor.ID,
		&vendor.Name,
		&vendor.Phone,
		&vendor.Market,
		&vendor.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (r *VendorRepository) List(ctx context.Context) ([]*models.Vendor, error) {
	query := `
		SELECT id, name, COALESCE(phone, ''), COALESCE(market, ''), created_at
		FROM vendors
		ORDER BY name
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*models.Vendor
	for rows.Next() {
		vendor := &models.Vendor{}
		err := rows.Scan(
			&vendor.ID,
			&vendor.Name,
			&vendor.Phone,
			&vendor.Market,
			&vendor.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}
	return vendors, rows.Err()
}
