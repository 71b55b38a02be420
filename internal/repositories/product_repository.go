package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kivi-backend/internal/models"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, unit, quality, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(ctx, query,
		product.Name,
		product.Unit,
		product.Quality,
		product.ImageURL,
	).Scan(&product.ID, &product.CreatedAt)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	query := `
		SELECT id, name, unit, COALESCE(quality, ''), COALESCE(image_url, ''), created_at
		FROM products
		WHERE id = $1
	`
	product := &models.Product{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Unit,
		&product.Quality,
		&product.ImageURL,
		&product.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT id, name, unit, COALESCE(quality, ''), COALESCE(image_url, ''), created_at
		FROM products
		ORDER BY name
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Unit,
			&product.Quality,
			&product.ImageURL,
			&product.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, id int, req *models.UpdateProductRequest) (*models.Product, error) {
	query := `
		UPDATE products
		SET name = $1, unit = $2, quality = $3, image_url = $4
		WHERE id = $5
		RETURNING id, name, unit, COALESCE(quality, ''), COALESCE(image_url, ''), created_at
	`
	product := &models.Product{}
	err := r.DB.QueryRow(ctx, query, req.Name, req.Unit, req.Quality, req.ImageURL, id).Scan(
		&product.ID,
		&product.Name,
		&product.Unit,
		&product.Quality,
		&product.ImageURL,
		&product.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}
