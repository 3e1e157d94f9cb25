package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-storefront/internal/money"
)

type Repo struct{ DB *pgxpool.Pool }

const productColumns = `id::text, name, description, category, price::text, colors, fabrics,
	dimensions, images, active, is_featured, created_at`

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p     Product
		cat   string
		price string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &cat, &price, &p.Colors, &p.Fabrics,
		&p.Dimensions, &p.Images, &p.Active, &p.IsFeatured, &p.CreatedAt)
	if err != nil {
		return Product{}, err
	}
	p.Category = Category(cat)
	p.Price = money.NewPrice(money.Coerce(price))
	return p, nil
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, asShapeError(err)
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, asShapeError(rows.Err())
}

// ListActive returns the products visible on the storefront.
func (r *Repo) ListActive(ctx context.Context) ([]Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE active = TRUE`)
}

// ListAll returns every product, newest first, for the admin surface.
func (r *Repo) ListAll(ctx context.Context) ([]Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Product{}, ErrNotFound
	}
	p, err := scanProduct(r.DB.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, asShapeError(err)
}

func (r *Repo) Create(ctx context.Context, in Input) (Product, error) {
	id := uuid.NewString()
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products(id, name, description, category, price, colors, fabrics,
		                     dimensions, images, active, is_featured, created_at)
		VALUES ($1,$2,$3,$4,$5::numeric,$6,$7,$8,$9,$10,$11,$12)`,
		id, in.Name, in.Description, string(in.Category), priceArg(in.Price), in.Colors, in.Fabrics,
		in.Dimensions, in.Images, in.Active, in.IsFeatured, time.Now().UTC(),
	)
	if err != nil {
		return Product{}, asShapeError(err)
	}
	return r.Get(ctx, id)
}

func (r *Repo) Update(ctx context.Context, id string, in Input) (Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Product{}, ErrNotFound
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE products SET name=$2, description=$3, category=$4, price=$5::numeric, colors=$6,
		       fabrics=$7, dimensions=$8, images=$9, active=$10, is_featured=$11
		WHERE id=$1`,
		id, in.Name, in.Description, string(in.Category), priceArg(in.Price), in.Colors, in.Fabrics,
		in.Dimensions, in.Images, in.Active, in.IsFeatured,
	)
	if err != nil {
		return Product{}, asShapeError(err)
	}
	if ct.RowsAffected() == 0 {
		return Product{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes the product row. Orders keep their own item snapshots.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func priceArg(d decimal.Decimal) string { return money.Cents(d).StringFixed(2) }
