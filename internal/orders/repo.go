package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-storefront/internal/money"
)

type Repo struct{ DB *pgxpool.Pool }

const orderColumns = `id::text, customer_name, customer_phone, customer_city, items,
	total_price::text, notes, created_at`

func scanOrder(row pgx.Row) (Order, error) {
	var (
		o     Order
		items []byte
		total *string
	)
	if err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.CustomerCity, &items,
		&total, &o.Notes, &o.CreatedAt); err != nil {
		return Order{}, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			log.Printf("[orders] %s: unreadable items snapshot: %v", o.ID, err)
			o.Items = nil
		}
	}
	if total != nil {
		p := money.NewPrice(money.Coerce(*total))
		o.TotalPrice = &p
	}
	return o, nil
}

// Create stores the order with a fresh id. The items column holds the
// snapshot exactly as submitted.
func (r *Repo) Create(ctx context.Context, o Order) (Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return Order{}, fmt.Errorf("encode items: %w", err)
	}
	var total any
	if t, ok := o.StoredTotal(); ok {
		total = money.Cents(t).StringFixed(2)
	}

	o.ID = uuid.NewString()
	_, err = r.DB.Exec(ctx, `
		INSERT INTO orders(id, customer_name, customer_phone, customer_city, items, total_price, notes, created_at)
		VALUES ($1,$2,$3,$4,$5::jsonb,$6::numeric,$7,$8)`,
		o.ID, o.CustomerName, o.CustomerPhone, o.CustomerCity, string(items), total, o.Notes, o.CreatedAt,
	)
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

// List returns every order, newest first.
func (r *Repo) List(ctx context.Context) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id string) (Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Order{}, ErrNotFound
	}
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	return o, err
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
