package settings

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// Get returns the stored row as a Patch (NULL columns stay nil) plus its
// update time.
func (r *Repo) Get(ctx context.Context) (Patch, time.Time, error) {
	var (
		p  Patch
		at time.Time
	)
	err := r.DB.QueryRow(ctx, `
		SELECT store_name, whatsapp_number, contact_email, contact_address,
		       hours_mon_fri, hours_sat, primary_color, secondary_color, updated_at
		FROM settings WHERE id=$1`, GlobalID,
	).Scan(&p.StoreName, &p.WhatsAppNumber, &p.ContactEmail, &p.ContactAddress,
		&p.HoursMonFri, &p.HoursSat, &p.PrimaryColor, &p.SecondaryColor, &at)
	if errors.Is(err, pgx.ErrNoRows) {
		return Patch{}, time.Time{}, ErrNotFound
	}
	return p, at, err
}

func (r *Repo) InsertIfAbsent(ctx context.Context, s Settings) error {
	_, err := r.DB.Exec(ctx, upsertSQL+` ON CONFLICT (id) DO NOTHING`, args(s)...)
	return err
}

func (r *Repo) Upsert(ctx context.Context, s Settings) error {
	_, err := r.DB.Exec(ctx, upsertSQL+` ON CONFLICT (id) DO UPDATE SET
		store_name=EXCLUDED.store_name, whatsapp_number=EXCLUDED.whatsapp_number,
		contact_email=EXCLUDED.contact_email, contact_address=EXCLUDED.contact_address,
		hours_mon_fri=EXCLUDED.hours_mon_fri, hours_sat=EXCLUDED.hours_sat,
		primary_color=EXCLUDED.primary_color, secondary_color=EXCLUDED.secondary_color,
		updated_at=EXCLUDED.updated_at`, args(s)...)
	return err
}

const upsertSQL = `
	INSERT INTO settings(id, store_name, whatsapp_number, contact_email, contact_address,
	                     hours_mon_fri, hours_sat, primary_color, secondary_color, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`

func args(s Settings) []any {
	at := s.UpdatedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return []any{GlobalID, s.StoreName, s.WhatsAppNumber, s.ContactEmail, s.ContactAddress,
		s.HoursMonFri, s.HoursSat, s.PrimaryColor, s.SecondaryColor, at}
}
