package settings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// Backend is the persistent settings collection; *Repo satisfies it.
type Backend interface {
	Get(ctx context.Context) (Patch, time.Time, error)
	InsertIfAbsent(ctx context.Context, s Settings) error
	Upsert(ctx context.Context, s Settings) error
}

// Cache is an optional shared copy of the merged record.
type Cache interface {
	Get(ctx context.Context, out any) (bool, error)
	Set(ctx context.Context, v any) error
}

// SaveError is returned when an admin update could not be written.
type SaveError struct{ Err error }

func (e *SaveError) Error() string {
	return fmt.Sprintf("could not save settings: %v; make sure the settings columns exist (storectl migrate)", e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Store keeps the current settings in memory. It is created once per process
// and handed to whoever needs it.
type Store struct {
	Backend Backend
	Cache   Cache
	Now     func() time.Time

	mu  sync.RWMutex
	cur Settings
}

func NewStore(b Backend, c Cache) *Store {
	return &Store{Backend: b, Cache: c, Now: time.Now, cur: Defaults()}
}

// Load fetches the record, creating it with defaults when it does not exist.
// Any other failure leaves the defaults in place.
func (s *Store) Load(ctx context.Context) Settings {
	if s.Cache != nil {
		var cached Settings
		if ok, err := s.Cache.Get(ctx, &cached); err == nil && ok {
			s.set(Merge(Defaults(), patchOf(cached)), cached.UpdatedAt)
			return s.Current()
		}
	}

	row, at, err := s.Backend.Get(ctx)
	switch {
	case err == nil:
		s.set(Merge(Defaults(), row), at)
	case errors.Is(err, ErrNotFound):
		def := Defaults()
		def.UpdatedAt = s.now()
		if err := s.Backend.InsertIfAbsent(ctx, def); err != nil {
			log.Printf("[settings] could not create defaults: %v", err)
		}
		s.set(def, def.UpdatedAt)
	default:
		log.Printf("[settings] fetch failed, using defaults: %v", err)
		return s.Current()
	}

	cur := s.Current()
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, cur); err != nil {
			log.Printf("[settings] cache set: %v", err)
		}
	}
	return cur
}

func (s *Store) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Update applies p over the current record and writes it. Blanked fields
// fall back to their defaults. Failures are returned as *SaveError and leave
// the in-memory copy unchanged.
func (s *Store) Update(ctx context.Context, p Patch) (Settings, error) {
	next := Merge(Defaults(), patchOf(apply(s.Current(), p)))
	next.UpdatedAt = s.now()

	if err := s.Backend.Upsert(ctx, next); err != nil {
		log.Printf("[settings] upsert failed: %v", err)
		return Settings{}, &SaveError{Err: err}
	}

	s.mu.Lock()
	s.cur = next
	s.mu.Unlock()

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, next); err != nil {
			log.Printf("[settings] cache set: %v", err)
		}
	}
	return next, nil
}

func (s *Store) set(v Settings, at time.Time) {
	v.UpdatedAt = at
	s.mu.Lock()
	s.cur = v
	s.mu.Unlock()
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// apply overwrites every field present in p, blank values included.
func apply(cur Settings, p Patch) Settings {
	out := cur
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&out.StoreName, p.StoreName)
	set(&out.WhatsAppNumber, p.WhatsAppNumber)
	set(&out.ContactEmail, p.ContactEmail)
	set(&out.ContactAddress, p.ContactAddress)
	set(&out.HoursMonFri, p.HoursMonFri)
	set(&out.HoursSat, p.HoursSat)
	set(&out.PrimaryColor, p.PrimaryColor)
	set(&out.SecondaryColor, p.SecondaryColor)
	return out
}

func patchOf(s Settings) Patch {
	return Patch{
		StoreName:      &s.StoreName,
		WhatsAppNumber: &s.WhatsAppNumber,
		ContactEmail:   &s.ContactEmail,
		ContactAddress: &s.ContactAddress,
		HoursMonFri:    &s.HoursMonFri,
		HoursSat:       &s.HoursSat,
		PrimaryColor:   &s.PrimaryColor,
		SecondaryColor: &s.SecondaryColor,
	}
}
