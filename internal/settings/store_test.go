package settings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockBackend struct {
	Row    Patch
	At     time.Time
	GetErr error
	PutErr error

	inserted *Settings
	upserted *Settings
}

func (m *MockBackend) Get(ctx context.Context) (Patch, time.Time, error) {
	return m.Row, m.At, m.GetErr
}

func (m *MockBackend) InsertIfAbsent(ctx context.Context, s Settings) error {
	m.inserted = &s
	return m.PutErr
}

func (m *MockBackend) Upsert(ctx context.Context, s Settings) error {
	m.upserted = &s
	return m.PutErr
}

type MockCache struct {
	data []byte
	sets int
}

func (m *MockCache) Get(ctx context.Context, out any) (bool, error) {
	if m.data == nil {
		return false, nil
	}
	return true, json.Unmarshal(m.data, out)
}

func (m *MockCache) Set(ctx context.Context, v any) error {
	b, err := json.Marshal(v)
	m.data = b
	m.sets++
	return err
}

func str(s string) *string { return &s }

// --- Tests ---

func TestLoad(t *testing.T) {
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		backend *MockBackend
		check   func(t *testing.T, got Settings, b *MockBackend)
	}{
		{
			name: "Stored values are merged over defaults",
			backend: &MockBackend{
				Row: Patch{StoreName: str("Casa Nobre"), WhatsAppNumber: str("(11) 98888-7777"), HoursSat: str("")},
				At:  at,
			},
			check: func(t *testing.T, got Settings, b *MockBackend) {
				assert.Equal(t, "Casa Nobre", got.StoreName)
				assert.Equal(t, "(11) 98888-7777", got.WhatsAppNumber, "stored raw")
				assert.Equal(t, Defaults().HoursSat, got.HoursSat, "blank column falls back")
				assert.Equal(t, Defaults().PrimaryColor, got.PrimaryColor, "NULL column falls back")
				assert.Equal(t, GlobalID, got.ID)
				assert.Equal(t, at, got.UpdatedAt)
				assert.Nil(t, b.inserted)
			},
		},
		{
			name:    "Missing record is created with defaults",
			backend: &MockBackend{GetErr: ErrNotFound},
			check: func(t *testing.T, got Settings, b *MockBackend) {
				require.NotNil(t, b.inserted)
				assert.Equal(t, Defaults().StoreName, b.inserted.StoreName)
				assert.Equal(t, Defaults().StoreName, got.StoreName)
			},
		},
		{
			name:    "Insert failure still yields defaults",
			backend: &MockBackend{GetErr: ErrNotFound, PutErr: errors.New("read-only")},
			check: func(t *testing.T, got Settings, b *MockBackend) {
				assert.Equal(t, Defaults().WhatsAppNumber, got.WhatsAppNumber)
			},
		},
		{
			name:    "Fetch error keeps defaults",
			backend: &MockBackend{GetErr: errors.New(`column "hours_sat" does not exist`)},
			check: func(t *testing.T, got Settings, b *MockBackend) {
				assert.Equal(t, Defaults(), got)
				assert.Nil(t, b.inserted)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore(tc.backend, nil)
			got := s.Load(context.Background())
			tc.check(t, got, tc.backend)
			assert.Equal(t, got, s.Current())
		})
	}
}

func TestLoadPrefersCache(t *testing.T) {
	cache := &MockCache{}
	cached := Defaults()
	cached.StoreName = "Cacheada"
	require.NoError(t, cache.Set(context.Background(), cached))

	b := &MockBackend{GetErr: errors.New("must not be called")}
	s := NewStore(b, cache)
	got := s.Load(context.Background())

	assert.Equal(t, "Cacheada", got.StoreName)
}

func TestLoadFillsCache(t *testing.T) {
	cache := &MockCache{}
	s := NewStore(&MockBackend{Row: Patch{StoreName: str("Loja")}}, cache)
	s.Load(context.Background())

	assert.Equal(t, 1, cache.sets)
	var back Settings
	ok, err := cache.Get(context.Background(), &back)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Loja", back.StoreName)
}

func TestUpdate(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	b := &MockBackend{}
	s := NewStore(b, nil)
	s.Now = func() time.Time { return now }

	got, err := s.Update(context.Background(), Patch{
		WhatsAppNumber: str(" +55 (21) 90000-1111 "),
		StoreName:      str("Nova Loja"),
	})
	require.NoError(t, err)

	require.NotNil(t, b.upserted)
	assert.Equal(t, GlobalID, b.upserted.ID)
	assert.Equal(t, "+55 (21) 90000-1111", b.upserted.WhatsAppNumber, "number kept raw, only trimmed")
	assert.Equal(t, "Nova Loja", got.StoreName)
	assert.Equal(t, Defaults().ContactEmail, got.ContactEmail, "untouched fields survive")
	assert.Equal(t, now, got.UpdatedAt)
	assert.Equal(t, got, s.Current())
}

func TestUpdateRefreshesSharedCache(t *testing.T) {
	cache := &MockCache{}
	b := &MockBackend{Row: Patch{StoreName: str("Antiga")}}

	// operator edit from a separate process
	editor := NewStore(b, cache)
	editor.Load(context.Background())
	_, err := editor.Update(context.Background(), Patch{StoreName: str("Nova")})
	require.NoError(t, err)

	// a restarted API prefers the cache; it must not see the old name
	api := NewStore(&MockBackend{GetErr: errors.New("must not be called")}, cache)
	got := api.Load(context.Background())
	assert.Equal(t, "Nova", got.StoreName)
	assert.Equal(t, 2, cache.sets)
}

func TestUpdateFailureIsBlocking(t *testing.T) {
	cause := errors.New(`column "hours_sat" of relation "settings" does not exist`)
	s := NewStore(&MockBackend{PutErr: cause}, nil)

	_, err := s.Update(context.Background(), Patch{StoreName: str("X")})

	var se *SaveError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "columns exist")
	assert.Equal(t, Defaults().StoreName, s.Current().StoreName, "memory copy unchanged")
}

func TestUpdateBlankFallsBackToDefault(t *testing.T) {
	s := NewStore(&MockBackend{}, nil)
	got, err := s.Update(context.Background(), Patch{HoursSat: str("  ")})
	require.NoError(t, err)
	assert.Equal(t, Defaults().HoursSat, got.HoursSat)
}
