package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock Store ---

type MockStore struct {
	Products []Product
	Err      error

	lastCreated *Input
	lastUpdated string
}

func (m *MockStore) ListActive(ctx context.Context) ([]Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []Product
	for _, p := range m.Products {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockStore) ListAll(ctx context.Context) ([]Product, error) { return m.Products, m.Err }

func (m *MockStore) Get(ctx context.Context, id string) (Product, error) {
	if m.Err != nil {
		return Product{}, m.Err
	}
	for _, p := range m.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (m *MockStore) Create(ctx context.Context, in Input) (Product, error) {
	m.lastCreated = &in
	return Product{ID: "new", Name: in.Name, Category: in.Category, Images: in.Images}, m.Err
}

func (m *MockStore) Update(ctx context.Context, id string, in Input) (Product, error) {
	m.lastUpdated = id
	return Product{ID: id, Name: in.Name}, m.Err
}

func (m *MockStore) Delete(ctx context.Context, id string) error { return m.Err }

// --- Tests ---

func TestServiceBrowseOnlyActive(t *testing.T) {
	hidden := product("H", "Sofá oculto", CategorySofa, 10, true, 0)
	hidden.Active = false
	store := &MockStore{Products: []Product{product("A", "Sofá A", CategorySofa, 10, false, 0), hidden}}
	svc := &Service{Store: store}

	got, err := svc.Browse(context.Background(), Query{Category: CategorySofa})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, ids(got))
}

func TestServiceGet(t *testing.T) {
	hidden := product("H", "Oculto", CategorySofa, 10, false, 0)
	hidden.Active = false
	svc := &Service{Store: &MockStore{Products: []Product{product("A", "Sofá A", CategorySofa, 10, false, 0), hidden}}}

	p, err := svc.Get(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, "https://img/A.jpg", p.Cover())

	_, err = svc.Get(context.Background(), "H")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceCreateValidation(t *testing.T) {
	testCases := []struct {
		name      string
		input     Input
		expectErr bool
		check     func(t *testing.T, store *MockStore)
	}{
		{
			name: "Valid input is normalized",
			input: Input{
				Name:     "  Sofá Retrátil ",
				Category: "poltrona",
				Price:    decimal.NewFromInt(1999),
				Colors:   SplitList("Cinza, Bege, "),
				Fabrics:  []string{" Linho ", ""},
			},
			check: func(t *testing.T, store *MockStore) {
				require.NotNil(t, store.lastCreated)
				assert.Equal(t, "Sofá Retrátil", store.lastCreated.Name)
				assert.Equal(t, CategoryArmchair, store.lastCreated.Category)
				assert.Equal(t, []string{"Cinza", "Bege"}, store.lastCreated.Colors)
				assert.Equal(t, []string{"Linho"}, store.lastCreated.Fabrics)
				assert.Equal(t, []string{PlaceholderImage}, store.lastCreated.Images)
			},
		},
		{
			name:      "Missing name",
			input:     Input{Category: CategorySofa},
			expectErr: true,
		},
		{
			name:      "Unknown category",
			input:     Input{Name: "Mesa", Category: "mesa"},
			expectErr: true,
		},
		{
			name:      "Negative price",
			input:     Input{Name: "Pufe", Category: CategoryPouf, Price: decimal.NewFromInt(-1)},
			expectErr: true,
		},
		{
			name:      "Bad image url",
			input:     Input{Name: "Pufe", Category: CategoryPouf, Images: []string{"not a url"}},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &MockStore{}
			svc := &Service{Store: store}
			_, err := svc.Create(context.Background(), tc.input)
			if tc.expectErr {
				var ve *ValidationError
				assert.ErrorAs(t, err, &ve)
				assert.Nil(t, store.lastCreated, "store must not be called")
				return
			}
			require.NoError(t, err)
			if tc.check != nil {
				tc.check(t, store)
			}
		})
	}
}

func TestAsShapeError(t *testing.T) {
	err := asShapeError(&pgconn.PgError{Code: "42703", Message: `column "is_featured" of relation "products" does not exist`})
	var mc *MissingColumnError
	require.ErrorAs(t, err, &mc)
	assert.Equal(t, "is_featured", mc.Column)
	assert.Contains(t, mc.Error(), "storectl migrate")

	err = asShapeError(&pgconn.PgError{Code: "42703", Message: `column p.is_featured does not exist`})
	require.ErrorAs(t, err, &mc)
	assert.Equal(t, "is_featured", mc.Column)

	other := errors.New("boom")
	assert.Equal(t, other, asShapeError(other))
	assert.NoError(t, asShapeError(nil))
}
