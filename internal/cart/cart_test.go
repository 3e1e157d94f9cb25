package cart

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/ariefcatur/go-storefront/internal/money"
)

func sofa() catalog.Product {
	return catalog.Product{
		ID:      "sofa-1",
		Name:    "Sofá Retrátil",
		Price:   money.PriceFromFloat(2500),
		Colors:  []string{"Cinza", "Bege"},
		Fabrics: []string{"Linho", "Veludo"},
		Images:  []string{"https://img/sofa.jpg"},
	}
}

func TestAddMergesSameSelection(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(sofa(), 1, "Cinza", "Linho"))
	require.NoError(t, c.Add(sofa(), 2, "Cinza", "Linho"))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 3, c.TotalItemCount())
}

func TestAddDistinctVariantsCreateLines(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(sofa(), 1, "Cinza", "Linho"))
	require.NoError(t, c.Add(sofa(), 1, "Bege", "Linho"))
	require.NoError(t, c.Add(sofa(), 1, "Bege", ""))
	require.NoError(t, c.Add(sofa(), 1, "", ""))

	assert.Equal(t, 4, c.Len())
	assert.Equal(t, 4, c.TotalItemCount())
}

func TestAddRejectsInvalidInput(t *testing.T) {
	testCases := []struct {
		name     string
		quantity int
		color    string
		fabric   string
		err      error
	}{
		{name: "Zero quantity", quantity: 0, err: ErrInvalidQuantity},
		{name: "Negative quantity", quantity: -3, err: ErrInvalidQuantity},
		{name: "Unknown color", quantity: 1, color: "Roxo", err: ErrInvalidVariant},
		{name: "Unknown fabric", quantity: 1, fabric: "Couro", err: ErrInvalidVariant},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			err := c.Add(sofa(), tc.quantity, tc.color, tc.fabric)
			assert.ErrorIs(t, err, tc.err)
			assert.True(t, c.IsEmpty(), "cart must not change")
		})
	}
}

func TestRemoveDropsAllVariants(t *testing.T) {
	other := catalog.Product{ID: "pouf-1", Name: "Pufe"}
	c := New()
	require.NoError(t, c.Add(sofa(), 1, "Cinza", ""))
	require.NoError(t, c.Add(other, 2, "", ""))
	require.NoError(t, c.Add(sofa(), 1, "Bege", ""))

	c.Remove("sofa-1")

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "pouf-1", lines[0].Product.ID)
	assert.Equal(t, 2, c.TotalItemCount())

	c.Remove("does-not-exist")
	assert.Equal(t, 1, c.Len())
}

func TestLinesIsACopy(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(sofa(), 1, "", ""))
	snapshot := c.Lines()

	require.NoError(t, c.Add(sofa(), 5, "", ""))
	c.Clear()

	assert.Equal(t, 1, snapshot[0].Quantity)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItemCount())
}

func TestSessions(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s := NewSessions(time.Hour)
	s.Now = func() time.Time { return now }

	require.NoError(t, s.With("a", func(c *Cart) error { return c.Add(sofa(), 1, "", "") }))
	require.NoError(t, s.With("b", func(c *Cart) error { return nil }))

	var count int
	_ = s.With("a", func(c *Cart) error { count = c.TotalItemCount(); return nil })
	assert.Equal(t, 1, count, "same id returns the same cart")

	now = now.Add(30 * time.Minute)
	_ = s.With("a", func(c *Cart) error { return nil })

	now = now.Add(45 * time.Minute)
	assert.Equal(t, 1, s.Sweep(), "only b has been idle for over an hour")
	assert.Equal(t, 1, s.Len())

	s.End("a")
	assert.Equal(t, 0, s.Len())
}

func TestSessionsSerializeAccess(t *testing.T) {
	s := NewSessions(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.With("shared", func(c *Cart) error { return c.Add(sofa(), 1, "", "") })
		}()
	}
	wg.Wait()

	var total int
	_ = s.With("shared", func(c *Cart) error { total = c.TotalItemCount(); return nil })
	assert.Equal(t, 50, total)
}
