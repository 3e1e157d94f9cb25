package orders

import (
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-storefront/internal/money"
)

func item(name string, price string, qty int, color, fabric string) Item {
	return Item{
		ProductID:      name,
		Name:           name,
		Price:          money.NewPrice(decimal.RequireFromString(price)),
		Quantity:       qty,
		SelectedColor:  color,
		SelectedFabric: fabric,
	}
}

func sampleOrder() Order {
	items := []Item{
		item("Sofá Lisboa", "1999.90", 2, "Cinza", "Linho"),
		item("Puff Redondo", "349.5", 1, "", ""),
	}
	total := money.NewPrice(Total(items))
	return Order{
		CustomerName:  "Maria Souza",
		CustomerPhone: "(21) 99999-0000",
		CustomerCity:  "Niterói",
		Items:         items,
		TotalPrice:    &total,
		Notes:         "Entregar após 18h",
		CreatedAt:     time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
	}
}

func TestTotal(t *testing.T) {
	items := []Item{
		item("a", "1000", 1, "", ""),
		item("b", "0.1", 3, "", ""),
		{Name: "bad price", Quantity: 4},
	}
	assert.Equal(t, "1000.30", Total(items).StringFixed(2))
	assert.True(t, Total(nil).IsZero())
}

func TestRenderMessage(t *testing.T) {
	msg := RenderMessage("ESTOFADOS ELITE", sampleOrder())

	assert.True(t, strings.HasPrefix(msg, "Olá, ESTOFADOS ELITE!"))
	assert.Contains(t, msg, "*Cliente:* Maria Souza\n")
	assert.Contains(t, msg, "*Telefone:* (21) 99999-0000\n")
	assert.Contains(t, msg, "*Cidade:* Niterói\n")
	assert.Contains(t, msg, "1. Sofá Lisboa | Cor: Cinza | Tecido: Linho | Qtd: 2 | Subtotal: R$ 3.999,80\n")
	assert.Contains(t, msg, "2. Puff Redondo | Cor: N/A | Tecido: N/A | Qtd: 1 | Subtotal: R$ 349,50\n")
	assert.Contains(t, msg, "*Observações:* Entregar após 18h")
	assert.True(t, strings.HasSuffix(msg, "*Total Estimado:* R$ 4.349,30"))
}

func TestRenderMessageWithoutNotes(t *testing.T) {
	o := sampleOrder()
	o.Notes = ""
	assert.NotContains(t, RenderMessage("Loja", o), "Observações")
}

func TestRenderedTotalMatchesStoredTotal(t *testing.T) {
	re := regexp.MustCompile(`\*Total Estimado:\* (.+)$`)
	prices := []string{"0.005", "0.015", "1234.565", "99.99", "0", "10.10", "333.333"}

	for _, p := range prices {
		for qty := 1; qty <= 7; qty++ {
			items := []Item{item("x", p, qty, "", ""), item("y", "0.07", qty, "", "")}
			total := money.NewPrice(Total(items))
			o := Order{Items: items, TotalPrice: &total}

			m := re.FindStringSubmatch(RenderMessage("Loja", o))
			require.Len(t, m, 2)
			rendered, err := money.ParseBRL(m[1])
			require.NoError(t, err)
			assert.True(t, rendered.Equal(total.Decimal), "price %s qty %d: %s vs %s", p, qty, rendered, total)
		}
	}
}

func TestRenderContactMessage(t *testing.T) {
	assert.Equal(t,
		"Olá, meu nome é Ana. Assunto: Orçamento. Mensagem: Quero um sofá",
		RenderContactMessage(" Ana ", "Orçamento", "Quero um sofá "))
}

func TestDeepLink(t *testing.T) {
	text := "Olá & bem-vindo\n*Total:* R$ 1.000,00 + 50%"
	link := DeepLink("https://wa.me/", "5521965091676", text)

	assert.True(t, strings.HasPrefix(link, "https://wa.me/5521965091676?text="))
	assert.NotContains(t, link, "+")
	assert.NotContains(t, link, " ")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, text, u.Query().Get("text"))
}
