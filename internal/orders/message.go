package orders

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ariefcatur/go-storefront/internal/money"
)

const placeholder = "N/A"

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

// RenderMessage builds the text sent to the store. Amounts are formatted
// from the order's own figures so the message and the record agree.
func RenderMessage(storeName string, o Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Olá, %s! Gostaria de fazer um pedido:\n\n", storeName)
	fmt.Fprintf(&b, "*Cliente:* %s\n", o.CustomerName)
	fmt.Fprintf(&b, "*Telefone:* %s\n", o.CustomerPhone)
	fmt.Fprintf(&b, "*Cidade:* %s\n\n", o.CustomerCity)

	b.WriteString("*Produtos:*\n")
	for i, it := range o.Items {
		fmt.Fprintf(&b, "%d. %s | Cor: %s | Tecido: %s | Qtd: %d | Subtotal: %s\n",
			i+1, it.Name, orNA(it.SelectedColor), orNA(it.SelectedFabric), it.Qty(),
			money.FormatBRL(it.Subtotal()))
	}

	if o.Notes != "" {
		fmt.Fprintf(&b, "\n*Observações:* %s\n", o.Notes)
	}

	total, ok := o.StoredTotal()
	if !ok {
		total = Total(o.Items)
	}
	fmt.Fprintf(&b, "\n*Total Estimado:* %s", money.FormatBRL(total))
	return b.String()
}

// RenderContactMessage is the text of the contact form handoff.
func RenderContactMessage(name, subject, message string) string {
	return fmt.Sprintf("Olá, meu nome é %s. Assunto: %s. Mensagem: %s",
		strings.TrimSpace(name), strings.TrimSpace(subject), strings.TrimSpace(message))
}

// DeepLink returns base/phone?text=<text>, with the text escaped as a URI
// component (spaces as %20).
func DeepLink(base, phone, text string) string {
	return strings.TrimRight(base, "/") + "/" + phone + "?text=" + escapeComponent(text)
}

func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
