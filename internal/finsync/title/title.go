// Package title builds the natural keys that deduplicate calendar
// projections. The keys are exact literal strings matched against the
// planner's title field; changing any of them orphans existing artifacts.
package title

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	duePrefix  = "💰 Vencimento NF: "
	paidPrefix = "✅ Pagamento NF: "
)

// Due is the natural key of an invoice due-date artifact.
func Due(number string) string {
	return duePrefix + number
}

// Paid is the natural key of an invoice payment artifact.
func Paid(number string) string {
	return paidPrefix + number
}

// PaymentFact is the natural key of a generic payment artifact. It encodes
// method and amount but not the date: two unrelated payments of identical
// method and amount collapse to the same key. Known limitation, kept until
// product intent is clarified.
func PaymentFact(method string, amount decimal.Decimal) string {
	return MethodIcon(method) + " Pagamento: " + FormatBRL(amount)
}

// MethodIcon maps a free-text payment method onto a display icon.
func MethodIcon(method string) string {
	switch normalizeMethod(method) {
	case "pix":
		return "⚡"
	case "cartao", "cartao de credito", "cartao de debito", "credito", "debito":
		return "💳"
	case "dinheiro":
		return "💵"
	case "boleto":
		return "🧾"
	case "transferencia", "ted", "doc":
		return "🏦"
	default:
		return "💰"
	}
}

func normalizeMethod(method string) string {
	s := strings.ToLower(strings.TrimSpace(method))
	replacer := strings.NewReplacer(
		"ã", "a", "á", "a", "â", "a",
		"é", "e", "ê", "e",
		"í", "i",
		"ó", "o", "ô", "o",
		"ú", "u",
		"ç", "c",
	)
	return replacer.Replace(s)
}

// FormatBRL renders an amount as Brazilian currency, e.g. "R$ 1.500,00".
func FormatBRL(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-2:]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	out := "R$ " + b.String() + "," + fracPart
	if negative {
		out = "-" + out
	}
	return out
}
