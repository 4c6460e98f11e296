package finance

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"autovest/internal/domain"
)

const (
	USD = "USD"
	INR = "INR"
	EUR = "EUR"
)

// DefaultRates son las seis conversiones dirigidas soportadas.
// Las inversas son recíprocas exactas. No se derivan pares transitivos.
func DefaultRates() map[domain.CurrencyPair]float64 {
	return map[domain.CurrencyPair]float64{
		{From: USD, To: INR}: 83.5,
		{From: EUR, To: INR}: 91.2,
		{From: USD, To: EUR}: 0.92,
		{From: INR, To: USD}: 1 / 83.5,
		{From: INR, To: EUR}: 1 / 91.2,
		{From: EUR, To: USD}: 1 / 0.92,
	}
}

// CurrencyConverter convierte montos con una tabla fija. Es puro.
type CurrencyConverter struct {
	rates map[domain.CurrencyPair]float64
}

// NewCurrencyConverter copia la tabla recibida.
func NewCurrencyConverter(rates map[domain.CurrencyPair]float64) *CurrencyConverter {
	cp := make(map[domain.CurrencyPair]float64, len(rates))
	for k, v := range rates {
		cp[k] = v
	}
	return &CurrencyConverter{rates: cp}
}

// NewDefaultCurrencyConverter usa DefaultRates.
func NewDefaultCurrencyConverter() *CurrencyConverter {
	return NewCurrencyConverter(DefaultRates())
}

// Rate busca el multiplicador de un par.
func (c *CurrencyConverter) Rate(from, to string) (float64, bool) {
	if from == to {
		return 1, true
	}
	r, ok := c.rates[domain.CurrencyPair{From: from, To: to}]
	return r, ok
}

// Convert aplica la tasa del par. Un par desconocido usa 1.0.
func (c *CurrencyConverter) Convert(amount float64, from, to string) float64 {
	r, ok := c.Rate(from, to)
	if !ok {
		r = 1.0
	}
	return amount * r
}

var printer = message.NewPrinter(language.English)

// FormatMultiCurrency muestra un monto en rupias junto a USD y EUR.
func (c *CurrencyConverter) FormatMultiCurrency(amountINR float64) string {
	usd := c.Convert(amountINR, INR, USD)
	eur := c.Convert(amountINR, INR, EUR)
	return printer.Sprintf("₹%.0f ($%.0f | €%.0f)", amountINR, usd, eur)
}

// FormatAmount agrega separadores de miles sin decimales.
func FormatAmount(v float64) string {
	return printer.Sprintf("%.0f", v)
}
