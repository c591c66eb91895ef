// Package ledger contiene los cálculos puros de cartera (servicios de dominio sin estado).
package ledger

import (
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Decimales que conserva el almacenamiento.
const (
	MoneyPlaces    int32 = 2
	QuantityPlaces int32 = 4
)

// FitsPlaces indica si d se guarda sin redondeo con places decimales.
func FitsPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// QuoteTotal calcula el total de una cotización: Σ cantidad × precio unitario.
// Es la única implementación del total; vistas, estado de cuenta, facturación y
// dashboard deben usarla para no divergir.
func QuoteTotal(q *entity.Quote) decimal.Decimal {
	if q == nil {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, it := range q.Items {
		total = total.Add(it.Quantity.Mul(it.Price))
	}
	return total
}

// Balance saldo del cliente = facturado − pagado. Negativo indica sobrepago.
func Balance(c *entity.Customer) decimal.Decimal {
	if c == nil {
		return decimal.Zero
	}
	return c.TotalBilled.Sub(c.TotalPaid)
}

// SumPayments suma los montos de los pagos.
func SumPayments(payments []*entity.Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}
