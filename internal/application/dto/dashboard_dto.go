package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	CustomerCount int `json:"customer_count"`

	// Cartera: Σ (facturado - pagado) de todos los clientes.
	Receivables decimal.Decimal `json:"receivables"`

	// Ingresos: Σ totales de cotizaciones aceptadas.
	AcceptedRevenue decimal.Decimal `json:"accepted_revenue"`
	AcceptedQuotes  int             `json:"accepted_quotes"`

	// Pipeline: cotizaciones enviadas aún sin respuesta.
	PendingQuotes   int             `json:"pending_quotes"`
	PendingPipeline decimal.Decimal `json:"pending_pipeline"`

	InventoryUnits int `json:"inventory_units"`

	GeneratedAt time.Time `json:"generated_at"`
}
