// Package analytics contiene los casos de uso de reportes del portal.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/ports"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	domledger "github.com/jhoicas/ironhub-api/internal/domain/ledger"
)

// DashboardUseCase resumen de cartera, cotizaciones e inventario.
type DashboardUseCase struct {
	tx    ports.TxRunner
	clock ports.Clock
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(tx ports.TxRunner, clock ports.Clock) *DashboardUseCase {
	return &DashboardUseCase{tx: tx, clock: clock}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres lecturas en paralelo:
//  1. clientes → CustomerCount + Receivables
//  2. cotizaciones accepted y sent → ingresos y pipeline (total con domledger.QuoteTotal)
//  3. inventario → unidades en registro
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type customersResult struct {
		count       int
		receivables decimal.Decimal
		err         error
	}
	type quotesResult struct {
		accepted []*entity.Quote
		sent     []*entity.Quote
		err      error
	}
	type inventoryResult struct {
		units int
		err   error
	}

	customersCh := make(chan customersResult, 1)
	quotesCh := make(chan quotesResult, 1)
	inventoryCh := make(chan inventoryResult, 1)

	go func() {
		var res customersResult
		res.err = uc.tx.RunReadOnly(ctx, func(r ports.Repos) error {
			var err error
			if res.count, err = r.Customers.Count(ctx); err != nil {
				return err
			}
			res.receivables, err = r.Customers.Receivables(ctx)
			return err
		})
		customersCh <- res
	}()
	go func() {
		var res quotesResult
		res.err = uc.tx.RunReadOnly(ctx, func(r ports.Repos) error {
			var err error
			if res.accepted, err = r.Quotes.ListByStatus(ctx, entity.QuoteStatusAccepted); err != nil {
				return err
			}
			res.sent, err = r.Quotes.ListByStatus(ctx, entity.QuoteStatusSent)
			return err
		})
		quotesCh <- res
	}()
	go func() {
		var res inventoryResult
		res.err = uc.tx.RunReadOnly(ctx, func(r ports.Repos) error {
			items, err := r.Inventory.List(ctx)
			for _, it := range items {
				res.units += it.Quantity
			}
			return err
		})
		inventoryCh <- res
	}()

	customers := <-customersCh
	quotes := <-quotesCh
	inv := <-inventoryCh

	if customers.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", customers.err)
	}
	if quotes.err != nil {
		return nil, fmt.Errorf("dashboard: cotizaciones: %w", quotes.err)
	}
	if inv.err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", inv.err)
	}

	return &dto.DashboardSummaryDTO{
		CustomerCount:   customers.count,
		Receivables:     customers.receivables.Round(2),
		AcceptedRevenue: sumTotals(quotes.accepted).Round(2),
		AcceptedQuotes:  len(quotes.accepted),
		PendingQuotes:   len(quotes.sent),
		PendingPipeline: sumTotals(quotes.sent).Round(2),
		InventoryUnits:  inv.units,
		GeneratedAt:     uc.clock.Now(),
	}, nil
}

func sumTotals(quotes []*entity.Quote) decimal.Decimal {
	sum := decimal.Zero
	for _, q := range quotes {
		sum = sum.Add(domledger.QuoteTotal(q))
	}
	return sum
}
