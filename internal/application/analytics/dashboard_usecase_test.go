package analytics_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ironhub-api/internal/application/analytics"
	"github.com/jhoicas/ironhub-api/internal/application/dto"
	"github.com/jhoicas/ironhub-api/internal/application/ledger"
	"github.com/jhoicas/ironhub-api/internal/infrastructure/memory"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC) }

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%08d", g.n)
}

func TestGetSummary_CarteraEIngresos(t *testing.T) {
	ctx := context.Background()
	tx := memory.NewTxRunner(memory.New())
	ids := &seqIDs{}
	customers := ledger.NewCustomerUseCase(tx, fixedClock{}, ids, nil)
	quotes := ledger.NewQuoteUseCase(tx, fixedClock{}, ids, nil)
	payments := ledger.NewPaymentUseCase(tx, fixedClock{}, ids, nil)

	c, err := customers.Create(ctx, "", dto.CreateCustomerRequest{Name: "A"})
	require.NoError(t, err)
	item := func(p int64) []dto.QuoteItemDTO {
		return []dto.QuoteItemDTO{{Description: "x", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(p)}}
	}
	_, err = quotes.Create(ctx, "", dto.CreateQuoteRequest{CustomerID: c.ID, Status: "accepted", Items: item(1000)})
	require.NoError(t, err)
	_, err = quotes.Create(ctx, "", dto.CreateQuoteRequest{CustomerID: c.ID, Status: "sent", Items: item(300)})
	require.NoError(t, err)
	_, err = payments.Create(ctx, "", c.ID, dto.CreatePaymentRequest{Amount: decimal.NewFromInt(400), Method: "Check"})
	require.NoError(t, err)

	sum, err := analytics.NewDashboardUseCase(tx, fixedClock{}).GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.CustomerCount)
	assert.True(t, sum.Receivables.Equal(decimal.NewFromInt(600)))
	assert.True(t, sum.AcceptedRevenue.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 1, sum.AcceptedQuotes)
	assert.Equal(t, 1, sum.PendingQuotes)
	assert.True(t, sum.PendingPipeline.Equal(decimal.NewFromInt(300)))
}
