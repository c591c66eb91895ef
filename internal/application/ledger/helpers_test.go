package ledger_test

import (
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/ironhub-api/internal/application/ledger"
	"github.com/jhoicas/ironhub-api/internal/infrastructure/memory"
)

// tickClock avanza un segundo en cada llamada para que el orden temporal sea determinista.
type tickClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *tickClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%04d", g.n)
}

type fixture struct {
	store     *memory.Store
	customers *ledger.CustomerUseCase
	quotes    *ledger.QuoteUseCase
	payments  *ledger.PaymentUseCase
	accounts  *ledger.AccountUseCase
}

func newFixture(gen ledger.StatementPDFGenerator) *fixture {
	store := memory.New()
	tx := memory.NewTxRunner(store)
	clock := &tickClock{now: time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)}
	ids := &seqIDs{}
	return &fixture{
		store:     store,
		customers: ledger.NewCustomerUseCase(tx, clock, ids, nil),
		quotes:    ledger.NewQuoteUseCase(tx, clock, ids, nil),
		payments:  ledger.NewPaymentUseCase(tx, clock, ids, nil),
		accounts:  ledger.NewAccountUseCase(tx, clock, gen),
	}
}
