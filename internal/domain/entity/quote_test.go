package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ironhub-api/internal/domain/entity"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to entity.QuoteStatus
		ok       bool
	}{
		{entity.QuoteStatusDraft, entity.QuoteStatusSent, true},
		{entity.QuoteStatusSent, entity.QuoteStatusAccepted, true},
		{entity.QuoteStatusSent, entity.QuoteStatusRejected, true},
		{entity.QuoteStatusDraft, entity.QuoteStatusAccepted, false},
		{entity.QuoteStatusDraft, entity.QuoteStatusDraft, false},
		{entity.QuoteStatusAccepted, entity.QuoteStatusDraft, false},
		{entity.QuoteStatusRejected, entity.QuoteStatusSent, false},
		{entity.QuoteStatusAccepted, entity.QuoteStatusRejected, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, entity.CanTransition(tt.from, tt.to))
		})
	}
}

func TestQuoteStatus_ValidYTerminal(t *testing.T) {
	assert.True(t, entity.QuoteStatusSent.Valid())
	assert.False(t, entity.QuoteStatus("archived").Valid())
	assert.True(t, entity.QuoteStatusAccepted.Terminal())
	assert.True(t, entity.QuoteStatusRejected.Terminal())
	assert.False(t, entity.QuoteStatusSent.Terminal())
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, entity.PaymentMethodCheck.Valid())
	assert.False(t, entity.PaymentMethod("Cash").Valid())
}

func TestQuote_CloneNoCompartePuntero(t *testing.T) {
	q := &entity.Quote{ID: "QT-1", Items: []entity.QuoteItem{{Description: "a"}}}
	cp := q.Clone()
	cp.Items[0].Description = "b"
	assert.Equal(t, "a", q.Items[0].Description)
}
