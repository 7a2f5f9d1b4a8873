package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketStatus_Valid(t *testing.T) {
	assert.True(t, TicketUnused.Valid())
	assert.True(t, TicketUsed.Valid())
	assert.True(t, TicketCancelled.Valid())
	assert.False(t, TicketStatus("Available").Valid())
	assert.False(t, TicketStatus("").Valid())
}

func TestTicketStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from TicketStatus
		to   TicketStatus
		want bool
	}{
		{"unused to used", TicketUnused, TicketUsed, true},
		{"unused to cancelled", TicketUnused, TicketCancelled, true},
		{"used back to unused", TicketUsed, TicketUnused, false},
		{"used to cancelled", TicketUsed, TicketCancelled, false},
		{"cancelled to used", TicketCancelled, TicketUsed, false},
		{"self transition", TicketUnused, TicketUnused, false},
		{"unknown target", TicketUnused, TicketStatus("Refunded"), false},
		{"unknown source", TicketStatus("Refunded"), TicketUsed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTicketType_Remaining(t *testing.T) {
	tt := TicketType{QuantityTotal: 100, QuantitySold: 37}
	assert.Equal(t, 63, tt.Remaining())

	tt.QuantitySold = 100
	assert.Equal(t, 0, tt.Remaining())
}
