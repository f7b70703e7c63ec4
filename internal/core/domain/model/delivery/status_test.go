package delivery_test

import (
	"testing"

	"sellerconsole/internal/core/domain/model/delivery"
	"sellerconsole/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTable(t *testing.T) {
	tests := []struct {
		from    delivery.Status
		to      delivery.Status
		allowed bool
	}{
		{delivery.Pending, delivery.InTransit, true},
		{delivery.Pending, delivery.Cancelled, true},
		{delivery.Pending, delivery.Delivered, false},
		{delivery.InTransit, delivery.Delivered, true},
		{delivery.InTransit, delivery.Cancelled, true},
		{delivery.InTransit, delivery.Pending, false},
		{delivery.Delivered, delivery.Cancelled, false},
		{delivery.Delivered, delivery.InTransit, false},
		{delivery.Cancelled, delivery.Pending, false},
		{delivery.Cancelled, delivery.Delivered, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+" to "+tt.to.String(), func(t *testing.T) {
			next, err := tt.from.Transition(tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, next)
				return
			}
			require.ErrorIs(t, err, errs.ErrInvalidTransition)
		})
	}
}

func TestStatus_ParseStatus(t *testing.T) {
	status, err := delivery.ParseStatus("in_transit")
	require.NoError(t, err)
	assert.Equal(t, delivery.InTransit, status)
	assert.Equal(t, "in_transit", status.String())

	_, err = delivery.ParseStatus("shipped")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, delivery.Delivered.IsTerminal())
	assert.True(t, delivery.Cancelled.IsTerminal())
	assert.False(t, delivery.Pending.IsTerminal())
	assert.False(t, delivery.InTransit.IsTerminal())
	require.Error(t, delivery.Unknown.Validate())
}
