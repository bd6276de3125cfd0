package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusReceived, StatusPaymentVerified},
		{StatusReceived, StatusCashOnDelivery},
		{StatusReceived, StatusRejected},
		{StatusPaymentVerified, StatusPersisted},
		{StatusPaymentVerified, StatusRejected},
		{StatusCashOnDelivery, StatusPersisted},
		{StatusPersisted, StatusNotificationsAttempted},
		{StatusNotificationsAttempted, StatusCompleted},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to Status }{
		{StatusReceived, StatusPersisted},
		{StatusCashOnDelivery, StatusRejected}, // COD has nothing left to reject on
		{StatusPersisted, StatusRejected},      // persisted orders are never unwound
		{StatusCompleted, StatusReceived},
		{StatusRejected, StatusPersisted},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, StatusPersisted.IsTerminal())
	assert.False(t, StatusReceived.IsTerminal())
}
