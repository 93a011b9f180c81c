package comms

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogEntry(t *testing.T) {
	t.Run("records a send", func(t *testing.T) {
		refID := uuid.New()
		entry, err := NewLogEntry(ChannelEmail, "guardian@example.com", "Fee bill issued",
			"fee_bill", &refID, DeliveryStatusSent, "")
		require.NoError(t, err)

		assert.Equal(t, ChannelEmail, entry.Channel)
		assert.Equal(t, DeliveryStatusSent, entry.Status)
		assert.Equal(t, "fee_bill", entry.ReferenceType)
		require.NotNil(t, entry.ReferenceID)
		assert.Equal(t, refID, *entry.ReferenceID)
		assert.False(t, entry.SentAt.IsZero())
	})

	t.Run("records a failure with detail", func(t *testing.T) {
		entry, err := NewLogEntry(ChannelSMS, "+212600000001", "", "", nil,
			DeliveryStatusFailed, "gateway timeout")
		require.NoError(t, err)

		assert.Equal(t, DeliveryStatusFailed, entry.Status)
		assert.Equal(t, "gateway timeout", entry.ErrorDetail)
		assert.Nil(t, entry.ReferenceID)
	})

	t.Run("rejects invalid channel", func(t *testing.T) {
		_, err := NewLogEntry(Channel("FAX"), "someone", "", "", nil, DeliveryStatusSent, "")
		require.Error(t, err)
	})

	t.Run("rejects empty recipient", func(t *testing.T) {
		_, err := NewLogEntry(ChannelEmail, "", "", "", nil, DeliveryStatusSent, "")
		require.Error(t, err)
	})
}
