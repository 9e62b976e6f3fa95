package otp_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/otp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCode(code string) func() (string, error) {
	return func() (string, error) { return code, nil }
}

func TestGate_Issue(t *testing.T) {
	now := time.Now()

	t.Run("should issue a 6-digit numeric code", func(t *testing.T) {
		gate := otp.NewGate(otp.DefaultPolicy())
		orderID := kernel.NewUUID()

		record, err := gate.Issue(orderID, "customer-1", now)

		require.NoError(t, err)
		assert.Len(t, record.Code, 6)
		assert.Regexp(t, `^\d{6}$`, record.Code)
		assert.Equal(t, "customer-1", record.CustomerID)
		assert.True(t, gate.Pending(orderID))
	})

	t.Run("reissuing replaces the prior code", func(t *testing.T) {
		codes := []string{"111111", "222222"}
		gate := otp.NewGateWithGenerator(otp.DefaultPolicy(), func() (string, error) {
			code := codes[0]
			codes = codes[1:]
			return code, nil
		})
		orderID := kernel.NewUUID()

		_, err := gate.Issue(orderID, "customer-1", now)
		require.NoError(t, err)
		_, err = gate.Issue(orderID, "customer-1", now)
		require.NoError(t, err)

		require.ErrorIs(t, gate.Verify(orderID, "111111", now), otp.ErrOtpMismatch)
		require.NoError(t, gate.Verify(orderID, "222222", now))
	})

	t.Run("should reject zero-value order id", func(t *testing.T) {
		gate := otp.NewGate(otp.DefaultPolicy())
		var orderID kernel.UUID

		_, err := gate.Issue(orderID, "customer-1", now)

		require.Error(t, err)
	})
}

func TestGate_Verify(t *testing.T) {
	now := time.Now()

	t.Run("correct code verifies exactly once", func(t *testing.T) {
		gate := otp.NewGateWithGenerator(otp.DefaultPolicy(), fixedCode("482913"))
		orderID := kernel.NewUUID()
		_, err := gate.Issue(orderID, "customer-1", now)
		require.NoError(t, err)

		require.NoError(t, gate.Verify(orderID, "482913", now))
		assert.False(t, gate.Pending(orderID))

		err = gate.Verify(orderID, "482913", now)
		require.ErrorIs(t, err, otp.ErrOtpNotFound)
	})

	t.Run("mismatch keeps the record live for retry", func(t *testing.T) {
		gate := otp.NewGateWithGenerator(otp.DefaultPolicy(), fixedCode("482913"))
		orderID := kernel.NewUUID()
		_, err := gate.Issue(orderID, "customer-1", now)
		require.NoError(t, err)

		err = gate.Verify(orderID, "000000", now)

		require.ErrorIs(t, err, otp.ErrOtpMismatch)
		assert.True(t, gate.Pending(orderID))
		require.NoError(t, gate.Verify(orderID, "482913", now))
	})

	t.Run("unknown order reports not found", func(t *testing.T) {
		gate := otp.NewGate(otp.DefaultPolicy())

		err := gate.Verify(kernel.NewUUID(), "123456", now)

		require.ErrorIs(t, err, otp.ErrOtpNotFound)
	})

	t.Run("expired code reports not found", func(t *testing.T) {
		gate := otp.NewGateWithGenerator(otp.Policy{TTL: 10 * time.Minute}, fixedCode("482913"))
		orderID := kernel.NewUUID()
		_, err := gate.Issue(orderID, "customer-1", now)
		require.NoError(t, err)

		err = gate.Verify(orderID, "482913", now.Add(11*time.Minute))

		require.ErrorIs(t, err, otp.ErrOtpNotFound)
		assert.False(t, gate.Pending(orderID))
	})

	t.Run("lockout after max failed attempts", func(t *testing.T) {
		gate := otp.NewGateWithGenerator(otp.Policy{MaxAttempts: 5}, fixedCode("482913"))
		orderID := kernel.NewUUID()
		_, err := gate.Issue(orderID, "customer-1", now)
		require.NoError(t, err)

		for range 5 {
			err = gate.Verify(orderID, "000000", now)
			require.ErrorIs(t, err, otp.ErrOtpMismatch)
		}

		// Locked out; even the correct code no longer verifies.
		err = gate.Verify(orderID, "482913", now)
		require.ErrorIs(t, err, otp.ErrOtpNotFound)
	})

	t.Run("zero policy never expires or locks out", func(t *testing.T) {
		gate := otp.NewGateWithGenerator(otp.Policy{}, fixedCode("482913"))
		orderID := kernel.NewUUID()
		_, err := gate.Issue(orderID, "customer-1", now)
		require.NoError(t, err)

		for range 10 {
			require.ErrorIs(t, gate.Verify(orderID, "000000", now.Add(time.Hour)), otp.ErrOtpMismatch)
		}
		require.NoError(t, gate.Verify(orderID, "482913", now.Add(24*time.Hour)))
	})
}
