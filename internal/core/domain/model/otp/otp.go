// Package otp implements the one-time code gate for delivery confirmation.
// A code is issued when the rider collects an order and must be presented by
// the customer before the order can be marked delivered.
package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

var (
	// ErrOtpNotFound indicates no live code exists for the order. Expired and
	// locked-out records report the same failure.
	ErrOtpNotFound = errors.New("otp not found")

	// ErrOtpMismatch indicates the presented code does not match the issued
	// one. The record stays live until the attempt limit is reached.
	ErrOtpMismatch = errors.New("otp mismatch")
)

const codeDigits = 6

// Policy controls code validity. The zero value means no expiry and no
// attempt limit; DefaultPolicy is what production wiring uses.
type Policy struct {
	// TTL is how long an issued code stays verifiable. Zero disables expiry.
	TTL time.Duration

	// MaxAttempts locks the record out after this many failed verifications.
	// Zero disables the limit.
	MaxAttempts int
}

// DefaultPolicy returns the production verification policy: codes expire
// after 10 minutes and lock out after 5 failed attempts.
func DefaultPolicy() Policy {
	return Policy{
		TTL:         10 * time.Minute,
		MaxAttempts: 5,
	}
}

// Record is one live OTP, keyed by order. Exactly one record exists per
// order at a time; reissuing replaces the prior one.
type Record struct {
	OrderID        kernel.UUID
	CustomerID     string
	Code           string
	IssuedAt       time.Time
	FailedAttempts int
}

// Gate generates, stores, and verifies one-time codes. It is safe for
// concurrent use.
type Gate struct {
	mu      sync.Mutex
	policy  Policy
	records map[string]*Record

	generate func() (string, error)
}

// NewGate creates a Gate with cryptographically random 6-digit codes.
func NewGate(policy Policy) *Gate {
	return &Gate{
		policy:   policy,
		records:  make(map[string]*Record),
		generate: generateCode,
	}
}

// NewGateWithGenerator creates a Gate with a custom code generator.
// Intended for deterministic tests.
func NewGateWithGenerator(policy Policy, generate func() (string, error)) *Gate {
	g := NewGate(policy)
	g.generate = generate
	return g
}

// Issue generates a new code for the order, replacing any prior pending
// code, and returns the stored record. Delivering the code to the customer
// is the caller's concern.
func (g *Gate) Issue(orderID kernel.UUID, customerID string, now time.Time) (Record, error) {
	if err := orderID.Validate(); err != nil {
		return Record{}, err
	}

	code, err := g.generate()
	if err != nil {
		return Record{}, fmt.Errorf("generate otp: %w", err)
	}

	record := Record{
		OrderID:    orderID,
		CustomerID: customerID,
		Code:       code,
		IssuedAt:   now,
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.records[orderID.String()] = &record

	return record, nil
}

// Verify checks a presented code against the order's live record. On success
// the record is consumed; a second verification with the same code reports
// ErrOtpNotFound. On mismatch the failed-attempt counter increments, and the
// record is dropped once the policy's limit is reached.
func (g *Gate) Verify(orderID kernel.UUID, presented string, now time.Time) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	key := orderID.String()
	record, ok := g.records[key]
	if !ok {
		return ErrOtpNotFound
	}

	if g.policy.TTL > 0 && now.After(record.IssuedAt.Add(g.policy.TTL)) {
		delete(g.records, key)
		return ErrOtpNotFound
	}

	if record.Code != presented {
		record.FailedAttempts++
		if g.policy.MaxAttempts > 0 && record.FailedAttempts >= g.policy.MaxAttempts {
			delete(g.records, key)
		}
		return ErrOtpMismatch
	}

	delete(g.records, key)
	return nil
}

// Pending reports whether a live record exists for the order.
func (g *Gate) Pending(orderID kernel.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.records[orderID.String()]
	return ok
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}
