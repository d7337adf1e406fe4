// Package adapters provides the concrete gating collaborators of the
// draft engine: wallet linking, sybil scoring, role gating, captcha
// verification, and credential claim status.
package adapters

import (
	"context"
	"sync"

	"commune/internal/draft/ports"
	dErrors "commune/pkg/domain-errors"
	"commune/pkg/eth"
)

// WalletDirectory tracks responder wallet links for the connectWallet
// step. Links are process-local session state.
type WalletDirectory struct {
	mu        sync.RWMutex
	addresses map[string]string
}

var _ ports.WalletService = (*WalletDirectory)(nil)

func NewWalletDirectory() *WalletDirectory {
	return &WalletDirectory{addresses: map[string]string{}}
}

// Link records a responder's address after checksum validation.
func (d *WalletDirectory) Link(_ context.Context, responderID, address string) error {
	if !eth.IsValidAddress(address) {
		return dErrors.New(dErrors.CodeValidation, "invalid ethereum address: "+address)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.addresses[responderID] = address
	return nil
}

func (d *WalletDirectory) HasLinkedWallet(_ context.Context, responderID string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.addresses[responderID]
	return ok, nil
}

func (d *WalletDirectory) Address(_ context.Context, responderID string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	address, ok := d.addresses[responderID]
	if !ok {
		return "", dErrors.New(dErrors.CodeNotFound, "no wallet linked for responder")
	}
	return address, nil
}
