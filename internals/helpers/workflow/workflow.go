// Package workflow memegang lifecycle request generik:
// pending -> {approved|accepted, rejected}. Terminal itu final.
// Dipakai oleh club tag request, alumni contact request, dan event
// participation: masing-masing bawa predicate reviewer sendiri.
package workflow

import (
	"errors"

	"gorm.io/gorm"

	helper "campussphere_backend/internals/helpers"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

var (
	ErrDuplicatePending = errors.New("request already pending")
	ErrUnauthorized     = errors.New("unauthorized reviewer")
	ErrTerminalState    = errors.New("request already reviewed")
	ErrInvalidDecision  = errors.New("invalid decision")
)

// IsTerminal: tidak ada transisi keluar dari terminal state.
func IsTerminal(status string) bool {
	return status == StatusApproved || status == StatusAccepted || status == StatusRejected
}

// CreatePending insert row pending baru. Invariant "maksimal satu pending per
// pasangan" dijaga oleh partial unique index di storage, bukan cek aplikasi -
// unique violation dipetakan ke ErrDuplicatePending.
func CreatePending(db *gorm.DB, row any) error {
	if err := db.Create(row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return ErrDuplicatePending
		}
		return err
	}
	return nil
}

// Review menjalankan satu transisi pending -> terminal di dalam transaksi
// pemanggil. authorized hasil predicate reviewer; apply menulis status baru
// plus side effect (mis. insert membership terverifikasi).
func Review(tx *gorm.DB, current, decision string, allowed []string, authorized bool, apply func(tx *gorm.DB) error) error {
	if !authorized {
		return ErrUnauthorized
	}
	ok := false
	for _, d := range allowed {
		if decision == d {
			ok = true
			break
		}
	}
	if !ok {
		return ErrInvalidDecision
	}
	if current != StatusPending {
		return ErrTerminalState
	}
	return apply(tx)
}
