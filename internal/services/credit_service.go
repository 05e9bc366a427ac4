package services

import (
	"log"

	"earnings-wallet/internal/models"
)

// CreditOutcome reports what a settlement attempt did.
type CreditOutcome string

const (
	// CreditApplied: this call performed the one wallet increment for the
	// external reference.
	CreditApplied CreditOutcome = "credited"
	// CreditAlreadyApplied: the reference was settled earlier; remaining
	// duplicates were closed without crediting.
	CreditAlreadyApplied CreditOutcome = "already_credited"
)

// PaymentEvent is the canonical form of one external payment notification,
// whatever its origin: a manual UTR submission or a verified gateway
// callback.
type PaymentEvent struct {
	UserID       string
	Amount       float64
	ExternalRef  string
	Source       string
	MobileNumber string
}

// CreditService settles payment events against wallets with an at-most-once
// guarantee per external reference. Any number of duplicate notifications,
// sequential or concurrent, produce exactly one wallet increment.
type CreditService struct {
	Wallets    WalletStore
	Payments   PaymentStore
	Commission *CommissionService
}

func NewCreditService(wallets WalletStore, payments PaymentStore, commission *CommissionService) *CreditService {
	return &CreditService{
		Wallets:    wallets,
		Payments:   payments,
		Commission: commission,
	}
}

// Ingest records a payment event as a pending payment record. Duplicate
// events for the same reference each get their own row; the settlement pass
// collapses them.
func (s *CreditService) Ingest(ev PaymentEvent) (*models.PaymentRecord, error) {
	record := &models.PaymentRecord{
		UserID:       ev.UserID,
		Amount:       ev.Amount,
		ExternalRef:  ev.ExternalRef,
		MobileNumber: ev.MobileNumber,
		Source:       ev.Source,
		Status:       models.PaymentPending,
	}
	if err := s.Payments.Create(record); err != nil {
		return nil, DependencyErr("failed to record payment event", err)
	}
	return record, nil
}

// Credit settles the group of pending payment records sharing ref.
//
// The ordering matters: the wallet increment lands before the credited flag
// is written, so a crash between the two leaves the record pending and a
// retry re-runs the increment path, never the reverse, where a set flag
// hides an increment that never happened. If the flag write itself fails the
// increment is compensated away before the error is returned.
func (s *CreditService) Credit(ref string) (CreditOutcome, error) {
	pending, err := s.Payments.PendingByRef(ref)
	if err != nil {
		return "", DependencyErr("failed to load payment records", err)
	}
	if len(pending) == 0 {
		return "", NotFoundErr("no pending payment found for this reference")
	}

	credited, err := s.Payments.AnyCreditedByRef(ref)
	if err != nil {
		return "", DependencyErr("failed to check credit state", err)
	}
	if credited {
		s.settleWithoutCredit(pending)
		return CreditAlreadyApplied, nil
	}

	// Lowest id wins the credit; PendingByRef returns creation order.
	first := pending[0]

	if err := s.Wallets.IncrementRecharge(first.UserID, first.Amount); err != nil {
		return "", DependencyErr("failed to credit wallet", err)
	}

	claimed, err := s.Payments.ClaimCredit(first.ID)
	if err != nil {
		// Undo the increment so a retry cannot credit twice.
		if derr := s.Wallets.DecrementRecharge(first.UserID, first.Amount); derr != nil {
			log.Printf("CRITICAL: credit compensation failed for user %s ref %s: %v (original: %v)",
				first.UserID, ref, derr, err)
		}
		return "", DependencyErr("failed to finalize payment record", err)
	}
	if !claimed {
		// A concurrent verification claimed the reference between our
		// credited check and the flag write. Its increment stands; take
		// ours back and settle the leftovers.
		if derr := s.Wallets.DecrementRecharge(first.UserID, first.Amount); derr != nil {
			log.Printf("CRITICAL: credit compensation failed for user %s ref %s: %v",
				first.UserID, ref, derr)
		}
		s.settleWithoutCredit(pending[1:])
		return CreditAlreadyApplied, nil
	}

	// Commission is a side effect: a cascade failure is logged and must not
	// unsettle the credit.
	if _, cerr := s.Commission.Cascade(first.UserID, first.Amount); cerr != nil {
		log.Printf("referral commission cascade failed for user %s ref %s: %v", first.UserID, ref, cerr)
	}

	s.settleWithoutCredit(pending[1:])
	return CreditApplied, nil
}

func (s *CreditService) settleWithoutCredit(records []models.PaymentRecord) {
	for _, rec := range records {
		if err := s.Payments.Settle(rec.ID); err != nil {
			log.Printf("failed to close duplicate payment record %d: %v", rec.ID, err)
		}
	}
}
