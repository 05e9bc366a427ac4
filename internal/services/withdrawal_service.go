package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"earnings-wallet/internal/models"
	"earnings-wallet/pkg/common"
)

// WithdrawalFeeRate is deducted downstream at payout; the wallet debit is
// the requested amount itself.
const WithdrawalFeeRate = 0.12

// DailyWithdrawalLimit caps withdrawal requests per user per UTC day.
const DailyWithdrawalLimit = 2

// WithdrawalService owns the withdrawal state machine:
// requested -> pending -> {completed | rejected | failed}.
// The debit happens optimistically at request time; rejected and failed both
// reverse it in full.
type WithdrawalService struct {
	Wallets      WalletStore
	Payments     PaymentStore
	Transactions TransactionStore
	Notifier     Notifier

	now func() time.Time
}

func NewWithdrawalService(wallets WalletStore, payments PaymentStore, transactions TransactionStore, notifier Notifier) *WithdrawalService {
	return &WithdrawalService{
		Wallets:      wallets,
		Payments:     payments,
		Transactions: transactions,
		Notifier:     notifier,
		now:          time.Now,
	}
}

// BankDetails is the payout destination snapshot stored with the request.
type BankDetails struct {
	AccountNumber     string `json:"accountNumber"`
	AccountHolderName string `json:"accountHolderName"`
	BankName          string `json:"bankName"`
	IFSCCode          string `json:"ifscCode"`
}

type WithdrawRequestDTO struct {
	UserID      string
	Amount      float64
	BankCardID  uint
	BankDetails BankDetails
}

// WithdrawalTicket is returned to the requester once the debit and pending
// record are in place.
type WithdrawalTicket struct {
	TransactionID  uint    `json:"transaction_id"`
	Amount         float64 `json:"amount"`
	Fee            float64 `json:"fee"`
	NewOrderIncome float64 `json:"new_order_income"`
}

// Request validates eligibility, debits order_income and records a pending
// withdrawal transaction. The debit and the record are independent store
// calls; when the record fails, the debit is explicitly reversed before the
// error is returned.
func (s *WithdrawalService) Request(data WithdrawRequestDTO) (*WithdrawalTicket, error) {
	if data.Amount <= 0 {
		return nil, ValidationErr("invalid withdrawal amount")
	}

	startOfDay := s.now().UTC().Truncate(24 * time.Hour)
	count, err := s.Transactions.CountSince(data.UserID, models.TrxWithdrawal, startOfDay)
	if err != nil {
		return nil, DependencyErr("failed to check withdrawal count", err)
	}
	if count >= DailyWithdrawalLimit {
		return nil, ConflictErr("you can only withdraw twice per day")
	}

	invested, err := s.Payments.HasSettled(data.UserID)
	if err != nil {
		return nil, DependencyErr("failed to check investment history", err)
	}
	if !invested {
		return nil, ConflictErr("you must have a successful investment to withdraw")
	}

	amount := common.Round2(data.Amount)
	fee := common.Round2(amount * WithdrawalFeeRate)

	debited, err := s.Wallets.DebitOrderIncome(data.UserID, amount)
	if err != nil {
		return nil, DependencyErr("failed to debit wallet", err)
	}
	if !debited {
		if _, werr := s.Wallets.ByUser(data.UserID); werr != nil {
			return nil, NotFoundErr("user wallet not found")
		}
		return nil, ConflictErr("insufficient order income for withdrawal")
	}

	meta, _ := json.Marshal(data.BankDetails)
	bankCardID := data.BankCardID
	trx := &models.Transaction{
		UserID:      data.UserID,
		Amount:      amount,
		Fee:         fee,
		Type:        models.TrxWithdrawal,
		Status:      models.TrxPending,
		Description: fmt.Sprintf("Withdrawal request for %.2f (processing)", amount),
		Metadata:    string(meta),
	}
	if bankCardID != 0 {
		trx.BankCardID = &bankCardID
	}
	if err := s.Transactions.Create(trx); err != nil {
		// Debit-then-record is not atomic: put the money back before
		// surfacing the failure.
		if rerr := s.Wallets.IncrementOrderIncome(data.UserID, amount); rerr != nil {
			log.Printf("CRITICAL: withdrawal debit reversal failed for user %s amount %.2f: %v (original: %v)",
				data.UserID, amount, rerr, err)
		}
		return nil, DependencyErr("failed to record withdrawal request; amount refunded to wallet", err)
	}

	s.Notifier.Notify(fmt.Sprintf(
		"New Withdrawal Request\nUser ID: %s\nAmount: %.2f\nFee: %.2f\nBank: %s ending in %s\nStatus: Pending Admin Approval",
		data.UserID, amount, fee, data.BankDetails.BankName, tail(data.BankDetails.AccountNumber, 4)))

	ticket := &WithdrawalTicket{TransactionID: trx.ID, Amount: amount, Fee: fee}
	if wallet, werr := s.Wallets.ByUser(data.UserID); werr == nil {
		ticket.NewOrderIncome = wallet.OrderIncome
	}
	return ticket, nil
}

// Resolve moves a pending withdrawal to its terminal state. completed keeps
// the debit; rejected and failed refund it in full. The state transition is
// a compare-and-swap on the pending status, so re-resolving an
// already-terminal withdrawal never double-credits.
func (s *WithdrawalService) Resolve(transactionID uint, newStatus, notes string) error {
	switch newStatus {
	case models.TrxCompleted, models.TrxRejected, models.TrxFailed:
	default:
		return ValidationErr("invalid status; allowed: completed, rejected, failed")
	}

	trx, err := s.Transactions.ByID(transactionID)
	if err != nil {
		return NotFoundErr("withdrawal transaction not found")
	}
	if trx.Type != models.TrxWithdrawal {
		return ValidationErr("transaction is not a withdrawal")
	}
	if trx.Status != models.TrxPending {
		return InvariantErr("withdrawal has already been resolved")
	}

	moved, err := s.Transactions.TransitionStatus(transactionID, models.TrxPending, newStatus, notes)
	if err != nil {
		return DependencyErr("failed to update withdrawal status", err)
	}
	if !moved {
		return InvariantErr("withdrawal has already been resolved")
	}

	if newStatus == models.TrxCompleted {
		return nil
	}

	// Full reversal of the request-time debit.
	if err := s.Wallets.IncrementOrderIncome(trx.UserID, trx.Amount); err != nil {
		// Never leave a terminal-failed withdrawal with unrefunded funds:
		// revert the transition and surface the failure.
		if reverted, rerr := s.Transactions.TransitionStatus(transactionID, newStatus, models.TrxPending, notes); rerr != nil || !reverted {
			log.Printf("CRITICAL: withdrawal %d marked %s but refund of %.2f to user %s failed: %v",
				transactionID, newStatus, trx.Amount, trx.UserID, err)
		}
		return DependencyErr("failed to refund withdrawal amount; request left pending", err)
	}

	log.Printf("refunded %.2f to user %s for %s withdrawal %d", trx.Amount, trx.UserID, newStatus, transactionID)
	return nil
}

// Records lists a user's withdrawal transactions, newest first.
func (s *WithdrawalService) Records(userID string) ([]models.Transaction, error) {
	list, err := s.Transactions.ListByUserAndType(userID, models.TrxWithdrawal)
	if err != nil {
		return nil, DependencyErr("failed to load withdrawal records", err)
	}
	return list, nil
}

// PendingRequests lists every pending withdrawal for the admin dashboard.
func (s *WithdrawalService) PendingRequests() ([]models.Transaction, error) {
	list, err := s.Transactions.ListPendingWithdrawals()
	if err != nil {
		return nil, DependencyErr("failed to load pending withdrawals", err)
	}
	return list, nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
