package services

import (
	"time"

	"earnings-wallet/internal/models"
)

// Store interfaces consumed by the services. The gorm-backed implementations
// live in internal/repository; tests substitute in-memory fakes. The store
// contract is per-row atomicity only: increments and guarded decrements are
// single statements, and nothing here spans rows transactionally.

type WalletStore interface {
	Create(w *models.Wallet) error
	ByUser(userID string) (*models.Wallet, error)
	IncrementRecharge(userID string, amount float64) error
	DecrementRecharge(userID string, amount float64) error
	IncrementReferralCommission(userID string, amount float64) error
	IncrementOrderIncome(userID string, amount float64) error
	DebitOrderIncome(userID string, amount float64) (bool, error)
	IncrementPendingBonus(userID string, amount float64) error
	ClaimPendingBonus(userID string, expected float64) (bool, error)
}

type PaymentStore interface {
	Create(p *models.PaymentRecord) error
	PendingByRef(ref string) ([]models.PaymentRecord, error)
	AnyCreditedByRef(ref string) (bool, error)
	ClaimCredit(id uint) (bool, error)
	Settle(id uint) error
	MarkRejectedByRef(ref string) (int64, error)
	HasSettled(userID string) (bool, error)
	ListByUser(userID string) ([]models.PaymentRecord, error)
	ListPending() ([]models.PaymentRecord, error)
}

type TransactionStore interface {
	Create(t *models.Transaction) error
	ByID(id uint) (*models.Transaction, error)
	CountSince(userID, trxType string, since time.Time) (int64, error)
	TransitionStatus(id uint, from, to, notes string) (bool, error)
	SetStatusByGatewayOrder(orderID, status, paymentID, description string) (bool, error)
	ListByUserAndType(userID, trxType string) ([]models.Transaction, error)
	HasSettledRecharge(userID string) (bool, error)
	ExpirePendingBefore(trxType string, cutoff time.Time) (int64, error)
	ListPendingWithdrawals() ([]models.Transaction, error)
}

type ProfileStore interface {
	Create(p *models.Profile) error
	ByID(id string) (*models.Profile, error)
	ByReferralCode(code string) (*models.Profile, error)
	ListByReferrer(referrerID string) ([]models.Profile, error)
	SetTradePasswordHash(id, hash string) error
	Delete(id string) error
}

type CommissionStore interface {
	Create(c *models.CommissionLog) error
	ListByReferrer(referrerID string) ([]models.CommissionLog, error)
}

type BankCardStore interface {
	Create(c *models.BankCard) error
	ByID(id uint) (*models.BankCard, error)
	ListByUser(userID string) ([]models.BankCard, error)
}

type CallbackStore interface {
	Create(l *models.CallbackLog) error
}

// Notifier is the fire-and-forget admin notification sink. Implementations
// must never return delivery failures to the caller.
type Notifier interface {
	Notify(message string)
}

// OrderGateway is the payment gateway client surface the payment service
// depends on.
type OrderGateway interface {
	CreateOrder(amountPaisa int64, currency, receipt string) (orderID string, err error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}
