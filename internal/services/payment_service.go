package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/robfig/cron/v3"

	"earnings-wallet/internal/models"
	"earnings-wallet/pkg/common"
)

// StalePendingOrderAge is how long a gateway order may sit pending before the
// scheduler marks it failed.
const StalePendingOrderAge = 24 * time.Hour

// PaymentService fronts both deposit channels: manual UTR submissions that an
// admin verifies, and gateway orders verified by signature callback. Both
// funnel into the same CreditService so crediting stays exactly-once per
// reference regardless of channel.
type PaymentService struct {
	Payments     PaymentStore
	Transactions TransactionStore
	Callbacks    CallbackStore
	Credit       *CreditService
	Gateway      OrderGateway
	Notifier     Notifier
}

func NewPaymentService(payments PaymentStore, transactions TransactionStore, callbacks CallbackStore, credit *CreditService, gateway OrderGateway, notifier Notifier) *PaymentService {
	return &PaymentService{
		Payments:     payments,
		Transactions: transactions,
		Callbacks:    callbacks,
		Credit:       credit,
		Gateway:      gateway,
		Notifier:     notifier,
	}
}

type ManualPaymentDTO struct {
	UserID       string
	Amount       float64
	UTRNumber    string
	MobileNumber string
}

// SubmitManualPayment records a user-declared bank transfer for admin review.
// Duplicate UTRs are accepted here; the credit engine settles them all against
// a single credit at verification time.
func (s *PaymentService) SubmitManualPayment(data ManualPaymentDTO) (*models.PaymentRecord, error) {
	if data.UserID == "" || data.UTRNumber == "" || data.MobileNumber == "" {
		return nil, ValidationErr("user id, utr number and mobile number are required")
	}
	if data.Amount <= 0 {
		return nil, ValidationErr("invalid payment amount")
	}
	if !isDigits(data.UTRNumber) || len(data.UTRNumber) != 12 {
		return nil, ValidationErr("utr number must be exactly 12 digits")
	}
	if !isDigits(data.MobileNumber) || len(data.MobileNumber) != 10 {
		return nil, ValidationErr("mobile number must be exactly 10 digits")
	}

	record, err := s.Credit.Ingest(PaymentEvent{
		UserID:       data.UserID,
		Amount:       common.Round2(data.Amount),
		ExternalRef:  data.UTRNumber,
		Source:       models.PaymentSourceManual,
		MobileNumber: data.MobileNumber,
	})
	if err != nil {
		return nil, DependencyErr("failed to record payment", err)
	}

	s.Notifier.Notify(fmt.Sprintf(
		"New Manual Payment\nUser ID: %s\nAmount: %.2f\nUTR: %s\nMobile: %s\nStatus: Pending Verification",
		record.UserID, record.Amount, record.ExternalRef, record.MobileNumber))

	return record, nil
}

// VerifyManualPayment approves every pending submission carrying the UTR and
// credits the wallet at most once.
func (s *PaymentService) VerifyManualPayment(utrNumber string) (CreditOutcome, error) {
	return s.Credit.Credit(utrNumber)
}

// RejectManualPayment marks all pending submissions for the UTR as rejected.
func (s *PaymentService) RejectManualPayment(utrNumber string) (int64, error) {
	affected, err := s.Payments.MarkRejectedByRef(utrNumber)
	if err != nil {
		return 0, DependencyErr("failed to reject payment", err)
	}
	if affected == 0 {
		return 0, NotFoundErr("no pending payment found for this utr")
	}
	return affected, nil
}

func (s *PaymentService) PendingManualPayments() ([]models.PaymentRecord, error) {
	list, err := s.Payments.ListPending()
	if err != nil {
		return nil, DependencyErr("failed to load pending payments", err)
	}
	return list, nil
}

func (s *PaymentService) RechargeRecords(userID string) ([]models.PaymentRecord, error) {
	list, err := s.Payments.ListByUser(userID)
	if err != nil {
		return nil, DependencyErr("failed to load recharge records", err)
	}
	return list, nil
}

// GatewayOrder is what the frontend needs to open the gateway checkout.
type GatewayOrder struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	KeyID    string  `json:"key_id"`
}

// CreateGatewayOrder opens a gateway order and records a pending recharge
// transaction keyed by the gateway order id.
func (s *PaymentService) CreateGatewayOrder(userID string, amount float64) (*GatewayOrder, error) {
	if amount <= 0 {
		return nil, ValidationErr("invalid recharge amount")
	}
	amount = common.Round2(amount)

	receipt := common.GenerateReceiptID()
	orderID, err := s.Gateway.CreateOrder(int64(math.Round(amount*100)), "INR", receipt)
	if err != nil {
		return nil, DependencyErr("failed to create payment order", err)
	}

	trx := &models.Transaction{
		UserID:           userID,
		Amount:           amount,
		Type:             models.TrxRecharge,
		Status:           models.TrxPending,
		Description:      "Online recharge (awaiting payment)",
		PaymentGatewayID: orderID,
		ReceiptID:        receipt,
	}
	if err := s.Transactions.Create(trx); err != nil {
		return nil, DependencyErr("failed to record recharge order", err)
	}

	return &GatewayOrder{OrderID: orderID, Amount: amount, Currency: "INR", KeyID: s.Gateway.KeyID()}, nil
}

type GatewayCallbackDTO struct {
	UserID    string
	OrderID   string
	PaymentID string
	Signature string
	Amount    float64
}

// VerifyGatewayPayment checks the callback signature and, when valid, credits
// the wallet through the shared credit engine keyed by the order id. Replayed
// callbacks for the same order settle without a second credit.
func (s *PaymentService) VerifyGatewayPayment(data GatewayCallbackDTO) (CreditOutcome, error) {
	raw := fmt.Sprintf(`{"order_id":%q,"payment_id":%q,"user_id":%q,"amount":%v}`,
		data.OrderID, data.PaymentID, data.UserID, data.Amount)
	logEntry := &models.CallbackLog{
		Request:       raw,
		TransactionID: data.OrderID,
		PaymentMethod: "razorpay",
	}

	if !s.Gateway.VerifySignature(data.OrderID, data.PaymentID, data.Signature) {
		if _, err := s.Transactions.SetStatusByGatewayOrder(data.OrderID, models.TrxFailed, data.PaymentID, "Signature verification failed"); err != nil {
			log.Printf("failed to mark order %s failed: %v", data.OrderID, err)
		}
		logEntry.Response = "signature verification failed"
		s.logCallback(logEntry)
		return "", ValidationErr("payment signature verification failed")
	}

	if _, err := s.Credit.Ingest(PaymentEvent{
		UserID:      data.UserID,
		Amount:      common.Round2(data.Amount),
		ExternalRef: data.OrderID,
		Source:      models.PaymentSourceGateway,
	}); err != nil {
		return "", DependencyErr("failed to record verified payment", err)
	}

	outcome, err := s.Credit.Credit(data.OrderID)
	if err != nil {
		logEntry.Response = err.Error()
		s.logCallback(logEntry)
		return "", err
	}

	if _, err := s.Transactions.SetStatusByGatewayOrder(data.OrderID, models.TrxCompleted, data.PaymentID, "Payment verified and credited"); err != nil {
		log.Printf("failed to complete recharge transaction for order %s: %v", data.OrderID, err)
	}
	logEntry.Status = 1
	logEntry.Response = string(outcome)
	s.logCallback(logEntry)
	return outcome, nil
}

func (s *PaymentService) logCallback(entry *models.CallbackLog) {
	if s.Callbacks == nil {
		return
	}
	if err := s.Callbacks.Create(entry); err != nil {
		log.Printf("failed to log gateway callback for order %s: %v", entry.TransactionID, err)
	}
}

// StartScheduler expires gateway orders that never received a callback.
func (s *PaymentService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("0 * * * *", func() {
		cutoff := time.Now().Add(-StalePendingOrderAge)
		expired, err := s.Transactions.ExpirePendingBefore(models.TrxRecharge, cutoff)
		if err != nil {
			log.Printf("failed to expire stale recharge orders: %v", err)
			return
		}
		if expired > 0 {
			log.Printf("expired %d stale pending recharge orders", expired)
		}
	})
	if err != nil {
		log.Printf("failed to schedule stale order expiry: %v", err)
		return
	}
	c.Start()
	log.Println("stale order expiry scheduler started")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
