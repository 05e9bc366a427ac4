package services

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"earnings-wallet/internal/models"
)

// In-memory stores backing the service tests. Guarded mutations mirror the
// single-statement semantics of the gorm repositories so concurrency tests
// exercise the same atomicity the database provides.

var (
	errRowNotFound  = errors.New("record not found")
	errDuplicateKey = gorm.ErrDuplicatedKey
)

type fakeWalletStore struct {
	mu      sync.Mutex
	wallets map[string]*models.Wallet
}

func newFakeWalletStore() *fakeWalletStore {
	return &fakeWalletStore{wallets: map[string]*models.Wallet{}}
}

func (f *fakeWalletStore) Create(w *models.Wallet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.wallets[w.UserID]; ok {
		return errors.New("duplicate wallet")
	}
	cp := *w
	f.wallets[w.UserID] = &cp
	return nil
}

func (f *fakeWalletStore) ByUser(userID string) (*models.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[userID]
	if !ok {
		return nil, errRowNotFound
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWalletStore) IncrementRecharge(userID string, amount float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[userID]
	if !ok {
		return errRowNotFound
	}
	w.RechargedAmount += amount
	return nil
}

func (f *fakeWalletStore) DecrementRecharge(userID string, amount float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[userID]
	if !ok {
		return errRowNotFound
	}
	w.RechargedAmount -= amount
	return nil
}

func (f *fakeWalletStore) IncrementReferralCommission(userID string, amount float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[userID]
	if !ok {
		return errRowNotFound
	}
	w.TotalReferralEarnings += amount
	w.OrderIncome += amount
	return nil
}

func (f *fakeWalletStore) IncrementOrderIncome(userID string, amount float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[userID]
	if !ok {
		return errRowNotFound
	}
	w.OrderIncome += amount
	return nil
}

func (f *fakeWalletStore) DebitOrderIncome(userID string, amount float64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[userID]
	if !ok || w.OrderIncome < amount {
		return false, nil
	}
	w.OrderIncome -= amount
	return true, nil
}

func (f *fakeWalletStore) IncrementPendingBonus(userID string, amount float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[userID]
	if !ok {
		return errRowNotFound
	}
	w.PendingReferralBonus += amount
	return nil
}

func (f *fakeWalletStore) ClaimPendingBonus(userID string, expected float64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[userID]
	if !ok || w.PendingReferralBonus != expected {
		return false, nil
	}
	w.Balance += expected
	w.TotalReferralEarnings += expected
	w.OrderIncome += expected
	w.PendingReferralBonus = 0
	return true, nil
}

type fakePaymentStore struct {
	mu      sync.Mutex
	nextID  uint
	records []*models.PaymentRecord
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{}
}

func (f *fakePaymentStore) Create(p *models.PaymentRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	cp := *p
	f.records = append(f.records, &cp)
	return nil
}

func (f *fakePaymentStore) PendingByRef(ref string) ([]models.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PaymentRecord
	for _, r := range f.records {
		if r.ExternalRef == ref && r.Status == models.PaymentPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) AnyCreditedByRef(ref string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ExternalRef == ref && r.IsCredited {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePaymentStore) ClaimCredit(id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id && r.Status == models.PaymentPending && !r.IsCredited {
			r.Status = models.PaymentCompleted
			r.IsCredited = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePaymentStore) Settle(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id && r.Status == models.PaymentPending {
			r.Status = models.PaymentCompleted
			return nil
		}
	}
	return nil
}

func (f *fakePaymentStore) MarkRejectedByRef(ref string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.records {
		if r.ExternalRef == ref && r.Status == models.PaymentPending {
			r.Status = models.PaymentRejected
			n++
		}
	}
	return n, nil
}

func (f *fakePaymentStore) HasSettled(userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.UserID == userID && (r.Status == models.PaymentCompleted || r.Status == models.PaymentSuccess) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePaymentStore) ListByUser(userID string) ([]models.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PaymentRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) ListPending() ([]models.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PaymentRecord
	for _, r := range f.records {
		if r.Status == models.PaymentPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) byID(id uint) *models.PaymentRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			cp := *r
			return &cp
		}
	}
	return nil
}

func (f *fakePaymentStore) creditedCount(ref string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.records {
		if r.ExternalRef == ref && r.IsCredited {
			n++
		}
	}
	return n
}

type fakeTransactionStore struct {
	mu      sync.Mutex
	nextID  uint
	records []*models.Transaction

	failCreate bool
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{}
}

func (f *fakeTransactionStore) Create(t *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errors.New("insert failed")
	}
	f.nextID++
	t.ID = f.nextID
	t.CreatedAt = time.Now()
	cp := *t
	f.records = append(f.records, &cp)
	return nil
}

func (f *fakeTransactionStore) ByID(id uint) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, errRowNotFound
}

func (f *fakeTransactionStore) CountSince(userID, trxType string, since time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.records {
		if r.UserID == userID && r.Type == trxType && !r.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeTransactionStore) TransitionStatus(id uint, from, to, notes string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id && r.Status == from {
			r.Status = to
			if notes != "" {
				r.AdminNotes = notes
			}
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTransactionStore) SetStatusByGatewayOrder(orderID, status, paymentID, description string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.PaymentGatewayID == orderID && r.Status == models.TrxPending {
			r.Status = status
			if paymentID != "" {
				r.GatewayPaymentID = paymentID
			}
			if description != "" {
				r.Description = description
			}
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTransactionStore) ListByUserAndType(userID, trxType string) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Transaction
	for _, r := range f.records {
		if r.UserID == userID && r.Type == trxType {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeTransactionStore) HasSettledRecharge(userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.UserID == userID && r.Type == models.TrxRecharge && r.Status == models.TrxCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTransactionStore) ExpirePendingBefore(trxType string, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.records {
		if r.Type == trxType && r.Status == models.TrxPending && r.CreatedAt.Before(cutoff) {
			r.Status = models.TrxFailed
			n++
		}
	}
	return n, nil
}

func (f *fakeTransactionStore) ListPendingWithdrawals() ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Transaction
	for _, r := range f.records {
		if r.Type == models.TrxWithdrawal && r.Status == models.TrxPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*models.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[string]*models.Profile{}}
}

func (f *fakeProfileStore) Create(p *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.profiles {
		if existing.PhoneNumber == p.PhoneNumber {
			return errDuplicateKey
		}
	}
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func (f *fakeProfileStore) ByID(id string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, errRowNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileStore) ByReferralCode(code string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.ReferralCode == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errRowNotFound
}

func (f *fakeProfileStore) ListByReferrer(referrerID string) ([]models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Profile
	for _, p := range f.profiles {
		if p.ReferrerID != nil && *p.ReferrerID == referrerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProfileStore) SetTradePasswordHash(id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return errRowNotFound
	}
	p.TradePasswordHash = hash
	return nil
}

func (f *fakeProfileStore) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.profiles, id)
	return nil
}

type fakeCommissionStore struct {
	mu      sync.Mutex
	nextID  uint
	entries []*models.CommissionLog
}

func newFakeCommissionStore() *fakeCommissionStore {
	return &fakeCommissionStore{}
}

func (f *fakeCommissionStore) Create(c *models.CommissionLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c.ID = f.nextID
	cp := *c
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeCommissionStore) ListByReferrer(referrerID string) ([]models.CommissionLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CommissionLog
	for _, e := range f.entries {
		if e.ReferrerID == referrerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

type fakeBankCardStore struct {
	mu     sync.Mutex
	nextID uint
	cards  []*models.BankCard
}

func newFakeBankCardStore() *fakeBankCardStore {
	return &fakeBankCardStore{}
}

func (f *fakeBankCardStore) Create(c *models.BankCard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c.ID = f.nextID
	cp := *c
	f.cards = append(f.cards, &cp)
	return nil
}

func (f *fakeBankCardStore) ByID(id uint) (*models.BankCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.cards {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errRowNotFound
}

func (f *fakeBankCardStore) ListByUser(userID string) ([]models.BankCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.BankCard
	for _, c := range f.cards {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeCallbackStore struct {
	mu      sync.Mutex
	entries []*models.CallbackLog
}

func newFakeCallbackStore() *fakeCallbackStore {
	return &fakeCallbackStore{}
}

func (f *fakeCallbackStore) Create(l *models.CallbackLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *l
	f.entries = append(f.entries, &cp)
	return nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeNotifier) Notify(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

type fakeGateway struct {
	orderID   string
	createErr error
	validSig  string

	gotPaisa    int64
	gotCurrency string
}

func (f *fakeGateway) CreateOrder(amountPaisa int64, currency, receipt string) (string, error) {
	f.gotPaisa = amountPaisa
	f.gotCurrency = currency
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.orderID, nil
}

func (f *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return signature == f.validSig
}

func (f *fakeGateway) KeyID() string {
	return "rzp_test_key"
}
