package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"earnings-wallet/internal/models"
)

func newCreditFixture(t *testing.T) (*CreditService, *fakeWalletStore, *fakePaymentStore, *fakeProfileStore, *fakeCommissionStore) {
	t.Helper()
	wallets := newFakeWalletStore()
	payments := newFakePaymentStore()
	profiles := newFakeProfileStore()
	commissions := newFakeCommissionStore()
	transactions := newFakeTransactionStore()
	commission := NewCommissionService(profiles, wallets, commissions, transactions)
	return NewCreditService(wallets, payments, commission), wallets, payments, profiles, commissions
}

func TestCreditDuplicateSubmissionsCreditOnce(t *testing.T) {
	svc, wallets, payments, profiles, commissions := newCreditFixture(t)

	referrer := &models.Profile{ID: "u1", Nickname: "Referrer", PhoneNumber: "9000000001", ReferralCode: "REFU1"}
	require.NoError(t, profiles.Create(referrer))
	referred := &models.Profile{ID: "u2", Nickname: "Referred", PhoneNumber: "9000000002", ReferralCode: "REFU2", ReferrerID: &referrer.ID}
	require.NoError(t, profiles.Create(referred))
	require.NoError(t, wallets.Create(&models.Wallet{UserID: "u1"}))
	require.NoError(t, wallets.Create(&models.Wallet{UserID: "u2"}))

	const utr = "123456789012"
	for i := 0; i < 3; i++ {
		_, err := svc.Ingest(PaymentEvent{
			UserID:      "u2",
			Amount:      1000,
			ExternalRef: utr,
			Source:      models.PaymentSourceManual,
		})
		require.NoError(t, err)
	}

	outcome, err := svc.Credit(utr)
	require.NoError(t, err)
	assert.Equal(t, CreditApplied, outcome)

	w2, err := wallets.ByUser("u2")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, w2.RechargedAmount)

	w1, err := wallets.ByUser("u1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, w1.OrderIncome)
	assert.Equal(t, 100.0, w1.TotalReferralEarnings)

	logs, err := commissions.ListByReferrer("u1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 100.0, logs[0].CommissionAmount)
	assert.Equal(t, 1000.0, logs[0].InvestmentAmount)

	assert.Equal(t, 1, payments.creditedCount(utr))
	pending, err := payments.PendingByRef(utr)
	require.NoError(t, err)
	assert.Empty(t, pending, "every duplicate record must be settled")
}

func TestCreditSecondVerificationIsNoOp(t *testing.T) {
	svc, wallets, payments, _, _ := newCreditFixture(t)
	require.NoError(t, wallets.Create(&models.Wallet{UserID: "u3"}))

	const utr = "222233334444"
	_, err := svc.Ingest(PaymentEvent{UserID: "u3", Amount: 500, ExternalRef: utr, Source: models.PaymentSourceManual})
	require.NoError(t, err)

	outcome, err := svc.Credit(utr)
	require.NoError(t, err)
	assert.Equal(t, CreditApplied, outcome)

	// A late duplicate submission after the credit settles without paying.
	_, err = svc.Ingest(PaymentEvent{UserID: "u3", Amount: 500, ExternalRef: utr, Source: models.PaymentSourceManual})
	require.NoError(t, err)

	outcome, err = svc.Credit(utr)
	require.NoError(t, err)
	assert.Equal(t, CreditAlreadyApplied, outcome)

	w, err := wallets.ByUser("u3")
	require.NoError(t, err)
	assert.Equal(t, 500.0, w.RechargedAmount)
	assert.Equal(t, 1, payments.creditedCount(utr))
}

func TestCreditUnknownReference(t *testing.T) {
	svc, _, _, _, _ := newCreditFixture(t)

	_, err := svc.Credit("999999999999")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

// gatedPaymentStore holds every credited check at a barrier until all
// expected verifications have performed theirs, so concurrent Credit calls
// are guaranteed to race past the check together.
type gatedPaymentStore struct {
	*fakePaymentStore
	checkBarrier *sync.WaitGroup
}

func (g *gatedPaymentStore) AnyCreditedByRef(ref string) (bool, error) {
	credited, err := g.fakePaymentStore.AnyCreditedByRef(ref)
	g.checkBarrier.Done()
	g.checkBarrier.Wait()
	return credited, err
}

func TestCreditConcurrentVerifications(t *testing.T) {
	wallets := newFakeWalletStore()
	inner := newFakePaymentStore()
	var barrier sync.WaitGroup
	barrier.Add(2)
	payments := &gatedPaymentStore{fakePaymentStore: inner, checkBarrier: &barrier}
	commission := NewCommissionService(newFakeProfileStore(), wallets, newFakeCommissionStore(), newFakeTransactionStore())
	svc := NewCreditService(wallets, payments, commission)

	require.NoError(t, wallets.Create(&models.Wallet{UserID: "u4"}))

	const utr = "555566667777"
	for i := 0; i < 5; i++ {
		_, err := svc.Ingest(PaymentEvent{UserID: "u4", Amount: 250, ExternalRef: utr, Source: models.PaymentSourceManual})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Credit(utr)
		}()
	}
	wg.Wait()

	// Both verifications passed the credited check before either claimed;
	// the claim decides the winner and the loser compensates its increment.
	w, err := wallets.ByUser("u4")
	require.NoError(t, err)
	assert.Equal(t, 250.0, w.RechargedAmount)
	assert.Equal(t, 1, inner.creditedCount(utr))
}

func TestCreditWithoutReferrerSkipsCommission(t *testing.T) {
	svc, wallets, _, profiles, commissions := newCreditFixture(t)

	orphan := &models.Profile{ID: "u5", Nickname: "Solo", PhoneNumber: "9000000005", ReferralCode: "REFU5"}
	require.NoError(t, profiles.Create(orphan))
	require.NoError(t, wallets.Create(&models.Wallet{UserID: "u5"}))

	const utr = "888899990000"
	_, err := svc.Ingest(PaymentEvent{UserID: "u5", Amount: 1000, ExternalRef: utr, Source: models.PaymentSourceManual})
	require.NoError(t, err)

	outcome, err := svc.Credit(utr)
	require.NoError(t, err)
	assert.Equal(t, CreditApplied, outcome)

	assert.Empty(t, commissions.entries)
	w, err := wallets.ByUser("u5")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, w.RechargedAmount)
	assert.Equal(t, 0.0, w.OrderIncome)
}
