package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"earnings-wallet/internal/models"
)

func newCommissionFixture(t *testing.T) (*CommissionService, *fakeWalletStore, *fakeProfileStore, *fakeCommissionStore, *fakeTransactionStore) {
	t.Helper()
	wallets := newFakeWalletStore()
	profiles := newFakeProfileStore()
	commissions := newFakeCommissionStore()
	transactions := newFakeTransactionStore()
	return NewCommissionService(profiles, wallets, commissions, transactions), wallets, profiles, commissions, transactions
}

func TestCascadeCreditsReferrer(t *testing.T) {
	svc, wallets, profiles, _, _ := newCommissionFixture(t)

	referrer := &models.Profile{ID: "r1", Nickname: "Referrer", PhoneNumber: "9100000001", ReferralCode: "CODE1"}
	require.NoError(t, profiles.Create(referrer))
	referred := &models.Profile{ID: "r2", Nickname: "Referred", PhoneNumber: "9100000002", ReferralCode: "CODE2", ReferrerID: &referrer.ID}
	require.NoError(t, profiles.Create(referred))
	require.NoError(t, wallets.Create(&models.Wallet{UserID: "r1"}))

	entry, err := svc.Cascade("r2", 1000)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 100.0, entry.CommissionAmount)
	assert.Equal(t, "r1", entry.ReferrerID)
	assert.Equal(t, "r2", entry.ReferredUserID)

	w, err := wallets.ByUser("r1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, w.OrderIncome)
	assert.Equal(t, 100.0, w.TotalReferralEarnings)
	assert.Equal(t, 0.0, w.Balance, "commission lands in order income, not spendable balance")
}

func TestCascadeWithoutReferrer(t *testing.T) {
	svc, _, profiles, commissions, _ := newCommissionFixture(t)

	solo := &models.Profile{ID: "r3", Nickname: "Solo", PhoneNumber: "9100000003", ReferralCode: "CODE3"}
	require.NoError(t, profiles.Create(solo))

	entry, err := svc.Cascade("r3", 1000)
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.Empty(t, commissions.entries)
}

func TestCascadeRoundsCommission(t *testing.T) {
	svc, wallets, profiles, _, _ := newCommissionFixture(t)

	referrer := &models.Profile{ID: "r4", Nickname: "Referrer", PhoneNumber: "9100000004", ReferralCode: "CODE4"}
	require.NoError(t, profiles.Create(referrer))
	referred := &models.Profile{ID: "r5", Nickname: "Referred", PhoneNumber: "9100000005", ReferralCode: "CODE5", ReferrerID: &referrer.ID}
	require.NoError(t, profiles.Create(referred))
	require.NoError(t, wallets.Create(&models.Wallet{UserID: "r4"}))

	entry, err := svc.Cascade("r5", 333.33)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 33.33, entry.CommissionAmount)
}

func TestClaimBonus(t *testing.T) {
	svc, wallets, _, _, transactions := newCommissionFixture(t)

	require.NoError(t, wallets.Create(&models.Wallet{UserID: "b1"}))
	require.NoError(t, svc.AccrueSignupBonus("b1"))
	require.NoError(t, svc.AccrueSignupBonus("b1"))

	result, err := svc.ClaimBonus("b1")
	require.NoError(t, err)
	assert.Equal(t, 20.0, result.Claimed)
	assert.Equal(t, 20.0, result.NewBalance)
	assert.Equal(t, 20.0, result.NewOrderIncome)

	w, err := wallets.ByUser("b1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, w.PendingReferralBonus)
	assert.Equal(t, 20.0, w.Balance)
	assert.Equal(t, 20.0, w.OrderIncome)
	assert.Equal(t, 20.0, w.TotalReferralEarnings)

	bonusTrx, err := transactions.ListByUserAndType("b1", models.TrxSignupBonus)
	require.NoError(t, err)
	require.Len(t, bonusTrx, 1)
	assert.Equal(t, models.TrxCompleted, bonusTrx[0].Status)
	assert.Equal(t, 20.0, bonusTrx[0].Amount)
}

func TestClaimBonusNothingPending(t *testing.T) {
	svc, wallets, _, _, _ := newCommissionFixture(t)
	require.NoError(t, wallets.Create(&models.Wallet{UserID: "b2"}))

	_, err := svc.ClaimBonus("b2")
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestClaimBonusConcurrentClaimsPayOnce(t *testing.T) {
	svc, wallets, _, _, _ := newCommissionFixture(t)
	require.NoError(t, wallets.Create(&models.Wallet{UserID: "b3"}))
	require.NoError(t, svc.AccrueSignupBonus("b3"))

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ClaimBonus("b3"); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	w, err := wallets.ByUser("b3")
	require.NoError(t, err)
	assert.Equal(t, 10.0, w.Balance)
	assert.Equal(t, 0.0, w.PendingReferralBonus)
}
