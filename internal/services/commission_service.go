package services

import (
	"fmt"
	"log"

	"earnings-wallet/internal/models"
	"earnings-wallet/pkg/common"
)

// CommissionRate is the fixed share of a settled recharge paid to the
// upstream referrer.
const CommissionRate = 0.10

// SignupBonusAmount accrues to a referrer's pending bonus each time a
// referred account is created, independent of any recharge.
const SignupBonusAmount = 10.0

// CommissionService propagates referral earnings: the recharge cascade and
// the flat sign-up bonus with its explicit claim.
type CommissionService struct {
	Profiles     ProfileStore
	Wallets      WalletStore
	Commissions  CommissionStore
	Transactions TransactionStore
}

func NewCommissionService(profiles ProfileStore, wallets WalletStore, commissions CommissionStore, transactions TransactionStore) *CommissionService {
	return &CommissionService{
		Profiles:     profiles,
		Wallets:      wallets,
		Commissions:  commissions,
		Transactions: transactions,
	}
}

// Cascade credits the referrer of referredUserID with a share of base.
// Users without a referrer are a no-op returning nil. The wallet update is
// one atomic row increment, so concurrent cascades for the same referrer
// cannot lose each other's commission.
func (s *CommissionService) Cascade(referredUserID string, base float64) (*models.CommissionLog, error) {
	profile, err := s.Profiles.ByID(referredUserID)
	if err != nil {
		return nil, DependencyErr("failed to load referred user profile", err)
	}
	if profile.ReferrerID == nil {
		return nil, nil
	}

	commission := common.Round2(base * CommissionRate)
	if err := s.Wallets.IncrementReferralCommission(*profile.ReferrerID, commission); err != nil {
		return nil, DependencyErr("failed to credit referrer wallet", err)
	}

	entry := &models.CommissionLog{
		ReferrerID:       *profile.ReferrerID,
		ReferredUserID:   referredUserID,
		CommissionAmount: commission,
		InvestmentAmount: base,
	}
	if err := s.Commissions.Create(entry); err != nil {
		// The wallet credit stands; only the audit row is missing.
		return nil, DependencyErr("failed to write commission log", err)
	}

	log.Printf("commission of %.2f credited to referrer %s for referral %s", commission, *profile.ReferrerID, referredUserID)
	return entry, nil
}

// AccrueSignupBonus adds the flat bonus to the referrer's pending balance at
// account-creation time.
func (s *CommissionService) AccrueSignupBonus(referrerID string) error {
	if err := s.Wallets.IncrementPendingBonus(referrerID, SignupBonusAmount); err != nil {
		return DependencyErr("failed to accrue sign-up bonus", err)
	}
	return nil
}

// BonusClaimResult carries the post-claim balances returned to the user.
type BonusClaimResult struct {
	Claimed                  float64 `json:"claimed"`
	NewBalance               float64 `json:"new_balance"`
	NewOrderIncome           float64 `json:"new_order_income"`
	NewTotalReferralEarnings float64 `json:"new_total_referral_earnings"`
}

// ClaimBonus moves the caller's pending sign-up bonus into balance,
// withdrawable income and lifetime earnings in one guarded update, and
// records a completed bonus transaction. A zero or already-claimed bonus is
// rejected.
func (s *CommissionService) ClaimBonus(userID string) (*BonusClaimResult, error) {
	wallet, err := s.Wallets.ByUser(userID)
	if err != nil {
		return nil, NotFoundErr("user wallet not found")
	}

	amount := wallet.PendingReferralBonus
	if amount <= 0 {
		return nil, ConflictErr("no pending bonus to claim")
	}

	ok, err := s.Wallets.ClaimPendingBonus(userID, amount)
	if err != nil {
		return nil, DependencyErr("failed to update wallet for bonus claim", err)
	}
	if !ok {
		// The pending amount changed under us; the claim lost the race.
		return nil, ConflictErr("bonus already claimed")
	}

	trx := &models.Transaction{
		UserID:      userID,
		Amount:      amount,
		Type:        models.TrxSignupBonus,
		Status:      models.TrxCompleted,
		Description: fmt.Sprintf("Claimed %.2f referral signup bonus", amount),
	}
	if err := s.Transactions.Create(trx); err != nil {
		// Audit row only; the claim itself has settled.
		log.Printf("failed to record bonus claim transaction for user %s: %v", userID, err)
	}

	return &BonusClaimResult{
		Claimed:                  amount,
		NewBalance:               wallet.Balance + amount,
		NewOrderIncome:           wallet.OrderIncome + amount,
		NewTotalReferralEarnings: wallet.TotalReferralEarnings + amount,
	}, nil
}

// EarningsHistory lists the commission audit rows for a referrer.
func (s *CommissionService) EarningsHistory(referrerID string) ([]models.CommissionLog, error) {
	list, err := s.Commissions.ListByReferrer(referrerID)
	if err != nil {
		return nil, DependencyErr("failed to load commission history", err)
	}
	return list, nil
}
