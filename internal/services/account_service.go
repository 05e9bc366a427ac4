package services

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"earnings-wallet/internal/models"
	"earnings-wallet/pkg/common"
)

// AccountService provisions user accounts with their wallet and referral
// edge, and owns the account-adjacent features: invite/team views, trade
// passwords and bank cards.
type AccountService struct {
	Profiles     ProfileStore
	Wallets      WalletStore
	Payments     PaymentStore
	Transactions TransactionStore
	BankCards    BankCardStore
	Commission   *CommissionService
}

func NewAccountService(profiles ProfileStore, wallets WalletStore, payments PaymentStore, transactions TransactionStore, bankCards BankCardStore, commission *CommissionService) *AccountService {
	return &AccountService{
		Profiles:     profiles,
		Wallets:      wallets,
		Payments:     payments,
		Transactions: transactions,
		BankCards:    bankCards,
		Commission:   commission,
	}
}

type CreateAccountDTO struct {
	Nickname     string
	PhoneNumber  string
	ReferralCode string
}

// CreateAccount provisions a profile and its zeroed wallet. An invalid
// referral code does not block signup; the account is simply created without
// a referrer. A valid code also accrues the referrer's claimable signup
// bonus.
func (s *AccountService) CreateAccount(data CreateAccountDTO) (*models.Profile, error) {
	if data.Nickname == "" {
		return nil, ValidationErr("nickname is required")
	}
	if !isDigits(data.PhoneNumber) || len(data.PhoneNumber) != 10 {
		return nil, ValidationErr("phone number must be exactly 10 digits")
	}

	var referrerID *string
	if data.ReferralCode != "" {
		referrer, err := s.Profiles.ByReferralCode(data.ReferralCode)
		if err != nil {
			log.Printf("signup with unknown referral code %q, continuing without referrer", data.ReferralCode)
		} else {
			referrerID = &referrer.ID
		}
	}

	profile := &models.Profile{
		ID:           uuid.NewString(),
		Nickname:     data.Nickname,
		PhoneNumber:  data.PhoneNumber,
		ReferralCode: common.GenerateReferralCode(),
		ReferrerID:   referrerID,
	}
	if err := s.Profiles.Create(profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ConflictErr("phone number already registered")
		}
		return nil, DependencyErr("failed to create account", err)
	}

	if err := s.Wallets.Create(&models.Wallet{UserID: profile.ID}); err != nil {
		if derr := s.Profiles.Delete(profile.ID); derr != nil {
			log.Printf("failed to unwind profile %s after wallet creation failure: %v", profile.ID, derr)
		}
		return nil, DependencyErr("failed to create wallet", err)
	}

	if referrerID != nil {
		if err := s.Commission.AccrueSignupBonus(*referrerID); err != nil {
			log.Printf("failed to accrue signup bonus for referrer %s: %v", *referrerID, err)
		}
	}

	return profile, nil
}

// TeamMember is one row of the referrer's team view.
type TeamMember struct {
	Nickname    string `json:"nickname"`
	PhoneNumber string `json:"phone_number"`
	Active      bool   `json:"active"`
	JoinedAt    string `json:"joined_at"`
}

// InviteSummary backs the invite page: the user's code, share link and
// referral stats.
type InviteSummary struct {
	ReferralCode       string  `json:"referral_code"`
	InvitationLink     string  `json:"invitation_link"`
	TotalReferrals     int     `json:"total_referrals"`
	ActivatedReferrals int     `json:"activated_referrals"`
	TotalEarnings      float64 `json:"total_earnings"`
	PendingBonus       float64 `json:"pending_bonus"`
	CanClaimBonus      bool    `json:"can_claim_bonus"`
}

// InviteData assembles the invite summary. A referral counts as activated
// once it has any settled recharge on either deposit channel.
func (s *AccountService) InviteData(userID string) (*InviteSummary, error) {
	profile, err := s.Profiles.ByID(userID)
	if err != nil {
		return nil, NotFoundErr("user not found")
	}
	wallet, err := s.Wallets.ByUser(userID)
	if err != nil {
		return nil, NotFoundErr("user wallet not found")
	}

	referred, err := s.Profiles.ListByReferrer(userID)
	if err != nil {
		return nil, DependencyErr("failed to load referrals", err)
	}

	activated := 0
	for _, r := range referred {
		active, aerr := s.isActivated(r.ID)
		if aerr != nil {
			return nil, aerr
		}
		if active {
			activated++
		}
	}

	base := os.Getenv("FRONTEND_SIGNUP_BASE_URL")
	return &InviteSummary{
		ReferralCode:       profile.ReferralCode,
		InvitationLink:     fmt.Sprintf("%s?ref=%s", base, profile.ReferralCode),
		TotalReferrals:     len(referred),
		ActivatedReferrals: activated,
		TotalEarnings:      wallet.TotalReferralEarnings,
		PendingBonus:       wallet.PendingReferralBonus,
		CanClaimBonus:      wallet.PendingReferralBonus > 0,
	}, nil
}

// TeamData lists the user's direct referrals with masked phone numbers.
func (s *AccountService) TeamData(userID string) ([]TeamMember, error) {
	referred, err := s.Profiles.ListByReferrer(userID)
	if err != nil {
		return nil, DependencyErr("failed to load team", err)
	}

	members := make([]TeamMember, 0, len(referred))
	for _, r := range referred {
		active, aerr := s.isActivated(r.ID)
		if aerr != nil {
			return nil, aerr
		}
		members = append(members, TeamMember{
			Nickname:    r.Nickname,
			PhoneNumber: common.MaskPhone(r.PhoneNumber),
			Active:      active,
			JoinedAt:    r.CreatedAt.Format("2006-01-02"),
		})
	}
	return members, nil
}

func (s *AccountService) isActivated(userID string) (bool, error) {
	settled, err := s.Payments.HasSettled(userID)
	if err != nil {
		return false, DependencyErr("failed to check referral activity", err)
	}
	if settled {
		return true, nil
	}
	recharged, err := s.Transactions.HasSettledRecharge(userID)
	if err != nil {
		return false, DependencyErr("failed to check referral activity", err)
	}
	return recharged, nil
}

// SetTradePassword hashes and stores the withdrawal confirmation password.
func (s *AccountService) SetTradePassword(userID, password string) error {
	if len(password) < 6 {
		return ValidationErr("trade password must be at least 6 characters")
	}
	if _, err := s.Profiles.ByID(userID); err != nil {
		return NotFoundErr("user not found")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return DependencyErr("failed to hash trade password", err)
	}
	if err := s.Profiles.SetTradePasswordHash(userID, string(hash)); err != nil {
		return DependencyErr("failed to save trade password", err)
	}
	return nil
}

// VerifyTradePassword reports whether the password matches the stored hash.
// A mismatch is (false, nil); errors mean the check could not run.
func (s *AccountService) VerifyTradePassword(userID, password string) (bool, error) {
	profile, err := s.Profiles.ByID(userID)
	if err != nil {
		return false, NotFoundErr("user not found")
	}
	if profile.TradePasswordHash == "" {
		return false, ConflictErr("trade password not set")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.TradePasswordHash), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}

type AddBankCardDTO struct {
	UserID            string
	AccountNumber     string
	AccountHolderName string
	BankName          string
	IFSCCode          string
}

// AddBankCard validates and stores a payout destination.
func (s *AccountService) AddBankCard(data AddBankCardDTO) (*models.BankCard, error) {
	if data.AccountNumber == "" || data.AccountHolderName == "" || data.BankName == "" {
		return nil, ValidationErr("account number, holder name and bank name are required")
	}
	if !isValidIFSC(data.IFSCCode) {
		return nil, ValidationErr("invalid ifsc code")
	}
	card := &models.BankCard{
		UserID:            data.UserID,
		AccountNumber:     data.AccountNumber,
		AccountHolderName: data.AccountHolderName,
		BankName:          data.BankName,
		IFSCCode:          data.IFSCCode,
	}
	if err := s.BankCards.Create(card); err != nil {
		return nil, DependencyErr("failed to save bank card", err)
	}
	return card, nil
}

func (s *AccountService) BankCardList(userID string) ([]models.BankCard, error) {
	cards, err := s.BankCards.ListByUser(userID)
	if err != nil {
		return nil, DependencyErr("failed to load bank cards", err)
	}
	return cards, nil
}

// isValidIFSC checks the standard format: 4 letters, a zero, then 6
// alphanumerics.
func isValidIFSC(code string) bool {
	if len(code) != 11 {
		return false
	}
	for i := 0; i < 4; i++ {
		c := code[i]
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	if code[4] != '0' {
		return false
	}
	for i := 5; i < 11; i++ {
		c := code[i]
		isAlnum := (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isAlnum {
			return false
		}
	}
	return true
}
