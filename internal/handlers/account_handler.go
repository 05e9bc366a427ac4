package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"earnings-wallet/internal/services"
	"earnings-wallet/pkg/common"
)

type AccountHandler struct {
	Accounts   *services.AccountService
	Commission *services.CommissionService
}

func NewAccountHandler(accounts *services.AccountService, commission *services.CommissionService) *AccountHandler {
	return &AccountHandler{Accounts: accounts, Commission: commission}
}

type createAccountRequest struct {
	Nickname     string `json:"nickname" binding:"required"`
	PhoneNumber  string `json:"phone_number" binding:"required"`
	ReferralCode string `json:"referral_code"`
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	profile, err := h.Accounts.CreateAccount(services.CreateAccountDTO{
		Nickname:     req.Nickname,
		PhoneNumber:  req.PhoneNumber,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(profile, "account created"))
}

func (h *AccountHandler) GetInviteData(c *gin.Context) {
	summary, err := h.Accounts.InviteData(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, summary, "invite data")
}

func (h *AccountHandler) GetTeamData(c *gin.Context) {
	team, err := h.Accounts.TeamData(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, team, "team data")
}

func (h *AccountHandler) ClaimBonus(c *gin.Context) {
	result, err := h.Commission.ClaimBonus(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result, "bonus claimed")
}

func (h *AccountHandler) GetEarningsHistory(c *gin.Context) {
	history, err := h.Commission.EarningsHistory(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, history, "earnings history")
}

type tradePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *AccountHandler) SetTradePassword(c *gin.Context) {
	var req tradePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	if err := h.Accounts.SetTradePassword(c.Param("userId"), req.Password); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "trade password set")
}

func (h *AccountHandler) VerifyTradePassword(c *gin.Context) {
	var req tradePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	ok, err := h.Accounts.VerifyTradePassword(c.Param("userId"), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"valid": ok}, "trade password checked")
}

type addBankCardRequest struct {
	AccountNumber     string `json:"account_number" binding:"required"`
	AccountHolderName string `json:"account_holder_name" binding:"required"`
	BankName          string `json:"bank_name" binding:"required"`
	IFSCCode          string `json:"ifsc_code" binding:"required"`
}

func (h *AccountHandler) AddBankCard(c *gin.Context) {
	var req addBankCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	card, err := h.Accounts.AddBankCard(services.AddBankCardDTO{
		UserID:            c.Param("userId"),
		AccountNumber:     req.AccountNumber,
		AccountHolderName: req.AccountHolderName,
		BankName:          req.BankName,
		IFSCCode:          req.IFSCCode,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(card, "bank card added"))
}

func (h *AccountHandler) GetBankCards(c *gin.Context) {
	cards, err := h.Accounts.BankCardList(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, cards, "bank cards")
}
