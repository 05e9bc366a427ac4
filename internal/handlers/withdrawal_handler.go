package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"earnings-wallet/internal/services"
	"earnings-wallet/pkg/common"
)

type WithdrawalHandler struct {
	Withdrawals *services.WithdrawalService
	Accounts    *services.AccountService
}

func NewWithdrawalHandler(withdrawals *services.WithdrawalService, accounts *services.AccountService) *WithdrawalHandler {
	return &WithdrawalHandler{Withdrawals: withdrawals, Accounts: accounts}
}

type withdrawRequest struct {
	UserID        string  `json:"user_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	TradePassword string  `json:"trade_password" binding:"required"`
	BankCardID    uint    `json:"bank_card_id"`

	AccountNumber     string `json:"account_number" binding:"required"`
	AccountHolderName string `json:"account_holder_name" binding:"required"`
	BankName          string `json:"bank_name" binding:"required"`
	IFSCCode          string `json:"ifsc_code" binding:"required"`
}

func (h *WithdrawalHandler) RequestWithdrawal(c *gin.Context) {
	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	ok, err := h.Accounts.VerifyTradePassword(req.UserID, req.TradePassword)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, common.NewErrorResponse("invalid trade password", nil, http.StatusForbidden))
		return
	}

	ticket, err := h.Withdrawals.Request(services.WithdrawRequestDTO{
		UserID:     req.UserID,
		Amount:     req.Amount,
		BankCardID: req.BankCardID,
		BankDetails: services.BankDetails{
			AccountNumber:     req.AccountNumber,
			AccountHolderName: req.AccountHolderName,
			BankName:          req.BankName,
			IFSCCode:          req.IFSCCode,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(ticket, "withdrawal request submitted"))
}

func (h *WithdrawalHandler) GetWithdrawalRecords(c *gin.Context) {
	records, err := h.Withdrawals.Records(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, records, "withdrawal records")
}
