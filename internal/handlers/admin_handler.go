package handlers

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"earnings-wallet/internal/services"
	"earnings-wallet/pkg/common"
)

type AdminHandler struct {
	Payments    *services.PaymentService
	Withdrawals *services.WithdrawalService
}

func NewAdminHandler(payments *services.PaymentService, withdrawals *services.WithdrawalService) *AdminHandler {
	return &AdminHandler{Payments: payments, Withdrawals: withdrawals}
}

type adminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the configured admin credentials and issues a short-lived JWT.
// ADMIN_PASSWORD_HASH holds a bcrypt hash, never the plain password.
func (h *AdminHandler) Login(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	adminUser := os.Getenv("ADMIN_USERNAME")
	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminUser == "" || adminHash == "" {
		c.JSON(http.StatusServiceUnavailable, common.NewErrorResponse("admin login not configured", nil, http.StatusServiceUnavailable))
		return
	}
	if req.Username != adminUser ||
		bcrypt.CompareHashAndPassword([]byte(adminHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("invalid credentials", nil, http.StatusUnauthorized))
		return
	}

	claims := jwt.MapClaims{
		"sub":  req.Username,
		"role": "admin",
		"exp":  time.Now().Add(12 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("failed to issue token", nil, http.StatusInternalServerError))
		return
	}
	respondOK(c, gin.H{"token": signed}, "login successful")
}

func (h *AdminHandler) GetPendingPayments(c *gin.Context) {
	records, err := h.Payments.PendingManualPayments()
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, records, "pending payments")
}

type verifyUTRRequest struct {
	UTRNumber string `json:"utr_number" binding:"required"`
}

func (h *AdminHandler) VerifyManualPayment(c *gin.Context) {
	var req verifyUTRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	outcome, err := h.Payments.VerifyManualPayment(req.UTRNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"outcome": outcome}, "payment verified")
}

func (h *AdminHandler) RejectManualPayment(c *gin.Context) {
	var req verifyUTRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}
	affected, err := h.Payments.RejectManualPayment(req.UTRNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"rejected": affected}, "payment rejected")
}

func (h *AdminHandler) GetPendingWithdrawals(c *gin.Context) {
	records, err := h.Withdrawals.PendingRequests()
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, records, "pending withdrawals")
}

type resolveWithdrawalRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

func (h *AdminHandler) ResolveWithdrawal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("invalid transaction id", nil, http.StatusBadRequest))
		return
	}

	var req resolveWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	if err := h.Withdrawals.Resolve(uint(id), req.Status, req.Notes); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "withdrawal resolved")
}
