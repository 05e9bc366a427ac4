package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"earnings-wallet/internal/services"
	"earnings-wallet/pkg/common"
)

type PaymentHandler struct {
	Payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

type submitPaymentRequest struct {
	UserID       string  `json:"user_id" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
	UTRNumber    string  `json:"utr_number" binding:"required"`
	MobileNumber string  `json:"mobile_number" binding:"required"`
}

func (h *PaymentHandler) SubmitManualPayment(c *gin.Context) {
	var req submitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	record, err := h.Payments.SubmitManualPayment(services.ManualPaymentDTO{
		UserID:       req.UserID,
		Amount:       req.Amount,
		UTRNumber:    req.UTRNumber,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(record, "payment submitted for verification"))
}

func (h *PaymentHandler) GetRechargeRecords(c *gin.Context) {
	records, err := h.Payments.RechargeRecords(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, records, "recharge records")
}

type createOrderRequest struct {
	UserID string  `json:"user_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

func (h *PaymentHandler) CreateGatewayOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	order, err := h.Payments.CreateGatewayOrder(req.UserID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(order, "order created"))
}

type verifyPaymentRequest struct {
	UserID            string  `json:"user_id" binding:"required"`
	RazorpayOrderID   string  `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string  `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string  `json:"razorpay_signature" binding:"required"`
	Amount            float64 `json:"amount" binding:"required"`
}

func (h *PaymentHandler) VerifyGatewayPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	outcome, err := h.Payments.VerifyGatewayPayment(services.GatewayCallbackDTO{
		UserID:    req.UserID,
		OrderID:   req.RazorpayOrderID,
		PaymentID: req.RazorpayPaymentID,
		Signature: req.RazorpaySignature,
		Amount:    req.Amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"outcome": outcome}, "payment verified")
}
