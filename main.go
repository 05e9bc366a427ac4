package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"earnings-wallet/internal/database"
	"earnings-wallet/internal/handlers"
	"earnings-wallet/internal/middleware"
	"earnings-wallet/internal/repository"
	"earnings-wallet/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Repositories
	walletRepo := repository.NewWalletRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	bankCardRepo := repository.NewBankCardRepository(db)
	callbackRepo := repository.NewCallbackRepository(db)

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Services
	telegramService := services.NewTelegramService(asynqClient)
	razorpayService := services.NewRazorpayService()

	commissionService := services.NewCommissionService(profileRepo, walletRepo, commissionRepo, transactionRepo)
	creditService := services.NewCreditService(walletRepo, paymentRepo, commissionService)
	paymentService := services.NewPaymentService(paymentRepo, transactionRepo, callbackRepo, creditService, razorpayService, telegramService)
	withdrawalService := services.NewWithdrawalService(walletRepo, paymentRepo, transactionRepo, telegramService)
	accountService := services.NewAccountService(profileRepo, walletRepo, paymentRepo, transactionRepo, bankCardRepo, commissionService)

	// Handlers
	accountHandler := handlers.NewAccountHandler(accountService, commissionService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService, accountService)
	adminHandler := handlers.NewAdminHandler(paymentService, withdrawalService)

	// Initialize Gin
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome To Earnings Wallet service",
		})
	})

	// Account routes
	r.POST("/accounts", accountHandler.CreateAccount)
	r.GET("/accounts/:userId/invite", accountHandler.GetInviteData)
	r.GET("/accounts/:userId/team", accountHandler.GetTeamData)
	r.GET("/accounts/:userId/earnings", accountHandler.GetEarningsHistory)
	r.POST("/accounts/:userId/bonus/claim", accountHandler.ClaimBonus)
	r.POST("/accounts/:userId/trade-password", accountHandler.SetTradePassword)
	r.POST("/accounts/:userId/trade-password/verify", accountHandler.VerifyTradePassword)
	r.POST("/accounts/:userId/bank-cards", accountHandler.AddBankCard)
	r.GET("/accounts/:userId/bank-cards", accountHandler.GetBankCards)

	// Payment routes
	r.POST("/payments/manual", paymentHandler.SubmitManualPayment)
	r.GET("/payments/recharge/:userId", paymentHandler.GetRechargeRecords)
	r.POST("/payments/orders", paymentHandler.CreateGatewayOrder)
	r.POST("/payments/verify", paymentHandler.VerifyGatewayPayment)

	// Withdrawal routes
	r.POST("/withdrawals", withdrawalHandler.RequestWithdrawal)
	r.GET("/withdrawals/:userId", withdrawalHandler.GetWithdrawalRecords)

	// Admin routes
	r.POST("/admin/login", adminHandler.Login)
	admin := r.Group("/admin", middleware.AdminAuth())
	{
		admin.GET("/payments/pending", adminHandler.GetPendingPayments)
		admin.POST("/payments/verify", adminHandler.VerifyManualPayment)
		admin.POST("/payments/reject", adminHandler.RejectManualPayment)
		admin.GET("/withdrawals/pending", adminHandler.GetPendingWithdrawals)
		admin.POST("/withdrawals/:id/resolve", adminHandler.ResolveWithdrawal)
	}

	// Start Cron Schedulers
	paymentService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
