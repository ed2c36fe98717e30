package main

import (
	"fmt"
	"log"

	"gstbill/internal/config"
	"gstbill/internal/email/noop"
	"gstbill/internal/email/ses"
	"gstbill/internal/handler"
	"gstbill/internal/numbering"
	"gstbill/internal/port"
	"gstbill/internal/repository/postgres"
	"gstbill/internal/router"
	"gstbill/internal/service"
	s3storage "gstbill/internal/storage/s3"
)

// @title GSTBill API
// @version 1.0
// @description GST invoicing backend: sellers, buyers, products, invoices with tax computation, numbering, and exports.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	sellerRepo := postgres.NewSellerRepo(db)
	buyerRepo := postgres.NewBuyerRepo(db)
	productRepo := postgres.NewProductRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db, numbering.New())
	statsRepo := postgres.NewStatsRepo(db)
	attachmentRepo := postgres.NewAttachmentRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	sellerSvc := service.NewSellerService(sellerRepo)
	buyerSvc := service.NewBuyerService(buyerRepo)
	productSvc := service.NewProductService(productRepo, sellerRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, sellerRepo, buyerRepo, emailSender, cfg.Invoice.CreateRetries)
	statsSvc := service.NewStatsService(statsRepo, sellerRepo)
	fileSvc := service.NewFileService(attachmentRepo, invoiceRepo, s3Client, cfg.S3)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	sellerH := handler.NewSellerHandler(sellerSvc)
	buyerH := handler.NewBuyerHandler(buyerSvc)
	productH := handler.NewProductHandler(productSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	fileH := handler.NewFileHandler(fileSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins,
		authH, sellerH, buyerH, productH, invoiceH, fileH, statsH, userH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
