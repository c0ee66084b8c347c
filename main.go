package main

import (
	"log"
	"path/filepath"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"

	"github.com/nkapoor/interview-coach-api/config"
	"github.com/nkapoor/interview-coach-api/internal/handler"
	"github.com/nkapoor/interview-coach-api/internal/mailer"
	"github.com/nkapoor/interview-coach-api/internal/middleware"
	"github.com/nkapoor/interview-coach-api/internal/notifier"
	"github.com/nkapoor/interview-coach-api/internal/payment"
	"github.com/nkapoor/interview-coach-api/internal/repository"
	"github.com/nkapoor/interview-coach-api/internal/service"
	"github.com/nkapoor/interview-coach-api/internal/storage"
	"github.com/nkapoor/interview-coach-api/pkg/database"
	"github.com/nkapoor/interview-coach-api/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	store := storage.NewStore(cfg.UploadDir)
	gateway := payment.NewGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	mail := mailer.New(mailer.Config{
		Host:       cfg.SMTPHost,
		Username:   cfg.SMTPUser,
		Password:   cfg.SMTPPass,
		From:       cfg.SMTPFrom,
		AdminEmail: cfg.AdminEmail,
		Profiles: []mailer.TransportProfile{
			{Port: cfg.SMTPPort, SSL: cfg.SMTPSecure},
			{Port: cfg.SMTPFallbackPort, SSL: cfg.SMTPFallbackSecure},
		},
		QuestionBankPath:     cfg.QuestionBankStoragePath(),
		QuestionBankFallback: filepath.Join(cfg.UploadDir, cfg.QuestionBankFilename),
		QuestionBankFilename: cfg.QuestionBankFilename,
	})

	// RabbitMQ is optional: with RABBITMQ_URL set, notification jobs go
	// through the queue and are consumed in-process; without it the
	// dispatcher sends directly.
	var pub notifier.Publisher
	var mqConsumer *rabbitmq.Consumer
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Printf("[RabbitMQ] publisher unavailable, notifications will be sent directly: %v", err)
		} else {
			pub = p
			defer p.Close()
		}

		c, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Printf("[RabbitMQ] consumer unavailable: %v", err)
		} else {
			mqConsumer = c
			defer c.Close()
		}
	}

	dispatcher := notifier.NewDispatcher(pub, mail)
	if mqConsumer != nil {
		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Printf("[RabbitMQ] failed to start consuming: %v", err)
		} else {
			dispatcher.StartConsumer(msgs)
		}
	}

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	contactRepo := repository.NewContactRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)

	// Services
	bookingSvc := service.NewBookingService(bookingRepo, store, gateway, dispatcher, cfg.MockPaymentDelay)
	adminSvc := service.NewAdminService(bookingRepo, store, dispatcher)
	contactSvc := service.NewContactService(contactRepo, dispatcher)
	testimonialSvc := service.NewTestimonialService(testimonialRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "interview-coach-api"})
	})

	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewPaymentHandler(bookingSvc, gateway).RegisterRoutes(e)
	handler.NewContactHandler(contactSvc).RegisterRoutes(e)
	handler.NewTestimonialHandler(testimonialSvc).RegisterRoutes(e)

	adminGroup := e.Group("/api/v1/admin", middleware.AdminAuth(cfg.AdminUser, cfg.AdminPassword))
	handler.NewAdminHandler(bookingSvc, adminSvc, contactSvc, testimonialSvc, store).RegisterRoutes(adminGroup)

	log.Printf("Interview Coach API starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
