package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/xavierca1/sales-os/internal/config"
	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/infra/cache"
	"github.com/xavierca1/sales-os/internal/infra/database"
	"github.com/xavierca1/sales-os/internal/infra/http/handlers"
	"github.com/xavierca1/sales-os/internal/infra/http/middleware"
	"github.com/xavierca1/sales-os/internal/infra/mail"
	"github.com/xavierca1/sales-os/internal/infra/queue"
	"github.com/xavierca1/sales-os/internal/infra/realtime"
	"github.com/xavierca1/sales-os/internal/infra/worker"
	"github.com/xavierca1/sales-os/internal/logger"
	"github.com/xavierca1/sales-os/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("error").Error("❌ Configuração inválida", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel).With("env", cfg.Environment)
	log.Info("🔧 Configuração carregada", "project", cfg.ProjectID())

	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Warn("⚠️ Falha ao iniciar Sentry", "error", err)
		} else {
			log.Info("✅ Sentry iniciado")
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("❌ Servidor encerrado com erro", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	// 1. Banco e feed realtime
	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := realtime.EnsureTriggers(ctx, db, cfg.RealtimeChannel); err != nil {
		return err
	}

	feed, err := realtime.NewFeed(cfg.DatabaseURL, cfg.RealtimeChannel, log)
	if err != nil {
		return err
	}
	go feed.Run(ctx)

	// 2. Dependências opcionais
	var prefsStore entity.PreferencesStore
	var redisPinger handlers.RedisPinger
	if cfg.RedisURL != "" {
		redisClient, err := cache.NewClient(cfg.RedisURL)
		if err != nil {
			log.Warn("⚠️ Redis indisponível, preferências ficam no padrão", "error", err)
		} else {
			defer redisClient.Close()
			prefsStore = cache.NewPreferencesStore(redisClient)
			redisPinger = redisClient
			log.Info("✅ Redis conectado")
		}
	}

	var rabbit *queue.RabbitMQ
	if cfg.RabbitMQURL != "" {
		rabbit, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Warn("⚠️ RabbitMQ indisponível, intake grava direto", "error", err)
			rabbit = nil
		} else {
			defer rabbit.Close()
			log.Info("✅ RabbitMQ conectado")
		}
	}

	// 3. Repositórios
	leadRepo := database.NewLeadRepository(db)
	vendorRepo := database.NewVendorRepository(db)
	notificationRepo := database.NewNotificationRepository(db)

	// 4. UseCases
	board := usecase.NewBoard(leadRepo, log)
	inbox := usecase.NewInbox(notificationRepo, log)
	prefsUC := usecase.NewPreferencesUseCase(prefsStore, log)
	intakeUC := usecase.NewIntakeLeadUseCase(leadRepo, log)

	var publisher usecase.LeadEventPublisher
	var intakePublisher handlers.IntakePublisher
	var brokerConn handlers.BrokerConn
	if rabbit != nil {
		producer := queue.NewProducer(rabbit.Ch)
		publisher = producer
		intakePublisher = producer
		brokerConn = rabbit.Conn

		var sales queue.SaleNotifier
		if cfg.MailEnabled() {
			sales = mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.SaleAlertFrom, cfg.SaleAlertTo)
		}
		w := queue.NewWorker(rabbit.Ch, intakeUC, sales, log)
		go func() {
			if err := w.Start(ctx); err != nil {
				log.Error("❌ Worker parou", "error", err)
			}
		}()
	}

	moveUC := usecase.NewMoveLeadUseCase(board, leadRepo, vendorRepo, publisher, log)
	createUC := usecase.NewCreateLeadUseCase(leadRepo, vendorRepo, log)
	updateUC := usecase.NewUpdateLeadUseCase(leadRepo, board, log)
	boardViewUC := usecase.NewBoardViewUseCase(board, prefsUC)
	rankingUC := usecase.NewRankingUseCase(leadRepo, vendorRepo, cfg.AvatarBaseURL())
	dashboardUC := usecase.NewDashboardUseCase(leadRepo)
	profileUC := usecase.NewProfileUseCase(vendorRepo, cfg.AvatarBaseURL())

	// 5. Workers em background
	sub := feed.Subscribe("")
	defer sub.Close()
	go usecase.NewFeedSync(board, inbox, log).Run(ctx, sub.Events())

	go worker.NewSLAMonitor(board, middleware.SetUrgencyGauge, cfg.SLATick, log).Start(ctx)

	// 6. Handlers e router
	limiter := middleware.NewRateLimiter(cfg.IntakeRateLimit)
	defer limiter.Close()

	router := newRouter(cfg, log, routes{
		Health:        handlers.NewHealthHandler(db, brokerConn, redisPinger),
		Webhook:       handlers.NewWebhookHandler(intakePublisher, intakeUC, cfg.WebhookSecret, log),
		Lead:          handlers.NewLeadHandler(createUC, updateUC, log),
		Board:         handlers.NewBoardHandler(boardViewUC, moveUC, board.Events(), log),
		Report:        handlers.NewReportHandler(rankingUC, dashboardUC, log),
		Notification:  handlers.NewNotificationHandler(inbox, inbox.Events(), log),
		Settings:      handlers.NewSettingsHandler(prefsUC, profileUC, log),
		IntakeLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("🔥 Sales OS rodando", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("⚠️ Encerrando servidor...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
