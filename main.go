package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"caseflow/config"
	"caseflow/cron"
	"caseflow/database"
	bankRepo "caseflow/database/repository/bank"
	caseRequestRepo "caseflow/database/repository/caserequest"
	fileRepo "caseflow/database/repository/file"
	settingsRepo "caseflow/database/repository/settings"
	userRepoPkg "caseflow/database/repository/user"
	"caseflow/handlers"
	"caseflow/middleware"
	"caseflow/routes"
	"caseflow/services/analysis"
	"caseflow/services/bank"
	"caseflow/services/caserequest"
	ai "caseflow/services/intelligence"
	"caseflow/services/settings"
	"caseflow/services/storage"
	"caseflow/services/tasks"
	"caseflow/services/user"
	"caseflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := &config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	mongoClient, err := database.Connect(rootCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	db := mongoClient.Database(cfg.DatabaseName)

	// Redis backs caching, delete confirmations and the cleanup queue. Without
	// it the service still runs, with those features degraded.
	redisUp := true
	if err := utils.InitRedis(); err != nil {
		redisUp = false
		logger.Warn("main: Redis unavailable, running without cache and cleanup worker", zap.Error(err))
	}
	cache := utils.GetCacheClient()
	authCache := utils.GetAuthCacheClient()

	blobs, err := storage.New(rootCtx, cfg)
	if err != nil {
		logger.Fatal("main: failed to initialize file storage", zap.Error(err))
	}
	logger.Info("main: file storage ready", zap.String("backend", blobs.Backend()))

	// repositories.
	usersRepo := userRepoPkg.NewMongoUserRepo(db)
	requestsRepo := caseRequestRepo.NewMongoCaseRequestRepo(db)
	banksRepo := bankRepo.NewMongoBankRepo(db)
	filesRepo := fileRepo.NewMongoFileRepo(db)
	settingsStore := settingsRepo.NewMongoSettingsRepo(db)

	// services.
	maxUpload := cfg.MaxUploadMB << 20
	fileService := &storage.FileService{
		Repo:     filesRepo,
		Storage:  blobs,
		Folder:   cfg.StorageFolder,
		MaxBytes: maxUpload,
	}
	userService := &user.DefaultUserService{
		Repo:      usersRepo,
		AuthCache: authCache,
		TokenTTL:  cfg.TokenTTL,
	}
	bankService := &bank.DefaultBankService{
		Repo:       banksRepo,
		Cache:      cache,
		SheetURL:   cfg.BankSheetURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
	settingsService := &settings.DefaultSettingsService{Repo: settingsStore}
	analysisService := analysis.NewService(bankService, fileService)
	extractionService := &ai.ExtractionService{
		Generator:   &ai.GeminiGenerator{Model: cfg.GeminiModel},
		Keys:        settingsService,
		Files:       fileService,
		FallbackKey: cfg.GeminiAPIKey,
		CreatePath:  cfg.CreateRequestPath,
	}

	requestService := &caserequest.DefaultCaseRequestService{
		Repo:  requestsRepo,
		Files: fileService,
	}
	var (
		queueClient   *asynq.Client
		cleanupWorker *asynq.Server
	)
	if redisUp {
		requestService.Confirmations = caserequest.NewRedisConfirmationStore(cache)
		queueClient = asynq.NewClient(cron.QueueRedisOpt())
		requestService.Cleanup = &tasks.CleanupQueue{Client: queueClient}
		if cleanupWorker, err = cron.InitCleanupWorker(fileService); err != nil {
			logger.Warn("main: deleted request files will not be cleaned up", zap.Error(err))
		}
	} else {
		requestService.Confirmations = caserequest.NewMemoryConfirmationStore()
	}

	guard := &middleware.AuthGuard{
		Users:     usersRepo,
		AuthCache: authCache,
		LoginURL:  cfg.LoginURL,
	}
	firebaseAuth, err := utils.FirebaseAuthClient(rootCtx)
	if err != nil {
		logger.Warn("main: Firebase sign-in disabled", zap.Error(err))
	} else if firebaseAuth != nil {
		guard.Firebase = firebaseAuth
	}

	var redisClients []*redis.Client
	if redisUp {
		redisClients = []*redis.Client{cache, authCache}
	}
	utils.StartHealthMonitor(rootCtx, 30*time.Second, redisClients, mongoClient)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:         &handlers.AuthHandler{Users: userService, SecureCookie: config.IsProduction()},
		CaseRequests: handlers.NewCaseRequestHandler(requestService, maxUpload),
		Files:        &handlers.FileHandler{Files: fileService, MaxUploadBytes: maxUpload},
		Analysis: &handlers.AnalysisHandler{
			Analyzer:       analysisService,
			Extractor:      extractionService,
			Files:          fileService,
			MaxUploadBytes: maxUpload,
		},
		Banks:        &handlers.BankHandler{Service: bankService},
		Notices:      &handlers.NoticeHandler{Requests: requestService},
		Settings:     &handlers.SettingsHandler{Service: settingsService},
		RequireUser:  guard.Middleware(),
		RequireAdmin: middleware.AdminAuthMiddleware(cfg.AdminToken),
	}

	// Create the Gin router.
	router := gin.New()
	router.MaxMultipartMemory = 32 << 20
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle, cfg.AllowedOrigins)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if cleanupWorker != nil {
		cleanupWorker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to disconnect MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
