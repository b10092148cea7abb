package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"oumybeauty/internal/adapter/api"
	"oumybeauty/internal/adapter/api/handler"
	apimiddleware "oumybeauty/internal/adapter/api/middleware"
	"oumybeauty/internal/adapter/api/router"
	"oumybeauty/internal/adapter/repository"
	"oumybeauty/internal/domain/service"
	"oumybeauty/internal/infrastructure/imaging"
	"oumybeauty/internal/infrastructure/kvstore"
	"oumybeauty/internal/infrastructure/ratelimit"
	"oumybeauty/internal/infrastructure/storage"
	"oumybeauty/internal/usecase"
	"oumybeauty/pkg/config"
	"oumybeauty/pkg/logger"
)

// catalogNamespace is the bbolt bucket holding the catalog key.
const catalogNamespace = "oumy_beauty"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Options{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		Filename:    cfg.LogFile,
	}); err != nil {
		logger.Error("Failed to initialize logger: %v", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	kv, err := kvstore.OpenBoltStore(cfg.CatalogDBPath, catalogNamespace, cfg.CatalogQuotaBytes)
	if err != nil {
		logger.Error("Failed to open local catalog store %s: %v", cfg.CatalogDBPath, err)
		os.Exit(1)
	}
	defer kv.Close()

	var (
		firestoreClient *firestore.Client
		objectStorage   service.ObjectStorage
	)
	if cfg.Remote.Enabled() {
		opts := remoteClientOptions(cfg.Remote)

		firestoreClient, err = firestore.NewClient(ctx, cfg.Remote.ProjectID, opts...)
		if err != nil {
			logger.Error("Failed to create Firestore client: %v", err)
			os.Exit(1)
		}
		defer firestoreClient.Close()

		storageClient, err := storage.NewCloudStorageClient(ctx, cfg.Remote.Bucket, cfg.Remote.PublicBaseURL, opts...)
		if err != nil {
			logger.Error("Failed to initialize Cloud Storage: %v", err)
			os.Exit(1)
		}
		defer storageClient.Close()
		objectStorage = storageClient

		logger.Info("Remote catalog enabled: project %s, table %s, bucket %s", cfg.Remote.ProjectID, cfg.Remote.Table, cfg.Remote.Bucket)
	} else {
		logger.Warn("Remote catalog not configured (REMOTE_PROJECT_ID / REMOTE_CREDENTIALS missing), running local-only")
	}

	localCatalog := repository.NewLocalCatalogRepository(kv, cfg.CatalogSeedOnEmpty)
	remoteCatalog := repository.NewFirestoreCatalogBridge(firestoreClient, objectStorage, cfg.Remote.Table)

	imageOpts := imaging.Options{MaxBytes: cfg.Image.MaxBytes, StrictSize: cfg.Image.StrictSize}
	var images service.ImageMaterializer = imaging.NewInlineMaterializer(imageOpts)
	if cfg.Image.Strategy == config.ImageStrategyRemote {
		if objectStorage != nil {
			images = imaging.NewRemoteMaterializer(objectStorage, imageOpts)
		} else {
			logger.Warn("IMAGE_STRATEGY=remote needs the remote catalog, falling back to inline images")
		}
	}

	catalogUseCase := usecase.NewCatalogUseCase(localCatalog, remoteCatalog, images, cfg.Image.FailurePolicy)
	authUseCase := usecase.NewAuthUseCase(usecase.AdminCredentials{ID: cfg.AdminID, Secret: cfg.AdminSecret})
	checkoutUseCase := usecase.NewCheckoutUseCase(catalogUseCase, cfg.Site)

	handler.Setup(catalogUseCase, authUseCase, checkoutUseCase, cfg.Site)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(bodyLimit(cfg.Image.MaxBytes)))
	e.Use(apimiddleware.Sessions(cfg.SessionSecret, cfg.Environment == "production"))

	e.Validator = api.NewValidator()

	stop := make(chan struct{})
	loginLimiter := ratelimit.NewKeyedLimiter(5, 12*time.Second)
	loginLimiter.StartCleanupRoutine(30*time.Minute, time.Hour, stop)

	adminMiddleware := apimiddleware.NewAdminMiddleware(authUseCase)
	router.Setup(e, adminMiddleware, loginLimiter)

	// seed images referenced as /assets/...
	e.Static("/assets", "assets")

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	close(stop)

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}

// remoteClientOptions accepts REMOTE_CREDENTIALS either as inline
// service-account JSON or as a path to it.
func remoteClientOptions(remote config.RemoteConfig) []option.ClientOption {
	creds := strings.TrimSpace(remote.Credentials)
	switch {
	case strings.HasPrefix(creds, "{"):
		logger.Info("Using remote service account from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	case creds != "":
		logger.Info("Using remote service account from file: %s", creds)
		return []option.ClientOption{option.WithCredentialsFile(creds)}
	default:
		logger.Info("Using Firestore emulator at %s", remote.EmulatorHost)
		return []option.ClientOption{option.WithoutAuthentication()}
	}
}

// bodyLimit leaves room for multipart framing around the largest image.
func bodyLimit(maxImageBytes int64) string {
	mb := maxImageBytes/(1024*1024) + 2
	return strconv.FormatInt(mb, 10) + "M"
}
