package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zeecrown-admin/config"
	"zeecrown-admin/internal/delivery/http/middleware"
	v1 "zeecrown-admin/internal/delivery/http/v1"
	"zeecrown-admin/internal/infrastructure/cache"
	"zeecrown-admin/internal/repository/postgres"
	"zeecrown-admin/internal/usecase"
	"zeecrown-admin/pkg/logger"
	"zeecrown-admin/pkg/media"
	"zeecrown-admin/pkg/storage"
	"zeecrown-admin/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	pgxPool, err := postgres.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pgxPool.Close()
	log.Info().Msg("Successfully connected to PostgreSQL")

	// Repositories
	productRepo := postgres.NewProductRepository(pgxPool)
	orderRepo := postgres.NewOrderRepository(pgxPool)
	customerRepo := postgres.NewCustomerRepository(pgxPool)
	bannerRepo := postgres.NewBannerRepository(pgxPool)
	shippingRepo := postgres.NewShippingRuleRepository(pgxPool)
	txManager := postgres.NewTransactionManager(pgxPool)

	// Default expiration 10m, cleanup every 30m. Individual keys set their own TTL.
	memCache := cache.NewMemoryCache(10*time.Minute, 30*time.Minute)

	bucketStorage, err := storage.NewBucketStorage(
		context.Background(),
		cfg.StorageEndpoint,
		cfg.StorageRegion,
		cfg.StorageAccessKeyID,
		cfg.StorageAccessKeySecret,
		cfg.StoragePublicURL,
		cfg.StorageUploadTimeout,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize object storage")
	}

	format, err := media.ParseFormat(cfg.ImageFormat)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid IMAGE_FORMAT")
	}
	constraints := media.Constraints{
		MaxBytes:        cfg.ImageMaxBytes,
		MaxDimensionPx:  cfg.ImageMaxDimension,
		PreferredFormat: format,
		MaxPixels:       cfg.ImageMaxPixels,
	}

	// Usecases
	mediaUC := usecase.NewMediaUsecase(bucketStorage, constraints, cfg.ImageWorkers)
	catalogUC := usecase.NewCatalogUsecase(productRepo, mediaUC, memCache, cfg.ProductBucket)
	bannerUC := usecase.NewBannerUsecase(bannerRepo, mediaUC, cfg.BannerBucket)
	shippingUC := usecase.NewShippingUsecase(shippingRepo, txManager, memCache, cfg.CacheShippingTTL)
	orderUC := usecase.NewOrderUsecase(orderRepo, shippingUC, memCache)
	customerUC := usecase.NewCustomerUsecase(customerRepo, orderRepo, memCache)
	statsUC := usecase.NewStatsUsecase(productRepo, orderRepo, customerRepo, memCache, cfg.CacheStatsTTL)

	mux := http.NewServeMux()
	v1.RegisterRoutes(mux, v1.Handlers{
		Catalog:   v1.NewAdminCatalogHandler(catalogUC, cfg.MaxUploadSizeMB),
		Content:   v1.NewContentHandler(bannerUC, cfg.MaxUploadSizeMB),
		Orders:    v1.NewAdminOrderHandler(orderUC),
		Customers: v1.NewCustomerHandler(customerUC),
		Config:    v1.NewAdminConfigHandler(shippingUC),
		Stats:     v1.NewAdminStatsHandler(statsUC),
		Upload:    v1.NewUploadHandler(mediaUC, cfg.MaxUploadSizeMB, cfg.ProductBucket, cfg.BannerBucket),
	})

	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
	).TrustProxyHeaders(cfg.TrustProxyHeaders)

	// CORS -> Request Logger -> Rate Limit -> Gzip
	handler := middleware.NewCORSMiddleware(cfg.AllowedOrigin)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()
	logger.ServiceStart("zeecrown-admin", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")
	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop("zeecrown-admin")
}
