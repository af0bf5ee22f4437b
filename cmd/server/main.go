package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/minute-policy-service/pkg/common"
	"liyu1981.xyz/minute-policy-service/pkg/db"
	"liyu1981.xyz/minute-policy-service/pkg/family"
	minuteGrpc "liyu1981.xyz/minute-policy-service/pkg/grpc"
	minuteHttp "liyu1981.xyz/minute-policy-service/pkg/http"
	"liyu1981.xyz/minute-policy-service/pkg/seed"
)

const limiterIdle = 10 * time.Minute

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	dialector, err := db.UseDialector(os.Getenv(common.EnvKeyMinuteDBType))
	if err != nil {
		log.Fatal(err)
	}
	dbInstance := db.GetInstance(dialector)

	grpcHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyMinuteGrpcHostPort))
	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyMinuteHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyMinuteDefaultRate), 64); err != nil {
		log.Fatal("Invalid MINUTE_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyMinuteDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid MINUTE_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	logger := common.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := minuteHttp.NewHub()
	go hub.Run(ctx)

	fam := &family.Family{
		Db: *dbInstance,
	}
	fam.WithDefaultServices().WithServices(family.ServiceOpts{Notifier: hub})

	if common.IsEnvTrue(common.EnvKeyMinuteSeedDemo) {
		if err := seed.LoadDemo(fam, time.Now()); err != nil {
			log.Fatalf("failed to load demo household: %v", err)
		}
	}

	limiterInfo := zap.String("default_limiter",
		fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst))

	if grpcHostPort != "" {
		grpcLimiters := family.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst))
		go sweepLimiters(ctx, grpcLimiters)

		s := minuteGrpc.NewServer(&minuteGrpc.PolicyServer{
			Family:           fam,
			RateLimiterStore: grpcLimiters,
		})
		logger.Info("gRPC server created with:", limiterInfo)

		listener, err := net.Listen("tcp", grpcHostPort)
		if err != nil {
			log.Fatalf("failed to listen: %v", err)
		}

		go func() {
			logger.Info("start gRPC server on " + grpcHostPort)
			if err := s.Serve(listener); err != nil {
				log.Fatalf("grpc server failed to serve: %v", err)
			}
		}()
		go func() {
			<-ctx.Done()
			s.GracefulStop()
		}()
	}

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	if !common.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	httpLimiters := family.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst))
	go sweepLimiters(ctx, httpLimiters)

	rs := &minuteHttp.RestfulServer{
		Server:           gin.Default(),
		Family:           fam,
		RateLimiterStore: httpLimiters,
		Hub:              hub,
	}
	rs.Setup()

	logger.Info("http server created with:", limiterInfo)

	srv := &http.Server{
		Addr:    httpHostPort,
		Handler: rs.Server,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server failed to serve: %v", err)
	}
	logger.Info("server stopped")
}

func sweepLimiters(ctx context.Context, store *family.RateLimiterStore) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := store.Sweep(limiterIdle); dropped > 0 {
				common.GetLogger().Debug("idle limiters dropped", zap.Int("count", dropped))
			}
		}
	}
}
