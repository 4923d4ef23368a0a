package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SunitaSingh93/Albergo/internal/booking"
	"github.com/SunitaSingh93/Albergo/internal/config"
	"github.com/SunitaSingh93/Albergo/internal/gateway"
	"github.com/SunitaSingh93/Albergo/internal/httpx"
	kafkax "github.com/SunitaSingh93/Albergo/internal/kafka"
	"github.com/SunitaSingh93/Albergo/internal/postgres"
	"github.com/SunitaSingh93/Albergo/internal/reconcile"
	"github.com/SunitaSingh93/Albergo/internal/redisx"
	"github.com/SunitaSingh93/Albergo/internal/rooms"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer (one writer, topic per message)
	prod := kafkax.NewProducer(cfg.KafkaBrokers, 1024)
	prod.Start(ctx)

	store := &postgres.Store{DB: db}
	engine := &booking.Service{Users: store, Rooms: store, Bookings: store}
	roomSvc := &rooms.Service{Rooms: store}
	rec := &reconcile.Reconciler{
		Bookings: store,
		Redis:    rdb,
		Producer: prod,
		Service:  cfg.ServiceName,
		Interval: cfg.ReconcileInterval,
	}

	validate := validator.New()
	router := httpx.NewRouter()
	bh := &httpx.BookingsHandler{
		Engine:     engine,
		Reconciler: rec,
		Redis:      rdb,
		Producer:   prod,
		Service:    cfg.ServiceName,
		Validate:   validate,
	}
	bh.Register(router)
	rh := &httpx.RoomsHandler{Rooms: roomSvc, Users: store, Validate: validate}
	rh.Register(router)
	ph := &httpx.PaymentsHandler{Gateway: &gateway.Stub{}, Rooms: roomSvc, Validate: validate}
	ph.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		// periodic reconciliation; stops with the group
		err := rec.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down...")
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("exit: %v", err)
	}
	prod.Close() // stop intake, flush and close the writer
	prod.WaitClosed()
}
