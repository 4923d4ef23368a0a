package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/SunitaSingh93/Albergo/internal/config"
	"github.com/SunitaSingh93/Albergo/internal/hotel"
	kafkax "github.com/SunitaSingh93/Albergo/internal/kafka"
	"github.com/SunitaSingh93/Albergo/internal/notifier"
	"github.com/SunitaSingh93/Albergo/internal/redisx"
	"github.com/joho/godotenv"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &notifier.Service{
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-notifier",
	}

	group := getenv("NOTIFIER_GROUP", "notifier-svc")
	workers := mustAtoi(os.Getenv("NOTIFIER_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, hotel.BookingTopics, workers)

	log.Printf("notifier consumer started: group=%s workers=%d", group, workers)
	if err := cons.Start(ctx, svc.HandleBookingEvent); err != nil {
		log.Fatalf("consumer exit: %v", err)
	}
}
