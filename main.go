package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	appinventory "github.com/techsolutions/salescore/internal/application/inventory"
	appnotify "github.com/techsolutions/salescore/internal/application/notification"
	apppayment "github.com/techsolutions/salescore/internal/application/payment"
	appreport "github.com/techsolutions/salescore/internal/application/report"
	domproduct "github.com/techsolutions/salescore/internal/domain/product"
	"github.com/techsolutions/salescore/internal/domain/user"
	"github.com/techsolutions/salescore/internal/infrastructure/gateway"
	httptransport "github.com/techsolutions/salescore/internal/infrastructure/http"
	"github.com/techsolutions/salescore/internal/infrastructure/id"
	"github.com/techsolutions/salescore/internal/infrastructure/memory"
	"github.com/techsolutions/salescore/internal/infrastructure/notify"
	infraobs "github.com/techsolutions/salescore/internal/infrastructure/observability"
	"github.com/techsolutions/salescore/internal/infrastructure/observability/oteltrace"
	"github.com/techsolutions/salescore/internal/infrastructure/observability/prometrics"
	"github.com/techsolutions/salescore/internal/infrastructure/observability/zaplogger"
	inframreport "github.com/techsolutions/salescore/internal/infrastructure/report"
	"github.com/techsolutions/salescore/internal/observability"
)

func main() {
	serviceName := getenvDefault("SERVICE_NAME", "salescore")
	env := getenvDefault("ENV", "dev")
	addr := getenvDefault("HTTP_ADDR", ":8080")

	logger := zaplogger.New(
		observability.F("service", serviceName),
		observability.F("env", env),
	)

	metrics := prometrics.New(serviceName, "")
	counters := map[observability.MetricKey]observability.Counter{
		observability.MUsecaseRequests: metrics.Counter(
			string(observability.MUsecaseRequests),
			"Total number of use case invocations.",
			"use_case", "outcome",
		),
		observability.MHTTPRequests: metrics.Counter(
			string(observability.MHTTPRequests),
			"Total number of HTTP requests.",
			"method", "route", "status",
		),
		observability.MPaymentsProcessed: metrics.Counter(
			string(observability.MPaymentsProcessed),
			"Payments processed per gateway and outcome.",
			"gateway", "outcome",
		),
		observability.MReportDenials: metrics.Counter(
			string(observability.MReportDenials),
			"Report access denials by reason.",
			"reason",
		),
		observability.MStockNotifications: metrics.Counter(
			string(observability.MStockNotifications),
			"Low-stock notices delivered per subscriber role.",
			"role",
		),
	}
	histograms := map[observability.MetricKey]observability.Histogram{
		observability.MUsecaseDuration: metrics.Histogram(
			string(observability.MUsecaseDuration),
			"Duration of use case execution in seconds.",
			nil,
			"use_case",
		),
		observability.MHTTPRequestDuration: metrics.Histogram(
			string(observability.MHTTPRequestDuration),
			"Duration of HTTP request handling in seconds.",
			nil,
			"method", "route",
		),
	}
	tel := infraobs.New(oteltrace.New(serviceName), logger, counters, histograms)

	paymentService := apppayment.NewService(id.NewUUIDGenerator(), tel)
	paymentService.Register("paypal", gateway.NewPayPal(logger))
	paymentService.Register("yape", gateway.NewYape(logger))
	paymentService.Register("plin", gateway.NewPlin(logger))

	reportService := appreport.NewService(inframreport.NewGenerator(logger), tel)

	hub := appnotify.NewHub(tel)
	hub.Register(notify.NewUserSubscriber(
		user.New("gerente", true, user.RoleManager), logger))
	hub.Register(notify.NewUserSubscriber(
		user.New("compras", true, user.RolePurchasing), logger))

	productRepo := memory.NewProductRepository()
	seedProducts(productRepo, logger)
	inventoryService := appinventory.NewService(productRepo, hub, tel)

	handler := httptransport.NewHandler(paymentService, reportService, inventoryService, tel)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router())

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http_server_start",
			observability.F("addr", server.Addr),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error",
				observability.F("error", err.Error()),
			)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error",
			observability.F("error", err.Error()),
		)
	} else {
		logger.Info("http_server_stopped")
	}
}

// seedProducts loads a small demo catalog so stock mutations have something
// to act on without the excluded persistence layer.
func seedProducts(repo *memory.ProductRepository, logger observability.Logger) {
	seeds := []struct {
		id, name       string
		stock, minimum int
	}{
		{"P-001", "Laptop HP Pavilion", 15, 5},
		{"P-002", "Mouse Logitech MX", 40, 10},
		{"P-003", "Monitor LG 27\"", 8, 10},
	}
	for _, s := range seeds {
		p, err := domproduct.New(s.id, s.name, s.stock, s.minimum)
		if err != nil {
			logger.Error("seed_product_invalid",
				observability.F("product_id", s.id),
				observability.F("error", err.Error()),
			)
			continue
		}
		if err := repo.Save(context.Background(), p); err != nil {
			logger.Error("seed_product_failed",
				observability.F("product_id", s.id),
				observability.F("error", err.Error()),
			)
		}
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
