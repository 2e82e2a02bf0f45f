// Command terminal sends a single transaction through the NETbilling direct
// mode client, intended for exercising a sandbox account from the shell.
//
// Credentials come from the environment (see internal/config); an optional
// .env file in the working directory is loaded first.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kevin07696/netbilling-gateway/internal/adapters/netbilling"
	"github.com/kevin07696/netbilling-gateway/internal/adapters/ports"
	"github.com/kevin07696/netbilling-gateway/internal/config"
	"github.com/kevin07696/netbilling-gateway/internal/domain"
	pkghttp "github.com/kevin07696/netbilling-gateway/pkg/http"
)

func main() {
	var (
		tranType = flag.String("type", "sale", "transaction type: sale, auth, capture, tokenize")
		amount   = flag.String("amount", "10.00", "transaction amount")
		card     = flag.String("card", "4111111111111111", "card number")
		expMonth = flag.String("exp-month", "12", "card expiration month (MM)")
		expYear  = flag.String("exp-year", "29", "card expiration year (YY)")
		csc      = flag.String("csc", "999", "card security code")
		origID   = flag.String("orig-id", "", "original transaction id (captures)")
	)
	flag.Parse()

	// optional .env for local sandbox credentials
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	timeout := time.Duration(cfg.Gateway.Timeout) * time.Second
	client := pkghttp.NewHTTPClient(pkghttp.GatewayClientConfig(), timeout)

	api := netbilling.NewApi(&netbilling.Config{
		Environment: cfg.Gateway.Environment,
		AccountID:   cfg.Gateway.AccountID,
		SiteTag:     cfg.Gateway.SiteTag,
		Timeout:     timeout,
	}, client, logger)

	// tag every request with a reference the gateway echoes back in reports
	api.AddRequestFilter(func(req *netbilling.Request, _ *domain.Order) {
		req.SetParameter("user_data", uuid.NewString())
	})

	total, err := decimal.NewFromString(*amount)
	if err != nil {
		logger.Fatal("invalid amount", zap.String("amount", *amount), zap.Error(err))
	}

	order := &domain.Order{
		Total: total,
		Billing: domain.Address{
			FirstName: "Test",
			LastName:  "Terminal",
			Street:    "123 Main St",
			City:      "Los Angeles",
			State:     "CA",
			PostCode:  "90010",
			Country:   "US",
		},
		CustomerEmail:  "terminal@example.com",
		CustomerIP:     "127.0.0.1",
		UserAgent:      "netbilling-gateway/terminal",
		Description:    "terminal test transaction",
		TransactionRef: *origID,
		Payment: domain.Payment{
			Type: domain.PaymentTypeCreditCard,
			Card: &domain.CreditCard{
				AccountNumber: *card,
				ExpMonth:      *expMonth,
				ExpYear:       *expYear,
				CSC:           *csc,
			},
		},
	}

	ctx := context.Background()

	var resp ports.GatewayResponse
	switch *tranType {
	case "sale":
		resp, err = api.CreditCardCharge(ctx, order)
	case "auth":
		resp, err = api.CreditCardAuthorization(ctx, order)
	case "capture":
		resp, err = api.CreditCardCapture(ctx, order)
	case "tokenize":
		resp, err = api.TokenizePaymentMethod(ctx, order)
	default:
		logger.Fatal("unknown transaction type", zap.String("type", *tranType))
	}
	if err != nil {
		logger.Fatal("transaction failed", zap.String("type", *tranType), zap.Error(err))
	}

	logger.Info("transaction result",
		zap.String("type", *tranType),
		zap.Bool("approved", resp.TransactionApproved()),
		zap.Bool("held", resp.TransactionHeld()),
		zap.String("message", resp.StatusMessage()),
		zap.String("trans_id", resp.TransactionID()),
		zap.String("auth_code", resp.AuthorizationCode()),
		zap.String("avs", resp.AVSResult()),
		zap.String("csc", resp.CSCResult()),
	)

	if *tranType == "tokenize" && resp.TransactionApproved() {
		token, err := resp.PaymentToken()
		if err != nil {
			logger.Fatal("payment token unavailable", zap.Error(err))
		}
		logger.Info("payment method stored",
			zap.String("token", token.ID),
			zap.String("last_four", token.LastFour),
		)
	}
}

func newLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	if level, err := zapcore.ParseLevel(cfg.Level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zapCfg.Build()
}
