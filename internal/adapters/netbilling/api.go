package netbilling

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kevin07696/netbilling-gateway/internal/adapters/ports"
	"github.com/kevin07696/netbilling-gateway/internal/domain"
	pkgerrors "github.com/kevin07696/netbilling-gateway/pkg/errors"
	"go.uber.org/zap"
)

// Direct mode 3.2 endpoints. The gateway listens on non-default ports, so
// the caller's network stack must permit outbound 1401/1402.
const (
	ProductionEndpoint = "https://secure.netbilling.com:1402/gw/sas/direct3.2"
	TestEndpoint       = "http://secure.netbilling.com:1401/gw/sas/direct3.2"
)

// EnvironmentProduction selects the live endpoint; any other value selects
// the test endpoint.
const EnvironmentProduction = "production"

// RequestFilter can extend or modify the parameter set of an outgoing
// request during serialization. Filters run after the merchant credentials
// are applied, so they may observe or override account_id and site_tag, and
// before field truncation, so oversized writes are still clipped.
type RequestFilter func(req *Request, order *domain.Order)

// Config holds the read-only gateway client configuration.
type Config struct {
	Environment string
	AccountID   string
	SiteTag     string

	// Timeout bounds the full round-trip per call. Zero means the context
	// deadline alone applies.
	Timeout time.Duration
}

// DefaultConfig returns the client configuration defaults for an environment.
func DefaultConfig(environment string) *Config {
	return &Config{
		Environment: environment,
		Timeout:     30 * time.Second,
	}
}

// Api is the direct mode client. It is stateless across calls: one request
// and one response object per call, no shared mutable state beyond the
// read-only configuration, so it is safe for concurrent use once filters are
// registered.
//
// Every call is at-most-once. Payment submissions are not idempotent by
// default, so the client never retries; a failed call is surfaced to the
// caller, who decides whether to resubmit.
type Api struct {
	endpoint   string
	accountID  string
	siteTag    string
	timeout    time.Duration
	httpClient ports.HTTPClient
	logger     *zap.Logger
	filters    []RequestFilter
}

var _ ports.PaymentGatewayAPI = (*Api)(nil)

// NewApi creates a direct mode client for the configured environment.
func NewApi(cfg *Config, client ports.HTTPClient, logger *zap.Logger) *Api {
	endpoint := TestEndpoint
	if cfg.Environment == EnvironmentProduction {
		endpoint = ProductionEndpoint
	}

	return &Api{
		endpoint:   endpoint,
		accountID:  cfg.AccountID,
		siteTag:    cfg.SiteTag,
		timeout:    cfg.Timeout,
		httpClient: client,
		logger:     logger,
	}
}

// Endpoint returns the URL this client posts to.
func (a *Api) Endpoint() string {
	return a.endpoint
}

// AddRequestFilter registers a filter applied to every outgoing request
// before serialization. Not safe to call concurrently with transactions.
func (a *Api) AddRequestFilter(f RequestFilter) {
	a.filters = append(a.filters, f)
}

// CreditCardCharge performs a sale (auth + capture) for the order.
func (a *Api) CreditCardCharge(ctx context.Context, order *domain.Order) (ports.GatewayResponse, error) {
	req := a.newRequest()
	req.CreditCardCharge(order)
	return a.perform(ctx, "sale", req, order)
}

// CreditCardAuthorization authorizes the order amount without capturing.
func (a *Api) CreditCardAuthorization(ctx context.Context, order *domain.Order) (ports.GatewayResponse, error) {
	req := a.newRequest()
	req.CreditCardAuth(order)
	return a.perform(ctx, "auth", req, order)
}

// CreditCardCapture captures the authorization referenced by
// order.TransactionRef.
func (a *Api) CreditCardCapture(ctx context.Context, order *domain.Order) (ports.GatewayResponse, error) {
	req := a.newRequest()
	req.CreditCardCapture(order)
	return a.perform(ctx, "capture", req, order)
}

// TokenizePaymentMethod stores the order's payment method for later use via
// a $0.00 authorization.
func (a *Api) TokenizePaymentMethod(ctx context.Context, order *domain.Order) (ports.GatewayResponse, error) {
	req := a.newRequest()
	req.Tokenize(order)
	return a.perform(ctx, "tokenize", req, order)
}

func (a *Api) newRequest() *Request {
	req := NewRequest(a.accountID, a.siteTag)
	req.filters = a.filters
	return req
}

func (a *Api) perform(ctx context.Context, tranType string, req *Request, order *domain.Order) (ports.GatewayResponse, error) {
	body := req.QueryString()

	a.logger.Debug("sending direct mode request",
		zap.String("tran_type", tranType),
		zap.String("request", req.SafeString()),
	)

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()

	httpResp, err := a.httpClient.Do(httpReq)
	if err != nil {
		observeTransportError(tranType)
		a.logger.Error("direct mode request failed",
			zap.String("tran_type", tranType),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, pkgerrors.NewPaymentError("", "gateway unreachable", pkgerrors.CategoryNetworkError, true).WithCause(err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		observeTransportError(tranType)
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	elapsed := time.Since(start)

	if httpResp.StatusCode != http.StatusOK {
		message := ExtractStatusMessage(rawStatusLine(httpResp), httpResp.StatusCode)
		a.logger.Error("direct mode call rejected",
			zap.String("tran_type", tranType),
			zap.Int("http_status", httpResp.StatusCode),
			zap.String("status_message", message),
			zap.Duration("elapsed", elapsed),
		)
		observeCall(tranType, "rejected", elapsed)
		return nil, statusClassError(httpResp.StatusCode, message)
	}

	resp := NewResponse(string(respBody), order)

	observeCall(tranType, outcomeLabel(resp), elapsed)

	a.logger.Info("direct mode call completed",
		zap.String("tran_type", tranType),
		zap.String("status_code", resp.StatusCode()),
		zap.String("status_message", resp.StatusMessage()),
		zap.String("trans_id", resp.TransactionID()),
		zap.Bool("approved", resp.TransactionApproved()),
		zap.Duration("elapsed", elapsed),
	)

	return resp, nil
}

// rawStatusLine rebuilds the status line text the gateway sent; net/http has
// already split it into proto and status.
func rawStatusLine(resp *http.Response) string {
	return resp.Proto + " " + resp.Status
}

// statusClassError maps the direct mode HTTP status classes onto error
// categories: 600-698 invalid input, 700-798 processing error, 699 and 799
// exceptions.
func statusClassError(code int, message string) *pkgerrors.PaymentError {
	category := pkgerrors.CategorySystemError
	retriable := true
	if code >= 600 && code <= 698 {
		category = pkgerrors.CategoryInvalidRequest
		retriable = false
	}
	return pkgerrors.NewPaymentError(strconv.Itoa(code), message, category, retriable)
}

func outcomeLabel(resp *Response) string {
	switch {
	case resp.TransactionHeld():
		return "held"
	case resp.TransactionApproved():
		return "approved"
	default:
		return "declined"
	}
}
