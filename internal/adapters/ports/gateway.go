package ports

import (
	"context"

	"github.com/kevin07696/netbilling-gateway/internal/domain"
)

// GatewayResponse is the parsed direct mode reply.
//
// Approval classification is approve-by-default per the gateway protocol:
// any status code other than the two failure codes is a success, including
// codes this integration has never seen.
type GatewayResponse interface {
	// StatusCode returns the raw transaction status code, "" if absent.
	StatusCode() string

	// TransactionApproved reports whether the gateway approved the transaction.
	TransactionApproved() bool

	// TransactionHeld reports whether the transaction is pending, such as an
	// unfunded eCheck payment.
	TransactionHeld() bool

	// StatusMessage returns a human-readable outcome description.
	StatusMessage() string

	TransactionID() string
	AuthorizationCode() string
	AVSResult() string
	CSCResult() string
	CSCMatch() bool

	// PaymentType returns the payment type of the originating order.
	PaymentType() domain.PaymentType

	// PaymentToken builds the stored-instrument token after a tokenize call.
	PaymentToken() (*domain.PaymentToken, error)

	// String is the full serialization; SafeString the loggable one.
	String() string
	SafeString() string
}

// PaymentGatewayAPI is the set of direct mode operations this integration
// supports. The gateway does not support refunds, voids or eCheck debits in
// this integration, so those operations are deliberately absent.
type PaymentGatewayAPI interface {
	// CreditCardCharge performs a sale (auth + capture) for the order.
	CreditCardCharge(ctx context.Context, order *domain.Order) (GatewayResponse, error)

	// CreditCardAuthorization authorizes the order amount without capturing.
	CreditCardAuthorization(ctx context.Context, order *domain.Order) (GatewayResponse, error)

	// CreditCardCapture captures a previous authorization referenced by
	// order.TransactionRef.
	CreditCardCapture(ctx context.Context, order *domain.Order) (GatewayResponse, error)

	// TokenizePaymentMethod stores the order's payment method for later use.
	TokenizePaymentMethod(ctx context.Context, order *domain.Order) (GatewayResponse, error)
}
