package domain

import "github.com/shopspring/decimal"

// PaymentType identifies the payment instrument family.
type PaymentType string

const (
	PaymentTypeCreditCard PaymentType = "credit_card"
	PaymentTypeECheck     PaymentType = "echeck"
)

// Address holds a billing or shipping address block.
type Address struct {
	FirstName string
	LastName  string
	Street    string
	City      string
	State     string
	PostCode  string
	Country   string // ISO 3166-1 alpha-2
}

// CreditCard holds raw card details collected from the payment form.
type CreditCard struct {
	AccountNumber string
	ExpMonth      string // two digits, e.g. "01"
	ExpYear       string // two digits, e.g. "29"
	CSC           string // optional card security code
}

// BankAccount holds raw eCheck details collected from the payment form.
type BankAccount struct {
	RoutingNumber string
	AccountNumber string

	// AssentKey is the one-time authorization key generated client-side,
	// required when submitting raw eCheck account details.
	AssentKey string
}

// Payment describes the instrument paying for an order. Token and the raw
// detail structs are mutually exclusive: when Token is set, the stored
// reference is sent and the raw card/account data never goes on the wire.
type Payment struct {
	Type  PaymentType
	Token string
	Card  *CreditCard
	Check *BankAccount
}

// Order is the narrow view of a commerce-platform order that the gateway
// needs: amounts, addresses, contact info and payment method details. It
// carries no behavior and no reference back to the hosting platform.
type Order struct {
	Total         decimal.Decimal
	Tax           decimal.Decimal
	ShippingTotal decimal.Decimal

	Billing  Address
	Shipping *Address // nil when the order has no shipping address

	CustomerEmail string
	CustomerPhone string
	CustomerIP    string
	UserAgent     string
	Description   string

	// TransactionRef is the gateway transaction id of the original
	// authorization. Required for captures, unused otherwise.
	TransactionRef string

	Payment Payment
}

// PaymentToken is a reusable reference to a stored payment instrument,
// issued by a tokenization call.
type PaymentToken struct {
	ID            string
	Type          PaymentType
	LastFour      string
	AccountNumber string
	ExpMonth      string // credit card only
	ExpYear       string // credit card only
	Default       bool
}
