package netbilling

import (
	"net/url"
	"strings"

	"github.com/kevin07696/netbilling-gateway/internal/domain"
	"github.com/shopspring/decimal"
)

// Pay type codes understood by the direct mode 3.2 protocol.
const (
	PayTypeCreditCard = "C"
	PayTypeECheck     = "K"
)

// Transaction type codes.
const (
	TranTypeAuth    = "A"
	TranTypeCapture = "D"
	TranTypeSale    = "S"

	// TranTypeQuasi is the gateway's token-issuing "quasi-transaction". A
	// quasi-transaction skips bank-level checks such as CVV verification, so
	// tokenization is performed with a $0.00 auth instead; the code is kept
	// for protocol completeness.
	TranTypeQuasi = "Q"
)

// tokenPrefix marks a card_number value as a stored-instrument reference.
const tokenPrefix = "CS:"

// maskChar replaces sensitive characters in redacted serializations.
const maskChar = "X"

// fieldLengths is the per-field maximum length table from the direct mode
// protocol. Oversized values are silently clipped, never rejected.
var fieldLengths = map[string]int{
	"bill_name1":          20,
	"bill_name2":          20,
	"bill_street":         80,
	"bill_city":           40,
	"bill_state":          30,
	"bill_zip":            20,
	"bill_country":        2,
	"ship_name1":          20,
	"ship_name2":          20,
	"ship_street":         80,
	"ship_city":           40,
	"ship_state":          30,
	"ship_zip":            20,
	"ship_country":        2,
	"cust_email":          60,
	"cust_phone":          40,
	"cust_ip":             15,
	"site_tag":            12,
	"description":         4000,
	"user_data":           4000,
	"misc_info":           4000,
	"bill_photo_id_no":    20,
	"bill_photo_id_state": 2,
}

// Request builds the ordered parameter set for one direct mode transaction.
// A Request is created fresh per API call, populated by exactly one of the
// transaction builders, and discarded after serialization. Not safe for
// concurrent use; each call gets its own Request.
type Request struct {
	accountID string
	siteTag   string

	keys   []string
	params map[string]string

	order    *domain.Order
	filters  []RequestFilter
	prepared bool
}

// NewRequest returns an empty request carrying the merchant credentials that
// are appended to every transaction.
func NewRequest(accountID, siteTag string) *Request {
	return &Request{
		accountID: accountID,
		siteTag:   siteTag,
		params:    make(map[string]string),
	}
}

// CreditCardAuth populates an authorization-only request for the order.
func (r *Request) CreditCardAuth(order *domain.Order) {
	r.createTransaction(order, PayTypeCreditCard, TranTypeAuth)
}

// CreditCardCharge populates a sale (auth + capture) request for the order.
func (r *Request) CreditCardCharge(order *domain.Order) {
	r.createTransaction(order, PayTypeCreditCard, TranTypeSale)
}

// CheckSale populates an eCheck sale request for the order.
func (r *Request) CheckSale(order *domain.Order) {
	r.createTransaction(order, PayTypeECheck, TranTypeSale)
}

// CreditCardCapture populates a capture of the authorization referenced by
// order.TransactionRef. Captures carry no address or customer fields.
func (r *Request) CreditCardCapture(order *domain.Order) {
	r.order = order

	r.SetParameter("pay_type", PayTypeCreditCard)
	r.SetParameter("tran_type", TranTypeCapture)
	r.SetParameter("orig_id", order.TransactionRef)
	r.SetParameter("amount", order.Total.StringFixed(2))
}

// Tokenize stores the order's payment method by running a $0.00
// authorization with whichever payment branch matches the order. A real auth
// verifies the instrument at the issuing bank, which the quasi-transaction
// type would skip.
func (r *Request) Tokenize(order *domain.Order) {
	payType := PayTypeCreditCard
	if order.Payment.Type == domain.PaymentTypeECheck {
		payType = PayTypeECheck
	}

	zeroed := *order
	zeroed.Total = decimal.Zero

	r.createTransaction(&zeroed, payType, TranTypeAuth)
}

func (r *Request) createTransaction(order *domain.Order, payType, tranType string) {
	r.order = order

	r.SetParameter("pay_type", payType)
	r.SetParameter("tran_type", tranType)
	r.SetParameter("amount", order.Total.StringFixed(2))
	r.SetParameter("tax_amount", order.Tax.StringFixed(2))
	r.SetParameter("ship_amount", order.ShippingTotal.StringFixed(2))

	r.SetParameter("bill_name1", order.Billing.FirstName)
	r.SetParameter("bill_name2", order.Billing.LastName)
	r.SetParameter("bill_street", order.Billing.Street)
	r.SetParameter("bill_city", order.Billing.City)
	r.SetParameter("bill_state", order.Billing.State)
	r.SetParameter("bill_zip", order.Billing.PostCode)
	r.SetParameter("bill_country", order.Billing.Country)

	if order.Shipping != nil {
		r.SetParameter("ship_name1", order.Shipping.FirstName)
		r.SetParameter("ship_name2", order.Shipping.LastName)
		r.SetParameter("ship_street", order.Shipping.Street)
		r.SetParameter("ship_city", order.Shipping.City)
		r.SetParameter("ship_state", order.Shipping.State)
		r.SetParameter("ship_zip", order.Shipping.PostCode)
		r.SetParameter("ship_country", order.Shipping.Country)
	}

	r.SetParameter("cust_email", order.CustomerEmail)
	r.SetParameter("cust_phone", order.CustomerPhone)
	r.SetParameter("cust_ip", order.CustomerIP)
	r.SetParameter("cust_browser", order.UserAgent)
	r.SetParameter("description", order.Description)

	if payType == PayTypeCreditCard {
		r.addCreditCardParameters(order)
	} else {
		r.addECheckParameters(order)
	}

	// stored instruments retain no CVV, so CVV checks must be off
	if order.Payment.Token != "" {
		r.SetParameter("disable_cvv2", "true")
	}
}

func (r *Request) addCreditCardParameters(order *domain.Order) {
	// a saved card is referenced by its token, nothing else goes on the wire
	if order.Payment.Token != "" {
		r.SetParameter("card_number", tokenPrefix+order.Payment.Token)
		return
	}

	card := order.Payment.Card
	if card == nil {
		return
	}

	r.SetParameter("card_number", card.AccountNumber)
	r.SetParameter("card_expire", card.ExpMonth+card.ExpYear)

	if card.CSC != "" {
		r.SetParameter("card_cvv2", card.CSC)
	}
}

func (r *Request) addECheckParameters(order *domain.Order) {
	if order.Payment.Token != "" {
		r.SetParameter("card_number", tokenPrefix+order.Payment.Token)
		return
	}

	check := order.Payment.Check
	if check == nil {
		return
	}

	// account number is required in the format <routing number>:<account number>
	r.SetParameter("account_number", check.RoutingNumber+":"+check.AccountNumber)
	r.SetParameter("assent_key", check.AssentKey)
}

// SetParameter sets a request parameter. First insertion fixes the
// parameter's position in the serialized output; setting an existing key
// replaces its value in place.
func (r *Request) SetParameter(key, value string) {
	if _, ok := r.params[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.params[key] = value
}

// Parameter returns the current value for key, "" if unset.
func (r *Request) Parameter(key string) string {
	return r.params[key]
}

// ParameterKeys returns the parameter names in serialization order.
func (r *Request) ParameterKeys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Order returns the order associated with this request, if any.
func (r *Request) Order() *domain.Order {
	return r.order
}

// QueryString returns the wire form of the request: merchant credentials
// appended, oversized fields truncated, parameters form-url-encoded in
// insertion order with spaces as %20. The direct mode endpoint does not
// accept '+' encoded spaces.
func (r *Request) QueryString() string {
	r.prepare()
	return r.encode(r.params)
}

// String returns the request exactly as transmitted.
func (r *Request) String() string {
	return r.QueryString()
}

// SafeString returns the request with the account id fully masked, the card
// number masked except the trailing four characters, and any CVV fully
// masked. For logging and display only, never for transmission.
func (r *Request) SafeString() string {
	r.prepare()

	masked := make(map[string]string, len(r.params))
	for k, v := range r.params {
		masked[k] = v
	}

	masked["account_id"] = strings.Repeat(maskChar, len(masked["account_id"]))
	if v := masked["card_number"]; v != "" {
		masked["card_number"] = maskAllButLastFour(v)
	}
	if v := masked["card_cvv2"]; v != "" {
		masked["card_cvv2"] = strings.Repeat(maskChar, len(v))
	}

	return r.encode(masked)
}

// prepare appends the merchant credentials, runs the registered filters, then
// clips oversized fields. Filters run after the credential append so they can
// observe or override account_id and site_tag, and before truncation so their
// writes are subject to the length table. It runs once per request so that
// QueryString and SafeString can both be called and non-deterministic filters
// fire a single time.
func (r *Request) prepare() {
	if r.prepared {
		return
	}
	r.prepared = true

	r.SetParameter("account_id", r.accountID)
	r.SetParameter("site_tag", r.siteTag)

	for _, filter := range r.filters {
		filter(r, r.order)
	}

	r.truncateParameters()
}

// truncateParameters clips each value present in the length table to its
// maximum. Truncation is silent: the gateway accepts clipped input, it does
// not reject oversized fields. Fields outside the table are left untouched.
func (r *Request) truncateParameters() {
	for field, max := range fieldLengths {
		if v, ok := r.params[field]; ok && len(v) > max {
			r.params[field] = v[:max]
		}
	}
}

func (r *Request) encode(params map[string]string) string {
	var b strings.Builder
	for i, key := range r.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[key]))
	}

	// QueryEscape emits '+' for spaces; the wire format requires %20. A
	// literal '+' in a value has already been escaped to %2B, so this
	// substitution only touches spaces.
	return strings.ReplaceAll(b.String(), "+", "%20")
}

func maskAllButLastFour(v string) string {
	if len(v) <= 4 {
		return v
	}
	return strings.Repeat(maskChar, len(v)-4) + v[len(v)-4:]
}
