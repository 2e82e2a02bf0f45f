package netbilling

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/kevin07696/netbilling-gateway/internal/domain"
)

// Transaction status codes returned in the status_code response field.
const (
	StatusCodeSuccess      = "1"
	StatusCodeAuthSuccess  = "T"
	StatusCodePending      = "I"
	StatusCodeFailed       = "0"
	StatusCodeECheckFailed = "F"
	StatusCodeDuplicate    = "D"
)

// cscMatchCode is the cvv_code value for a successful CSC check.
const cscMatchCode = "M"

// Response is the parsed direct mode reply: a flat URL-decoded parameter map
// with typed accessors and the outcome classification. The parameter map is
// never mutated after construction.
type Response struct {
	params map[string]string
	order  *domain.Order
}

// NewResponse parses the raw URL-encoded response body. order supplies the
// payment details needed to build a payment token after a tokenize call and
// may be nil for any other transaction.
//
// Parsing is deliberately permissive, matching the gateway's own guidance:
// duplicate keys keep the last occurrence, pairs that fail to decode are
// dropped, and absent fields degrade to empty accessors rather than errors.
func NewResponse(body string, order *domain.Order) *Response {
	params := make(map[string]string)

	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}

		params[key] = value
	}

	return &Response{params: params, order: order}
}

// StatusCode returns the raw transaction status code, "" if the reply
// carried none.
func (r *Response) StatusCode() string {
	return r.params["status_code"]
}

// TransactionApproved reports whether the transaction was approved.
//
// Per the direct mode protocol: "Any unexpected status code other than '0'
// and 'F' should be interpreted as a successful transaction." Unknown or
// future codes are therefore approvals, not failures.
func (r *Response) TransactionApproved() bool {
	code := r.StatusCode()
	return code != StatusCodeFailed && code != StatusCodeECheckFailed
}

// TransactionHeld reports whether the transaction is pending, such as an
// unfunded eCheck payment.
func (r *Response) TransactionHeld() bool {
	return r.StatusCode() == StatusCodePending
}

// StatusMessage returns a human-readable outcome description: the gateway's
// auth_msg (or "N/A" when missing), any secondary reason code, wrapped in a
// phrasing selected by status code.
func (r *Response) StatusMessage() string {
	message := r.params["auth_msg"]
	if message == "" {
		message = "N/A"
	}

	// occasionally carries additional detail about a decline
	if reason := r.params["reason_code2"]; reason != "" {
		message = fmt.Sprintf("%s - %s", message, reason)
	}

	switch r.StatusCode() {
	case StatusCodeSuccess:
		return fmt.Sprintf("Successful transaction (%s)", message)
	case StatusCodePending:
		return fmt.Sprintf("Pending transaction (%s)", message)
	case StatusCodeAuthSuccess:
		return fmt.Sprintf("Successful auth only transaction (%s)", message)
	case StatusCodeFailed:
		return fmt.Sprintf("Failed transaction (%s)", message)
	case StatusCodeECheckFailed:
		return fmt.Sprintf("Settlement failure or returned eCheck transaction (%s)", message)
	case StatusCodeDuplicate:
		return fmt.Sprintf("Duplicate transaction (%s)", message)
	default:
		return fmt.Sprintf("Unknown transaction (%s)", message)
	}
}

// TransactionID returns the gateway transaction id, "" if absent.
func (r *Response) TransactionID() string {
	return r.params["trans_id"]
}

// AuthorizationCode returns the 6 character code from the processing bank
// indicating the charge will be paid by the card issuer, "" if absent.
func (r *Response) AuthorizationCode() string {
	return r.params["auth_code"]
}

// AVSResult returns the address verification result, "" if absent.
func (r *Response) AVSResult() string {
	return r.params["avs_code"]
}

// CSCResult returns the card security code verification result, "" if absent.
func (r *Response) CSCResult() string {
	return r.params["cvv_code"]
}

// CSCMatch reports whether the CSC check succeeded.
func (r *Response) CSCMatch() bool {
	return r.CSCResult() == cscMatchCode
}

// PaymentType returns the payment type of the originating order, "" when the
// response was parsed without order context.
func (r *Response) PaymentType() domain.PaymentType {
	if r.order == nil {
		return ""
	}
	return r.order.Payment.Type
}

// PaymentToken builds the stored-instrument token issued by a tokenize call.
// The gateway uses the tokenization transaction id as the token id; the
// instrument details come from the originating order.
func (r *Response) PaymentToken() (*domain.PaymentToken, error) {
	if r.order == nil {
		return nil, errors.New("no order associated with this response")
	}

	payment := r.order.Payment

	token := &domain.PaymentToken{
		ID:      r.TransactionID(),
		Type:    payment.Type,
		Default: true,
	}

	switch {
	case payment.Type == domain.PaymentTypeCreditCard && payment.Card != nil:
		token.AccountNumber = payment.Card.AccountNumber
		token.ExpMonth = payment.Card.ExpMonth
		token.ExpYear = payment.Card.ExpYear
	case payment.Type == domain.PaymentTypeECheck && payment.Check != nil:
		token.AccountNumber = payment.Check.AccountNumber
	default:
		return nil, errors.New("order carries no raw payment details to tokenize")
	}

	token.LastFour = lastFour(token.AccountNumber)

	return token, nil
}

// String returns the decoded parameter map in a stable key order.
func (r *Response) String() string {
	keys := make([]string, 0, len(r.params))
	for k := range r.params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%s", k, r.params[k])
	}
	return b.String()
}

// SafeString returns the loggable form of the response. Direct mode replies
// carry no raw payment data, so it is identical to String.
func (r *Response) SafeString() string {
	return r.String()
}

func lastFour(s string) string {
	if len(s) <= 4 {
		return s
	}
	return s[len(s)-4:]
}
