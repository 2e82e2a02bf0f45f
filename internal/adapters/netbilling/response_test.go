package netbilling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/netbilling-gateway/internal/domain"
)

func TestTransactionApproved_DefaultApprove(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		approved bool
	}{
		{"success", "status_code=1", true},
		{"auth only success", "status_code=T", true},
		{"pending is approved", "status_code=I", true},
		{"duplicate is approved", "status_code=D", true},
		{"unknown code is approved", "status_code=Z", true},
		{"absent code is approved", "auth_msg=whatever", true},
		{"failed", "status_code=0", false},
		{"eCheck settlement failure", "status_code=F", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewResponse(tt.body, nil)
			assert.Equal(t, tt.approved, resp.TransactionApproved())
		})
	}
}

func TestTransactionHeld(t *testing.T) {
	tests := []struct {
		body string
		held bool
	}{
		{"status_code=I", true},
		{"status_code=1", false},
		{"status_code=0", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			resp := NewResponse(tt.body, nil)
			assert.Equal(t, tt.held, resp.TransactionHeld())
		})
	}
}

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "success",
			body: "status_code=1&auth_msg=APPROVED",
			want: "Successful transaction (APPROVED)",
		},
		{
			name: "pending",
			body: "status_code=I&auth_msg=UNFUNDED",
			want: "Pending transaction (UNFUNDED)",
		},
		{
			name: "auth only success",
			body: "status_code=T&auth_msg=APPROVED",
			want: "Successful auth only transaction (APPROVED)",
		},
		{
			name: "failed",
			body: "status_code=0&auth_msg=DECLINED",
			want: "Failed transaction (DECLINED)",
		},
		{
			name: "eCheck failure",
			body: "status_code=F&auth_msg=RETURNED",
			want: "Settlement failure or returned eCheck transaction (RETURNED)",
		},
		{
			name: "duplicate",
			body: "status_code=D&auth_msg=DUPLICATE",
			want: "Duplicate transaction (DUPLICATE)",
		},
		{
			name: "unknown code",
			body: "status_code=Z&auth_msg=WHO%20KNOWS",
			want: "Unknown transaction (WHO KNOWS)",
		},
		{
			name: "missing message falls back to N/A",
			body: "status_code=1",
			want: "Successful transaction (N/A)",
		},
		{
			name: "secondary reason code appended",
			body: "status_code=0&auth_msg=DECLINED&reason_code2=INSUFFICIENT%20FUNDS",
			want: "Failed transaction (DECLINED - INSUFFICIENT FUNDS)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewResponse(tt.body, nil)
			assert.Equal(t, tt.want, resp.StatusMessage())
		})
	}
}

func TestFieldAccessors(t *testing.T) {
	body := "status_code=1&trans_id=114000000000&auth_code=057579&avs_code=X&cvv_code=M"
	resp := NewResponse(body, nil)

	assert.Equal(t, "1", resp.StatusCode())
	assert.Equal(t, "114000000000", resp.TransactionID())
	assert.Equal(t, "057579", resp.AuthorizationCode())
	assert.Equal(t, "X", resp.AVSResult())
	assert.Equal(t, "M", resp.CSCResult())
	assert.True(t, resp.CSCMatch())
}

func TestFieldAccessors_AbsentFieldsDegrade(t *testing.T) {
	resp := NewResponse("status_code=1", nil)

	assert.Empty(t, resp.TransactionID())
	assert.Empty(t, resp.AuthorizationCode())
	assert.Empty(t, resp.AVSResult())
	assert.Empty(t, resp.CSCResult())
	assert.False(t, resp.CSCMatch())
}

func TestCSCMatch_OnlyOnMatchCode(t *testing.T) {
	assert.True(t, NewResponse("cvv_code=M", nil).CSCMatch())
	assert.False(t, NewResponse("cvv_code=N", nil).CSCMatch())
	assert.False(t, NewResponse("", nil).CSCMatch())
}

func TestNewResponse_DuplicateKeysLastWins(t *testing.T) {
	resp := NewResponse("status_code=0&status_code=1", nil)
	assert.Equal(t, "1", resp.StatusCode())
}

func TestNewResponse_MalformedPairsSkipped(t *testing.T) {
	resp := NewResponse("garbage=%zz&status_code=1&=empty", nil)

	assert.Equal(t, "1", resp.StatusCode())
	assert.True(t, resp.TransactionApproved())
}

func TestPaymentToken_CreditCard(t *testing.T) {
	order := &domain.Order{
		Payment: domain.Payment{
			Type: domain.PaymentTypeCreditCard,
			Card: &domain.CreditCard{
				AccountNumber: "4111111111111111",
				ExpMonth:      "01",
				ExpYear:       "29",
			},
		},
	}

	resp := NewResponse("status_code=T&trans_id=114000000042", order)

	token, err := resp.PaymentToken()
	require.NoError(t, err)

	assert.Equal(t, "114000000042", token.ID)
	assert.Equal(t, domain.PaymentTypeCreditCard, token.Type)
	assert.Equal(t, "1111", token.LastFour)
	assert.Equal(t, "4111111111111111", token.AccountNumber)
	assert.Equal(t, "01", token.ExpMonth)
	assert.Equal(t, "29", token.ExpYear)
	assert.True(t, token.Default)
}

func TestPaymentToken_ECheck(t *testing.T) {
	order := &domain.Order{
		Payment: domain.Payment{
			Type: domain.PaymentTypeECheck,
			Check: &domain.BankAccount{
				RoutingNumber: "122000247",
				AccountNumber: "1234567890",
			},
		},
	}

	resp := NewResponse("status_code=T&trans_id=114000000043", order)

	token, err := resp.PaymentToken()
	require.NoError(t, err)

	assert.Equal(t, "114000000043", token.ID)
	assert.Equal(t, domain.PaymentTypeECheck, token.Type)
	assert.Equal(t, "7890", token.LastFour)
	assert.Empty(t, token.ExpMonth)
	assert.True(t, token.Default)
}

func TestPaymentToken_RequiresOrderContext(t *testing.T) {
	_, err := NewResponse("status_code=T&trans_id=1", nil).PaymentToken()
	assert.Error(t, err)
}

func TestPaymentToken_RequiresRawPaymentDetails(t *testing.T) {
	order := &domain.Order{
		Payment: domain.Payment{
			Type:  domain.PaymentTypeCreditCard,
			Token: "ALREADYSTORED",
		},
	}

	_, err := NewResponse("status_code=T&trans_id=1", order).PaymentToken()
	assert.Error(t, err)
}

func TestPaymentType(t *testing.T) {
	order := &domain.Order{Payment: domain.Payment{Type: domain.PaymentTypeECheck}}

	assert.Equal(t, domain.PaymentTypeECheck, NewResponse("", order).PaymentType())
	assert.Empty(t, NewResponse("", nil).PaymentType())
}

func TestSafeString_IdenticalToString(t *testing.T) {
	resp := NewResponse("status_code=1&trans_id=114000000000&auth_msg=APPROVED", nil)

	// direct mode replies carry no raw payment data
	assert.Equal(t, resp.String(), resp.SafeString())
	assert.Contains(t, resp.String(), "status_code=1")
	assert.Contains(t, resp.String(), "trans_id=114000000000")
}
