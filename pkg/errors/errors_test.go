package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *PaymentError
		want string
	}{
		{
			name: "gateway rejection",
			err:  NewPaymentError("604", "Missing Parameter (pay_type)", CategoryInvalidRequest, false),
			want: "604: Missing Parameter (pay_type)",
		},
		{
			name: "transport failure with cause",
			err:  NewPaymentError("", "gateway unreachable", CategoryNetworkError, true).WithCause(errors.New("dial tcp: timeout")),
			want: "gateway unreachable: dial tcp: timeout",
		},
		{
			name: "bare message",
			err:  NewPaymentError("", "gateway unreachable", CategoryNetworkError, true),
			want: "gateway unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestPaymentError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewPaymentError("", "gateway unreachable", CategoryNetworkError, true).WithCause(cause)

	assert.ErrorIs(t, fmt.Errorf("charge: %w", err), cause)
}
