package netbilling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractStatusMessage(t *testing.T) {
	tests := []struct {
		name       string
		rawHeaders string
		code       int
		want       string
	}{
		{
			name:       "missing parameter detail",
			rawHeaders: "HTTP/1.0 604 Missing Parameter (pay_type)\nContent-Type: text/plain\n",
			code:       604,
			want:       "Missing Parameter (pay_type)",
		},
		{
			name:       "CRLF line endings",
			rawHeaders: "HTTP/1.0 611 Invalid Card Number\r\nContent-Type: text/plain\r\n\r\n",
			code:       611,
			want:       "Invalid Card Number",
		},
		{
			name:       "continuation line folded into status line",
			rawHeaders: "HTTP/1.0 699 Exception\n\tdetail follows\nContent-Type: text/plain\n",
			code:       699,
			want:       "Exception detail follows",
		},
		{
			name:       "processing error",
			rawHeaders: "HTTP/1.0 701 Invalid account number\nServer: direct3.2\n",
			code:       701,
			want:       "Invalid account number",
		},
		{
			name:       "status line only",
			rawHeaders: "HTTP/1.0 605 Invalid Credentials",
			code:       605,
			want:       "Invalid Credentials",
		},
		{
			name:       "code absent from line leaves text intact",
			rawHeaders: "Some unexpected banner\nHeader: x\n",
			code:       604,
			want:       "Some unexpected banner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractStatusMessage(tt.rawHeaders, tt.code))
		})
	}
}
