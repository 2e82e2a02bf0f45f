package mocks

import (
	"bytes"
	"io"
	"net/http"
)

// MockHTTPClient is a mock implementation of the HTTPClient port for testing.
type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
	Calls  []*http.Request
}

// NewMockHTTPClient creates a new mock HTTP client.
func NewMockHTTPClient(doFunc func(req *http.Request) (*http.Response, error)) *MockHTTPClient {
	return &MockHTTPClient{
		DoFunc: doFunc,
		Calls:  []*http.Request{},
	}
}

// Do executes the mock function and captures the call.
func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.Calls = append(m.Calls, req)
	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	// Default approved response
	return &http.Response{
		StatusCode: 200,
		Proto:      "HTTP/1.0",
		Status:     "200 OK",
		Body:       io.NopCloser(bytes.NewBufferString("status_code=1&auth_msg=TEST%20APPROVED&trans_id=114000000000")),
		Header:     make(http.Header),
	}, nil
}

// Reset clears captured calls.
func (m *MockHTTPClient) Reset() {
	m.Calls = []*http.Request{}
}
