package ports

import "net/http"

// HTTPClient is the transport capability the gateway client consumes.
// *http.Client satisfies it; tests swap in a mock.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
