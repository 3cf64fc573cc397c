package lib

import "net/http"

// HttpClient lets tests substitute the transport under any client
// that makes outbound requests.
type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}
