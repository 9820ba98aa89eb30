package ingest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type httpSendFunction func(*http.Client, *http.Request) (*http.Response, error)

// httpStack is the outbound HTTP path for a single client. The sender is
// injectable so tests can redirect requests without touching the transport.
type httpStack struct {
	client *http.Client
	sender httpSendFunction
}

func newHTTPStack() *httpStack {
	return &httpStack{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		sender: func(c *http.Client, r *http.Request) (*http.Response, error) {
			return c.Do(r)
		},
	}
}

// send performs a request through the stack's client. Transport failures
// classify as ErrBackendUnreachable; status handling is left to the caller
// since the meaning of a 4xx differs per endpoint.
func (s *httpStack) send(r *http.Request) (*http.Response, error) {
	logrus.WithFields(logrus.Fields{
		"method": r.Method,
		"url":    r.URL.String(),
	}).Info("sub-request")

	response, err := s.sender(s.client, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	return response, nil
}
