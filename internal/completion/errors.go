package completion

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

type Kind string

const (
	KindNetwork   Kind = "network"
	KindAuth      Kind = "auth"
	KindMalformed Kind = "malformed"
	KindAPI       Kind = "api"
)

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return "completion " + string(e.Kind) + " failure: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a classified error, or "" for anything else.
func KindOf(err error) Kind {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return ""
}

// Classify sorts a client error into network, auth, malformed or api.
// Rate limiting and server side failures count as network: they are
// transient from the caller's point of view.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var cerr *Error
	if errors.As(err, &cerr) {
		return err
	}

	var (
		apiErr    *openai.APIError
		reqErr    *openai.RequestError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		netErr    net.Error
	)
	switch {
	case errors.As(err, &apiErr):
		return &Error{Kind: kindForStatus(apiErr.HTTPStatusCode), Err: err}
	case errors.As(err, &reqErr):
		return &Error{Kind: kindForStatus(reqErr.HTTPStatusCode), Err: err}
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return &Error{Kind: KindMalformed, Err: err}
	case errors.As(err, &netErr):
		return &Error{Kind: KindNetwork, Err: err}
	}
	return &Error{Kind: KindNetwork, Err: err}
}

func kindForStatus(code int) Kind {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return KindAuth
	case code == http.StatusTooManyRequests, code >= http.StatusInternalServerError:
		return KindNetwork
	}
	return KindAPI
}
