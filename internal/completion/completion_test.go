package completion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"

	"github.com/iamwavecut/telegram-persona-bot/internal/history"
)

const okResponse = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o-mini",
  "choices": [
    {"index": 0, "message": {"role": "assistant", "content": "Hello there.\n\nHow can I help?"}, "finish_reason": "stop"},
    {"index": 1, "message": {"role": "assistant", "content": "ignored"}, "finish_reason": "stop"}
  ],
  "usage": {"prompt_tokens": 10, "completion_tokens": 8, "total_tokens": 18}
}`

func newServer(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		if seen != nil {
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(raw, seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func transcript() []history.Turn {
	return []history.Turn{
		{Role: history.RoleSystem, Content: "persona"},
		{Role: history.RoleUser, Content: "John: hi", Name: "john"},
	}
}

func TestComplete_Success(t *testing.T) {
	var body map[string]any
	srv := newServer(t, http.StatusOK, okResponse, &body)
	c := New(srv.URL+"/v1/", "sk-test", "gpt-4o-mini")

	text, err := c.Complete(context.Background(), transcript())
	require.NoError(t, err)
	require.Equal(t, "Hello there.\n\nHow can I help?", text)

	require.Equal(t, "gpt-4o-mini", body["model"])
	require.Equal(t, float64(MaxTokens), body["max_tokens"])
	require.InDelta(t, 1.1, body["temperature"], 1e-6)
	require.NotEqual(t, true, body["stream"])

	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	first := messages[0].(map[string]any)
	require.Equal(t, "system", first["role"])
	require.Equal(t, "persona", first["content"])
	_, hasName := first["name"]
	require.False(t, hasName)
	second := messages[1].(map[string]any)
	require.Equal(t, "user", second["role"])
	require.Equal(t, "john", second["name"])
}

func TestComplete_NoChoices(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","choices":[]}`, nil)
	c := New(srv.URL+"/v1", "sk-test", "gpt-4o-mini")

	_, err := c.Complete(context.Background(), transcript())
	require.ErrorIs(t, err, ErrNoChoices)
	require.Equal(t, KindMalformed, KindOf(err))
}

func TestComplete_Unauthorized(t *testing.T) {
	srv := newServer(t, http.StatusUnauthorized,
		`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`, nil)
	c := New(srv.URL+"/v1", "sk-test", "gpt-4o-mini")

	_, err := c.Complete(context.Background(), transcript())
	require.Error(t, err)
	require.Equal(t, KindAuth, KindOf(err))
}

func TestComplete_ServerError(t *testing.T) {
	srv := newServer(t, http.StatusBadGateway, `upstream is down`, nil)
	c := New(srv.URL+"/v1", "sk-test", "gpt-4o-mini")

	_, err := c.Complete(context.Background(), transcript())
	require.Equal(t, KindNetwork, KindOf(err))
}

func TestComplete_BadRequest(t *testing.T) {
	srv := newServer(t, http.StatusBadRequest,
		`{"error":{"message":"model not found","type":"invalid_request_error"}}`, nil)
	c := New(srv.URL+"/v1", "sk-test", "gpt-4o-mini")

	_, err := c.Complete(context.Background(), transcript())
	require.Equal(t, KindAPI, KindOf(err))
}

func TestComplete_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := New(url+"/v1", "sk-test", "gpt-4o-mini")

	_, err := c.Complete(context.Background(), transcript())
	require.Equal(t, KindNetwork, KindOf(err))
}

func TestClassify(t *testing.T) {
	require.NoError(t, Classify(nil))

	already := &Error{Kind: KindAuth, Err: errors.New("x")}
	require.Same(t, already, Classify(already))

	var syntaxErr *json.SyntaxError
	err := json.Unmarshal([]byte("{"), &struct{}{})
	require.ErrorAs(t, err, &syntaxErr)
	require.Equal(t, KindMalformed, KindOf(Classify(err)))

	require.Equal(t, KindAuth, KindOf(Classify(&openai.APIError{HTTPStatusCode: http.StatusForbidden, Message: "forbidden"})))
	require.Equal(t, KindNetwork, KindOf(Classify(&openai.RequestError{HTTPStatusCode: http.StatusTooManyRequests, Err: errors.New("slow down")})))
	require.Equal(t, Kind(""), KindOf(errors.New("plain")))
}
