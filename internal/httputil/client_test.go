package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSONSuccess(t *testing.T) {
	m := NewMockHTTPClient().AddResponse(http.StatusOK, `{"charts":[{"key":"carry_hist"}]}`)

	var out struct {
		Charts []struct {
			Key string `json:"key"`
		} `json:"charts"`
	}
	err := PostJSON(context.Background(), m, "http://swing.local/api/analyze", map[string]string{"club": "Driver"}, &out)
	require.NoError(t, err)
	require.Len(t, out.Charts, 1)
	assert.Equal(t, "carry_hist", out.Charts[0].Key)

	require.Len(t, m.Requests, 1)
	assert.Equal(t, http.MethodPost, m.Requests[0].Method)
	assert.Equal(t, "application/json", m.Requests[0].Header.Get("Content-Type"))
	assert.JSONEq(t, `{"club":"Driver"}`, string(m.Bodies[0]))
}

func TestPostJSONStatusError(t *testing.T) {
	m := NewMockHTTPClient().
		AddResponse(http.StatusBadRequest, `{"error":"invalid config: unknown chart key \"x\""}`).
		AddResponse(http.StatusBadGateway, "upstream down")

	err := PostJSON(context.Background(), m, "http://swing.local/api/analyze", struct{}{}, nil)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Contains(t, se.Message, "unknown chart key")

	err = PostJSON(context.Background(), m, "http://swing.local/api/analyze", struct{}{}, nil)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "upstream down", se.Message)
}

func TestPostJSONTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	m := NewMockHTTPClient().AddError(boom)
	err := PostJSON(context.Background(), m, "http://swing.local/api/analyze", struct{}{}, nil)
	assert.ErrorIs(t, err, boom)
}

func TestPostJSONRealServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in map[string]int
		if err := DecodeJSON(w, r, &in); err != nil {
			BadRequest(w, err.Error())
			return
		}
		WriteJSONOK(w, map[string]int{"double": in["n"] * 2})
	}))
	defer srv.Close()

	var out map[string]int
	require.NoError(t, PostJSON(context.Background(), srv.Client(), srv.URL, map[string]int{"n": 21}, &out))
	assert.Equal(t, 42, out["double"])
}
