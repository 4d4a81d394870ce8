package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/distributed_lab/logan/v3"

	"github.com/uplift-force/coordinator-svc/internal/gateway/requests"
)

type staticTokens string

func (s staticTokens) Access() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	endpoint, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return New(logan.New(), endpoint, 5*time.Second, tokens), srv
}

func writeEnvelope(w http.ResponseWriter, code int, message string, data interface{}) {
	raw, _ := json.Marshal(map[string]interface{}{
		"code":    code,
		"message": message,
		"data":    data,
	})
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

func TestEnvelopeCodeOverridesTransportStatus(t *testing.T) {
	// transport-level 200 carrying a logical failure
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 400, "insufficient balance", nil)
	}), nil)

	err := client.AcceptOrder(context.Background(), 42, "0xdead")

	var apiErr *ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Code)
	assert.Equal(t, "insufficient balance", apiErr.Message)
}

func TestEnvelopeSuccessDecodesData(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/my", r.URL.Path)
		assert.Equal(t, "posted", r.URL.Query().Get("status"))
		writeEnvelope(w, 200, "ok", map[string]interface{}{
			"orders": []map[string]interface{}{
				{"id": 42, "status": "posted", "total_amount": "2.5"},
			},
			"total": 1,
		})
	}), nil)

	page, err := client.GetMyOrders(OrdersParams{Status: "posted"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, int64(42), page.Orders[0].ID)
	assert.Equal(t, "2.5", page.Orders[0].TotalAmount)
}

func TestAuthorizationHeaderInjection(t *testing.T) {
	var got string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		writeEnvelope(w, 200, "ok", nil)
	}), staticTokens("access-token"))

	require.NoError(t, client.Logout(context.Background()))
	assert.Equal(t, "Bearer access-token", got)
}

func TestNoAuthorizationHeaderWhenLoggedOut(t *testing.T) {
	var got string
	var present bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, present = r.Header["Authorization"]
		writeEnvelope(w, 200, "ok", nil)
	}), staticTokens(""))

	require.NoError(t, client.Logout(context.Background()))
	assert.False(t, present, "unexpected Authorization header %q", got)
}

func TestMalformedPayloadIsApiError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, "ok", map[string]interface{}{
			"orders": "not-an-array",
		})
	}), nil)

	_, err := client.GetMyOrders(OrdersParams{})

	var apiErr *ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "malformed response payload")
}

func TestTransportFailureIsApiError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), nil)

	_, err := client.CheckWallet(context.Background(), "0xf39F")

	var apiErr *ApiError
	require.ErrorAs(t, err, &apiErr)
}

func TestCreateOrderRequestBody(t *testing.T) {
	var body requests.CreateOrder
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeEnvelope(w, 200, "ok", map[string]interface{}{"id": 7})
	}), nil)

	ord, err := client.CreateOrder(context.Background(), requests.CreateOrder{
		GameType:    "lol",
		TotalAmount: "2.5",
		Deadline:    "1767225600",
		TxHash:      "0xdead",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), ord.ID)
	assert.Equal(t, "lol", body.GameType)
	assert.Equal(t, "0xdead", body.TxHash)
}
