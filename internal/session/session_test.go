package session

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/distributed_lab/logan/v3"

	"github.com/uplift-force/coordinator-svc/internal/data"
	"github.com/uplift-force/coordinator-svc/internal/gateway"
	"github.com/uplift-force/coordinator-svc/internal/wallet"
)

const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func testWallet(t *testing.T) *wallet.Wallet {
	w, err := wallet.New(testKey, big.NewInt(31337))
	require.NoError(t, err)
	return w
}

func newTestSession(t *testing.T, handler http.Handler) (*Session, TokenStore) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	endpoint, err := url.Parse(srv.URL)
	require.NoError(t, err)

	tokens := NewMemoryStore()
	log := logan.New()
	client := gateway.New(log, endpoint, 5*time.Second, tokens)
	return New(log, client, tokens, testWallet(t)), tokens
}

func writeEnvelope(w http.ResponseWriter, code int, data interface{}) {
	raw, _ := json.Marshal(map[string]interface{}{"code": code, "message": "", "data": data})
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

func TestChallengeFormat(t *testing.T) {
	msg := challenge()
	assert.Regexp(t, regexp.MustCompile(`^Welcome to uplift force, timestamp is \d+!$`), msg)
}

func TestLogin(t *testing.T) {
	w := testWallet(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/checkWallet", func(rw http.ResponseWriter, r *http.Request) {
		writeEnvelope(rw, 200, map[string]interface{}{
			"is_registered":  true,
			"wallet_address": w.Address().Hex(),
		})
	})
	mux.HandleFunc("/auth/login", func(rw http.ResponseWriter, r *http.Request) {
		var body struct {
			WalletAddress string `json:"wallet_address"`
			Message       string `json:"message"`
			Signature     string `json:"signature"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, w.Address().Hex(), body.WalletAddress)

		// verify the signature the way the backend would
		sig, err := hexutil.Decode(body.Signature)
		require.NoError(t, err)
		require.Len(t, sig, 65)
		sig[crypto.RecoveryIDOffset] -= 27
		pub, err := crypto.SigToPub(accounts.TextHash([]byte(body.Message)), sig)
		require.NoError(t, err)
		assert.Equal(t, w.Address(), crypto.PubkeyToAddress(*pub))

		writeEnvelope(rw, 200, map[string]interface{}{
			"access_token":  "acc",
			"refresh_token": "ref",
			"user": map[string]interface{}{
				"id":       7,
				"username": "booster_one",
				"role":     "booster",
			},
		})
	})

	s, tokens := newTestSession(t, mux)
	user, err := s.Login(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, data.RoleBooster, user.Role)
	assert.Equal(t, "acc", tokens.Get().AccessToken)
	assert.Equal(t, "ref", tokens.Get().RefreshToken)
	assert.Equal(t, user, s.User())
}

func TestLoginUnregisteredWallet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/checkWallet", func(rw http.ResponseWriter, r *http.Request) {
		writeEnvelope(rw, 200, map[string]interface{}{"is_registered": false})
	})

	s, tokens := newTestSession(t, mux)
	_, err := s.Login(context.Background())

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Empty(t, tokens.Get().AccessToken)
}

func TestLoginFetchesProfileWhenUserOmitted(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/checkWallet", func(rw http.ResponseWriter, r *http.Request) {
		writeEnvelope(rw, 200, map[string]interface{}{"is_registered": true})
	})
	mux.HandleFunc("/auth/login", func(rw http.ResponseWriter, r *http.Request) {
		writeEnvelope(rw, 200, map[string]interface{}{"access_token": "acc", "refresh_token": "ref"})
	})
	mux.HandleFunc("/auth/profile", func(rw http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer acc", r.Header.Get("Authorization"))
		writeEnvelope(rw, 200, map[string]interface{}{"id": 9, "username": "player_two", "role": "player"})
	})

	s, _ := newTestSession(t, mux)
	user, err := s.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.ID)
	assert.Equal(t, "player_two", user.Username)
}

func TestRegisterValidation(t *testing.T) {
	s, _ := newTestSession(t, http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an invalid profile")
	}))

	cases := []struct {
		name    string
		profile Profile
	}{
		{"missing username", Profile{Email: "a@b.c", Role: data.RolePlayer}},
		{"bad email", Profile{Username: "x", Email: "nope", Role: data.RolePlayer}},
		{"bad role", Profile{Username: "x", Email: "a@b.c", Role: "admin"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tc.profile)
			assert.Error(t, err)
		})
	}
}

func TestRefreshFailureInvalidatesSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(rw http.ResponseWriter, r *http.Request) {
		writeEnvelope(rw, 401, nil)
	})

	s, tokens := newTestSession(t, mux)
	require.NoError(t, tokens.Set(data.Tokens{AccessToken: "acc", RefreshToken: "ref"}))

	err := s.Refresh(context.Background())

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Empty(t, tokens.Get().AccessToken)
	assert.Empty(t, tokens.Get().RefreshToken)
}

func TestRefreshWithoutSession(t *testing.T) {
	s, _ := newTestSession(t, http.NewServeMux())

	var authErr *AuthError
	require.ErrorAs(t, s.Refresh(context.Background()), &authErr)
}

func TestLogoutClearsLocalStateOnServerFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/logout", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusInternalServerError)
	})

	s, tokens := newTestSession(t, mux)
	require.NoError(t, tokens.Set(data.Tokens{AccessToken: "acc", RefreshToken: "ref"}))

	s.Logout(context.Background())

	assert.Empty(t, tokens.Get().AccessToken)
	assert.Nil(t, s.User())
}
