package signer

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/domain/config"
)

var (
	testLog     = slog.New(slog.NewTextHandler(io.Discard, nil))
	testChainID = big.NewInt(7777777)
)

func testTx() *types.Transaction {
	to := common.HexToAddress("0x0000000000000000000000000000000000000002")
	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   testChainID,
		Nonce:     4,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(10),
		Gas:       100_000,
		To:        &to,
		Value:     big.NewInt(0),
		Data:      []byte{0xca, 0xfe},
	})
}

type apiKeyPair struct {
	publicHex  string
	privateHex string
	key        *ecdsa.PrivateKey
}

func newAPIKeyPair(t *testing.T) apiKeyPair {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return apiKeyPair{
		publicHex:  hex.EncodeToString(elliptic.MarshalCompressed(elliptic.P256(), key.X, key.Y)),
		privateHex: hex.EncodeToString(key.D.FillBytes(make([]byte, 32))),
		key:        key,
	}
}

func verifyStamp(t *testing.T, pair apiKeyPair, body []byte, header string) {
	t.Helper()
	raw, err := base64.RawURLEncoding.DecodeString(header)
	require.NoError(t, err)

	var st stamp
	require.NoError(t, json.Unmarshal(raw, &st))
	assert.Equal(t, pair.publicHex, st.PublicKey)
	assert.Equal(t, stampScheme, st.Scheme)

	sig, err := hex.DecodeString(st.Signature)
	require.NoError(t, err)
	digest := sha256.Sum256(body)
	assert.True(t, ecdsa.VerifyASN1(&pair.key.PublicKey, digest[:], sig), "stamp does not verify")
}

// fakeTurnkey answers sign_raw_payload with a pending activity and completes it
// on the first get_activity poll.
func fakeTurnkey(t *testing.T, pair apiKeyPair, ethKey *ecdsa.PrivateKey, finalStatus string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var polls atomic.Int32
	var result *rawSignature

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		verifyStamp(t, pair, body, r.Header.Get(stampHeader))

		switch r.URL.Path {
		case signRawPayloadPath:
			var req signRawPayloadRequest
			require.NoError(t, json.Unmarshal(body, &req))
			assert.Equal(t, activityTypeSignRawPayload, req.Type)
			assert.Equal(t, "org-1", req.OrganizationID)
			assert.Equal(t, "key-1", req.Parameters.SignWith)
			assert.Equal(t, hashFunctionNoOp, req.Parameters.HashFunction)

			hash, err := hex.DecodeString(req.Parameters.Payload)
			require.NoError(t, err)
			sig, err := crypto.Sign(hash, ethKey)
			require.NoError(t, err)
			result = &rawSignature{
				R: hex.EncodeToString(sig[:32]),
				S: hex.EncodeToString(sig[32:64]),
				V: hex.EncodeToString(sig[64:]),
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"activity": map[string]any{"id": "act-1", "status": "ACTIVITY_STATUS_PENDING"},
			})
		case getActivityPath:
			polls.Add(1)
			var req getActivityRequest
			require.NoError(t, json.Unmarshal(body, &req))
			assert.Equal(t, "act-1", req.ActivityID)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"activity": map[string]any{
					"id":     "act-1",
					"status": finalStatus,
					"result": map[string]any{"signRawPayloadResult": result},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &polls
}

func turnkeyConfig(pair apiKeyPair, baseURL string, target common.Address) config.TurnkeyConfig {
	return config.TurnkeyConfig{
		BaseURL:        baseURL,
		APIPublicKey:   pair.publicHex,
		APIPrivateKey:  pair.privateHex,
		OrganizationID: "org-1",
		PrivateKeyID:   "key-1",
		TargetAddress:  target.Hex(),
		PollInterval:   time.Millisecond,
	}
}

func TestTurnkeySignTransaction(t *testing.T) {
	pair := newAPIKeyPair(t)
	ethKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	target := crypto.PubkeyToAddress(ethKey.PublicKey)

	srv, polls := fakeTurnkey(t, pair, ethKey, activityStatusCompleted)
	s, err := NewTurnkeySigner(turnkeyConfig(pair, srv.URL, target), testLog)
	require.NoError(t, err)
	assert.Equal(t, target, s.Address())

	tx := testTx()
	signed, err := s.SignTransaction(context.Background(), tx, testChainID)
	require.NoError(t, err)
	assert.Equal(t, int32(1), polls.Load())

	txSigner := types.LatestSignerForChainID(testChainID)
	from, err := types.Sender(txSigner, signed)
	require.NoError(t, err)
	assert.Equal(t, target, from)
	assert.Equal(t, txSigner.Hash(tx), txSigner.Hash(signed))
}

func TestTurnkeySignerRejectsWrongKey(t *testing.T) {
	pair := newAPIKeyPair(t)
	ethKey, err := crypto.GenerateKey()
	require.NoError(t, err)

	srv, _ := fakeTurnkey(t, pair, ethKey, activityStatusCompleted)
	other := common.HexToAddress("0x0000000000000000000000000000000000000123")
	s, err := NewTurnkeySigner(turnkeyConfig(pair, srv.URL, other), testLog)
	require.NoError(t, err)

	_, err = s.SignTransaction(context.Background(), testTx(), testChainID)
	assert.ErrorIs(t, err, domain.ErrSignerMisconfigured)
}

func TestTurnkeyActivityFailed(t *testing.T) {
	pair := newAPIKeyPair(t)
	ethKey, err := crypto.GenerateKey()
	require.NoError(t, err)

	srv, _ := fakeTurnkey(t, pair, ethKey, activityStatusRejected)
	s, err := NewTurnkeySigner(turnkeyConfig(pair, srv.URL, crypto.PubkeyToAddress(ethKey.PublicKey)), testLog)
	require.NoError(t, err)

	_, err = s.SignTransaction(context.Background(), testTx(), testChainID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), activityStatusRejected)
}

func TestTurnkeyMalformedActivity(t *testing.T) {
	tests := []struct {
		name     string
		activity map[string]any
	}{
		{"empty status", map[string]any{"id": "act-1", "status": ""}},
		{"unknown status", map[string]any{"id": "act-1", "status": "ACTIVITY_STATUS_SOMETHING"}},
		{"empty id", map[string]any{"id": "", "status": "ACTIVITY_STATUS_PENDING"}},
		{"empty activity", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair := newAPIKeyPair(t)
			var polls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == getActivityPath {
					polls.Add(1)
				}
				_ = json.NewEncoder(w).Encode(map[string]any{"activity": tt.activity})
			}))
			defer srv.Close()

			s, err := NewTurnkeySigner(turnkeyConfig(pair, srv.URL, common.HexToAddress("0x01")), testLog)
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, err = s.SignTransaction(ctx, testTx(), testChainID)
			assert.ErrorIs(t, err, domain.ErrNetwork)
			assert.NotErrorIs(t, err, context.DeadlineExceeded)
			assert.ErrorIs(t, err, domain.ErrMalformedResponse)
			assert.Zero(t, polls.Load())
		})
	}
}

func TestTurnkeyHTTPError(t *testing.T) {
	pair := newAPIKeyPair(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":16,"message":"unauthenticated"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	s, err := NewTurnkeySigner(turnkeyConfig(pair, srv.URL, common.HexToAddress("0x01")), testLog)
	require.NoError(t, err)

	_, err = s.SignTransaction(context.Background(), testTx(), testChainID)
	assert.ErrorIs(t, err, domain.ErrNetwork)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestNewTurnkeySignerValidation(t *testing.T) {
	pair := newAPIKeyPair(t)
	other := newAPIKeyPair(t)

	tests := []struct {
		name   string
		mutate func(*config.TurnkeyConfig)
		want   string
	}{
		{"missing org", func(c *config.TurnkeyConfig) { c.OrganizationID = "" }, "TURNKEY_ORGANIZATION_ID"},
		{"missing keys", func(c *config.TurnkeyConfig) { c.APIPublicKey, c.APIPrivateKey = "", "" }, "TURNKEY_API_PUBLIC_KEY, TURNKEY_API_PRIVATE_KEY"},
		{"bad target", func(c *config.TurnkeyConfig) { c.TargetAddress = "not-an-address" }, "not an address"},
		{"mismatched key pair", func(c *config.TurnkeyConfig) { c.APIPublicKey = other.publicHex }, "does not match"},
		{"non-hex private key", func(c *config.TurnkeyConfig) { c.APIPrivateKey = "zz" }, "not hex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := turnkeyConfig(pair, "http://unused", common.HexToAddress("0x01"))
			tt.mutate(&cfg)

			_, err := NewTurnkeySigner(cfg, testLog)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrSignerMisconfigured)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRawSignatureBytes(t *testing.T) {
	sig, err := (&rawSignature{R: "01", S: "02", V: "1c"}).bytes()
	require.NoError(t, err)
	require.Len(t, sig, 65)
	assert.Equal(t, byte(0x01), sig[31])
	assert.Equal(t, byte(0x02), sig[63])
	assert.Equal(t, byte(1), sig[64])

	_, err = (&rawSignature{R: "01", S: "02", V: "05"}).bytes()
	assert.Error(t, err)
}

func fakeRPCSigner(t *testing.T, key *ecdsa.PrivateKey, tamper bool, asObject bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get(apiKeyHeader))

		var req struct {
			Method string   `json:"method"`
			Params []txArgs `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "eth_signTransaction", req.Method)
		require.Len(t, req.Params, 1)
		args := req.Params[0]
		assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey).Hex(), args.From)
		assert.Equal(t, "0x76adf1", args.ChainID)
		require.NotNil(t, args.MaxFeePerGas)

		tx := testTx()
		if tamper {
			to := common.HexToAddress("0x0000000000000000000000000000000000000bad")
			tx = types.NewTx(&types.DynamicFeeTx{ChainID: testChainID, Nonce: 4, GasFeeCap: big.NewInt(10), GasTipCap: big.NewInt(1), Gas: 100_000, To: &to})
		}
		signed, err := types.SignTx(tx, types.LatestSignerForChainID(testChainID), key)
		require.NoError(t, err)
		raw, err := signed.MarshalBinary()
		require.NoError(t, err)

		var result any = hexutil.Encode(raw)
		if asObject {
			result = map[string]any{"raw": hexutil.Encode(raw), "tx": map[string]any{}}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": 1, "result": result})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRPCSignTransaction(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey)

	for _, asObject := range []bool{false, true} {
		srv := fakeRPCSigner(t, key, false, asObject)
		s, err := NewRPCSigner(config.RemoteSignerConfig{URL: srv.URL, APIKey: "secret", Address: addr.Hex()}, testLog)
		require.NoError(t, err)

		signed, err := s.SignTransaction(context.Background(), testTx(), testChainID)
		require.NoError(t, err)
		from, err := types.Sender(types.LatestSignerForChainID(testChainID), signed)
		require.NoError(t, err)
		assert.Equal(t, addr, from)
	}
}

func TestRPCSignTransactionRejectsTamperedTx(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	srv := fakeRPCSigner(t, key, true, false)
	s, err := NewRPCSigner(config.RemoteSignerConfig{
		URL:     srv.URL,
		APIKey:  "secret",
		Address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
	}, testLog)
	require.NoError(t, err)

	_, err = s.SignTransaction(context.Background(), testTx(), testChainID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different transaction")
}

func TestRPCSignerJSONRPCError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"key locked"}}`))
	}))
	defer srv.Close()

	s, err := NewRPCSigner(config.RemoteSignerConfig{URL: srv.URL, Address: "0x0000000000000000000000000000000000000001"}, testLog)
	require.NoError(t, err)

	_, err = s.SignTransaction(context.Background(), testTx(), testChainID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key locked")
}

func TestLocalSigner(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	keyHex := "0x" + hex.EncodeToString(crypto.FromECDSA(key))

	s, err := NewLocalSigner(keyHex)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), s.Address())

	signed, err := s.SignTransaction(context.Background(), testTx(), testChainID)
	require.NoError(t, err)
	from, err := types.Sender(types.LatestSignerForChainID(testChainID), signed)
	require.NoError(t, err)
	assert.Equal(t, s.Address(), from)

	_, err = NewLocalSigner("")
	assert.ErrorIs(t, err, domain.ErrSignerMisconfigured)
	_, err = NewLocalSigner("0xnothex")
	assert.ErrorIs(t, err, domain.ErrSignerMisconfigured)
}

func TestProviderSelectsBackend(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	keyHex := hex.EncodeToString(crypto.FromECDSA(key))

	t.Run("local", func(t *testing.T) {
		p := NewProvider(&config.RuntimeConfig{Signer: config.SignerConfig{Backend: config.SignerLocal, PrivateKey: keyHex}}, testLog)
		s, err := p.Signer(context.Background())
		require.NoError(t, err)
		assert.IsType(t, &LocalSigner{}, s)
	})

	t.Run("rpc", func(t *testing.T) {
		p := NewProvider(&config.RuntimeConfig{Signer: config.SignerConfig{
			Backend: config.SignerRPC,
			RPC:     config.RemoteSignerConfig{URL: "http://signer", Address: "0x0000000000000000000000000000000000000001"},
		}}, testLog)
		s, err := p.Signer(context.Background())
		require.NoError(t, err)
		assert.IsType(t, &RPCSigner{}, s)
	})

	t.Run("turnkey without credentials", func(t *testing.T) {
		p := NewProvider(&config.RuntimeConfig{Signer: config.SignerConfig{Backend: config.SignerTurnkey}}, testLog)
		s, err := p.Signer(context.Background())
		assert.ErrorIs(t, err, domain.ErrSignerMisconfigured)
		assert.Nil(t, s)
	})

	t.Run("unknown", func(t *testing.T) {
		p := NewProvider(&config.RuntimeConfig{Signer: config.SignerConfig{Backend: "ledger"}}, testLog)
		_, err := p.Signer(context.Background())
		assert.ErrorIs(t, err, domain.ErrSignerMisconfigured)
	})
}
