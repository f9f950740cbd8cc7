package premint

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/domain/config"
)

// mixed-case on purpose; paths must use the lower-cased form
var collection = common.HexToAddress("0xB351a70dD6E5282A8c84edCbCd5A955469b9b032")

const collectionLower = "0xb351a70dd6e5282a8c84edcbcd5a955469b9b032"

const premintJSON = `{
  "collection": {
    "contractAdmin": "0xb351a70dd6e5282a8c84edcbcd5a955469b9b032",
    "contractName": "Testing",
    "contractURI": "ipfs://contract",
    "additionalAdmins": []
  },
  "collection_address": "0xb351a70dd6e5282a8c84edcbcd5a955469b9b032",
  "premint": {
    "config_version": "2",
    "premint": {
      "uid": 1,
      "version": 2,
      "deleted": false,
      "tokenConfig": {
        "tokenURI": "ipfs://token",
        "maxSupply": "18446744073709551615",
        "maxTokensPerAddress": "0",
        "pricePerToken": "777000000000000",
        "mintStart": "0",
        "mintDuration": "604800",
        "royaltyBPS": 1000,
        "payoutRecipient": "0xb351a70dd6e5282a8c84edcbcd5a955469b9b032",
        "fixedPriceMinter": "0x227d5294b13ebc893e31494194532727a130ed4b",
        "createReferral": "0x0000000000000000000000000000000000000000"
      }
    }
  },
  "signature": "0xc92804f3",
  "signer": "0xb351a70dd6e5282a8c84edcbcd5a955469b9b032"
}`

func newTestClient(t *testing.T, chainID uint64, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(chainID, WithBaseURL(srv.URL))
	require.NoError(t, err)
	return client
}

func TestGet(t *testing.T) {
	var gotPath string
	client := newTestClient(t, 7777777, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(premintJSON))
	})

	record, err := client.Get(context.Background(), collection, 1)
	require.NoError(t, err)

	assert.Equal(t, "/premint/signature/ZORA-MAINNET/"+collectionLower+"/1", gotPath)
	assert.Equal(t, collection, record.CollectionAddress)
	assert.Equal(t, domain.PremintConfigV2, record.ConfigVersion)
	require.NotNil(t, record.Collection)
	assert.Equal(t, "Testing", record.Collection.ContractName)
	assert.Empty(t, record.Collection.AdditionalAdmins)

	tc := record.Premint.TokenConfig
	assert.Equal(t, uint32(1), record.Premint.UID)
	assert.Equal(t, "18446744073709551615", tc.MaxSupply.String())
	assert.Equal(t, big.NewInt(777_000_000_000_000), tc.PricePerToken)
	assert.Equal(t, uint64(604800), tc.MintDuration)
	assert.Equal(t, uint32(1000), tc.RoyaltyBPS)
	assert.Equal(t, common.HexToAddress("0x227d5294b13ebc893e31494194532727a130ed4b"), tc.FixedPriceMinter)
	assert.Equal(t, []byte{0xc9, 0x28, 0x04, 0xf3}, []byte(record.Signature))
}

func TestGetOfCollection(t *testing.T) {
	var gotPath string
	client := newTestClient(t, 84532, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{
		  "collection_address": "` + collectionLower + `",
		  "premints": [` + premintJSON + `, ` + premintJSON + `]
		}`))
	})

	got, err := client.GetOfCollection(context.Background(), collection)
	require.NoError(t, err)

	assert.Equal(t, "/premint/signature/BASE-SEPOLIA/"+collectionLower, gotPath)
	assert.Nil(t, got.Collection)
	assert.Equal(t, collection, got.CollectionAddress)
	assert.Len(t, got.Premints, 2)
}

func TestGetNextUID(t *testing.T) {
	var gotPath string
	client := newTestClient(t, 999999999, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"next_uid": 42}`))
	})

	uid, err := client.GetNextUID(context.Background(), collection)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
	assert.Equal(t, "/premint/signature/ZORA-SEPOLIA/"+collectionLower+"/next_uid", gotPath)
}

func TestPostSignature(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, 8453, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/premint/signature", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &body))
		_, _ = w.Write([]byte(`{"collection_address":"` + collectionLower + `","uid":3,"signature":"0xabcd"}`))
	})

	addr := collection
	ack, err := client.PostSignature(context.Background(), &domain.SignedPremint{
		CollectionAddress: &addr,
		ConfigVersion:     domain.PremintConfigV2,
		Premint: domain.PremintConfig{
			UID:     3,
			Version: 1,
			TokenConfig: domain.TokenCreationConfig{
				TokenURI:      "ipfs://token",
				MaxSupply:     big.NewInt(100),
				PricePerToken: big.NewInt(0),
				RoyaltyBPS:    500,
			},
		},
		Signature: []byte{0xab, 0xcd},
	})
	require.NoError(t, err)

	assert.Equal(t, "BASE-MAINNET", body["chain_name"])
	assert.Equal(t, collectionLower, body["collection_address"])
	assert.NotContains(t, body, "collection")
	assert.Equal(t, "0xabcd", body["signature"])

	premint := body["premint"].(map[string]any)
	assert.Equal(t, "2", premint["config_version"])
	tokenConfig := premint["premint"].(map[string]any)["tokenConfig"].(map[string]any)
	assert.Equal(t, "100", tokenConfig["maxSupply"])

	assert.Equal(t, collection, ack.CollectionAddress)
	assert.Equal(t, uint32(3), ack.UID)
}

func TestAPIError(t *testing.T) {
	client := newTestClient(t, 1, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := client.Get(context.Background(), collection, 9)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, "not found", apiErr.Message)
}

func TestMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad collection address", `{"collection_address": "0x1234", "premints": []}`},
		{"bad max supply", `{"collection_address": "` + collectionLower + `", "premints": [` + strings.Replace(premintJSON, `"18446744073709551615"`, `"lots"`, 1) + `]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, 7777777, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetOfCollection(context.Background(), collection)
			assert.ErrorIs(t, err, domain.ErrNetwork)
			assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		})
	}
}

func TestUnsupportedChain(t *testing.T) {
	_, err := NewClient(31337)
	assert.ErrorIs(t, err, domain.ErrUnsupportedChain)

	factory := NewFactory(&config.RuntimeConfig{}, nil)
	_, err = factory.ForChain(421614)
	assert.ErrorIs(t, err, domain.ErrUnsupportedChain)
}

func TestBackendChainNames(t *testing.T) {
	tests := map[uint64]string{
		1:         "ETHEREUM-MAINNET",
		7777777:   "ZORA-MAINNET",
		999999999: "ZORA-SEPOLIA",
		8453:      "BASE-MAINNET",
		84532:     "BASE-SEPOLIA",
		10:        "OPTIMISM-MAINNET",
		42161:     "ARBITRUM-MAINNET",
		11155111:  "ETHEREUM-SEPOLIA",
		81457:     "BLAST-MAINNET",
	}
	for id, want := range tests {
		got, err := BackendChainName(id)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestWithBaseURLAddsSlash(t *testing.T) {
	client, err := NewClient(1, WithBaseURL("http://premint.local"))
	require.NoError(t, err)
	assert.Equal(t, "http://premint.local/", client.baseURL)
}
