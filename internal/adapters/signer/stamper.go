package signer

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/trebuchet-org/mints-deployer/internal/domain"
)

const (
	stampHeader = "X-Stamp"
	stampScheme = "SIGNATURE_SCHEME_TK_API_P256"
)

// apiKeyStamper signs request bodies with a P-256 API key
type apiKeyStamper struct {
	publicKey string // compressed, hex
	key       *ecdsa.PrivateKey
}

type stamp struct {
	PublicKey string `json:"publicKey"`
	Scheme    string `json:"scheme"`
	Signature string `json:"signature"`
}

// newAPIKeyStamper parses a hex P-256 private key and checks it against the
// configured compressed public key.
func newAPIKeyStamper(publicKeyHex, privateKeyHex string) (*apiKeyStamper, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: API private key is not hex: %w", domain.ErrSignerMisconfigured, err)
	}
	if len(raw) < 32 {
		raw = append(make([]byte, 32-len(raw)), raw...)
	}

	ecdhKey, err := ecdh.P256().NewPrivateKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid API private key: %w", domain.ErrSignerMisconfigured, err)
	}
	uncompressed := ecdhKey.PublicKey().Bytes()
	x := new(big.Int).SetBytes(uncompressed[1:33])
	y := new(big.Int).SetBytes(uncompressed[33:])

	key := &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y},
		D:         new(big.Int).SetBytes(raw),
	}

	derived := hex.EncodeToString(elliptic.MarshalCompressed(elliptic.P256(), x, y))
	if want := strings.ToLower(strings.TrimPrefix(publicKeyHex, "0x")); want != derived {
		return nil, fmt.Errorf("%w: API public key does not match private key", domain.ErrSignerMisconfigured)
	}

	return &apiKeyStamper{publicKey: derived, key: key}, nil
}

// Stamp returns the X-Stamp header value for body
func (s *apiKeyStamper) Stamp(body []byte) (string, error) {
	digest := sha256.Sum256(body)
	sig, err := ecdsa.SignASN1(rand.Reader, s.key, digest[:])
	if err != nil {
		return "", fmt.Errorf("failed to stamp request: %w", err)
	}

	encoded, err := json.Marshal(stamp{
		PublicKey: s.publicKey,
		Scheme:    stampScheme,
		Signature: hex.EncodeToString(sig),
	})
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(encoded), nil
}

func (s *apiKeyStamper) headers(body []byte) (map[string]string, error) {
	value, err := s.Stamp(body)
	if err != nil {
		return nil, err
	}
	return map[string]string{stampHeader: value}, nil
}
