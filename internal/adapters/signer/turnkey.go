package signer

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/samber/lo"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/domain/config"
	"github.com/trebuchet-org/mints-deployer/internal/usecase"
)

const (
	signRawPayloadPath = "/public/v1/submit/sign_raw_payload"
	getActivityPath    = "/public/v1/query/get_activity"

	activityTypeSignRawPayload = "ACTIVITY_TYPE_SIGN_RAW_PAYLOAD_V2"
	payloadEncodingHex         = "PAYLOAD_ENCODING_HEXADECIMAL"
	hashFunctionNoOp           = "HASH_FUNCTION_NO_OP"

	activityStatusCreated         = "ACTIVITY_STATUS_CREATED"
	activityStatusPending         = "ACTIVITY_STATUS_PENDING"
	activityStatusCompleted       = "ACTIVITY_STATUS_COMPLETED"
	activityStatusFailed          = "ACTIVITY_STATUS_FAILED"
	activityStatusRejected        = "ACTIVITY_STATUS_REJECTED"
	activityStatusConsensusNeeded = "ACTIVITY_STATUS_CONSENSUS_NEEDED"
)

var (
	terminalFailures = []string{activityStatusFailed, activityStatusRejected, activityStatusConsensusNeeded}
	pendingStatuses  = []string{activityStatusCreated, activityStatusPending}
)

// TurnkeySigner signs with a key held by Turnkey. The transaction signing
// hash is sent as a raw payload and the returned r, s, v are attached locally.
type TurnkeySigner struct {
	baseURL        string
	organizationID string
	signWith       string
	address        common.Address
	pollInterval   time.Duration
	stamper        *apiKeyStamper
	httpClient     *http.Client
	log            *slog.Logger
}

// TurnkeyOption configures a TurnkeySigner
type TurnkeyOption func(*TurnkeySigner)

// WithTurnkeyHTTPClient replaces the HTTP client
func WithTurnkeyHTTPClient(client *http.Client) TurnkeyOption {
	return func(s *TurnkeySigner) {
		s.httpClient = client
	}
}

// NewTurnkeySigner validates cfg and creates a signer for its target address
func NewTurnkeySigner(cfg config.TurnkeyConfig, log *slog.Logger, opts ...TurnkeyOption) (*TurnkeySigner, error) {
	missing := lo.Filter([]lo.Tuple2[string, string]{
		lo.T2("TURNKEY_API_PUBLIC_KEY", cfg.APIPublicKey),
		lo.T2("TURNKEY_API_PRIVATE_KEY", cfg.APIPrivateKey),
		lo.T2("TURNKEY_ORGANIZATION_ID", cfg.OrganizationID),
		lo.T2("TURNKEY_PRIVATE_KEY_ID", cfg.PrivateKeyID),
		lo.T2("TURNKEY_TARGET_ADDRESS", cfg.TargetAddress),
	}, func(kv lo.Tuple2[string, string], _ int) bool {
		return strings.TrimSpace(kv.B) == ""
	})
	if len(missing) > 0 {
		names := lo.Map(missing, func(kv lo.Tuple2[string, string], _ int) string { return kv.A })
		return nil, fmt.Errorf("%w: missing %s", domain.ErrSignerMisconfigured, strings.Join(names, ", "))
	}
	if !common.IsHexAddress(cfg.TargetAddress) {
		return nil, fmt.Errorf("%w: TURNKEY_TARGET_ADDRESS %q is not an address", domain.ErrSignerMisconfigured, cfg.TargetAddress)
	}

	stamper, err := newAPIKeyStamper(cfg.APIPublicKey, cfg.APIPrivateKey)
	if err != nil {
		return nil, err
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = time.Second
	}

	s := &TurnkeySigner{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		organizationID: cfg.OrganizationID,
		signWith:       cfg.PrivateKeyID,
		address:        common.HexToAddress(cfg.TargetAddress),
		pollInterval:   pollInterval,
		stamper:        stamper,
		httpClient:     &http.Client{Timeout: DefaultTimeout},
		log:            log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Address returns the configured target address
func (s *TurnkeySigner) Address() common.Address {
	return s.address
}

// SignTransaction signs tx for chainID. The signature must recover to the
// target address.
func (s *TurnkeySigner) SignTransaction(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	txSigner := types.LatestSignerForChainID(chainID)
	hash := txSigner.Hash(tx)

	s.log.Debug("requesting turnkey signature", "hash", hash.Hex(), "signWith", s.signWith)
	sig, err := s.signRawPayload(ctx, hash)
	if err != nil {
		return nil, err
	}

	signed, err := tx.WithSignature(txSigner, sig)
	if err != nil {
		return nil, fmt.Errorf("failed to attach signature: %w", err)
	}
	from, err := types.Sender(txSigner, signed)
	if err != nil {
		return nil, fmt.Errorf("failed to recover signer: %w", err)
	}
	if from != s.address {
		return nil, fmt.Errorf("%w: turnkey signed as %s, expected %s", domain.ErrSignerMisconfigured, from.Hex(), s.address.Hex())
	}
	return signed, nil
}

type signRawPayloadRequest struct {
	Type           string               `json:"type"`
	TimestampMs    string               `json:"timestampMs"`
	OrganizationID string               `json:"organizationId"`
	Parameters     signRawPayloadParams `json:"parameters"`
}

type signRawPayloadParams struct {
	SignWith     string `json:"signWith"`
	Payload      string `json:"payload"`
	Encoding     string `json:"encoding"`
	HashFunction string `json:"hashFunction"`
}

type getActivityRequest struct {
	OrganizationID string `json:"organizationId"`
	ActivityID     string `json:"activityId"`
}

type activityResponse struct {
	Activity activity `json:"activity"`
}

type activity struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Result struct {
		SignRawPayloadResult *rawSignature `json:"signRawPayloadResult"`
	} `json:"result"`
}

type rawSignature struct {
	R string `json:"r"`
	S string `json:"s"`
	V string `json:"v"`
}

// bytes assembles the 65-byte r||s||v signature expected by go-ethereum
func (r *rawSignature) bytes() ([]byte, error) {
	rb, err := hexutil.Decode(ensure0x(r.R))
	if err != nil || len(rb) > 32 {
		return nil, fmt.Errorf("invalid signature r %q", r.R)
	}
	sb, err := hexutil.Decode(ensure0x(r.S))
	if err != nil || len(sb) > 32 {
		return nil, fmt.Errorf("invalid signature s %q", r.S)
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(r.V, "0x"), 16, 8)
	if err != nil {
		return nil, fmt.Errorf("invalid signature v %q", r.V)
	}
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return nil, fmt.Errorf("invalid signature v %q", r.V)
	}

	sig := make([]byte, 65)
	copy(sig[32-len(rb):32], rb)
	copy(sig[64-len(sb):64], sb)
	sig[64] = byte(v)
	return sig, nil
}

func (s *TurnkeySigner) signRawPayload(ctx context.Context, hash common.Hash) ([]byte, error) {
	req := signRawPayloadRequest{
		Type:           activityTypeSignRawPayload,
		TimestampMs:    strconv.FormatInt(time.Now().UnixMilli(), 10),
		OrganizationID: s.organizationID,
		Parameters: signRawPayloadParams{
			SignWith:     s.signWith,
			Payload:      strings.TrimPrefix(hash.Hex(), "0x"),
			Encoding:     payloadEncodingHex,
			HashFunction: hashFunctionNoOp,
		},
	}

	var resp activityResponse
	if err := postJSON(ctx, s.httpClient, s.baseURL+signRawPayloadPath, req, &resp, s.stamper.headers); err != nil {
		return nil, fmt.Errorf("turnkey sign_raw_payload: %w", err)
	}

	act := resp.Activity
	for act.Status != activityStatusCompleted {
		if lo.Contains(terminalFailures, act.Status) {
			return nil, fmt.Errorf("turnkey activity %s ended with status %s", act.ID, act.Status)
		}
		if act.ID == "" || !lo.Contains(pendingStatuses, act.Status) {
			return nil, fmt.Errorf("%w: %w: turnkey activity id %q, status %q", domain.ErrNetwork, domain.ErrMalformedResponse, act.ID, act.Status)
		}

		s.log.Debug("turnkey activity pending", "id", act.ID, "status", act.Status)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.pollInterval):
		}

		var polled activityResponse
		poll := getActivityRequest{OrganizationID: s.organizationID, ActivityID: act.ID}
		if err := postJSON(ctx, s.httpClient, s.baseURL+getActivityPath, poll, &polled, s.stamper.headers); err != nil {
			return nil, fmt.Errorf("turnkey get_activity: %w", err)
		}
		act = polled.Activity
	}

	if act.Result.SignRawPayloadResult == nil {
		return nil, fmt.Errorf("turnkey activity %s completed without a signature", act.ID)
	}
	return act.Result.SignRawPayloadResult.bytes()
}

func ensure0x(s string) string {
	if strings.HasPrefix(s, "0x") {
		return s
	}
	return "0x" + s
}

var _ usecase.Signer = (*TurnkeySigner)(nil)
