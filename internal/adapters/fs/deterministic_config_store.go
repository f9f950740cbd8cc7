package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/domain/config"
)

const (
	deterministicConfigDir = "deterministicConfig"
	proxyDeployerName      = "proxyDeployer"
	paramsFile             = "params.json"
	chainConfigsDir        = "chainConfigs"
	addressesDir           = "addresses"
)

// DeterministicConfigStore implements usecase.ConfigLoader over the JSON
// records checked into a deployments project.
type DeterministicConfigStore struct {
	root string
}

// NewDeterministicConfigStore creates a new DeterministicConfigStore
func NewDeterministicConfigStore(cfg *config.RuntimeConfig) *DeterministicConfigStore {
	return &DeterministicConfigStore{
		root: cfg.ProjectRoot,
	}
}

type proxyDeployerRecord struct {
	DeployedAddress common.Address `json:"deployedAddress"`
}

type chainConfigRecord struct {
	ProxyAdmin common.Address `json:"PROXY_ADMIN"`
}

type addressesRecord struct {
	MintsManagerImpl common.Address `json:"MINTS_MANAGER_IMPL"`
}

// LoadProxyDeployerAddress reads deterministicConfig/proxyDeployer/params.json
func (s *DeterministicConfigStore) LoadProxyDeployerAddress(ctx context.Context) (common.Address, error) {
	path := filepath.Join(s.root, deterministicConfigDir, proxyDeployerName, paramsFile)

	var record proxyDeployerRecord
	if err := readRecord(path, &record); err != nil {
		return common.Address{}, err
	}
	if record.DeployedAddress == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: %s: deployedAddress is missing", domain.ErrConfigMalformed, path)
	}
	return record.DeployedAddress, nil
}

// LoadDeterministicConfig reads deterministicConfig/<logicalName>/params.json
func (s *DeterministicConfigStore) LoadDeterministicConfig(ctx context.Context, logicalName string) (*domain.MintsDeterministicConfig, error) {
	if err := validateLogicalName(logicalName); err != nil {
		return nil, err
	}
	path := filepath.Join(s.root, deterministicConfigDir, logicalName, paramsFile)

	var cfg domain.MintsDeterministicConfig
	if err := readRecord(path, &cfg); err != nil {
		return nil, err
	}
	if err := validateContractConfig(path, "manager", cfg.Manager); err != nil {
		return nil, err
	}
	if err := validateContractConfig(path, "mints1155", cfg.Mints1155); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadChainOverrides reads chainConfigs/<chainID>.json and addresses/<chainID>.json
func (s *DeterministicConfigStore) LoadChainOverrides(ctx context.Context, chainID uint64) (*domain.ChainOverrides, error) {
	name := strconv.FormatUint(chainID, 10) + ".json"

	chainPath := filepath.Join(s.root, chainConfigsDir, name)
	var chainCfg chainConfigRecord
	if err := readRecord(chainPath, &chainCfg); err != nil {
		return nil, err
	}
	if chainCfg.ProxyAdmin == (common.Address{}) {
		return nil, fmt.Errorf("%w: %s: PROXY_ADMIN is missing", domain.ErrConfigMalformed, chainPath)
	}

	addressesPath := filepath.Join(s.root, addressesDir, name)
	var addresses addressesRecord
	if err := readRecord(addressesPath, &addresses); err != nil {
		return nil, err
	}
	if addresses.MintsManagerImpl == (common.Address{}) {
		return nil, fmt.Errorf("%w: %s: MINTS_MANAGER_IMPL is missing", domain.ErrConfigMalformed, addressesPath)
	}

	return &domain.ChainOverrides{
		ProxyAdmin:            chainCfg.ProxyAdmin,
		ManagerImplementation: addresses.MintsManagerImpl,
	}, nil
}

func readRecord(path string, out any) error {
	data, err := os.ReadFile(path) //nolint:gosec // project path
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrConfigMalformed, path, err)
	}
	return nil
}

func validateLogicalName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: invalid config name %q", domain.ErrConfigMalformed, name)
	}
	return nil
}

func validateContractConfig(path, key string, c domain.DeterministicContractConfig) error {
	var missing []string
	if c.Salt == (common.Hash{}) {
		missing = append(missing, "salt")
	}
	if len(c.CreationCode) == 0 {
		missing = append(missing, "creationCode")
	}
	if c.DeployedAddress == (common.Address{}) {
		missing = append(missing, "deployedAddress")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s: %s is missing %s", domain.ErrConfigMalformed, path, key, strings.Join(missing, ", "))
	}
	return nil
}
