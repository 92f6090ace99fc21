// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the initial chain state from a declarative config.
package genesis

import (
	"io"
	"os"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"gopkg.in/yaml.v3"

	"github.com/dascoin/dcore/dcore"
	"github.com/dascoin/dcore/state"
	"github.com/dascoin/dcore/tx"
)

// Account declares one genesis account.
type Account struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"` // wallet, vault or custodian
	// Balance is an optional initial core asset balance.
	Balance dcore.Share `yaml:"balance"`
}

// LicenseType declares one grantable license kind.
type LicenseType struct {
	Name     string      `yaml:"name"`
	Kind     string      `yaml:"kind"`
	Cycles   dcore.Share `yaml:"cycles"`
	EurLimit dcore.Share `yaml:"eur_limit"`
}

// Config is the declarative genesis state.
type Config struct {
	ChainName        string `yaml:"chain_name"`
	InitialTimestamp uint64 `yaml:"initial_timestamp"`

	Accounts []Account `yaml:"accounts"`

	// Domain administrator account names; each must appear in Accounts.
	RootAccount          string `yaml:"root_account"`
	LicenseAdministrator string `yaml:"license_administrator"`
	DaspayAdministrator  string `yaml:"daspay_administrator"`
	WebassetIssuer       string `yaml:"webasset_issuer"`
	// FeePoolAccount optionally receives charged fees; fees burn when empty.
	FeePoolAccount string `yaml:"fee_pool_account"`

	LicenseTypes []LicenseType `yaml:"license_types"`

	// InitialFrequency seeds the minting frequency.
	InitialFrequency dcore.Share `yaml:"initial_frequency"`
}

// Default is a self-contained single-authority genesis, used by solo mode and
// tests.
func Default() *Config {
	return &Config{
		ChainName:        "dascore-solo",
		InitialTimestamp: 1546300800, // 2019-01-01 00:00:00 UTC
		Accounts: []Account{
			{Name: "root", Kind: "wallet"},
		},
		RootAccount:          "root",
		LicenseAdministrator: "root",
		DaspayAdministrator:  "root",
		WebassetIssuer:       "root",
		LicenseTypes: []LicenseType{
			{Name: "standard", Kind: "regular", Cycles: 1100, EurLimit: 100 * dcore.DascoinUnit},
			{Name: "manager", Kind: "regular", Cycles: 5500, EurLimit: 500 * dcore.DascoinUnit},
			{Name: "president", Kind: "regular", Cycles: 25000, EurLimit: 2500 * dcore.DascoinUnit},
		},
		InitialFrequency: 2 * dcore.FrequencyPrecision,
	}
}

// FromYAML reads a config from r, rejecting unknown fields.
func FromYAML(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, dcore.Validationf("parsing genesis config: %v", err)
	}
	return &c, nil
}

// FromFile reads a config from a YAML file.
func FromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return FromYAML(f)
}

// ID derives the chain id the fork configuration is keyed on.
func (c *Config) ID() dcore.Bytes32 {
	enc, _ := rlp.EncodeToBytes([]interface{}{c.ChainName, c.InitialTimestamp})
	var id dcore.Bytes32
	copy(id[:], crypto.Keccak256(enc))
	return id
}

func accountKind(s string) (dcore.AccountKind, error) {
	switch s {
	case "", "wallet":
		return dcore.AccountWallet, nil
	case "vault":
		return dcore.AccountVault, nil
	case "custodian":
		return dcore.AccountCustodian, nil
	default:
		return 0, dcore.Validationf("unknown account kind %q", s)
	}
}

// Build creates the genesis state: the three chain assets, the declared
// accounts and license types, and both property singletons.
func (c *Config) Build() (*state.State, error) {
	st := state.New()

	admins := map[string]string{
		"root_account":          c.RootAccount,
		"license_administrator": c.LicenseAdministrator,
		"daspay_administrator":  c.DaspayAdministrator,
		"webasset_issuer":       c.WebassetIssuer,
	}
	declared := map[string]bool{}
	for _, a := range c.Accounts {
		declared[a.Name] = true
	}
	for field, name := range admins {
		if name == "" {
			return nil, dcore.Validationf("genesis %s is required", field)
		}
		if !declared[name] {
			return nil, dcore.Validationf("genesis %s %q is not a declared account", field, name)
		}
	}
	if c.FeePoolAccount != "" && !declared[c.FeePoolAccount] {
		return nil, dcore.Validationf("genesis fee_pool_account %q is not a declared account", c.FeePoolAccount)
	}

	byName := map[string]dcore.ObjectID{}
	for _, a := range c.Accounts {
		kind, err := accountKind(a.Kind)
		if err != nil {
			return nil, err
		}
		id, err := st.Create(&state.AccountObject{Name: a.Name, Kind: kind})
		if err != nil {
			return nil, err
		}
		byName[a.Name] = id
	}

	// Chain assets, in the order their well-known ids demand.
	if err := createAsset(st, dcore.DascoinAssetID, "DSC", dcore.DascoinPrecision, byName[c.RootAccount]); err != nil {
		return nil, err
	}
	if err := createAsset(st, dcore.CycleAssetID, "CYCLE", 0, byName[c.LicenseAdministrator]); err != nil {
		return nil, err
	}
	if err := createAsset(st, dcore.WebAssetID, "WEBEUR", dcore.DascoinPrecision, byName[c.WebassetIssuer]); err != nil {
		return nil, err
	}

	for _, lt := range c.LicenseTypes {
		if lt.Cycles <= 0 {
			return nil, dcore.Validationf("license type %q cycles must be positive", lt.Name)
		}
		if _, err := st.Create(&state.LicenseTypeObject{
			Name:     lt.Name,
			Kind:     lt.Kind,
			Cycles:   lt.Cycles,
			EurLimit: lt.EurLimit,
		}); err != nil {
			return nil, err
		}
	}

	params := tx.DefaultParameters()
	gid, err := st.Create(&state.GlobalPropertyObject{
		Parameters:           params,
		RootAccount:          byName[c.RootAccount],
		LicenseAdministrator: byName[c.LicenseAdministrator],
		DaspayAdministrator:  byName[c.DaspayAdministrator],
		WebassetIssuer:       byName[c.WebassetIssuer],
		FeePoolAccount:       byName[c.FeePoolAccount],
		RootAuthorityEnabled: true,
		NextMaintenanceTime:  c.InitialTimestamp + params.MaintenanceInterval,
	})
	if err != nil {
		return nil, err
	}
	if gid != dcore.GlobalPropertiesID {
		return nil, dcore.Consistencyf("global properties landed at %v", gid)
	}

	frequency := c.InitialFrequency
	if frequency <= 0 {
		frequency = dcore.FrequencyPrecision
	}
	did, err := st.Create(&state.DynamicGlobalPropertyObject{
		Time:                   c.InitialTimestamp,
		Frequency:              frequency,
		NextRewardTime:         c.InitialTimestamp + params.RewardInterval,
		NextClearingTime:       c.InitialTimestamp + params.ClearingInterval,
		NextDelayedResolveTime: c.InitialTimestamp + params.DelayedResolveInterval,
		NextLimitResetTime:     c.InitialTimestamp + params.LimitResetInterval,
	})
	if err != nil {
		return nil, err
	}
	if did != dcore.DynamicGlobalPropertiesID {
		return nil, dcore.Consistencyf("dynamic global properties landed at %v", did)
	}

	for _, a := range c.Accounts {
		if a.Balance <= 0 {
			continue
		}
		if _, err := st.Create(&state.AccountBalanceObject{
			Owner:   byName[a.Name],
			Asset:   dcore.DascoinAssetID,
			Balance: a.Balance,
		}); err != nil {
			return nil, err
		}
		if err := addSupply(st, dcore.DascoinAssetID, a.Balance); err != nil {
			return nil, err
		}
	}

	return st, nil
}

func createAsset(st *state.State, want dcore.ObjectID, symbol string, precision uint8, issuer dcore.ObjectID) error {
	ddID, err := st.Create(&state.AssetDynamicDataObject{})
	if err != nil {
		return err
	}
	id, err := st.Create(&state.AssetObject{
		Symbol:      symbol,
		Precision:   precision,
		Issuer:      issuer,
		MaxSupply:   1<<62 - 1,
		DynamicData: ddID,
	})
	if err != nil {
		return err
	}
	if id != want {
		return dcore.Consistencyf("asset %s landed at %v, expected %v", symbol, id, want)
	}
	return nil
}

func addSupply(st *state.State, asset dcore.ObjectID, delta dcore.Share) error {
	a, err := st.Asset(asset)
	if err != nil {
		return err
	}
	return st.Modify(a.DynamicData, func(o state.Object) error {
		o.(*state.AssetDynamicDataObject).CurrentSupply += delta
		return nil
	})
}
