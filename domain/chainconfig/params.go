package chainconfig

import (
	"github.com/kaspanet/ledgerd/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// SompiPerCoin is the number of base units in one coin
const SompiPerCoin = 100_000_000

// Params defines a network by its parameters. Blocks accepted on one network
// are not meaningful on another.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// GenesisBlock defines the first block of the chain.
	GenesisBlock *externalapi.DomainBlock

	// BaseSubsidy is the amount a coinbase transaction may mint at height 0.
	BaseSubsidy uint64

	// SubsidyHalvingInterval is the number of blocks after which the subsidy
	// is halved.
	SubsidyHalvingInterval uint64
}

// CalcBlockSubsidy returns the amount a coinbase transaction at the given
// height may mint on top of the fees of its block
func (p *Params) CalcBlockSubsidy(height uint64) uint64 {
	if p.SubsidyHalvingInterval == 0 {
		return p.BaseSubsidy
	}

	halvings := height / p.SubsidyHalvingInterval
	if halvings >= 64 {
		return 0
	}
	return p.BaseSubsidy >> halvings
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = Params{
	Name:                   "ledgerd-mainnet",
	GenesisBlock:           &genesisBlock,
	BaseSubsidy:            50 * SompiPerCoin,
	SubsidyHalvingInterval: 210_000,
}

// TestnetParams defines the network parameters for the test network.
var TestnetParams = Params{
	Name:                   "ledgerd-testnet",
	GenesisBlock:           &testnetGenesisBlock,
	BaseSubsidy:            50 * SompiPerCoin,
	SubsidyHalvingInterval: 210,
}

// SimnetParams defines the network parameters for the simulation test network.
// It is intended for private use within a group of individuals doing
// simulation testing and full integration tests.
var SimnetParams = Params{
	Name:                   "ledgerd-simnet",
	GenesisBlock:           &simnetGenesisBlock,
	BaseSubsidy:            50 * SompiPerCoin,
	SubsidyHalvingInterval: 150,
}

var (
	// ErrDuplicateNet describes an error where the parameters for a network
	// could not be set due to the network already being a standard
	// network or previously-registered into this package.
	ErrDuplicateNet = errors.New("duplicate network")
)

var registeredNets = make(map[string]struct{})

// Register registers the network parameters for a network. This may
// error with ErrDuplicateNet if the network is already registered (either
// due to a previous Register call, or the network being one of the default
// networks).
func Register(params *Params) error {
	if _, ok := registeredNets[params.Name]; ok {
		return ErrDuplicateNet
	}
	registeredNets[params.Name] = struct{}{}
	return nil
}

// mustRegister performs the same function as Register except it panics if there
// is an error. This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

func init() {
	mustRegister(&MainnetParams)
	mustRegister(&TestnetParams)
	mustRegister(&SimnetParams)
}
