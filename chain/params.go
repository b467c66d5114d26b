package chain

import (
	"math/big"
)

// predefined forks
const (
	Homestead      = "homestead"
	Byzantium      = "byzantium"
	Constantinople = "constantinople"
	Petersburg     = "petersburg"
	Istanbul       = "istanbul"
	London         = "london"
	EIP150         = "EIP150"
	EIP158         = "EIP158"
	EIP155         = "EIP155"
)

// Fork is the block number at which a protocol upgrade activates
type Fork uint64

func NewFork(n uint64) *Fork {
	f := Fork(n)

	return &f
}

func (f Fork) Active(block uint64) bool {
	return block >= uint64(f)
}

func (f Fork) Int() *big.Int {
	return big.NewInt(int64(f))
}

// Forks is map which contains all forks and their starting blocks from genesis
type Forks map[string]*Fork

// IsActive returns true if fork defined by name exists and defined for the block
func (f *Forks) IsActive(name string, block uint64) bool {
	ff, ok := (*f)[name]

	return ok && ff.Active(block)
}

func (f *Forks) SetFork(name string, value *Fork) {
	(*f)[name] = value
}

func (f *Forks) At(block uint64) ForksInTime {
	return ForksInTime{
		Homestead:      f.IsActive(Homestead, block),
		Byzantium:      f.IsActive(Byzantium, block),
		Constantinople: f.IsActive(Constantinople, block),
		Petersburg:     f.IsActive(Petersburg, block),
		Istanbul:       f.IsActive(Istanbul, block),
		London:         f.IsActive(London, block),
		EIP150:         f.IsActive(EIP150, block),
		EIP158:         f.IsActive(EIP158, block),
		EIP155:         f.IsActive(EIP155, block),
	}
}

// ForksInTime is the fork configuration resolved for one block, the
// configuration record observers see through the execution view
type ForksInTime struct {
	Homestead,
	Byzantium,
	Constantinople,
	Petersburg,
	Istanbul,
	London,
	EIP150,
	EIP158,
	EIP155 bool
}

// AllForksEnabled is the configuration used by hosts that do not resolve
// forks per block
var AllForksEnabled = &Forks{
	Homestead:      NewFork(0),
	EIP150:         NewFork(0),
	EIP155:         NewFork(0),
	EIP158:         NewFork(0),
	Byzantium:      NewFork(0),
	Constantinople: NewFork(0),
	Petersburg:     NewFork(0),
	Istanbul:       NewFork(0),
	London:         NewFork(0),
}
