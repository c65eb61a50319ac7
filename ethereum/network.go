// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ethereum

import (
	"math/big"

	"github.com/btcsuite/chainwallet/core"
)

// Network is an Ethereum network.  ChainID is what transactions are signed
// for (EIP-155); NetworkID is what peers identify the network by.
type Network struct {
	Name      string
	ChainID   uint64
	NetworkID uint64
}

// Known Ethereum networks.
var (
	Mainnet = Network{Name: "mainnet", ChainID: 1, NetworkID: 1}
	Ropsten = Network{Name: "ropsten", ChainID: 3, NetworkID: 3}
	Rinkeby = Network{Name: "rinkeby", ChainID: 4, NetworkID: 4}
	Goerli  = Network{Name: "goerli", ChainID: 5, NetworkID: 5}
	Kovan   = Network{Name: "kovan", ChainID: 42, NetworkID: 42}
	Sepolia = Network{Name: "sepolia", ChainID: 11155111, NetworkID: 11155111}
)

var networks = []Network{Mainnet, Ropsten, Rinkeby, Goerli, Kovan, Sepolia}

// String returns the name of the network.
func (n Network) String() string {
	return n.Name
}

// ID returns the chain id of the network.
func (n Network) ID() uint64 {
	return n.ChainID
}

func (n Network) chainID() *big.Int {
	return new(big.Int).SetUint64(n.ChainID)
}

// NetworkForName returns the known network with the given name.
func NetworkForName(name string) (Network, error) {
	for _, n := range networks {
		if n.Name == name {
			return n, nil
		}
	}
	return Network{}, core.Errorf(core.ErrInvalidNetwork,
		"unknown network %q", name)
}

// NetworkForChainID returns the known network with the given chain id.
func NetworkForChainID(id uint64) (Network, error) {
	for _, n := range networks {
		if n.ChainID == id {
			return n, nil
		}
	}
	return Network{}, core.Errorf(core.ErrInvalidNetwork,
		"unknown chain id %d", id)
}
