// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tron

import (
	"math/big"

	"github.com/btcsuite/chainwallet/core"
	"github.com/btcsuite/chainwallet/core/hashes"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// transferSignature is the TRC-20 transfer function.
const transferSignature = "transfer(address,uint256)"

// TRC20TransferData returns the contract call data transferring amount
// tokens to to.
func TRC20TransferData(to Address, amount *big.Int) ([]byte, error) {
	if amount == nil || amount.Sign() < 0 {
		return nil, core.Errorf(core.ErrInvalidAmount,
			"token amount must not be negative")
	}

	addressT, err := abi.NewType("address", "", nil)
	if err != nil {
		return nil, core.NewError(core.ErrSerialization,
			"failed to create abi type", err)
	}
	uint256T, err := abi.NewType("uint256", "", nil)
	if err != nil {
		return nil, core.NewError(core.ErrSerialization,
			"failed to create abi type", err)
	}
	arguments := abi.Arguments{
		{
			Type: addressT,
		},
		{
			Type: uint256T,
		},
	}

	packed, err := arguments.Pack(to.EVMAddress(), amount)
	if err != nil {
		return nil, core.NewError(core.ErrSerialization,
			"failed to pack transfer arguments", err)
	}

	selector := hashes.Keccak256([]byte(transferSignature))[:4]
	return append(selector, packed...), nil
}
