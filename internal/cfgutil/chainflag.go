// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import (
	"fmt"
	"strings"
)

// Chains lists the chain names accepted by ChainFlag.
var Chains = []string{"bitcoin", "omni", "tron", "ethereum", "filecoin"}

// ChainFlag implements the flags.Marshaler and Unmarshaler interfaces for a
// chain name.  Names are case insensitive and unknown names are rejected
// while the command line is parsed.  It also records whether the flag was
// set explicitly.
type ChainFlag struct {
	Name          string
	explicitlySet bool
}

// NewChainFlag creates a ChainFlag with the provided default chain.
func NewChainFlag(defaultName string) *ChainFlag {
	return &ChainFlag{Name: defaultName}
}

// ExplicitlySet returns whether the flag was set on the command line.
func (c *ChainFlag) ExplicitlySet() bool { return c.explicitlySet }

// MarshalFlag implements the flags.Marshaler interface.
func (c *ChainFlag) MarshalFlag() (string, error) { return c.Name, nil }

// UnmarshalFlag implements the flags.Unmarshaler interface.
func (c *ChainFlag) UnmarshalFlag(value string) error {
	name := strings.ToLower(strings.TrimSpace(value))
	for _, chain := range Chains {
		if name == chain {
			c.Name = name
			c.explicitlySet = true
			return nil
		}
	}
	return fmt.Errorf("unknown chain %q -- supported chains %v", value,
		Chains)
}
