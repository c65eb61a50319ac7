// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import (
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/require"
)

func TestChainFlag(t *testing.T) {
	var opts struct {
		Chain *ChainFlag `long:"chain"`
	}

	opts.Chain = NewChainFlag("bitcoin")
	_, err := flags.ParseArgs(&opts, nil)
	require.NoError(t, err)
	require.Equal(t, "bitcoin", opts.Chain.Name)
	require.False(t, opts.Chain.ExplicitlySet())

	opts.Chain = NewChainFlag("bitcoin")
	_, err = flags.ParseArgs(&opts, []string{"--chain", "FileCoin"})
	require.NoError(t, err)
	require.Equal(t, "filecoin", opts.Chain.Name)
	require.True(t, opts.Chain.ExplicitlySet())

	opts.Chain = NewChainFlag("bitcoin")
	_, err = flags.ParseArgs(&opts, []string{"--chain", "dogecoin"})
	require.Error(t, err)
}
