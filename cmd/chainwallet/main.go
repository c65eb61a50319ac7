// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/btcsuite/chainwallet/internal/prompt"
	"github.com/jessevdk/go-flags"
)

func main() {
	// Work around defer not working after os.Exit.
	if err := chainwalletMain(); err != nil {
		os.Exit(1)
	}
}

// chainwalletMain is a work-around main function that is required since
// deferred functions (such as log rotator closing) are not called with calls
// to os.Exit.  Instead, main runs this function and checks for a non-nil
// error, at which point any defers have already run, and if the error is
// non-nil, the program can be exited with an error exit status.
func chainwalletMain() error {
	cfg := defaultConfig()
	parser := newParser(&cfg)
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	if _, err := parser.Parse(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			return nil
		}
		return err
	}
	return nil
}

// genKeyCommand generates a new private key.
type genKeyCommand struct {
	Format       string `short:"f" long:"format" description:"Address format {p2pkh, p2sh_p2wpkh, bech32} for bitcoin and omni"`
	BLS          bool   `long:"bls" description:"Generate a BLS key (filecoin only)"`
	Uncompressed bool   `long:"uncompressed" description:"Use an uncompressed public key (bitcoin and omni only)"`
	Yes          bool   `short:"y" long:"yes" description:"Print the private key without asking for confirmation"`

	cfg *config
}

// Execute runs the genkey command.
func (c *genKeyCommand) Execute(_ []string) error {
	ch, err := c.cfg.validate()
	if err != nil {
		return err
	}

	opts := keyOptions{BLS: c.BLS, Uncompressed: c.Uncompressed}
	info, err := ch.generate(rand.Reader, opts, c.Format)
	if err != nil {
		return err
	}
	log.Debugf("Generated %s key on %s", c.cfg.Chain.Name,
		c.cfg.netName())

	if !c.Yes && prompt.Interactive() {
		info, err = confirmPrivateKey(bufio.NewReader(os.Stdin), info)
		if err != nil {
			return err
		}
	}

	printKeyInfo(os.Stdout, info)
	return nil
}

// confirmPrivateKey asks whether the private key of a newly generated key
// should be printed, and blanks it unless the user agrees.
func confirmPrivateKey(reader *bufio.Reader, info keyInfo) (keyInfo, error) {
	show, err := prompt.Confirm(reader, "Display the private key", "yes")
	if err != nil {
		return keyInfo{}, err
	}
	if !show {
		info.PrivateKey = ""
	}
	return info, nil
}

// addressCommand derives the address of a private key.
type addressCommand struct {
	Key    string `short:"k" long:"key" description:"Private key in the chain's encoding; read from the terminal when omitted"`
	Format string `short:"f" long:"format" description:"Address format {p2pkh, p2sh_p2wpkh, bech32} for bitcoin and omni"`

	cfg *config
}

// Execute runs the address command.
func (c *addressCommand) Execute(_ []string) error {
	ch, err := c.cfg.validate()
	if err != nil {
		return err
	}

	key := c.Key
	if key == "" {
		secret, err := prompt.Secret(bufio.NewReader(os.Stdin),
			"Enter private key")
		if err != nil {
			return err
		}
		key = string(secret)
	}

	info, err := ch.derive(strings.TrimSpace(key), c.Format)
	if err != nil {
		return err
	}

	// Only the public half is printed back.
	info.PrivateKey = ""
	printKeyInfo(os.Stdout, info)
	return nil
}

// decodeCommand decodes an address.
type decodeCommand struct {
	Args struct {
		Address string `positional-arg-name:"address" required:"yes"`
	} `positional-args:"yes"`

	cfg *config
}

// Execute runs the decode command.
func (c *decodeCommand) Execute(_ []string) error {
	ch, err := c.cfg.validate()
	if err != nil {
		return err
	}

	fields, err := ch.decode(strings.TrimSpace(c.Args.Address))
	if err != nil {
		return err
	}
	for _, f := range fields {
		fmt.Printf("%-9s %s\n", f.Name+":", f.Value)
	}
	return nil
}

func printKeyInfo(w io.Writer, info keyInfo) {
	if info.PrivateKey != "" {
		fmt.Fprintf(w, "private key: %s\n", info.PrivateKey)
	}
	fmt.Fprintf(w, "public key:  %s\n", info.PublicKey)
	fmt.Fprintf(w, "address:     %s (%s)\n", info.Address, info.Format)
}

