// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/chainwallet/internal/cfgutil"
	"github.com/btcsuite/chainwallet/netparams"
	"github.com/jessevdk/go-flags"
)

const (
	defaultLogLevel    = "info"
	defaultLogDirname  = "logs"
	defaultLogFilename = "chainwallet.log"
	defaultChain       = "bitcoin"
)

var (
	defaultAppDataDir = btcutil.AppDataDir("chainwallet", false)
	defaultLogDir     = filepath.Join(defaultAppDataDir, defaultLogDirname)
)

// config defines the options shared by every command.
type config struct {
	TestNet3   bool               `long:"testnet" description:"Use the test network of the chain"`
	SimNet     bool               `long:"simnet" description:"Use the simulation bitcoin network"`
	Chain      *cfgutil.ChainFlag `short:"C" long:"chain" description:"Chain to operate on {bitcoin, omni, tron, ethereum, filecoin}"`
	LogDir     string             `long:"logdir" description:"Directory to log output"`
	NoLogFile  bool               `long:"nologfile" description:"Do not write a log file"`
	DebugLevel string             `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
}

func defaultConfig() config {
	return config{
		Chain:      cfgutil.NewChainFlag(defaultChain),
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
	}
}

// netName returns the name of the selected network.
func (cfg *config) netName() string {
	switch {
	case cfg.TestNet3:
		return "testnet"
	case cfg.SimNet:
		return "simnet"
	default:
		return "mainnet"
	}
}

// validate checks the options and returns the selected chain.  Logging is
// initialized as a side effect.
func (cfg *config) validate() (chain, error) {
	if cfg.TestNet3 && cfg.SimNet {
		return nil, fmt.Errorf("the testnet and simnet params can't be " +
			"used together -- choose one of the two")
	}

	if !cfg.NoLogFile {
		logFile := filepath.Join(cleanAndExpandPath(cfg.LogDir),
			cfg.netName(), defaultLogFilename)
		if err := initLogRotator(logFile); err != nil {
			return nil, err
		}
	}
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return nil, err
	}

	return chainForName(cfg.Chain.Name, cfg)
}

// bitcoinParams returns the bitcoin network parameters selected by cfg.
func (cfg *config) bitcoinParams() *netparams.Params {
	switch {
	case cfg.TestNet3:
		return &netparams.TestNet3Params
	case cfg.SimNet:
		return &netparams.SimNetParams
	default:
		return &netparams.MainNetParams
	}
}

// cleanAndExpandPath expands environement variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(defaultAppDataDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows cmd.exe-style
	// %VARIABLE%, but they variables can still be expanded via POSIX-style
	// $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	switch logLevel {
	case "trace", "debug", "info", "warn", "error", "critical":
		return true
	}
	return false
}

// supportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func supportedSubsystems() []string {
	// Convert the subsystemLoggers map keys to a slice.
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}

	// Sort the subsytems for stable display.
	sort.Strings(subsystems)
	return subsystems
}

// parseAndSetDebugLevels attempts to parse the specified debug level and set
// the levels accordingly.  An appropriate error is returned if anything is
// invalid.
func parseAndSetDebugLevels(debugLevel string) error {
	// When the specified string doesn't have any delimters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		// Validate debug log level.
		if !validLogLevel(debugLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, debugLevel)
		}

		// Change the logging level for all subsystems.
		setLogLevels(debugLevel)

		return nil
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			str := "the specified debug level contains an invalid " +
				"subsystem/level pair [%v]"
			return fmt.Errorf(str, logLevelPair)
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		// Validate subsystem.
		if _, exists := subsystemLoggers[subsysID]; !exists {
			str := "the specified subsystem [%v] is invalid -- " +
				"supported subsytems %v"
			return fmt.Errorf(str, subsysID, supportedSubsystems())
		}

		// Validate log level.
		if !validLogLevel(logLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, logLevel)
		}

		setLogLevel(subsysID, logLevel)
	}

	return nil
}

// newParser returns a parser for cfg with every command registered.
func newParser(cfg *config) *flags.Parser {
	parser := flags.NewParser(cfg, flags.Default)
	parser.AddCommand("genkey", "Generate a new private key",
		"Generate a new private key and print it with its public key "+
			"and address.", &genKeyCommand{cfg: cfg})
	parser.AddCommand("address", "Derive the address of a private key",
		"Derive the address of a private key.  The key is read from "+
			"the terminal when --key is not given.",
		&addressCommand{cfg: cfg})
	parser.AddCommand("decode", "Decode and validate an address",
		"Decode an address and print its network and payload.",
		&decodeCommand{cfg: cfg})
	return parser
}
