// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build !js

package prompt

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Interactive returns whether standard input is a terminal.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Secret prompts the user for a secret, such as a private key, with the
// given prefix.  When standard input is a terminal the secret is read
// without echo, otherwise a line is read from reader.  The prompt is
// repeated until a non-empty response is given.
func Secret(reader *bufio.Reader, prefix string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(reader)
	}

	prompt := fmt.Sprintf("%s: ", prefix)
	for {
		fmt.Print(prompt)
		secret, err := term.ReadPassword(fd)
		if err != nil {
			return nil, err
		}
		fmt.Print("\n")
		secret = bytes.TrimSpace(secret)
		if len(secret) == 0 {
			continue
		}

		return secret, nil
	}
}

// readLine returns the first non-empty line read from reader.
func readLine(reader *bufio.Reader) ([]byte, error) {
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			return []byte(line), nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// promptList prompts the user with the given prefix, list of valid responses,
// and default list entry to use.  The function will repeat the prompt to the
// user until they enter a valid response.
func promptList(reader *bufio.Reader, prefix string, validResponses []string, defaultEntry string) (string, error) {
	// Setup the prompt according to the parameters.
	validStrings := strings.Join(validResponses, "/")
	var prompt string
	if defaultEntry != "" {
		prompt = fmt.Sprintf("%s (%s) [%s]: ", prefix, validStrings,
			defaultEntry)
	} else {
		prompt = fmt.Sprintf("%s (%s): ", prefix, validStrings)
	}

	// Prompt the user until one of the valid responses is given.
	for {
		fmt.Print(prompt)
		reply, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		reply = strings.TrimSpace(strings.ToLower(reply))
		if reply == "" {
			reply = defaultEntry
		}

		for _, validResponse := range validResponses {
			if reply == validResponse {
				return reply, nil
			}
		}
	}
}

// Confirm prompts the user for a yes/no answer with the given prefix.  The
// function will repeat the prompt to the user until they enter a valid
// response.
func Confirm(reader *bufio.Reader, prefix string, defaultEntry string) (bool, error) {
	valid := []string{"n", "no", "y", "yes"}
	response, err := promptList(reader, prefix, valid, defaultEntry)
	if err != nil {
		return false, err
	}
	return response == "yes" || response == "y", nil
}
