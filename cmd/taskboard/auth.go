// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/taskboard-foundation/taskboard/api"
	"github.com/taskboard-foundation/taskboard/lib/secret"
)

// runLogin authenticates with the backend and saves the session to
// the well-known path. Subsequent subcommands load it transparently.
func runLogin(ctx context.Context, arguments []string) error {
	flagSet := pflag.NewFlagSet("login", pflag.ContinueOnError)
	passwordFile := flagSet.String("password-file", "", "path to file containing the password, or - to prompt interactively (default: prompt)")
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}
	positional := flagSet.Args()
	if len(positional) != 1 {
		return fmt.Errorf("usage: taskboard login <email> [flags]")
	}
	email := positional[0]

	password, err := readPassword(*passwordFile)
	if err != nil {
		return err
	}
	defer password.Close()

	client, err := newClient()
	if err != nil {
		return err
	}

	auth, err := client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Logged in as %s\n", auth.User.Username)
	fmt.Fprintf(os.Stderr, "Session saved to %s\n", client.Session().FilePath())
	return nil
}

// runLogout discards the saved session. A no-op when not logged in.
func runLogout(arguments []string) error {
	flagSet := pflag.NewFlagSet("logout", pflag.ContinueOnError)
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	wasAuthenticated := client.Session().Authenticated()
	if err := client.Logout(); err != nil {
		return err
	}
	if wasAuthenticated {
		fmt.Fprintln(os.Stderr, "Logged out.")
	} else {
		fmt.Fprintln(os.Stderr, "Not logged in.")
	}
	return nil
}

// runRegister creates an account and logs in as it.
func runRegister(ctx context.Context, arguments []string) error {
	flagSet := pflag.NewFlagSet("register", pflag.ContinueOnError)
	email := flagSet.String("email", "", "email address (required)")
	passwordFile := flagSet.String("password-file", "", "path to file containing the password, or - to prompt interactively (default: prompt)")
	profilePicture := flagSet.String("profile-picture", "", "profile picture URL")
	teamID := flagSet.Int("team", 0, "team id to join")
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}
	positional := flagSet.Args()
	if len(positional) != 1 {
		return fmt.Errorf("usage: taskboard register <username> --email <email> [flags]")
	}
	if *email == "" {
		return fmt.Errorf("--email is required")
	}

	password, err := readPassword(*passwordFile)
	if err != nil {
		return err
	}
	defer password.Close()

	client, err := newClient()
	if err != nil {
		return err
	}

	auth, err := client.CreateAccount(ctx, api.CreateAccountRequest{
		Username:          positional[0],
		Email:             *email,
		Password:          password,
		ProfilePictureURL: *profilePicture,
		TeamID:            *teamID,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Registered and logged in as %s\n", auth.User.Username)
	return nil
}

// runWhoami prints the authenticated user. The username comes from the
// session file without a round trip; --verify fetches the full record
// from the backend.
func runWhoami(ctx context.Context, arguments []string) error {
	flagSet := pflag.NewFlagSet("whoami", pflag.ContinueOnError)
	verify := flagSet.Bool("verify", false, "verify the session against the backend")
	if err := flagSet.Parse(arguments); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	if !client.Session().Authenticated() {
		return fmt.Errorf("not logged in")
	}

	if !*verify {
		fmt.Println(client.Session().Username())
		return nil
	}

	user, err := client.CurrentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> (id %d)\n", user.Username, user.Email, user.UserID)
	return nil
}

// readPassword reads a password either from a file or interactively
// with echo disabled. An empty or "-" path means prompt.
func readPassword(passwordFile string) (*secret.Buffer, error) {
	if passwordFile != "" && passwordFile != "-" {
		data, err := os.ReadFile(passwordFile)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", passwordFile, err)
		}
		trimmed := bytes.TrimRight(data, "\r\n")
		if len(trimmed) == 0 {
			secret.Zero(data)
			return nil, fmt.Errorf("%s is empty", passwordFile)
		}
		buffer, err := secret.NewFromBytes(trimmed)
		secret.Zero(data)
		if err != nil {
			return nil, err
		}
		return buffer, nil
	}

	stdinFileDescriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFileDescriptor) {
		return nil, fmt.Errorf("no terminal available for interactive password prompt (use --password-file)")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	passwordBytes, err := term.ReadPassword(stdinFileDescriptor)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}
	if len(passwordBytes) == 0 {
		return nil, fmt.Errorf("empty password")
	}

	buffer, err := secret.NewFromBytes(passwordBytes)
	if err != nil {
		secret.Zero(passwordBytes)
		return nil, err
	}
	return buffer, nil
}
