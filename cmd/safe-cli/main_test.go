package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newTestApp() *cli.App {
	app := &cli.App{
		Name:  "safe-cli",
		Flags: []cli.Flag{verboseFlag},
		Commands: []*cli.Command{
			{
				Name:      "tag-input",
				Flags:     []cli.Flag{domainSepFlag, domainLabelFlag},
				Action:    tagInputCommand,
			},
			{
				Name: "encrypt",
				Flags: []cli.Flag{
					backendFlag, domainSepFlag, domainLabelFlag,
					&cli.Uint64Flag{Name: "secret0"}, &cli.Uint64Flag{Name: "secret1"},
					&cli.Uint64Flag{Name: "nonce"},
					&cli.BoolFlag{Name: "hex"},
				},
				Action: encryptCommand,
			},
			{
				Name: "decrypt",
				Flags: []cli.Flag{
					backendFlag, domainSepFlag, domainLabelFlag,
					&cli.Uint64Flag{Name: "secret0"}, &cli.Uint64Flag{Name: "secret1"},
					&cli.Uint64Flag{Name: "nonce"},
					&cli.BoolFlag{Name: "hex"},
				},
				Action: decryptCommand,
			},
			{
				Name:   "demo",
				Flags:  []cli.Flag{backendFlag},
				Action: demoCommand,
			},
			{
				Name:   "validate",
				Action: validateCommand,
			},
		},
	}
	return app
}

func TestTagInputCommand(t *testing.T) {
	app := newTestApp()
	err := app.Run([]string{"safe-cli", "tag-input", "--domain-sep", "42", "absorb:11", "squeeze:2"})
	require.NoError(t, err)
}

func TestTagInputCommandRejectsMalformedCall(t *testing.T) {
	app := newTestApp()
	err := app.Run([]string{"safe-cli", "tag-input", "absorb"})
	require.Error(t, err)
}

func TestEncryptDecryptRoundTripViaCLI(t *testing.T) {
	app := newTestApp()
	err := app.Run([]string{
		"safe-cli", "encrypt",
		"--backend", "poseidon", "--domain-sep", "7",
		"--secret0", "1", "--secret1", "2", "--nonce", "3",
		"10", "20", "30",
	})
	require.NoError(t, err)
}

func TestDemoCommandRunsForEachBackend(t *testing.T) {
	for _, backend := range []string{"poseidon", "tip5", "arion"} {
		app := newTestApp()
		err := app.Run([]string{"safe-cli", "demo", "--backend", backend})
		require.NoError(t, err, "backend %s", backend)
	}
}

func TestValidateCommandAcceptsWellFormedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "safe.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"Backend = \"poseidon\"\nProtocolLabel = \"safe-cli-test\"\nHandshakeTimeout = \"2s\"\n"), 0o600))

	app := newTestApp()
	require.NoError(t, app.Run([]string{"safe-cli", "validate", path}))
}

func TestValidateCommandRejectsBadTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"Backend = \"poseidon\"\nProtocolLabel = \"safe-cli-test\"\nHandshakeTimeout = \"not-a-duration\"\n"), 0o600))

	app := newTestApp()
	require.Error(t, app.Run([]string{"safe-cli", "validate", path}))
}
