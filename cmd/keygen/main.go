// AngelaMos | 2026
// main.go

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/labsamples/internal/auth"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("keygen failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		privatePath string
		publicPath  string
		force       bool
	)

	cmd := &cobra.Command{
		Use:          "keygen",
		Short:        "Generate the ES256 key pair used to sign access tokens",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				for _, path := range []string{privatePath, publicPath} {
					if _, err := os.Stat(path); err == nil {
						return fmt.Errorf("%s exists, pass --force to overwrite", path)
					} else if !errors.Is(err, fs.ErrNotExist) {
						return fmt.Errorf("stat %s: %w", path, err)
					}
				}
			}

			for _, path := range []string{privatePath, publicPath} {
				if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
					return fmt.Errorf("create key dir: %w", err)
				}
			}

			if err := auth.GenerateKeyPair(privatePath, publicPath); err != nil {
				return err
			}

			slog.Info("ES256 key pair written",
				"private", privatePath,
				"public", publicPath,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&privatePath, "private", "keys/private.pem", "private key output path")
	cmd.Flags().StringVar(&publicPath, "public", "keys/public.pem", "public key output path")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing keys")

	return cmd
}
