// Command tether inspects configuration files the way a tether.Binder sees
// them and seals secret values for decrypt-tagged properties.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoobzio/tether"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tether",
		Short:         "Inspect and prepare key/value configuration",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tether v%s\n", version)
		},
	})
	root.AddCommand(newFlattenCmd())
	root.AddCommand(newSealCmd())
	return root
}

func newFlattenCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "flatten <file>",
		Short: "Print the key=value pairs a binder would receive from a file",
		Long: `Decode a configuration file with the matching source and print one
key=value line per pair, in the order a binder applies them.

The format is taken from the file extension unless --format is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := sourceFor(args[0], format)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return flatten(cmd.OutOrStdout(), src, data)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Source format (properties, json, yaml, msgpack, bson, xml, hcl, toml, ini, env)")
	return cmd
}

func flatten(w io.Writer, src tether.Source, data []byte) error {
	pairs, err := src.Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", src.ContentType(), err)
	}
	for _, p := range pairs {
		if _, err := fmt.Fprintf(w, "%s=%v\n", p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}

func newSealCmd() *cobra.Command {
	var algo, keyHex string
	cmd := &cobra.Command{
		Use:   "seal <value>",
		Short: "Encrypt a value for a decrypt-tagged property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if keyHex == "" {
				keyHex = os.Getenv("TETHER_KEY")
			}
			sealed, err := seal(tether.DecryptAlgo(algo), keyHex, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sealed)
			return nil
		},
	}
	cmd.Flags().StringVar(&algo, "algo", string(tether.DecryptAES), "Algorithm (aes, envelope)")
	cmd.Flags().StringVar(&keyHex, "key", "", "Hex encoded key (defaults to $TETHER_KEY)")
	return cmd
}

func seal(algo tether.DecryptAlgo, keyHex, value string) (string, error) {
	key, err := hex.DecodeString(strings.TrimSpace(keyHex))
	if err != nil {
		return "", fmt.Errorf("key: %w", err)
	}
	var enc tether.Encryptor
	switch algo {
	case tether.DecryptAES:
		enc, err = tether.AES(key)
	case tether.DecryptEnvelope:
		enc, err = tether.Envelope(key)
	default:
		return "", fmt.Errorf("unknown algorithm %q", algo)
	}
	if err != nil {
		return "", err
	}
	return tether.Seal(enc, value)
}
