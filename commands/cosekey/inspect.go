package cosekey

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/smithee-solutions/libcose/cose"
	"github.com/smithee-solutions/libcose/cose/key"
	"github.com/smithee-solutions/libcose/utils"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func readKeyArg(arg string) ([]byte, error) {
	if data, err := os.ReadFile(arg); err == nil {
		return data, nil
	}
	data, err := hex.DecodeString(arg)
	if err != nil {
		return nil, fmt.Errorf("argument is neither a readable file nor hex: %s", arg)
	}
	return data, nil
}

func newInspectCommand(ctx *Context) *cobra.Command {
	var (
		showSecret bool
		showArt    bool
	)
	cmd := cobra.Command{
		Use:   "inspect <file|hex>",
		Short: "Decode a CBOR encoded COSE key and print its contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readKeyArg(args[0])
			if err != nil {
				return err
			}
			k, err := key.Decode(data)
			if err != nil {
				return err
			}
			printKey(cmd, k, showSecret)

			tp, err := k.Thumbprint()
			if err != nil {
				return err
			}
			cmd.Printf("Thumbprint: %s\n", hex.EncodeToString(tp[:]))
			if showArt || term.IsTerminal(int(os.Stdout.Fd())) {
				cmd.Print(utils.FingerprintRandomArt(k.KeyType().String(), tp[:]))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showSecret, "show-secret", false, "print private key material")
	cmd.Flags().BoolVar(&showArt, "art", false, "print fingerprint random art even when stdout is not a terminal")
	return &cmd
}

func printMaterial(cmd *cobra.Command, name string, value []byte, secret, show bool) {
	switch {
	case value == nil:
	case secret && !show:
		cmd.Printf("%s: (%d bytes, use --show-secret to print)\n", name, len(value))
	default:
		cmd.Printf("%s: %s\n", name, hex.EncodeToString(value))
	}
}

func printKey(cmd *cobra.Command, k *key.Key, showSecret bool) {
	cmd.Printf("Key type: %v\n", k.KeyType())
	if alg := k.Algorithm(); alg != 0 {
		cmd.Printf("Algorithm: %v (%d)\n", alg, int64(alg))
	}
	if kid := k.KID(); kid != nil {
		cmd.Printf("Key ID: %s\n", hex.EncodeToString(kid))
	}
	switch mat := k.Material().(type) {
	case *key.EC:
		if mat.KeyType() != cose.KeyTypeSymmetric {
			cmd.Printf("Curve: %v\n", mat.Crv)
		}
		printMaterial(cmd, "x", mat.X, false, showSecret)
		printMaterial(cmd, "y", mat.Y, false, showSecret)
		printMaterial(cmd, "d", mat.D, true, showSecret)
	case *key.RSA:
		printMaterial(cmd, "n", mat.N, false, showSecret)
		printMaterial(cmd, "e", mat.E, false, showSecret)
	}
}
