package cosekey

import (
	"encoding/hex"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/smithee-solutions/libcose/utils"
	"github.com/spf13/cobra"
)

func newEncodeCommand(ctx *Context) *cobra.Command {
	var out string
	cmd := cobra.Command{
		Use:   "encode <descriptor.yaml>",
		Short: "Encode a key described in YAML into its CBOR representation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var desc KeyDescriptor
			if err := yaml.Unmarshal(src, &desc); err != nil {
				return err
			}
			k, err := desc.Key()
			if err != nil {
				return err
			}
			data, err := k.Encode()
			if err != nil {
				return err
			}
			if out != "" {
				ctx.Log.Infof("writing %d bytes to %s", len(data), out)
				return utils.AtomicWrite(out, data, 0600)
			}
			cmd.Println(hex.EncodeToString(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write raw CBOR to a file instead of printing hex")
	return &cmd
}
