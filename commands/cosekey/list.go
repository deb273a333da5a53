package cosekey

import (
	"encoding/hex"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/smithee-solutions/libcose/vault"
	"github.com/spf13/cobra"

	// driver registration
	_ "github.com/smithee-solutions/libcose/vault/awskms"
)

func newListCommand(ctx *Context) *cobra.Command {
	cmd := cobra.Command{
		Use:   "list <vault.yaml>",
		Short: "List the keys of a vault backend as COSE records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var conf vault.Config
			if err := yaml.Unmarshal(src, &conf); err != nil {
				return err
			}
			v, err := vault.New(cmd.Context(), &conf, vault.DefaultManager())
			if err != nil {
				return err
			}
			defer v.Close(cmd.Context())

			ctx.Log.Debugf("listing keys from %s", v.InstanceInfo())
			it := v.List(cmd.Context())
			for entry := range it.Entries() {
				tp, err := entry.Key.Thumbprint()
				if err != nil {
					return err
				}
				cmd.Printf("%s\t%v\t%v\t%s\n",
					entry.ID, entry.Key.KeyType(), entry.Key.Algorithm(),
					hex.EncodeToString(tp[:8]))
			}
			return it.Err()
		},
	}
	return &cmd
}
