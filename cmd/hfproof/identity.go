package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/weisyn/hfproof/internal/app"
)

func newIdentityCmd(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "identity",
		Short: "输出程序标识",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(global, func(a app.App) error {
				id, err := a.Packager().ImageID()
				if err != nil {
					return err
				}
				c, err := id.CID()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "image_id: 0x%s\n", id.Hex())
				fmt.Fprintf(out, "cid: %s\n", c)
				fmt.Fprintf(out, "backend: %s\n", a.ProverOptions().Backend)
				return nil
			})
		},
	}
}
