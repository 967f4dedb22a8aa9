package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/weisyn/hfproof/internal/app"
	"github.com/weisyn/hfproof/internal/core/emitter"
)

func newVerifyCmd(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <proof.json>",
		Short: "离线验证证明文档",
		Long: `读取 proof.json，校验 image_id 为本程序标识、证明通过验证，
且证明中的日志与 pub_inputs 一致，然后输出解码后的公开值。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("读取证明文档失败: %w", err)
			}
			doc, err := emitter.DecodeDocument(data)
			if err != nil {
				return err
			}

			return withApp(global, func(a app.App) error {
				journal, err := a.Packager().VerifyOutput(doc)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Proof verified")
				fmt.Fprintf(out, "health_factor: %s\n", journal.HealthFactor)
				fmt.Fprintf(out, "collateral_value_usd: %s\n", journal.CollateralValueUSD)
				fmt.Fprintf(out, "total_minted: %s\n", journal.TotalMinted)
				return nil
			})
		},
	}
}
