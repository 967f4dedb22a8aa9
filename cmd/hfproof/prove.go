package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/weisyn/hfproof/internal/app"
	"github.com/weisyn/hfproof/internal/core/emitter"
)

const (
	promptTotalMinted = "Enter total DSC minted:"
	promptCollateral  = "Enter collateral value in USD:"
)

// proveFlags prove 命令标志
type proveFlags struct {
	totalMinted   string
	collateralUSD string
	outDir        string
}

func newProveCmd(global *GlobalFlags) *cobra.Command {
	flags := &proveFlags{}

	cmd := &cobra.Command{
		Use:   "prove",
		Short: "生成健康因子证明",
		Long: `生成健康因子证明并写出 proof.txt（无前缀十六进制）和 proof.json。

未提供 --total-minted / --collateral-usd 时从标准输入逐行读取。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProve(cmd, global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.totalMinted, "total-minted", "", "已铸造稳定币总量（十进制整数）")
	cmd.Flags().StringVar(&flags.collateralUSD, "collateral-usd", "", "抵押品美元价值（十进制整数）")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "产物输出目录 (覆盖配置文件 prover.output_dir)")

	return cmd
}

func runProve(cmd *cobra.Command, global *GlobalFlags, flags *proveFlags) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	totalMinted := flags.totalMinted
	if totalMinted == "" {
		v, err := prompt(in, out, promptTotalMinted)
		if err != nil {
			return err
		}
		totalMinted = v
	}
	collateral := flags.collateralUSD
	if collateral == "" {
		v, err := prompt(in, out, promptCollateral)
		if err != nil {
			return err
		}
		collateral = v
	}

	var extra []app.Option
	if flags.outDir != "" {
		extra = append(extra, app.WithOutputDir(flags.outDir))
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withApp(global, func(a app.App) error {
		proof, err := a.Packager().ProduceProofFromText(ctx, totalMinted, collateral)
		if err != nil {
			return err
		}

		paths, err := emitter.WriteArtifacts(a.ProverOptions().OutputDir, proof)
		if err != nil {
			return err
		}
		a.Logger().Infof("证明产物已写出: %s, %s", paths.ProofText, paths.ProofJSON)

		fmt.Fprintln(out, "Proof generated")
		return nil
	}, extra...)
}

// prompt 打印提示并读取一行
func prompt(in *bufio.Reader, out io.Writer, message string) (string, error) {
	fmt.Fprintln(out, message)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("读取输入失败: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
