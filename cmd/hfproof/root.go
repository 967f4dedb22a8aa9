package main

import (
	"github.com/spf13/cobra"
	"github.com/weisyn/hfproof/internal/app"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigPath  string // 配置文件路径
	Backend     string // 证明后端覆盖
	StoragePath string // 密钥库目录覆盖
}

// newRootCmd 创建根命令
func newRootCmd() *cobra.Command {
	flags := &GlobalFlags{}

	rootCmd := &cobra.Command{
		Use:   "hfproof",
		Short: "健康因子零知识证明工具",
		Long: `hfproof - 健康因子零知识证明工具

在可验证执行边界内计算 health_factor = floor(floor(collateral × 50 / 100) × 10^18 / minted)，
并把 (health_factor, collateral_value_usd, total_minted) 作为公开日志绑定到证明中。

Groth16 后端的证明密钥只在密钥库内有效：跨进程验证证明时，
prove 与 verify 必须使用同一个 --storage-path（或配置文件中的 storage.path）。`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "JSON配置文件路径 (也可用环境变量 HFPROOF_CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVar(&flags.Backend, "backend", "", "证明后端: groth16|dev (覆盖配置文件)")
	rootCmd.PersistentFlags().StringVar(&flags.StoragePath, "storage-path", "", "可信设置密钥库目录 (覆盖配置文件)")

	rootCmd.AddCommand(newProveCmd(flags))
	rootCmd.AddCommand(newVerifyCmd(flags))
	rootCmd.AddCommand(newIdentityCmd(flags))
	rootCmd.AddCommand(newServeCmd(flags))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// appOptions 把全局标志转换为应用选项
func (f *GlobalFlags) appOptions(extra ...app.Option) []app.Option {
	opts := []app.Option{app.WithConfigFile(f.ConfigPath)}
	if f.Backend != "" {
		opts = append(opts, app.WithProverBackend(f.Backend))
	}
	if f.StoragePath != "" {
		opts = append(opts, app.WithStoragePath(f.StoragePath))
	}
	return append(opts, extra...)
}

// withApp 启动应用，执行 fn 后停止应用
func withApp(flags *GlobalFlags, fn func(a app.App) error, extra ...app.Option) (err error) {
	a, err := app.Start(flags.appOptions(extra...)...)
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := a.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}()
	return fn(a)
}
