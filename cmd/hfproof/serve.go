package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/weisyn/hfproof/internal/app"
)

func newServeCmd(global *GlobalFlags) *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动HTTP证明服务",
		Long: `启动HTTP证明服务:
  POST /v1/proofs          生成证明
  POST /v1/proofs/verify   验证证明文档
  GET  /v1/identity        程序标识
  GET  /healthz            健康检查
  GET  /metrics            Prometheus 指标`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			extra := []app.Option{app.WithAPI()}
			if listenAddr != "" {
				extra = append(extra, app.WithListenAddr(listenAddr))
			}

			a, err := app.Start(global.appOptions(extra...)...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", a.Server().Addr())
			return a.Wait()
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "HTTP监听地址 (覆盖配置文件 api.listen_addr)")
	return cmd
}
