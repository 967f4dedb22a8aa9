package http

import (
	"go.uber.org/fx"
)

// Module 返回HTTP服务模块
func Module() fx.Option {
	return fx.Module("http",
		fx.Provide(NewServer),
		// 确保服务器被构造，生命周期钩子随之注册
		fx.Invoke(func(*Server) {}),
	)
}
