// Package api 汇总对外服务接口
package api

import (
	"github.com/weisyn/hfproof/internal/api/http"
	"go.uber.org/fx"
)

// Module 返回API模块选项
func Module() fx.Option {
	return fx.Module("api",
		http.Module(),
	)
}
