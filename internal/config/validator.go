package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/weisyn/hfproof/internal/config/prover"
	"github.com/weisyn/hfproof/pkg/types"
)

// ValidationError 配置验证错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("配置验证失败 [%s]: %s", e.Field, e.Message)
}

// ValidateAppConfig 验证用户配置中显式出现的字段
//
// 只校验用户写入配置文件的值；未出现的字段由默认值填充，默认值总是合法的。
func ValidateAppConfig(appConfig *types.AppConfig) error {
	var errs []error

	if appConfig.Prover != nil {
		if err := prover.New(appConfig.Prover).GetOptions().Validate(); err != nil {
			errs = append(errs, &ValidationError{Field: "prover", Message: err.Error()})
		}
	}

	if appConfig.API != nil {
		if appConfig.API.ListenAddr != nil {
			if _, _, err := net.SplitHostPort(*appConfig.API.ListenAddr); err != nil {
				errs = append(errs, &ValidationError{Field: "api.listen_addr", Message: err.Error()})
			}
		}
		if appConfig.API.MaxConcurrentProofs != nil && *appConfig.API.MaxConcurrentProofs <= 0 {
			errs = append(errs, &ValidationError{Field: "api.max_concurrent_proofs", Message: "必须大于0"})
		}
	}

	if appConfig.Log != nil && appConfig.Log.Level != nil {
		switch *appConfig.Log.Level {
		case "debug", "info", "warn", "error", "panic", "fatal":
		default:
			errs = append(errs, &ValidationError{Field: "log.level", Message: fmt.Sprintf("未知日志级别 %q", *appConfig.Log.Level)})
		}
	}

	return errors.Join(errs...)
}
