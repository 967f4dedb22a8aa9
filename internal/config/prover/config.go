package prover

import (
	"fmt"
	"strings"

	configtypes "github.com/weisyn/hfproof/pkg/types"
)

// ProverOptions 证明配置选项
type ProverOptions struct {
	Backend   string `json:"backend"`    // 证明后端：groth16 | dev
	Curve     string `json:"curve"`      // 椭圆曲线（Groth16 后端使用）
	OutputDir string `json:"output_dir"` // 产物输出目录
}

// Validate 校验配置取值
func (o *ProverOptions) Validate() error {
	switch o.Backend {
	case BackendGroth16, BackendDev:
	default:
		return fmt.Errorf("unsupported prover backend %q (want %s or %s)", o.Backend, BackendGroth16, BackendDev)
	}
	if o.Curve != CurveBN254 {
		return fmt.Errorf("unsupported curve %q (want %s)", o.Curve, CurveBN254)
	}
	return nil
}

// Config 证明配置实现
type Config struct {
	options *ProverOptions
}

// New 创建证明配置实现
func New(userConfig *configtypes.UserProverConfig) *Config {
	options := &ProverOptions{
		Backend:   defaultBackend,
		Curve:     defaultCurve,
		OutputDir: defaultOutputDir,
	}

	if userConfig != nil {
		if userConfig.Backend != nil {
			options.Backend = strings.ToLower(strings.TrimSpace(*userConfig.Backend))
		}
		if userConfig.Curve != nil {
			options.Curve = strings.ToLower(strings.TrimSpace(*userConfig.Curve))
		}
		if userConfig.OutputDir != nil && *userConfig.OutputDir != "" {
			options.OutputDir = *userConfig.OutputDir
		}
	}

	return &Config{options: options}
}

// GetOptions 获取完整的证明配置选项
func (c *Config) GetOptions() *ProverOptions {
	return c.options
}
