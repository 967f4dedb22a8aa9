package prover

// 证明配置默认值
const (
	// BackendGroth16 gnark Groth16 证明后端
	BackendGroth16 = "groth16"

	// BackendDev 开发模式后端：确定性的伪造密封，不提供任何密码学保证
	BackendDev = "dev"

	// CurveBN254 BN254 曲线
	CurveBN254 = "bn254"

	// defaultBackend 默认使用真实证明后端
	defaultBackend = BackendGroth16

	// defaultCurve 默认曲线
	defaultCurve = CurveBN254

	// defaultOutputDir 默认在当前目录写出 proof.txt / proof.json
	defaultOutputDir = "."
)
