// hfproof 健康因子证明命令行工具
//
// 读取债务与抵押品价值，在可验证执行边界内计算健康因子，
// 写出 proof.txt / proof.json，并提供离线验证与HTTP证明服务。
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
