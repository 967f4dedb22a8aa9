package emitter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/weisyn/hfproof/pkg/types"
)

// ArtifactPaths 写出的产物路径
type ArtifactPaths struct {
	ProofText string
	ProofJSON string
}

// WriteArtifacts 在 dir 中写出 proof.txt 和 proof.json
//
// 先写临时文件再重命名；任何一步失败都会清理已写出的文件，不留下部分产物。
func WriteArtifacts(dir string, out *types.ProofOutput) (*ArtifactPaths, error) {
	raw, err := RawProofHex(out)
	if err != nil {
		return nil, err
	}
	doc, err := Document(out)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}

	paths := &ArtifactPaths{
		ProofText: filepath.Join(dir, ProofTextFile),
		ProofJSON: filepath.Join(dir, ProofJSONFile),
	}

	txtTmp, err := writeTemp(dir, ProofTextFile, []byte(raw))
	if err != nil {
		return nil, err
	}
	jsonTmp, err := writeTemp(dir, ProofJSONFile, doc)
	if err != nil {
		_ = os.Remove(txtTmp)
		return nil, err
	}

	if err := os.Rename(txtTmp, paths.ProofText); err != nil {
		_ = os.Remove(txtTmp)
		_ = os.Remove(jsonTmp)
		return nil, fmt.Errorf("写出 %s 失败: %w", ProofTextFile, err)
	}
	if err := os.Rename(jsonTmp, paths.ProofJSON); err != nil {
		_ = os.Remove(jsonTmp)
		_ = os.Remove(paths.ProofText)
		return nil, fmt.Errorf("写出 %s 失败: %w", ProofJSONFile, err)
	}
	return paths, nil
}

func writeTemp(dir, name string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("写入 %s 失败: %w", name, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("同步 %s 失败: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("关闭 %s 失败: %w", name, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return tmp, nil
}
