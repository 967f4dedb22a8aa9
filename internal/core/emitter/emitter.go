// Package emitter 生成证明的外部表示
//
// 📋 **产物格式**
// - proof.json：{"proof":"0x…","pub_inputs":"0x…","image_id":"0x…"}，字段名和前缀是线上格式
// - proof.txt：证明产物（CBOR 编码的 Receipt）的小写十六进制，无前缀、无换行
//
// 所有十六进制都是小写；解码方向与编码方向逐字节可逆。
package emitter

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fxamacker/cbor/v2"
	"github.com/weisyn/hfproof/pkg/types"
)

// 产物文件名
const (
	ProofTextFile = "proof.txt"
	ProofJSONFile = "proof.json"
)

// ErrMalformedArtifact 产物格式错误
var ErrMalformedArtifact = errors.New("malformed proof artifact")

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	// 确定性编码：相同 Receipt 总是得到相同字节
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// EncodeReceipt 以确定性 CBOR 编码证明产物
func EncodeReceipt(receipt *types.Receipt) ([]byte, error) {
	if receipt == nil {
		return nil, fmt.Errorf("%w: nil receipt", ErrMalformedArtifact)
	}
	return encMode.Marshal(receipt)
}

// DecodeReceipt 解码 CBOR 证明产物
//
// 只接受规范编码：解码后重新编码必须与输入逐字节一致。
func DecodeReceipt(b []byte) (*types.Receipt, error) {
	var receipt types.Receipt
	if err := decMode.Unmarshal(b, &receipt); err != nil {
		return nil, fmt.Errorf("%w: decode receipt: %v", ErrMalformedArtifact, err)
	}
	canonical, err := encMode.Marshal(&receipt)
	if err != nil {
		return nil, fmt.Errorf("%w: re-encode receipt: %v", ErrMalformedArtifact, err)
	}
	if !bytes.Equal(canonical, b) {
		return nil, fmt.Errorf("%w: receipt is not canonically encoded", ErrMalformedArtifact)
	}
	return &receipt, nil
}

// Build 组装证明的外部表示
func Build(receipt *types.Receipt, id types.ProgramIdentity) (*types.ProofOutput, error) {
	receiptBytes, err := EncodeReceipt(receipt)
	if err != nil {
		return nil, err
	}
	return &types.ProofOutput{
		Proof:     hexutil.Encode(receiptBytes),
		PubInputs: hexutil.Encode(receipt.Journal),
		ImageID:   hexutil.Encode(id.Bytes()),
	}, nil
}

// Document 生成 proof.json 的内容
func Document(out *types.ProofOutput) ([]byte, error) {
	if out == nil {
		return nil, fmt.Errorf("%w: nil proof output", ErrMalformedArtifact)
	}
	return json.Marshal(out)
}

// RawProofHex 生成 proof.txt 的内容：证明十六进制去掉 0x 前缀
func RawProofHex(out *types.ProofOutput) (string, error) {
	if out == nil {
		return "", fmt.Errorf("%w: nil proof output", ErrMalformedArtifact)
	}
	b, err := hexutil.Decode(out.Proof)
	if err != nil {
		return "", fmt.Errorf("%w: proof: %v", ErrMalformedArtifact, err)
	}
	return hex.EncodeToString(b), nil
}

// documentFields proof.json 的字段名，大小写敏感
var documentFields = []string{"proof", "pub_inputs", "image_id"}

// DecodeDocument 解析 proof.json
//
// 必须恰好是一个 JSON 对象，字段名逐字匹配，三个字段都为带 0x 前缀的小写十六进制。
func DecodeDocument(b []byte) (*types.ProofOutput, error) {
	dec := json.NewDecoder(bytes.NewReader(b))

	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: decode document: %v", ErrMalformedArtifact, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrMalformedArtifact)
	}
	if len(fields) != len(documentFields) {
		return nil, fmt.Errorf("%w: document must have exactly %d fields", ErrMalformedArtifact, len(documentFields))
	}

	values := make(map[string]string, len(documentFields))
	for _, name := range documentFields {
		raw, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing field %q", ErrMalformedArtifact, name)
		}
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedArtifact, name, err)
		}
		if err := checkHex(v); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedArtifact, name, err)
		}
		values[name] = v
	}
	return &types.ProofOutput{
		Proof:     values["proof"],
		PubInputs: values["pub_inputs"],
		ImageID:   values["image_id"],
	}, nil
}

// DecodeRawProof 解析 proof.txt 的内容为 CBOR 字节
func DecodeRawProof(s string) ([]byte, error) {
	if strings.ToLower(s) != s {
		return nil, fmt.Errorf("%w: raw proof must be lowercase hex", ErrMalformedArtifact)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: raw proof: %v", ErrMalformedArtifact, err)
	}
	return b, nil
}

// Parsed 解码后的外部表示
type Parsed struct {
	Receipt   *types.Receipt
	PubInputs []byte
	ImageID   types.ProgramIdentity
}

// Parse 把外部表示还原为证明产物、公开输入和程序标识
func Parse(out *types.ProofOutput) (*Parsed, error) {
	receiptBytes, err := hexutil.Decode(out.Proof)
	if err != nil {
		return nil, fmt.Errorf("%w: proof: %v", ErrMalformedArtifact, err)
	}
	receipt, err := DecodeReceipt(receiptBytes)
	if err != nil {
		return nil, err
	}
	pubInputs, err := hexutil.Decode(out.PubInputs)
	if err != nil {
		return nil, fmt.Errorf("%w: pub_inputs: %v", ErrMalformedArtifact, err)
	}
	idBytes, err := hexutil.Decode(out.ImageID)
	if err != nil {
		return nil, fmt.Errorf("%w: image_id: %v", ErrMalformedArtifact, err)
	}
	id, err := types.ProgramIdentityFromBytes(idBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: image_id: %v", ErrMalformedArtifact, err)
	}
	return &Parsed{Receipt: receipt, PubInputs: pubInputs, ImageID: id}, nil
}

// checkHex 校验 0x 前缀的小写十六进制
func checkHex(s string) error {
	if _, err := hexutil.Decode(s); err != nil {
		return err
	}
	if strings.ToLower(s) != s {
		return errors.New("hex must be lowercase")
	}
	return nil
}
