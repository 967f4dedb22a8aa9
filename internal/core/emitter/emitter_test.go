package emitter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/weisyn/hfproof/pkg/types"
)

func sampleReceipt() *types.Receipt {
	return &types.Receipt{
		Scheme:  "dev",
		Seal:    []byte{0xde, 0xad, 0xbe, 0xef},
		Journal: []byte{0x01, 0x02, 0xab},
	}
}

func sampleID() types.ProgramIdentity {
	return types.ProgramIdentity{0x04030201, 0, 0, 0, 0, 0, 0, 0xffffffff}
}

// TestBuild 测试外部表示的字段格式
func TestBuild(t *testing.T) {
	out, err := Build(sampleReceipt(), sampleID())
	require.NoError(t, err)

	require.Equal(t, "0x0102ab", out.PubInputs)
	require.Equal(t, "0x01020304"+strings.Repeat("00", 24)+"ffffffff", out.ImageID)
	require.True(t, strings.HasPrefix(out.Proof, "0x"))
	require.Equal(t, strings.ToLower(out.Proof), out.Proof)

	raw, err := RawProofHex(out)
	require.NoError(t, err)
	require.Equal(t, out.Proof[2:], raw)
}

// TestDocument 测试 JSON 文档恰好包含三个字段
func TestDocument(t *testing.T) {
	out, err := Build(sampleReceipt(), sampleID())
	require.NoError(t, err)

	doc, err := Document(out)
	require.NoError(t, err)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(doc, &fields))
	require.Len(t, fields, 3)
	require.Equal(t, out.Proof, fields["proof"])
	require.Equal(t, out.PubInputs, fields["pub_inputs"])
	require.Equal(t, out.ImageID, fields["image_id"])

	decoded, err := DecodeDocument(doc)
	require.NoError(t, err)
	require.Equal(t, out, decoded)
}

// TestDecodeDocument_Invalid 测试格式错误的文档
func TestDecodeDocument_Invalid(t *testing.T) {
	for _, doc := range []string{
		`not json`,
		`{"proof":"0x00","pub_inputs":"0x00","image_id":"0x00","extra":"x"}`,
		`{"proof":"00","pub_inputs":"0x00","image_id":"0x00"}`,
		`{"proof":"0xAB","pub_inputs":"0x00","image_id":"0x00"}`,
		`{"proof":"0x0","pub_inputs":"0x00","image_id":"0x00"}`,
		`{"proof":"0x00","pub_inputs":"0x00"}`,
		`{"PROOF":"0x00","Pub_Inputs":"0x00","IMAGE_ID":"0x00"}`,
		`{"proof":"0x00","pub_inputs":"0x00","image_id":"0x00"} trailing`,
		`{"proof":"0x00","pub_inputs":"0x00","image_id":"0x00"}{}`,
		`{"proof":1,"pub_inputs":"0x00","image_id":"0x00"}`,
		`[]`,
	} {
		_, err := DecodeDocument([]byte(doc))
		require.ErrorIs(t, err, ErrMalformedArtifact, doc)
	}
}

// TestDecodeDocument_Whitespace 测试文档前后的空白被接受
func TestDecodeDocument_Whitespace(t *testing.T) {
	out, err := DecodeDocument([]byte("\n {\"image_id\":\"0x01\",\"proof\":\"0xab\",\"pub_inputs\":\"0x00\"}\n"))
	require.NoError(t, err)
	require.Equal(t, &types.ProofOutput{Proof: "0xab", PubInputs: "0x00", ImageID: "0x01"}, out)
}

// TestReceiptRoundTrip 测试证明产物逐字节可逆
func TestReceiptRoundTrip(t *testing.T) {
	out, err := Build(sampleReceipt(), sampleID())
	require.NoError(t, err)

	raw, err := RawProofHex(out)
	require.NoError(t, err)
	b, err := DecodeRawProof(raw)
	require.NoError(t, err)

	receipt, err := DecodeReceipt(b)
	require.NoError(t, err)
	require.Equal(t, sampleReceipt(), receipt)

	again, err := EncodeReceipt(receipt)
	require.NoError(t, err)
	require.Equal(t, b, again)

	parsed, err := Parse(out)
	require.NoError(t, err)
	require.Equal(t, sampleReceipt(), parsed.Receipt)
	require.Equal(t, sampleReceipt().Journal, parsed.PubInputs)
	require.Equal(t, sampleID(), parsed.ImageID)
}

// TestDecodeReceipt_Invalid 测试无效或非规范的 CBOR
func TestDecodeReceipt_Invalid(t *testing.T) {
	_, err := DecodeReceipt([]byte{0xff, 0x00})
	require.ErrorIs(t, err, ErrMalformedArtifact)

	b, err := EncodeReceipt(sampleReceipt())
	require.NoError(t, err)
	_, err = DecodeReceipt(append(b, 0x00))
	require.ErrorIs(t, err, ErrMalformedArtifact)

	_, err = DecodeRawProof("ABCD")
	require.ErrorIs(t, err, ErrMalformedArtifact)
	_, err = DecodeRawProof("abc")
	require.ErrorIs(t, err, ErrMalformedArtifact)
}

// TestWriteArtifacts 测试两个产物文件的内容
func TestWriteArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	out, err := Build(sampleReceipt(), sampleID())
	require.NoError(t, err)

	paths, err := WriteArtifacts(dir, out)
	require.NoError(t, err)

	txt, err := os.ReadFile(paths.ProofText)
	require.NoError(t, err)
	require.Equal(t, out.Proof[2:], string(txt))

	doc, err := os.ReadFile(paths.ProofJSON)
	require.NoError(t, err)
	decoded, err := DecodeDocument(doc)
	require.NoError(t, err)
	require.Equal(t, out, decoded)

	// 目录中只有两个产物，没有残留的临时文件
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

// TestWriteArtifacts_NoPartialOutput 测试失败时不留下任何产物
func TestWriteArtifacts_NoPartialOutput(t *testing.T) {
	dir := t.TempDir()

	// proof.json 位置被目录占据，重命名失败
	require.NoError(t, os.Mkdir(filepath.Join(dir, ProofJSONFile), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProofJSONFile, "keep"), []byte("x"), 0o644))

	out, err := Build(sampleReceipt(), sampleID())
	require.NoError(t, err)
	_, err = WriteArtifacts(dir, out)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, ProofTextFile))
	require.True(t, os.IsNotExist(statErr))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// 格式错误的输出在写文件之前就被拒绝
	_, err = WriteArtifacts(dir, &types.ProofOutput{Proof: "zz"})
	require.ErrorIs(t, err, ErrMalformedArtifact)
}
