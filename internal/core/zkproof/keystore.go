package zkproof

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/hfproof/pkg/types"
)

// 键布局：setup/<image_id_hex>/pk、setup/<image_id_hex>/vk
const setupKeyPrefix = "setup/"

func provingKeyKey(id types.ProgramIdentity) []byte {
	return []byte(setupKeyPrefix + id.Hex() + "/pk")
}

func verifyingKeyKey(id types.ProgramIdentity) []byte {
	return []byte(setupKeyPrefix + id.Hex() + "/vk")
}

// KeyStore 持久化可信设置
//
// 同一程序标识只保存一组密钥，不同进程生成的证明都能用它验证。
// store 为空时 KeyStore 不做任何事，密钥只存在于内存缓存中。
type KeyStore struct {
	store  storage.BadgerStore
	curve  ecc.ID
	logger log.Logger
}

// NewKeyStore 创建密钥库
func NewKeyStore(store storage.BadgerStore, curve ecc.ID, logger log.Logger) *KeyStore {
	return &KeyStore{store: store, curve: curve, logger: logger}
}

// Load 读取密钥；不存在时 found 为 false
func (ks *KeyStore) Load(ctx context.Context, id types.ProgramIdentity) (pk groth16.ProvingKey, vk groth16.VerifyingKey, found bool, err error) {
	if ks == nil || ks.store == nil {
		return nil, nil, false, nil
	}

	pkBytes, err := ks.store.Get(ctx, provingKeyKey(id))
	if err != nil {
		return nil, nil, false, fmt.Errorf("读取ProvingKey失败: %w", err)
	}
	vkBytes, err := ks.store.Get(ctx, verifyingKeyKey(id))
	if err != nil {
		return nil, nil, false, fmt.Errorf("读取VerifyingKey失败: %w", err)
	}
	if pkBytes == nil || vkBytes == nil {
		if pkBytes != nil || vkBytes != nil {
			ks.logger.Warnf("密钥库中的可信设置不完整，将重新生成: image_id=%s", id)
		}
		return nil, nil, false, nil
	}

	pk = groth16.NewProvingKey(ks.curve)
	if _, err := pk.ReadFrom(bytes.NewReader(pkBytes)); err != nil {
		return nil, nil, false, fmt.Errorf("解码ProvingKey失败: %w", err)
	}
	vk = groth16.NewVerifyingKey(ks.curve)
	if _, err := vk.ReadFrom(bytes.NewReader(vkBytes)); err != nil {
		return nil, nil, false, fmt.Errorf("解码VerifyingKey失败: %w", err)
	}
	return pk, vk, true, nil
}

// Save 在同一事务中写入两把密钥
func (ks *KeyStore) Save(ctx context.Context, id types.ProgramIdentity, pk groth16.ProvingKey, vk groth16.VerifyingKey) error {
	if ks == nil || ks.store == nil {
		return nil
	}

	var pkBuf, vkBuf bytes.Buffer
	if _, err := pk.WriteTo(&pkBuf); err != nil {
		return fmt.Errorf("序列化ProvingKey失败: %w", err)
	}
	if _, err := vk.WriteTo(&vkBuf); err != nil {
		return fmt.Errorf("序列化VerifyingKey失败: %w", err)
	}

	err := ks.store.RunInTransaction(ctx, func(tx storage.BadgerTransaction) error {
		if err := tx.Set(provingKeyKey(id), pkBuf.Bytes()); err != nil {
			return err
		}
		return tx.Set(verifyingKeyKey(id), vkBuf.Bytes())
	})
	if err != nil {
		return fmt.Errorf("保存可信设置失败: %w", err)
	}

	ks.logger.Infof("可信设置已保存: image_id=%s, pk=%dB, vk=%dB", id, pkBuf.Len(), vkBuf.Len())
	return nil
}

// List 列出已保存可信设置的程序标识（十六进制）
func (ks *KeyStore) List(ctx context.Context) ([]string, error) {
	if ks == nil || ks.store == nil {
		return nil, nil
	}
	keys, err := ks.store.Keys(ctx, []byte(setupKeyPrefix))
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, key := range keys {
		if idHex, ok := strings.CutSuffix(strings.TrimPrefix(key, setupKeyPrefix), "/vk"); ok {
			ids = append(ids, idHex)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
