package signer

import (
	"context"
	"encoding/base64"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"

	"github.com/odariane19-ui/permiscard/internal/permit/credential"
	"github.com/odariane19-ui/permiscard/internal/permit/keys"
)

var (
	ErrSigning = errors.New("failed to sign credential payload")
)

// Service 凭证签发服务接口
type Service interface {
	Issue(ctx context.Context, recordID string) (*SignedCredential, error)
}

// service 凭证签发服务实现
type service struct {
	keychain *keys.Keychain
	clock    time2.Clock
}

// NewService 创建新的凭证签发服务
// 密钥链为只读共享状态，签发操作可并发调用
//
//nolint:ireturn // returning interface is intentional for abstraction
func NewService(keychain *keys.Keychain, clock time2.Clock) Service {
	return &service{
		keychain: keychain,
		clock:    clock,
	}
}

// Issue 为记录签发一张新凭证
// 同一记录两次签发的时间戳不同，签名也随之不同，这是有意为之
func (s *service) Issue(_ context.Context, recordID string) (*SignedCredential, error) {
	issuedAt := s.clock.Now()

	// 构建载荷（当前时间戳 + 架构版本）
	encoded, err := credential.Encode(recordID, issuedAt.UnixMilli(), credential.CurrentSchemaVersion)
	if err != nil {
		return nil, err
	}

	// 对序列化后的字节原样签名
	signature, err := s.keychain.Sign(encoded)
	if err != nil {
		// 密钥不可用，签发失败，需要运维重新配置密钥
		return nil, errors.Wrap(ErrSigning, err.Error())
	}

	return &SignedCredential{
		PayloadEncoded: base64.RawURLEncoding.EncodeToString(encoded),
		Signature:      base64.RawURLEncoding.EncodeToString(signature),
		IssuedAt:       issuedAt,
	}, nil
}
