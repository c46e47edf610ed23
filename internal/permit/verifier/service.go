package verifier

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"

	"github.com/odariane19-ui/permiscard/internal/permit/audit"
	"github.com/odariane19-ui/permiscard/internal/permit/credential"
	"github.com/odariane19-ui/permiscard/internal/permit/record"
	"github.com/odariane19-ui/permiscard/internal/util"
)

// Service 凭证核验服务接口
// 返回非空 Outcome 的调用恰好写入一条审计记录
// 返回 error 的调用不写审计，可换用其他记录源重试
type Service interface {
	Verify(ctx context.Context, req *VerifyRequest) (*Outcome, error)
}

// service 凭证核验服务实现
type service struct {
	pub    ed25519.PublicKey
	clock  time2.Clock
	maxAge time.Duration
	audit  audit.Logger
}

// NewService 创建新的凭证核验服务
// maxAge 限定凭证签发后的可用时长
//
//nolint:ireturn // returning interface is intentional for abstraction
func NewService(pub ed25519.PublicKey, clock time2.Clock, maxAge time.Duration, auditLogger audit.Logger) Service {
	return &service{
		pub:    pub,
		clock:  clock,
		maxAge: maxAge,
		audit:  auditLogger,
	}
}

// Verify 对一次扫描的凭证执行完整分类流程
// 签名未通过校验前不信任载荷衍生的任何内容
func (s *service) Verify(ctx context.Context, req *VerifyRequest) (*Outcome, error) {
	// 解码载荷
	payloadBytes, err := base64.RawURLEncoding.DecodeString(req.PayloadEncoded)
	if err != nil {
		return s.terminal(ctx, req, nil, &Outcome{
			Result:  ResultInvalid,
			Message: "credential payload encoding is not valid",
		}), nil
	}

	// 解码签名
	sigBytes, err := base64.RawURLEncoding.DecodeString(req.Signature)
	if err != nil {
		return s.terminal(ctx, req, nil, &Outcome{
			Result:  ResultInvalid,
			Message: "credential signature encoding is not valid",
		}), nil
	}

	// 验证签名
	if len(sigBytes) != ed25519.SignatureSize || !ed25519.Verify(s.pub, payloadBytes, sigBytes) {
		return s.terminal(ctx, req, nil, &Outcome{
			Result:  ResultInvalid,
			Message: "credential signature does not match payload",
		}), nil
	}

	// 解析载荷
	payload, err := credential.Decode(payloadBytes)
	if err != nil {
		// 签名有效但结构不可读，签发端缺陷或本端不认识的架构版本
		return s.terminal(ctx, req, nil, &Outcome{
			Result:  ResultInvalid,
			Message: "credential payload is malformed",
		}), nil
	}

	if payload.SchemaVersion > credential.CurrentSchemaVersion {
		return s.terminal(ctx, req, payload, &Outcome{
			Result:  ResultInvalid,
			Message: fmt.Sprintf("unsupported credential schema version %d", payload.SchemaVersion),
			Payload: payload,
		}), nil
	}

	now := s.clock.Now()

	// 检查新鲜度窗口
	// 过期凭证归类为 invalid 而非 expired，凭证窗口关闭不代表许可本身失效
	if now.UnixMilli()-payload.IssuedAt > s.maxAge.Milliseconds() {
		return s.terminal(ctx, req, payload, &Outcome{
			Result:  ResultInvalid,
			Message: "stale credential, older than the freshness window, a fresh pass must be issued",
			Payload: payload,
		}), nil
	}

	// 解析许可记录
	rec, err := req.Source.FetchRecord(ctx, payload.RecordID)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			message := "permit record does not exist"
			if req.Mode == ModeOffline {
				message = "permit record is not cached on this device"
			}

			return s.terminal(ctx, req, payload, &Outcome{
				Result:  ResultInvalid,
				Message: message,
				Payload: payload,
			}), nil
		}

		// 基础设施故障，不是对凭证本身的判定
		return nil, errors.Wrap(err, "failed to resolve permit record")
	}

	// 检查许可有效期
	if rec.Expired(now) {
		return s.terminal(ctx, req, payload, &Outcome{
			Result:  ResultExpired,
			Message: fmt.Sprintf("permit expired on %s", rec.ExpirationDate.UTC().Format("2006-01-02")),
			Record:  rec,
			Payload: payload,
		}), nil
	}

	return s.terminal(ctx, req, payload, &Outcome{
		Result:  ResultValid,
		Message: "permit verified",
		Record:  rec,
		Payload: payload,
	}), nil
}

// terminal 为分类结果写入审计记录并返回结果
// 审计写入失败不改变已做出的判定，仅记录日志
func (s *service) terminal(ctx context.Context, req *VerifyRequest, payload *credential.Payload, outcome *Outcome) *Outcome {
	event := &audit.ScanEvent{
		Timestamp: s.clock.Now(),
		AgentID:   req.AgentID,
		Outcome:   string(outcome.Result),
		Mode:      string(req.Mode),
		Message:   outcome.Message,
	}
	if payload != nil {
		event.CredentialID = payload.RecordID
	}

	if err := s.audit.LogScan(ctx, event); err != nil {
		util.LogFromContext(ctx).Warn().Err(err).Str("outcome", string(outcome.Result)).Msg("Failed to write scan audit entry")
	}

	return outcome
}
