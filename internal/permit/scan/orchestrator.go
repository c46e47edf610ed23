package scan

import (
	"context"
	"encoding/base64"
	"sync"
	"time"

	"github.com/dropbox/godropbox/time2"

	"github.com/odariane19-ui/permiscard/internal/permit/audit"
	"github.com/odariane19-ui/permiscard/internal/permit/cache"
	"github.com/odariane19-ui/permiscard/internal/permit/credential"
	"github.com/odariane19-ui/permiscard/internal/permit/record"
	"github.com/odariane19-ui/permiscard/internal/permit/transport"
	"github.com/odariane19-ui/permiscard/internal/permit/verifier"
	"github.com/odariane19-ui/permiscard/internal/util"
)

// Orchestrator 扫描编排器，驱动一次扫码走完分类与记录全流程
// 优先在线核验，在线路径基础设施故障时回退设备缓存一次
type Orchestrator struct {
	verifier      verifier.Service
	authority     record.Source
	cache         cache.Store
	audit         audit.Logger
	clock         time2.Clock
	onlineTimeout time.Duration

	// inFlight 串行化核验，进行中时到达的第二次扫码直接拒绝而非排队
	inFlight sync.Mutex

	stateMu sync.RWMutex
	state   State
}

func NewOrchestrator(
	verifierSvc verifier.Service,
	authority record.Source,
	cacheStore cache.Store,
	auditLogger audit.Logger,
	clock time2.Clock,
	onlineTimeout time.Duration,
) *Orchestrator {
	return &Orchestrator{
		verifier:      verifierSvc,
		authority:     authority,
		cache:         cacheStore,
		audit:         auditLogger,
		clock:         clock,
		onlineTimeout: onlineTimeout,
		state:         StateIdle,
	}
}

// State 返回当前生命周期状态
func (o *Orchestrator) State() State {
	o.stateMu.RLock()
	defer o.stateMu.RUnlock()

	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.stateMu.Lock()
	o.state = s
	o.stateMu.Unlock()
}

// Reset 结果展示后回到空闲态，操作员可再次扫码
func (o *Orchestrator) Reset() {
	o.setState(StateIdle)
}

// Scan 对一次扫码结果进行分类
// 核验开始前取消无副作用，开始后必定跑到终态以保证审计完整
// 每个终态恰好一条审计记录，仅 ErrScanInFlight 与核验前取消例外
func (o *Orchestrator) Scan(ctx context.Context, rawURI string, agentID string) (*Result, error) {
	if !o.inFlight.TryLock() {
		return nil, ErrScanInFlight
	}
	defer o.inFlight.Unlock()

	log := util.LogFromContext(ctx)

	o.setState(StateDecoding)

	// 解析凭证 URI
	payloadEncoded, signature, err := transport.FromURI(rawURI)
	if err != nil {
		log.Debug().Err(err).Msg("Scanned code is not a credential uri")

		return o.terminal(ctx, "", agentID, verifier.ModeOnline, &verifier.Outcome{
			Result:  verifier.ResultInvalid,
			Message: "scanned code is not a permit credential",
		}), nil
	}

	if err := ctx.Err(); err != nil {
		o.setState(StateIdle)

		return nil, err
	}

	o.setState(StateVerifying)

	// 核验一旦开始不随调用方取消
	vctx := context.WithoutCancel(ctx)

	// 在线核验
	octx, cancel := context.WithTimeout(vctx, o.onlineTimeout)
	outcome, onlineErr := o.verifier.Verify(octx, &verifier.VerifyRequest{
		PayloadEncoded: payloadEncoded,
		Signature:      signature,
		Source:         o.authority,
		Mode:           verifier.ModeOnline,
		AgentID:        agentID,
	})
	cancel()

	if onlineErr == nil {
		o.primeCache(vctx, outcome)
		o.setState(StateResult)

		return &Result{Outcome: outcome, Mode: verifier.ModeOnline}, nil
	}

	log.Info().Err(onlineErr).Msg("Online verification unavailable, falling back to device cache")

	// 离线回退
	outcome, offlineErr := o.verifier.Verify(vctx, &verifier.VerifyRequest{
		PayloadEncoded: payloadEncoded,
		Signature:      signature,
		Source:         o.cache,
		Mode:           verifier.ModeOffline,
		AgentID:        agentID,
	})
	if offlineErr == nil {
		o.setState(StateResult)

		return &Result{Outcome: outcome, Mode: verifier.ModeOffline}, nil
	}

	log.Warn().Err(offlineErr).Msg("Offline fallback failed as well")

	// 两条路径都无法核验，这不是对凭证本身的判定，消息中已说明
	return o.terminal(ctx, credentialID(payloadEncoded), agentID, verifier.ModeOffline, &verifier.Outcome{
		Result:  verifier.ResultInvalid,
		Message: "could not check the credential, no connectivity to the authority and no usable device cache",
	}), nil
}

// terminal 记录核验器看不到的分类（不可读的码与双路径故障）
// 核验器自行分类的结果由它自己写审计
func (o *Orchestrator) terminal(ctx context.Context, credID string, agentID string, mode verifier.Mode, outcome *verifier.Outcome) *Result {
	event := &audit.ScanEvent{
		Timestamp:    o.clock.Now(),
		CredentialID: credID,
		AgentID:      agentID,
		Outcome:      string(outcome.Result),
		Mode:         string(mode),
		Message:      outcome.Message,
	}
	if err := o.audit.LogScan(ctx, event); err != nil {
		util.LogFromContext(ctx).Warn().Err(err).Msg("Failed to write scan audit entry")
	}

	o.setState(StateResult)

	return &Result{Outcome: outcome, Mode: mode}
}

// primeCache 缓存刚解析到的记录供日后离线使用
// 缓存失败只影响后续离线覆盖，不改变本次结果
func (o *Orchestrator) primeCache(ctx context.Context, outcome *verifier.Outcome) {
	if outcome.Record == nil {
		return
	}

	if err := o.cache.Put(ctx, outcome.Record); err != nil {
		util.LogFromContext(ctx).Warn().Err(err).Str("recordID", outcome.Record.ID).Msg("Failed to cache record snapshot")
	}
}

// credentialID 尽力从载荷提取记录 ID 供审计使用
func credentialID(payloadEncoded string) string {
	b, err := base64.RawURLEncoding.DecodeString(payloadEncoded)
	if err != nil {
		return ""
	}

	p, err := credential.Decode(b)
	if err != nil {
		return ""
	}

	return p.RecordID
}
