package signer

import "time"

// SignedCredential 随记录一同持久化的签发结果
// 载荷与签名均为 URL 安全 base64 编码
type SignedCredential struct {
	PayloadEncoded string
	Signature      string
	IssuedAt       time.Time
}
