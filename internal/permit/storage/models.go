package storage

import (
	"time"

	"gorm.io/gorm"

	"github.com/odariane19-ui/permiscard/internal/permit/record"
)

type permitModel struct {
	RecordID       string `gorm:"primaryKey;column:record_id"`
	HolderName     string
	SerialNumber   string `gorm:"index"`
	Zone           string `gorm:"index"`
	PermitType     string `gorm:"column:permit_type;index"`
	ExpirationDate time.Time

	// set once a credential has been issued for the record
	CredentialPayload   *string
	CredentialSignature *string
	CredentialIssuedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (permitModel) TableName() string {
	return "permits"
}

func (m *permitModel) toRecord() *record.Record {
	rec := &record.Record{
		ID:             m.RecordID,
		HolderName:     m.HolderName,
		SerialNumber:   m.SerialNumber,
		Zone:           m.Zone,
		Type:           m.PermitType,
		ExpirationDate: m.ExpirationDate,
	}

	if m.CredentialPayload != nil && m.CredentialSignature != nil {
		cred := &record.IssuedCredential{
			PayloadEncoded: *m.CredentialPayload,
			Signature:      *m.CredentialSignature,
		}
		if m.CredentialIssuedAt != nil {
			cred.IssuedAt = *m.CredentialIssuedAt
		}
		rec.Credential = cred
	}

	return rec
}

func permitModelFromRecord(rec *record.Record) *permitModel {
	m := &permitModel{
		RecordID:       rec.ID,
		HolderName:     rec.HolderName,
		SerialNumber:   rec.SerialNumber,
		Zone:           rec.Zone,
		PermitType:     rec.Type,
		ExpirationDate: rec.ExpirationDate,
	}

	if rec.Credential != nil {
		m.CredentialPayload = &rec.Credential.PayloadEncoded
		m.CredentialSignature = &rec.Credential.Signature
		issuedAt := rec.Credential.IssuedAt
		m.CredentialIssuedAt = &issuedAt
	}

	return m
}

type scanLogModel struct {
	ID           uint `gorm:"primaryKey;autoIncrement"`
	CredentialID *string
	AgentID      *string
	Timestamp    time.Time `gorm:"index"`
	Outcome      string    `gorm:"index"`
	Mode         string
	Message      string
	CreatedAt    time.Time
}

func (scanLogModel) TableName() string {
	return "scan_logs"
}

// AutoMigrate creates or updates the authority-side tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&permitModel{}, &scanLogModel{})
}
