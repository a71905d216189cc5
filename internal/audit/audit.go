// Package audit records business-level events: who did what when, with a
// payload hash instead of the payload. Sensitive content (PII, full XML)
// never reaches the log; entries carry a SHA-256 digest plus metadata.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"uvaexpress/internal/logger"
)

// Action names a recorded audit event.
type Action string

const (
	ActionCalculate              Action = "uva.calculate"
	ActionValidate               Action = "uva.validate"
	ActionExportXML              Action = "uva.export_xml"
	ActionRKSVValidate           Action = "rksv.validate"
	ActionSubmissionPrepare      Action = "submission.prepare"
	ActionSubmissionConfirm      Action = "submission.confirm"
	ActionSubmissionStatusChange Action = "submission.status_change"
)

// Entry is one audit record.
type Entry struct {
	ID            string            `json:"id"`
	Action        Action            `json:"action"`
	CorrelationID string            `json:"correlation_id"`
	Timestamp     time.Time         `json:"timestamp"`
	Period        string            `json:"period,omitempty"`
	TenantID      string            `json:"tenant_id,omitempty"`
	UserID        string            `json:"user_id,omitempty"`
	OldStatus     string            `json:"old_status,omitempty"`
	NewStatus     string            `json:"new_status,omitempty"`
	PayloadHash   string            `json:"payload_hash,omitempty"`
	Success       bool              `json:"success"`
	ErrorCode     string            `json:"error_code,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// PayloadHash returns a truncated SHA-256 digest of the payload's JSON
// form. Map keys are sorted by encoding/json, so the digest is stable for
// equal payloads.
func PayloadHash(payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("audit: hash payload: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])[:16], nil
}

// maxRecent bounds the in-memory ring used for debugging.
const maxRecent = 1000

// Logger writes audit entries to the structured log and keeps a bounded
// in-memory ring of recent entries. Safe for concurrent use.
type Logger struct {
	mu     sync.Mutex
	log    zerolog.Logger
	recent []Entry
	now    func() time.Time
}

// NewLogger creates an audit logger.
func NewLogger() *Logger {
	return &Logger{
		log: logger.WithComponent("audit"),
		now: time.Now,
	}
}

// Log completes the entry (id, timestamp), writes it to the structured
// log and retains it in the ring. The completed entry is returned.
func (l *Logger) Log(entry Entry) Entry {
	entry.ID = uuid.NewString()
	entry.Timestamp = l.now().UTC()

	l.log.Info().
		Str("audit_id", entry.ID).
		Str("action", string(entry.Action)).
		Str("correlation_id", entry.CorrelationID).
		Str("period", entry.Period).
		Str("old_status", entry.OldStatus).
		Str("new_status", entry.NewStatus).
		Str("payload_hash", entry.PayloadHash).
		Bool("success", entry.Success).
		Str("error_code", entry.ErrorCode).
		Msg("audit")

	l.mu.Lock()
	defer l.mu.Unlock()
	l.recent = append(l.recent, entry)
	if len(l.recent) > maxRecent {
		l.recent = append(l.recent[:0], l.recent[len(l.recent)-maxRecent:]...)
	}
	return entry
}

// GetRecent returns up to limit entries, newest first.
func (l *Logger) GetRecent(limit int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit <= 0 || limit > len(l.recent) {
		limit = len(l.recent)
	}
	out := make([]Entry, 0, limit)
	for i := len(l.recent) - 1; i >= len(l.recent)-limit; i-- {
		out = append(out, l.recent[i])
	}
	return out
}
