package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadHash(t *testing.T) {
	t.Parallel()

	payload := map[string]string{"kz095": "100.00", "period": "2026-01"}

	first, err := PayloadHash(payload)
	require.NoError(t, err)
	second, err := PayloadHash(payload)
	require.NoError(t, err)

	assert.Equal(t, first, second, "equal payloads must hash identically")
	assert.Len(t, first, 16)

	other, err := PayloadHash(map[string]string{"kz095": "100.01"})
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestPayloadHashRejectsUnmarshalable(t *testing.T) {
	t.Parallel()

	_, err := PayloadHash(make(chan int))
	assert.Error(t, err)
}

func TestLoggerAssignsIdentity(t *testing.T) {
	t.Parallel()

	l := NewLogger()
	entry := l.Log(Entry{
		Action:        ActionSubmissionConfirm,
		CorrelationID: "corr-1",
		Period:        "2026-01",
		Success:       true,
	})

	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.Timestamp.IsZero())
	assert.Equal(t, ActionSubmissionConfirm, entry.Action)
}

func TestGetRecentNewestFirst(t *testing.T) {
	t.Parallel()

	l := NewLogger()
	l.Log(Entry{Action: ActionCalculate, Period: "2026-01"})
	l.Log(Entry{Action: ActionValidate, Period: "2026-01"})
	l.Log(Entry{Action: ActionExportXML, Period: "2026-01"})

	recent := l.GetRecent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, ActionExportXML, recent[0].Action)
	assert.Equal(t, ActionValidate, recent[1].Action)

	all := l.GetRecent(0)
	assert.Len(t, all, 3)
}
