package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWithCorrelationIDTagsEvents(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	parent := zerolog.New(&buf)

	tagged := WithCorrelationID(parent, "corr-42")
	tagged.Info().Msg("submission prepared")

	assert.Contains(t, buf.String(), `"correlation_id":"corr-42"`)
}

func TestWithCorrelationIDEmptyPassthrough(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	parent := zerolog.New(&buf)

	passthrough := WithCorrelationID(parent, "")
	passthrough.Info().Msg("submission prepared")

	assert.NotContains(t, buf.String(), "correlation_id")
}
