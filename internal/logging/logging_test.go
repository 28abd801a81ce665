package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jrsteele09/go-gym-server/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	logging.Setup(&buf, "PROD", "warn")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Info().Msg("dropped")
	log.Warn().Str("ssn", "123").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "kept", entry["message"])
	require.Equal(t, "123", entry["ssn"])
}

func TestSetupBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logging.Setup(&buf, "PROD", "loud")

	require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	log.Debug().Msg("dropped")
	require.Empty(t, buf.String())
}
