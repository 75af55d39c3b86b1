package tslog_test

import (
	"bytes"
	"testing"

	"github.com/gitrdm/treesearch/pkg/treesearch/tslog"
	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesNewlineDelimitedJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := tslog.New(&buf, logiface.LevelInformational)
	require.NotNil(t, logger)

	logger.Info().Field("k", "v").Log("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestDiscardDropsEverything(t *testing.T) {
	logger := tslog.Discard()
	require.NotNil(t, logger)
	logger.Info().Field("k", "v").Log("should not panic nor be observable")
}

func TestNilLoggerIsSafeNoOp(t *testing.T) {
	var logger tslog.Logger
	assert.NotPanics(t, func() {
		logger.Debug().Field("region", "x").Log("nil logger must be a safe no-op")
	})
}
