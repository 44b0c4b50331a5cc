package zaplog_test

import (
	"testing"

	console "github.com/goliatone/go-console"
	"github.com/goliatone/go-console/adapters/zaplog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ console.Logger = (*zaplog.Logger)(nil)

func TestNewFromConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  zaplog.Config
	}{
		{"defaults", zaplog.Config{}},
		{"console encoding", zaplog.Config{Level: "debug", Encoding: "console"}},
		{"bad level falls back", zaplog.Config{Level: "shouting"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := zaplog.NewFromConfig(tc.cfg)
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNopDiscards(t *testing.T) {
	logger := zaplog.Nop()

	// nothing to assert beyond not panicking
	logger.Debug("debug %s", "msg")
	logger.Info("info %s", "msg")
	logger.Warn("warn %s", "msg")
	logger.Error("error %s", "msg")
}
