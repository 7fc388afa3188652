package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags(nil)
	require.NoError(t, err)
	require.Equal(t, ".", opts.configPath)
	require.False(t, opts.skipMigrations)

	opts, err = parseFlags([]string{"--config", "/etc/tenders", "--skip-migrations"})
	require.NoError(t, err)
	require.Equal(t, "/etc/tenders", opts.configPath)
	require.True(t, opts.skipMigrations)

	_, err = parseFlags([]string{"--unknown"})
	require.Error(t, err)
}
