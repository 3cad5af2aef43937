package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigDecode(t *testing.T) {
	raw := `
server:
  port: 8080
database:
  url: "postgres://localhost/sroa"
auth:
  jwt_secret: "s"
  token_ttl: 15m
  reset_token_ttl: 10m
telegram:
  bot_token: "t"
  chat_id: 42
`
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(raw), &cfg))
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL.Std())
	require.Equal(t, 10*time.Minute, cfg.Auth.ResetTokenTTL.Std())
	require.Equal(t, int64(42), cfg.Telegram.ChatID)
}

func TestDurationRejectsGarbage(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte("auth:\n  token_ttl: soon\n"), &cfg)
	require.Error(t, err)
}
