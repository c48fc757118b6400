package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amreid/nextup/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, cfg config.Config, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(cfg)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTokenCmd_MintsVerifiableToken(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	out, err := execute(t, cfg, "token", "--user", "u1")
	require.NoError(t, err)

	raw := strings.TrimSpace(out)
	token, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "u1", claims["sub"])
	assert.Equal(t, "u1@localhost", claims["email"])
}

func TestTokenCmd_RequiresUser(t *testing.T) {
	_, err := execute(t, config.Config{JWTSecret: "test-secret"}, "token")
	assert.Error(t, err)
}

func TestMigrateCmd_CreatesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nextup.db")
	out, err := execute(t, config.Config{DBPath: dbPath}, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, dbPath)
	assert.FileExists(t, dbPath)
}
