package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuditLog_CreatedUnderHome(t *testing.T) {
	env := newTestEnv(t)

	env.run("run", "document", "status")

	dbPath := filepath.Join(env.home, ".writerd", "log", "writerd-log.db")
	_, err := os.Stat(dbPath)
	assert.NoError(t, err, "audit log database created on first invocation")
}
