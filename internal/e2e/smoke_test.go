package e2e

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	for _, args := range [][]string{
		{"account", "create", "--id", "acc-alice", "--name", "Alice", "--balance", "100", "--savings", "100"},
		{"account", "create", "--id", "acc-bob", "--name", "Bob", "--balance", "10"},
		{"session", "bind", "--session", "s-alice", "--account", "acc-alice"},
	} {
		_, stderr, err := runTeller(t, binaryPath, home, nil, args...)
		require.NoError(t, err, "stderr: %s", stderr)
	}

	events := strings.Join([]string{
		`{"sessionId":"s-alice","intentName":"sayHello"}`,
		`{"sessionId":"s-alice","intentName":"transferBetweenAccounts","entities":{"amount_of_money":[{"value":40,"unit":"$"}]}}`,
	}, "\n")
	stdout, stderr, err := runTeller(t, binaryPath, home, strings.NewReader(events), "dispatch")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "What can I help you with?")
	assert.Contains(t, stdout, "Transferring $40.00 from your savings to your current account.")

	stdout, stderr, err = runTeller(t, binaryPath, home, nil, "account", "balance", "--account", "acc-alice")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Alice (acc-alice)")
	assert.Contains(t, stdout, "$140.00")
	assert.Contains(t, stdout, "$60.00")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "teller-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/teller")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build teller binary: %s", string(output))
	return binaryPath
}

func runTeller(t *testing.T, binaryPath, home string, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "TELLER_LOG_LEVEL=error")
	cmd.Stdin = stdin

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
