package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// execute parses args against a fresh parser and returns what the command printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	prevOut, prevLogger := out, zap.L()
	out = buf
	t.Cleanup(func() {
		out = prevOut
		zap.ReplaceGlobals(prevLogger)
	})

	app = &App{}
	setParser(app)
	base := []string{"--disable-stdout-log", "--seed", "3", "--setting-path", filepath.Join(t.TempDir(), "none.toml")}
	_, err := parser.ParseArgs(append(base, args...))
	return ansi.Strip(buf.String()), err
}

func TestList(t *testing.T) {
	got, err := execute(t, "list")
	require.NoError(t, err)
	for _, want := range []string{"hadamard", "bell", "teleport", "ansatz", "13"} {
		assert.Contains(t, got, want)
	}
}

func TestQASM(t *testing.T) {
	got, err := execute(t, "qasm", "2")
	require.NoError(t, err)
	assert.Equal(t, heredoc.Doc(`
		OPENQASM 2.0;
		include "qelib1.inc";

		qreg q[2];

		h q[0];
		cx q[0], q[1];
	`), got)

	_, err = execute(t, "qasm", "42")
	assert.Error(t, err)
}

func TestRunText(t *testing.T) {
	got, err := execute(t, "run", "01", "02")
	require.NoError(t, err)
	assert.Contains(t, got, "Hadamard: state")
	assert.Contains(t, got, "Bell: state")
	assert.Contains(t, got, "0.70711|00⟩ + 0.70711|11⟩")
}

func TestRunJSON(t *testing.T) {
	got, err := execute(t, "--output", "json", "run", "hadamard")
	require.NoError(t, err)

	var outputs []exerciseOutput
	require.NoError(t, jsonIter.Unmarshal([]byte(got), &outputs))
	require.Len(t, outputs, 1)
	assert.Equal(t, "01", outputs[0].ID)
	assert.Len(t, outputs[0].Frames, 3)
}

func TestRunTheta(t *testing.T) {
	got, err := execute(t, "--theta", "pi/2, pi/4", "run", "13")
	require.NoError(t, err)
	assert.Contains(t, got, "theta[0] = pi/2")
	assert.Contains(t, got, "theta[1] = pi/4")
	assert.NotContains(t, got, "theta[2]")

	_, err = execute(t, "--theta", "pi/2,x", "run", "13")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cannot parse "x"`)
}

func TestInterruptible(t *testing.T) {
	var seen context.Context
	err := interruptible(func(ctx context.Context) error {
		seen = ctx
		require.NoError(t, ctx.Err())
		return errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
	// the handler actor is interrupted once f returns
	assert.ErrorIs(t, seen.Err(), context.Canceled)

	assert.NoError(t, interruptible(func(context.Context) error { return nil }))
}

func TestExec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bell.qasm")
	require.NoError(t, os.WriteFile(path, []byte(heredoc.Doc(`
		OPENQASM 2.0;
		include "qelib1.inc";
		qreg q[2];
		creg c[2];
		h q[0];
		cx q[0], q[1];
		measure q[0] -> c[0];
		measure q[1] -> c[1];
	`)), 0o600))

	got, err := execute(t, "exec", "--shots", "200", path)
	require.NoError(t, err)
	assert.Contains(t, got, "counts (200 shots)")
	assert.Contains(t, got, "total 200")
	assert.NotContains(t, got, "01 │")

	got, err = execute(t, "exec", "--backend", "statevector", path)
	require.NoError(t, err)
	assert.Contains(t, got, "state")
	assert.Contains(t, got, "counts (1 shots)")

	got, err = execute(t, "--output", "json", "exec", "--shots", "10", path)
	require.NoError(t, err)
	assert.Contains(t, got, `"shots": 10`)
	assert.Contains(t, got, `"backend": "qasm"`)

	_, err = execute(t, "exec", filepath.Join(t.TempDir(), "missing.qasm"))
	assert.Error(t, err)

	big := filepath.Join(t.TempDir(), "big.qasm")
	require.NoError(t, os.WriteFile(big, []byte("OPENQASM 2.0;\nqreg q[64];\nh q[0];\n"), 0o600))
	_, err = execute(t, "exec", "--backend", "statevector", big)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceed the limit")
}
