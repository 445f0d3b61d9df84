package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(map[string]int{"tests": 3}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error("E_TEST_FAILED", "1 test(s) failed", map[string]int{"failures": 1}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
	assert.Equal(t, "1 test(s) failed", resp.Error.Message)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_Text(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Success("all good"))
	require.NoError(t, formatter.Error("E001", "bad flag", nil))

	assert.Equal(t, "all good\nError [E001]: bad flag\n", buf.String())
}

func TestOutputFormatter_Stream(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	text := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut}
	assert.Same(t, out, text.Stream())

	js := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut}
	assert.Same(t, errOut, js.Stream())

	noErr := &OutputFormatter{Format: "json", Writer: out}
	assert.Same(t, out, noErr.Stream())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitCommandError, GetExitCode(errors.New("plain")))
	assert.Equal(t, 3, GetExitCode(NewExitError(3, "three")))

	wrapped := fmt.Errorf("outer: %w", NewExitError(7, "seven"))
	assert.Equal(t, 7, GetExitCode(wrapped))
}

func TestFailureExitError(t *testing.T) {
	assert.NoError(t, FailureExitError(0))
	assert.Equal(t, 1, GetExitCode(FailureExitError(1)))
	assert.Equal(t, 42, GetExitCode(FailureExitError(42)))
	assert.Equal(t, MaxFailureExit, GetExitCode(FailureExitError(1000)))
	assert.Equal(t, "1000 test(s) failed", FailureExitError(1000).Error())
}

func TestExitError_Wrap(t *testing.T) {
	inner := errors.New("disk on fire")
	err := WrapExitError(ExitCommandError, "load config", inner)

	assert.Equal(t, "load config: disk on fire", err.Error())
	assert.ErrorIs(t, err, inner)
}
