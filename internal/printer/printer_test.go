package printer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenhq/warden/internal/model"
	"github.com/wardenhq/warden/internal/printer"
)

func sandboxFixture() model.Sandbox {
	createdAt := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	return model.Sandbox{
		ID:          "01234567890ABCDEFGHIJKLMNOP",
		Name:        "my-sandbox",
		ContainerID: "0123456789abcdef0123456789abcdef",
		Image:       "ghcr.io/wardenhq/agent:latest",
		Security:    model.DefaultSecurityOptions(),
		Status:      model.SandboxStatusRunning,
		CreatedAt:   createdAt,
	}
}

func TestTablePrinterPrintList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintList([]model.Sandbox{sandboxFixture()})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "my-sandbox")
	assert.Contains(t, out, "running")
	// Container IDs are truncated to 12 characters.
	assert.Contains(t, out, "0123456789ab")
	assert.NotContains(t, out, "0123456789abcdef")
}

func TestTablePrinterPrintChecks(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintChecks([]model.CheckResult{
		{ID: "engine_ping", Message: "engine answered the liveness probe", Status: model.CheckStatusOK},
		{ID: "engine_socket", Message: "socket not found", Status: model.CheckStatusError},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "engine_ping")
	assert.Contains(t, out, "engine_socket")
	assert.Contains(t, out, "1 ok, 0 warnings, 1 errors")
}

func TestJSONPrinterPrintList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintList([]model.Sandbox{sandboxFixture()})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"name": "my-sandbox"`)
	assert.Contains(t, out, `"image": "ghcr.io/wardenhq/agent:latest"`)
	assert.Contains(t, out, `"privileged": false`)
}

func TestJSONPrinterPrintChecks(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintChecks([]model.CheckResult{
		{ID: "engine_ping", Message: "ok", Status: model.CheckStatusOK},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"id": "engine_ping"`)
	assert.Contains(t, out, `"status": "ok"`)
}

func TestTablePrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintMessage("ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", strings.TrimSpace(buf.String()))
}
