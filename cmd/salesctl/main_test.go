package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testServices = `services:
  - name: sales
    start_order: 1
    config:
      companies:
        - id: 1
          name: Ventas Nacionales
          submodule: nacional
          layout: LAYOUT_A
`

func writeFixtures(t *testing.T) (xlsx, services string) {
	t.Helper()
	dir := t.TempDir()
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "ACUMULADO 2025"
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	require.NoError(t, f.SetCellValue(sheet, "A1", "REPORTE DE VENTAS"))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"FECHA", "FOLIO", "CLIENTE", "PRODUCTO", "CANTIDAD"}))
	require.NoError(t, f.SetSheetRow(sheet, "A5", &[]any{"2025-01-10", "F-1", "Abarrotes del Norte", "Aceite 1L", 10}))
	require.NoError(t, f.SetSheetRow(sheet, "A6", &[]any{"2025-02-11", "F-2", "", "Aceite 1L", 4}))
	require.NoError(t, f.SetSheetRow(sheet, "A7", &[]any{"TOTAL", "", "", "", 14}))

	xlsx = filepath.Join(dir, "ventas.xlsx")
	require.NoError(t, f.SaveAs(xlsx))
	services = filepath.Join(dir, "services.yaml")
	require.NoError(t, os.WriteFile(services, []byte(testServices), 0o644))
	return xlsx, services
}

func run(t *testing.T, args ...string) map[string]any {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env", filepath.Join(t.TempDir(), "missing.env")))
	require.NoError(t, cmd.Execute(), out.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &body), out.String())
	return body
}

func TestClassifyCommand(t *testing.T) {
	xlsx, _ := writeFixtures(t)
	body := run(t, "classify", xlsx)
	assert.Equal(t, "LAYOUT_A", body["anchors"])
	assert.Equal(t, "LAYOUT_A", body["fileName"])
	assert.Equal(t, []any{"ACUMULADO 2025"}, body["sheets"])
}

func TestParseCommand(t *testing.T) {
	xlsx, _ := writeFixtures(t)
	body := run(t, "parse", xlsx, "--rows")
	assert.Equal(t, true, body["cumulative"])
	assert.Equal(t, float64(2025), body["targetYear"])
	assert.Equal(t, float64(1), body["transactions"])
	assert.Len(t, body["diagnostics"], 1)
	rows := body["rows"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "f-1|2025-01-10|aceite 1l|10.00", rows[0].(map[string]any)["dedupKey"])
}

func TestIngestDryRun(t *testing.T) {
	xlsx, services := writeFixtures(t)
	body := run(t, "ingest", xlsx, "--dry-run", "--services", services, "--user", "ops")
	assert.Equal(t, "ingested", body["outcome"])
	details := body["details"].(map[string]any)
	assert.Equal(t, float64(1), details["newlyInserted"])
	assert.Equal(t, "nacional", details["submodule"])
}
