package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"sku-gateway/sku/application"

	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(strings.NewReader(stdin), &out)
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"skugen"}, args...))
	return out.String(), err
}

func TestGenerate_JSON(t *testing.T) {
	out, err := runApp(t, "", "generate", "--oem", "21707132", "--duty", "HD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if body["SKU"] != "EL7132" || body["FABRICANTE"] != "OEM" || body["status"] != "success" {
		t.Fatalf("unexpected output %v", body)
	}
}

func TestGenerate_TextWithManufacturerAlias(t *testing.T) {
	out, err := runApp(t, "", "generate", "--oem", "PH3600", "--duty", "ld", "--manufacturer", "fram", "--format", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "EH3600" {
		t.Fatalf("expected EH3600, got %q", out)
	}
}

func TestGenerate_EmptyOEMIsInvalid(t *testing.T) {
	_, err := runApp(t, "", "generate", "--oem", "")
	exit, ok := err.(cli.ExitCoder)
	if !ok {
		t.Fatalf("expected ExitCoder, got %v", err)
	}
	if exit.ExitCode() != exitInvalid {
		t.Fatalf("expected exit %d, got %d", exitInvalid, exit.ExitCode())
	}
}

func TestBatch_Text(t *testing.T) {
	in := "oem_code,duty,fabricante\n21707132,HD\nPH3600, LD, FRAM\n# comment\nAB7,,\n"
	out, err := runApp(t, in, "batch", "--format", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "EL7132\nEH3600\nEL0007\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestBatch_InvalidRowsReportedAndCounted(t *testing.T) {
	var out bytes.Buffer
	invalid, err := runBatch(application.Generator{}, strings.NewReader("123\n,HD\n456,LD\n"), &out, formatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invalid != 1 {
		t.Fatalf("expected 1 invalid row, got %d", invalid)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 output lines, got %d: %q", len(lines), out.String())
	}
	var errLine map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &errLine); err != nil {
		t.Fatalf("invalid JSON %q: %v", lines[1], err)
	}
	if errLine["status"] != "error" || errLine["error"] != "row 2: oem_code is required" {
		t.Fatalf("unexpected error line %v", errLine)
	}
}
