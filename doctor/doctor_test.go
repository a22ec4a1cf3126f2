package doctor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"broomicon/badge"
	"broomicon/encoder"
	"broomicon/log"
)

func writeIcon(t *testing.T, dir string, size int) string {
	t.Helper()
	data, err := encoder.EncodePNG(size, size, badge.Generate(size))
	if err != nil {
		t.Fatal(err)
	}
	path := IconPath(dir, size)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunAllPass(t *testing.T) {
	dir := t.TempDir()
	for _, size := range badge.Sizes {
		writeIcon(t, dir, size)
	}

	var out bytes.Buffer
	if code := Run(&out, dir, badge.Sizes); code != 0 {
		t.Fatalf("Run = %d, want 0; output:\n%s", code, out.String())
	}
	if got := strings.Count(out.String(), "PASS"); got != len(badge.Sizes) {
		t.Errorf("PASS count = %d, want %d", got, len(badge.Sizes))
	}
}

func TestRunMissingIcon(t *testing.T) {
	dir := t.TempDir()
	writeIcon(t, dir, 16)

	var out bytes.Buffer
	if code := Run(&out, dir, badge.Sizes); code != 1 {
		t.Fatalf("Run = %d, want 1", code)
	}
	if !strings.Contains(out.String(), "FAIL") {
		t.Errorf("expected FAIL in output, got:\n%s", out.String())
	}
}

func TestCheckCorruptCRC(t *testing.T) {
	dir := t.TempDir()
	path := writeIcon(t, dir, 48)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data[len(data)-1] ^= 0x01 // IEND CRC
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if err := Check(path, 48); !errors.Is(err, encoder.ErrCRC) {
		t.Errorf("Check = %v, want ErrCRC", err)
	}
}

func TestCheckWrongSize(t *testing.T) {
	dir := t.TempDir()
	path := writeIcon(t, dir, 16)

	err := Check(path, 48)
	if err == nil || !strings.Contains(err.Error(), "16x16") {
		t.Errorf("Check = %v, want header size mismatch", err)
	}
}

func TestCheckForeignPixels(t *testing.T) {
	dir := t.TempDir()
	pix := badge.Generate(16)
	pix[8*16*4+8*4] ^= 0xff // red channel of the center pixel
	data, err := encoder.EncodePNG(16, 16, pix)
	if err != nil {
		t.Fatal(err)
	}
	path := IconPath(dir, 16)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if err := Check(path, 16); err == nil {
		t.Error("Check accepted an icon with altered pixels")
	}
}

func setupLog(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	log.SetDir(tmp)
	if err := log.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { log.Close(); log.SetDir("") })
	return filepath.Join(tmp, "diagnostics_log.txt")
}

func TestRunLogsResults(t *testing.T) {
	logPath := setupLog(t)
	dir := t.TempDir()
	writeIcon(t, dir, 16)

	var out bytes.Buffer
	if code := Run(&out, dir, []int{16, 48}); code != 1 {
		t.Fatalf("Run = %d, want 1", code)
	}
	log.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	diag := string(data)
	for _, want := range []string{
		"INF doctor: " + IconPath(dir, 16) + " passed",
		"WRN doctor: " + IconPath(dir, 48) + " failed",
		"WRN doctor: some checks failed",
	} {
		if !strings.Contains(diag, want) {
			t.Errorf("diagnostics missing %q, got:\n%s", want, diag)
		}
	}
}

func TestRunLogsAllPassed(t *testing.T) {
	logPath := setupLog(t)
	dir := t.TempDir()
	writeIcon(t, dir, 16)

	var out bytes.Buffer
	if code := Run(&out, dir, []int{16}); code != 0 {
		t.Fatalf("Run = %d, want 0; output:\n%s", code, out.String())
	}
	log.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "doctor: all checks passed") {
		t.Errorf("diagnostics missing summary, got:\n%s", data)
	}
}
