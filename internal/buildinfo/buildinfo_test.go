package buildinfo

import (
	"bytes"
	"testing"
)

func TestPrintBuildData(t *testing.T) {
	var buf bytes.Buffer
	PrintBuildData(&buf)
	want := "Build version: N/A\nBuild date: N/A\nBuild commit: N/A\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}

	buildVersion = "v1.0.0"
	t.Cleanup(func() { buildVersion = "" })
	buf.Reset()
	PrintBuildData(&buf)
	if !bytes.HasPrefix(buf.Bytes(), []byte("Build version: v1.0.0\n")) {
		t.Fatalf("got %q", buf.String())
	}
}
