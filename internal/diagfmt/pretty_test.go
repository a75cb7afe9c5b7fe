package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"longconv/internal/diag"
)

func sampleBag() *diag.Bag {
	bag := diag.NewBag(10)
	bag.Add(diag.NewWarning(diag.RecTooFewTokens, diag.Position{File: "random-bytes", Line: 3}, "too few tokens: got 5, want 8"))
	bag.Add(diag.NewError(diag.RecBadToken, diag.Position{File: "random-bytes", Line: 7, Column: 2}, `token 2 "x": not an integer`))
	return bag
}

func TestPrettyPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	want := "random-bytes:3: warning[REC1001]: too few tokens: got 5, want 8\n" +
		"random-bytes:7:2: error[REC1003]: token 2 \"x\": not an integer\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Pretty() diff -want +got\n%s", diff)
	}
}

func TestPrettyMax(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), PrettyOpts{Max: 1}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "REC1003") {
		t.Errorf("second diagnostic should be hidden:\n%s", out)
	}
	if !strings.Contains(out, "1 more diagnostics not shown") {
		t.Errorf("missing hidden count:\n%s", out)
	}
}

func TestPrettyColor(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes with Color enabled:\n%q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	var got DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if got.Count != 2 || len(got.Diagnostics) != 2 {
		t.Fatalf("Count = %d, len = %d, want 2", got.Count, len(got.Diagnostics))
	}
	want := DiagnosticJSON{
		Severity: "ERROR",
		Code:     "REC1003",
		Title:    "Token is not an integer",
		Message:  `token 2 "x": not an integer`,
		Location: LocationJSON{File: "random-bytes", Line: 7, Column: 2},
	}
	if diff := cmp.Diff(want, got.Diagnostics[1]); diff != "" {
		t.Errorf("diagnostic diff -want +got\n%s", diff)
	}
}

func TestJSONEmptyBag(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, nil, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"diagnostics":[],"count":0}` {
		t.Errorf("JSON(nil) = %s", got)
	}
}
