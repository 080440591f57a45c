package batch

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestWriter_JSONL(t *testing.T) {
	var buf bytes.Buffer
	writer, err := NewWriter(&buf, "jsonl", newTestLogger())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	records := []OutputRecord{
		{RequestID: "r1", InputText: "q1", Prediction: "a1"},
		{RequestID: "r2", InputText: "q2", Cached: true, Prediction: "a2"},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var decoded OutputRecord
	if err := json.Unmarshal([]byte(lines[1]), &decoded); err != nil {
		t.Fatalf("failed to decode line: %v", err)
	}
	if decoded.RequestID != "r2" || !decoded.Cached {
		t.Errorf("decoded = %+v, want r2 cached", decoded)
	}
}

func TestWriter_Summary(t *testing.T) {
	var buf bytes.Buffer
	writer, err := NewWriter(&buf, "summary", newTestLogger())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	_ = writer.Write(OutputRecord{RequestID: "r1", Prediction: "a"})
	_ = writer.Write(OutputRecord{RequestID: "r2", Error: "failed"})
	_ = writer.Write(OutputRecord{RequestID: "r3", Cached: true, Prediction: "b"})

	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	var summary map[string]int
	if err := json.Unmarshal(buf.Bytes(), &summary); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}
	if summary["total"] != 3 || summary["errors"] != 1 || summary["cached"] != 1 {
		t.Errorf("summary = %v", summary)
	}
}

func TestWriter_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewWriter(&buf, "csv", newTestLogger()); err == nil {
		t.Error("expected error for unsupported format")
	}
}
