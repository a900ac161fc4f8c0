package vcf

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWriter_RoundTrip(t *testing.T) {
	path := filepath.Join("testdata", "single_sample.vcf")
	original, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read test file: %v", err)
	}

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer r.Close()

	var buf bytes.Buffer
	w := NewWriterTo(&buf)
	if err := w.WriteHeader(r.Header()); err != nil {
		t.Fatalf("Failed to write header: %v", err)
	}
	for _, rec := range readAllRecords(t, r) {
		if err := w.Write(rec); err != nil {
			t.Fatalf("Failed to write record: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Failed to flush: %v", err)
	}

	if !bytes.Equal(buf.Bytes(), original) {
		t.Errorf("Round trip did not preserve the file.\nGot:\n%s\nWant:\n%s", buf.String(), original)
	}
}

func TestWriter_File(t *testing.T) {
	src := filepath.Join("testdata", "single_sample.vcf")
	original, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("Failed to read test file: %v", err)
	}

	r, err := NewReader(src)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer r.Close()

	out := filepath.Join(t.TempDir(), "out.vcf")
	w, err := NewWriter(out)
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	if err := w.WriteHeader(r.Header()); err != nil {
		t.Fatalf("Failed to write header: %v", err)
	}
	for _, rec := range readAllRecords(t, r) {
		if err := w.Write(rec); err != nil {
			t.Fatalf("Failed to write record: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}

	written, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}
	if !bytes.Equal(written, original) {
		t.Errorf("Written file differs from the source.\nGot:\n%s\nWant:\n%s", written, original)
	}
}

func TestWriter_GzipFile(t *testing.T) {
	src := filepath.Join("testdata", "single_sample.vcf")
	r, err := NewReader(src)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer r.Close()

	out := filepath.Join(t.TempDir(), "out.vcf.gz")
	w, err := NewWriter(out)
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	if err := w.WriteHeader(r.Header()); err != nil {
		t.Fatalf("Failed to write header: %v", err)
	}
	originals := readAllRecords(t, r)
	for _, rec := range originals {
		if err := w.Write(rec); err != nil {
			t.Fatalf("Failed to write record: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}
	if len(raw) < 2 || raw[0] != 0x1f || raw[1] != 0x8b {
		t.Fatal("Output file does not start with the gzip magic number")
	}

	back, err := NewReader(out)
	if err != nil {
		t.Fatalf("Failed to reopen written file: %v", err)
	}
	defer back.Close()

	records := readAllRecords(t, back)
	if len(records) != len(originals) {
		t.Fatalf("Expected %d records after the round trip, got %d", len(originals), len(records))
	}
	for i := range records {
		if records[i].String() != originals[i].String() {
			t.Errorf("Record %d differs: %s vs %s", i, records[i].String(), originals[i].String())
		}
	}
}
