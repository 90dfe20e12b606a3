package storage

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"emg/device"
)

func testMetadata(movement, rep int) Metadata {
	return Metadata{
		SubjectID:    "007",
		DateString:   "05-03",
		MovementID:   movement,
		Repetition:   rep,
		SampleRate:   2000,
		ChannelCount: 4,
		SessionID:    "test-session",
	}
}

func testSamples(count, channels int) []device.Sample {
	samples := make([]device.Sample, count)
	for i := range samples {
		sample := make(device.Sample, channels)
		for ch := range sample {
			sample[ch] = float64(i)*0.001 + float64(ch)*0.1
		}
		samples[i] = sample
	}
	return samples
}

func TestMetadataNaming(t *testing.T) {
	t.Run("stem matches schema", func(t *testing.T) {
		md := testMetadata(1, 1)
		if got := md.CSVName(); got != "emg_data_ID007_05-03_M1R1.csv" {
			t.Fatalf("unexpected csv name: %s", got)
		}
		if got := md.DBName(); got != "emg_data_ID007_05-03_M1R1.db" {
			t.Fatalf("unexpected db name: %s", got)
		}
	})

	t.Run("full grid is unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, movement := range []int{1, 2} {
			for rep := 1; rep <= 2; rep++ {
				stem := testMetadata(movement, rep).Stem()
				if seen[stem] {
					t.Fatalf("duplicate stem %s", stem)
				}
				seen[stem] = true
			}
		}

		expected := []string{
			"emg_data_ID007_05-03_M1R1",
			"emg_data_ID007_05-03_M1R2",
			"emg_data_ID007_05-03_M2R1",
			"emg_data_ID007_05-03_M2R2",
		}
		for _, stem := range expected {
			if !seen[stem] {
				t.Fatalf("missing stem %s", stem)
			}
		}
	})
}

func TestRecorderWrite(t *testing.T) {
	dir := t.TempDir()
	recorder, err := NewRecorder(dir)
	if err != nil {
		t.Fatalf("failed to create recorder: %v", err)
	}

	samples := testSamples(50, 4)
	for _, movement := range []int{1, 2} {
		for rep := 1; rep <= 2; rep++ {
			if err := recorder.Write(testMetadata(movement, rep), samples); err != nil {
				t.Fatalf("write M%dR%d failed: %v", movement, rep, err)
			}
		}
	}

	t.Run("two files per repetition", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("read dir: %v", err)
		}
		var count int
		for _, entry := range entries {
			ext := filepath.Ext(entry.Name())
			if ext == ".csv" || ext == ".db" {
				count++
			}
		}
		if count != 8 {
			t.Fatalf("expected 8 recording files, got %d", count)
		}
	})

	t.Run("csv schema", func(t *testing.T) {
		f, err := os.Open(filepath.Join(dir, "emg_data_ID007_05-03_M1R1.csv"))
		if err != nil {
			t.Fatalf("open csv: %v", err)
		}
		defer f.Close()

		records, err := csv.NewReader(f).ReadAll()
		if err != nil {
			t.Fatalf("parse csv: %v", err)
		}
		if len(records) != 51 {
			t.Fatalf("expected header + 50 rows, got %d rows", len(records))
		}
		if strings.Join(records[0], ",") != "channel_1,channel_2,channel_3,channel_4" {
			t.Fatalf("unexpected header: %v", records[0])
		}
		for i, record := range records {
			if len(record) != 4 {
				t.Fatalf("row %d has %d values, expected 4", i, len(record))
			}
		}
	})

	t.Run("csv and db round-trip agree", func(t *testing.T) {
		fromCSV, err := LoadCSV(filepath.Join(dir, "emg_data_ID007_05-03_M2R1.csv"))
		if err != nil {
			t.Fatalf("load csv: %v", err)
		}
		fromDB, err := LoadDB(filepath.Join(dir, "emg_data_ID007_05-03_M2R1.db"))
		if err != nil {
			t.Fatalf("load db: %v", err)
		}

		if len(fromCSV) != len(fromDB) {
			t.Fatalf("sample count mismatch: csv %d, db %d", len(fromCSV), len(fromDB))
		}
		for i := range fromCSV {
			if len(fromCSV[i]) != len(fromDB[i]) {
				t.Fatalf("row %d width mismatch: csv %d, db %d", i, len(fromCSV[i]), len(fromDB[i]))
			}
			for ch := range fromCSV[i] {
				if math.Abs(fromCSV[i][ch]-fromDB[i][ch]) > 1e-9 {
					t.Fatalf("value mismatch at sample %d channel %d: csv %v, db %v",
						i, ch, fromCSV[i][ch], fromDB[i][ch])
				}
			}
		}
	})

	t.Run("db carries metadata", func(t *testing.T) {
		md, err := LoadRecordingInfo(filepath.Join(dir, "emg_data_ID007_05-03_M1R2.db"))
		if err != nil {
			t.Fatalf("load metadata: %v", err)
		}
		if md.SubjectID != "007" || md.MovementID != 1 || md.Repetition != 2 {
			t.Fatalf("unexpected metadata: %+v", md)
		}
		if md.SampleRate != 2000 || md.ChannelCount != 4 {
			t.Fatalf("unexpected metadata: %+v", md)
		}
		if md.SessionID != "test-session" {
			t.Fatalf("unexpected session id: %s", md.SessionID)
		}
	})
}

func TestRecorderRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	recorder, err := NewRecorder(dir)
	if err != nil {
		t.Fatalf("failed to create recorder: %v", err)
	}

	md := testMetadata(3, 1)
	first := testSamples(10, 4)
	if err := recorder.Write(md, first); err != nil {
		t.Fatalf("first write failed: %v", err)
	}

	if err := recorder.Write(md, testSamples(20, 4)); err == nil {
		t.Fatal("expected error on duplicate write, got nil")
	}

	// 原有数据必须保持不变
	data, err := LoadCSV(filepath.Join(dir, md.CSVName()))
	if err != nil {
		t.Fatalf("load original csv: %v", err)
	}
	if len(data) != 10 {
		t.Fatalf("original recording was modified: %d samples", len(data))
	}
}

func TestRecorderRejectsBadBuffer(t *testing.T) {
	dir := t.TempDir()
	recorder, err := NewRecorder(dir)
	if err != nil {
		t.Fatalf("failed to create recorder: %v", err)
	}

	t.Run("empty buffer", func(t *testing.T) {
		if err := recorder.Write(testMetadata(4, 1), nil); err == nil {
			t.Fatal("expected error for empty buffer")
		}
	})

	t.Run("width mismatch leaves no files", func(t *testing.T) {
		md := testMetadata(4, 2)
		samples := testSamples(5, 4)
		samples[3] = make(device.Sample, 3)
		if err := recorder.Write(md, samples); err == nil {
			t.Fatal("expected error for width mismatch")
		}
		for _, name := range []string{md.CSVName(), md.DBName()} {
			if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
				t.Fatalf("failing write left file %s behind", name)
			}
		}
	})
}
