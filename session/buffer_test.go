package session

import (
	"testing"

	"emg/device"
)

func TestBuffer(t *testing.T) {
	t.Run("keeps arrival order", func(t *testing.T) {
		buffer := NewBuffer(2)
		for i := 0; i < 5; i++ {
			if err := buffer.Append(device.Sample{float64(i), float64(-i)}); err != nil {
				t.Fatalf("append %d: %v", i, err)
			}
		}
		if buffer.Len() != 5 {
			t.Fatalf("expected 5 samples, got %d", buffer.Len())
		}
		for i, sample := range buffer.Samples() {
			if sample[0] != float64(i) {
				t.Fatalf("sample %d out of order: %v", i, sample)
			}
		}
	})

	t.Run("rejects width mismatch", func(t *testing.T) {
		buffer := NewBuffer(3)
		if err := buffer.Append(device.Sample{1, 2}); err == nil {
			t.Fatal("expected error for short sample")
		}
		if err := buffer.Append(device.Sample{1, 2, 3, 4}); err == nil {
			t.Fatal("expected error for long sample")
		}
		if buffer.Len() != 0 {
			t.Fatalf("rejected samples were buffered: %d", buffer.Len())
		}
	})

	t.Run("reset empties the buffer", func(t *testing.T) {
		buffer := NewBuffer(1)
		for i := 0; i < 3; i++ {
			if err := buffer.Append(device.Sample{1}); err != nil {
				t.Fatalf("append: %v", err)
			}
		}
		buffer.Reset()
		if buffer.Len() != 0 {
			t.Fatalf("expected empty buffer after reset, got %d", buffer.Len())
		}
	})
}
