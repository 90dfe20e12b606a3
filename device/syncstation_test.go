package device

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"net"
	"testing"

	"emg/define"
)

func testStation(t *testing.T, addr string, channels int) *SyncStation {
	t.Helper()
	source, err := NewSyncStation(&define.SessionConfig{
		DeviceAddr:   addr,
		ChannelCount: channels,
		SampleRate:   2000,
	})
	if err != nil {
		t.Fatalf("create station: %v", err)
	}
	return source.(*SyncStation)
}

func buildFrame(emg []int16, aux []int16) []byte {
	frame := make([]byte, 0, (len(emg)+len(aux))*2)
	for _, v := range append(append([]int16{}, emg...), aux...) {
		frame = binary.BigEndian.AppendUint16(frame, uint16(v))
	}
	return frame
}

func TestSyncStationRead(t *testing.T) {
	t.Run("decodes big-endian counts to millivolts", func(t *testing.T) {
		station := testStation(t, "127.0.0.1:54320", 2)
		client, server := net.Pipe()
		defer client.Close()
		station.conn = server

		// 辅助通道填极值，便于发现帧内步长或偏移错误
		aux := []int16{32767, 32767, 32767, 32767, 32767, 32767}
		go func() {
			client.Write(buildFrame([]int16{-32768, 1}, aux))
			client.Write(buildFrame([]int16{2, -1}, aux))
		}()

		first, err := station.Read()
		if err != nil {
			t.Fatalf("read first frame: %v", err)
		}
		if len(first) != 2 {
			t.Fatalf("expected 2 channels, got %d", len(first))
		}
		wantNeg := float64(-32768) * countToMillivolt
		wantOne := float64(1) * countToMillivolt
		if math.Abs(first[0]-wantNeg) > 1e-12 || math.Abs(first[1]-wantOne) > 1e-12 {
			t.Fatalf("unexpected first frame: %v, want [%v %v]", first, wantNeg, wantOne)
		}

		second, err := station.Read()
		if err != nil {
			t.Fatalf("read second frame: %v", err)
		}
		if math.Abs(second[0]-2*countToMillivolt) > 1e-12 || math.Abs(second[1]+countToMillivolt) > 1e-12 {
			t.Fatalf("unexpected second frame: %v", second)
		}
	})

	t.Run("truncated frame fails", func(t *testing.T) {
		station := testStation(t, "127.0.0.1:54320", 2)
		client, server := net.Pipe()
		station.conn = server

		go func() {
			client.Write([]byte{0x00, 0x01, 0x02})
			client.Close()
		}()

		if _, err := station.Read(); err == nil {
			t.Fatal("expected error for truncated frame")
		}
	})

	t.Run("read before connect fails", func(t *testing.T) {
		station := testStation(t, "127.0.0.1:54320", 2)
		if _, err := station.Read(); err == nil {
			t.Fatal("expected error reading before connect")
		}
	})

	t.Run("missing address fails", func(t *testing.T) {
		if _, err := NewSyncStation(&define.SessionConfig{ChannelCount: 2, SampleRate: 2000}); err == nil {
			t.Fatal("expected error for missing device address")
		}
	})
}

func TestSyncStationCommands(t *testing.T) {
	station := testStation(t, "127.0.0.1:54320", 2)

	// CRC8（多项式 0x07）：0x01 -> 0x07，0x00 -> 0x00
	if got := station.startCommand(); !bytes.Equal(got, []byte{0x01, 0x07}) {
		t.Fatalf("unexpected start command: %v", got)
	}
	if got := station.stopCommand(); !bytes.Equal(got, []byte{0x00, 0x00}) {
		t.Fatalf("unexpected stop command: %v", got)
	}
}

func TestSyncStationHandshake(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	type handshake struct {
		start []byte
		stop  []byte
		err   error
	}
	result := make(chan handshake, 1)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			result <- handshake{err: err}
			return
		}
		defer conn.Close()

		var h handshake
		h.start = make([]byte, 2)
		if _, h.err = io.ReadFull(conn, h.start); h.err != nil {
			result <- h
			return
		}
		h.stop = make([]byte, 2)
		_, h.err = io.ReadFull(conn, h.stop)
		result <- h
	}()

	station := testStation(t, listener.Addr().String(), 2)
	if err := station.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := station.Disconnect(); err != nil {
		t.Fatalf("disconnect: %v", err)
	}

	h := <-result
	if h.err != nil {
		t.Fatalf("station side: %v", h.err)
	}
	if !bytes.Equal(h.start, []byte{0x01, 0x07}) {
		t.Fatalf("connect did not send the start command: %v", h.start)
	}
	if !bytes.Equal(h.stop, []byte{0x00, 0x00}) {
		t.Fatalf("disconnect did not send the stop command: %v", h.stop)
	}
}
