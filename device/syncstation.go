package device

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"net"
	"time"

	"emg/define"
)

const (
	// 每通道 2 字节，大端，EMG 通道之后跟 6 个辅助通道
	auxChannelCount = 6
	bytesPerChannel = 2

	// 原始计数到 mV 的换算系数（设备文档中的增益比 286.1 nV/LSB）
	countToMillivolt = 286.1e-9 * 1e3

	connectRetries    = 5
	connectRetryDelay = 2 * time.Second
	readTimeout       = 20 * time.Second
)

func init() {
	RegisterSourceType(define.DEVICE_MODEL_SYNCSTATION, NewSyncStation)
}

// SyncStation 通过 TCP 连接无线采集基站的拉取式数据源。
// 连接后发送开始命令，基站以固定采样率持续推送帧，
// 每帧为全部通道在同一采样时刻的大端 16 位读数。
type SyncStation struct {
	addr       string
	channels   int
	sampleRate int
	conn       net.Conn
	frame      []byte
}

func NewSyncStation(cfg *define.SessionConfig) (Source, error) {
	if cfg.DeviceAddr == "" {
		return nil, fmt.Errorf("缺少设备网络地址")
	}

	return &SyncStation{
		addr:       cfg.DeviceAddr,
		channels:   cfg.ChannelCount,
		sampleRate: cfg.SampleRate,
		frame:      make([]byte, (cfg.ChannelCount+auxChannelCount)*bytesPerChannel),
	}, nil
}

func (s *SyncStation) Model() string     { return define.DEVICE_MODEL_SYNCSTATION }
func (s *SyncStation) ChannelCount() int { return s.channels }
func (s *SyncStation) SampleRate() int   { return s.sampleRate }

// Connect 建立 TCP 连接并发送开始命令
func (s *SyncStation) Connect() error {
	var lastErr error
	for i := 0; i < connectRetries; i++ {
		conn, err := net.DialTimeout("tcp", s.addr, 5*time.Second)
		if err != nil {
			lastErr = err
			log.Printf("⚠️ 连接基站失败 (%d/%d): %v", i+1, connectRetries, err)
			time.Sleep(connectRetryDelay)
			continue
		}

		if tcpConn, ok := conn.(*net.TCPConn); ok {
			tcpConn.SetNoDelay(true)
		}

		s.conn = conn
		if _, err := s.conn.Write(s.startCommand()); err != nil {
			s.conn.Close()
			s.conn = nil
			return fmt.Errorf("发送开始命令失败：%w", err)
		}

		log.Printf("✅ 已连接基站 %s 并发送开始命令", s.addr)
		return nil
	}

	return fmt.Errorf("连接基站 %s 失败（已重试 %d 次）：%w", s.addr, connectRetries, lastErr)
}

// Read 阻塞读取一帧并解码为各通道 mV 读数
func (s *SyncStation) Read() (Sample, error) {
	if s.conn == nil {
		return nil, fmt.Errorf("设备未连接")
	}

	if err := s.conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		return nil, fmt.Errorf("设置读取超时失败：%w", err)
	}

	if _, err := io.ReadFull(s.conn, s.frame); err != nil {
		return nil, fmt.Errorf("读取数据帧失败：%w", err)
	}

	sample := make(Sample, s.channels)
	for ch := 0; ch < s.channels; ch++ {
		// 大端有符号 16 位计数，换算为 mV
		raw := int16(binary.BigEndian.Uint16(s.frame[ch*bytesPerChannel:]))
		sample[ch] = float64(raw) * countToMillivolt
	}

	return sample, nil
}

// Disconnect 发送停止命令并关闭连接
func (s *SyncStation) Disconnect() error {
	if s.conn == nil {
		return nil
	}

	if _, err := s.conn.Write(s.stopCommand()); err != nil {
		log.Printf("⚠️ 发送停止命令失败: %v", err)
	} else {
		log.Printf("🛑 已发送停止命令")
	}

	err := s.conn.Close()
	s.conn = nil
	if err != nil {
		return fmt.Errorf("关闭基站连接失败：%w", err)
	}
	return nil
}

// startCommand 构造开始命令：模式字节加 CRC8 校验字节
func (s *SyncStation) startCommand() []byte {
	cmd := []byte{0x01}
	return append(cmd, crc8(cmd))
}

// stopCommand 构造停止命令：全零头部加 CRC8 校验字节
func (s *SyncStation) stopCommand() []byte {
	cmd := []byte{0x00}
	return append(cmd, crc8(cmd))
}

// crc8 计算命令字节的 CRC8 校验值（多项式 0x07）
func crc8(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = (crc << 1) ^ 0x07
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
