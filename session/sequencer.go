package session

import (
	"fmt"
	"log"

	"emg/define"
	"emg/device"
	"emg/storage"

	"github.com/google/uuid"
)

// Sequencer 驱动一次完整会话：按配置顺序遍历动作，
// 每个动作做固定次数的重复，每次重复采满动作窗口后交给写入器落盘。
// 任何一步失败都直接终止会话，已落盘的重复保持有效。
type Sequencer struct {
	cfg       *define.SessionConfig
	source    device.Source
	writer    storage.Writer
	monitor   *Monitor
	sessionID string
}

func NewSequencer(cfg *define.SessionConfig, source device.Source, writer storage.Writer, monitor *Monitor) *Sequencer {
	return &Sequencer{
		cfg:       cfg,
		source:    source,
		writer:    writer,
		monitor:   monitor,
		sessionID: uuid.NewString(),
	}
}

// SessionID 获取本次会话运行的唯一标识
func (s *Sequencer) SessionID() string {
	return s.sessionID
}

// Run 执行全部动作 × 重复次数的采集。
// 最后一个动作的最后一次重复完成后返回。
func (s *Sequencer) Run() error {
	total := len(s.cfg.Movements) * s.cfg.Repetitions
	log.Printf("🚀 会话 %s 开始: %d 个动作 × %d 次重复 = %d 个试次",
		s.sessionID, len(s.cfg.Movements), s.cfg.Repetitions, total)

	buffer := NewBuffer(s.cfg.ChannelCount)
	clock := NewClock(s.cfg.PerformTime)

	done := 0
	for _, movement := range s.cfg.Movements {
		for rep := 1; rep <= s.cfg.Repetitions; rep++ {
			if err := s.runTrial(movement, rep, buffer, clock); err != nil {
				return err
			}
			done++
			log.Printf("📈 进度: %d/%d", done, total)
		}
	}

	log.Printf("🏁 会话 %s 完成: 共 %d 个试次", s.sessionID, total)
	return nil
}

// runTrial 执行单个试次：提示动作、清空缓冲、采满动作窗口、落盘
func (s *Sequencer) runTrial(movement define.Movement, rep int, buffer *Buffer, clock *Clock) error {
	log.Printf("🎯 请执行动作 %s 第 %d/%d 次（%v 秒）", movement, rep, s.cfg.Repetitions, s.cfg.PerformTime)
	if movement.Cue != "" {
		log.Printf("🖼️ 提示图: %s", movement.Cue)
	}

	if s.monitor != nil {
		s.monitor.StartTrial(movement, rep)
		defer s.monitor.EndTrial()
	}

	buffer.Reset()
	clock.Start()

	for !clock.Expired() {
		sample, err := s.source.Read()
		if err != nil {
			return fmt.Errorf("受试者 %s 动作 M%d 第 %d 次读取采样失败：%w",
				s.cfg.SubjectID, movement.ID, rep, err)
		}

		if err := buffer.Append(sample); err != nil {
			return fmt.Errorf("受试者 %s 动作 M%d 第 %d 次缓冲采样失败：%w",
				s.cfg.SubjectID, movement.ID, rep, err)
		}

		if s.monitor != nil {
			s.monitor.Observe(sample)
		}
	}

	md := storage.Metadata{
		SubjectID:    s.cfg.SubjectID,
		DateString:   s.cfg.DateString,
		MovementID:   movement.ID,
		Repetition:   rep,
		SampleRate:   s.cfg.SampleRate,
		ChannelCount: s.cfg.ChannelCount,
		SessionID:    s.sessionID,
	}

	if err := s.writer.Write(md, buffer.Samples()); err != nil {
		return fmt.Errorf("保存 %s 失败：%w", md, err)
	}

	return nil
}
