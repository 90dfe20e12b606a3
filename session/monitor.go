package session

import (
	"sync"
	"time"

	"emg/define"
	"emg/device"
)

// monitorWindow 实时监视保留的最近采样数
const monitorWindow = 256

// TrialState 实时监视的当前试次状态
type TrialState struct {
	Running    bool             `json:"running"`
	Movement   *define.Movement `json:"movement,omitempty"`
	Repetition int              `json:"repetition"`
	Samples    int              `json:"samples"`
	Elapsed    string           `json:"elapsed"`
	Recent     [][]float64      `json:"recent,omitempty"` // 最近若干个采样的各通道读数
}

// Monitor 采集过程的实时监视状态。
// 采集循环写入，监视服务的 gin 处理器并发读取。
type Monitor struct {
	mutex      sync.RWMutex
	running    bool
	movement   define.Movement
	repetition int
	count      int
	started    time.Time
	recent     [][]float64
}

func NewMonitor() *Monitor {
	return &Monitor{recent: make([][]float64, 0, monitorWindow)}
}

// StartTrial 标记一个试次开始
func (m *Monitor) StartTrial(movement define.Movement, repetition int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.running = true
	m.movement = movement
	m.repetition = repetition
	m.count = 0
	m.started = time.Now()
	m.recent = m.recent[:0]
}

// Observe 记录一个新采样
func (m *Monitor) Observe(sample device.Sample) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.count++
	copied := make([]float64, len(sample))
	copy(copied, sample)

	if len(m.recent) == monitorWindow {
		m.recent = m.recent[1:]
	}
	m.recent = append(m.recent, copied)
}

// EndTrial 标记当前试次结束
func (m *Monitor) EndTrial() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.running = false
}

// Snapshot 获取当前状态的一个拷贝
func (m *Monitor) Snapshot() TrialState {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	state := TrialState{
		Running:    m.running,
		Repetition: m.repetition,
		Samples:    m.count,
	}

	if m.running {
		movement := m.movement
		state.Movement = &movement
		state.Elapsed = time.Since(m.started).Round(time.Millisecond).String()
		state.Recent = make([][]float64, len(m.recent))
		copy(state.Recent, m.recent)
	}

	return state
}
