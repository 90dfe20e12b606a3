package session

import "time"

// Clock 单次重复的计时器。
// 只做流逝时间轮询，不保证硬实时；采样节奏由数据源决定。
type Clock struct {
	duration time.Duration
	start    time.Time
}

func NewClock(seconds float64) *Clock {
	return &Clock{duration: time.Duration(seconds * float64(time.Second))}
}

// Start 开始计时
func (c *Clock) Start() {
	c.start = time.Now()
}

// Expired 判断动作窗口是否结束
func (c *Clock) Expired() bool {
	return time.Since(c.start) >= c.duration
}

// Elapsed 获取已流逝时间
func (c *Clock) Elapsed() time.Duration {
	return time.Since(c.start)
}

// Duration 获取配置的窗口时长
func (c *Clock) Duration() time.Duration {
	return c.duration
}
