package requests

import "sync/atomic"

// Sequencer 提供单调递增的请求号，用于"忽略过期结果"模式：
// 每次发起异步任务前取 Next，任务完成时用 IsCurrent 判断结果是否
// 已被更新的请求取代，过期结果直接丢弃而不写回共享状态。
// 多个异步调用点共用这一实现，不再各写一份计数器。
type Sequencer struct {
	counter atomic.Uint64
}

// Next 领取一个新的请求号，同时使所有旧请求号过期
func (s *Sequencer) Next() uint64 {
	return s.counter.Add(1)
}

// Current 读取最新请求号而不领取新号，供只读路径做过期判断
func (s *Sequencer) Current() uint64 {
	return s.counter.Load()
}

// IsCurrent 判断请求号是否仍是最新
func (s *Sequencer) IsCurrent(id uint64) bool {
	return s.counter.Load() == id
}

// Invalidate 使当前所有在途请求过期，但不发起新请求
func (s *Sequencer) Invalidate() {
	s.counter.Add(1)
}
