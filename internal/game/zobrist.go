// File game/zobrist.go
package game

// 位置哈希：棋盘尺寸由驱动方决定，格子数不固定，所以不预生成随机表，
// 而是用 splitmix64 按 (cell, bug, 层高) 现算键值。确定性且无全局状态。

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// zobKey returns the hash key of one bug sitting at the given stack level
// of the cell. Push 和 Pop 用同一个键做增量异或。
func zobKey(c Cell, bug Bug, level int) uint64 {
	v := uint64(uint32(int32(c.P)))<<32 | uint64(uint32(int32(c.Q)))
	v = splitmix64(v)
	v ^= uint64(bug.Kind) << 1
	if bug.Upper {
		v ^= 1
	}
	v ^= uint64(level) << 4
	return splitmix64(v)
}

// perspectiveSalt separates the two evaluation perspectives in the memo
// cache key.
var perspectiveSalt = [2]uint64{splitmix64(0xa5a5a5a5), splitmix64(0x5a5a5a5a)}

// -------- 评估备忘缓存 --------
// EvaluatePosition 是棋面的纯函数，这里只做按哈希的记忆化，不改变任何
// 搜索语义。直接映射、新值覆盖旧值。

const (
	evalCacheBits = 18
	evalCacheSize = 1 << evalCacheBits
	evalCacheMask = evalCacheSize - 1
)

type evalEntry struct {
	key   uint64
	score int32
	state Outcome
	used  bool
}

// EvalCache memoizes static evaluations keyed by position hash and
// perspective.
type EvalCache struct {
	entries []evalEntry
	probes  uint64
	hits    uint64
}

// NewEvalCache allocates an empty cache.
func NewEvalCache() *EvalCache {
	return &EvalCache{entries: make([]evalEntry, evalCacheSize)}
}

func evalKey(b *Board, perspectiveUpper bool) uint64 {
	return b.hash ^ perspectiveSalt[sideIdx(perspectiveUpper)]
}

func (c *EvalCache) probe(key uint64) (int, Outcome, bool) {
	if c == nil {
		return 0, Running, false
	}
	c.probes++
	e := &c.entries[key&evalCacheMask]
	if e.used && e.key == key {
		c.hits++
		return int(e.score), e.state, true
	}
	return 0, Running, false
}

func (c *EvalCache) store(key uint64, score int, state Outcome) {
	if c == nil {
		return
	}
	c.entries[key&evalCacheMask] = evalEntry{key: key, score: int32(score), state: state, used: true}
}

// Stats returns probe/hit counters.
func (c *EvalCache) Stats() (probes, hits uint64) {
	if c == nil {
		return 0, 0
	}
	return c.probes, c.hits
}
