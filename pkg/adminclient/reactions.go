package adminclient

import "sync"

// ==================== 反应视图 ====================

// 固定的反应集合，顺序即展示顺序
var ReactionKinds = []string{"❤️", "😢", "😡"}

// ReactionState 单条内容的反应计数与收藏状态
type ReactionState struct {
	Counts     map[string]int
	Reacted    map[string]bool
	Bookmarked bool
}

// ReactionView 纯内存的反应交互状态，不持久化
type ReactionView struct {
	mu     sync.Mutex
	states map[string]*ReactionState
}

func NewReactionView() *ReactionView {
	return &ReactionView{states: make(map[string]*ReactionState)}
}

func (rv *ReactionView) stateLocked(contentID string) *ReactionState {
	st, ok := rv.states[contentID]
	if !ok {
		st = &ReactionState{
			Counts:  make(map[string]int),
			Reacted: make(map[string]bool),
		}
		rv.states[contentID] = st
	}
	return st
}

// Seed 用服务端数据初始化计数
func (rv *ReactionView) Seed(contentID string, counts map[string]int) {
	rv.mu.Lock()
	defer rv.mu.Unlock()
	st := rv.stateLocked(contentID)
	for _, kind := range ReactionKinds {
		st.Counts[kind] = counts[kind]
	}
}

// Toggle 切换一种反应，集合外的种类忽略
// 返回切换后是否处于已反应状态
func (rv *ReactionView) Toggle(contentID, kind string) bool {
	if !validReaction(kind) {
		return false
	}
	rv.mu.Lock()
	defer rv.mu.Unlock()
	st := rv.stateLocked(contentID)
	if st.Reacted[kind] {
		st.Reacted[kind] = false
		if st.Counts[kind] > 0 {
			st.Counts[kind]--
		}
		return false
	}
	st.Reacted[kind] = true
	st.Counts[kind]++
	return true
}

// ToggleBookmark 切换收藏，返回切换后的状态
func (rv *ReactionView) ToggleBookmark(contentID string) bool {
	rv.mu.Lock()
	defer rv.mu.Unlock()
	st := rv.stateLocked(contentID)
	st.Bookmarked = !st.Bookmarked
	return st.Bookmarked
}

// State 快照
func (rv *ReactionView) State(contentID string) ReactionState {
	rv.mu.Lock()
	defer rv.mu.Unlock()
	st := rv.stateLocked(contentID)
	out := ReactionState{
		Counts:     make(map[string]int, len(st.Counts)),
		Reacted:    make(map[string]bool, len(st.Reacted)),
		Bookmarked: st.Bookmarked,
	}
	for k, v := range st.Counts {
		out.Counts[k] = v
	}
	for k, v := range st.Reacted {
		out.Reacted[k] = v
	}
	return out
}

func validReaction(kind string) bool {
	for _, k := range ReactionKinds {
		if k == kind {
			return true
		}
	}
	return false
}
