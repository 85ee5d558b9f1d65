package cond

import "tcab/internal/token"

// frame is one open #if chain.
type frame struct {
	parentActive bool
	taken        bool // some branch of the chain already fired
	active       bool
	open         token.Token // the '#' of the #if, for diagnostics
}

type frameStack struct {
	frames []frame
}

func (s *frameStack) Empty() bool { return len(s.frames) == 0 }

// Active reports whether tokens are emitted at the current position.
func (s *frameStack) Active() bool {
	if len(s.frames) == 0 {
		return true
	}
	return s.frames[len(s.frames)-1].active
}

// Push opens a chain. Inside an inactive region the chain is dead:
// inactive and already taken.
func (s *frameStack) Push(cond bool, open token.Token) {
	parent := s.Active()
	active := parent && cond
	s.frames = append(s.frames, frame{
		parentActive: parent,
		taken:        active || !parent,
		active:       active,
		open:         open,
	})
}

// Pending reports whether the next #elif condition has to be evaluated.
func (s *frameStack) Pending() bool {
	if len(s.frames) == 0 {
		return false
	}
	top := s.frames[len(s.frames)-1]
	return top.parentActive && !top.taken
}

func (s *frameStack) Elif(cond bool) {
	if len(s.frames) == 0 {
		return
	}
	top := &s.frames[len(s.frames)-1]
	if !top.parentActive || top.taken {
		top.active = false
		return
	}
	top.active = cond
	if cond {
		top.taken = true
	}
}

func (s *frameStack) Else() {
	if len(s.frames) == 0 {
		return
	}
	top := &s.frames[len(s.frames)-1]
	if !top.parentActive {
		top.active = false
		return
	}
	top.active = !top.taken
	top.taken = true
}

func (s *frameStack) Pop() {
	if len(s.frames) == 0 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}
