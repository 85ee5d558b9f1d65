package diag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

type Bag struct {
	items []Diagnostic
	max   uint16
}

// NewBag creates a bag holding at most max diagnostics (clamped to uint16).
func NewBag(max int) *Bag {
	limit, err := safecast.Conv[uint16](max)
	if err != nil {
		limit = ^uint16(0)
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(int(limit), 64)),
		max:   limit,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Force добавляет диагностику даже сверх лимита (фатальные ошибки, тайминги).
func (b *Bag) Force(d Diagnostic) {
	if len(b.items) >= int(b.max) && b.max < ^uint16(0) {
		b.max = uint16(len(b.items) + 1) // #nosec G115 -- bounded by the check above
	}
	b.items = append(b.items, d)
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings возвращает true, если есть хотя бы одна диагностика с Severity >= Warning
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// ErrorCount считает диагностики уровня Error.
func (b *Bag) ErrorCount() int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			n++
		}
	}
	return n
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge объединяет диагностики из другого Bag.
// Увеличивает max, если нужно вместить все элементы.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	newTotal := len(b.items) + len(other.items)
	if newTotal > int(b.max) {
		if limit, err := safecast.Conv[uint16](newTotal); err == nil {
			b.max = limit
		} else {
			b.max = ^uint16(0)
		}
	}
	for _, d := range other.items {
		if !b.Add(d) {
			break
		}
	}
}

// Sort сортирует диагностики по: file, line, severity (desc), code (asc).
// Диагностики без позиции идут первыми.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		fi, li := position(di)
		fj, lj := position(dj)
		if fi != fj {
			return fi < fj
		}
		if li != lj {
			return li < lj
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// простая дедупликация (по Code+позиции+сообщению)
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	newitems := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s:%s", d.Code.ID(), d.Pos(), d.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		newitems = append(newitems, d)
	}
	b.items = newitems
}

func position(d Diagnostic) (string, uint32) {
	if d.Token == nil {
		return "", 0
	}
	return d.Token.File, d.Token.Line
}
