package route

// History is a navigation stack of locations with back/forward support.
// The view is always derived from Current(), nothing else is saved.
type History struct {
	entries []string
	pos     int
}

func NewHistory(initial string) *History {
	return &History{entries: []string{initial}}
}

// Push adds location after the current entry. Forward entries are dropped.
func (h *History) Push(location string) {
	h.entries = append(h.entries[:h.pos+1], location)
	h.pos++
}

func (h *History) Back() (string, bool) {
	if h.pos == 0 {
		return h.entries[0], false
	}
	h.pos--
	return h.entries[h.pos], true
}

func (h *History) Forward() (string, bool) {
	if h.pos == len(h.entries)-1 {
		return h.entries[h.pos], false
	}
	h.pos++
	return h.entries[h.pos], true
}

func (h *History) Current() string {
	return h.entries[h.pos]
}
