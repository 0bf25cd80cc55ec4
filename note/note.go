package note

// Entry is one playable pitch: the input symbol that triggers it, the
// label shown on the key, the fundamental frequency in Hz and whether
// the key is an accidental.
type Entry struct {
	Symbol     string
	Label      string
	Frequency  float64
	Accidental bool
}

// Table maps input symbols to entries while preserving pitch order.
// It is built once and never mutated.
type Table struct {
	entries []Entry
	index   map[string]int
}

func NewTable(entries []Entry) *Table {
	t := &Table{
		entries: make([]Entry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	copy(t.entries, entries)
	for i, e := range t.entries {
		t.index[e.Symbol] = i
	}
	return t
}

// Lookup returns the entry for symbol, or ok == false when the symbol
// is not part of the table.
func (t *Table) Lookup(symbol string) (Entry, bool) {
	i, ok := t.index[symbol]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Entries returns the table contents in pitch order.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)
	return entries
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Default is the QWERTY layout: the bottom letter row plays C4..B4 with
// sharps on the home row, the top letter row plays C5..B5 with sharps on
// the digit row, and "i" tops out at C6.
func Default() *Table {
	return NewTable([]Entry{
		{Symbol: "z", Label: "C4", Frequency: 261.63},
		{Symbol: "s", Label: "C#4", Frequency: 277.18, Accidental: true},
		{Symbol: "x", Label: "D4", Frequency: 293.66},
		{Symbol: "d", Label: "D#4", Frequency: 311.13, Accidental: true},
		{Symbol: "c", Label: "E4", Frequency: 329.63},
		{Symbol: "v", Label: "F4", Frequency: 349.23},
		{Symbol: "g", Label: "F#4", Frequency: 369.99, Accidental: true},
		{Symbol: "b", Label: "G4", Frequency: 392.00},
		{Symbol: "h", Label: "G#4", Frequency: 415.30, Accidental: true},
		{Symbol: "n", Label: "A4", Frequency: 440.00},
		{Symbol: "j", Label: "A#4", Frequency: 466.16, Accidental: true},
		{Symbol: "m", Label: "B4", Frequency: 493.88},
		{Symbol: "q", Label: "C5", Frequency: 523.25},
		{Symbol: "2", Label: "C#5", Frequency: 554.37, Accidental: true},
		{Symbol: "w", Label: "D5", Frequency: 587.33},
		{Symbol: "3", Label: "D#5", Frequency: 622.25, Accidental: true},
		{Symbol: "e", Label: "E5", Frequency: 659.25},
		{Symbol: "r", Label: "F5", Frequency: 698.46},
		{Symbol: "5", Label: "F#5", Frequency: 739.99, Accidental: true},
		{Symbol: "t", Label: "G5", Frequency: 783.99},
		{Symbol: "6", Label: "G#5", Frequency: 830.61, Accidental: true},
		{Symbol: "y", Label: "A5", Frequency: 880.00},
		{Symbol: "7", Label: "A#5", Frequency: 932.33, Accidental: true},
		{Symbol: "u", Label: "B5", Frequency: 987.77},
		{Symbol: "i", Label: "C6", Frequency: 1046.50},
	})
}
