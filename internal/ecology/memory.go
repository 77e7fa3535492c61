package ecology

// HuntRecord is one remembered hunt: the warning pattern the prey showed and
// how the meal turned out.
type HuntRecord struct {
	PreyPattern float64
	Outcome     HuntOutcome
}

// HuntMemory is a fixed-capacity ring buffer of past hunts. When full, the
// oldest record is overwritten. Capacity is set once at construction and
// equals the predator's memory_size trait.
type HuntMemory struct {
	records []HuntRecord
	head    int // index of the oldest record once the buffer has wrapped
	size    int
}

// NewHuntMemory creates an empty memory with the given capacity.
// capacity must be > 0; trait validation enforces that upstream.
func NewHuntMemory(capacity int) *HuntMemory {
	return &HuntMemory{records: make([]HuntRecord, capacity)}
}

// Record appends a hunt, evicting the oldest record if the buffer is full.
func (m *HuntMemory) Record(preyPattern float64, outcome HuntOutcome) {
	rec := HuntRecord{PreyPattern: preyPattern, Outcome: outcome}
	if m.size < len(m.records) {
		m.records[(m.head+m.size)%len(m.records)] = rec
		m.size++
		return
	}
	m.records[m.head] = rec
	m.head = (m.head + 1) % len(m.records)
}

// Len returns the number of stored records.
func (m *HuntMemory) Len() int { return m.size }

// Cap returns the fixed capacity.
func (m *HuntMemory) Cap() int { return len(m.records) }

// Full reports whether the memory holds exactly its capacity.
func (m *HuntMemory) Full() bool { return m.size == len(m.records) }

// At returns the i-th record, oldest first.
func (m *HuntMemory) At(i int) HuntRecord {
	return m.records[(m.head+i)%len(m.records)]
}

// Records returns the stored hunts oldest-first as a fresh slice.
func (m *HuntMemory) Records() []HuntRecord {
	out := make([]HuntRecord, m.size)
	for i := 0; i < m.size; i++ {
		out[i] = m.At(i)
	}
	return out
}

// SatisfiedRate returns the fraction of remembered hunts that ended
// satisfied, over the full capacity. Only meaningful once Full.
func (m *HuntMemory) SatisfiedRate() float64 {
	if len(m.records) == 0 {
		return 0
	}
	satisfied := 0
	for i := 0; i < m.size; i++ {
		if m.At(i).Outcome == OutcomeSatisfied {
			satisfied++
		}
	}
	return float64(satisfied) / float64(len(m.records))
}
