package fragment

// Source supplies the full fragment sequence a generator selects from.
// Implementations must return the same logical sequence on every call.
type Source interface {
	All() Sequence
}

// houseLines ends on the dog; the trailing four run from the man to the dog.
var houseLines = [...]Fragment{
	"the cat that killed",
	"that rat that ate",
	"the malt that lay in",
	"the house that Jack built",
	"the horse and the hound and the horn that belonged to",
	"the farmer sowing his corn that kept",
	"the rooster that crowed in the morn that woke",
	"the priest all shaven and shorn that married",
	"the man all tattered and torn that kissed",
	"the maiden all forlorn that milked",
	"the cow with the crumpled horn that tossed",
	"the dog that worried",
}

// HouseSize is the number of fragments in the built-in source.
const HouseSize = len(houseLines)

type house struct{}

// House returns the built-in twelve line source.
func House() Source {
	return house{}
}

// All returns a fresh copy of the built-in lines.
func (house) All() Sequence {
	out := make(Sequence, len(houseLines))
	copy(out, houseLines[:])
	return out
}

// Static is a Source backed by a caller supplied list.
type Static struct {
	lines Sequence
}

// NewStatic copies lines into a new Static source.
func NewStatic(lines ...string) *Static {
	return &Static{lines: FromStrings(lines...)}
}

// All returns a fresh copy of the configured lines.
func (s *Static) All() Sequence {
	if s == nil {
		return Sequence{}
	}
	return s.lines.Clone()
}

// Len reports how many fragments the source holds.
func (s *Static) Len() int {
	if s == nil {
		return 0
	}
	return len(s.lines)
}
