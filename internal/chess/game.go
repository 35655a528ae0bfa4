package chess

// GameRecord is a scripted game: its tags, the starting position and the
// moves to replay, in order.
type GameRecord struct {
	// Tags for this game (e.g., Name, Variant, Layout).
	Tags map[string]string

	// The board geometry and rule set, from the Variant tag or the default.
	Variant Variant

	// The starting placement; empty means the variant's initial layout.
	Layout string

	// The moves of the game.
	Moves []*MoveRecord

	// Source file and the line numbers of the start and end of the game.
	File      string
	StartLine uint
	EndLine   uint
}

// NewGameRecord creates an empty record for variant v.
func NewGameRecord(v Variant) *GameRecord {
	return &GameRecord{
		Tags:    make(map[string]string),
		Variant: v,
	}
}

// GetTag returns a tag value, or empty string if not present.
func (g *GameRecord) GetTag(name string) string {
	return g.Tags[name]
}

// SetTag sets a tag value.
func (g *GameRecord) SetTag(name, value string) {
	g.ensureTags()
	g.Tags[name] = value
}

// HasTag returns true if the tag is present.
func (g *GameRecord) HasTag(name string) bool {
	_, ok := g.Tags[name]
	return ok
}

// ensureTags initializes the Tags map if it is nil.
func (g *GameRecord) ensureTags() {
	if g.Tags == nil {
		g.Tags = make(map[string]string)
	}
}

// PlyCount returns the number of moves in the record.
func (g *GameRecord) PlyCount() int {
	return len(g.Moves)
}

// StartLayout returns the placement the game starts from.
func (g *GameRecord) StartLayout() string {
	if g.Layout != "" {
		return g.Layout
	}
	return InitialLayout(g.Variant)
}

// Name returns the game's Name tag, falling back to its source location.
func (g *GameRecord) Name() string {
	if name := g.GetTag(TagName); name != "" {
		return name
	}
	return g.File
}
