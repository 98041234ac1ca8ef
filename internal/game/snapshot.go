package game

// Snapshot is the presentation view of a game. Hidden hints are empty strings;
// the solution is only present once the game is over.
type Snapshot struct {
	ID          string   `json:"id"`
	Status      Status   `json:"status"`
	Attempts    int      `json:"attempts"`
	MaxAttempts int      `json:"maxAttempts"`
	Indicator   string   `json:"indicator"`
	Clues       []string `json:"clues"`
	Length      string   `json:"length,omitempty"`
	History     []string `json:"history"`
	Solution    string   `json:"solution,omitempty"`
}

// Snapshot captures the current view of g.
func (g *Game) Snapshot() Snapshot {
	clues := make([]string, 0, 5)
	for n := 1; n <= 5; n++ {
		clues = append(clues, g.Clue(n))
	}
	return Snapshot{
		ID:          g.ID,
		Status:      g.Status,
		Attempts:    g.Attempts,
		MaxAttempts: MaxAttempts,
		Indicator:   g.Indicator(),
		Clues:       clues,
		Length:      g.LengthHint(),
		History:     append([]string{}, g.History...),
		Solution:    g.Solution(),
	}
}
