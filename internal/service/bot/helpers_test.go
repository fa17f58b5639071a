package bot

import (
	"testing"

	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/domain"
	"lukechampine.com/frand"
)

// boardFrom builds a board from six rows, top first: X is the mover, O the
// opponent.
func boardFrom(t *testing.T, rows ...string) domain.Board {
	t.Helper()
	if len(rows) != domain.Rows {
		t.Fatalf("boardFrom: want %d rows, got %d", domain.Rows, len(rows))
	}
	b := domain.NewBoard()
	for r, line := range rows {
		if len(line) != domain.Columns {
			t.Fatalf("boardFrom: row %d has %d columns", r, len(line))
		}
		for c, ch := range line {
			switch ch {
			case 'X':
				b = b.Set(r, c, domain.Mine)
			case 'O':
				b = b.Set(r, c, domain.Theirs)
			}
		}
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("boardFrom: %v\n%s", err, b)
	}
	return b
}

func seededRand(seed byte) func() Rand {
	return func() Rand {
		key := make([]byte, 32)
		key[0] = seed
		return frand.NewCustom(key, 1024, 12)
	}
}

func contains(cols []int, col int) bool {
	for _, c := range cols {
		if c == col {
			return true
		}
	}
	return false
}
