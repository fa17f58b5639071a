package bot

import (
	"math"
	"time"

	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/domain"
	"lukechampine.com/frand"
)

const (
	UCB_EXPLORATION = 1.41
	drawCredit      = 0.5
)

// Rand is the randomness MCTS needs. *frand.RNG satisfies it.
type Rand interface {
	Intn(n int) int
}

// MCTS is Monte-Carlo tree search with UCB1 selection and uniformly random
// playouts. It stops at the deadline, or after MaxSimulations when that is
// positive; at least one simulation always runs.
type MCTS struct {
	Exploration    float64
	MaxSimulations int
	// NewRand builds the generator for one decision; nil uses frand.New.
	NewRand func() Rand
}

type mctsNode struct {
	board    domain.Board
	toMove   domain.Player
	parent   *mctsNode
	move     int
	children []*mctsNode
	untried  []int
	visits   int
	wins     float64
	terminal bool
	winner   domain.Player
	decided  bool // terminal with a winner
}

func newNode(board domain.Board, toMove domain.Player, parent *mctsNode, move, lastRow int, moves []int) *mctsNode {
	n := &mctsNode{
		board:  board,
		toMove: toMove,
		parent: parent,
		move:   move,
	}
	if parent == nil {
		if winner, won := board.Winner(); won {
			n.terminal, n.decided, n.winner = true, true, winner
			return n
		}
	} else if board.CompletesFour(lastRow, move, toMove.Other()) {
		n.terminal, n.decided, n.winner = true, true, toMove.Other()
		return n
	}
	if board.IsFull() {
		n.terminal = true
		return n
	}
	n.untried = append([]int(nil), moves...)
	return n
}

// ucb1 picks the child to descend into. Unvisited children win outright.
func (n *mctsNode) bestChild(c float64) *mctsNode {
	var best *mctsNode
	bestScore := math.Inf(-1)
	logParent := math.Log(float64(n.visits))
	for _, child := range n.children {
		if child.visits == 0 {
			return child
		}
		exploit := child.wins / float64(child.visits)
		explore := c * math.Sqrt(logParent/float64(child.visits))
		if score := exploit + explore; score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

// mostVisited is the final answer: pure exploitation by visit count.
func (n *mctsNode) mostVisited() *mctsNode {
	var best *mctsNode
	for _, child := range n.children {
		if best == nil || child.visits > best.visits {
			best = child
		}
	}
	return best
}

// Search runs simulations from board with mover to play, expanding only the
// candidate columns at the root.
func (m MCTS) Search(board domain.Board, mover domain.Player, candidates []int, deadline time.Time) Result {
	start := time.Now()
	rng := m.rand()
	c := m.Exploration
	if c <= 0 {
		c = UCB_EXPLORATION
	}

	root := newNode(board, mover, nil, -1, -1, candidates)
	// a position that is already decided still gets a legal answer
	if root.terminal || len(root.untried) == 0 {
		return Result{Column: orderCenterFirst(candidates)[0], Elapsed: time.Since(start)}
	}

	simulations := 0
	for {
		if simulations > 0 {
			if m.MaxSimulations > 0 && simulations >= m.MaxSimulations {
				break
			}
			if !deadline.IsZero() && !time.Now().Before(deadline) {
				break
			}
			if deadline.IsZero() && m.MaxSimulations <= 0 {
				break
			}
		}

		node := m.selectNode(root, c)
		if !node.terminal {
			node = m.expand(node, rng)
		}
		result := m.simulate(node, rng)
		m.backpropagate(node, result)
		simulations++
	}

	best := root.mostVisited()
	return Result{
		Column:      best.move,
		Score:       int(1000 * best.wins / float64(max(best.visits, 1))),
		Nodes:       int64(root.visits),
		Simulations: simulations,
		Elapsed:     time.Since(start),
	}
}

func (m MCTS) rand() Rand {
	if m.NewRand != nil {
		return m.NewRand()
	}
	return frand.New()
}

func (m MCTS) selectNode(node *mctsNode, c float64) *mctsNode {
	for !node.terminal && len(node.untried) == 0 && len(node.children) > 0 {
		node = node.bestChild(c)
	}
	return node
}

func (m MCTS) expand(node *mctsNode, rng Rand) *mctsNode {
	if len(node.untried) == 0 {
		return node
	}
	i := rng.Intn(len(node.untried))
	move := node.untried[i]
	node.untried[i] = node.untried[len(node.untried)-1]
	node.untried = node.untried[:len(node.untried)-1]

	next, row := node.board.Play(move, node.toMove)
	child := newNode(next, node.toMove.Other(), node, move, row, next.LegalColumns())
	node.children = append(node.children, child)
	return child
}

// playoutResult is the winner of a playout, or a draw.
type playoutResult struct {
	winner domain.Player
	draw   bool
}

// simulate plays uniformly random moves until someone connects four or the
// grid fills up. The node's board is a value, so the tree is untouched.
func (m MCTS) simulate(node *mctsNode, rng Rand) playoutResult {
	if node.terminal {
		if node.decided {
			return playoutResult{winner: node.winner}
		}
		return playoutResult{draw: true}
	}

	board := node.board
	toMove := node.toMove
	var moves [domain.Columns]int
	for {
		n := 0
		for col := 0; col < domain.Columns; col++ {
			if board.IsValidMove(col) {
				moves[n] = col
				n++
			}
		}
		if n == 0 {
			return playoutResult{draw: true}
		}

		col := moves[rng.Intn(n)]
		next, row := board.Play(col, toMove)
		if next.CompletesFour(row, col, toMove) {
			return playoutResult{winner: toMove}
		}
		board = next
		toMove = toMove.Other()
	}
}

// backpropagate credits each node on the path when the result favours the
// player who moved into it, i.e. the player to move at its parent.
func (m MCTS) backpropagate(node *mctsNode, result playoutResult) {
	for node != nil {
		node.visits++
		if result.draw {
			node.wins += drawCredit
		} else if node.parent != nil && result.winner == node.parent.toMove {
			node.wins++
		}
		node = node.parent
	}
}
