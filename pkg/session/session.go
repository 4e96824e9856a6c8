// Package session drives one game at a time: it owns the board, the
// search resources and the decision of how the next move is produced.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/corvidchess/corvid/pkg/book"
	"github.com/corvidchess/corvid/pkg/common"
	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/tablebase"
)

var (
	ErrInvalidMoveFormat = errors.New("invalid move format")
	ErrIllegalMove       = errors.New("illegal move")
)

// Pool is the parallel searcher driven by a Session.
type Pool interface {
	Search(clock engine.Clock, board *common.Board, maxDepth int, maxNodes int64)
	Stop()
	Wait()
	Threads() int
	SetThreads(n int)
	ClearEvalCache()
	ResizeEvalCache(megabytes int)
	ClearHistory()
	TotalNodes() int64
	TotalTime() time.Duration
}

// HashTable is the transposition table as seen by a Session.
type HashTable interface {
	Clear()
	Resize(megabytes int)
	Usage() int
}

type TimeController interface {
	engine.Clock
	Go(maxTime int, infinite bool)
	GoClock(maxTime, opponentTime, increment, movesToGo, movesOutOfBook int, infinite bool)
	SetInfinite(infinite bool)
	SetMoveOverhead(ms int)
}

type WeightStore interface {
	Load(path string) (*eval.Weights, error)
	Save(path string, w *eval.Weights) error
	Default() *eval.Weights
}

type Book interface {
	Move(lans []string) (move, title string, ok bool)
}

// Config wires a Session. Nil fields get the engine defaults.
type Config struct {
	Options   Options
	Logger    zerolog.Logger
	Reporter  engine.Reporter
	Pool      Pool
	Hash      HashTable
	Clock     TimeController
	Tablebase tablebase.Service
	Weights   WeightStore
	Book      Book
}

type Session struct {
	options   Options
	baseLog   zerolog.Logger
	log       zerolog.Logger
	reporter  engine.Reporter
	pool      Pool
	hash      HashTable
	clock     TimeController
	tablebase tablebase.Service
	store     WeightStore
	book      Book
	weights   *eval.Weights

	board          *common.Board
	fromStartpos   bool
	color          int
	movesOutOfBook int
	isRunning      bool
	isPondering    bool
	infinite       bool
	debug          bool
}

var startPosition = mustPosition(common.InitialPositionFen)

func mustPosition(fen string) common.Position {
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		panic(err)
	}
	return p
}

func New(cfg Config) *Session {
	var s = &Session{
		options:      cfg.Options,
		baseLog:      cfg.Logger,
		reporter:     cfg.Reporter,
		pool:         cfg.Pool,
		hash:         cfg.Hash,
		clock:        cfg.Clock,
		tablebase:    cfg.Tablebase,
		store:        cfg.Weights,
		book:         cfg.Book,
		board:        common.NewBoard(startPosition),
		fromStartpos: true,
	}
	s.log = s.baseLog.Level(zerolog.InfoLevel)
	if s.options.Hash <= 0 {
		s.options.Hash = DefaultOptions().Hash
	}
	if s.reporter == nil {
		s.reporter = discardReporter{}
	}
	if s.clock == nil {
		s.clock = engine.NewTimeControl()
	}
	s.clock.SetMoveOverhead(s.options.MoveOverhead)
	if s.tablebase == nil {
		s.tablebase = tablebase.Unavailable{}
	}
	if s.store == nil {
		s.store = eval.FileStore{}
	}
	if s.book == nil {
		s.book = book.New()
	}
	if s.pool == nil {
		var tt, ok = s.hash.(*engine.TransTable)
		if !ok {
			tt = engine.NewTransTable(s.options.Hash)
			s.hash = tt
		}
		var pool = engine.NewThreadPool(tt, engine.NewHistory(), s.Weights, s.reporter)
		pool.ResizeEvalCache(evalCacheSize(s.options.Hash))
		s.pool = pool
	} else if s.hash == nil {
		s.hash = engine.NewTransTable(s.options.Hash)
	}
	s.pool.SetThreads(s.options.Threads)
	s.options.Threads = s.pool.Threads()
	if s.options.SyzygyPath != "" {
		s.SetSyzygyPath(s.options.SyzygyPath)
	}
	return s
}

type discardReporter struct{}

func (discardReporter) Info(common.SearchInfo) {}

func (discardReporter) BestMove(best, ponder common.Move) {}

// Options returns the live settings. Changes to Hash, Threads, MoveOverhead
// and EvalFile take effect through the matching Session methods.
func (s *Session) Options() *Options { return &s.options }

func (s *Session) Logger() *zerolog.Logger { return &s.log }

func (s *Session) IsRunning() bool { return s.isRunning }

func (s *Session) IsPondering() bool { return s.isPondering }

func (s *Session) Infinite() bool { return s.infinite }

func (s *Session) Debug() bool { return s.debug }

func (s *Session) MovesOutOfBook() int { return s.movesOutOfBook }

// Color is the side to move in the current position.
func (s *Session) Color() int { return s.color }

func (s *Session) Position() common.Position { return s.board.Position }

func (s *Session) Start() {
	s.Stop()
	s.isRunning = true
}

// Stop cancels the running search and waits for its workers to exit.
func (s *Session) Stop() {
	s.pool.Stop()
}

func (s *Session) Quit() {
	s.Stop()
	s.isRunning = false
}

// Wait blocks until the running search ends.
func (s *Session) Wait() {
	s.pool.Wait()
}

// PonderHit turns a ponder search into a normal timed one.
// A search that is not pondering is stopped.
func (s *Session) PonderHit() {
	if !s.isRunning {
		return
	}
	if s.isPondering {
		s.isPondering = false
		s.infinite = false
		s.clock.SetInfinite(false)
		return
	}
	s.Stop()
}

// SetInfinite marks the next searches as analysis without a time limit.
func (s *Session) SetInfinite(infinite bool) {
	s.infinite = infinite
}

func (s *Session) SetDebug(debug bool) {
	s.debug = debug
	if debug {
		s.log = s.baseLog.Level(zerolog.DebugLevel)
	} else {
		s.log = s.baseLog.Level(zerolog.InfoLevel)
	}
}

// Go searches with a fixed budget: maxTime in milliseconds, maxDepth plies and maxNodes.
func (s *Session) Go(maxDepth, maxTime int, maxNodes int64, ponder bool) {
	s.Stop()
	s.isPondering = ponder
	s.clock.Go(maxTime, ponder || s.infinite)
	s.StartSearch(maxDepth, maxNodes)
}

// GoClock searches with a budget derived from the remaining clock times in milliseconds.
func (s *Session) GoClock(maxTime, opponentTime, increment, movesToGo, maxDepth int, maxNodes int64, ponder bool) {
	s.Stop()
	s.isPondering = ponder
	s.clock.GoClock(maxTime, opponentTime, increment, movesToGo, s.movesOutOfBook, ponder || s.infinite)
	s.StartSearch(maxDepth, maxNodes)
}

// StartSearch answers from the tablebase or the book when it can,
// and starts the pool otherwise.
func (s *Session) StartSearch(maxDepth int, maxNodes int64) {
	var pv [tbMaxPly]common.Move
	if pvLen, score, ok := s.probePvTb(&pv); ok {
		s.reporter.Info(common.SearchInfo{
			Score:    engine.NewUciScore(score),
			Depth:    1,
			SelDepth: 1,
			HashFull: s.hash.Usage(),
			TbHits:   int64(pvLen),
			MainLine: append([]common.Move(nil), pv[:pvLen]...),
		})
		s.reporter.BestMove(pv[0], common.MoveEmpty)
		return
	}

	if move, ok := s.bookMove(); ok {
		s.reporter.BestMove(move, common.MoveEmpty)
		return
	}

	if s.options.AnalyseMode {
		s.ClearHashTable()
	}
	s.movesOutOfBook++
	s.pool.Search(s.clock, s.board, maxDepth, maxNodes)
	s.isRunning = true
}

func (s *Session) bookMove() (common.Move, bool) {
	if !s.options.OwnBook || !s.fromStartpos || s.isPondering || s.infinite {
		return common.MoveEmpty, false
	}
	var history = s.board.Moves()
	var lans = make([]string, len(history))
	for i, m := range history {
		lans[i] = m.String()
	}
	var lan, title, ok = s.book.Move(lans)
	if !ok {
		return common.MoveEmpty, false
	}
	var move, found = common.ParseMoveLAN(&s.board.Position, lan)
	if !found || !isLegal(s.board, move) {
		s.log.Warn().Str("move", lan).Msg("book move rejected")
		return common.MoveEmpty, false
	}
	s.log.Info().Str("opening", title).Str("move", lan).Msg("book move")
	return move, true
}

func isLegal(b *common.Board, move common.Move) bool {
	var child = b.Clone(1)
	return child.MakeMove(move)
}

// SetupPosition replaces the current position with fen.
// The previous position is kept when fen cannot be loaded.
func (s *Session) SetupPosition(fen string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("fen", fen).Msg("position load failed")
			ok = false
		}
	}()
	s.Stop()
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		s.log.Error().Err(err).Str("fen", fen).Msg("position load failed")
		return false
	}
	s.board.Reset(p)
	s.color = p.SideToMove()
	s.fromStartpos = p == startPosition
	s.log.Debug().Str("fen", p.String()).Msg("position")
	return true
}

// MakeMoves plays moves in long algebraic notation on the current position.
// It stops at the first bad move; the moves before it stay on the board.
func (s *Session) MakeMoves(moves []string) error {
	defer func() {
		s.color = s.board.SideToMove()
	}()
	for _, lan := range moves {
		var move, ok = common.ParseMoveLAN(&s.board.Position, lan)
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidMoveFormat, lan)
		}
		if !s.board.MakeMove(move) {
			return fmt.Errorf("%w: %q", ErrIllegalMove, lan)
		}
	}
	if len(moves) > 0 {
		s.log.Debug().Str("fen", s.board.String()).Int("moves", len(moves)).Msg("moves applied")
	}
	return nil
}

// ClearHashTable stops a running search first; the workers share the
// table and own the eval caches.
func (s *Session) ClearHashTable() {
	s.Stop()
	s.hash.Clear()
	s.pool.ClearEvalCache()
}

func (s *Session) SetupNewGame() {
	s.Stop()
	s.ClearHashTable()
	s.movesOutOfBook = 0
	s.pool.ClearHistory()
}

// ResizeHashTable reallocates the caches for the Hash option.
func (s *Session) ResizeHashTable() {
	s.Stop()
	s.options.Hash = common.Clamp(s.options.Hash, MinHash, MaxHash)
	s.hash.Resize(s.options.Hash)
	s.pool.ResizeEvalCache(evalCacheSize(s.options.Hash))
}

func (s *Session) SetThreads(n int) {
	s.Stop()
	s.pool.SetThreads(n)
	s.options.Threads = s.pool.Threads()
}

func (s *Session) SetMoveOverhead(ms int) {
	s.options.MoveOverhead = ms
	s.clock.SetMoveOverhead(ms)
}

// SetSyzygyPath hands path to the tablebase service when it can load files.
func (s *Session) SetSyzygyPath(path string) {
	s.Stop()
	s.options.SyzygyPath = path
	if path == "" {
		return
	}
	var loader, ok = s.tablebase.(tablebase.Loader)
	if !ok {
		s.log.Warn().Str("path", path).Msg("no tablebase prober linked, SyzygyPath ignored")
		return
	}
	if err := loader.Load(path); err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("tablebase not loaded")
		return
	}
	s.log.Info().Str("path", path).Int("pieces", s.tablebase.MaxPieces()).Msg("tablebase loaded")
}

// SetEvalFile selects another weights file; it is read before the next search.
func (s *Session) SetEvalFile(name string) {
	s.Stop()
	s.options.EvalFile = name
	s.weights = nil
	s.pool.ClearEvalCache()
}

// Weights returns the evaluation weights, reading them on first use.
func (s *Session) Weights() *eval.Weights {
	if s.weights == nil {
		s.weights = s.loadWeights()
	}
	return s.weights
}

func (s *Session) loadWeights() *eval.Weights {
	var name = strings.TrimSpace(s.options.EvalFile)
	if name == "" || strings.EqualFold(name, "<empty>") {
		return s.store.Default()
	}
	var path = weightsPath(name)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		var w = s.store.Default()
		if err := s.store.Save(path, w); err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("weights not saved")
		} else {
			s.log.Info().Str("path", path).Msg("default weights saved")
		}
		return w
	}
	var w, err = s.store.Load(path)
	if err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("weights load failed, using defaults")
		return s.store.Default()
	}
	s.log.Debug().Str("path", path).Msg("weights loaded")
	return w
}

// weightsPath places relative file names beside the executable.
func weightsPath(name string) string {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "~/") || strings.HasPrefix(name, "./") {
		return eval.MapPath(name)
	}
	return eval.MapPath("./" + name)
}

// Eval returns the static evaluation of the current position for the side
// to move, and its game phase.
func (s *Session) Eval() (score, phase int) {
	var e = eval.NewEvaluation(s.Weights())
	e.Init(&s.board.Position)
	return e.Compute(&s.board.Position), e.Phase()
}

// PerftReport is the outcome of Session.Perft.
type PerftReport struct {
	Depth   int
	Nodes   int64
	Divide  []common.PerftDivide
	Details *common.PerftDetails
	Elapsed time.Duration
}

// Perft counts the leaf nodes depth plies below the current position.
func (s *Session) Perft(depth int, divide, details bool) PerftReport {
	s.Stop()
	var start = time.Now()
	var p = s.board.Position
	var report = PerftReport{Depth: depth}
	switch {
	case details:
		var d = common.PerftWithDetails(&p, depth)
		report.Details = &d
		report.Nodes = d.Nodes
		if divide {
			report.Divide = common.Divide(&p, depth)
		}
	case divide:
		report.Divide = common.Divide(&p, depth)
		for _, d := range report.Divide {
			report.Nodes += d.Nodes
		}
	default:
		report.Nodes = common.Perft(&p, depth)
	}
	report.Elapsed = time.Since(start)
	s.log.Debug().Int("depth", depth).Int64("nodes", report.Nodes).Dur("elapsed", report.Elapsed).Msg("perft")
	return report
}
