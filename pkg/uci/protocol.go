package uci

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/corvidchess/corvid/pkg/common"
	"github.com/corvidchess/corvid/pkg/session"
)

const defaultBenchDepth = 10

// Output serializes everything written to the GUI. It is the search reporter.
type Output struct {
	mu sync.Mutex
	w  io.Writer
}

func NewOutput(w io.Writer) *Output {
	return &Output{w: w}
}

func (o *Output) Println(a ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintln(o.w, a...)
}

func (o *Output) Printf(format string, a ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.w, format, a...)
}

func (o *Output) Info(si common.SearchInfo) {
	o.Println(searchInfoToUci(si))
}

func (o *Output) BestMove(best, ponder common.Move) {
	if ponder != common.MoveEmpty {
		o.Printf("bestmove %v ponder %v\n", moveToUci(best), moveToUci(ponder))
	} else {
		o.Printf("bestmove %v\n", moveToUci(best))
	}
}

func moveToUci(m common.Move) string {
	if m == common.MoveEmpty {
		return "0000"
	}
	return m.String()
}

type Protocol struct {
	name     string
	author   string
	version  string
	options  []Option
	session  *session.Session
	out      *Output
	commands map[string]func(args []string) error
}

func New(name, author, version string, s *session.Session, out *Output, options []Option) *Protocol {
	var uci = &Protocol{
		name:    name,
		author:  author,
		version: version,
		session: s,
		out:     out,
		options: options,
	}
	uci.commands = map[string]func(args []string) error{
		"uci":        uci.uciCommand,
		"setoption":  uci.setOptionCommand,
		"isready":    uci.isReadyCommand,
		"position":   uci.positionCommand,
		"go":         uci.goCommand,
		"ucinewgame": uci.uciNewGameCommand,
		"stop":       uci.stopCommand,
		"ponderhit":  uci.ponderhitCommand,
		"quit":       uci.quitCommand,
		"debug":      uci.debugCommand,
		"wait":       uci.waitCommand,
		"bench":      uci.benchCommand,
		"perft":      uci.perftCommand,
		"d":          uci.displayCommand,
		"eval":       uci.evalCommand,
	}
	return uci
}

// Handle runs one command line. Blank lines are ignored.
func (uci *Protocol) Handle(ctx context.Context, commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var command, ok = uci.commands[fields[0]]
	if !ok {
		return fmt.Errorf("command not found: %v", fields[0])
	}
	return command(fields[1:])
}

func (uci *Protocol) uciCommand(fields []string) error {
	uci.out.Printf("id name %s %s\n", uci.name, uci.version)
	uci.out.Printf("id author %s\n", uci.author)
	for _, option := range uci.options {
		uci.out.Println(option.UciString())
	}
	uci.out.Println("uciok")
	return nil
}

// setoption name <name> [value <value>], names and values may contain spaces.
func (uci *Protocol) setOptionCommand(fields []string) error {
	if len(fields) < 2 || fields[0] != "name" {
		return errors.New("invalid setoption arguments")
	}
	var valueIndex = findIndexString(fields, "value")
	var name, value string
	if valueIndex == -1 {
		name = strings.Join(fields[1:], " ")
	} else {
		name = strings.Join(fields[1:valueIndex], " ")
		value = strings.Join(fields[valueIndex+1:], " ")
	}
	for _, option := range uci.options {
		if strings.EqualFold(option.UciName(), name) {
			if err := option.Set(value); err != nil {
				return fmt.Errorf("option %v: %w", name, err)
			}
			uci.session.Logger().Debug().Str("option", name).Str("value", value).Msg("option set")
			return nil
		}
	}
	return fmt.Errorf("unhandled option: %v", name)
}

func (uci *Protocol) isReadyCommand(fields []string) error {
	uci.session.Weights()
	uci.out.Println("readyok")
	return nil
}

func (uci *Protocol) positionCommand(fields []string) error {
	if len(fields) == 0 {
		return errors.New("unknown position command")
	}
	var args = fields
	var token = args[0]
	var fen string
	var movesIndex = findIndexString(args, "moves")
	if token == "startpos" {
		fen = common.InitialPositionFen
	} else if token == "fen" {
		if movesIndex == -1 {
			fen = strings.Join(args[1:], " ")
		} else {
			fen = strings.Join(args[1:movesIndex], " ")
		}
	} else {
		return errors.New("unknown position command")
	}
	if !uci.session.SetupPosition(fen) {
		return fmt.Errorf("invalid position: %v", fen)
	}
	if movesIndex >= 0 && movesIndex+1 < len(args) {
		return uci.session.MakeMoves(args[movesIndex+1:])
	}
	return nil
}

func (uci *Protocol) goCommand(fields []string) error {
	var limits = parseLimits(fields)
	var s = uci.session
	s.SetInfinite(limits.Infinite)

	var depth = limits.Depth
	if depth == 0 && limits.Mate > 0 {
		depth = 2*limits.Mate - 1
	}

	if limits.WhiteTime > 0 || limits.BlackTime > 0 {
		var main, opponent, inc = limits.WhiteTime, limits.BlackTime, limits.WhiteIncrement
		if s.Color() == common.SideBlack {
			main, opponent, inc = limits.BlackTime, limits.WhiteTime, limits.BlackIncrement
		}
		s.GoClock(main, opponent, inc, limits.MovesToGo, depth, limits.Nodes, limits.Ponder)
		return nil
	}
	s.Go(depth, limits.MoveTime, limits.Nodes, limits.Ponder)
	return nil
}

func (uci *Protocol) uciNewGameCommand(fields []string) error {
	uci.session.SetupNewGame()
	return nil
}

func (uci *Protocol) stopCommand(fields []string) error {
	uci.session.Stop()
	return nil
}

func (uci *Protocol) ponderhitCommand(fields []string) error {
	uci.session.PonderHit()
	return nil
}

func (uci *Protocol) quitCommand(fields []string) error {
	uci.session.Quit()
	return ErrQuit
}

func (uci *Protocol) debugCommand(fields []string) error {
	if len(fields) == 0 {
		return errors.New("debug expects on or off")
	}
	switch fields[0] {
	case "on":
		uci.session.SetDebug(true)
	case "off":
		uci.session.SetDebug(false)
	default:
		return fmt.Errorf("debug expects on or off, got %v", fields[0])
	}
	return nil
}

func (uci *Protocol) waitCommand(fields []string) error {
	uci.session.Wait()
	return nil
}

func (uci *Protocol) benchCommand(fields []string) error {
	var depth = defaultBenchDepth
	if len(fields) > 0 {
		var err error
		if depth, err = strconv.Atoi(fields[0]); err != nil || depth <= 0 {
			return fmt.Errorf("invalid bench depth: %v", fields[0])
		}
	}
	var result = uci.session.Bench(depth)
	uci.out.Println(result.String())
	return nil
}

// perft <depth> [divide] [details]
func (uci *Protocol) perftCommand(fields []string) error {
	if len(fields) == 0 {
		return errors.New("perft expects a depth")
	}
	var depth, err = strconv.Atoi(fields[0])
	if err != nil || depth < 0 {
		return fmt.Errorf("invalid perft depth: %v", fields[0])
	}
	var divide = findIndexString(fields, "divide") >= 0
	var details = findIndexString(fields, "details") >= 0
	var report = uci.session.Perft(depth, divide, details)
	for _, item := range report.Divide {
		uci.out.Printf("%v: %v\n", item.Move, item.Nodes)
	}
	if d := report.Details; d != nil {
		uci.out.Printf("captures %v enpassants %v castles %v promotions %v checks %v checkmates %v\n",
			d.Captures, d.EnPassants, d.Castles, d.Promotions, d.Checks, d.Checkmates)
	}
	var ms = report.Elapsed.Milliseconds()
	uci.out.Printf("nodes %v time %v nps %v\n", report.Nodes, ms, report.Nodes*1000/(ms+1))
	return nil
}

func (uci *Protocol) displayCommand(fields []string) error {
	var p = uci.session.Position()
	uci.out.Println(p.String())
	return nil
}

func (uci *Protocol) evalCommand(fields []string) error {
	var score, phase = uci.session.Eval()
	uci.out.Printf("eval cp %v phase %v\n", score, phase)
	return nil
}

func searchInfoToUci(si common.SearchInfo) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v seldepth %v", si.Depth, si.SelDepth)
	if si.Score.Mate != 0 {
		fmt.Fprintf(sb, " score mate %v", si.Score.Mate)
	} else {
		fmt.Fprintf(sb, " score cp %v", si.Score.Centipawns)
	}
	var nps = si.Nodes * 1000 / (si.Time + 1)
	fmt.Fprintf(sb, " nodes %v time %v nps %v", si.Nodes, si.Time, nps)
	if si.HashFull > 0 {
		fmt.Fprintf(sb, " hashfull %v", si.HashFull)
	}
	if si.TbHits > 0 {
		fmt.Fprintf(sb, " tbhits %v", si.TbHits)
	}
	if len(si.MainLine) != 0 {
		fmt.Fprintf(sb, " pv")
		for _, move := range si.MainLine {
			sb.WriteString(" ")
			sb.WriteString(move.String())
		}
	}
	return sb.String()
}

type limitsType struct {
	Ponder         bool
	Infinite       bool
	WhiteTime      int
	BlackTime      int
	WhiteIncrement int
	BlackIncrement int
	MoveTime       int
	MovesToGo      int
	Depth          int
	Nodes          int64
	Mate           int
}

func parseLimits(args []string) (result limitsType) {
	var next = func(i int) int {
		if i+1 >= len(args) {
			return 0
		}
		var v, _ = strconv.Atoi(args[i+1])
		return v
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "ponder":
			result.Ponder = true
		case "wtime":
			result.WhiteTime = next(i)
			i++
		case "btime":
			result.BlackTime = next(i)
			i++
		case "winc":
			result.WhiteIncrement = next(i)
			i++
		case "binc":
			result.BlackIncrement = next(i)
			i++
		case "movestogo":
			result.MovesToGo = next(i)
			i++
		case "depth":
			result.Depth = next(i)
			i++
		case "nodes":
			result.Nodes = int64(next(i))
			i++
		case "mate":
			result.Mate = next(i)
			i++
		case "movetime":
			result.MoveTime = next(i)
			i++
		case "infinite":
			result.Infinite = true
		}
	}
	return
}

func findIndexString(slice []string, value string) int {
	for p, v := range slice {
		if v == value {
			return p
		}
	}
	return -1
}
