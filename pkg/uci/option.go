package uci

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/corvidchess/corvid/pkg/session"
)

type Option interface {
	UciName() string
	UciString() string
	Set(s string) error
}

type BoolOption struct {
	Name     string
	Value    *bool
	OnChange func()
}

func (opt *BoolOption) UciName() string {
	return opt.Name
}

func (opt *BoolOption) UciString() string {
	return fmt.Sprintf("option name %v type %v default %v",
		opt.Name, "check", *opt.Value)
}

func (opt *BoolOption) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*opt.Value = v
	if opt.OnChange != nil {
		opt.OnChange()
	}
	return nil
}

type IntOption struct {
	Name     string
	Min      int
	Max      int
	Value    *int
	OnChange func()
}

func (opt *IntOption) UciName() string {
	return opt.Name
}

func (opt *IntOption) UciString() string {
	return fmt.Sprintf("option name %v type %v default %v min %v max %v",
		opt.Name, "spin", *opt.Value, opt.Min, opt.Max)
}

func (opt *IntOption) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v < opt.Min || v > opt.Max {
		return errors.New("argument out of range")
	}
	*opt.Value = v
	if opt.OnChange != nil {
		opt.OnChange()
	}
	return nil
}

type StringOption struct {
	Name     string
	Value    *string
	OnChange func()
}

func (opt *StringOption) UciName() string {
	return opt.Name
}

func (opt *StringOption) UciString() string {
	var value = *opt.Value
	if value == "" {
		value = "<empty>"
	}
	return fmt.Sprintf("option name %v type %v default %v",
		opt.Name, "string", value)
}

func (opt *StringOption) Set(s string) error {
	if s == "<empty>" {
		s = ""
	}
	*opt.Value = s
	if opt.OnChange != nil {
		opt.OnChange()
	}
	return nil
}

// ButtonOption runs an action; it has no value.
type ButtonOption struct {
	Name    string
	OnPress func()
}

func (opt *ButtonOption) UciName() string {
	return opt.Name
}

func (opt *ButtonOption) UciString() string {
	return fmt.Sprintf("option name %v type %v", opt.Name, "button")
}

func (opt *ButtonOption) Set(string) error {
	opt.OnPress()
	return nil
}

// NewOptions binds the UCI options to the settings of s.
func NewOptions(s *session.Session) []Option {
	var o = s.Options()
	return []Option{
		&IntOption{Name: "Hash", Min: session.MinHash, Max: session.MaxHash, Value: &o.Hash,
			OnChange: s.ResizeHashTable},
		&IntOption{Name: "Threads", Min: 1, Max: engine.MaxThreads, Value: &o.Threads,
			OnChange: func() { s.SetThreads(o.Threads) }},
		&BoolOption{Name: "Ponder", Value: &o.Ponder},
		&BoolOption{Name: "OwnBook", Value: &o.OwnBook},
		&BoolOption{Name: "UCI_AnalyseMode", Value: &o.AnalyseMode},
		&StringOption{Name: "SyzygyPath", Value: &o.SyzygyPath,
			OnChange: func() { s.SetSyzygyPath(o.SyzygyPath) }},
		&BoolOption{Name: "SyzygyProbeRoot", Value: &o.SyzygyProbeRoot},
		&IntOption{Name: "Move Overhead", Min: 0, Max: 5000, Value: &o.MoveOverhead,
			OnChange: func() { s.SetMoveOverhead(o.MoveOverhead) }},
		&StringOption{Name: "EvalFile", Value: &o.EvalFile,
			OnChange: func() { s.SetEvalFile(o.EvalFile) }},
		&ButtonOption{Name: "Clear Hash", OnPress: s.ClearHashTable},
	}
}
