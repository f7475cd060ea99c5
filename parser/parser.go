// Package parser turns the PlayOnBSD games database into game records.
//
// The database is a sequence of "Tag<TAB>value" (or bare "Tag") lines and
// every record lists its fields in a fixed order. The parser is a state
// machine with one state per field: a line whose tag is not the one the
// current state expects is a parsing error, reported by line number.
//
// Two policies are available. In strict mode the parsing stops at the first
// error. In relaxed mode the parser skips lines up to the next Game line and
// starts over from there, so a damaged record costs that record only.
package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"pobsd/game"
)

// ErrNotAFile is returned when the database path does not name a regular file.
var ErrNotAFile = errors.New("not a file")

// State is the state of the parser. The per-field states follow the
// ordering of game.Field.
type State int

const (
	StateGame State = iota
	StateCover
	StateEngine
	StateSetup
	StateRuntime
	StateStore
	StateHints
	StateGenre
	StateTags
	StateYear
	StateDev
	StatePub
	StateVersion
	StateStatus
	StateAdded
	StateUpdated
	StateIgdbID
	StateError
	StateRecovering
)

func stateFor(f game.Field) State { return State(f) }

func (s State) String() string {
	switch s {
	case StateError:
		return "Error"
	case StateRecovering:
		return "Recovering"
	default:
		return game.Field(s).Tag()
	}
}

// Mode selects how the parser reacts to errors.
type Mode int

const (
	// ModeRelaxed resumes at the next Game line after an error.
	ModeRelaxed Mode = iota
	// ModeStrict stops at the first error.
	ModeStrict
)

func (m Mode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "relaxed"
}

// ParseMode maps a configuration value to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "relaxed", "":
		return ModeRelaxed, nil
	case "strict":
		return ModeStrict, nil
	default:
		return ModeRelaxed, fmt.Errorf("unknown parsing mode %q", name)
	}
}

// BlankLines selects how lines holding nothing but white space are handled.
type BlankLines int

const (
	// BlankLinesError treats a blank line as a malformed tag.
	BlankLinesError BlankLines = iota
	// BlankLinesSkip ignores blank lines altogether.
	BlankLinesSkip
)

// ParseBlankLines maps a configuration value to a BlankLines policy.
func ParseBlankLines(name string) (BlankLines, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error", "":
		return BlankLinesError, nil
	case "skip":
		return BlankLinesSkip, nil
	default:
		return BlankLinesError, fmt.Errorf("unknown blank line policy %q", name)
	}
}

// Options configures a Parser. The zero value is a relaxed parser for the
// IGDB dialect that treats blank lines as errors.
type Options struct {
	Mode       Mode
	Dialect    Dialect
	BlankLines BlankLines
	// KeepPartial keeps the record that was being read when an error
	// occurred instead of dropping it.
	KeepPartial bool
	Logger      *zap.SugaredLogger
}

// Parser reads a database. A Parser can be reused, each load starts afresh.
type Parser struct {
	opts Options
	log  *zap.SugaredLogger

	state      State
	pos        int // index of the expected field in the dialect cycle
	current    *game.Game
	games      []*game.Game
	line       int
	errorLines []int
	skipped    []int
}

// New creates a parser with the given options.
func New(opts Options) *Parser {
	if opts.Dialect.isZero() {
		opts.Dialect = DialectIGDB
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Parser{opts: opts, log: log}
}

// Default creates a relaxed parser for the IGDB dialect.
func Default() *Parser {
	return New(Options{})
}

// State returns the state the parser was left in by the last load.
func (p *Parser) State() State { return p.state }

// LoadFromFile parses the database stored at path. I/O failures are
// returned as errors and never show up as parsing errors.
func (p *Parser) LoadFromFile(path string) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open database: %w", err)
	}
	if !info.Mode().IsRegular() {
		return Result{}, fmt.Errorf("%s: %w", path, ErrNotAFile)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read database: %w", err)
	}
	p.log.Debugw("Loading database", "path", path, "bytes", len(data))
	return p.LoadFromString(string(data)), nil
}

// LoadFromReader parses the whole content of r.
func (p *Parser) LoadFromReader(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read database: %w", err)
	}
	return p.LoadFromString(string(data)), nil
}

// LoadFromString parses data.
func (p *Parser) LoadFromString(data string) Result {
	p.reset()
	for _, line := range splitLines(data) {
		p.line++
		p.parseLine(line)
		if p.state == StateError {
			break
		}
	}
	if p.state != StateError {
		p.finish()
	}

	game.AssignUIDs(p.games)

	res := Result{Games: p.games, ErrorLines: p.errorLines, Skipped: p.skipped}
	p.log.Infow("Database parsed",
		"mode", p.opts.Mode.String(),
		"dialect", p.opts.Dialect.Name(),
		"games", len(res.Games),
		"errors", len(res.ErrorLines),
	)
	return res
}

func (p *Parser) reset() {
	p.state = StateGame
	p.pos = 0
	p.current = nil
	p.games = nil
	p.line = 0
	p.errorLines = nil
	p.skipped = nil
}

func splitLines(data string) []string {
	if data == "" {
		return nil
	}
	lines := strings.Split(data, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (p *Parser) parseLine(line string) {
	line = strings.TrimSuffix(line, "\r")
	if p.opts.BlankLines == BlankLinesSkip && strings.TrimSpace(line) == "" {
		return
	}
	tag, value, _ := strings.Cut(line, "\t")
	isGame := tag == game.FieldGame.Tag() && value != ""

	if p.state == StateRecovering {
		if isGame {
			p.open(value)
			return
		}
		p.skipped = append(p.skipped, p.line)
		return
	}

	expected := p.opts.Dialect.fields[p.pos]
	switch {
	case expected == game.FieldGame && isGame:
		p.open(value)
	case expected != game.FieldGame && tag == expected.Tag():
		p.current.Set(expected, value)
		p.advance()
	case isGame && p.opts.Dialect.optional(p.pos):
		p.close()
		p.open(value)
	default:
		if p.current != nil && p.opts.Dialect.optional(p.pos) {
			p.close()
		}
		p.fail(p.line, expected, tag)
		if p.state != StateError && isGame {
			p.open(value)
		}
	}
}

func (p *Parser) open(name string) {
	p.current = &game.Game{Name: name}
	p.pos = 0
	p.advance()
}

func (p *Parser) advance() {
	p.pos++
	if p.pos == len(p.opts.Dialect.fields) {
		p.close()
		return
	}
	p.state = stateFor(p.opts.Dialect.fields[p.pos])
}

func (p *Parser) close() {
	p.games = append(p.games, p.current)
	p.current = nil
	p.pos = 0
	p.state = StateGame
}

// fail records a structural error at line and moves to the Error state in
// strict mode, to the Recovering state otherwise.
func (p *Parser) fail(line int, expected game.Field, found string) {
	p.errorLines = append(p.errorLines, line)
	p.log.Debugw("Unexpected tag",
		"line", line,
		"expected", expected.Tag(),
		"found", found,
	)

	if p.current != nil && p.opts.KeepPartial {
		p.games = append(p.games, p.current)
	}
	p.current = nil
	p.pos = 0

	if p.opts.Mode == ModeStrict {
		p.state = StateError
		return
	}
	p.state = StateRecovering
}

// finish deals with the record left open at the end of the input.
func (p *Parser) finish() {
	if p.current == nil {
		return
	}
	if p.opts.Dialect.optional(p.pos) {
		p.close()
		return
	}
	p.fail(p.line+1, p.opts.Dialect.fields[p.pos], "")
}
