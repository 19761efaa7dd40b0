package link

import (
	"context"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/uribuilder/internal/util"
)

type parseState uint8

const (
	stateStart parseState = iota
	stateLinked
)

func (s parseState) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateLinked:
		return "linked"
	default:
		return "parseState(" + strconv.Itoa(int(s)) + ")"
	}
}

type parseTrigger uint8

const (
	triggerURI parseTrigger = iota
	triggerParam
	triggerSep
	triggerNext
)

func (t parseTrigger) String() string {
	switch t {
	case triggerURI:
		return "uri"
	case triggerParam:
		return "param"
	case triggerSep:
		return "separator"
	case triggerNext:
		return "next link"
	default:
		return "parseTrigger(" + strconv.Itoa(int(t)) + ")"
	}
}

// Parse parses a single Link header field value such as
//
//	<http://example.com/a>; rel="next"; title=Next
//
// Repeated "rel" parameters are joined with a space, for other parameters
// the last value wins.
func Parse(s string) (*Link, error) {
	return errtrace.Wrap2(newParser(s).run())
}

// ParseList parses a comma separated list of link values.
// Empty list elements are skipped.
func ParseList(s string) ([]*Link, error) {
	var links []*Link
	for _, part := range splitList(s) {
		if util.TrimSP(part) == "" {
			continue
		}
		l, err := Parse(part)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		links = append(links, l)
	}
	return links, nil
}

type parser struct {
	in     string
	pos    int
	href   string
	params Params
	fsm    *stateless.StateMachine
}

func newParser(in string) *parser {
	p := &parser{in: in, params: make(Params)}

	fsm := stateless.NewStateMachine(stateStart)
	fsm.Configure(stateStart).
		Permit(triggerURI, stateLinked).
		InternalTransition(triggerSep, p.skip)
	fsm.Configure(stateLinked).
		OnEntryFrom(triggerURI, p.readURI).
		InternalTransition(triggerParam, p.readParam).
		InternalTransition(triggerSep, p.skip)
	fsm.OnUnhandledTrigger(p.unhandled)

	p.fsm = fsm
	return p
}

// short returns the input cut for error messages.
func (p *parser) short() string { return util.Ellipsis(p.in, 64) }

func (p *parser) run() (*Link, error) {
	for p.pos < len(p.in) {
		if err := p.fsm.Fire(p.trigger()); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	if st, _ := p.fsm.State(context.Background()); st != stateLinked {
		return nil, errtrace.Wrap(newMalformedErr("no link in %q", p.short()))
	}
	if len(p.params) == 0 {
		p.params = nil
	}
	return &Link{uri: p.href, params: p.params}, nil
}

func (p *parser) trigger() parseTrigger {
	switch p.in[p.pos] {
	case '<':
		return triggerURI
	case ';', ' ', '\t':
		return triggerSep
	case ',':
		return triggerNext
	default:
		return triggerParam
	}
}

func (p *parser) unhandled(_ context.Context, state stateless.State, trigger stateless.Trigger, _ []string) error {
	switch {
	case state == stateLinked && trigger == triggerURI:
		return newMalformedErr("second link at %d in %q", p.pos, p.short()) //errtrace:skip
	case state == stateStart && trigger == triggerParam:
		return newMalformedErr("parameter before link at %d in %q", p.pos, p.short()) //errtrace:skip
	case trigger == triggerNext:
		return newMalformedErr("multiple link values in %q", p.short()) //errtrace:skip
	default:
		return newMalformedErr("unexpected %v in state %v at %d in %q", trigger, state, p.pos, p.short()) //errtrace:skip
	}
}

func (p *parser) skip(context.Context, ...any) error {
	p.pos++
	return nil
}

func (p *parser) readURI(context.Context, ...any) error {
	end := strings.IndexByte(p.in[p.pos:], '>')
	if end < 0 {
		return errtrace.Wrap(newMalformedErr("no closing '>' in %q", p.short()))
	}
	p.href = util.TrimSP(p.in[p.pos+1 : p.pos+end])
	p.pos += end + 1
	return nil
}

func (p *parser) readParam(context.Context, ...any) error {
	rest := p.in[p.pos:]
	eq := strings.IndexAny(rest, "=;,")
	if eq < 0 || rest[eq] != '=' {
		return errtrace.Wrap(newMalformedErr("parameter without '=' at %d in %q", p.pos, p.short()))
	}
	name := util.TrimSP(rest[:eq])
	if name == "" {
		return errtrace.Wrap(newMalformedErr("parameter without name at %d in %q", p.pos, p.short()))
	}

	p.pos += eq + 1
	for p.pos < len(p.in) && (p.in[p.pos] == ' ' || p.in[p.pos] == '\t') {
		p.pos++
	}
	if p.pos == len(p.in) {
		return errtrace.Wrap(newMalformedErr("parameter %q without value in %q", name, p.short()))
	}

	var val string
	if p.in[p.pos] == '"' {
		v, err := p.readQuoted()
		if err != nil {
			return errtrace.Wrap(err)
		}
		val = v
	} else {
		end := strings.IndexAny(p.in[p.pos:], ";,")
		if end < 0 {
			end = len(p.in) - p.pos
		}
		val = util.TrimSP(p.in[p.pos : p.pos+end])
		p.pos += end
	}
	p.params.Add(name, val)
	return nil
}

// readQuoted reads a quoted string starting at the opening quote.
func (p *parser) readQuoted() (string, error) {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	for i := p.pos + 1; i < len(p.in); i++ {
		switch c := p.in[i]; c {
		case '\\':
			if i+1 < len(p.in) {
				i++
				sb.WriteByte(p.in[i])
			}
		case '"':
			p.pos = i + 1
			return sb.String(), nil
		default:
			sb.WriteByte(c)
		}
	}
	return "", errtrace.Wrap(newMalformedErr("unterminated quoted value at %d in %q", p.pos, p.short()))
}

// splitList splits s on commas outside of "<...>" and quoted strings.
func splitList(s string) []string {
	var (
		parts               []string
		inURI, inQuote, esc bool
		start               int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case esc:
			esc = false
		case inQuote:
			switch c {
			case '\\':
				esc = true
			case '"':
				inQuote = false
			}
		case inURI:
			if c == '>' {
				inURI = false
			}
		case c == '"':
			inQuote = true
		case c == '<':
			inURI = true
		case c == ',':
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
