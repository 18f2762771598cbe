package screening

import (
	"regexp"
	"strings"

	"github.com/Mihailob5017/codegames/internal/domain"
)

// loopNesting estimates the deepest loop nesting in source. It is a lexical
// heuristic: comprehensions, recursion and loops hidden in strings are not counted.
func loopNesting(source string, language domain.Language) int {
	switch language {
	case domain.LanguagePython:
		return pythonLoopNesting(source)
	case domain.LanguageJavaScript:
		return javascriptLoopNesting(source)
	default:
		return 0
	}
}

var pythonLoopHeader = regexp.MustCompile(`^(?:async\s+)?(?:for|while)\b`)

func pythonLoopNesting(source string) int {
	var (
		open []int // indentation of the loops enclosing the current line
		max  int
	)
	for _, line := range strings.Split(source, "\n") {
		body := strings.TrimLeft(line, " \t")
		if body == "" || strings.HasPrefix(body, "#") {
			continue
		}
		indent := indentWidth(line[:len(line)-len(body)])
		for len(open) > 0 && open[len(open)-1] >= indent {
			open = open[:len(open)-1]
		}
		if pythonLoopHeader.MatchString(body) {
			open = append(open, indent)
			if len(open) > max {
				max = len(open)
			}
		}
	}
	return max
}

// indentWidth follows the interpreter: a tab advances to the next multiple of 8
func indentWidth(prefix string) int {
	width := 0
	for _, c := range prefix {
		if c == '\t' {
			width += 8 - width%8
			continue
		}
		width++
	}
	return width
}

type jsScanner struct {
	src string
	pos int

	level     int  // loops enclosing the current position
	max       int  // deepest level seen
	parens    int  // open parentheses
	header    int  // paren depth where a for/while header started, -1 outside headers
	pending   bool // a loop header closed and its braced body is next
	chainBase int  // level before the current chain of braceless loop bodies, -1 when none
	frames    []int
}

func javascriptLoopNesting(source string) int {
	s := &jsScanner{src: source, header: -1, chainBase: -1}
	s.scan()
	return s.max
}

func (s *jsScanner) scan() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '/' && s.peek(1) == '/':
			s.skipUntil("\n")
		case c == '/' && s.peek(1) == '*':
			s.pos += 2
			s.skipUntil("*/")
		case c == '"' || c == '\'' || c == '`':
			s.skipString(c)
		case isIdentStart(c):
			s.word()
		case c == '(':
			s.parens++
			s.pos++
		case c == ')':
			s.parens--
			s.pos++
			if s.header >= 0 && s.parens == s.header {
				s.header = -1
				s.loopHeaderClosed()
			}
		case c == '{':
			s.openBrace()
			s.pos++
		case c == '}':
			s.closeBrace()
			s.pos++
		case c == ';' && s.parens == 0:
			s.endStatement()
			s.pos++
		default:
			s.pos++
		}
	}
}

func (s *jsScanner) word() {
	start := s.pos
	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.pos++
	}
	switch s.src[start:s.pos] {
	case "for", "while":
		if s.header < 0 {
			s.header = s.parens
		}
	case "do":
		if s.nextNonSpace() == '{' {
			s.pending = true
		} else {
			s.enterBracelessLoop()
		}
	}
}

func (s *jsScanner) loopHeaderClosed() {
	switch s.nextNonSpace() {
	case ';':
		// tail of a do-while, or a loop with an empty body
	case '{':
		s.pending = true
	default:
		s.enterBracelessLoop()
	}
}

func (s *jsScanner) enterBracelessLoop() {
	if s.chainBase < 0 {
		s.chainBase = s.level
	}
	s.enter()
}

func (s *jsScanner) enter() {
	s.level++
	if s.level > s.max {
		s.max = s.level
	}
}

func (s *jsScanner) openBrace() {
	restore := s.level
	if s.chainBase >= 0 {
		restore = s.chainBase
	}
	s.frames = append(s.frames, restore)
	s.chainBase = -1
	if s.pending {
		s.pending = false
		s.enter()
	}
}

func (s *jsScanner) closeBrace() {
	if len(s.frames) == 0 {
		return
	}
	s.level = s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	s.chainBase = -1
}

func (s *jsScanner) endStatement() {
	if s.chainBase >= 0 {
		s.level = s.chainBase
		s.chainBase = -1
	}
}

func (s *jsScanner) peek(offset int) byte {
	if s.pos+offset < len(s.src) {
		return s.src[s.pos+offset]
	}
	return 0
}

func (s *jsScanner) nextNonSpace() byte {
	for i := s.pos; i < len(s.src); i++ {
		switch s.src[i] {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return s.src[i]
		}
	}
	return 0
}

func (s *jsScanner) skipUntil(terminator string) {
	idx := strings.Index(s.src[s.pos:], terminator)
	if idx < 0 {
		s.pos = len(s.src)
		return
	}
	s.pos += idx + len(terminator)
}

func (s *jsScanner) skipString(quote byte) {
	s.pos++
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '\\' {
			s.pos += 2
			continue
		}
		s.pos++
		if c == quote || (c == '\n' && quote != '`') {
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
