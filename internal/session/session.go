// Package session runs the interactive question/answer loop.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jeanpaul/helpdesk/internal/catalog"
	"github.com/jeanpaul/helpdesk/internal/knowledge"
	"github.com/jeanpaul/helpdesk/internal/matcher"
	"github.com/jeanpaul/helpdesk/internal/tui"
)

// State of the session loop.
type State int

const (
	StateAwaitingInput State = iota
	StateExited
)

func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting_input"
	case StateExited:
		return "exited"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

const (
	quitCommand = "quit"
	skipCommand = "skip"

	learnPrompt = `Type the answer or "skip" to skip: `
)

// Session owns the knowledge base for its lifetime and talks to one user
// over a line-oriented reader and writer.
type Session struct {
	base    *knowledge.Base
	kbPath  string
	catalog *catalog.Catalog

	in     *bufio.Reader
	out    io.Writer
	prompt string

	lines     chan inputLine
	startRead sync.Once
	stop      chan struct{}
	stopOnce  sync.Once

	transcript *Transcript
	state      State
}

type Option func(*Session)

type inputLine struct {
	text string
	err  error
}

// WithPrompt sets the text shown before each user input.
func WithPrompt(p string) Option {
	return func(s *Session) { s.prompt = p }
}

// WithTranscript records the conversation into t.
func WithTranscript(t *Transcript) Option {
	return func(s *Session) { s.transcript = t }
}

// New creates a session. Learned answers are appended to base and written to
// kbPath.
func New(base *knowledge.Base, kbPath string, cat *catalog.Catalog, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		base:    base,
		kbPath:  kbPath,
		catalog: cat,
		in:      bufio.NewReader(in),
		out:     out,
		prompt:  "You: ",
		lines:   make(chan inputLine),
		stop:    make(chan struct{}),
		state:   StateAwaitingInput,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State reports where the loop is.
func (s *Session) State() State {
	return s.state
}

// Run reads and handles input until the user types quit, input ends or ctx
// is cancelled. Cancellation interrupts a pending read, and a line that
// arrives after it is not handled. A failure to persist a learned answer or
// a catalog section missing for a menu option ends the session with that
// error.
func (s *Session) Run(ctx context.Context) error {
	defer s.stopOnce.Do(func() { close(s.stop) })

	for s.state != StateExited {
		if err := ctx.Err(); err != nil {
			return err
		}

		input, err := s.readLine(ctx, s.prompt)
		if errors.Is(err, io.EOF) {
			s.state = StateExited
			break
		}
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.Handle(ctx, input); err != nil {
			return err
		}
	}
	return nil
}

// Handle processes one user utterance.
func (s *Session) Handle(ctx context.Context, input string) error {
	if strings.ToLower(input) == quitCommand {
		s.state = StateExited
		return nil
	}

	if match, ok := matcher.BestMatch(input, s.base.Questions()); ok {
		answer, _ := s.base.FindAnswer(match)
		s.bot(answer)
		return nil
	}

	if code := strings.ToLower(input); IsMenuCode(code) {
		return s.renderMenu(ctx, code)
	}

	return s.learn(ctx, input)
}

func (s *Session) learn(ctx context.Context, question string) error {
	s.bot("I don't know the answer. Can you teach me?")
	reply, err := s.readLine(ctx, learnPrompt)
	if errors.Is(err, io.EOF) {
		s.state = StateExited
		return nil
	}
	if err != nil {
		return err
	}

	if strings.ToLower(reply) == skipCommand {
		return nil
	}

	if err := s.base.Learn(s.kbPath, question, reply); err != nil {
		return fmt.Errorf("learn answer: %w", err)
	}
	s.bot("Thank you! I learned a new response!")
	return nil
}

// readLine prints prompt and waits for the next line or for ctx to end.
func (s *Session) readLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(s.out, tui.UserLabelStyle.Render(prompt))
	s.startRead.Do(func() { go s.readInput() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", fmt.Errorf("read input: %w", l.err)
		}
		s.record(RoleUser, l.text)
		return l.text, nil
	}
}

// readInput feeds s.lines until the input ends or the session stops. Lines
// have no length limit.
func (s *Session) readInput() {
	defer close(s.lines)
	for {
		text, err := s.in.ReadString('\n')
		if err == nil || (errors.Is(err, io.EOF) && text != "") {
			text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
			if !s.send(inputLine{text: text}) {
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.send(inputLine{err: err})
			}
			return
		}
	}
}

func (s *Session) send(l inputLine) bool {
	select {
	case s.lines <- l:
		return true
	case <-s.stop:
		return false
	}
}

// bot prints a "Bot:" line.
func (s *Session) bot(text string) {
	fmt.Fprintf(s.out, "%s %s\n", tui.BotLabelStyle.Render("Bot:"), text)
	s.record(RoleBot, text)
}

// say prints static catalog text.
func (s *Session) say(text string) {
	fmt.Fprintln(s.out, text)
	s.record(RoleBot, text)
}

func (s *Session) record(role Role, text string) {
	if s.transcript != nil {
		s.transcript.Record(role, text)
	}
}

// Ask answers query from base without learning: it returns the stored answer
// and the matched question.
func Ask(base *knowledge.Base, query string) (answer, question string, ok bool) {
	question, ok = matcher.BestMatch(query, base.Questions())
	if !ok {
		return "", "", false
	}
	answer, ok = base.FindAnswer(question)
	return answer, question, ok
}
