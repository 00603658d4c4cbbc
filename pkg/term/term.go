// Package term implements a terminal frontend that renders the display with
// half block characters and reads the keypad from raw mode standard input.
package term

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/internal/control"
	"github.com/mnafees/chopper/internal/history"
	"github.com/mnafees/chopper/internal/keypad"
	"github.com/mnafees/chopper/internal/options"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// Control bytes read from a raw mode terminal.
const (
	keyCtrlC     = 0x03
	keyBackspace = 0x08
	keyEscape    = 0x1B
	keyDelete    = 0x7F
)

// Emulator control keys, chosen outside of the keypad mapping.
const (
	keyPause = 'p'
	keyStep  = 'n'
	keyStepN = 'm'
	keyReset = 'l'
)

// Terminals report no key releases, a key counts as held until this long
// after its last press or auto repeat.
const keyHold = 150 * time.Millisecond

const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	clearLine   = "\x1b[K"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

var errQuit = errors.New("quit requested")

// eventKind is the meaning of a byte read from the terminal.
type eventKind uint8

const (
	eventKey eventKind = iota
	eventUndo
	eventPause
	eventStep
	eventStepN
	eventReset
)

type event struct {
	kind eventKind
	key  uint8
}

// Terminal runs a VM in a text terminal.
type Terminal struct {
	vm      *internal.C8VM
	control *control.Controller
	logger  *log.Logger

	in  io.Reader
	out io.Writer
	fd  int // -1 when in is not a terminal

	heldUntil  [internal.KeyCount]time.Time
	lastStatus string
}

// New returns a terminal frontend reading keys from in and drawing to out.
// All cycles are executed through hist so that they can be undone.
func New(vm *internal.C8VM, hist *history.History, logger *log.Logger, opts options.Program,
	in io.Reader, out io.Writer) *Terminal {

	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}

	return &Terminal{
		vm:      vm,
		control: control.New(vm, hist, logger, opts),
		logger:  logger,
		in:      in,
		out:     out,
		fd:      fd,
	}
}

// Run puts the terminal into raw mode and runs the emulation until Ctrl-C
// or Escape is pressed, the context is cancelled or a cycle fails.
func (t *Terminal) Run(ctx context.Context) error {
	if t.fd >= 0 {
		state, err := term.MakeRaw(t.fd)
		if err != nil {
			return fmt.Errorf("setting terminal raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(t.fd, state)
		}()
		t.checkSize()
	}

	if _, err := io.WriteString(t.out, hideCursor+clearScreen); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	defer func() {
		_, _ = io.WriteString(t.out, showCursor)
	}()

	input := make(chan byte, 64)
	go readInput(t.in, input)

	events := make(chan event)
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return translateInput(ctx, input, events)
	})
	group.Go(func() error {
		return t.loop(ctx, events)
	})

	err := group.Wait()
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (t *Terminal) checkSize() {
	width, height, err := term.GetSize(t.fd)
	if err != nil {
		t.logger.Warn("Reading terminal size failed", log.Err(err))
		return
	}
	if width < internal.ScreenWidth || height < internal.ScreenHeight/2 {
		t.logger.Warn("Terminal is smaller than the display",
			log.Int("width", width),
			log.Int("height", height))
	}
}

// readInput copies bytes from r to out until r fails. It is not tied to a
// context as a blocked terminal read can not be interrupted.
func readInput(r io.Reader, out chan<- byte) {
	defer close(out)
	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			out <- b
		}
		if err != nil {
			return
		}
	}
}

// translateInput turns raw input bytes into keypad and control events. It
// returns errQuit when the user asks to quit.
func translateInput(ctx context.Context, input <-chan byte, events chan<- event) error {
	for {
		var b byte
		select {
		case <-ctx.Done():
			return nil
		case v, ok := <-input:
			if !ok {
				return nil
			}
			b = v
		}

		var ev event
		switch b {
		case keyCtrlC, keyEscape:
			return errQuit
		case keyBackspace, keyDelete:
			ev = event{kind: eventUndo}
		case keyPause:
			ev = event{kind: eventPause}
		case keyStep:
			ev = event{kind: eventStep}
		case keyStepN:
			ev = event{kind: eventStepN}
		case keyReset:
			ev = event{kind: eventReset}
		default:
			key, ok := keypad.ForRune(rune(b))
			if !ok {
				continue
			}
			ev = event{kind: eventKey, key: key}
		}

		select {
		case <-ctx.Done():
			return nil
		case events <- ev:
		}
	}
}

func (t *Terminal) loop(ctx context.Context, events <-chan event) error {
	ticker := time.NewTicker(time.Second / internal.TimerFrequency)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if err := t.handleEvent(ev, time.Now()); err != nil {
				return err
			}
		case now := <-ticker.C:
			if err := t.frame(now); err != nil {
				return err
			}
		}
	}
}

func (t *Terminal) handleEvent(ev event, now time.Time) error {
	switch ev.kind {
	case eventKey:
		t.vm.PressKey(ev.key)
		t.heldUntil[ev.key] = now.Add(keyHold)
	case eventUndo:
		t.control.Undo()
	case eventPause:
		t.control.TogglePause()
	case eventStep:
		return t.control.Step()
	case eventStepN:
		return t.control.StepN()
	case eventReset:
		t.control.Reset()
		t.heldUntil = [internal.KeyCount]time.Time{}
	}
	return nil
}

// frame releases expired keys, executes the cycles of one frame and updates
// the screen and the status line below it.
func (t *Terminal) frame(now time.Time) error {
	for key, until := range t.heldUntil {
		if !until.IsZero() && now.After(until) {
			t.vm.ReleaseKey(uint8(key))
			t.heldUntil[key] = time.Time{}
		}
	}

	if err := t.control.Frame(); err != nil {
		return err
	}

	if t.vm.IsDrawFlagSet() {
		if _, err := io.WriteString(t.out, cursorHome+render(t.vm.Pixels())); err != nil {
			return fmt.Errorf("writing to terminal: %w", err)
		}
		t.vm.UnsetDrawFlag()
		t.lastStatus = ""
	}

	if status := t.control.Status(); status != t.lastStatus {
		line := fmt.Sprintf("\x1b[%d;1H%s%s", internal.ScreenHeight/2+1, status, clearLine)
		if _, err := io.WriteString(t.out, line); err != nil {
			return fmt.Errorf("writing to terminal: %w", err)
		}
		t.lastStatus = status
	}
	return nil
}

// render draws two display rows per text line. Lines end in CR LF since
// raw mode disables output post processing.
func render(d internal.Display) string {
	var sb strings.Builder
	for y := 0; y < internal.ScreenHeight; y += 2 {
		for x := range internal.ScreenWidth {
			top, bottom := d.Pixel(x, y), d.Pixel(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}
