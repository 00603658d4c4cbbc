package sdl

import (
	"context"
	"fmt"
	"time"

	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/internal/control"
	"github.com/mnafees/chopper/internal/history"
	"github.com/mnafees/chopper/internal/keypad"
	"github.com/mnafees/chopper/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenColor = 0x1A237E
	spriteColor = 0x9FA8DA
)

// IO is the input/output abstraction layer for the VM
type IO struct {
	window  *sdl.Window
	surface *sdl.Surface

	vm      *internal.C8VM
	control *control.Controller
	logger  *log.Logger

	pixelSize int32
	title     string
	lastTitle string
}

// NewIO returns a new I/O instance for the SDL frontend. All cycles are
// executed through hist so that they can be undone.
func NewIO(vm *internal.C8VM, hist *history.History, logger *log.Logger, opts options.Program) *IO {
	return &IO{
		vm:        vm,
		control:   control.New(vm, hist, logger, opts),
		logger:    logger,
		pixelSize: int32(opts.Scale),
	}
}

// SetupWindow initialises and sets up the main SDL window
func (io *IO) SetupWindow(title string) error {
	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		internal.ScreenWidth*io.pixelSize, internal.ScreenHeight*io.pixelSize, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	io.window = window
	io.title = title
	io.surface, err = window.GetSurface()
	if err != nil {
		return fmt.Errorf("getting window surface: %w", err)
	}
	if err := io.surface.FillRect(nil, screenColor); err != nil {
		return fmt.Errorf("clearing window surface: %w", err)
	}

	io.logger.Info("Window created",
		log.String("title", title),
		log.Int("pixel_size", int(io.pixelSize)))
	return nil
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.window != nil {
		_ = io.window.Destroy()
	}
	sdl.Quit()
}

// Loop is the main application loop. Every 60 Hz frame it executes a batch
// of cycles, ticks the timers once and redraws the window if the display
// changed. It returns when the window is closed, the context is cancelled
// or a cycle fails.
func (io *IO) Loop(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / internal.TimerFrequency)
	defer ticker.Stop()

	for {
		quit, err := io.handleEvents()
		if quit || err != nil {
			return err
		}

		if err := io.runFrame(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// runFrame executes the cycles of one frame and updates screen and title.
func (io *IO) runFrame() error {
	if err := io.control.Frame(); err != nil {
		return err
	}

	if io.vm.IsDrawFlagSet() {
		if err := io.draw(); err != nil {
			return err
		}
	}

	// the title shows the next instruction while single stepping
	title := io.title
	if io.control.Paused() {
		title = fmt.Sprintf("%s | %s", io.title, io.control.Status())
	}
	if title != io.lastTitle {
		io.window.SetTitle(title)
		io.lastTitle = title
	}
	return nil
}

// handleEvents processes pending window events and reports whether the
// user asked to quit.
func (io *IO) handleEvents() (bool, error) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			switch t.GetType() {
			case sdl.KEYDOWN:
				quit, err := io.keyDown(t)
				if quit || err != nil {
					return quit, err
				}
			case sdl.KEYUP:
				if key, ok := keypad.ForRune(rune(t.Keysym.Sym)); ok {
					io.vm.ReleaseKey(key)
				}
			}
		case *sdl.QuitEvent:
			return true, nil
		}
	}
	return false, nil
}

// Emulator control keys, chosen outside of the keypad mapping:
// P pauses, N steps one cycle, M steps a batch, L resets, Backspace undoes.
func (io *IO) keyDown(event *sdl.KeyboardEvent) (bool, error) {
	switch event.Keysym.Sym {
	case sdl.K_ESCAPE:
		return true, nil
	case sdl.K_BACKSPACE:
		io.control.Undo()
		return false, nil
	case sdl.K_p:
		if event.Repeat == 0 {
			io.control.TogglePause()
		}
		return false, nil
	case sdl.K_n:
		return false, io.control.Step()
	case sdl.K_m:
		return false, io.control.StepN()
	case sdl.K_l:
		if event.Repeat == 0 {
			io.control.Reset()
		}
		return false, nil
	}

	if key, ok := keypad.ForRune(rune(event.Keysym.Sym)); ok {
		io.vm.PressKey(key)
	}
	return false, nil
}

// Draws the current display content on screen
func (io *IO) draw() error {
	if err := io.surface.FillRect(nil, screenColor); err != nil {
		return fmt.Errorf("clearing window surface: %w", err)
	}
	pixels := io.vm.Pixels()
	for h := int32(0); h < internal.ScreenHeight; h++ {
		for w := int32(0); w < internal.ScreenWidth; w++ {
			if pixels.Pixel(int(w), int(h)) {
				rect := &sdl.Rect{X: w * io.pixelSize, Y: h * io.pixelSize, W: io.pixelSize, H: io.pixelSize}
				if err := io.surface.FillRect(rect, spriteColor); err != nil {
					return fmt.Errorf("drawing pixel: %w", err)
				}
			}
		}
	}
	if err := io.window.UpdateSurface(); err != nil {
		return fmt.Errorf("updating window surface: %w", err)
	}
	io.vm.UnsetDrawFlag()
	return nil
}
