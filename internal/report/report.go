package report

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ThatOtherAndrew/shapes/internal/logging"
	"github.com/ThatOtherAndrew/shapes/internal/render"
)

// Box collects error messages in the order they were reported, the way the
// page shows them in its error list. Each message is printed to Out, or
// logged at error level when Out is nil, never both.
type Box struct {
	Out io.Writer

	mu       sync.Mutex
	messages []string
}

func NewBox(out io.Writer) *Box {
	return &Box{Out: out}
}

func (b *Box) Report(msg string) {
	b.mu.Lock()
	b.messages = append(b.messages, msg)
	b.mu.Unlock()

	if b.Out == nil {
		logging.Logger().Error(msg)
		return
	}
	// Best effort: a broken writer must not stop the report.
	_, _ = fmt.Fprintln(b.Out, msg)
}

func (b *Box) Messages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.messages...)
}

func (b *Box) Empty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.messages) == 0
}

var ErrPanic = errors.New("uncaught panic")

// Panic reports a recovered panic value and returns it as an error
// wrapping ErrPanic.
func Panic(rep render.Reporter, v any) error {
	if rep != nil {
		rep.Report(fmt.Sprintf("Uncaught panic: %v", v))
	}
	return fmt.Errorf("%w: %v", ErrPanic, v)
}

// Recover turns a panic in the calling goroutine into a report. Use it as
// `defer report.Recover(rep)` where the panic needs no further handling.
func Recover(rep render.Reporter) {
	if r := recover(); r != nil {
		_ = Panic(rep, r)
	}
}

// Error reports err and returns it unchanged, for use on setup paths.
func Error(rep render.Reporter, err error) error {
	if err != nil && rep != nil {
		rep.Report(err.Error())
	}
	return err
}
