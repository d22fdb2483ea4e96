package view

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Button is one modal choice. A nil OnClick only closes the modal.
type Button struct {
	Label   string
	OnClick func() error
}

// Modal is a three-button prompt: primary (save), secondary (cancel) and
// reset. Buttons with an empty label are not offered.
type Modal struct {
	Title     string
	Primary   Button
	Secondary Button
	Reset     Button
}

var ErrNoChoice = errors.New("no choice made")

func (m Modal) buttons() []Button {
	var out []Button
	for _, b := range []Button{m.Primary, m.Secondary, m.Reset} {
		if b.Label != "" {
			out = append(out, b)
		}
	}
	return out
}

func (m Modal) pick(in string, buttons []Button) (Button, bool) {
	in = strings.TrimSpace(in)
	if n, err := strconv.Atoi(in); err == nil && n >= 1 && n <= len(buttons) {
		return buttons[n-1], true
	}
	for _, b := range buttons {
		if strings.EqualFold(b.Label, in) {
			return b, true
		}
	}
	return Button{}, false
}

// Run shows the modal until a valid choice is read, runs its callback and
// returns the chosen label.
func (m Modal) Run(r *bufio.Reader, w io.Writer) (string, error) {
	buttons := m.buttons()
	if len(buttons) == 0 {
		return "", ErrNoChoice
	}
	opts := make([]string, len(buttons))
	for i, b := range buttons {
		opts[i] = fmt.Sprintf("[%d] %s", i+1, b.Label)
	}

	for {
		if m.Title != "" {
			fmt.Fprintln(w, m.Title)
		}
		fmt.Fprintf(w, "%s\n> ", strings.Join(opts, "  "))

		line, err := r.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			if errors.Is(err, io.EOF) {
				return "", ErrNoChoice
			}
			return "", err
		}
		b, ok := m.pick(line, buttons)
		if !ok {
			fmt.Fprintln(w, "Invalid choice")
			if err != nil {
				return "", ErrNoChoice
			}
			continue
		}
		if b.OnClick != nil {
			if err := b.OnClick(); err != nil {
				return b.Label, err
			}
		}
		return b.Label, nil
	}
}
