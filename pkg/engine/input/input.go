package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrInterrupted is returned when Ctrl+C is pressed while the terminal is in raw mode
var ErrInterrupted = errors.New("interrupted")

// Terminal reads keys and lines from a terminal file descriptor
type Terminal struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

// NewTerminal reads from stdin and echoes to stdout
func NewTerminal() *Terminal {
	return &Terminal{in: os.Stdin, out: os.Stdout}
}

// ReadLine reads a line in cooked mode, for free text such as a character name
func (t *Terminal) ReadLine(prompt string) (string, error) {
	if t.reader == nil {
		t.reader = bufio.NewReader(t.in)
	}
	fmt.Fprint(t.out, prompt)
	line, err := t.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadKey puts the terminal into raw mode and returns the code of one key press.
// Arrow keys decode to "arrow_up" etc., Enter to "enter" and Escape to "escape".
func (t *Terminal) ReadKey() (string, error) {
	// line buffering would swallow bytes meant for raw reads
	t.reader = nil

	fd := int(t.in.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(fd, old)

	buf := make([]byte, 8)
	n, err := t.in.Read(buf)
	if err != nil {
		return "", err
	}
	code := DecodeKey(buf[:n])
	if code == "ctrl_c" {
		return "", ErrInterrupted
	}
	return code, nil
}

// DecodeKey maps the bytes of a single raw-mode read to a key code
func DecodeKey(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if b[0] == 0x1b {
		if len(b) == 1 {
			return "escape"
		}
		// CSI (ESC [) and SS3 (ESC O) both end in the key letter
		if len(b) >= 3 && (b[1] == '[' || b[1] == 'O') {
			switch b[2] {
			case 'A':
				return "arrow_up"
			case 'B':
				return "arrow_down"
			case 'C':
				return "arrow_right"
			case 'D':
				return "arrow_left"
			}
			if b[1] == '[' && len(b) >= 5 && b[4] == '~' {
				switch string(b[2:4]) {
				case "15":
					return "f5"
				case "20":
					return "f9"
				case "24":
					return "f12"
				}
			}
		}
		return ""
	}

	switch b[0] {
	case 3:
		return "ctrl_c"
	case '\r', '\n':
		return "enter"
	case ' ':
		return "space"
	case 127, 8:
		return "backspace"
	}
	if b[0] >= 32 && b[0] < 127 {
		return strings.ToLower(string(b[0]))
	}
	return ""
}
