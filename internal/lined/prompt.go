package lined

import "strings"

// PromptPath prints prompt and reads one line from stdin, returning it
// without its line ending. cmd/freemint uses it when the terminal
// display cannot be started.
func PromptPath(prompt string) (string, error) {
	r := NewReader()
	print(prompt)
	line, err := r.ReadString()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks a yes/no question, defaulting to no on anything but a
// leading 'y' or 'Y'.
func Confirm(prompt string) bool {
	r := NewReader()
	print(prompt)
	line, err := r.ReadString()
	if err != nil || len(line) == 0 {
		return false
	}
	return line[0] == 'y' || line[0] == 'Y'
}
