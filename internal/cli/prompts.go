package cli

import (
	"fmt"
	"strconv"
	"strings"
)

func (m *Menu) prompt(label string) string {
	fmt.Fprintf(m.out, "%s: ", label)
	if !m.in.Scan() {
		return ""
	}
	return strings.TrimSpace(m.in.Text())
}

// promptKeep shows the current value and returns nil when the operator
// leaves the field blank, keeping it.
func (m *Menu) promptKeep(label, current string) *string {
	fmt.Fprintf(m.out, "%s (leave blank to keep %q): ", label, current)
	if !m.in.Scan() {
		return nil
	}
	v := strings.TrimSpace(m.in.Text())
	if v == "" {
		return nil
	}
	return &v
}

func (m *Menu) promptInt(label string) (int, error) {
	raw := m.prompt(label)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return n, nil
}

func (m *Menu) promptFloat(label string) (float64, error) {
	raw := m.prompt(label)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return f, nil
}

func (m *Menu) promptYesNo(label string) bool {
	switch strings.ToLower(m.prompt(label + " (yes/no)")) {
	case "yes", "y":
		return true
	}
	return false
}

func parseInt(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return n, nil
}

func parseFloat(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return f, nil
}

// applyKeep copies the new value over the destination unless the
// operator kept the current one.
func applyKeep(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
