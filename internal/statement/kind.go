package statement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ErrUnknownKind is returned when a statement kind is not in the table.
var ErrUnknownKind = errors.New("unknown statement kind")

// Family groups kinds that resolve their templates the same way.
type Family uint8

const (
	// FamilyPrint kinds carry the symbol and the custom message.
	FamilyPrint Family = iota

	// FamilyLog kinds call a logger object.
	FamilyLog
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyPrint:
		return "print"
	case FamilyLog:
		return "log"
	default:
		return "unknown"
	}
}

// Kind is one entry of the statement vocabulary.
type Kind struct {
	Name     string
	Family   Family
	Template string
}

// Custom is the kind whose template comes from configuration.
const Custom = "custom"

func printKind(name, fn string) Kind {
	return Kind{
		Name:     name,
		Family:   FamilyPrint,
		Template: fmt.Sprintf(`print("{symbol} {@} {text} %s :", %s({text}))`, name, fn),
	}
}

func logKind(level string) Kind {
	return Kind{
		Name:     level,
		Family:   FamilyLog,
		Template: "{logger}." + level + `("{text} : %s", {#text})`,
	}
}

var kinds = []Kind{
	{Name: "print", Family: FamilyPrint, Template: `print("{symbol} {@} {text} :", {text})`},
	printKind("type", "type"),
	printKind("dir", "dir"),
	printKind("repr", "repr"),
	printKind("id", "id"),
	{Name: "help", Family: FamilyPrint, Template: "help({text})"},
	{Name: Custom, Family: FamilyPrint, Template: "{@}"},
	logKind("debug"),
	logKind("info"),
	logKind("warning"),
	logKind("error"),
	logKind("critical"),
}

var kindIndex = func() map[string]Kind {
	m := make(map[string]Kind, len(kinds))
	for _, k := range kinds {
		m[k.Name] = k
	}
	return m
}()

// Kinds returns the statement vocabulary in display order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Names returns the kind names in display order.
func Names() []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.Name
	}
	return out
}

// Lookup returns the kind called name.
func Lookup(name string) (Kind, error) {
	if k, ok := kindIndex[strings.ToLower(name)]; ok {
		return k, nil
	}
	return Kind{}, &UnknownKindError{Name: name, Suggestions: suggest(name, 3)}
}

// UnknownKindError reports a kind outside the vocabulary.
type UnknownKindError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownKindError) Error() string {
	msg := fmt.Sprintf("unknown statement kind %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}
	return msg
}

// Is matches ErrUnknownKind.
func (e *UnknownKindError) Is(target error) bool {
	return target == ErrUnknownKind
}

func suggest(name string, limit int) []string {
	if name == "" {
		return nil
	}
	matches := fuzzy.Find(strings.ToLower(name), Names())
	var out []string
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == limit {
			break
		}
	}
	return out
}
