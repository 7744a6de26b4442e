package commands

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"yasen/internal/adapters/discord/formatting"
)

type Kind int

const (
	KindString Kind = iota
	KindInt
	KindNumber
	KindUser
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "an integer"
	case KindNumber:
		return "a number"
	case KindUser:
		return "a user mention or id"
	default:
		return "text"
	}
}

// Param declares one positional argument. A greedy param takes the rest of
// the line and must be last.
type Param struct {
	Name     string
	Kind     Kind
	Optional bool
	Greedy   bool
	Default  string
}

type ArgError struct {
	Param   string
	Kind    Kind
	Missing bool
}

func (e *ArgError) Error() string {
	if e.Missing {
		return "missing argument " + e.Param
	}
	return fmt.Sprintf("argument %s: expected %s", e.Param, e.Kind)
}

// Message is the user-facing validation message.
func (e *ArgError) Message() string {
	if e.Missing {
		return formatting.MsgMissingArgument(e.Param)
	}
	return formatting.MsgInvalidArgument(e.Param, e.Kind.String())
}

type Args map[string]any

func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

func (a Args) Int(name string) int {
	n, _ := a[name].(int)
	return n
}

func (a Args) Number(name string) float64 {
	f, _ := a[name].(float64)
	return f
}

// User returns the user id of a KindUser argument.
func (a Args) User(name string) string {
	return a.String(name)
}

// Fields splits a greedy argument into whitespace separated words.
func (a Args) Fields(name string) []string {
	return strings.Fields(a.String(name))
}

func ParseArgs(params []Param, raw string) (Args, error) {
	args := make(Args, len(params))
	rest := raw

	for _, p := range params {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)

		var token string
		if p.Greedy {
			token = strings.TrimRightFunc(rest, unicode.IsSpace)
			rest = ""
		} else {
			token, rest = nextToken(rest)
		}

		if token == "" {
			if !p.Optional {
				return nil, &ArgError{Param: p.Name, Kind: p.Kind, Missing: true}
			}
			if p.Default == "" {
				continue
			}
			token = p.Default
		}

		v, err := coerce(p.Kind, token)
		if err != nil {
			return nil, &ArgError{Param: p.Name, Kind: p.Kind}
		}
		args[p.Name] = v
	}

	return args, nil
}

func nextToken(s string) (string, string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

func coerce(kind Kind, token string) (any, error) {
	switch kind {
	case KindInt:
		return strconv.Atoi(token)
	case KindNumber:
		return strconv.ParseFloat(token, 64)
	case KindUser:
		return ParseUserID(token)
	default:
		return token, nil
	}
}

// ParseUserID accepts <@id>, <@!id> or a bare numeric id.
func ParseUserID(token string) (string, error) {
	id := token
	if strings.HasPrefix(id, "<@") && strings.HasSuffix(id, ">") {
		id = strings.TrimPrefix(id[2:len(id)-1], "!")
	}
	if id == "" {
		return "", fmt.Errorf("invalid user %q", token)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("invalid user %q", token)
		}
	}
	return id, nil
}
