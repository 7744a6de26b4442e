package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
)

type HelpSection struct {
	Name  string
	Value string
}

// HelpDescriptor is either Raw text shown verbatim or a description with
// ordered sections. "{prefix}" is replaced when rendered.
type HelpDescriptor struct {
	Description string
	Sections    []HelpSection
	Raw         string
}

func (h HelpDescriptor) validate() error {
	switch {
	case h.Raw != "" && (h.Description != "" || len(h.Sections) > 0):
		return errors.New("help: raw text cannot be combined with sections")
	case h.Raw == "" && h.Description == "":
		return errors.New("help: description is required")
	}
	for _, s := range h.Sections {
		if s.Name == "" || s.Value == "" {
			return fmt.Errorf("help: section %q is incomplete", s.Name)
		}
	}
	return nil
}

type Command struct {
	Name    string
	Aliases []string
	Group   string
	Params  []Param
	Checks  []Check
	Help    HelpDescriptor
	Handler HandlerFunc
}

type Group struct {
	Name     string
	Commands []*Command
}

type Registry struct {
	lookup   map[string]*Command
	commands []*Command
	groups   []string
}

func NewRegistry() *Registry {
	return &Registry{lookup: make(map[string]*Command)}
}

func (r *Registry) Register(cmd *Command) error {
	if err := r.validate(cmd); err != nil {
		return fmt.Errorf("register command %q: %w", cmd.Name, err)
	}

	r.lookup[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.lookup[alias] = cmd
	}

	if !r.hasGroup(cmd.Group) {
		r.groups = append(r.groups, cmd.Group)
	}
	r.commands = append(r.commands, cmd)

	slog.Debug("Command registered", "command", cmd.Name, "group", cmd.Group, "aliases", cmd.Aliases)
	return nil
}

func (r *Registry) validate(cmd *Command) error {
	if !validToken(cmd.Name) {
		return errors.New("invalid name")
	}
	if cmd.Group == "" {
		return errors.New("missing group")
	}
	if cmd.Handler == nil {
		return errors.New("missing handler")
	}

	seen := map[string]bool{cmd.Name: true}
	for _, alias := range cmd.Aliases {
		if !validToken(alias) {
			return fmt.Errorf("invalid alias %q", alias)
		}
		if seen[alias] {
			return fmt.Errorf("duplicate alias %q", alias)
		}
		seen[alias] = true
	}
	for token := range seen {
		if _, taken := r.lookup[token]; taken {
			return fmt.Errorf("%q is already registered", token)
		}
	}

	if err := validateParams(cmd.Params); err != nil {
		return err
	}
	return cmd.Help.validate()
}

func validateParams(params []Param) error {
	names := make(map[string]bool, len(params))
	optional := false

	for i, p := range params {
		if p.Name == "" {
			return fmt.Errorf("param %d has no name", i)
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate param %q", p.Name)
		}
		names[p.Name] = true

		if p.Greedy {
			if i != len(params)-1 {
				return fmt.Errorf("greedy param %q must be last", p.Name)
			}
			if p.Kind != KindString {
				return fmt.Errorf("greedy param %q must be text", p.Name)
			}
		}

		if p.Optional {
			optional = true
		} else if optional {
			return fmt.Errorf("required param %q follows an optional one", p.Name)
		}
	}
	return nil
}

func validToken(s string) bool {
	return s != "" && strings.IndexFunc(s, unicode.IsSpace) < 0
}

func (r *Registry) hasGroup(name string) bool {
	for _, g := range r.groups {
		if g == name {
			return true
		}
	}
	return false
}

// Lookup matches a command name or alias exactly.
func (r *Registry) Lookup(token string) (*Command, bool) {
	cmd, ok := r.lookup[token]
	return cmd, ok
}

func (r *Registry) Commands() []*Command {
	return r.commands
}

// Groups returns groups in registration order.
func (r *Registry) Groups() []Group {
	groups := make([]Group, 0, len(r.groups))
	for _, name := range r.groups {
		g := Group{Name: name}
		for _, cmd := range r.commands {
			if cmd.Group == name {
				g.Commands = append(g.Commands, cmd)
			}
		}
		groups = append(groups, g)
	}
	return groups
}
