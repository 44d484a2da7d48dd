package task

import (
	"fmt"

	taskerrors "github.com/MikyStar/CLI-Manager-sub000/internal/errors"
)

// State is a named stage of the ordered states list. Index 0 is the initial
// state and the last index is the terminal ("completed") state.
type State struct {
	Name     string `json:"name" mapstructure:"name" yaml:"name"`
	HexColor string `json:"hexColor" mapstructure:"hex_color" yaml:"hex_color"`
	Icon     string `json:"icon" mapstructure:"icon" yaml:"icon"`
}

// DefaultStates returns the states written by 'task init' when the
// configuration does not define any.
func DefaultStates() []State {
	return []State{
		{Name: "todo", HexColor: "#B3B3B3", Icon: "☐"},
		{Name: "wip", HexColor: "#E5C07B", Icon: "✹"},
		{Name: "done", HexColor: "#98C379", Icon: "✔"},
	}
}

// States is an ordered list of states.
type States []State

// Index returns the position of the named state, or -1.
func (s States) Index(name string) int {
	for i, st := range s {
		if st.Name == name {
			return i
		}
	}
	return -1
}

// Contains reports whether the named state is declared.
func (s States) Contains(name string) bool {
	return s.Index(name) >= 0
}

// Get returns the named state.
func (s States) Get(name string) (State, bool) {
	if i := s.Index(name); i >= 0 {
		return s[i], true
	}
	return State{}, false
}

// Initial returns the first state.
func (s States) Initial() State {
	return s[0]
}

// Terminal returns the last state.
func (s States) Terminal() State {
	return s[len(s)-1]
}

// Next returns the state following name, failing with ErrNoFurtherState at
// the terminal state and ErrUnknownState for undeclared names.
func (s States) Next(name string) (State, error) {
	i := s.Index(name)
	if i < 0 {
		return State{}, fmt.Errorf("%w: %q", taskerrors.ErrUnknownState, name)
	}
	if i == len(s)-1 {
		return State{}, fmt.Errorf("%w: %q is the last state", taskerrors.ErrNoFurtherState, name)
	}
	return s[i+1], nil
}

// Names returns the state names in order.
func (s States) Names() []string {
	names := make([]string, len(s))
	for i, st := range s {
		names[i] = st.Name
	}
	return names
}

// Validate checks the list is non-empty and has unique, non-empty names.
func (s States) Validate() error {
	if len(s) == 0 {
		return taskerrors.ErrNoStates
	}
	seen := make(map[string]bool, len(s))
	for i, st := range s {
		if st.Name == "" {
			return fmt.Errorf("%w: state #%d has no name", taskerrors.ErrInvalidArgument, i)
		}
		if seen[st.Name] {
			return fmt.Errorf("%w: state %q declared twice", taskerrors.ErrInvalidArgument, st.Name)
		}
		seen[st.Name] = true
	}
	return nil
}
