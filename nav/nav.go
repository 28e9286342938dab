// Package nav selects which page of the app is shown. It holds no state of
// its own: callers pass the current view in and persist the one returned.
package nav

import "strings"

// View is one page of the app.
type View string

const (
	Home    View = "Home"
	Scan    View = "Scan Prediction Test"
	Contact View = "Contact"
)

// Default is the view of a visitor without history.
const Default = Home

var menu = []View{Home, Scan, Contact}

// Menu returns the sidebar entries in display order.
func Menu() []View {
	out := make([]View, len(menu))
	copy(out, menu)
	return out
}

// Valid reports whether v is one of the menu views.
func (v View) Valid() bool {
	for _, m := range menu {
		if m == v {
			return true
		}
	}
	return false
}

// Slug returns a URL-safe identifier for the view.
func (v View) Slug() string {
	switch v {
	case Scan:
		return "scan"
	case Contact:
		return "contact"
	default:
		return "home"
	}
}

// ParseView accepts either the display name or the slug of a view.
func ParseView(s string) (View, bool) {
	s = strings.TrimSpace(s)
	for _, v := range menu {
		if strings.EqualFold(s, string(v)) || strings.EqualFold(s, v.Slug()) {
			return v, true
		}
	}
	return "", false
}

// ActionKind enumerates what a visitor can do to move between pages.
type ActionKind string

const (
	ActionSelect   ActionKind = "select"
	ActionCheckNow ActionKind = "check_now"
	ActionBack     ActionKind = "back"
)

// Action is one navigation event. Target is only read for ActionSelect.
type Action struct {
	Kind   ActionKind
	Target View
}

func Select(v View) Action { return Action{Kind: ActionSelect, Target: v} }

func CheckNow() Action { return Action{Kind: ActionCheckNow} }

func Back() Action { return Action{Kind: ActionBack} }

// Next returns the view that follows current after action. Unknown actions
// and invalid targets keep the visitor where they are; an invalid current
// view is treated as Default.
func Next(current View, action Action) View {
	if !current.Valid() {
		current = Default
	}
	switch action.Kind {
	case ActionSelect:
		if action.Target.Valid() {
			return action.Target
		}
	case ActionCheckNow:
		if current == Home {
			return Scan
		}
	case ActionBack:
		return Home
	}
	return current
}
