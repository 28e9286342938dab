package ml

import "strings"

// SentinelLabel is the placeholder option listed first in every select box.
const SentinelLabel = "Pilih"

// Selection is the resolved value of a categorical field: either nothing was
// chosen, or a code was.
type Selection struct {
	code     int
	selected bool
}

// Unselected is the zero Selection.
func Unselected() Selection {
	return Selection{}
}

// Selected wraps a resolved code.
func Selected(code int) Selection {
	return Selection{code: code, selected: true}
}

// Code returns the resolved code and whether one exists.
func (s Selection) Code() (int, bool) {
	return s.code, s.selected
}

// IsSelected reports whether a code was resolved.
func (s Selection) IsSelected() bool {
	return s.selected
}

// Option is one label of a code table with its numeric code.
type Option struct {
	Label string `json:"label"`
	Code  int    `json:"code"`
}

// CodeTable maps the option labels of one categorical field to codes.
// Tables are built once at package init and never modified.
type CodeTable struct {
	options []Option
	index   map[string]int
}

func newCodeTable(options ...Option) *CodeTable {
	index := make(map[string]int, len(options))
	for _, opt := range options {
		index[opt.Label] = opt.Code
	}
	return &CodeTable{options: options, index: index}
}

// Resolve looks a label up. The sentinel, blank input and labels outside the
// table resolve to Unselected.
func (t *CodeTable) Resolve(label string) Selection {
	label = strings.TrimSpace(label)
	if label == "" || label == SentinelLabel {
		return Unselected()
	}
	code, ok := t.index[label]
	if !ok {
		return Unselected()
	}
	return Selected(code)
}

// Options returns the selectable labels in display order, sentinel excluded.
func (t *CodeTable) Options() []Option {
	out := make([]Option, len(t.options))
	copy(out, t.options)
	return out
}

// Labels returns the select box contents in display order, sentinel first.
func (t *CodeTable) Labels() []string {
	out := make([]string, 0, len(t.options)+1)
	out = append(out, SentinelLabel)
	for _, opt := range t.options {
		out = append(out, opt.Label)
	}
	return out
}

// thal skips code 1; the classifier was trained on that coding.
var codeTables = map[Field]*CodeTable{
	FieldSex: newCodeTable(
		Option{"Laki-laki", 1},
		Option{"Perempuan", 0},
	),
	FieldCP: newCodeTable(
		Option{"Typical angina", 0},
		Option{"Atypical angina", 1},
		Option{"Non-angina", 2},
		Option{"Tanpa gejala", 3},
	),
	FieldFBS: newCodeTable(
		Option{"Tidak", 0},
		Option{"Ya", 1},
	),
	FieldRestECG: newCodeTable(
		Option{"Normal", 0},
		Option{"Ada kelainan", 1},
		Option{"Hypertrophy", 2},
	),
	FieldExang: newCodeTable(
		Option{"Tidak", 0},
		Option{"Ya", 1},
	),
	FieldSlope: newCodeTable(
		Option{"Meningkat", 0},
		Option{"Mendatar", 1},
		Option{"Menurun", 2},
	),
	FieldCA: newCodeTable(
		Option{"0", 0},
		Option{"1", 1},
		Option{"2", 2},
		Option{"3", 3},
	),
	FieldThal: newCodeTable(
		Option{"Normal", 0},
		Option{"Cacat tetap", 2},
		Option{"Cacat reversibel", 3},
	),
}

// CodeTableFor returns the table of a categorical field.
func CodeTableFor(f Field) (*CodeTable, bool) {
	t, ok := codeTables[f]
	return t, ok
}
