package theme

import (
	"strings"

	"frankentokens/model"
)

// Rows flattens reg: themes in insertion order, light before dark, tokens
// in insertion order. Absent modes produce no rows.
func Rows(reg *model.Registry) []model.Row {
	var rows []model.Row
	for _, rec := range reg.Records() {
		for _, mode := range model.Modes {
			tokens := rec.Tokens(mode)
			if tokens == nil {
				continue
			}
			for _, name := range tokens.Keys() {
				value, _ := tokens.Get(name)
				rows = append(rows, model.Row{
					Theme: rec.Name,
					Mode:  mode,
					Token: name,
					Value: value,
				})
			}
		}
	}
	return rows
}

// CSV renders the header line followed by one line per row, joined by
// newlines with no trailing newline.
func CSV(reg *model.Registry) string {
	rows := Rows(reg)
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, model.CSVHeader)
	for _, row := range rows {
		lines = append(lines, row.String())
	}
	return strings.Join(lines, "\n")
}
