package model

import "strings"

// CSVHeader is the first line of the flat export.
const CSVHeader = "theme,mode,token,value"

// Row is one token binding of one theme in one mode.
type Row struct {
	Theme string `json:"theme"`
	Mode  Mode   `json:"mode"`
	Token string `json:"token"`
	Value string `json:"value"`
}

// String renders the row as a CSV line. The value is wrapped in double
// quotes verbatim: embedded quotes and commas are not escaped.
func (r Row) String() string {
	var b strings.Builder
	b.WriteString(r.Theme)
	b.WriteByte(',')
	b.WriteString(string(r.Mode))
	b.WriteByte(',')
	b.WriteString(r.Token)
	b.WriteString(`,"`)
	b.WriteString(r.Value)
	b.WriteByte('"')
	return b.String()
}
