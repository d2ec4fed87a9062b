package icons

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type declaration struct {
	property string
	value    string
}

// inlineStyle is an ordered view of a style attribute.
type inlineStyle struct {
	decls []declaration
}

func parseInlineStyle(attr string) *inlineStyle {
	style := &inlineStyle{}
	if strings.TrimSpace(attr) == "" {
		return style
	}

	p := css.NewParser(parse.NewInputString(attr), true)
	for {
		gt, _, data := p.Next()
		if gt == css.ErrorGrammar {
			break
		}
		if gt != css.DeclarationGrammar && gt != css.CustomPropertyGrammar {
			continue
		}

		var value strings.Builder
		for _, val := range p.Values() {
			value.Write(val.Data)
		}
		style.set(strings.ToLower(string(data)), strings.TrimSpace(value.String()))
	}
	return style
}

func (s *inlineStyle) get(property string) string {
	for _, d := range s.decls {
		if d.property == property {
			return d.value
		}
	}
	return ""
}

func (s *inlineStyle) set(property, value string) {
	for i := range s.decls {
		if s.decls[i].property == property {
			s.decls[i].value = value
			return
		}
	}
	s.decls = append(s.decls, declaration{property: property, value: value})
}

// setDefault sets property only when it has no value yet.
func (s *inlineStyle) setDefault(property, value string) {
	if s.get(property) == "" {
		s.set(property, value)
	}
}

func (s *inlineStyle) String() string {
	var b strings.Builder
	for _, d := range s.decls {
		if d.value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d.property)
		b.WriteString(": ")
		b.WriteString(d.value)
		b.WriteByte(';')
	}
	return b.String()
}
