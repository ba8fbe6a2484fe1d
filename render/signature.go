package render

import (
	"strings"

	"github.com/fwojciec/docdex/schema"
)

// signature renders a method's call form. Positional calls list parameter
// names; table calls list named fields in braces, matching how the callable
// is invoked.
func signature(m *schema.Method) string {
	params := sortByOrder(m.Parameters, func(p *schema.Parameter) int { return p.Order })

	var sb strings.Builder
	sb.WriteString(m.Name)
	if m.TakesTable {
		sb.WriteByte('{')
		for i, p := range params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Name)
			if p.Optional {
				sb.WriteByte('?')
			}
			sb.WriteString(": ")
			sb.WriteString(p.Type.Render())
		}
		sb.WriteByte('}')
	} else {
		sb.WriteByte('(')
		for i, p := range params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Name)
			if p.Optional {
				sb.WriteByte('?')
			}
		}
		sb.WriteByte(')')
	}

	if len(m.ReturnValues) > 0 {
		returns := sortByOrder(m.ReturnValues, func(rv *schema.ReturnValue) int { return rv.Order })
		parts := make([]string, len(returns))
		for i, rv := range returns {
			parts[i] = rv.Type.Render()
			if rv.Optional {
				parts[i] += "?"
			}
		}
		sb.WriteString(" -> ")
		sb.WriteString(strings.Join(parts, ", "))
	}

	return sb.String()
}

// fieldLine renders a named, typed field as inline code, e.g.
// "`speed :: double` (optional)".
func fieldLine(name string, typ *schema.Type, optional bool) string {
	s := "`" + name + " :: " + typ.Render() + "`"
	if optional {
		s += " (optional)"
	}
	return s
}

// accessNote describes attribute accessibility.
func accessNote(read, write bool) string {
	switch {
	case read && write:
		return "read/write"
	case write:
		return "write-only"
	default:
		return "read-only"
	}
}

// parameterList renders a bulleted parameter or field list sorted by display
// order.
func parameterList(params []*schema.Parameter, rewrite func(string) string) string {
	if len(params) == 0 {
		return ""
	}
	sorted := sortByOrder(params, func(p *schema.Parameter) int { return p.Order })

	var sb strings.Builder
	for _, p := range sorted {
		sb.WriteString("- `")
		sb.WriteString(p.Name)
		sb.WriteString("` (")
		sb.WriteString(p.Type.Render())
		if p.Optional {
			sb.WriteString(", optional")
		}
		sb.WriteString(")")
		if desc := strings.TrimSpace(p.Description); desc != "" {
			sb.WriteString(": ")
			sb.WriteString(rewrite(firstJoined(desc)))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// returnList renders a bulleted return-value list sorted by display order.
func returnList(returns []*schema.ReturnValue, rewrite func(string) string) string {
	if len(returns) == 0 {
		return ""
	}
	sorted := sortByOrder(returns, func(rv *schema.ReturnValue) int { return rv.Order })

	var sb strings.Builder
	for _, rv := range sorted {
		sb.WriteString("- `")
		sb.WriteString(rv.Type.Render())
		sb.WriteString("`")
		if rv.Optional {
			sb.WriteString(" (optional)")
		}
		if desc := strings.TrimSpace(rv.Description); desc != "" {
			sb.WriteString(": ")
			sb.WriteString(rewrite(firstJoined(desc)))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// firstJoined collapses a multi-line description into one line for bullets.
func firstJoined(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
