package synth

import (
	"bytes"
	"sort"
	"strings"

	"github.com/dshills/docweave/pkg/types"
)

// Template keys
const (
	TemplateFunction = "function"
	TemplateClass    = "class"
	TemplateModule   = "module"
)

// Templates maps a declaration family to its documentation template
type Templates map[string]string

// DefaultTemplates returns the built-in documentation templates
func DefaultTemplates() Templates {
	return Templates{
		TemplateFunction: "{name} {description}",
		TemplateClass:    "{name} {description}",
		TemplateModule:   "Package {name} {description}",
	}
}

// Synthesizer merges facts and templates into new documentation
type Synthesizer struct {
	templates Templates
	marker    string
}

// New creates a Synthesizer. Missing template keys fall back to the
// defaults; an empty marker disables marker appending.
func New(templates Templates, marker string) *Synthesizer {
	merged := DefaultTemplates()
	for key, tmpl := range templates {
		if tmpl != "" {
			merged[key] = tmpl
		}
	}
	return &Synthesizer{templates: merged, marker: marker}
}

// HasMarker reports whether content already carries the processing marker
func (s *Synthesizer) HasMarker(content []byte) bool {
	return s.marker != "" && bytes.Contains(content, []byte(s.marker))
}

// insertion is one pending comment splice
type insertion struct {
	offset int
	text   []byte
}

// Apply returns a candidate with documentation inserted for every
// undocumented declaration, plus the unit-level documentation and the
// processing marker. Documented declarations are left untouched.
func (s *Synthesizer) Apply(content []byte, rec *types.StructuralRecord, facts *types.FactBundle, entries []types.CatalogEntry) ([]byte, error) {
	var inserts []insertion

	if rec.PackageDoc == nil {
		offset := lineStartBefore(content, packageOffset(rec))
		text := renderComment(s.templates[TemplateModule], map[string]string{
			"name":        rec.PackageName,
			"args":        "",
			"returns":     "",
			"attrs":       strings.Join(surfaceNames(entries), ", "),
			"description": describeModule(facts, entries),
		}, "")
		inserts = append(inserts, insertion{offset: offset, text: text})
	}

	seen := make(map[int]bool)
	for i := range rec.Decls {
		decl := &rec.Decls[i]
		if decl.Documented() || seen[decl.Span.Start] {
			continue
		}
		seen[decl.Span.Start] = true

		offset := lineStartBefore(content, decl.Span.Start)
		indent := indentAt(content, offset)
		text := renderComment(s.templates[templateFor(decl.Kind)], map[string]string{
			"name":        decl.Name,
			"args":        strings.Join(decl.Params, ", "),
			"returns":     strings.Join(decl.Results, ", "),
			"attrs":       strings.Join(decl.Fields, ", "),
			"description": describeDecl(decl, facts),
		}, indent)
		inserts = append(inserts, insertion{offset: offset, text: text})
	}

	candidate := splice(content, inserts)
	candidate = s.appendMarker(candidate)
	return candidate, nil
}

// templateFor picks the template family for a declaration kind
func templateFor(kind types.DeclKind) string {
	switch kind {
	case types.KindFunction, types.KindMethod:
		return TemplateFunction
	default:
		return TemplateClass
	}
}

// renderComment interpolates a template and formats it as a comment block,
// one "// " line per template line, each prefixed with indent.
func renderComment(template string, values map[string]string, indent string) []byte {
	replacer := strings.NewReplacer(
		"{name}", values["name"],
		"{args}", values["args"],
		"{returns}", values["returns"],
		"{attrs}", values["attrs"],
		"{description}", values["description"],
	)
	body := replacer.Replace(template)

	var out bytes.Buffer
	for _, line := range strings.Split(body, "\n") {
		out.WriteString(indent)
		if line == "" {
			out.WriteString("//")
		} else {
			out.WriteString("// ")
			out.WriteString(line)
		}
		out.WriteByte('\n')
	}
	return out.Bytes()
}

// splice applies insertions back to front so earlier offsets stay valid
func splice(content []byte, inserts []insertion) []byte {
	sort.Slice(inserts, func(i, j int) bool {
		return inserts[i].offset > inserts[j].offset
	})

	out := make([]byte, len(content))
	copy(out, content)
	for _, ins := range inserts {
		grown := make([]byte, 0, len(out)+len(ins.text))
		grown = append(grown, out[:ins.offset]...)
		grown = append(grown, ins.text...)
		grown = append(grown, out[ins.offset:]...)
		out = grown
	}
	return out
}

// appendMarker adds the processing marker as the final line
func (s *Synthesizer) appendMarker(content []byte) []byte {
	if s.marker == "" || bytes.Contains(content, []byte(s.marker)) {
		return content
	}
	if len(content) > 0 && content[len(content)-1] != '\n' {
		content = append(content, '\n')
	}
	content = append(content, '\n')
	content = append(content, []byte(s.marker)...)
	content = append(content, '\n')
	return content
}

// packageOffset returns the byte offset of the package keyword
func packageOffset(rec *types.StructuralRecord) int {
	return rec.FileSet.Position(rec.AST.Package).Offset
}

// lineStartBefore returns the offset of the first byte of the line
// containing offset
func lineStartBefore(content []byte, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	start := bytes.LastIndexByte(content[:offset], '\n')
	return start + 1
}

// indentAt returns the leading whitespace of the line starting at offset
func indentAt(content []byte, offset int) string {
	end := offset
	for end < len(content) && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	return string(content[offset:end])
}

// surfaceNames lists catalog entry names, export-list and top-level only
func surfaceNames(entries []types.CatalogEntry) []string {
	var names []string
	for _, entry := range entries {
		if entry.Origin == types.OriginReexport {
			continue
		}
		names = append(names, entry.Name)
	}
	return names
}
