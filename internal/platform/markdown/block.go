package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Note is a markdown file with an optional YAML header. Keys and text the
// user added by hand survive a Parse, Set, Upsert, Render cycle.
type Note struct {
	Meta map[string]any
	Body string
}

// ParseNote reads content. A note without a header has empty Meta.
func ParseNote(content string) (Note, error) {
	header, ok := strings.CutPrefix(content, fence+"\n")
	if !ok {
		return Note{Meta: map[string]any{}, Body: content}, nil
	}
	raw, body, found := strings.Cut(header, "\n"+fence+"\n")
	if !found {
		return Note{}, fmt.Errorf("note header: missing closing %q", fence)
	}
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return Note{}, fmt.Errorf("note header: %w", err)
	}
	return Note{Meta: meta, Body: body}, nil
}

// Set overlays updates onto the header.
func (n *Note) Set(updates map[string]any) {
	if n.Meta == nil {
		n.Meta = make(map[string]any, len(updates))
	}
	for k, v := range updates {
		n.Meta[k] = v
	}
}

// Upsert rewrites the generated block b inside the body.
func (n *Note) Upsert(b Block, generated string) {
	n.Body = b.Upsert(n.Body, generated)
}

func (n Note) Render() (string, error) {
	var sb strings.Builder
	sb.WriteString(fence + "\n")
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(n.Meta); err != nil {
		return "", fmt.Errorf("note header: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("note header: %w", err)
	}
	sb.WriteString(fence + "\n")
	if !strings.HasPrefix(n.Body, "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteString(n.Body)
	return sb.String(), nil
}

// Block is a generated region delimited by HTML comment markers. Text outside
// the markers belongs to the user and is never rewritten.
type Block struct {
	Name string
}

func (b Block) start() string { return "<!-- " + b.Name + ":start -->" }
func (b Block) end() string   { return "<!-- " + b.Name + ":end -->" }

// Upsert replaces the block contents in body, or appends the block when the
// markers are absent.
func (b Block) Upsert(body, generated string) string {
	startMarker, endMarker := b.start(), b.end()
	section := startMarker + "\n" + strings.TrimRight(generated, "\n") + "\n" + endMarker

	start := strings.Index(body, startMarker)
	end := strings.Index(body, endMarker)
	if start >= 0 && end > start {
		return body[:start] + section + body[end+len(endMarker):]
	}
	switch {
	case strings.TrimSpace(body) == "":
		return section + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + section + "\n"
	default:
		return body + "\n\n" + section + "\n"
	}
}

// Table renders a GitHub style pipe table.
func Table(headers []string, rows [][]string) string {
	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for _, c := range cells {
			sb.WriteString(" ")
			sb.WriteString(strings.ReplaceAll(c, "|", `\|`))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}
	writeRow(headers)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(sep)
	for _, r := range rows {
		writeRow(r)
	}
	return sb.String()
}
