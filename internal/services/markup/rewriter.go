// Package markup rewrites Dataforged Markdown into the rich text the
// Foundry system renders: move links become compendium references, stat
// shorthand becomes inline rolls, and the result is rendered to HTML.
package markup

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/KirkDiggler/ironsworn-content/internal/errors"
)

const (
	// DefaultCompendium is the compendium pack that holds the imported moves
	DefaultCompendium = "foundry-ironsworn.starforgedmoves"

	// MoveKeyPrefix namespaces every link lookup. Links are only ever
	// resolved against moves, whatever category they point at.
	MoveKeyPrefix = "Moves / "

	moveKind = "Moves"
)

// Mode selects how Markdown structure is rendered
type Mode int

const (
	// Block renders paragraphs, lists and headers
	Block Mode = iota
	// Inline renders inline markup only, without enclosing paragraph tags
	Inline
)

var (
	// [name](target#anchor); target may not contain '#'
	linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^#]+)#[^)]+\)`)

	modifierPattern = regexp.MustCompile(`(?i)(roll ?)?\+(iron|edge|wits|shadow|heart|health|spirit|supply)`)

	// Stats lists the stat tokens recognized after a '+'
	Stats = []string{"iron", "edge", "wits", "shadow", "heart", "health", "spirit", "supply"}

	contentKinds = map[string]bool{
		"Assets":         true,
		"Encounters":     true,
		"Moves":          true,
		"Oracles":        true,
		"Setting_Truths": true,
		"Setting Truths": true,
	}
)

// Resolver resolves a move key such as "Moves / Face Danger" to an identifier
type Resolver interface {
	Resolve(key string) string
}

// Config holds the dependencies for the rewriter
type Config struct {
	IDs        Resolver
	Compendium string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDs == nil {
		vb.RequiredField("IDs")
	}
	if c.Compendium == "" {
		c.Compendium = DefaultCompendium
	}

	return vb.Build()
}

// Rewriter turns Dataforged text into rendered rich text
type Rewriter struct {
	ids        Resolver
	compendium string
	block      goldmark.Markdown
	inline     goldmark.Markdown
}

// NewRewriter creates a rewriter
func NewRewriter(cfg *Config) (*Rewriter, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Rewriter{
		ids:        cfg.IDs,
		compendium: cfg.Compendium,
		block:      newBlockEngine(),
		inline:     newInlineEngine(),
	}, nil
}

// Render runs the whole pipeline: links, then modifiers, then Markdown
func (r *Rewriter) Render(src string, mode Mode) (string, error) {
	rewritten := r.RewriteModifiers(r.RewriteLinks(src))
	if mode == Inline {
		return r.renderInline(rewritten)
	}
	return r.renderBlock(rewritten)
}

// RenderBlock renders a full text body
func (r *Rewriter) RenderBlock(src string) (string, error) {
	return r.Render(src, Block)
}

// RenderInline renders a single-line field
func (r *Rewriter) RenderInline(src string) (string, error) {
	return r.Render(src, Inline)
}

// RewriteLinks replaces move links with compendium references. Links whose
// target names another content kind, or whose target runs across a
// parenthesis into the following text, are returned verbatim.
func (r *Rewriter) RewriteLinks(src string) string {
	matches := linkPattern.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(src[last:m[0]])
		name := src[m[2]:m[3]]
		target := src[m[4]:m[5]]
		if strings.ContainsAny(target, "()") || kindOf(target) != moveKind {
			b.WriteString(src[m[0]:m[1]])
		} else {
			b.WriteString(r.Reference(name))
		}
		last = m[1]
	}
	b.WriteString(src[last:])
	return b.String()
}

// Reference returns the compendium reference directive for a move name
func (r *Rewriter) Reference(name string) string {
	return fmt.Sprintf("@Compendium[%s.%s]{%s}", r.compendium, r.ids.Resolve(MoveKeyPrefix+name), name)
}

// RewriteModifiers replaces "+stat" and "roll +stat" with inline rolls,
// keeping the case of the stat as written
func (r *Rewriter) RewriteModifiers(src string) string {
	return modifierPattern.ReplaceAllString(src, "((rollplus ${2}))")
}

// kindOf picks the content kind a link target points at: the first path
// segment naming a known kind, else the first segment
func kindOf(target string) string {
	segments := strings.Split(target, "/")
	for _, seg := range segments {
		if contentKinds[strings.TrimSpace(seg)] {
			return strings.TrimSpace(seg)
		}
	}
	return strings.TrimSpace(segments[0])
}

func newBlockEngine() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
}

// newInlineEngine only knows paragraphs, so list markers, headings and
// indentation stay literal text
func newInlineEngine() goldmark.Markdown {
	p := parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)
	return goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
}

func (r *Rewriter) renderBlock(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.block.Convert([]byte(src), &buf); err != nil {
		return "", errors.Wrap(err, "failed to render markdown")
	}
	return buf.String(), nil
}

// renderInline renders the children of each paragraph so no <p> is emitted
func (r *Rewriter) renderInline(src string) (string, error) {
	source := []byte(src)
	doc := r.inline.Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	for block := doc.FirstChild(); block != nil; block = block.NextSibling() {
		if block != doc.FirstChild() {
			buf.WriteString("\n\n")
		}
		if block.Kind() != ast.KindParagraph {
			if err := r.inline.Renderer().Render(&buf, source, block); err != nil {
				return "", errors.Wrap(err, "failed to render markdown")
			}
			continue
		}
		for child := block.FirstChild(); child != nil; child = child.NextSibling() {
			if err := r.inline.Renderer().Render(&buf, source, child); err != nil {
				return "", errors.Wrap(err, "failed to render markdown")
			}
		}
	}
	return buf.String(), nil
}
