package propschema

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/xiaoshuangLi/react-docgen-props-schema/propschema/jsdoc"
)

// Sentinel errors returned by the package.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidOption = errors.New("invalid option")
	ErrReadInput     = errors.New("read input")
	ErrWriteOutput   = errors.New("write output")
)

// Generator produces a [Document] for each component.
type Generator struct {
	logger       *slog.Logger
	converter    *Converter
	ignoreMarker string
	title        string
	description  string
}

// Option configures a Generator.
type Option func(*Generator)

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		logger:       slog.Default(),
		ignoreMarker: jsdoc.DefaultIgnoreMarker,
	}

	for _, opt := range opts {
		opt(g)
	}

	g.converter = NewConverter(g.logger)

	return g
}

// WithLogger sets the logger that receives evaluation warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithIgnoreMarker sets the text that excludes a prop when found in its
// description. An empty marker excludes nothing.
func WithIgnoreMarker(marker string) Option {
	return func(g *Generator) {
		g.ignoreMarker = marker
	}
}

// WithTitle overrides the document title, which defaults to the
// component's displayName.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithDescription overrides the document description, which defaults to
// the component's doc comment.
func WithDescription(desc string) Option {
	return func(g *Generator) {
		g.description = desc
	}
}

// Generate converts the props of c into a [Document].
//
// Props with no descriptor, props whose description contains the ignore
// marker, and props whose type has no convertible form are left out of
// both Properties and Required. A prop is required only when its
// descriptor declares required: true.
func (g *Generator) Generate(c *Component) *Document {
	doc := &Document{
		Title:       c.DisplayName,
		Description: jsdoc.Parse(c.Description).Description,
		Properties:  make(map[string]*Schema, len(c.Props)),
	}

	if g.title != "" {
		doc.Title = g.title
	}

	if g.description != "" {
		doc.Description = g.description
	}

	for _, p := range c.Props {
		if p.Descriptor == nil || g.ignored(p.Descriptor) {
			continue
		}

		s := g.converter.Convert(Normalize(p.Descriptor), nil)
		if s == nil {
			g.logger.Debug("drop prop without schema", slog.String("prop", p.Name))

			continue
		}

		if _, dup := doc.Properties[p.Name]; !dup {
			doc.PropertyOrder = append(doc.PropertyOrder, p.Name)
		}

		doc.Properties[p.Name] = s

		if p.Descriptor.Required && !slices.Contains(doc.Required, p.Name) {
			doc.Required = append(doc.Required, p.Name)
		}
	}

	return doc
}

// GenerateAll converts each component in order.
func (g *Generator) GenerateAll(cs []Component) []*Document {
	docs := make([]*Document, 0, len(cs))
	for i := range cs {
		docs = append(docs, g.Generate(&cs[i]))
	}

	return docs
}

// ignored reports whether the prop description contains the ignore marker.
// propTypes entries without a prop description are checked through their
// type description.
func (g *Generator) ignored(p *PropDescriptor) bool {
	if jsdoc.HasMarker(p.Description, g.ignoreMarker) {
		return true
	}

	for _, t := range []*TypeDescriptor{p.Type, p.TSType, p.FlowType} {
		if t != nil && jsdoc.HasMarker(t.Description, g.ignoreMarker) {
			return true
		}
	}

	return false
}
