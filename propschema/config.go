package propschema

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for schema generation configuration, allowing
// callers to customize flag names while keeping sensible defaults.
type Flags struct {
	Output       string
	Format       string
	Indent       string
	Draft7       string
	Title        string
	Description  string
	IgnoreMarker string
	Jobs         string
}

// Config holds CLI flag values for schema generation configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewGenerator] to create a [Generator].
type Config struct {
	Flags        Flags
	Output       string
	Format       string
	Title        string
	Description  string
	IgnoreMarker string
	Indent       int
	Jobs         int
	Draft7       bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Output:       "output",
		Format:       "format",
		Indent:       "indent",
		Draft7:       "draft7",
		Title:        "title",
		Description:  "description",
		IgnoreMarker: "ignore-marker",
		Jobs:         "jobs",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds schema generation flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "-",
		"output file path (- for stdout)")
	flags.StringVar(&c.Format, c.Flags.Format, string(FormatJSON),
		fmt.Sprintf("output format, one of: %s", GetAllFormatStrings()))
	flags.IntVar(&c.Indent, c.Flags.Indent, 2,
		"indentation spaces")
	flags.BoolVar(&c.Draft7, c.Flags.Draft7, false,
		"emit standard JSON Schema Draft 7, moving component-specific keys to x- extensions")
	flags.StringVar(&c.Title, c.Flags.Title, "",
		"schema title field (defaults to the component displayName)")
	flags.StringVar(&c.Description, c.Flags.Description, "",
		"schema description field (defaults to the component description)")
	flags.StringVar(&c.IgnoreMarker, c.Flags.IgnoreMarker, "@ignore",
		"props whose description contains this text are excluded")
	flags.IntVarP(&c.Jobs, c.Flags.Jobs, "j", runtime.GOMAXPROCS(0),
		"number of input files converted concurrently")
}

// RegisterCompletions registers shell completions for schema generation flags
// on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(GetAllFormatStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{
		c.Flags.Indent, c.Flags.Title, c.Flags.Description,
		c.Flags.IgnoreMarker, c.Flags.Jobs,
	} {
		regErr := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if regErr != nil {
			return fmt.Errorf("registering %s completion: %w", flag, regErr)
		}
	}

	return nil
}

// OutputFormat returns the parsed --format value.
func (c *Config) OutputFormat() (Format, error) {
	return ParseFormat(c.Format)
}

// NewGenerator creates a [Generator] using this [Config]. Extra options are
// applied after the ones derived from flags.
func (c *Config) NewGenerator(extra ...Option) (*Generator, error) {
	if c.Indent < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidOption, c.Flags.Indent)
	}

	if c.Jobs < 1 {
		return nil, fmt.Errorf("%w: %s must be at least 1", ErrInvalidOption, c.Flags.Jobs)
	}

	_, err := c.OutputFormat()
	if err != nil {
		return nil, err
	}

	opts := []Option{WithIgnoreMarker(c.IgnoreMarker)}

	if c.Title != "" {
		opts = append(opts, WithTitle(c.Title))
	}

	if c.Description != "" {
		opts = append(opts, WithDescription(c.Description))
	}

	opts = append(opts, extra...)

	return NewGenerator(opts...), nil
}
