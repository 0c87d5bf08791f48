// Package main provides the CLI entry point for propschema, a tool that
// converts react-docgen component metadata into JSON Schema documents
// describing each component's props.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xiaoshuangLi/react-docgen-props-schema/log"
	"github.com/xiaoshuangLi/react-docgen-props-schema/profile"
	"github.com/xiaoshuangLi/react-docgen-props-schema/propschema"
	"github.com/xiaoshuangLi/react-docgen-props-schema/version"
)

func main() {
	logCfg := log.NewConfig()
	profCfg := profile.NewConfig()
	cfg := propschema.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "propschema [flags] [docgen.json ...]",
		Short: "Generate JSON Schema from react-docgen output",
		Long: `propschema reads react-docgen output (JSON or YAML) and writes one JSON
Schema document per component describing its props. Types come from the
TypeScript, Flow or PropTypes descriptors, constraints from JSDoc tags such
as @minimum and @pattern, and defaults from the props' default values.

With no file arguments, or with "-", input is read from stdin. A single
component is written as one document; several are written as an array.`,
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			handler, err := logCfg.NewHandler(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			p := profCfg.NewProfiler()

			err = p.Start()
			if err != nil {
				return err
			}

			defer func() {
				err = errors.Join(err, p.Stop())
			}()

			return run(cmd.Context(), cfg, slog.New(handler), args, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())
	cfg.RegisterFlags(rootCmd.Flags())

	for _, register := range []func(*cobra.Command) error{
		logCfg.RegisterCompletions,
		profCfg.RegisterCompletions,
		cfg.RegisterCompletions,
	} {
		completionErr := register(rootCmd)
		if completionErr != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
		}
	}

	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	cfg *propschema.Config,
	logger *slog.Logger,
	args []string,
	stdin io.Reader,
	stdout io.Writer,
) error {
	gen, err := cfg.NewGenerator(propschema.WithLogger(logger))
	if err != nil {
		return err
	}

	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"-"}
	}

	stdinData, err := readStdin(args, stdin)
	if err != nil {
		return err
	}

	results := make([][]*propschema.Document, len(args))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)

	for i, arg := range args {
		g.Go(func() error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			data, readErr := readInput(arg, stdinData)
			if readErr != nil {
				return readErr
			}

			cs, loadErr := propschema.Load(data)
			if loadErr != nil {
				return fmt.Errorf("%s: %w", inputName(arg), loadErr)
			}

			results[i] = gen.GenerateAll(cs)

			logger.Debug("converted input",
				slog.String("input", inputName(arg)),
				slog.Int("components", len(cs)),
			)

			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return err
	}

	out, err := propschema.Marshal(selectOutput(slices.Concat(results...), cfg.Draft7), format, cfg.Indent)
	if err != nil {
		return err
	}

	return writeOutput(cfg.Output, out, stdout)
}

// selectOutput returns the value to encode: one document on its own,
// otherwise the list of documents.
func selectOutput(docs []*propschema.Document, draft7 bool) any {
	if docs == nil {
		docs = []*propschema.Document{}
	}

	if !draft7 {
		if len(docs) == 1 {
			return docs[0]
		}

		return docs
	}

	exported := make([]*jsonschema.Schema, 0, len(docs))
	for _, d := range docs {
		exported = append(exported, d.ToDraft7())
	}

	if len(exported) == 1 {
		return exported[0]
	}

	return exported
}

// readStdin reads stdin when "-" is among args. Stdin can be consumed only
// once, so "-" may appear at most once.
func readStdin(args []string, stdin io.Reader) ([]byte, error) {
	switch n := countStdin(args); {
	case n == 0:
		return nil, nil
	case n > 1:
		return nil, fmt.Errorf("%w: stdin (-) given %d times", propschema.ErrInvalidOption, n)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("%w: stdin: %w", propschema.ErrReadInput, err)
	}

	return data, nil
}

func countStdin(args []string) int {
	n := 0

	for _, arg := range args {
		if arg == "-" {
			n++
		}
	}

	return n
}

func readInput(arg string, stdinData []byte) ([]byte, error) {
	if arg == "-" {
		return stdinData, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", propschema.ErrReadInput, err)
	}

	return data, nil
}

func inputName(arg string) string {
	if arg == "-" {
		return "stdin"
	}

	return arg
}

func writeOutput(path string, out []byte, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(out)
		if err != nil {
			return fmt.Errorf("%w: %w", propschema.ErrWriteOutput, err)
		}

		return nil
	}

	err := os.WriteFile(path, out, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", propschema.ErrWriteOutput, err)
	}

	return nil
}
