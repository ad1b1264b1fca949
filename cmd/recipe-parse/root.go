package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"recipe-parser/internal/core/lexicon"
	"recipe-parser/internal/core/recipe"
	"recipe-parser/internal/core/source"
	"recipe-parser/internal/infrastructure/config"
	"recipe-parser/internal/pkg/common"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

type options struct {
	input       string
	format      string
	lexicon     string
	logLevel    string
	concurrency int
}

// inputDocument 與 POST /api/v1/recipes/parse 的請求相同
type inputDocument struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	Ingredients  any    `json:"ingredients"`
	Instructions any    `json:"instructions"`
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "recipe-parse [url...]",
		Short: "Parse recipes into structured ingredients and steps",
		Long: `recipe-parse fetches recipe pages, reads their schema.org Recipe JSON-LD and
prints the parsed ingredients, tools, methods and atomic steps.

With --input it parses a local JSON document instead:
  {"title": "...", "url": "...", "ingredients": [...], "instructions": [...]}`,
		Example: `  recipe-parse https://www.allrecipes.com/recipe/12345/
  recipe-parse --format yaml https://a.example/1 https://b.example/2
  recipe-parse --input pancakes.json --lexicon extra-words.yaml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "json" && opts.format != "yaml" {
				return fmt.Errorf("unsupported format %q (json or yaml)", opts.format)
			}
			// CLI 只輸出到 stderr，不寫日誌檔
			return common.InitLoggerWithOptions(common.LoggerOptions{
				Level:   opts.logLevel,
				Service: "recipe-parse",
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "parse a local JSON document instead of fetching URLs")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().StringVar(&opts.lexicon, "lexicon", "", "YAML file with extra units, descriptors, tools or methods")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 4, "maximum number of pages fetched at once")

	return cmd
}

func run(cmd *cobra.Command, opts *options, urls []string) error {
	lex := lexicon.Default()
	if opts.lexicon != "" {
		var err error
		if lex, err = lexicon.LoadFile(opts.lexicon); err != nil {
			return err
		}
	}
	parser := recipe.NewParser(lex)

	if opts.input != "" {
		if len(urls) > 0 {
			return fmt.Errorf("--input cannot be combined with URLs")
		}
		r, err := parseFile(parser, opts.input)
		if err != nil {
			return err
		}
		return write(cmd.OutOrStdout(), opts.format, r)
	}

	if len(urls) == 0 {
		return fmt.Errorf("requires at least one URL or --input")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	svc := source.NewService(source.NewFetcher(&cfg.Fetch), parser, nil)

	results := make([]*recipe.Recipe, len(urls))
	g, ctx := errgroup.WithContext(cmd.Context())
	if opts.concurrency > 0 {
		g.SetLimit(opts.concurrency)
	}
	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			r, err := svc.Load(ctx, url)
			if err != nil {
				return fmt.Errorf("%s: %w", url, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if len(results) == 1 {
		return write(cmd.OutOrStdout(), opts.format, results[0])
	}
	return write(cmd.OutOrStdout(), opts.format, results)
}

func parseFile(parser *recipe.Parser, path string) (*recipe.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	var doc inputDocument
	if err := common.DecodeJSONStrict(f, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	ingredients, err := recipe.AsList(recipe.FieldIngredients, doc.Ingredients)
	if err != nil {
		return nil, err
	}
	instructions, err := recipe.AsList(recipe.FieldInstructions, doc.Instructions)
	if err != nil {
		return nil, err
	}
	return parser.ParseRaw(doc.Title, doc.URL, ingredients, instructions)
}

func write(w io.Writer, format string, v interface{}) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
