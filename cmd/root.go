package cmd

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/dsgen/dsgen/gen"
	"github.com/dsgen/dsgen/schema"
)

// generator pairs a registered generator with the options and output
// directory parsed from its *_out flag.
type generator struct {
	gen.Generator

	opts   map[string]interface{}
	outDir string
}

type rootCmd struct {
	*baseCmd

	fs      afero.Fs
	client  *fetchClient
	headers http.Header

	geners  *[]*generator
	outDirs *[]string
}

type genCtx struct {
	fs  afero.Fs
	dir string
}

func (ctx *genCtx) Open(name string) (io.WriteCloser, error) {
	return ctx.fs.OpenFile(filepath.Join(ctx.dir, name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
}

// Dir exposes the output directory to plugin generators.
func (ctx *genCtx) Dir() string { return ctx.dir }

func (c *CommandLine) newRootCmd(args []string) *rootCmd {
	rc := &rootCmd{
		fs:      c.fs,
		client:  &fetchClient{Client: http.DefaultClient},
		headers: make(http.Header),
		geners:  new([]*generator),
		outDirs: new([]string),
	}

	cmd := &cobra.Command{
		Use:   "dsgen",
		Short: "A DataStore model metadata generator",
		Long: `dsgen generates DataStore model metadata modules from GraphQL schemas.

Generators are specified by using a *_out flag. The argument given to this
type of flag can be either:
	1) *_out=some/directory/to/output/file(s)/to
	2) *_out=comma=separated,key=val,generator=option,pairs=then:some/directory/to/output/file(s)/to

An additional flag, *_opt, can be used to pass options to a generator. The
argument given to this type of flag is the same format as the *_opt
key=value pairs above.`,
		Example: "dsgen -I . --model_out target=typescript:./src/models schema.graphql",
		PreRunE: chainPreRunEs(
			validateFilenames,
			initGenDirs(c.fs, rc.outDirs),
		),
		RunE: rc.run,
	}

	cmd.Flags().StringSliceP("import_path", "I", []string{"."}, `Specify the directory in which to search for
imports.  May be specified multiple times;
directories will be searched in order.  If not
given, the current working directory is used.`)
	cmd.Flags().BoolP("verbose", "v", false, "Output logging")
	cmd.Flags().String("config", "", "Specify a project config file (default "+defaultConfigFile+")")
	cmd.Flags().Var(&headerFlag{value: &rc.headers}, "header", "Headers to include when fetching remote schemas.")
	cmd.SetUsageTemplate(usageTmpl)

	for _, g := range c.gens {
		rc.registerGenerator(cmd.Flags(), g.g, g.name, g.opt, g.help)
	}
	rc.registerPluginFlags(cmd.Flags(), c.prefix, args)

	rc.baseCmd = &baseCmd{Command: cmd}
	return rc
}

// registerGenerator adds the *_out and *_opt flags for one generator. Both
// flags share one options map so it does not matter which one an option is
// given to.
func (c *rootCmd) registerGenerator(fs *pflag.FlagSet, g gen.Generator, name, opt, help string) {
	opts := make(map[string]interface{})
	fp := newFparser()

	fs.Var(genFlag{
		g:       g,
		opts:    opts,
		geners:  c.geners,
		outDirs: c.outDirs,
		fp:      fp,
	}, name, help)

	if opt != "" {
		fs.Var(genFlag{
			g:     g,
			opts:  opts,
			fp:    fp,
			isOpt: true,
		}, opt, "Pass additional options to the "+name+" generator.")
	}
}

// registerPluginFlags scans the raw args for unknown *_out flags and binds
// each one to a plugin generator looked up by prefix.
func (c *rootCmd) registerPluginFlags(fs *pflag.FlagSet, prefix string, args []string) {
	if prefix == "" {
		return
	}

	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			continue
		}

		name := strings.TrimPrefix(arg, "--")
		if i := strings.IndexByte(name, '='); i != -1 {
			name = name[:i]
		}
		if !strings.HasSuffix(name, "_out") || fs.Lookup(name) != nil {
			continue
		}

		g := &pluginGenerator{
			Name:   strings.TrimSuffix(name, "_out"),
			Prefix: prefix,
		}
		c.registerGenerator(fs, g, name, strings.TrimSuffix(name, "_out")+"_opt", "Run the "+g.Prefix+g.Name+" plugin.")
	}
}

func initLogger(verbose bool) {
	logger := zap.NewNop()
	if verbose {
		logger, _ = zap.NewDevelopment()
	}
	zap.ReplaceGlobals(logger)
}

func (c *rootCmd) run(cmd *cobra.Command, args []string) (err error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	initLogger(verbose)

	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(c.fs, cfgFile)
	if err != nil {
		return
	}

	files := cmd.Flags().Args()
	geners := *c.geners
	if cfg != nil {
		if len(files) == 0 {
			files = cfg.Schema
		}

		cfgGeners, cerr := c.configGenerators(cmd, cfg)
		if cerr != nil {
			return cerr
		}
		geners = append(geners, cfgGeners...)
	}

	if len(files) == 0 || len(geners) == 0 || cmd.Flags().Lookup("help").Changed {
		return cmd.Help()
	}

	importPaths, err := cmd.Flags().GetStringSlice("import_path")
	if err != nil {
		return
	}

	sources, err := c.loadSources(importPaths, files)
	if err != nil {
		return
	}

	s, err := schema.Load(sources...)
	if err != nil {
		return
	}

	ctx := context.Background()
	for _, g := range geners {
		gctx := gen.WithContext(ctx, &genCtx{fs: c.fs, dir: g.outDir})

		zap.L().Info("running generator", zap.String("dir", g.outDir))
		err = g.Generate(gctx, s, g.opts)
		if err != nil {
			return
		}
	}
	return
}

// loadSources reads each schema input, fetching remote URLs and resolving
// local names against the import paths.
func (c *rootCmd) loadSources(importPaths, files []string) ([]schema.Source, error) {
	sources := make([]schema.Source, 0, len(files))
	for _, filename := range files {
		if strings.HasPrefix(filename, "http://") || strings.HasPrefix(filename, "https://") {
			u, err := url.Parse(filename)
			if err != nil {
				return nil, err
			}

			rc, err := c.client.fetch(u, c.headers)
			if err != nil {
				return nil, err
			}

			b, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, err
			}

			sources = append(sources, schema.Source{
				Name:  filepath.Base(u.Path),
				Input: string(b),
			})
			continue
		}

		f, err := openFile(c.fs, importPaths, filename)
		if err != nil {
			return nil, err
		}

		b, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}

		sources = append(sources, schema.Source{
			Name:  filepath.Base(filename),
			Input: string(b),
		})
	}
	return sources, nil
}

// openFile is just a helper for opening files
func openFile(fs afero.Fs, importPaths []string, filename string) (f afero.File, err error) {
	// Check if filename if Abs
	var exists bool
	if !filepath.IsAbs(filename) {
		for _, iPath := range importPaths {
			fname := filepath.Join(iPath, filename)
			exists, err = afero.Exists(fs, fname)
			if err != nil {
				return
			}

			if exists {
				filename = fname
				break
			}
		}
	}

	f, err = fs.Open(filename)
	return
}
