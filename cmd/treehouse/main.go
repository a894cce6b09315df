package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prabhatexit0/treehouse/pkg/analysis"
	"github.com/prabhatexit0/treehouse/pkg/config"
	"github.com/prabhatexit0/treehouse/pkg/export"
	"github.com/prabhatexit0/treehouse/pkg/lang"
	"github.com/prabhatexit0/treehouse/pkg/layout"
	"github.com/prabhatexit0/treehouse/pkg/measure"
	"github.com/prabhatexit0/treehouse/pkg/model"
	"github.com/prabhatexit0/treehouse/pkg/ui"
)

const version = "0.3.0"

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	langFlag := flag.String("lang", "", "Override language detection (go, javascript, typescript, python, rust)")
	fromJSON := flag.Bool("from-json", false, "Treat the input file as a parse-result JSON envelope instead of source code")
	jsonOut := flag.Bool("json", false, "Print the parse result as JSON and exit")
	statsOut := flag.Bool("stats", false, "Print tree statistics and exit")
	pngOut := flag.String("png", "", "Export the tree as a PNG to the given path and exit")
	svgOut := flag.String("svg", "", "Export the tree as an SVG to the given path and exit")
	depth := flag.Int("depth", -1, "Initial expansion depth (default from config)")
	watch := flag.Bool("watch", false, "Re-parse when the file changes (TUI and export modes)")
	configPath := flag.String("config", "", "Path to a .treehouse.yaml config file (default: discovered upward from the input file)")
	flag.Parse()

	if *help {
		fmt.Println("Usage: treehouse [options] <file>")
		fmt.Println("\nAn interactive syntax tree viewer.")
		fmt.Println("With no export flags it opens a TUI; drag to pan, wheel to zoom,")
		fmt.Println("click nodes to expand and collapse. Exports render the fully")
		fmt.Println("expanded tree.")
		flag.PrintDefaults()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Printf("treehouse %s\n", version)
		os.Exit(0)
	}

	file := flag.Arg(0)
	if file == "" {
		fmt.Fprintln(os.Stderr, "Error: no input file (try --help)")
		os.Exit(1)
	}

	cfg := loadConfig(*configPath, file)
	if *depth >= 0 {
		cfg.ExpandDepth = *depth
	}

	root, language, err := loadTree(file, *langFlag, *fromJSON)

	if *jsonOut {
		res := lang.ParseResult{Success: err == nil, AST: root, Language: language}
		if err != nil {
			res.Error = err.Error()
		}
		if derr := lang.DumpResult(os.Stdout, res); derr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", derr)
			os.Exit(1)
		}
		if err != nil {
			os.Exit(1)
		}
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *statsOut {
		printStats(root, language)
		return
	}

	if *pngOut != "" || *svgOut != "" {
		runExport(file, *langFlag, *fromJSON, root, cfg, *pngOut, *svgOut, *watch)
		return
	}

	runTUI(file, *langFlag, *fromJSON, root, language, cfg, *watch)
}

func loadConfig(explicit, file string) config.Options {
	if explicit != "" {
		cfg, err := config.Load(explicit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		return cfg
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return config.Defaults()
	}
	cfg, _ := config.Discover(filepath.Dir(abs))
	return cfg
}

// loadTree reads and parses the input: either a source file run through
// tree-sitter, or a pre-parsed JSON envelope.
func loadTree(file, langOverride string, fromJSON bool) (*model.SourceNode, string, error) {
	if fromJSON {
		f, err := os.Open(file)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		return lang.LoadResult(f)
	}

	language := langOverride
	if language == "" {
		detected, ok := lang.DetectLanguage(file)
		if !ok {
			return nil, "", fmt.Errorf("cannot detect language of %s (use --lang; supported: %s)",
				file, strings.Join(lang.Supported(), ", "))
		}
		language = detected
	}

	code, err := os.ReadFile(file)
	if err != nil {
		return nil, language, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	root, err := lang.Parse(ctx, code, language)
	return root, language, err
}

func printStats(root *model.SourceNode, language string) {
	s := analysis.Compute(root)
	fmt.Printf("language: %s\n", language)
	fmt.Println(s.Summary())
	fmt.Println("top kinds:")
	for _, k := range s.TopKinds(10) {
		fmt.Printf("  %-30s %d\n", k, s.KindCount[k])
	}
}

// runExport writes PNG and/or SVG snapshots of the fully expanded tree, and
// in watch mode keeps them current as the file changes.
func runExport(file, langOverride string, fromJSON bool, root *model.SourceNode, cfg config.Options, pngPath, svgPath string, watch bool) {
	doExport := func(root *model.SourceNode) error {
		tree, ms, err := exportLayout(root, cfg)
		if err != nil {
			return err
		}
		opts := export.Options{Padding: cfg.FitPadding}
		if pngPath != "" {
			if err := export.PNG(tree, ms, opts, pngPath); err != nil {
				return err
			}
		}
		if svgPath != "" {
			f, err := os.Create(svgPath)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := export.SVG(tree, ms, opts, f); err != nil {
				return err
			}
		}
		return nil
	}

	if err := doExport(root); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !watch {
		return
	}

	debounce := time.Duration(cfg.DebounceMS) * time.Millisecond
	w, err := export.Watch(file, debounce, func() {
		root, _, err := loadTree(file, langOverride, fromJSON)
		if err != nil {
			log.Printf("warning: reparse %s: %v", file, err)
			return
		}
		if err := doExport(root); err != nil {
			log.Printf("warning: export: %v", err)
			return
		}
		log.Printf("exported %s", file)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer w.Stop()

	log.Printf("watching %s (ctrl+c to stop)", file)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
}

// exportLayout lays out the fully expanded tree with the configured metrics.
func exportLayout(root *model.SourceNode, cfg config.Options) (*layout.Tree, *measure.Measurer, error) {
	m := measure.DefaultMetrics()
	m.FontSize = cfg.FontSize
	m.NodeHeight = cfg.NodeHeight
	m.MinWidth = cfg.MinWidth
	m.TruncateLen = cfg.TruncateLen
	ms, err := measure.NewMeasurer(m)
	if err != nil {
		return nil, nil, err
	}
	tree := layout.Build(root, model.ExpandAll(root), ms, layout.Options{HGap: cfg.HGap, VGap: cfg.VGap})
	return tree, ms, nil
}

func runTUI(file, langOverride string, fromJSON bool, root *model.SourceNode, language string, cfg config.Options, watch bool) {
	session, err := ui.NewSession(root, language, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(ui.NewModel(session, filepath.Base(file)),
		tea.WithAltScreen(), tea.WithMouseCellMotion())

	var w *export.Watcher
	if watch {
		debounce := time.Duration(cfg.DebounceMS) * time.Millisecond
		w, err = export.Watch(file, debounce, func() {
			root, language, err := loadTree(file, langOverride, fromJSON)
			if err != nil {
				return
			}
			p.Send(ui.SourceReloadedMsg{Root: root, Language: language})
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: watch disabled: %v\n", err)
		}
	}
	if w != nil {
		defer w.Stop()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
