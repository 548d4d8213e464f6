package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/prooflab/sigil/engine"
	"github.com/prooflab/sigil/fact"
	"github.com/prooflab/sigil/render"
	"github.com/prooflab/sigil/sig"
	"github.com/prooflab/sigil/theory"
)

func main() {
	var (
		sigFile     = flag.String("sig", "", "Path to an encoded pure signature file")
		configFile  = flag.String("config", "", "Path to sigtool config.toml")
		enginePath  = flag.String("engine", "", "Engine executable (overrides config)")
		insts       = flag.String("insts", "", "Unique-instance tags to add (Name/arity, comma-separated)")
		builtins    = flag.String("builtins", "", "Builtins to enable (comma-separated)")
		emitFile    = flag.String("emit", "", "Write the resulting pure signature to a file")
		promote     = flag.Bool("promote", false, "Promote against the engine and show the live rendering")
		verbose     = flag.Bool("v", false, "Verbose engine logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			engine.SetLogger(logger)
			defer logger.Sync()
		}
	}

	cfg := defaultToolConfig()
	if *configFile != "" {
		var err error
		cfg, err = loadToolConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *enginePath != "" {
		cfg.EnginePath = *enginePath
	}

	p, err := buildSignature(cfg, *sigFile, *insts, *builtins)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(cfg, p); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, p, *emitFile, *promote); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildSignature assembles the working pure signature from a file, the
// config theory, and command-line additions.
func buildSignature(cfg toolConfig, sigFile, insts, builtins string) (sig.Pure, error) {
	p := sig.Empty().WithTheory(cfg.Theory)

	if sigFile != "" {
		f, err := os.Open(sigFile)
		if err != nil {
			return sig.Pure{}, fmt.Errorf("open signature: %w", err)
		}
		defer f.Close()
		p, err = sig.DecodePure(f)
		if err != nil {
			return sig.Pure{}, fmt.Errorf("decode signature: %w", err)
		}
	}

	for _, s := range splitList(insts) {
		tag, err := fact.ParseTag(s)
		if err != nil {
			return sig.Pure{}, err
		}
		p = p.WithUniqueInst(tag)
	}
	th := p.Theory()
	for _, name := range splitList(builtins) {
		b, err := theory.ParseBuiltin(name)
		if err != nil {
			return sig.Pure{}, err
		}
		th = th.WithBuiltins(b)
	}
	return p.WithTheory(th), nil
}

func run(cfg toolConfig, p sig.Pure, emitFile string, promote bool) error {
	ctx := context.Background()

	if emitFile != "" {
		f, err := os.Create(emitFile)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		if err := p.Encode(f); err != nil {
			f.Close()
			return fmt.Errorf("encode signature: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("Wrote signature to %s\n", emitFile)
	}

	if !promote {
		printDoc(p.Render())
		return nil
	}

	if cfg.EnginePath == "" {
		return fmt.Errorf("promotion needs an engine path (-engine or config engine_path)")
	}

	eng := engine.NewWithConfig(&engine.Config{ExtraArgs: cfg.EngineArgs})
	tracker := engine.NewTracker()
	defer tracker.ShutdownAll(ctx)

	live, err := sig.Promote(ctx, eng.Spawner(), cfg.EnginePath, p)
	if err != nil {
		return fmt.Errorf("promote: %w", err)
	}
	if h, ok := live.Handle().(*engine.Handle); ok {
		tracker.Track(h)
	}

	doc, err := live.Render(ctx)
	if err != nil {
		return fmt.Errorf("render live signature: %w", err)
	}
	printDoc(doc)
	return nil
}

func printDoc(d render.Doc) {
	if d.IsEmpty() {
		return
	}
	fmt.Println(d.Render(toolStyles()))
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
