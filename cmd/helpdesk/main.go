package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jeanpaul/helpdesk/internal/catalog"
	"github.com/jeanpaul/helpdesk/internal/config"
	"github.com/jeanpaul/helpdesk/internal/knowledge"
	"github.com/jeanpaul/helpdesk/internal/matcher"
	"github.com/jeanpaul/helpdesk/internal/session"
	"github.com/jeanpaul/helpdesk/internal/spreadsheet"
	"github.com/jeanpaul/helpdesk/internal/tui"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configFlag := flag.String("config", "", "Path to config.yaml")
	kbFlag := flag.String("kb", "", "Knowledge base file (default knowledge_base.json)")
	responsesFlag := flag.String("responses", "", "Response catalog file (default responses.json)")
	transcriptFlag := flag.Bool("transcript", false, "Save a transcript of the session")
	noColorFlag := flag.Bool("no-color", false, "Disable colored output")
	versionFlag := flag.Bool("version", false, "Print version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("helpdesk %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatal("config error: %s", err)
	}
	if *kbFlag != "" {
		cfg.KnowledgeBase = *kbFlag
	}
	if *responsesFlag != "" {
		cfg.Responses = *responsesFlag
	}
	if *transcriptFlag {
		cfg.Transcript.Enabled = true
	}
	if *noColorFlag {
		cfg.Color = false
	}
	if err := cfg.Validate(); err != nil {
		fatal("%s", err)
	}
	tui.SetColor(cfg.Color)

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "ask":
			if len(args) < 2 {
				fatal("usage: helpdesk ask <question>")
			}
			os.Exit(cmdAsk(cfg, strings.Join(args[1:], " ")))
		case "questions":
			cmdQuestions(cfg)
			return
		case "import":
			if len(args) < 2 {
				fatal("usage: helpdesk import <file.xlsx>")
			}
			cmdImport(cfg, args[1])
			return
		case "export":
			if len(args) < 2 {
				fatal("usage: helpdesk export <file.xlsx>")
			}
			cmdExport(cfg, args[1])
			return
		case "doctor":
			os.Exit(cmdDoctor(cfg, *configFlag))
		case "init":
			cmdInit(cfg, *configFlag)
			return
		case "help":
			showHelp()
			return
		default:
			fatal("unknown command %q (see helpdesk help)", args[0])
		}
	}

	if err := runSession(cfg); err != nil {
		fatal("%s", err)
	}
}

func runSession(cfg *config.Config) error {
	cat, err := catalog.Load(cfg.Responses, warnWriter{os.Stdout})
	if err != nil {
		return err
	}

	fmt.Print(tui.Banner())

	base, err := knowledge.Load(cfg.KnowledgeBase, warnWriter{os.Stdout})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := []session.Option{session.WithPrompt(cfg.Prompt)}
	var transcript *session.Transcript
	if cfg.Transcript.Enabled {
		transcript = session.NewTranscript()
		opts = append(opts, session.WithTranscript(transcript))
	}

	sess := session.New(base, cfg.KnowledgeBase, cat, os.Stdin, os.Stdout, opts...)
	runErr := sess.Run(ctx)
	if errors.Is(runErr, context.Canceled) {
		fmt.Println()
		runErr = nil
	}

	if transcript != nil && transcript.Len() > 0 {
		path, err := transcript.Save(cfg.Transcript.Dir)
		if err != nil {
			fmt.Fprintln(os.Stderr, tui.WarnStyle.Render("could not save transcript: "+err.Error()))
		} else {
			fmt.Fprintln(os.Stderr, tui.HelpStyle.Render("Transcript saved to "+path))
		}
	}
	return runErr
}

// cmdAsk answers a single question without learning. It returns the exit
// code: 0 when answered, 1 otherwise.
func cmdAsk(cfg *config.Config, question string) int {
	base, err := knowledge.Load(cfg.KnowledgeBase, warnWriter{os.Stderr})
	if err != nil {
		fatal("%s", err)
	}
	answer, matched, ok := session.Ask(base, question)
	if !ok {
		fmt.Fprintln(os.Stderr, tui.WarnStyle.Render("I don't know the answer."))
		return 1
	}
	fmt.Printf("%s %s\n", tui.BotLabelStyle.Render("Bot:"), answer)
	if matched != question {
		fmt.Fprintln(os.Stderr, tui.HelpStyle.Render(fmt.Sprintf("matched %q (score %.2f)", matched, matcher.Score(matched, question))))
	}
	return 0
}

func cmdQuestions(cfg *config.Config) {
	base, err := knowledge.Load(cfg.KnowledgeBase, warnWriter{os.Stderr})
	if err != nil {
		fatal("%s", err)
	}
	fmt.Println(tui.BannerStyle.Render(fmt.Sprintf("  Known questions (%d)", base.Len())))
	fmt.Println()
	for i, r := range base.Records {
		fmt.Printf("  %s %s\n", tui.HelpStyle.Render(fmt.Sprintf("%3d.", i+1)), tui.UserLabelStyle.Render(r.Question))
		fmt.Printf("       %s\n", r.Answer)
	}
}

func cmdImport(cfg *config.Config, path string) {
	records, err := spreadsheet.Import(path)
	if err != nil {
		fatal("import failed: %s", err)
	}
	base, err := knowledge.Load(cfg.KnowledgeBase, warnWriter{os.Stderr})
	if err != nil {
		fatal("%s", err)
	}
	if err := base.Add(cfg.KnowledgeBase, records...); err != nil {
		fatal("import failed: %s", err)
	}
	fmt.Println(tui.OKStyle.Render(fmt.Sprintf("  ✓ Imported %d questions into %s", len(records), cfg.KnowledgeBase)))
}

func cmdExport(cfg *config.Config, path string) {
	base, err := knowledge.Read(cfg.KnowledgeBase)
	if err != nil {
		fatal("export failed: %s", err)
	}
	if err := spreadsheet.Export(path, base.Records); err != nil {
		fatal("export failed: %s", err)
	}
	fmt.Println(tui.OKStyle.Render(fmt.Sprintf("  ✓ Exported %d questions to %s", base.Len(), path)))
}

// cmdDoctor checks the configured files without modifying them and returns
// the exit code.
func cmdDoctor(cfg *config.Config, configFile string) int {
	fmt.Println(tui.BannerStyle.Render("  Helpdesk Health Check"))
	fmt.Println()
	problems := 0

	check := func(label string) {
		fmt.Printf("  %s %s ... ", tui.HelpStyle.Render("●"), tui.UserLabelStyle.Render(label))
	}

	check("config")
	switch {
	case configFile != "":
		fmt.Println(tui.OKStyle.Render("✓ " + configFile))
	case fileExists("config.yaml"):
		fmt.Println(tui.OKStyle.Render("✓ config.yaml"))
	case fileExists(config.Path()):
		fmt.Println(tui.OKStyle.Render("✓ " + config.Path()))
	default:
		fmt.Println(tui.HelpStyle.Render("- Not found, using defaults (run 'helpdesk init')"))
	}

	check("knowledge base")
	if base, err := knowledge.Read(cfg.KnowledgeBase); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Println(tui.HelpStyle.Render("- " + cfg.KnowledgeBase + " not found (created on first run)"))
		} else {
			problems++
			fmt.Println(tui.ErrorStyle.Render("✗ " + err.Error()))
		}
	} else {
		fmt.Println(tui.OKStyle.Render(fmt.Sprintf("✓ %s (%d questions)", cfg.KnowledgeBase, base.Len())))
	}

	check("responses")
	if cat, err := catalog.Read(cfg.Responses); err != nil {
		problems++
		fmt.Println(tui.ErrorStyle.Render("✗ " + err.Error()))
	} else if missing := 6 - len(cat.Sections()); missing > 0 {
		problems++
		fmt.Println(tui.WarnStyle.Render(fmt.Sprintf("⚠ %s is missing %d of 6 sections", cfg.Responses, missing)))
	} else {
		fmt.Println(tui.OKStyle.Render("✓ " + cfg.Responses))
	}

	fmt.Println()
	if problems > 0 {
		fmt.Println(tui.ErrorStyle.Render(fmt.Sprintf("  %d problem(s) found", problems)))
		return 1
	}
	fmt.Println(tui.OKStyle.Render("  All checks passed"))
	return 0
}

func cmdInit(cfg *config.Config, configFile string) {
	path := configFile
	if path == "" {
		path = config.Path()
	}
	if fileExists(path) {
		fatal("%s already exists", path)
	}
	if err := cfg.Save(path); err != nil {
		fatal("could not write config: %s", err)
	}
	fmt.Println(tui.OKStyle.Render("  ✓ Wrote " + path))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// warnWriter styles load warnings before they reach the terminal.
type warnWriter struct {
	w io.Writer
}

func (ww warnWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	if _, err := fmt.Fprintln(ww.w, tui.WarnStyle.Render(msg)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("error: "+msg))
	os.Exit(1)
}

func showHelp() {
	help := `
` + tui.BannerStyle.Render("Helpdesk") + ` - FAQ responder that learns new answers

` + tui.UserLabelStyle.Render("USAGE:") + `
  helpdesk [flags]              Start an interactive session
  helpdesk <command> [args]     Run a command

` + tui.UserLabelStyle.Render("COMMANDS:") + `
  ask <question>                Answer one question and exit
  questions                     List known questions and answers
  import <file.xlsx>            Add question/answer rows from a spreadsheet
  export <file.xlsx>            Write the knowledge base to a spreadsheet
  doctor                        Check the config, knowledge base and responses
  init                          Write a default config file
  help                          Show this help

` + tui.UserLabelStyle.Render("FLAGS:") + `
  --config <path>               Use a specific config file
  --kb <path>                   Knowledge base file
  --responses <path>            Response catalog file
  --transcript                  Save a transcript when the session ends
  --no-color                    Disable colored output
  --version                     Show version
  --help, -h                    Show this help

` + tui.UserLabelStyle.Render("IN A SESSION:") + `
  1-6                           Show a menu section
  quit                          Leave the session
  skip                          Decline to teach an unknown question
`
	fmt.Print(help)
}
