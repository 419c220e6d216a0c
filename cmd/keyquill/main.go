// Package main provides the CLI entrypoint for keyquill.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/keyquill/internal/config"
	"github.com/verte-zerg/keyquill/internal/game"
	"github.com/verte-zerg/keyquill/internal/generator"
	"github.com/verte-zerg/keyquill/internal/lesson"
	"github.com/verte-zerg/keyquill/internal/logger"
	"github.com/verte-zerg/keyquill/internal/model"
	"github.com/verte-zerg/keyquill/internal/session"
	"github.com/verte-zerg/keyquill/internal/store"
	"github.com/verte-zerg/keyquill/internal/tui"
	"github.com/verte-zerg/keyquill/internal/wordlist"
)

const (
	defaultLang        = "english"
	defaultWPM         = "correct"
	defaultTimer       = "first-key"
	defaultAutoAdvance = "2s"
	defaultDuration    = "30s"
	defaultBatch       = game.DefaultBatch
	defaultCaps        = 0.0
	defaultPunct       = 0.0
	defaultWeakTop     = 8
	defaultWeakFactor  = 2.0
	defaultLogLevel    = "info"
)

const defaultPunctSet = ".,!?;:"

var (
	practiceLang        string
	practiceLesson      string
	practiceAutoStart   bool
	practiceWPM         string
	practiceTimer       string
	practiceAutoAdvance string

	gameDuration   string
	gameBatch      int
	gameCaps       float64
	gamePunct      float64
	gamePunctSet   string
	gameWordsFile  string
	gameFocusWeak  bool
	gameWeakTop    int
	gameWeakFactor float64

	logLevel string
	logFile  string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keyquill",
		Short:         "Terminal touch-typing tutor",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&practiceLang, "lang", defaultLang, "lesson language (english|hindi)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path (default: XDG state dir)")

	rootCmd.Flags().StringVar(&practiceLesson, "lesson", "", "lesson id to select on start")
	rootCmd.Flags().BoolVar(&practiceAutoStart, "auto-start", false, "start the first lesson when none is selected")
	rootCmd.Flags().StringVar(&practiceWPM, "wpm", defaultWPM, "characters counted for WPM (correct|raw)")
	rootCmd.Flags().StringVar(&practiceTimer, "timer", defaultTimer, "when the clock starts (first-key|start)")
	rootCmd.Flags().StringVar(&practiceAutoAdvance, "auto-advance", defaultAutoAdvance, "delay before moving to the next lesson, 0s disables")

	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newLessonsCmd())
	rootCmd.AddCommand(newKeysCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	opts, err := appOptions(cmd, tui.ScreenPractice)
	if err != nil {
		return err
	}
	log, closeLog := setupLogger()
	defer closeLog()
	opts.Logger = log
	log.Info("practice started", "lang", string(opts.Engine.Language()), "lesson", practiceLesson)
	return runApp(opts)
}

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Play the timed word game",
		Args:  cobra.NoArgs,
		RunE:  runGameCmd,
	}
	cmd.Flags().StringVar(&gameDuration, "duration", defaultDuration, "round length")
	cmd.Flags().IntVar(&gameBatch, "batch", defaultBatch, "words generated when a round starts")
	cmd.Flags().Float64Var(&gameCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	cmd.Flags().Float64Var(&gamePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	cmd.Flags().StringVar(&gamePunctSet, "punct-set", defaultPunctSet, "punctuation set")
	cmd.Flags().StringVar(&gameWordsFile, "words-file", "", "word list file, one word per line (default: built-in list)")
	cmd.Flags().BoolVar(&gameFocusWeak, "focus-weak", false, "bias words toward weak keys from this session's history")
	cmd.Flags().IntVar(&gameWeakTop, "weak-top", defaultWeakTop, "number of weak keys to focus on")
	cmd.Flags().Float64Var(&gameWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak keys")
	return cmd
}

func runGameCmd(cmd *cobra.Command, _ []string) error {
	opts, err := appOptions(cmd, tui.ScreenGame)
	if err != nil {
		return err
	}
	lang := opts.Engine.Language()
	if _, err := loadGameWords(opts.GameConfig.WordsFile, lang); err != nil {
		return err
	}

	log, closeLog := setupLogger()
	defer closeLog()
	opts.Logger = log
	log.Info("game mode", "lang", string(lang), "words", len(opts.GameWords[lang]), "duration", opts.GameConfig.Duration.String())
	return runApp(opts)
}

// appOptions overlays the config file on unchanged flags and builds the
// TUI options. Practice and game share it so either entry point reaches
// both screens with the same settings.
func appOptions(cmd *cobra.Command, screen tui.Screen) (tui.Options, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return tui.Options{}, errors.Wrap(err, "failed to load config")
	}
	applyPracticeConfig(cmd, fileCfg.Practice)
	applyGameConfig(cmd, fileCfg.Game)
	applyLogConfig(cmd, fileCfg.Log)
	return buildAppOptions(screen)
}

func buildAppOptions(screen tui.Screen) (tui.Options, error) {
	cfg, err := buildPracticeConfig()
	if err != nil {
		return tui.Options{}, err
	}
	engineOpts, err := engineOptions(cfg)
	if err != nil {
		return tui.Options{}, err
	}
	gcfg, err := buildGameConfig()
	if err != nil {
		return tui.Options{}, err
	}
	words, err := gameWordSets(gcfg.WordsFile)
	if err != nil {
		return tui.Options{}, err
	}

	engine := session.New(engineOpts)
	if cfg.Lesson != "" && !engine.SelectLesson(cfg.Lesson) {
		return tui.Options{}, errors.Newf("unknown lesson %q for language %s (see: keyquill lessons --lang %s)", cfg.Lesson, cfg.Lang, cfg.Lang)
	}
	return tui.Options{
		Engine:      engine,
		AutoAdvance: cfg.AutoAdvance,
		Game:        gameOptions(gcfg),
		GameWords:   words,
		GameConfig:  gcfg,
		Screen:      screen,
	}, nil
}

func gameOptions(gcfg model.GameConfig) game.Options {
	return game.Options{
		Duration:  gcfg.Duration,
		Batch:     gcfg.Batch,
		Generator: generator.New(),
		Style: generator.Style{
			Caps:     gcfg.CapsPct,
			Punct:    gcfg.PunctPct,
			PunctSet: generator.ParsePunctSet(gcfg.PunctSet),
		},
		WeakFactor: gcfg.WeakFactor,
	}
}

func runApp(opts tui.Options) error {
	st, err := store.OpenMemory()
	if err != nil {
		return errors.Wrap(err, "failed to open history store")
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			opts.Logger.Warn("closing history store", "error", cerr)
		}
	}()
	opts.Store = st

	program := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return errors.Wrap(err, "failed to run TUI")
	}
	return nil
}

// gameWordSets returns the game words per language. Without a file only
// English has the built-in list; with one, each language keeps the words
// written in its script and languages with none are left out.
func gameWordSets(path string) (map[lesson.Language][]string, error) {
	if path == "" {
		return map[lesson.Language][]string{lesson.English: wordlist.Common()}, nil
	}
	words, err := wordlist.LoadWords(path)
	if err != nil {
		return nil, err
	}
	sets := map[lesson.Language][]string{}
	for _, lang := range lesson.Languages() {
		if kept := wordlist.Filter(words, wordlist.FilterForLang(string(lang))); len(kept) > 0 {
			sets[lang] = kept
		}
	}
	return sets, nil
}

func loadGameWords(path string, lang lesson.Language) ([]string, error) {
	sets, err := gameWordSets(path)
	if err != nil {
		return nil, err
	}
	if words := sets[lang]; len(words) > 0 {
		return words, nil
	}
	if path == "" {
		return nil, errors.Newf("the built-in word list is English; pass --words-file for %s", lang.Label())
	}
	return nil, errors.Newf("word list %s has no %s words", path, lang.Label())
}

func setupLogger() (*slog.Logger, func()) {
	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		logErrf("%v; using info\n", err)
	}
	path := logFile
	if path == "" {
		path = config.DefaultLogPath()
	}
	log, closer, err := logger.Open(path, level)
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		return logger.Discard(), func() {}
	}
	return log, func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return errors.New("editor command is empty")
	}
	//nolint:gosec // the editor comes from the user's own environment
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "failed to open editor")
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrap(err, "failed to stat config")
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return errors.Wrap(err, "failed to write config")
		}
	}
	return nil
}

func applyPracticeConfig(cmd *cobra.Command, p config.PracticeConfig) {
	applyStringConfig(cmd, "lang", &practiceLang, p.Lang)
	applyStringConfig(cmd, "lesson", &practiceLesson, p.Lesson)
	applyBoolConfig(cmd, "auto-start", &practiceAutoStart, p.AutoStart)
	applyStringConfig(cmd, "wpm", &practiceWPM, p.WPM)
	applyStringConfig(cmd, "timer", &practiceTimer, p.Timer)
	applyStringConfig(cmd, "auto-advance", &practiceAutoAdvance, p.AutoAdvance)
}

func applyGameConfig(cmd *cobra.Command, g config.GameConfig) {
	applyStringConfig(cmd, "duration", &gameDuration, g.Duration)
	applyIntConfig(cmd, "batch", &gameBatch, g.Batch)
	applyFloatConfig(cmd, "caps", &gameCaps, g.CapsPct)
	applyFloatConfig(cmd, "punct", &gamePunct, g.PunctPct)
	applyStringConfig(cmd, "punct-set", &gamePunctSet, g.PunctSet)
	applyStringConfig(cmd, "words-file", &gameWordsFile, g.WordsFile)
	applyBoolConfig(cmd, "focus-weak", &gameFocusWeak, g.FocusWeak)
	applyIntConfig(cmd, "weak-top", &gameWeakTop, g.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &gameWeakFactor, g.WeakFactor)
}

func applyLogConfig(cmd *cobra.Command, l config.LogConfig) {
	applyStringConfig(cmd, "log-level", &logLevel, l.Level)
	applyStringConfig(cmd, "log-file", &logFile, l.File)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func buildPracticeConfig() (model.Config, error) {
	advance, err := time.ParseDuration(practiceAutoAdvance)
	if err != nil {
		return model.Config{}, errors.Wrapf(err, "invalid --auto-advance value %q", practiceAutoAdvance)
	}
	cfg := model.Config{
		Lang:        practiceLang,
		Lesson:      strings.TrimSpace(practiceLesson),
		AutoStart:   practiceAutoStart,
		WPM:         practiceWPM,
		Timer:       practiceTimer,
		AutoAdvance: advance,
	}
	if cfg.AutoAdvance < 0 {
		return model.Config{}, errors.New("--auto-advance must be >= 0")
	}
	return cfg, nil
}

func engineOptions(cfg model.Config) (session.Options, error) {
	lang, ok := lesson.ParseLanguage(cfg.Lang)
	if !ok {
		return session.Options{}, errors.Newf("--lang must be english or hindi, got %q", cfg.Lang)
	}
	opts := session.Options{
		Catalog:   lesson.Default(),
		Language:  lang,
		AutoStart: cfg.AutoStart,
	}
	switch strings.ToLower(cfg.WPM) {
	case "correct":
		opts.WPM = session.WPMCorrectChars
	case "raw":
		opts.WPM = session.WPMRawChars
	default:
		return session.Options{}, errors.Newf("--wpm must be correct or raw, got %q", cfg.WPM)
	}
	switch strings.ToLower(cfg.Timer) {
	case "first-key":
		opts.Timer = session.TimerOnFirstKey
	case "start":
		opts.Timer = session.TimerOnStart
	default:
		return session.Options{}, errors.Newf("--timer must be first-key or start, got %q", cfg.Timer)
	}
	return opts, nil
}

func buildGameConfig() (model.GameConfig, error) {
	duration, err := time.ParseDuration(gameDuration)
	if err != nil {
		return model.GameConfig{}, errors.Wrapf(err, "invalid --duration value %q", gameDuration)
	}
	cfg := model.GameConfig{
		Duration:   duration,
		Batch:      gameBatch,
		CapsPct:    gameCaps,
		PunctPct:   gamePunct,
		PunctSet:   gamePunctSet,
		WordsFile:  gameWordsFile,
		FocusWeak:  gameFocusWeak,
		WeakTop:    gameWeakTop,
		WeakFactor: gameWeakFactor,
	}
	if err := validateGameConfig(cfg); err != nil {
		return model.GameConfig{}, err
	}
	return cfg, nil
}

func validateGameConfig(cfg model.GameConfig) error {
	if cfg.Duration <= 0 {
		return errors.New("--duration must be > 0")
	}
	if cfg.Batch <= 0 {
		return errors.New("--batch must be > 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return errors.New("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return errors.New("--punct must be between 0 and 1")
	}
	if cfg.PunctPct > 0 && strings.TrimSpace(cfg.PunctSet) == "" {
		return errors.New("--punct-set must not be empty")
	}
	if cfg.WeakTop < 0 {
		return errors.New("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return errors.New("--weak-factor must be >= 0")
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# keyquill configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = %q          # english or hindi
# lesson = "home-row"      # Lesson selected on start
# auto-start = false       # Enter with no lesson starts the first one
# wpm = %q            # correct or raw characters count toward WPM
# timer = %q        # first-key or start
# auto-advance = %q        # Delay before the next lesson, "0s" disables

[game]
# duration = %q           # Round length
# batch = %d               # Words generated when a round starts
# caps = %.2f              # Probability of capitalized first letter (0-1)
# punct = %.2f             # Punctuation probability per word (0-1)
# punct-set = %q       # Punctuation set
# words-file = ""          # One word per line, default is the built-in list
# focus-weak = false       # Bias words toward weak keys
# weak-top = %d             # Number of weak keys to focus on
# weak-factor = %.1f       # Weight factor for weak keys

[log]
# level = %q           # debug, info, warn or error
# file = ""                # Default: $XDG_STATE_HOME/keyquill/keyquill.log
`,
		defaultLang,
		defaultWPM,
		defaultTimer,
		defaultAutoAdvance,
		defaultDuration,
		defaultBatch,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		defaultWeakTop,
		defaultWeakFactor,
		defaultLogLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
