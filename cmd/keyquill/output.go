package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/keyquill/internal/config"
	"github.com/verte-zerg/keyquill/internal/keymap"
	"github.com/verte-zerg/keyquill/internal/lesson"
)

func newLessonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lessons",
		Short: "List lessons for a language",
		Args:  cobra.NoArgs,
		RunE:  runLessonsCmd,
	}
}

func runLessonsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	applyStringConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)
	lang, ok := lesson.ParseLanguage(practiceLang)
	if !ok {
		return errors.Newf("--lang must be english or hindi, got %q", practiceLang)
	}
	out := renderLessons(lesson.Default(), lang, stdoutIsTerminal())
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
		return errors.Wrap(err, "failed to write output")
	}
	return nil
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <text>",
		Short: "Show the key and finger for each character",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runKeysCmd,
	}
}

func runKeysCmd(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	out := renderKeys(text, stdoutIsTerminal())
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
		return errors.Wrap(err, "failed to write output")
	}
	return nil
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func newTable(buf *bytes.Buffer, fancy bool) *tablewriter.Table {
	style := tw.StyleASCII
	if fancy {
		style = tw.StyleRounded
	}
	return tablewriter.NewTable(buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(style),
		})),
		tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
	)
}

func renderLessons(c *lesson.Catalog, lang lesson.Language, fancy bool) string {
	var buf bytes.Buffer
	t := newTable(&buf, fancy)
	t.Header([]string{"ID", "Title", "Category", "Difficulty", "Chars"})
	for _, l := range c.FilterByLanguage(lang) {
		_ = t.Append([]string{
			l.ID,
			l.Title,
			l.Category,
			l.Difficulty.Label(),
			fmt.Sprintf("%d", len([]rune(l.Content))),
		})
	}
	_ = t.Render()
	return strings.TrimRight(buf.String(), "\n")
}

func renderKeys(text string, fancy bool) string {
	var buf bytes.Buffer
	t := newTable(&buf, fancy)
	t.Header([]string{"Char", "Key", "Hand", "Finger", "Shift"})
	for _, r := range text {
		char := string(r)
		if r == ' ' {
			char = "<space>"
		}
		key, ok := keymap.KeyFor(r)
		if !ok {
			_ = t.Append([]string{char, "?", "-", "-", "-"})
			continue
		}
		p, _ := keymap.FingerFor(r)
		shift := "no"
		if keymap.NeedsShift(r) {
			shift = "yes"
		}
		_ = t.Append([]string{char, key, string(p.Hand), p.Finger.String(), shift})
	}
	_ = t.Render()
	return strings.TrimRight(buf.String(), "\n")
}
