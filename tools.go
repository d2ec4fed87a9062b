package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"

	"frankentokens/icons"
	"frankentokens/storage"
	"frankentokens/theme"
)

var daisyCmd = &cobra.Command{
	Use:   "daisy",
	Short: "Extract DaisyUI theme variables",
	Args:  cobra.NoArgs,
	RunE:  runDaisy,
}

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Write FrankenUI, DaisyUI and Tailwind tokens as one bundle",
	Args:  cobra.NoArgs,
	RunE:  runCombine,
}

var classesCmd = &cobra.Command{
	Use:   "classes [css]",
	Short: "List the utility classes a stylesheet defines",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClasses,
}

var iconsCmd = &cobra.Command{
	Use:   "icons <in> [out]",
	Short: "Rescale FrankenUI icons in an HTML document to their configured size",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runIcons,
}

func init() {
	rootCmd.AddCommand(daisyCmd, combineCmd, classesCmd, iconsCmd)
}

func runDaisy(cmd *cobra.Command, args []string) error {
	set, err := theme.LoadDaisyThemes(cfg.DaisyDir, cfg.DaisyThemes)
	if err != nil {
		return err
	}
	logger.Debug().Str("dir", cfg.DaisyDir).Int("themes", set.Len()).Msg("loaded daisyui themes")

	path, err := storage.New(cfg.OutputDir).WriteJSON(cfg.DaisyOut, set)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runCombine(cmd *cobra.Command, args []string) error {
	css, err := os.ReadFile(cfg.CSSPath)
	if err != nil {
		return err
	}
	franken := theme.NewExtractor(extractorOptions()).Extract(string(css))

	daisy, err := theme.LoadDaisyThemes(cfg.DaisyDir, cfg.DaisyThemes)
	if err != nil {
		return err
	}

	path, err := storage.New(cfg.OutputDir).WriteJSON(cfg.BundleOut, theme.NewBundle(franken, daisy))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runClasses(cmd *cobra.Command, args []string) error {
	src := cfg.ClassesCSS
	if len(args) == 1 {
		src = args[0]
	}
	css, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	names := theme.ClassNames(string(css))
	logger.Debug().Str("path", src).Int("classes", len(names)).Msg("collected classes")

	path, err := storage.New(cfg.OutputDir).WriteText(cfg.ClassesOut, strings.Join(names, "\n"))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runIcons(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	n := icons.NewNormalizer(logger).Attach(doc, nil)
	logger.Info().Int("icons", n).Msg("normalized icons")

	html, err := doc.Html()
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	if len(args) < 2 {
		_, err := fmt.Fprint(cmd.OutOrStdout(), html)
		return err
	}
	path, err := storage.New(cfg.OutputDir).WriteText(args[1], html)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
