package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/deepnoodle-ai/chainexpr"
	"github.com/deepnoodle-ai/chainexpr/object"
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	flagCode             string
	flagStdin            bool
	flagOutput           string
	flagNoColor          bool
	flagNoDefaultGlobals bool
	flagLogLevel         string
)

var rootCmd = &cobra.Command{
	Use:   "chainexpr [file...]",
	Short: "Evaluate expressions with optional chaining",
	Long: `chainexpr evaluates expressions with JavaScript-style optional
chaining (?.) over maps, lists, and builtin functions.

With no input, an interactive session is started.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if flagNoColor || viper.GetBool("no-color") {
			color.NoColor = true
		}

		var opts []chainexpr.Option
		if flagNoDefaultGlobals {
			opts = append(opts, chainexpr.WithoutDefaultGlobals())
		}
		if logger, ok := newLogger(); ok {
			opts = append(opts, chainexpr.WithLogger(logger))
		}

		switch {
		case flagCode != "":
			return evalAndPrint(ctx, flagCode, opts)
		case flagStdin:
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			return evalAndPrint(ctx, string(data), opts)
		case len(args) > 0:
			return evalFiles(ctx, args, opts)
		default:
			if isatty.IsTerminal(os.Stdin.Fd()) {
				return runRepl(ctx, opts)
			}
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			return evalAndPrint(ctx, string(data), opts)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagCode, "code", "c", "", "Code to evaluate")
	rootCmd.PersistentFlags().BoolVar(&flagStdin, "stdin", false, "Read code from stdin")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text or json)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoDefaultGlobals, "no-default-globals", false, "Disable the default globals")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Enable evaluation logging (trace, debug, info)")

	viper.SetEnvPrefix("CHAINEXPR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.SetErrPrefix(color.RedString("error:"))
}

// newLogger builds a console logger at the configured level. Returns false
// when logging is not enabled.
func newLogger() (zerolog.Logger, bool) {
	levelName := flagLogLevel
	if levelName == "" {
		levelName = viper.GetString("log-level")
	}
	if levelName == "" {
		return zerolog.Nop(), false
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return zerolog.Nop(), false
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: color.NoColor}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger(), true
}

func evalFiles(ctx context.Context, paths []string, opts []chainexpr.Option) error {
	var errs *multierror.Error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		fileOpts := append([]chainexpr.Option{chainexpr.WithFilename(path)}, opts...)
		if err := evalAndPrint(ctx, string(data), fileOpts); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

func evalAndPrint(ctx context.Context, source string, opts []chainexpr.Option) error {
	result, err := chainexpr.Eval(ctx, source, opts...)
	if err != nil {
		return err
	}
	return printResult(os.Stdout, result)
}

func printResult(w io.Writer, result object.Object) error {
	if flagOutput == "json" {
		data, err := prettyjson.Marshal(result.Interface())
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}
	if object.IsNil(result) {
		fmt.Fprintln(w, color.HiBlackString("nil"))
		return nil
	}
	fmt.Fprintln(w, result.Inspect())
	return nil
}
