package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/deepnoodle-ai/chainexpr"
	"github.com/deepnoodle-ai/chainexpr/builtins"
	"github.com/deepnoodle-ai/chainexpr/eval"
	"github.com/deepnoodle-ai/chainexpr/parser"
	"github.com/fatih/color"
)

// runRepl starts an interactive session. The environment persists across
// inputs so assignments carry forward.
func runRepl(ctx context.Context, opts []chainexpr.Option) error {
	fmt.Printf("chainexpr %s - optional chaining expression evaluator\n", version)
	fmt.Println(`Type "exit" to quit.`)

	env := eval.NewEnv(nil)
	if !flagNoDefaultGlobals {
		for name, value := range builtins.Defaults() {
			env.Declare(name, value)
		}
	}
	evaluator := eval.New()
	prompt := color.CyanString(">>> ")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt)
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		prog, err := parser.Parse(ctx, line)
		if err != nil {
			fmt.Println(color.RedString(err.Error()))
			continue
		}
		result, err := evaluator.Eval(ctx, prog, env)
		if err != nil {
			fmt.Println(color.RedString(err.Error()))
			continue
		}
		if err := printResult(os.Stdout, result); err != nil {
			return err
		}
	}
}
