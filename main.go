package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/guardian/shortopt/log"
	"github.com/guardian/shortopt/opt"
	"github.com/guardian/shortopt/table"
)

const (
	InternalError = 1
	InvalidArgs   = 2
)

func main() {
	logger := log.New(readBoolFlag(os.Args[1:], "debug", "Whether to enable debug logs."))

	rootCmd := &cobra.Command{Use: "shortopt"}
	rootCmd.PersistentFlags().Bool("debug", false, "Whether to enable debug logs.")
	spec := rootCmd.PersistentFlags().String("options", "", "Compact flag spec, e.g. 'vq!o' ('!' marks the previous flag as a stop flag).")
	tablePath := rootCmd.PersistentFlags().String("table", "", "Path to a flag-table file (defaults to ./"+table.DefaultPath+" when present).")

	parseCmd := &cobra.Command{
		Use:   "parse [flags] -- ARGS...",
		Short: "Split flag arguments from operands",
		Run: func(cmd *cobra.Command, args []string) {
			tab, err := readTable(logger, *spec, *tablePath)
			check(logger, err, "unable to read flag table", InvalidArgs)

			matched, rest, err := scan(logger, tab, args)
			if err != nil {
				logger.Errorf("%v", err)
				os.Exit(InvalidArgs)
			}

			for _, name := range matched {
				logger.Infof("flag_%s=true", name)
			}
			logger.Infof("rest=%s", strings.Join(rest, " "))
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the flags the current table defines",
		Run: func(cmd *cobra.Command, args []string) {
			tab, err := readTable(logger, *spec, *tablePath)
			check(logger, err, "unable to read flag table", InvalidArgs)

			for _, f := range tab.Flags {
				line := fmt.Sprintf("-%s", f.Name)
				if f.Stop {
					line += " (stops scanning)"
				}
				if f.Help != "" {
					line += "  " + f.Help
				}
				logger.Infof(line)
			}
		},
	}

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively try argument lines against the flag table",
		Run: func(cmd *cobra.Command, args []string) {
			tab, err := readTable(logger, *spec, *tablePath)
			check(logger, err, "unable to read flag table", InvalidArgs)

			rl, err := readline.New("shortopt> ")
			check(logger, err, "unable to start readline", InternalError)
			defer rl.Close()

			for {
				line, err := rl.Readline()
				if err != nil { // io.EOF or interrupt
					return
				}

				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}

				matched, rest, err := scan(logger, tab, strings.Fields(line))
				if err != nil {
					logger.Infof("%v", err)
					continue
				}
				logger.Infof("matched=%s rest=%s", strings.Join(matched, ""), strings.Join(rest, " "))
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a flag-table file in the current directory",
		Run: func(cmd *cobra.Command, args []string) {
			var tab table.Table

			for {
				name := ask("Flag character (empty to finish): ")
				if name == "" {
					break
				}
				help := ask("Help text: ")
				stop := askYesNo("Stop scanning when this flag is seen?")
				tab.Flags = append(tab.Flags, table.Flag{Name: name, Stop: stop, Help: help})
			}

			_, err := table.Read(tab) // note, validates without touching files
			check(logger, err, "invalid flag table", InvalidArgs)

			err = table.Write(tab)
			check(logger, err, "unable to write table file", InternalError)

			logger.Infof("wrote %s", table.DefaultPath)
		},
	}

	rootCmd.AddCommand(parseCmd, listCmd, replCmd, initCmd)
	rootCmd.Execute()
}

// scan registers one option per table entry and walks args with it, returning
// the matched flag names and the arguments left unconsumed.
func scan(logger log.Logger, tab table.Table, args []string) (matched []string, rest []string, err error) {
	opts := tab.Options(func(f table.Flag) func() bool {
		return func() bool {
			logger.Debugf("matched flag -%s", f.Name)
			matched = append(matched, f.Name)
			return !f.Stop
		}
	})

	n, err := opt.Parse(args, opts)
	if err != nil {
		return nil, nil, err
	}

	return matched, args[n:], nil
}

func readTable(logger log.Logger, spec string, path string) (table.Table, error) {
	files := table.DefaultFiles()
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return table.Table{}, fmt.Errorf("unable to open table file: %w", err)
		}
		files = []io.ReadCloser{file}
	}

	logger.Debugf("reading flag table (files=%d, spec='%s')", len(files), spec)
	return table.Read(table.ParseSpec(spec), files...)
}

func ask(question string) string {
	fmt.Print(question)

	got := ""
	fmt.Scanln(&got)

	return got
}

func askYesNo(question string) bool {
	got := ask(question + "(y/n) ")

	switch got {
	case "y":
		return true
	case "n":
		return false
	default:
		fmt.Println("Response must be one of 'y', 'n'.")
		return askYesNo(question)
	}
}

func readBoolFlag(args []string, name string, usage string) bool {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.Usage = func() {} // silence errors
	got := fs.Bool(name, false, usage)
	fs.Parse(args)
	return *got
}

func check(logger log.Logger, err error, msg string, exitCode int) {
	if err != nil {
		logger.Errorf("%s; %v", msg, err)
		os.Exit(exitCode)
	}
}
