package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	flagCode   string
	flagTokens bool
	flagAST    bool
	flagDis    bool
	flagDebug  bool
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	Level(zerolog.InfoLevel).
	With().Timestamp().Logger()

var rootCmd = &cobra.Command{
	Use:     "fern [file]",
	Short:   "Run Fern programs",
	Long:    "Fern is a small expression language: programs are function declarations and execution starts at main.",
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagDebug {
			log = log.Level(zerolog.DebugLevel)
		}
		source, err := readSource(args)
		if err != nil {
			return err
		}
		if source == "" {
			runREPL()
			return nil
		}
		switch {
		case flagTokens:
			return showTokens(source)
		case flagAST:
			return showAST(source)
		case flagDis:
			return showDisassembly(source)
		default:
			return runSource(source)
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVarP(&flagCode, "code", "c", "", "code to run")
	rootCmd.Flags().BoolVar(&flagTokens, "tokens", false, "print the token stream instead of running")
	rootCmd.Flags().BoolVar(&flagAST, "ast", false, "print the AST instead of running")
	rootCmd.Flags().BoolVar(&flagDis, "dis", false, "print disassembled bytecode instead of running")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&color.NoColor, "no-color", color.NoColor, "disable colored output")
}

// readSource resolves the program text: an explicit file argument wins,
// then -c, then empty (which starts the REPL).
func readSource(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return flagCode, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
