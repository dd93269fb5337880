package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/fern-lang/fern"
)

var (
	promptColor = color.New(color.FgGreen)
	errorColor  = color.New(color.FgRed)
	headerColor = color.New(color.FgCyan, color.Bold)
	numberColor = color.New(color.FgYellow)
	stringColor = color.New(color.FgGreen)
)

// runREPL reads one program per line and evaluates it. Each line is a
// complete program, so declared functions do not persist between lines;
// a bare expression evaluates as the body of an implicit main.
func runREPL() {
	fmt.Printf("Fern %s — one program per line, ctrl-d to exit\n", version)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		promptColor.Print(">>> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		results, err := fern.Eval(line)
		if err != nil {
			errorColor.Println(err.Error())
			continue
		}
		for _, value := range results {
			printValue(value)
		}
	}
}
