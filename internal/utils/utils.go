// Package utils holds small helpers shared by the CLI commands.
package utils

import (
	"github.com/apex/log/handlers/cli"
)

const normalPadding = 3

// Indent indents apex log lines to the supplied level.
func Indent(f func(s string), level int) func(string) {
	return func(s string) {
		cli.Default.Padding = normalPadding * level
		f(s)
		cli.Default.Padding = normalPadding
	}
}
