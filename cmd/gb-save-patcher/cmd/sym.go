/*
Copyright © 2024 vulcandth

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vulcandth/gb-save-patcher/internal/colors"
	"github.com/vulcandth/gb-save-patcher/internal/utils"
	"github.com/vulcandth/gb-save-patcher/pkg/symdb"
)

var symResolve string

func init() {
	rootCmd.AddCommand(symCmd)

	symCmd.Flags().StringVar(&symResolve, "resolve", "", "resolve a symbol to its SRAM-absolute offset")
}

// symCmd represents the sym command
var symCmd = &cobra.Command{
	Use:   "sym <SYMFILE>",
	Short: "Inspect a .sym file (plain, gzip or xz compressed)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrapf(err, "failed to read symbol file %s", args[0])
		}

		db, err := symdb.FromBytes(payload)
		if err != nil {
			return errors.Wrapf(err, "failed to load symbol file %s", args[0])
		}

		if symResolve != "" {
			addr, err := db.SRAMAbsolute(symResolve)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"ok":     true,
					"symbol": symResolve,
					"offset": uint32(addr),
				})
			}
			fmt.Printf("%s %s\n", colors.Bold().Sprint(symResolve), addr)
			return nil
		}

		names := make([]string, 0, db.Len())
		db.Each(func(name string, _ symdb.Symbol) {
			names = append(names, name)
		})
		sort.Strings(names)

		if jsonOutput() {
			out := make(map[string]string, len(names))
			for _, name := range names {
				sym, _ := db.Symbol(name)
				out[name] = sym.String()
			}
			return json.NewEncoder(os.Stdout).Encode(out)
		}

		log.WithField("count", humanize.Comma(int64(db.Len()))).Info("parsed symbols")
		for _, name := range names {
			sym, _ := db.Symbol(name)
			utils.Indent(log.Info, 2)(fmt.Sprintf("%s %s", colors.Faint().Sprint(sym), name))
		}
		return nil
	},
}
