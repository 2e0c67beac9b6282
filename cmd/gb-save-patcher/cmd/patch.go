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
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vulcandth/gb-save-patcher/internal/example"
	"github.com/vulcandth/gb-save-patcher/pkg/patcher"
)

var (
	patchInput   string
	patchOutput  string
	patchTarget  uint16
	patchDevType uint8
)

func init() {
	rootCmd.AddCommand(patchCmd)

	patchCmd.Flags().StringVar(&patchInput, "in", "", "input save file")
	patchCmd.Flags().StringVar(&patchOutput, "out", "", "output save file")
	patchCmd.Flags().Uint16Var(&patchTarget, "target", 0, "target save version")
	patchCmd.Flags().Uint8Var(&patchDevType, "dev-type", 0, "fix patch selector (0 = migrate)")
	patchCmd.MarkFlagRequired("in")
	patchCmd.MarkFlagRequired("out")
	patchCmd.MarkFlagRequired("target")
}

// patchCmd represents the patch command
var patchCmd = &cobra.Command{
	Use:   "patch",
	Short: "Apply a migration or fix patch and write the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(patchInput)
		if err != nil {
			return errors.Wrapf(err, "failed to read save file %s", patchInput)
		}
		log.Debugf("read %s save file", humanize.Bytes(uint64(len(data))))

		game, err := example.New()
		if err != nil {
			return err
		}

		var patched []byte
		if jsonOutput() {
			outcome := patcher.PatchWithLog(game, data, patchTarget, patchDevType)
			if err := printOutcomeJSON(outcome); err != nil {
				return err
			}
			if outcome.Err != nil {
				return outcome.Err
			}
			patched = outcome.Bytes
		} else {
			// info-level patch narration is opt-in via --verbose
			if !Verbose && !Quiet {
				log.SetLevel(log.WarnLevel)
			}
			patched, err = patcher.PatchWithSink(game, data, patchTarget, patchDevType, patcher.NewLogSink(log.Log))
			if !Verbose && !Quiet {
				log.SetLevel(log.InfoLevel)
			}
			if err != nil {
				return err
			}
		}

		if err := os.WriteFile(patchOutput, patched, 0644); err != nil {
			return errors.Wrapf(err, "failed to write save file %s", patchOutput)
		}
		log.Infof("wrote %s", patchOutput)
		return nil
	},
}

func printOutcomeJSON(outcome patcher.Outcome) error {
	logs := make([]map[string]string, 0, len(outcome.Logs))
	for _, e := range outcome.Logs {
		logs = append(logs, map[string]string{
			"level":   e.Level.String(),
			"source":  e.Source,
			"message": e.Message,
		})
	}

	obj := map[string]any{
		"ok":   outcome.Err == nil,
		"logs": logs,
	}
	if outcome.Bytes != nil {
		obj["bytes_len"] = len(outcome.Bytes)
	}
	if outcome.Err != nil {
		obj["error"] = outcome.Err.Error()
	}
	return json.NewEncoder(os.Stdout).Encode(obj)
}
