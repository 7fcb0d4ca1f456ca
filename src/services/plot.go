package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"path"

	"github.com/jiaming2012/options-analyzer/src/optionmodels"
)

// PlotInput is the contract handed to the external plot script: a sweep
// table plus the named columns to render. The core has no rendering
// responsibility.
type PlotInput struct {
	Title   string                     `json:"title"`
	Columns []string                   `json:"columns"`
	Records []optionmodels.SweepRecord `json:"records"`
	OutPath string                     `json:"out_path"`
}

// ExecPlotSweep marshals the plot input to JSON and hands it to the plot
// script over stdin. scriptDir must contain plot_sweep.py and an env/
// virtualenv alongside it.
func ExecPlotSweep(scriptDir string, input PlotInput) (string, error) {
	if len(input.Records) > 0 {
		flat := input.Records[0].Flatten()
		for _, column := range input.Columns {
			if _, found := flat[column]; !found {
				return "", fmt.Errorf("ExecPlotSweep: unknown column: %s", column)
			}
		}
	}

	jsonData, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("error marshalling JSON: %v", err)
	}

	interpreter := path.Join(scriptDir, "env", "bin", "python3")
	plotSweepPath := path.Join(scriptDir, "plot_sweep.py")
	cmd := exec.Command(interpreter, plotSweepPath)

	cmd.Stdin = bytes.NewReader(jsonData)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running plot script: %v\nOutput: %s", err, out.String())
	}

	return out.String(), nil
}
