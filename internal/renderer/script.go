package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// script file per document kind, resolved under the script dir.
var scripts = map[Kind]string{
	KindStatement: "generate_statement.py",
	KindAgreement: "generate_signed_agreement.py",
}

const renderTimeout = 30 * time.Second

// ScriptRenderer shells out to the Python rendering scripts. The script
// contract is argv: <input_json_path> <output_path>.
type ScriptRenderer struct {
	Python    string // interpreter, e.g. "python3"
	ScriptDir string
}

func NewScriptRenderer(python, scriptDir string) *ScriptRenderer {
	if python == "" {
		python = "python3"
	}
	return &ScriptRenderer{Python: python, ScriptDir: scriptDir}
}

func (r *ScriptRenderer) Render(ctx context.Context, kind Kind, data any) ([]byte, error) {
	script, ok := scripts[kind]
	if !ok {
		return nil, fmt.Errorf("render: unknown document kind %q", kind)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("render: marshal template data: %w", err)
	}

	dir, err := os.MkdirTemp("", "investorhub-render-")
	if err != nil {
		return nil, fmt.Errorf("render: temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	inPath := filepath.Join(dir, "input.json")
	outPath := filepath.Join(dir, "output.pdf")
	if err := os.WriteFile(inPath, payload, 0o600); err != nil {
		return nil, fmt.Errorf("render: write input: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.Python, filepath.Join(r.ScriptDir, script), inPath, outPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("render: %s failed: %v: %s", script, err, out)
	}

	pdf, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("render: read output: %w", err)
	}
	return pdf, nil
}
