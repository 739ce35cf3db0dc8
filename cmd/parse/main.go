// Command parse runs the parser to completion over a fixed tokens file and
// action-trace file, and writes the resulting passage as JSON.
//
// Usage:
//
//	parse -tokens tokens.json -actions actions.json [-passage-id p1] [-out passage.json]
//
// tokens.json holds the paragraph structure: a JSON array of arrays of
// token strings, e.g. [["The","cat","sat","."]].
//
// actions.json holds the recorded action trace: a JSON array of objects
// with a "kind" field ("SHIFT", "REDUCE", "NODE", "IMPLICIT", "LEFT_EDGE",
// "RIGHT_EDGE", "LEFT_REMOTE", "RIGHT_REMOTE", "SWAP", "FINISH") and,
// depending on kind, "tag" and/or "distance" fields, e.g.
// {"kind":"NODE","tag":"H"} or {"kind":"SWAP","distance":2}.
//
// This is the one-shot, batch equivalent of pkg/server's /api/v1/parse
// endpoint: the live classifier that would normally propose the action
// trace is out of scope, so the caller supplies it directly.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/yesoreyeram/transect/pkg/action"
	"github.com/yesoreyeram/transect/pkg/config"
	"github.com/yesoreyeram/transect/pkg/passage"
	"github.com/yesoreyeram/transect/pkg/pstate"
	"github.com/yesoreyeram/transect/pkg/tagger"
)

type actionDoc struct {
	Kind       string  `json:"kind"`
	Tag        string  `json:"tag,omitempty"`
	Distance   int     `json:"distance,omitempty"`
	OrigNodeID *string `json:"orig_node_id,omitempty"`
}

var actionKindByName = map[string]action.Kind{
	"SHIFT":        action.Shift,
	"REDUCE":       action.Reduce,
	"NODE":         action.Node,
	"IMPLICIT":     action.Implicit,
	"LEFT_EDGE":    action.LeftEdge,
	"RIGHT_EDGE":   action.RightEdge,
	"LEFT_REMOTE":  action.LeftRemote,
	"RIGHT_REMOTE": action.RightRemote,
	"SWAP":         action.Swap,
	"FINISH":       action.Finish,
}

func (d actionDoc) toAction() (action.Action, error) {
	kind, ok := actionKindByName[d.Kind]
	if !ok {
		return action.Action{}, fmt.Errorf("unknown action kind %q", d.Kind)
	}
	return action.Action{Kind: kind, Tag: action.EdgeTag(d.Tag), Distance: d.Distance, OrigNodeID: d.OrigNodeID}, nil
}

func main() {
	tokensPath := flag.String("tokens", "", "Path to a JSON tokens file (required)")
	actionsPath := flag.String("actions", "", "Path to a JSON action-trace file (required)")
	passageID := flag.String("passage-id", "", "Passage ID (default: generated UUID)")
	outPath := flag.String("out", "", "Output path for the passage JSON (default: stdout)")
	verify := flag.Bool("verify", true, "Re-check invariants after every transition")
	maxNodesRatio := flag.Float64("max-nodes-ratio", 10, "Cap on len(nodes)/len(terminals) - 1")

	flag.Parse()

	if *tokensPath == "" || *actionsPath == "" {
		fmt.Fprintln(os.Stderr, "both -tokens and -actions are required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*tokensPath, *actionsPath, *passageID, *outPath, *verify, *maxNodesRatio); err != nil {
		fmt.Fprintf(os.Stderr, "parse failed: %v\n", err)
		os.Exit(1)
	}
}

func run(tokensPath, actionsPath, passageID, outPath string, verify bool, maxNodesRatio float64) error {
	var paragraphs [][]string
	if err := readJSONFile(tokensPath, &paragraphs); err != nil {
		return fmt.Errorf("reading tokens: %w", err)
	}

	var actionDocs []actionDoc
	if err := readJSONFile(actionsPath, &actionDocs); err != nil {
		return fmt.Errorf("reading actions: %w", err)
	}

	actions := make([]action.Action, len(actionDocs))
	for i, d := range actionDocs {
		a, err := d.toAction()
		if err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
		actions[i] = a
	}

	opts := config.Default()
	opts.Verify = verify
	opts.MaxNodesRatio = maxNodesRatio
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	rules, err := tagger.NewRuleBasedTagger(tagger.DefaultRules(), "Word")
	if err != nil {
		return fmt.Errorf("building tagger: %w", err)
	}

	st := pstate.New(paragraphs, passageID, opts, rules.Tag)

	for i, a := range actions {
		if err := st.AssertValid(a); err != nil {
			return fmt.Errorf("action %d (%s) rejected: %w", i, a, err)
		}
		if err := st.Transition(a); err != nil {
			return fmt.Errorf("action %d (%s) failed: %w", i, a, err)
		}
	}

	builder := passage.NewBuilder(opts)
	builder.Warn = func(err error) {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	p, err := builder.Create(st)
	if err != nil {
		return fmt.Errorf("building passage: %w", err)
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func readJSONFile(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	return dec.Decode(v)
}
