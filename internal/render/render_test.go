package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	hclload "github.com/specialistvlad/psetgo/internal/hcl"
	"github.com/specialistvlad/psetgo/internal/plan"
	"github.com/specialistvlad/psetgo/internal/registry"
	"github.com/specialistvlad/psetgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scoutingDoc = `
process "SCOUTING" {
  max_events = 500
}

source "PoolSource" {
  fileNames = ["file:outputPFScouting.root"]
}

module "ScoutingCaloProducer" "scoutingCaloProducer" {
  caloJetPtCut = 20.0
}

module "HLTScoutingMuonProducer" "muons" {
  muonPtCut = 3
}

output "PoolOutputModule" "out" {
  fileName       = "caloScoutingPacked.root"
  outputCommands = ["drop *", "keep *_scoutingCaloProducer_*_*"]
}

sequence "scouting" {
  modules = [scoutingCaloProducer, muons]
}

path "p" {
  modules = [scouting]
}

end_path "e" {
  modules = [out]
}
`

func resolveSrc(t *testing.T, src string) (*plan.Plan, *hclload.Loader) {
	t.Helper()
	ctx, _ := testutil.Context(t)
	loader := hclload.NewLoader()
	doc, err := loader.LoadBytes(ctx, "test.hcl", []byte(src))
	require.NoError(t, err)
	p, err := plan.Resolve(ctx, doc, builtins(t))
	require.NoError(t, err)
	return p, loader
}

func TestText(t *testing.T) {
	t.Parallel()
	p, _ := resolveSrc(t, scoutingDoc)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, p))
	out := buf.String()

	assert.Contains(t, out, "Process SCOUTING")
	assert.Contains(t, out, p.ID)
	assert.Contains(t, out, "max events  500")
	assert.Contains(t, out, "source      PoolSource")
	assert.Contains(t, out, "End paths")
	assert.Contains(t, out, " 1. scoutingCaloProducer  ScoutingCaloProducer  via scouting")
	assert.Contains(t, out, " 2. muons                 HLTScoutingMuonProducer  via scouting")
	assert.Contains(t, out, "muons  HLTScoutingMuonProducer (producer)")
	assert.Contains(t, out, `"hltFixedGridRhoFastjetAllCalo"  default`)
	assert.Contains(t, out, `["file:outputPFScouting.root"]  untracked`)
	assert.NotContains(t, out, "\x1b[", "no colour when writing to a buffer")
	assert.NotContains(t, out, "Warnings")
}

func TestSummary(t *testing.T) {
	t.Parallel()
	p, _ := resolveSrc(t, `
module "ScoutingCaloProducer" "calo" { caloJetPtCut = 20.0 }
path "p" { modules = [calo] }
`)

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, "doc.hcl", p))
	out := buf.String()

	assert.Contains(t, out, "ok doc.hcl: process (unnamed), 1 modules, 1 paths, 0 end paths, 1 steps (plan "+p.ID[:12]+")")
	assert.Contains(t, out, "warning: No process block is declared")
	assert.Contains(t, out, "warning: No source is declared")
}

func TestJSON(t *testing.T) {
	t.Parallel()
	p, _ := resolveSrc(t, scoutingDoc)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, p))

	var got struct {
		Process   string `json:"process"`
		ID        string `json:"id"`
		MaxEvents int64  `json:"max_events"`
		Source    struct {
			Type string `json:"type"`
		} `json:"source"`
		Modules []struct {
			Label  string `json:"label"`
			Params []struct {
				Name      string          `json:"name"`
				Kind      string          `json:"kind"`
				Value     json.RawMessage `json:"value"`
				Defaulted bool            `json:"defaulted"`
			} `json:"params"`
			Inputs []struct {
				Tag   string `json:"tag"`
				Local bool   `json:"local"`
			} `json:"inputs"`
		} `json:"modules"`
		Paths []struct {
			Name  string `json:"name"`
			Steps []struct {
				Label string `json:"label"`
				Via   string `json:"via"`
			} `json:"steps"`
		} `json:"paths"`
		EndPaths []struct {
			Name string `json:"name"`
		} `json:"end_paths"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "SCOUTING", got.Process)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, int64(500), got.MaxEvents)
	assert.Equal(t, "PoolSource", got.Source.Type)
	require.Len(t, got.Modules, 3)
	assert.Equal(t, "scoutingCaloProducer", got.Modules[0].Label)

	values := map[string]string{}
	for _, param := range got.Modules[0].Params {
		values[param.Name] = string(param.Value)
	}
	assert.Equal(t, "20", values["caloJetPtCut"])
	assert.Equal(t, `"hltAK4CaloJets"`, values["caloJetCollection"])
	assert.NotEmpty(t, got.Modules[0].Inputs)

	require.Len(t, got.Paths, 1)
	assert.Equal(t, "scouting", got.Paths[0].Steps[0].Via)
	require.Len(t, got.EndPaths, 1)
	assert.Equal(t, "e", got.EndPaths[0].Name)
}

func TestDump_RoundTrip(t *testing.T) {
	t.Parallel()
	original, _ := resolveSrc(t, scoutingDoc)

	dumped := Dump(original)
	assert.Contains(t, string(dumped), `schedule   = [p, e]`)
	assert.Contains(t, string(dumped), `module "ScoutingCaloProducer" "scoutingCaloProducer" {`)
	assert.Contains(t, string(dumped), `output "PoolOutputModule" "out" {`)
	assert.Contains(t, string(dumped), `modules = [scoutingCaloProducer, muons]`)
	assert.Contains(t, string(dumped), `rho `)

	reloaded, _ := resolveSrc(t, string(dumped))
	assert.Equal(t, original.ID, reloaded.ID)

	// Sequences are inlined and every parameter is explicit, so only the
	// provenance fields differ.
	opts := cmp.Options{
		testutil.CtyComparer,
		cmpopts.IgnoreFields(plan.Step{}, "Via"),
		cmpopts.IgnoreFields(plan.Param{}, "Defaulted"),
	}
	if diff := cmp.Diff(original, reloaded, opts); diff != "" {
		t.Errorf("reloaded plan differs (-original +reloaded):\n%s", diff)
	}
}

func TestDump_Idempotent(t *testing.T) {
	t.Parallel()
	original, _ := resolveSrc(t, scoutingDoc)
	once := Dump(original)
	reloaded, _ := resolveSrc(t, string(once))
	assert.Equal(t, string(once), string(Dump(reloaded)))
}

func TestFailure_PlanErrors(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)
	loader := hclload.NewLoader()
	doc, err := loader.LoadBytes(ctx, "bad.hcl", []byte(`
path "p" {
  modules = [missingModule]
}
`))
	require.NoError(t, err)
	_, err = plan.Resolve(ctx, doc, registry.New())
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, Failure(&buf, "bad.hcl", err, loader.Files()))
	out := buf.String()

	assert.Contains(t, out, "failed bad.hcl")
	assert.Contains(t, out, "Error: Unresolved reference")
	assert.Contains(t, out, "path 'p' refers to 'missingModule'")
	assert.Contains(t, out, "modules = [missingModule]", "snippet from the source")
}

func TestFailure_LoadDiagnostics(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)
	loader := hclload.NewLoader()
	_, err := loader.LoadBytes(ctx, "syntax.hcl", []byte("module \"X\" {\n"))
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, Failure(&buf, "syntax.hcl", err, loader.Files()))
	assert.Contains(t, buf.String(), "Error: ")
	assert.Contains(t, buf.String(), "on syntax.hcl line 1")
}

func TestFailure_PlainError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, Failure(&buf, "x", errors.New("boom"), nil))
	assert.Equal(t, "failed x\n  boom\n", buf.String())
}
