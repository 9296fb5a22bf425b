package plan

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/psetgo/internal/inputtag"
	"github.com/specialistvlad/psetgo/internal/schema"
	"github.com/specialistvlad/psetgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const scoutingDoc = `
process "SCOUTING" {
  max_events = 1000
}

source "PoolSource" {
  fileNames = ["file:outputPFScouting.root"]
}

module "ScoutingCaloProducer" "scoutingCaloProducer" {
  caloJetCollection = "hltAK4CaloJetsCorrectedIDPassed"
  caloJetPtCut      = 20.0
}

module "JetFilter" "jetFilter" {
  src = tag("scoutingCaloProducer", "scoutingCaloJets")
}

module "JetCounter" "counter" {
  jets = [tag("scoutingCaloProducer", "scoutingCaloJets"), "hltAK4PFJets::HLT"]
}

output "PoolOutputModule" "out" {
  fileName = "caloScoutingPacked.root"
}

sequence "reco" {
  modules = [scoutingCaloProducer, jetFilter]
}

path "p" {
  modules = [reco, counter]
}

end_path "e" {
  modules = [out]
}
`

func TestResolve_SingleStep(t *testing.T) {
	t.Parallel()

	p := mustResolve(t, `
module "ScoutingCaloProducer" "scoutingCaloProducer" {
  caloJetPtCut = 20.0
}

path "p" {
  modules = [scoutingCaloProducer]
}
`)

	require.Len(t, p.Paths, 1)
	require.Len(t, p.Paths[0].Steps, 1)
	assert.Equal(t, Step{Position: 0, Label: "scoutingCaloProducer", Type: "ScoutingCaloProducer"}, p.Paths[0].Steps[0])
	assert.Equal(t, 1, p.StepCount())
	assert.Empty(t, p.EndPaths)
	assert.Nil(t, p.Source)
	assert.Equal(t, int64(-1), p.MaxEvents)
	assert.Equal(t, []WarningCode{WarnNoProcess, WarnNoSource}, warningCodes(p))
	assert.Len(t, p.ID, 64)

	m, ok := p.Module("scoutingCaloProducer")
	require.True(t, ok)
	cut, ok := m.Param("caloJetPtCut")
	require.True(t, ok)
	assert.False(t, cut.Defaulted)
	assert.Equal(t, schema.KindDouble, cut.Kind)
	assert.True(t, cut.Value.RawEquals(cty.MustParseNumberVal("20")))

	rho, ok := m.Param("rho")
	require.True(t, ok)
	assert.True(t, rho.Defaulted)
	assert.Equal(t, cty.StringVal("hltFixedGridRhoFastjetAllCalo"), rho.Value)
}

func TestResolve_UnresolvedReference(t *testing.T) {
	t.Parallel()

	errs := resolveErrors(t, `
module "ScoutingCaloProducer" "scoutingCaloProducer" {
  caloJetPtCut = 20.0
}

path "p" {
  modules = [scoutingCaloProducer, missingModule]
}
`)

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs, ErrUnresolvedReference)
	assert.Equal(t, "missingModule", errs[0].Label)
	assert.Contains(t, errs.Error(), "missingModule")
	assert.Contains(t, errs.Error(), "validation failed:\n- ")
	assert.Equal(t, "test.hcl", errs[0].Range.Filename)
	assert.Equal(t, 7, errs[0].Range.Start.Line)
}

func TestResolve_FullProcess(t *testing.T) {
	t.Parallel()
	p := mustResolve(t, scoutingDoc)

	assert.Equal(t, "SCOUTING", p.Process)
	assert.Equal(t, int64(1000), p.MaxEvents)
	assert.Empty(t, p.Warnings)

	require.NotNil(t, p.Source)
	assert.Equal(t, SourceLabel, p.Source.Label)
	assert.Equal(t, "PoolSource", p.Source.Type)

	labels := make([]string, len(p.Modules))
	for i, m := range p.Modules {
		labels[i] = m.Label
	}
	assert.Equal(t, []string{"scoutingCaloProducer", "jetFilter", "counter", "out"}, labels)

	require.Len(t, p.Paths, 1)
	assert.Equal(t, []Step{
		{Position: 0, Label: "scoutingCaloProducer", Type: "ScoutingCaloProducer", Via: "reco"},
		{Position: 1, Label: "jetFilter", Type: "JetFilter", Via: "reco"},
		{Position: 2, Label: "counter", Type: "JetCounter"},
	}, p.Paths[0].Steps)

	require.Len(t, p.EndPaths, 1)
	assert.True(t, p.EndPaths[0].End)
	assert.Equal(t, []string{"out"}, stepLabels(p.EndPaths[0]))

	filter, _ := p.Module("jetFilter")
	require.Len(t, filter.Inputs, 1)
	assert.Equal(t, &TagRef{
		Param: "src",
		Tag:   inputtag.New("scoutingCaloProducer").WithInstance("scoutingCaloJets"),
		Local: true,
	}, filter.Inputs[0])
	minCount, _ := filter.Param("minCount")
	assert.True(t, minCount.Defaulted)

	counter, _ := p.Module("counter")
	require.Len(t, counter.Inputs, 2)
	assert.True(t, counter.Inputs[0].Local)
	assert.False(t, counter.Inputs[1].Local, "a tag naming another process is external")
	assert.Equal(t, "hltAK4PFJets::HLT", counter.Inputs[1].Tag.String())

	calo, _ := p.Module("scoutingCaloProducer")
	for _, in := range calo.Inputs {
		assert.False(t, in.Local, "%s should be external", in.Tag)
	}

	names := make([]string, len(calo.Params))
	for i, param := range calo.Params {
		names[i] = param.Name
	}
	assert.IsIncreasing(t, names)
}

func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()

	first := mustResolve(t, scoutingDoc)
	second := mustResolve(t, scoutingDoc)

	if diff := cmp.Diff(first, second, testutil.CtyComparer); diff != "" {
		t.Errorf("plans differ (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.ID, second.ID)
}

func TestResolve_Failures(t *testing.T) {
	t.Parallel()

	const calo = `
module "ScoutingCaloProducer" "calo" {
  caloJetPtCut = 20.0
}
`

	testCases := []struct {
		name      string
		src       string
		wantCode  error
		wantLabel string
		wantParam string
		wantMsg   string
	}{
		{
			name:      "unknown module type",
			src:       `module "ScoutingCaloProduce" "calo" {}`,
			wantCode:  ErrUnknownModuleType,
			wantLabel: "calo",
			wantMsg:   "Did you mean 'ScoutingCaloProducer'?",
		},
		{
			name:      "duplicate label across block kinds",
			src:       calo + `path "calo" { modules = [] }`,
			wantCode:  ErrDuplicateLabel,
			wantLabel: "calo",
			wantMsg:   "already used by the module declared at test.hcl:2",
		},
		{
			name: "unknown parameter",
			src: `module "ScoutingCaloProducer" "calo" {
  caloJetPtCut  = 20.0
  caloJetEtaCutt = 2.5
}`,
			wantCode:  ErrUnknownParameter,
			wantLabel: "calo",
			wantParam: "caloJetEtaCutt",
			wantMsg:   "Did you mean 'caloJetEtaCut'?",
		},
		{
			name:      "string where double is expected",
			src:       `module "ScoutingCaloProducer" "calo" { caloJetPtCut = "20.0" }`,
			wantCode:  ErrTypeMismatch,
			wantLabel: "calo",
			wantParam: "caloJetPtCut",
			wantMsg:   "expected double, got string",
		},
		{
			name: "number where tag is expected",
			src: `module "ScoutingCaloProducer" "calo" {
  caloJetPtCut = 20.0
  rho          = 5
}`,
			wantCode:  ErrTypeMismatch,
			wantParam: "rho",
			wantMsg:   "expected tag, got number",
		},
		{
			name: "malformed tag",
			src: `module "ScoutingCaloProducer" "calo" {
  caloJetPtCut = 20.0
  rho          = "a:b:c:d"
}`,
			wantCode:  ErrTypeMismatch,
			wantParam: "rho",
		},
		{
			name:      "fractional int",
			src: `module "JetFilter" "f" {
  src      = "x"
  minCount = 1.5
}`,
			wantCode:  ErrTypeMismatch,
			wantParam: "minCount",
			wantMsg:   "fractional",
		},
		{
			name:      "missing required parameter",
			src:       `module "ScoutingCaloProducer" "calo" {}`,
			wantCode:  ErrMissingParameter,
			wantLabel: "calo",
			wantParam: "caloJetPtCut",
			wantMsg:   "must set parameter 'caloJetPtCut' (double)",
		},
		{
			name:      "invalid module label",
			src:       `module "JetFilter" "1st-filter" { src = "x" }`,
			wantCode:  ErrInvalidLabel,
			wantLabel: "1st-filter",
		},
		{
			name: "module labelled like the source",
			src: `source "PoolSource" {
  fileNames = ["file:a.root"]
}
module "ScoutingCaloProducer" "source" {
  caloJetPtCut = 20.0
}`,
			wantCode:  ErrInvalidLabel,
			wantLabel: "source",
			wantMsg:   "module label 'source' is reserved for the source",
		},
		{
			name:      "invalid process name",
			src:       `process "re-reco" {}`,
			wantCode:  ErrInvalidLabel,
			wantLabel: "re-reco",
		},
		{
			name:      "output type in module block",
			src:       `module "PoolOutputModule" "out" { fileName = "a.root" }`,
			wantCode:  ErrCategoryMismatch,
			wantLabel: "out",
			wantMsg:   "cannot be declared in a module block",
		},
		{
			name:      "producer in output block",
			src:       `output "ScoutingCaloProducer" "calo" { caloJetPtCut = 1.0 }`,
			wantCode:  ErrCategoryMismatch,
			wantLabel: "calo",
		},
		{
			name:      "producer as source",
			src:       `source "ScoutingCaloProducer" { caloJetPtCut = 1.0 }`,
			wantCode:  ErrCategoryMismatch,
			wantLabel: SourceLabel,
		},
		{
			name: "output module on a path",
			src: `output "PoolOutputModule" "out" { fileName = "a.root" }
path "p" { modules = [out] }`,
			wantCode:  ErrOutputOnPath,
			wantLabel: "out",
			wantMsg:   "belong on end paths",
		},
		{
			name: "sequence cycle",
			src: calo + `
sequence "a" { modules = [calo, b] }
sequence "b" { modules = [a] }
path "p" { modules = [a] }`,
			wantCode:  ErrSequenceCycle,
			wantLabel: "a",
			wantMsg:   "a -> b -> a",
		},
		{
			name: "path inside a path",
			src: calo + `
path "q" { modules = [calo] }
path "p" { modules = [q] }`,
			wantCode:  ErrPathReference,
			wantLabel: "q",
			wantMsg:   "use a sequence instead",
		},
		{
			name: "schedule names unknown path",
			src: calo + `
process "P" { schedule = [p, e2] }
path "p" { modules = [calo] }
end_path "e" { modules = [] }`,
			wantCode:  ErrUnknownSchedule,
			wantLabel: "e2",
			wantMsg:   "Did you mean 'e'?",
		},
		{
			name: "schedule names a module",
			src: calo + `
process "P" { schedule = [calo] }`,
			wantCode:  ErrUnknownSchedule,
			wantLabel: "calo",
		},
		{
			name:     "two process blocks",
			src:      "process \"A\" {}\nprocess \"B\" {}",
			wantCode: ErrDuplicateBlock,
			wantMsg:  "exactly one process",
		},
		{
			name: "two sources",
			src: `source "EmptySource" {}
source "EmptySource" {}`,
			wantCode:  ErrDuplicateBlock,
			wantLabel: SourceLabel,
		},
		{
			name:      "unresolved reference inside an unused sequence",
			src:       `sequence "s" { modules = [ghost] }`,
			wantCode:  ErrUnresolvedReference,
			wantLabel: "ghost",
			wantMsg:   "sequence 's' refers to 'ghost'",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			errs := resolveErrors(t, tc.src)

			var found *Error
			for _, e := range errs {
				if errors.Is(e, tc.wantCode) {
					found = e
					break
				}
			}
			require.NotNil(t, found, "no %q error in:\n%s", tc.wantCode, errs)
			assert.ErrorIs(t, errs, tc.wantCode)
			if tc.wantLabel != "" {
				assert.Equal(t, tc.wantLabel, found.Label)
			}
			if tc.wantParam != "" {
				assert.Equal(t, tc.wantParam, found.Param)
			}
			if tc.wantMsg != "" {
				assert.Contains(t, found.Error(), tc.wantMsg)
			}
		})
	}
}

func TestResolve_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	errs := resolveErrors(t, `
module "NoSuchType" "a" {}

module "ScoutingCaloProducer" "b" {
  bogus = 1
}

path "p" {
  modules = [a, b, c]
}
`)

	assert.ErrorIs(t, errs, ErrUnknownModuleType)
	assert.ErrorIs(t, errs, ErrUnknownParameter)
	assert.ErrorIs(t, errs, ErrMissingParameter)
	assert.ErrorIs(t, errs, ErrUnresolvedReference)
	assert.NotErrorIs(t, errs, ErrSequenceCycle)
	assert.Len(t, errs, 4)
}

func TestResolve_SharedSequenceErrorReportedOnce(t *testing.T) {
	t.Parallel()

	errs := resolveErrors(t, `
sequence "s" { modules = [ghost] }
path "p1" { modules = [s] }
path "p2" { modules = [s] }
`)
	require.Len(t, errs, 1)
	assert.Equal(t, "ghost", errs[0].Label)
}

func TestErrors_Diagnostics(t *testing.T) {
	t.Parallel()

	errs := resolveErrors(t, `path "p" { modules = [missingModule] }`)
	diags := errs.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "Unresolved reference", diags[0].Summary)
	require.NotNil(t, diags[0].Subject)
	assert.Equal(t, "test.hcl", diags[0].Subject.Filename)
}

func TestResolve_TagNamingSourceIsExternal(t *testing.T) {
	t.Parallel()

	p := mustResolve(t, `
source "PoolSource" {
  fileNames = ["file:a.root"]
}

module "ScoutingCaloProducer" "calo" {
  caloJetPtCut = 20.0
  rho          = "source"
}

path "p" {
  modules = [calo]
}
`)
	m, ok := p.Module("calo")
	require.True(t, ok)
	var rho *TagRef
	for _, in := range m.Inputs {
		if in.Param == "rho" {
			rho = in
		}
	}
	require.NotNil(t, rho)
	assert.False(t, rho.Local)

	src, ok := p.Module(SourceLabel)
	require.True(t, ok)
	assert.Equal(t, "PoolSource", src.Type)
}
