// Package yaml provides a YAML implementation of the config.Loader interface.
// It accepts the same documents as the HCL loader, spelled as YAML:
//
//	process: SCOUTING
//	max_events: -1
//	source:
//	  type: PoolSource
//	  params:
//	    fileNames: ["file:outputPFScouting.root"]
//	modules:
//	  - label: scoutingCaloProducer
//	    type: ScoutingCaloProducer
//	    params:
//	      caloJetPtCut: 20.0
//	paths:
//	  - label: p
//	    modules: [scoutingCaloProducer]
//
// Scalar tags decide the value kind: `!!int` and `!!float` become numbers,
// `!!bool` booleans and everything else must be a string. Sequences become
// tuples. Mappings are not valid parameter values.
package yaml
