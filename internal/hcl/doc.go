// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for parsing process documents, evaluating
// parameter expressions and translating blocks into the format-agnostic
// config.Document.
//
// A document looks like this:
//
//	process "SCOUTING" {
//	  max_events = -1
//	}
//
//	source "PoolSource" {
//	  fileNames = ["file:outputPFScouting.root"]
//	}
//
//	module "ScoutingCaloProducer" "scoutingCaloProducer" {
//	  caloJetCollection = "hltAK4CaloJetsCorrectedIDPassed"
//	  caloJetPtCut      = 20.0
//	}
//
//	output "PoolOutputModule" "out" {
//	  fileName = "caloScoutingPacked.root"
//	}
//
//	path "p" { modules = [scoutingCaloProducer] }
//	end_path "e" { modules = [out] }
//
// Parameter values are literal expressions; the only function available is
// tag(label, instance, process) which builds an input tag string.
package hcl
