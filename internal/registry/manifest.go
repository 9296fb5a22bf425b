// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file parses module-type manifests.
//
// Why describe module types in manifests instead of Go code?
//
// A module type is a contract: the parameters an instance may bind, their
// kinds and defaults, and the products it puts into the event. Keeping that
// contract in a declarative file means new types can be described without
// rebuilding the tool, and the same file can be read by people reviewing a
// configuration. A manifest looks like:
//
//	module_type "ScoutingCaloProducer" {
//	  category = "producer"
//
//	  param "caloJetPtCut" {
//	    type = double
//	  }
//
//	  param "rho" {
//	    type    = tag
//	    default = "hltFixedGridRhoFastjetAllCalo"
//	  }
//
//	  product "scoutingCaloJets" {
//	    type = "ScoutingCaloJetCollection"
//	  }
//	}
//
// Defaults are literal values checked against the declared kind when the
// manifest is read, so a broken manifest is reported at load time rather
// than when the first document using the type is resolved.
package registry

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/psetgo/internal/pshcl"
	"github.com/specialistvlad/psetgo/internal/schema"
)

var manifestRootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "module_type", LabelNames: []string{"name"}},
	},
}

var moduleTypeBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "category", Required: true},
		{Name: "description"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "param", LabelNames: []string{"name"}},
		{Type: "product", LabelNames: []string{"instance"}},
	},
}

// paramBodySchema is the HCL schema for the body of a `param` block.
var paramBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		// `type` is required, but we check for its existence manually
		// to provide a better error message.
		{Name: "type"},
		{Name: "default"},
		{Name: "untracked"},
		{Name: "description"},
	},
}

var productBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type", Required: true},
	},
}

// ParseManifest parses HCL source holding one or more module_type blocks.
func ParseManifest(parser *hclparse.Parser, src []byte, filename string) ([]*schema.ModuleType, hcl.Diagnostics) {
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	return decodeManifest(file.Body, filename)
}

func decodeManifest(body hcl.Body, origin string) ([]*schema.ModuleType, hcl.Diagnostics) {
	content, diags := body.Content(manifestRootSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	seen := make(map[string]hcl.Range)
	var types []*schema.ModuleType
	for _, block := range content.Blocks {
		name := block.Labels[0]
		if prev, dup := seen[name]; dup {
			diags = append(diags, pshcl.ErrorDiag(
				"Duplicate module type",
				fmt.Sprintf("A module type named '%s' was already declared at %s.", name, prev),
				block.DefRange,
			))
			continue
		}
		seen[name] = block.DefRange

		mt, mtDiags := decodeModuleType(block, origin)
		diags = append(diags, mtDiags...)
		if mt != nil {
			types = append(types, mt)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return types, diags
}

func decodeModuleType(block *hcl.Block, origin string) (*schema.ModuleType, hcl.Diagnostics) {
	content, diags := block.Body.Content(moduleTypeBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	mt := &schema.ModuleType{
		Name:   block.Labels[0],
		Params: make(map[string]*schema.ParamSpec),
		Origin: origin,
	}

	catAttr := content.Attributes["category"]
	var category string
	catDiags := gohcl.DecodeExpression(catAttr.Expr, nil, &category)
	diags = append(diags, catDiags...)
	if !catDiags.HasErrors() {
		c, ok := schema.ParseCategory(category)
		if !ok {
			diags = append(diags, pshcl.ErrorDiag(
				"Invalid category",
				fmt.Sprintf("'%s' is not a module category. Use one of: source, producer, filter, analyzer, output.", category),
				catAttr.Expr.Range(),
			))
		}
		mt.Category = c
	}

	if attr, ok := content.Attributes["description"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &mt.Description)...)
	}

	for _, b := range content.Blocks.OfType("param") {
		spec, pDiags := decodeParam(b)
		diags = append(diags, pDiags...)
		if spec == nil {
			continue
		}
		if _, dup := mt.Params[spec.Name]; dup {
			diags = append(diags, pshcl.ErrorDiag(
				"Duplicate parameter definition",
				fmt.Sprintf("A parameter named '%s' has already been defined for '%s'.", spec.Name, mt.Name),
				b.DefRange,
			))
			continue
		}
		mt.Params[spec.Name] = spec
	}

	seenProducts := make(map[schema.ProductSpec]bool)
	for _, b := range content.Blocks.OfType("product") {
		pContent, pDiags := b.Body.Content(productBodySchema)
		diags = append(diags, pDiags...)
		if pDiags.HasErrors() {
			continue
		}
		p := schema.ProductSpec{Instance: b.Labels[0]}
		tDiags := gohcl.DecodeExpression(pContent.Attributes["type"].Expr, nil, &p.Type)
		diags = append(diags, tDiags...)
		if tDiags.HasErrors() {
			continue
		}
		if seenProducts[p] {
			diags = append(diags, pshcl.ErrorDiag(
				"Duplicate product definition",
				fmt.Sprintf("Product '%s' with instance '%s' is declared twice.", p.Type, p.Instance),
				b.DefRange,
			))
			continue
		}
		seenProducts[p] = true
		mt.Products = append(mt.Products, p)
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return mt, diags
}

func decodeParam(block *hcl.Block) (*schema.ParamSpec, hcl.Diagnostics) {
	name := block.Labels[0]
	content, diags := block.Body.Content(paramBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	// Manually check for the required 'type' attribute for a better error.
	typeAttr, ok := content.Attributes["type"]
	if !ok {
		missing := block.Body.MissingItemRange()
		diags = append(diags, pshcl.ErrorDiag(
			"Missing 'type' attribute",
			"The 'type' attribute is required for all param blocks.",
			missing,
		))
		return nil, diags
	}

	kind, kindDiags := pshcl.KindFromExpr(typeAttr.Expr)
	diags = append(diags, kindDiags...)
	if kindDiags.HasErrors() {
		return nil, diags
	}

	spec := &schema.ParamSpec{Name: name, Kind: kind}

	if attr, ok := content.Attributes["description"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &spec.Description)...)
	}
	if attr, ok := content.Attributes["untracked"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &spec.Untracked)...)
	}

	if attr, ok := content.Attributes["default"]; ok {
		// A nil eval context is used because defaults must be literal values.
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			return nil, diags
		}
		conformed, err := schema.Conform(kind, val)
		if err != nil {
			diags = append(diags, pshcl.ErrorDiag(
				"Invalid default value",
				fmt.Sprintf("The default value for '%s' does not fit its type: %s.", name, err),
				attr.Expr.Range(),
			))
			return nil, diags
		}
		spec.Default = &conformed
	}

	return spec, diags
}
