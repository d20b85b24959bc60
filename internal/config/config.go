// Package config loads run presets from HCL files.
//
// A preset looks like:
//
//	automaton {
//	  width   = 80
//	  height  = 40
//	  rule    = "cyclic"
//	  family  = "reactive"
//	  pattern = "spiral"
//	  seed    = 7
//	}
//
//	display {
//	  tps   = 12
//	  scale = 6
//	}
//
// Every attribute is optional; absent values leave the defaults alone.
package config

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"toroca/internal/ctxlog"
)

// Automaton is the decoded automaton block.
type Automaton struct {
	Width   *int    `hcl:"width,optional"`
	Height  *int    `hcl:"height,optional"`
	Rule    *string `hcl:"rule,optional"`
	Family  *string `hcl:"family,optional"`
	Pattern *string `hcl:"pattern,optional"`
	Seed    *int64  `hcl:"seed,optional"`
}

// Display is the decoded display block.
type Display struct {
	TPS   *int `hcl:"tps,optional"`
	Scale *int `hcl:"scale,optional"`
}

// File is a decoded preset file.
type File struct {
	Automaton *Automaton `hcl:"automaton,block"`
	Display   *Display   `hcl:"display,block"`
	Remain    hcl.Body   `hcl:",remain"`
}

// Load parses and decodes the preset at path.
func Load(ctx context.Context, path string) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading preset.", "path", path)

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse preset %s: %w", path, diags)
	}
	return decode(ctx, path, f.Body)
}

// Parse decodes preset source held in memory. filename is used in
// diagnostics only.
func Parse(ctx context.Context, src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse preset %s: %w", filename, diags)
	}
	return decode(ctx, filename, f.Body)
}

func decode(ctx context.Context, name string, body hcl.Body) (*File, error) {
	var file File
	if diags := gohcl.DecodeBody(body, nil, &file); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode preset %s: %w", name, diags)
	}
	if err := checkUnknown(ctx, name, body); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Preset decoded.", "file", name,
		"has_automaton", file.Automaton != nil, "has_display", file.Display != nil)
	return &file, nil
}

var knownBlocks = map[string]bool{"automaton": true, "display": true}

// checkUnknown rejects blocks other than automaton and display, so a
// misspelled block name never turns a preset into an empty one. Top-level
// attributes have no meaning and are only warned about.
func checkUnknown(ctx context.Context, name string, body hcl.Body) error {
	sb, ok := body.(*hclsyntax.Body)
	if !ok {
		return nil
	}
	var diags hcl.Diagnostics
	for _, b := range sb.Blocks {
		if knownBlocks[b.Type] {
			continue
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Unsupported block type %q", b.Type),
			Detail:   `A preset may only contain "automaton" and "display" blocks.`,
			Subject:  b.TypeRange.Ptr(),
		})
	}
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode preset %s: %w", name, diags)
	}
	for attrName := range sb.Attributes {
		ctxlog.FromContext(ctx).Warn("Ignoring unknown preset attribute.", "file", name, "attribute", attrName)
	}
	return nil
}

// SimOptions returns the automaton block as flag-style key/value options.
// Only attributes present in the file are included.
func (f *File) SimOptions() map[string]string {
	out := map[string]string{}
	a := f.Automaton
	if a == nil {
		return out
	}
	if a.Width != nil {
		out["w"] = strconv.Itoa(*a.Width)
	}
	if a.Height != nil {
		out["h"] = strconv.Itoa(*a.Height)
	}
	if a.Rule != nil {
		out["rule"] = *a.Rule
	}
	if a.Family != nil {
		out["family"] = *a.Family
	}
	if a.Pattern != nil {
		out["pattern"] = *a.Pattern
	}
	if a.Seed != nil {
		out["seed"] = strconv.FormatInt(*a.Seed, 10)
	}
	return out
}
