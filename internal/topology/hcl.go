package topology

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"vidizone.dev/netstack/internal/ctxlog"
)

// evalContext exposes Params as the var object, e.g. "${var.stack}-vpc" or var.ami_id.
func evalContext(p Params) *hcl.EvalContext {
	p = p.withDefaults()
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(map[string]cty.Value{
				"stack":         cty.StringVal(p.Stack),
				"region":        cty.StringVal(p.Region),
				"ami_id":        cty.StringVal(p.AMI),
				"instance_type": cty.StringVal(p.InstanceType),
				"key_name":      cty.StringVal(p.KeyName),
			}),
		},
		Functions: map[string]function.Function{
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
			"lower":  stdlib.LowerFunc,
		},
	}
}

// LoadFile parses and decodes an HCL topology file.
func LoadFile(ctx context.Context, path string, p Params) (*Topology, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding topology file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %s", path, diags.Error())
	}
	topo, err := decode(file.Body, p)
	if err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, err)
	}

	logger.Debug("Decoded topology file.", "path", path, "subnets", len(topo.Subnets), "instances", len(topo.Instances))
	return topo, nil
}

// Parse decodes HCL source held in memory. filename is only used in diagnostics.
func Parse(src []byte, filename string, p Params) (*Topology, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL %s: %s", filename, diags.Error())
	}
	return decode(file.Body, p)
}

func decode(body hcl.Body, p Params) (*Topology, error) {
	var topo Topology
	if diags := gohcl.DecodeBody(body, evalContext(p), &topo); diags.HasErrors() {
		return nil, fmt.Errorf("%s", diags.Error())
	}
	if topo.Stack == "" {
		topo.Stack = p.withDefaults().Stack
	}
	return &topo, nil
}
