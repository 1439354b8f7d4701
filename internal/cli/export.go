package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vyper-tools/vyperdoc/internal/builder"
	"github.com/vyper-tools/vyperdoc/internal/config"
	"github.com/vyper-tools/vyperdoc/internal/vyper"
)

var (
	exportFormatFlag string
	exportOutputFlag string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [contracts-dir]",
	Short: "Export the extracted contract model as JSON or YAML",
	Long: `Export extracts the contracts and writes their documentation model as
structured data instead of Sphinx pages. All types appear in Vyper
source form, so the output is useful for diffing public interfaces
between versions or feeding custom renderers.

Examples:
  # Print the contract model as JSON
  vyperdoc export ./contracts

  # Export as YAML to a file
  vyperdoc export ./contracts --format yaml --output contracts.yml
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormatFlag, "format", "json", "Export format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutputFlag, "output", "o", "", "File to write to (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		cfg.Contracts = args[0]
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return executeExport(cmd.Context(), cfg, exportFormatFlag, exportOutputFlag, cmd.OutOrStdout())
}

// executeExport extracts the contracts and writes the encoded model to
// outputPath, or to out when no path is given.
func executeExport(ctx context.Context, cfg *config.Config, format, outputPath string, out io.Writer) error {
	switch format {
	case "json", "yaml":
	default:
		return fmt.Errorf("unsupported export format: %q (supported: json, yaml)", format)
	}

	discovery, err := builder.NewContractDiscovery(cfg.Contracts, cfg.Include, cfg.Exclude)
	if err != nil {
		return fmt.Errorf("failed to configure contract discovery: %w", err)
	}

	pipeline := builder.NewPipeline(cfg.Contracts, discovery, vyper.NewAssembler(vyper.DefaultVocabulary()), nil, nil)
	result, err := pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	exports := make([]contractExport, 0, len(result.Contracts))
	for _, contract := range result.Contracts {
		exports = append(exports, exportContract(contract))
	}

	var data []byte
	switch format {
	case "json":
		data, err = json.MarshalIndent(exports, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case "yaml":
		data, err = yaml.Marshal(exports)
	}
	if err != nil {
		return fmt.Errorf("failed to encode contracts: %w", err)
	}

	if outputPath == "" {
		_, err := out.Write(data)
		return err
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	fmt.Fprintf(out, "✓ Exported %d contract(s) to %s\n", len(exports), outputPath)
	return nil
}

// contractExport mirrors vyper.Contract with every type rendered as its
// Vyper source string.
type contractExport struct {
	Name      string           `json:"name" yaml:"name"`
	Path      string           `json:"path" yaml:"path"`
	Docstring string           `json:"docstring,omitempty" yaml:"docstring,omitempty"`
	Enums     []enumExport     `json:"enums,omitempty" yaml:"enums,omitempty"`
	Structs   []structExport   `json:"structs,omitempty" yaml:"structs,omitempty"`
	Events    []eventExport    `json:"events,omitempty" yaml:"events,omitempty"`
	Constants []constantExport `json:"constants,omitempty" yaml:"constants,omitempty"`
	Variables []variableExport `json:"variables,omitempty" yaml:"variables,omitempty"`
	Functions []functionExport `json:"functions,omitempty" yaml:"functions,omitempty"`
}

type enumExport struct {
	Name   string   `json:"name" yaml:"name"`
	Values []string `json:"values" yaml:"values"`
}

type fieldExport struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

type structExport struct {
	Name   string        `json:"name" yaml:"name"`
	Fields []fieldExport `json:"fields" yaml:"fields"`
}

type eventFieldExport struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Indexed bool   `json:"indexed,omitempty" yaml:"indexed,omitempty"`
}

type eventExport struct {
	Name   string             `json:"name" yaml:"name"`
	Fields []eventFieldExport `json:"fields" yaml:"fields"`
}

type constantExport struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

type variableExport struct {
	Name       string `json:"name" yaml:"name"`
	Type       string `json:"type" yaml:"type"`
	Visibility string `json:"visibility" yaml:"visibility"`
}

type functionExport struct {
	Name       string        `json:"name" yaml:"name"`
	Signature  string        `json:"signature" yaml:"signature"`
	Params     []fieldExport `json:"params,omitempty" yaml:"params,omitempty"`
	ReturnType string        `json:"return_type,omitempty" yaml:"return_type,omitempty"`
	Visibility string        `json:"visibility" yaml:"visibility"`
	Docstring  string        `json:"docstring,omitempty" yaml:"docstring,omitempty"`
}

func exportContract(contract *vyper.Contract) contractExport {
	export := contractExport{
		Name:      contract.Name,
		Path:      contract.Path,
		Docstring: contract.Docstring,
	}

	for _, enum := range contract.Enums {
		export.Enums = append(export.Enums, enumExport{Name: enum.Name, Values: enum.Values})
	}
	for _, s := range contract.Structs {
		export.Structs = append(export.Structs, structExport{Name: s.Name, Fields: exportParams(s.Fields)})
	}
	for _, event := range contract.Events {
		fields := make([]eventFieldExport, 0, len(event.Fields))
		for _, field := range event.Fields {
			fields = append(fields, eventFieldExport{
				Name:    field.Name,
				Type:    field.Type.String(),
				Indexed: field.Indexed,
			})
		}
		export.Events = append(export.Events, eventExport{Name: event.Name, Fields: fields})
	}
	for _, constant := range contract.Constants {
		export.Constants = append(export.Constants, constantExport{
			Name:  constant.Name,
			Type:  constant.Type.String(),
			Value: constant.Value,
		})
	}
	for _, variable := range contract.Variables {
		export.Variables = append(export.Variables, variableExport{
			Name:       variable.Name,
			Type:       variable.Type.String(),
			Visibility: variable.Visibility,
		})
	}
	for _, function := range contract.Functions {
		fn := functionExport{
			Name:       function.Name,
			Signature:  function.Signature(),
			Params:     exportParams(function.Params),
			Visibility: function.Visibility,
			Docstring:  function.Docstring,
		}
		if function.ReturnType != nil {
			fn.ReturnType = function.ReturnType.String()
		}
		export.Functions = append(export.Functions, fn)
	}

	return export
}

func exportParams(params []vyper.Param) []fieldExport {
	fields := make([]fieldExport, 0, len(params))
	for _, param := range params {
		fields = append(fields, fieldExport{Name: param.Name, Type: param.Type.String()})
	}
	return fields
}
