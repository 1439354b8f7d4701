package generator

import (
	"fmt"
	"strings"

	"github.com/vyper-tools/vyperdoc/internal/vyper"
)

// formatIndex renders docs/index.rst: the fixed header plus one toctree
// entry per contract, in input order.
func formatIndex(contracts []*vyper.Contract) string {
	var sb strings.Builder
	sb.WriteString(indexHeader)
	for _, contract := range contracts {
		sb.WriteString(fmt.Sprintf("   %s\n", contract.Name))
	}
	return sb.String()
}

// formatContract renders one contract as a complete reStructuredText page:
// underlined title, contract docstring, then one underlined section per
// populated entity category, in a fixed order. Empty categories are skipped.
func formatContract(contract *vyper.Contract) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n%s\n\n", contract.Name, strings.Repeat("=", len(contract.Name))))

	if contract.Docstring != "" {
		sb.WriteString(fmt.Sprintf("%s\n\n", contract.Docstring))
	}

	if len(contract.Enums) > 0 {
		sb.WriteString(sectionHeader("Enums"))
		for _, e := range contract.Enums {
			writeBlock(&sb, formatEnum(e))
		}
	}

	if len(contract.Structs) > 0 {
		sb.WriteString(sectionHeader("Structs"))
		for _, s := range contract.Structs {
			writeBlock(&sb, formatStruct(s))
		}
	}

	if len(contract.Events) > 0 {
		sb.WriteString(sectionHeader("Events"))
		for _, e := range contract.Events {
			writeBlock(&sb, formatEvent(e))
		}
	}

	if len(contract.Constants) > 0 {
		sb.WriteString(sectionHeader("Constants"))
		for _, c := range contract.Constants {
			writeBlock(&sb, formatConstant(c))
		}
	}

	if len(contract.Variables) > 0 {
		sb.WriteString(sectionHeader("Variables"))
		for _, v := range contract.Variables {
			writeBlock(&sb, formatVariable(v))
		}
	}

	if external := contract.ExternalFunctions(); len(external) > 0 {
		sb.WriteString(sectionHeader("External Functions"))
		for _, f := range external {
			writeBlock(&sb, formatFunction(f))
		}
	}

	if internal := contract.InternalFunctions(); len(internal) > 0 {
		sb.WriteString(sectionHeader("Internal Functions"))
		for _, f := range internal {
			writeBlock(&sb, formatFunction(f))
		}
	}

	return sb.String()
}

// formatEnum renders an enum as a py:enum directive with one member per line.
func formatEnum(e vyper.Enum) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(".. py:enum:: %s\n   :members:\n\n", e.Name))
	for _, value := range e.Values {
		sb.WriteString(fmt.Sprintf("   %s\n", value))
	}
	return sb.String()
}

// formatStruct renders a struct as a py:class directive with one nested
// py:attribute per field.
func formatStruct(s vyper.Struct) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(".. py:class:: %s\n\n", s.Name))
	for _, field := range s.Fields {
		sb.WriteString(fmt.Sprintf("   .. py:attribute:: %s.%s\n\n", s.Name, field.Name))
		sb.WriteString(fmt.Sprintf("      %s\n\n", field.Type))
	}
	return sb.String()
}

// formatEvent renders an event as a py:event directive with one :param:
// line per field. Indexed fields carry "indexed" as the description.
func formatEvent(e vyper.Event) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(".. py:event:: %s\n\n", e.Name))
	for _, field := range e.Fields {
		description := ""
		if field.Indexed {
			description = "indexed"
		}
		sb.WriteString(fmt.Sprintf("   :param %s %s: %s\n", field.Type.Name, field.Name, description))
	}
	return sb.String()
}

// formatConstant renders a constant as a py:data directive with type and
// raw source value.
func formatConstant(c vyper.Constant) string {
	return fmt.Sprintf(".. py:data:: %s\n\n   :type: %s\n   :value: %s\n", c.Name, c.Type.Name, c.Value)
}

// formatVariable renders a state variable as a py:attribute directive with
// type and visibility.
func formatVariable(v vyper.Variable) string {
	return fmt.Sprintf(".. py:attribute:: %s\n\n   :type: %s\n   :visibility: %s\n", v.Name, v.Type.Name, v.Visibility)
}

// formatFunction renders a function as a py:function directive with the full
// signature, followed by its docstring when present.
func formatFunction(f vyper.Function) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(".. py:function:: %s\n\n", f.Signature()))
	if f.Docstring != "" {
		sb.WriteString(fmt.Sprintf("   %s\n\n", f.Docstring))
	}
	return sb.String()
}

// sectionHeader renders a section title underlined with dashes.
func sectionHeader(name string) string {
	return fmt.Sprintf("%s\n%s\n\n", name, strings.Repeat("-", len(name)))
}

// writeBlock appends an entity block and makes sure a blank line follows it,
// so whatever comes next starts a fresh RST block.
func writeBlock(sb *strings.Builder, block string) {
	sb.WriteString(block)
	if !strings.HasSuffix(block, "\n\n") {
		sb.WriteString("\n")
	}
}
