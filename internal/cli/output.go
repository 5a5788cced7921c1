// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-slip39.
//
// go-slip39 is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeremyhahn/go-slip39/pkg/slip39"
	"gopkg.in/yaml.v3"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText  OutputFormat = "text"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
	OutputFormatWords OutputFormat = "words"
)

// wordsPerRow is the number of words per line in the words rendering.
const wordsPerRow = 3

// ParseOutputFormat validates an output format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML, OutputFormatWords:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

// SplitReport is the structured form of a split. Indices are one based.
type SplitReport struct {
	Identifier        uint16        `json:"identifier" yaml:"identifier"`
	Extendable        bool          `json:"extendable" yaml:"extendable"`
	IterationExponent uint8         `json:"iteration_exponent" yaml:"iteration_exponent"`
	GroupCount        int           `json:"group_count" yaml:"group_count"`
	GroupThreshold    int           `json:"group_threshold" yaml:"group_threshold"`
	Groups            []GroupReport `json:"groups" yaml:"groups"`
}

// GroupReport describes one group of a split.
type GroupReport struct {
	GroupIndex      int           `json:"group_index" yaml:"group_index"`
	MemberThreshold int           `json:"member_threshold" yaml:"member_threshold"`
	MemberCount     int           `json:"member_count" yaml:"member_count"`
	Shares          []ShareReport `json:"shares" yaml:"shares"`
}

// ShareReport is one mnemonic of a group.
type ShareReport struct {
	GroupIndex  int    `json:"group_index" yaml:"group_index"`
	MemberIndex int    `json:"member_index" yaml:"member_index"`
	Mnemonic    string `json:"mnemonic" yaml:"mnemonic"`
}

// NewSplitReport converts a split into its report form.
func NewSplitReport(s *slip39.Slip39) *SplitReport {
	r := &SplitReport{
		Identifier:        s.Identifier(),
		Extendable:        s.Extendable(),
		IterationExponent: s.IterationExponent(),
		GroupCount:        s.GroupCount(),
		GroupThreshold:    s.GroupThreshold(),
	}
	for _, g := range s.Groups() {
		gr := GroupReport{
			GroupIndex:      g.GroupIndex + 1,
			MemberThreshold: g.MemberThreshold,
			MemberCount:     g.MemberCount(),
		}
		for i, m := range g.Mnemonics {
			gr.Shares = append(gr.Shares, ShareReport{
				GroupIndex:  g.GroupIndex + 1,
				MemberIndex: g.Shares[i].MemberIndex + 1,
				Mnemonic:    m,
			})
		}
		r.Groups = append(r.Groups, gr)
	}
	return r
}

// SecretReport is the recovered master secret.
type SecretReport struct {
	Format string `json:"format" yaml:"format"`
	Secret string `json:"secret" yaml:"secret"`
}

// Printer handles formatted output
type Printer struct {
	format   OutputFormat
	writer   io.Writer
	renderer *lipgloss.Renderer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format:   OutputFormat(strings.ToLower(format)),
		writer:   writer,
		renderer: lipgloss.NewRenderer(writer),
	}
}

// PrintSplit prints the mnemonics of a split
func (p *Printer) PrintSplit(r *SplitReport) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(r)
	case OutputFormatYAML:
		return p.printYAML(r)
	case OutputFormatWords:
		return p.printWords(r)
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Identifier: %d\n", r.Identifier)
		fmt.Fprintf(p.writer, "Groups: %d of %d required\n", r.GroupThreshold, r.GroupCount)
		for _, g := range r.Groups {
			fmt.Fprintf(p.writer, "\nGroup %d of %d (%d of %d shares required):\n",
				g.GroupIndex, r.GroupCount, g.MemberThreshold, g.MemberCount)
			for _, s := range g.Shares {
				fmt.Fprintln(p.writer, s.Mnemonic)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// printWords renders each mnemonic as rows of numbered words with the
// identifying prefix of every word highlighted.
func (p *Printer) printWords(r *SplitReport) error {
	title := p.renderer.NewStyle().Bold(true)
	prefix := p.renderer.NewStyle().Bold(true).Underline(true)

	fmt.Fprintln(p.writer, title.Render(fmt.Sprintf("Identifier %d: %d of %d groups required",
		r.Identifier, r.GroupThreshold, r.GroupCount)))
	for _, g := range r.Groups {
		fmt.Fprintln(p.writer)
		fmt.Fprintln(p.writer, title.Render(fmt.Sprintf("Group %d of %d: %d of %d shares required",
			g.GroupIndex, r.GroupCount, g.MemberThreshold, g.MemberCount)))
		for _, s := range g.Shares {
			fmt.Fprintf(p.writer, "\n  Share %d of %d\n", s.MemberIndex, g.MemberCount)
			words := strings.Fields(s.Mnemonic)
			for i := 0; i < len(words); i += wordsPerRow {
				var row strings.Builder
				row.WriteString("  ")
				for j := i; j < i+wordsPerRow && j < len(words); j++ {
					w := words[j]
					pre := slip39.UniquePrefix(w)
					fmt.Fprintf(&row, "  %2d %s%s%s", j+1, prefix.Render(pre), w[len(pre):],
						strings.Repeat(" ", 8-len(w)))
				}
				fmt.Fprintln(p.writer, strings.TrimRight(row.String(), " "))
			}
		}
	}
	return nil
}

// PrintSecret prints a recovered master secret
func (p *Printer) PrintSecret(r *SecretReport) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(r)
	case OutputFormatYAML:
		return p.printYAML(r)
	case OutputFormatText, OutputFormatWords:
		fmt.Fprintln(p.writer, r.Secret)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintShareInfo prints the metadata of one mnemonic
func (p *Printer) PrintShareInfo(info *slip39.ShareInfo) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(info)
	case OutputFormatYAML:
		return p.printYAML(info)
	case OutputFormatText, OutputFormatWords:
		fmt.Fprintf(p.writer, "Share Information:\n")
		fmt.Fprintf(p.writer, "  Identifier:         %d\n", info.Identifier)
		fmt.Fprintf(p.writer, "  Extendable:         %t\n", info.Extendable)
		fmt.Fprintf(p.writer, "  Iteration Exponent: %d (%d iterations)\n", info.IterationExponent, info.Iterations)
		fmt.Fprintf(p.writer, "  Group:              %d of %d (%d required)\n",
			info.GroupNumber, info.GroupCount, info.GroupThreshold)
		fmt.Fprintf(p.writer, "  Member:             %d (%d required)\n", info.MemberNumber, info.MemberThreshold)
		fmt.Fprintf(p.writer, "  Value:              %d bytes\n", info.ValueBytes)
		fmt.Fprintf(p.writer, "  Words:              %d\n", info.Words)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(errorReport(err))
	case OutputFormatYAML:
		return p.printYAML(errorReport(err))
	default:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	}
}

func errorReport(err error) map[string]interface{} {
	report := map[string]interface{}{
		"status": "error",
		"error":  err.Error(),
	}
	if kind := slip39.KindOf(err); kind != slip39.KindUnknown {
		report["kind"] = kind.String()
	}
	return report
}

// printJSON prints data as JSON
func (p *Printer) printJSON(data interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// printYAML prints data as YAML
func (p *Printer) printYAML(data interface{}) error {
	encoder := yaml.NewEncoder(p.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}
