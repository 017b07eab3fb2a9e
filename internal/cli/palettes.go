package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazer/pkg/style"
)

// palettesCommand lists the heat-map palettes and backgrounds.
func (c *CLI) palettesCommand() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "palettes",
		Short: "List heat-map palettes and background colours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if plain {
				for _, p := range style.Palettes() {
					fmt.Fprintf(c.out(), "%s\t%s\n", p.Name, strings.Join(p.Hex(), " "))
				}
				return nil
			}
			fmt.Fprintln(c.out(), paletteTable(style.Palettes()))
			fmt.Fprintln(c.out(), backgroundTable(style.Backgrounds()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print names and hex values without styling")
	return cmd
}

// swatch renders width blocks in c.
func swatch(c colorful.Color, width int) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(strings.Repeat("█", width))
}

func paletteTable(palettes []style.Palette) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(palettes))
	for _, p := range palettes {
		var ramp strings.Builder
		for _, shade := range p.Shades {
			ramp.WriteString(swatch(shade, 2))
		}
		rows = append(rows, []string{p.Name, ramp.String(), p.Shades[0].Hex() + " … " + p.Shades[style.Shades-1].Hex()})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Palette", "Near → Far", "Range").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

func backgroundTable(backgrounds []style.Background) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(backgrounds))
	for _, b := range backgrounds {
		rows = append(rows, []string{b.Name, swatch(b.Color, 6), b.Color.Hex()})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Background", "", "Hex").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
