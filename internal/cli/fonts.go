package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/goodnews/pkg/fonts"
	"github.com/matzehuels/goodnews/pkg/style"
)

// fontsCommand lists the font table and the face each entry resolves to.
func (c *CLI) fontsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "List font keys and the fonts they resolve to",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			reg := fonts.NewRegistry(fonts.WithOverrides(cfg.FontOverrides()))
			defer reg.Close()

			fallbacks := 0
			for i, k := range style.FontKeys {
				if i > 0 {
					fmt.Println()
				}
				res := style.Resolve(style.Config{FontKey: k, PointSize: style.DefaultPointSize})
				fmt.Println(StyleTitle.Render(string(k)) + " " + StyleDim.Render(style.FontLabels[k]))
				printKeyValue("stack", res.FontStack)

				_, src, err := reg.Font(res)
				if err != nil {
					printError("%v", err)
					continue
				}
				printKeyValue("resolved", src.String())
				if src.Kind == fonts.SourceEmbedded {
					fallbacks++
				}
			}

			if fallbacks > 0 {
				fmt.Println()
				printWarning("%d font(s) use the embedded fallback, which has no CJK glyphs", fallbacks)
				printDetail("Set a TTF path per key in the [fonts] section of the config file")
			}
			return nil
		},
	}
}
