package main

import (
	"fmt"

	"github.com/jmagar/giphy-launchbar/internal/model"
	"github.com/jmagar/giphy-launchbar/internal/ui"
)

func argsDescription() string {
	return fmt.Sprintf(`%s▸ Browse and copy GIPHY GIFs from your launcher%s

%s◆ COMMANDS%s
  %s•%s %srun%s                        List trending GIFs
  %s•%s %srun <keyword>%s              Search (prompts for an API key first)
  %s•%s %srun --command-key%s          Settings: remove key, clean cache
  %s•%s %surl <giphy url>%s            Show the renditions of one GIF
  %s•%s %saction <name> [arg]%s        Invoke an item action

%s◆ ACTIONS%s
  %s, %s, %s, %s,
  %s, %s, %s
`,
		ui.ColorCyan, ui.ColorReset,
		ui.ColorYellow, ui.ColorReset,
		ui.ColorGreen, ui.ColorReset, ui.ColorCyan, ui.ColorReset,
		ui.ColorGreen, ui.ColorReset, ui.ColorCyan, ui.ColorReset,
		ui.ColorGreen, ui.ColorReset, ui.ColorCyan, ui.ColorReset,
		ui.ColorGreen, ui.ColorReset, ui.ColorCyan, ui.ColorReset,
		ui.ColorGreen, ui.ColorReset, ui.ColorCyan, ui.ColorReset,
		ui.ColorYellow, ui.ColorReset,
		model.ActionListTrending, model.ActionSearch, model.ActionShowDetail, model.ActionSetClipboard,
		model.ActionSetKey, model.ActionCleanCache, model.ActionListSettings,
	)
}
