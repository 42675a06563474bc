package list

import "github.com/jmagar/giphy-launchbar/internal/model"

// Settings lists the maintenance actions. cacheInfo summarises the cache and
// imagesDir is shown as a child row that opens the directory.
func Settings(imagesDir, cacheInfo string) []model.ListItem {
	return []model.ListItem{
		{
			Title:          "Remove saved API key",
			Icon:           model.IconSettings,
			Action:         model.ActionSetKey,
			ActionArgument: "",
		},
		{
			Title:    "Clean cache",
			Subtitle: cacheInfo,
			Icon:     model.IconTrash,
			Action:   model.ActionCleanCache,
			Children: []model.ListItem{{Title: imagesDir, Path: imagesDir}},
		},
	}
}
