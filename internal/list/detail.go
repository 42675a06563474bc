package list

import (
	"encoding/json"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/jmagar/giphy-launchbar/internal/helpers"
	"github.com/jmagar/giphy-launchbar/internal/model"
)

// Detail renders a single GIF: its raw fields when dump is set, otherwise
// the list of renditions that can be copied.
func Detail(item *model.GifItem, dump bool) []model.ListItem {
	if dump {
		raw := item.Raw
		if len(raw) == 0 {
			raw, _ = json.Marshal(item)
		}
		return Dump(raw)
	}

	results := Images(item)
	if img, ok := item.Image(model.DownsizedVariant); ok && img.URL != "" {
		shortcut := model.ListItem{
			Title:              "Copy downsized to Clipboard",
			Icon:               model.IconCopy,
			Action:             model.ActionSetClipboard,
			ActionArgument:     model.ClipboardRequest{URL: img.URL, ID: item.ID},
			ActionReturnsItems: true,
		}
		results = append([]model.ListItem{shortcut}, results...)
	}
	return results
}

// Images lists every rendition with a url, width and size, ordered by key.
func Images(item *model.GifItem) []model.ListItem {
	keys := make([]string, 0, len(item.Images))
	for key, img := range item.Images {
		if img.Usable() {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	results := make([]model.ListItem, 0, len(keys))
	for _, key := range keys {
		img := item.Images[key]
		results = append(results, model.ListItem{
			Title:               helpers.VariantTitle(key),
			Subtitle:            img.URL,
			Icon:                model.IconImage,
			Badge:               img.Width + "×" + img.Height,
			Label:               sizeLabel(img),
			URL:                 img.URL,
			QuickLookURL:        img.URL,
			Action:              model.ActionSetClipboard,
			ActionArgument:      model.ClipboardRequest{URL: img.URL, ID: item.ID},
			ActionReturnsItems:  true,
			AlwaysShowsSubtitle: true,
		})
	}
	return results
}

func sizeLabel(img model.Image) string {
	n := img.SizeBytes()
	if n == 0 {
		return ""
	}
	return humanize.Bytes(n)
}
