package model

const AppName = "giphy-launchbar"

var Version = "1.2.0"

// PageSize is the number of GIFs requested per page.
const PageSize = 5

// Query defaults sent with every listing request.
const (
	DefaultRating = "R"
	DefaultLang   = "en"
)

// Named actions understood by the dispatcher.
const (
	ActionListTrending = "ListTrending"
	ActionSearch       = "Search"
	ActionShowDetail   = "ShowDetail"
	ActionSetClipboard = "SetClipboard"
	ActionSetKey       = "SetKey"
	ActionCleanCache   = "CleanCache"
	ActionListSettings = "ListSettings"
)

// Icons used in list output.
const (
	IconSettings = "font-awesome:fa-cog"
	IconTrash    = "font-awesome:fa-trash"
	IconMore     = "font-awesome:fa-angle-down"
	IconInfo     = "font-awesome:fa-info-circle"
	IconDump     = "font-awesome:info-circle"
	IconImage    = "font-awesome:fa-image"
	IconCopy     = "font-awesome:fa-copy"
	IconNotFound = "font-awesome:fa-exclamation-circle"
	IconWarning  = "font-awesome:fa-exclamation-triangle"
	IconSneeze   = "🤧"
)

// PreviewVariant is the image key used for list icons, DownsizedVariant the
// one offered by the copy shortcut in the detail view.
const (
	PreviewVariant   = "preview_gif"
	DownsizedVariant = "downsized"
)
