package model

// ListItem is one row in the launcher's result list. Field names follow the
// host's item schema.
type ListItem struct {
	Title               string     `json:"title,omitempty"`
	Subtitle            string     `json:"subtitle,omitempty"`
	Icon                string     `json:"icon,omitempty"`
	Badge               string     `json:"badge,omitempty"`
	Label               string     `json:"label,omitempty"`
	URL                 string     `json:"url,omitempty"`
	QuickLookURL        string     `json:"quickLookURL,omitempty"`
	Path                string     `json:"path,omitempty"`
	Action              string     `json:"action,omitempty"`
	ActionArgument      any        `json:"actionArgument,omitempty"`
	ActionReturnsItems  bool       `json:"actionReturnsItems,omitempty"`
	AlwaysShowsSubtitle bool       `json:"alwaysShowsSubtitle,omitempty"`
	Children            []ListItem `json:"children,omitempty"`
}
