package model

// Preferences is the persisted state of the action. Only Key is required;
// the remaining fields override built-in defaults when set.
type Preferences struct {
	Key        string `json:"key"`
	CachePath  string `json:"cachePath,omitempty"`
	Rating     string `json:"rating,omitempty"`
	Lang       string `json:"lang,omitempty"`
	CopyHelper string `json:"copyHelper,omitempty"`
}

// HasKey reports whether an API key has been stored.
func (p *Preferences) HasKey() bool {
	return p != nil && p.Key != ""
}

// Config is the resolved runtime configuration for one invocation.
type Config struct {
	Preferences     Preferences
	PreferencesPath string
	CacheDir        string
	CommandKey      bool
	Pretty          bool
}

// ArgsDescriptionFunc is set by package main to provide the help text shown
// by go-arg. If nil, Description() returns an empty string.
var ArgsDescriptionFunc func() string

// Args holds CLI arguments parsed by go-arg.
type Args struct {
	Run    *RunCmd    `arg:"subcommand:run" help:"handle the text typed into the launcher"`
	URL    *URLCmd    `arg:"subcommand:url" help:"handle a URL sent to the action"`
	Action *ActionCmd `arg:"subcommand:action" help:"invoke a named action with its argument"`

	Config     string `arg:"--config,env:GIPHY_LB_CONFIG" help:"path to preferences.json"`
	CacheDir   string `arg:"--cache-dir,env:GIPHY_LB_CACHE" help:"directory for cached images"`
	CommandKey bool   `arg:"--command-key,env:LB_OPTION_COMMAND_KEY" help:"the command key was held"`
	Pretty     bool   `arg:"--pretty" help:"indent JSON output"`
}

// RunCmd is the default entry point: no argument lists trending GIFs.
type RunCmd struct {
	Argument string `arg:"positional"`
}

// URLCmd handles a giphy.com page URL.
type URLCmd struct {
	URL string `arg:"positional,required"`
}

// ActionCmd invokes a named action, as recorded in ListItem.Action.
type ActionCmd struct {
	Name     string `arg:"positional,required"`
	Argument string `arg:"positional"`
}

// Description provides custom help text for go-arg.
func (Args) Description() string {
	if ArgsDescriptionFunc != nil {
		return ArgsDescriptionFunc()
	}
	return ""
}

// Version is reported by --version.
func (Args) Version() string {
	return AppName + " " + Version
}
