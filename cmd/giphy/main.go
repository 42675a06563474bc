package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jmagar/giphy-launchbar/internal/action"
	"github.com/jmagar/giphy-launchbar/internal/api"
	"github.com/jmagar/giphy-launchbar/internal/cache"
	"github.com/jmagar/giphy-launchbar/internal/clipboard"
	"github.com/jmagar/giphy-launchbar/internal/config"
	"github.com/jmagar/giphy-launchbar/internal/model"
	"github.com/jmagar/giphy-launchbar/internal/ui"
)

// invocationTimeout bounds one launcher invocation end to end.
const invocationTimeout = 30 * time.Second

const apiLogFileName = "api.log"

func init() {
	model.ArgsDescriptionFunc = argsDescription
}

func main() {
	args := config.ParseArgs()
	os.Exit(run(args, os.Stdout))
}

// run always writes a list to stdout so the launcher has something to show;
// the exit code is non-zero only when that write fails.
func run(args *model.Args, stdout io.Writer) int {
	pretty := args.Pretty || ui.StdoutIsTerminal()

	cfg, err := config.ParseCfg(args)
	if err != nil {
		ui.PrintError(err.Error())
		return emit(stdout, action.ErrorItems(err), pretty)
	}

	if err := api.InitAPILogger(filepath.Join(cfg.CacheDir, apiLogFileName)); err != nil {
		ui.PrintWarning(err.Error())
	}

	client := api.NewClient(cfg.Preferences.Key)
	client.Rating = cfg.Preferences.Rating
	client.Lang = cfg.Preferences.Lang

	ctx, cancel := context.WithTimeout(context.Background(), invocationTimeout)
	defer cancel()

	items := execute(ctx, cfg, args, client)
	return emit(stdout, items, pretty)
}

func emit(w io.Writer, items []model.ListItem, pretty bool) int {
	if err := ui.EmitItems(w, items, pretty); err != nil {
		ui.PrintError(err.Error())
		return 1
	}
	return 0
}

// execute builds the environment for one invocation and routes it. Errors
// are rendered as a single row.
func execute(ctx context.Context, cfg *model.Config, args *model.Args, client *api.Client) []model.ListItem {
	store, err := cache.Open(cfg.CacheDir, client)
	if err != nil {
		return action.ErrorItems(err)
	}
	defer store.Close()

	env := &action.Env{
		API:        client,
		Cache:      store,
		Throttle:   cache.NewThrottle(cfg.CacheDir, cache.DefaultThrottleWindow),
		Prefs:      &cfg.Preferences,
		CommandKey: cfg.CommandKey,
		SaveKey: func(key string) error {
			return config.SaveKey(cfg.PreferencesPath, key)
		},
	}
	if helper, err := clipboard.ResolveHelper(cfg.Preferences.CopyHelper); err == nil {
		env.Copier = clipboard.NewCopier(helper)
	}

	var items []model.ListItem
	switch {
	case args.URL != nil:
		items, err = env.RunWithURL(ctx, args.URL.URL)
	case args.Action != nil:
		items, err = env.Dispatch(ctx, args.Action.Name, args.Action.Argument)
	default:
		argument := ""
		if args.Run != nil {
			argument = args.Run.Argument
		}
		items, err = env.Run(ctx, argument)
	}
	if err != nil {
		ui.PrintError(err.Error())
		return action.ErrorItems(err)
	}
	return items
}
