package plugins

import (
	"context"
	"fmt"

	"github.com/verbkit-labs/verbkit/internal/command"
	"github.com/verbkit-labs/verbkit/internal/config"
	"github.com/verbkit-labs/verbkit/internal/errcode"
)

// Check verifies that the configuration file carries a required key.
type Check struct{}

func (Check) Meta() command.Meta {
	return command.Meta{
		Verb:    "check",
		Summary: "Verify the configuration file has a required key",
		Source:  "builtin",
		Params: []command.Param{
			{
				Name:    "required_key",
				Kind:    command.KindString,
				Default: "version",
				Usage:   "Config key that must be present",
			},
		},
	}
}

func (Check) Run(_ context.Context, inv *command.Invocation) error {
	key := inv.String("required_key")

	config.Load()
	if config.Get(key) == "" {
		return errcode.New(errcode.ConfigMissing, "missing required key: %s", key).
			With("required_key", key).
			With("config_file", config.FilePath())
	}

	inv.Result.AddCoded("check", fmt.Sprintf("key %q present", key), errcode.OK, map[string]any{
		"required_key": key,
	})
	return nil
}
