package plugins

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/verbkit-labs/verbkit/internal/command"
	"github.com/verbkit-labs/verbkit/internal/errcode"
)

// Ingest reads a data file of a declared category and records what it saw.
type Ingest struct{}

func (Ingest) Meta() command.Meta {
	return command.Meta{
		Verb:    "ingest",
		Summary: "Ingest a data file",
		Source:  "builtin",
		Params: []command.Param{
			{
				Name:     "data_type",
				Kind:     command.KindChoice,
				Required: true,
				Choices:  []string{"users", "orders", "events"},
				Usage:    "Category of the file",
			},
			{
				Name:     "data_file",
				Kind:     command.KindFile,
				Required: true,
				Usage:    "Input file path",
			},
		},
	}
}

func (Ingest) Run(_ context.Context, inv *command.Invocation) error {
	dataType := inv.String("data_type")
	path := inv.String("data_file")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errcode.New(errcode.InputNotFound, "input file not found: %s", path).
				With("data_file", path)
		}
		return errcode.New(errcode.EnvIO, "reading %s: %v", path, err).
			With("data_file", path)
	}

	inv.Result.AddCoded("ingest", "ingest completed", errcode.OK, map[string]any{
		"data_type": dataType,
		"bytes":     len(data),
	})
	return nil
}
