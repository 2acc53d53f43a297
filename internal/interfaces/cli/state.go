package cli

import (
	"io"
	"os"
	"strings"

	"github.com/turtacn/qsphere/pkg/errors"
	"github.com/turtacn/qsphere/pkg/types/quantum"
)

// stdinPath reads the state document from standard input.
const stdinPath = "-"

// loadState resolves exactly one of a state file path or a preset name.
func loadState(path, preset string, stdin io.Reader) (*quantum.Statevector, error) {
	switch {
	case path != "" && preset != "":
		return nil, errors.New(errors.ErrCodeBadRequest, "give either a state file or --state, not both")
	case preset != "":
		sv, err := quantum.Preset(strings.ToLower(preset))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeStatePresetUnknown, "unknown preset").
				WithDetail("known=" + strings.Join(quantum.PresetNames(), ","))
		}
		return sv, nil
	case path == "":
		return nil, errors.New(errors.ErrCodeBadRequest, "a state file or --state preset is required")
	}
	return readStateFile(path, stdin)
}

func readStateFile(path string, stdin io.Reader) (*quantum.Statevector, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStateParseFailed, "failed to read state").WithDetail("path=" + path)
	}
	sv, err := quantum.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStateParseFailed, "invalid state document").WithDetail("path=" + path)
	}
	return sv, nil
}

//Personal.AI order the ending
