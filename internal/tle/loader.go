package tle

import (
	"errors"
	"io/fs"
	"os"

	"github.com/signalsfoundry/doppler-validator/model"
)

// UpstreamDirective is surfaced alongside missing-input failures so the
// operator knows which step produces the expected artifacts.
const UpstreamDirective = "run the candidate producer first to generate the TLE snapshot"

// LoadFile reads a three-line TLE record from disk. An absent file is a
// missing upstream artifact, not a parse failure: the producer that
// captured the candidate series also snapshots the elements it used.
func LoadFile(path string) (model.SatelliteElements, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.SatelliteElements{}, model.MissingInputError(path, UpstreamDirective)
		}
		return model.SatelliteElements{}, model.MissingInputError(path, err.Error())
	}
	defer f.Close()

	return Parse(f, path)
}
