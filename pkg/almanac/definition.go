package almanac

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-remap/pkg/remap"
)

// definition is the TOML and YAML layout of an almanac.
type definition struct {
	Seeds []uint64     `toml:"seeds" yaml:"seeds"`
	Maps  []mapSection `toml:"maps"  yaml:"maps"`
}

type mapSection struct {
	// Name defaults to "<from>-to-<to>".
	Name string   `toml:"name" yaml:"name"`
	From string   `toml:"from" yaml:"from"`
	To   string   `toml:"to"   yaml:"to"`
	Rows []string `toml:"rows" yaml:"rows"`
}

func (d definition) almanac() (*Almanac, error) {
	alm := &Almanac{
		Seeds: d.Seeds,
		Rows:  make(map[string][]string, len(d.Maps)),
	}

	for i, section := range d.Maps {
		if section.From == "" || section.To == "" {
			return nil, errors.Wrapf(ErrMissingStage, "map %d", i)
		}

		name := section.Name
		if name == "" {
			name = section.From + stageLink + section.To
		}

		err := alm.declare(remap.Descriptor{Name: name, From: remap.Stage(section.From), To: remap.Stage(section.To)})
		if err != nil {
			return nil, errors.Wrapf(err, "map %d", i)
		}

		if len(section.Rows) > 0 {
			alm.Rows[name] = section.Rows
		}
	}

	return alm, nil
}

// ParseTOML reads an almanac written in TOML.
func ParseTOML(r io.Reader) (*Almanac, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read TOML almanac")
	}

	var def definition

	err = toml.Unmarshal(data, &def)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse TOML almanac")
	}

	return def.almanac()
}

// ParseYAML reads an almanac written in YAML.
func ParseYAML(r io.Reader) (*Almanac, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read YAML almanac")
	}

	var def definition

	err = yaml.Unmarshal(data, &def)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse YAML almanac")
	}

	return def.almanac()
}

// Load reads the almanac at path. The format follows the extension: .toml, .yaml or .yml,
// and the text format for .txt or no extension.
func Load(path string) (*Almanac, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer f.Close()

	var alm *Almanac

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		alm, err = ParseTOML(f)
	case ".yaml", ".yml":
		alm, err = ParseYAML(f)
	case ".txt", "":
		alm, err = Parse(f)
	default:
		return nil, errors.Wrap(ErrUnsupportedFormat, ext)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "unable to load %s", path)
	}

	return alm, nil
}
