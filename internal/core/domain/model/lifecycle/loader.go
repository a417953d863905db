package lifecycle

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// rankingFile is the YAML layout of a ranking override:
//
//	order:
//	  planned: 1
//	  loaded: 2
//	  transit: 3
//	levels:
//	  received: 0
//	  planned: 1
//	  ...
type rankingFile struct {
	Order  map[string]int `yaml:"order"`
	Levels map[string]int `yaml:"levels"`
}

// LoadRanking decodes a YAML ranking document from r.
func LoadRanking(r io.Reader) (Ranking, error) {
	var file rankingFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return Ranking{}, fmt.Errorf("decode ranking: %w", err)
	}

	order, err := toStageTable(file.Order)
	if err != nil {
		return Ranking{}, err
	}
	levels, err := toStageTable(file.Levels)
	if err != nil {
		return Ranking{}, err
	}
	return NewRanking(order, levels)
}

// LoadRankingFile reads the YAML ranking at path. An empty path returns
// DefaultRanking.
func LoadRankingFile(path string) (Ranking, error) {
	if path == "" {
		return DefaultRanking(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Ranking{}, fmt.Errorf("open ranking %s: %w", path, err)
	}
	defer f.Close()

	return LoadRanking(f)
}

func toStageTable(raw map[string]int) (map[Stage]int, error) {
	table := make(map[Stage]int, len(raw))
	for name, level := range raw {
		stage, err := ParseStage(name)
		if err != nil {
			return nil, err
		}
		table[stage] = level
	}
	return table, nil
}
