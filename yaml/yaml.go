// Package yaml loads [edubridge.Profile] definitions from YAML documents.
//
// A profile file looks like:
//
//	agent_name: EduBridge
//	purpose: Provide free educational guidance.
//	stages:
//	  - name: ResearchAgent
//	    instruction: Find raw facts.
//	    temperature: 0.0
//	    tools: [search]
//	  - name: ConsolidatorAgent
//	    instruction: Write a study guide for {{.AgentName}}.
//	    temperature: 0.5
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/edubridge"
	"gopkg.in/yaml.v3"
)

type profileDoc struct {
	AgentName string     `yaml:"agent_name"`
	Purpose   string     `yaml:"purpose"`
	Stages    []stageDoc `yaml:"stages"`
}

type stageDoc struct {
	Name        string   `yaml:"name"`
	Model       string   `yaml:"model"`
	Instruction string   `yaml:"instruction"`
	Temperature float64  `yaml:"temperature"`
	Tools       []string `yaml:"tools"`
}

// LoadProfile reads and parses the profile at path.
func LoadProfile(path string) (edubridge.Profile, error) {
	if path == "" {
		return edubridge.Profile{}, errors.New("profile path cannot be empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return edubridge.Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return ParseProfile(raw)
}

// ParseProfile decodes a profile document and validates it. Unknown keys
// are rejected so typos in stage fields surface early.
func ParseProfile(data []byte) (edubridge.Profile, error) {
	var doc profileDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return edubridge.Profile{}, fmt.Errorf("unmarshal profile: %w", err)
	}

	p := edubridge.Profile{
		AgentName: doc.AgentName,
		Purpose:   doc.Purpose,
		Stages:    make([]edubridge.StageConfig, len(doc.Stages)),
	}
	for i, s := range doc.Stages {
		cfg := edubridge.StageConfig{
			Name:        s.Name,
			Model:       s.Model,
			Instruction: s.Instruction,
			Temperature: s.Temperature,
		}
		for _, t := range s.Tools {
			cfg.Tools = append(cfg.Tools, edubridge.Capability(t))
		}
		p.Stages[i] = cfg
	}
	if err := p.Validate(); err != nil {
		return edubridge.Profile{}, fmt.Errorf("invalid profile: %w", err)
	}
	return p, nil
}

// MarshalProfile encodes p in the format ParseProfile reads.
func MarshalProfile(p edubridge.Profile) ([]byte, error) {
	doc := profileDoc{
		AgentName: p.AgentName,
		Purpose:   p.Purpose,
		Stages:    make([]stageDoc, len(p.Stages)),
	}
	for i, s := range p.Stages {
		sd := stageDoc{
			Name:        s.Name,
			Model:       s.Model,
			Instruction: s.Instruction,
			Temperature: s.Temperature,
		}
		for _, c := range s.Tools {
			sd.Tools = append(sd.Tools, string(c))
		}
		doc.Stages[i] = sd
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	return buf.Bytes(), nil
}
