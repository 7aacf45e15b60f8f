package edubridge

import (
	"bytes"
	"fmt"
	"text/template"
)

// Profile describes an agent: who it is, what it is for, and the ordered
// stages it runs. Stage instructions may reference the profile through
// template fields, e.g. {{.Purpose}}.
type Profile struct {
	AgentName string
	Purpose   string
	Stages    []StageConfig
}

// DefaultProfile returns the three-stage study assistant: research,
// explanation, consolidation.
func DefaultProfile() Profile {
	return Profile{
		AgentName: "EduBridge",
		Purpose:   "Provide free, ethical educational and career guidance to students and freshers.",
		Stages: []StageConfig{
			{
				Name: "ResearchAgent",
				Instruction: "You are a meticulous Research Agent. Your sole task is to use the web search tool " +
					"to find and return **only the most relevant raw text snippets** for the student's study topic.",
				Temperature: 0.0,
				Tools:       []Capability{CapabilitySearch},
			},
			{
				Name: "ExplanationAgent",
				Instruction: "You are a Tutor Agent. Synthesize the raw research findings into a clear, concise " +
					"educational explanation suitable for a high school student.",
				Temperature: 0.3,
			},
			{
				Name:        "ConsolidatorAgent",
				Instruction: consolidatorInstruction,
				Temperature: 0.5,
			},
		},
	}
}

const consolidatorInstruction = `You are the Study Material Consolidator Agent for the '{{.AgentName}}' project.
The project's guiding principle is to: "{{.Purpose}}".
Your final task is to reformat the provided explanation into a structured study guide that is ethical and effective. The guide **must** include:
1. A final, concise summary.
2. At least two key terms/definitions (Flashcards format).
3. One simple quiz question related to the topic, with the answer hidden at the end.`

// Validate checks the profile and every stage in it.
func (p Profile) Validate() error {
	if len(p.Stages) == 0 {
		return ErrEmptyPipeline
	}
	seen := make(map[string]bool, len(p.Stages))
	for _, s := range p.Stages {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate stage name %q: %w", s.Name, ErrValidation)
		}
		seen[s.Name] = true
	}
	return nil
}

// StageConfigs validates the profile and returns its stages with
// instruction templates expanded.
func (p Profile) StageConfigs() ([]StageConfig, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := make([]StageConfig, len(p.Stages))
	for i, s := range p.Stages {
		tmpl, err := template.New(s.Name).Option("missingkey=error").Parse(s.Instruction)
		if err != nil {
			return nil, fmt.Errorf("stage %s: parse instruction: %v: %w", s.Name, err, ErrValidation)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, p); err != nil {
			return nil, fmt.Errorf("stage %s: render instruction: %v: %w", s.Name, err, ErrValidation)
		}
		cfg := s.Clone()
		cfg.Instruction = buf.String()
		out[i] = cfg
	}
	return out, nil
}
