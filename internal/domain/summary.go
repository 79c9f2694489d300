package domain

import "fmt"

// Summary is the dashboard header data: how many trips exist and how they
// are spread over the stages.
type Summary struct {
	Total   int           `json:"total"`
	ByStage map[Stage]int `json:"byStage"`
	Label   string        `json:"label"`
}

// Summarize counts trips per stage. Every known stage is present in ByStage,
// even with a zero count.
func Summarize(trips []Trip) Summary {
	s := Summary{Total: len(trips), ByStage: make(map[Stage]int, len(Stages))}
	for _, st := range Stages {
		s.ByStage[st] = 0
	}
	for _, t := range trips {
		if t.Stage.Valid() {
			s.ByStage[t.Stage]++
		}
	}
	switch s.Total {
	case 0:
		s.Label = "No Adventures Yet"
	case 1:
		s.Label = "1 Adventure"
	default:
		s.Label = fmt.Sprintf("%d Adventures", s.Total)
	}
	return s
}
