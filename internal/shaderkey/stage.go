// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package shaderkey

import (
	"fmt"
	"strings"
)

// Stage identifies the pipeline stage a composed shader is compiled for.
type Stage int

const (
	StageVertex Stage = iota
	StageTessControl
	StageTessEvaluation
	StageGeometry
	StageFragment
	StageCompute
)

var stageNames = []string{
	StageVertex:         "vertex",
	StageTessControl:    "tess_control",
	StageTessEvaluation: "tess_evaluation",
	StageGeometry:       "geometry",
	StageFragment:       "fragment",
	StageCompute:        "compute",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// ParseStage maps a stage name to a Stage. Matching is case-insensitive and
// accepts the usual file suffixes ("vert", "frag", ...) as aliases.
func ParseStage(name string) (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "vertex", "vert", "vs":
		return StageVertex, nil
	case "tess_control", "tesc":
		return StageTessControl, nil
	case "tess_evaluation", "tese":
		return StageTessEvaluation, nil
	case "geometry", "geom", "gs":
		return StageGeometry, nil
	case "fragment", "frag", "fs":
		return StageFragment, nil
	case "compute", "comp", "cs":
		return StageCompute, nil
	}
	return 0, fmt.Errorf("unknown shader stage %q", name)
}
