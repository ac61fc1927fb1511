package constants

import (
	"fmt"
	"strings"
)

// Stage is one feedback checkpoint of an internship.
type Stage string

const (
	StageInitial  Stage = "initial"
	StageMidpoint Stage = "midpoint"
	StageFinal    Stage = "final"
)

var Stages = []Stage{StageInitial, StageMidpoint, StageFinal}

func ParseStage(s string) (Stage, error) {
	switch Stage(strings.ToLower(strings.TrimSpace(s))) {
	case StageInitial:
		return StageInitial, nil
	case StageMidpoint:
		return StageMidpoint, nil
	case StageFinal:
		return StageFinal, nil
	}
	return "", fmt.Errorf("unknown feedback stage %q", s)
}

// Title is the capitalized stage name used in labels ("Initial").
func (s Stage) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// FeedbackRole says who fills in a feedback form.
type FeedbackRole string

const (
	FeedbackByMentor FeedbackRole = "mentor"
	FeedbackByIntern FeedbackRole = "intern"
)

var FeedbackRoles = []FeedbackRole{FeedbackByMentor, FeedbackByIntern}

func ParseFeedbackRole(s string) (FeedbackRole, error) {
	switch FeedbackRole(strings.ToLower(strings.TrimSpace(s))) {
	case FeedbackByMentor:
		return FeedbackByMentor, nil
	case FeedbackByIntern:
		return FeedbackByIntern, nil
	}
	return "", fmt.Errorf("unknown feedback role %q", s)
}
