package service

import (
	"fmt"

	feedbackModel "internship_backend/internals/features/internships/feedback/model"
	"internship_backend/internals/helpers/dbtime"
)

var extensionWeeks = map[feedbackModel.Action]int{
	feedbackModel.ActionExtend1Week:  1,
	feedbackModel.ActionExtend2Weeks: 2,
	feedbackModel.ActionExtend3Weeks: 3,
	feedbackModel.ActionExtend4Weeks: 4,
	feedbackModel.ActionExtend5Weeks: 5,
}

// DeriveActions maps the requested action to the stored flags. Extensions are
// counted from the round milestone so repeated extensions never compound.
func DeriveActions(action feedbackModel.Action, roundMilestone dbtime.Date) (feedbackModel.MentorActions, error) {
	out := feedbackModel.MentorActions{ActionsRequested: action}

	switch action {
	case feedbackModel.ActionPayAndContinue:
		out.PaymentApproved = true
	case feedbackModel.ActionTerminatePay:
		out.PaymentApproved = true
		out.RequestTermination = true
	case feedbackModel.ActionTerminateNoPay:
		out.RequestTermination = true
	case feedbackModel.ActionDontKnow:
	default:
		weeks, ok := extensionWeeks[action]
		if !ok {
			return feedbackModel.MentorActions{}, fmt.Errorf("unknown action %q", action)
		}
		d := roundMilestone.AddWeeks(weeks)
		out.RequestExtension = true
		out.ExtensionDate = &d
	}
	return out, nil
}
