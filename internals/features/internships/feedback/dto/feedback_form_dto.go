package dto

import (
	"fmt"
	"strings"

	feedbackModel "internship_backend/internals/features/internships/feedback/model"
	"internship_backend/internals/helpers/dbtime"
)

/*
Forms accept application/x-www-form-urlencoded (form tags) or JSON (json tags).
Booleans are checkboxes: an absent key means false. Form values go through
strconv.ParseBool (True, false, 1...); JSON needs real true/false.
*/

// Form is the submitted body of one feedback variant.
type Form interface {
	ApplyTo(rec feedbackModel.Feedback) error
}

// MentorForm forms also carry the requested administrative action.
type MentorForm interface {
	Form
	RequestedAction() feedbackModel.Action
}

/* ===================== FIELD GROUPS ===================== */

type MeetingForm struct {
	MentorAnswersQuestions    bool `form:"mentor_answers_questions" json:"mentor_answers_questions"`
	InternAsksQuestions       bool `form:"intern_asks_questions" json:"intern_asks_questions"`
	MentorSupportWhenStuck    bool `form:"mentor_support_when_stuck" json:"mentor_support_when_stuck"`
	MeetsPrivately            bool `form:"meets_privately" json:"meets_privately"`
	MeetsOverPhoneOrVideoChat bool `form:"meets_over_phone_or_video_chat" json:"meets_over_phone_or_video_chat"`
	InternMissedMeetings      bool `form:"intern_missed_meetings" json:"intern_missed_meetings"`
	TalkAboutProjectProgress  bool `form:"talk_about_project_progress" json:"talk_about_project_progress"`
	BlogCreated               bool `form:"blog_created" json:"blog_created"`
}

func (f MeetingForm) toModel() feedbackModel.MeetingAnswers {
	return feedbackModel.MeetingAnswers{
		MentorAnswersQuestions:    f.MentorAnswersQuestions,
		InternAsksQuestions:       f.InternAsksQuestions,
		MentorSupportWhenStuck:    f.MentorSupportWhenStuck,
		MeetsPrivately:            f.MeetsPrivately,
		MeetsOverPhoneOrVideoChat: f.MeetsOverPhoneOrVideoChat,
		InternMissedMeetings:      f.InternMissedMeetings,
		TalkAboutProjectProgress:  f.TalkAboutProjectProgress,
		BlogCreated:               f.BlogCreated,
	}
}

type ProgressForm struct {
	InternHelpRequestsFrequency    string `form:"intern_help_requests_frequency" json:"intern_help_requests_frequency" validate:"required,oneof=multiple_daily once_daily multiple_weekly once_weekly every_two_weeks once_monthly not_applicable"`
	MentorHelpResponseTime         string `form:"mentor_help_response_time" json:"mentor_help_response_time" validate:"required,oneof=hours_3 hours_6 hours_12 days_1 days_2 days_4 days_6 longer not_applicable"`
	InternContributionFrequency    string `form:"intern_contribution_frequency" json:"intern_contribution_frequency" validate:"required,oneof=multiple_daily once_daily multiple_weekly once_weekly every_two_weeks once_monthly not_applicable"`
	MentorReviewResponseTime       string `form:"mentor_review_response_time" json:"mentor_review_response_time" validate:"required,oneof=hours_3 hours_6 hours_12 days_1 days_2 days_4 days_6 longer not_applicable"`
	InternContributionRevisionTime string `form:"intern_contribution_revision_time" json:"intern_contribution_revision_time" validate:"required,oneof=hours_3 hours_6 hours_12 days_1 days_2 days_4 days_6 longer not_applicable"`
}

func (f ProgressForm) toModel() feedbackModel.ProgressAnswers {
	return feedbackModel.ProgressAnswers{
		InternHelpRequestsFrequency:    feedbackModel.Frequency(f.InternHelpRequestsFrequency),
		MentorHelpResponseTime:         feedbackModel.ResponseTime(f.MentorHelpResponseTime),
		InternContributionFrequency:    feedbackModel.Frequency(f.InternContributionFrequency),
		MentorReviewResponseTime:       feedbackModel.ResponseTime(f.MentorReviewResponseTime),
		InternContributionRevisionTime: feedbackModel.ResponseTime(f.InternContributionRevisionTime),
	}
}

type MentorReportForm struct {
	LastContact      string `form:"last_contact" json:"last_contact" validate:"required,datetime=2006-01-02"`
	FullTimeEffort   bool   `form:"full_time_effort" json:"full_time_effort"`
	ProgressReport   string `form:"progress_report" json:"progress_report" validate:"required"`
	MentorsReport    string `form:"mentors_report" json:"mentors_report" validate:"required"`
	ActionsRequested string `form:"actions_requested" json:"actions_requested" validate:"required,oneof=pay_and_continue terminate_pay terminate_no_pay dont_know ext_1_week ext_2_week ext_3_week ext_4_week ext_5_week"`
}

func (f MentorReportForm) RequestedAction() feedbackModel.Action {
	return feedbackModel.Action(f.ActionsRequested)
}

func (f MentorReportForm) toModel() (feedbackModel.MentorReport, error) {
	d, err := dbtime.ParseDate(f.LastContact)
	if err != nil {
		return feedbackModel.MentorReport{}, fmt.Errorf("last_contact: %w", err)
	}
	return feedbackModel.MentorReport{
		LastContact:    d,
		FullTimeEffort: f.FullTimeEffort,
		ProgressReport: strings.TrimSpace(f.ProgressReport),
		MentorsReport:  strings.TrimSpace(f.MentorsReport),
	}, nil
}

type InternReportForm struct {
	LastContact    string `form:"last_contact" json:"last_contact" validate:"required,datetime=2006-01-02"`
	MentorSupport  string `form:"mentor_support" json:"mentor_support" validate:"required"`
	HoursWorked    string `form:"hours_worked" json:"hours_worked" validate:"required,oneof=hours_20 hours_30 hours_40 hours_50 hours_60"`
	TimeComments   string `form:"time_comments" json:"time_comments"`
	ProgressReport string `form:"progress_report" json:"progress_report" validate:"required"`

	ShareMentorFeedbackWithCommunityCoordinator bool `form:"share_mentor_feedback_with_community_coordinator" json:"share_mentor_feedback_with_community_coordinator"`
}

func (f InternReportForm) toModel() (feedbackModel.InternReport, error) {
	d, err := dbtime.ParseDate(f.LastContact)
	if err != nil {
		return feedbackModel.InternReport{}, fmt.Errorf("last_contact: %w", err)
	}
	return feedbackModel.InternReport{
		LastContact:    d,
		MentorSupport:  strings.TrimSpace(f.MentorSupport),
		HoursWorked:    feedbackModel.HoursWorked(f.HoursWorked),
		TimeComments:   strings.TrimSpace(f.TimeComments),
		ProgressReport: strings.TrimSpace(f.ProgressReport),

		ShareMentorFeedbackWithCommunityCoordinator: f.ShareMentorFeedbackWithCommunityCoordinator,
	}, nil
}

type SurveyForm struct {
	BlogFrequency               string `form:"blog_frequency" json:"blog_frequency" validate:"required,oneof=week1 week2 week3 week4 week5 week6 never no_opinion"`
	BlogPromptsCausedWriting    string `form:"blog_prompts_caused_writing" json:"blog_prompts_caused_writing" validate:"required,oneof=yes no no_opinion"`
	BlogPromptsCausedOverhead   string `form:"blog_prompts_caused_overhead" json:"blog_prompts_caused_overhead" validate:"required,oneof=yes no no_opinion"`
	RecommendBlogPrompts        string `form:"recommend_blog_prompts" json:"recommend_blog_prompts" validate:"required,oneof=yes no no_opinion"`
	ZulipCausedInternDiscussion string `form:"zulip_caused_intern_discussion" json:"zulip_caused_intern_discussion" validate:"required,oneof=yes no no_opinion"`
	ZulipCausedMentorDiscussion string `form:"zulip_caused_mentor_discussion" json:"zulip_caused_mentor_discussion" validate:"required,oneof=yes no no_opinion"`
	RecommendZulip              string `form:"recommend_zulip" json:"recommend_zulip" validate:"required,oneof=yes no no_opinion"`
	FeedbackForOrganizers       string `form:"feedback_for_organizers" json:"feedback_for_organizers" validate:"required"`
}

func (f SurveyForm) toModel() feedbackModel.ProgramSurvey {
	return feedbackModel.ProgramSurvey{
		BlogFrequency:               feedbackModel.Cadence(f.BlogFrequency),
		BlogPromptsCausedWriting:    feedbackModel.Opinion(f.BlogPromptsCausedWriting),
		BlogPromptsCausedOverhead:   feedbackModel.Opinion(f.BlogPromptsCausedOverhead),
		RecommendBlogPrompts:        feedbackModel.Opinion(f.RecommendBlogPrompts),
		ZulipCausedInternDiscussion: feedbackModel.Opinion(f.ZulipCausedInternDiscussion),
		ZulipCausedMentorDiscussion: feedbackModel.Opinion(f.ZulipCausedMentorDiscussion),
		RecommendZulip:              feedbackModel.Opinion(f.RecommendZulip),
		FeedbackForOrganizers:       strings.TrimSpace(f.FeedbackForOrganizers),
	}
}

/* ===================== VARIANTS ===================== */

type InitialMentorForm struct {
	MeetingForm
	MentorReportForm
}

func (f *InitialMentorForm) ApplyTo(rec feedbackModel.Feedback) error {
	m, ok := rec.(*feedbackModel.InitialMentorFeedbackModel)
	if !ok {
		return wrongRecord(f, rec)
	}
	report, err := f.MentorReportForm.toModel()
	if err != nil {
		return err
	}
	m.MeetingAnswers = f.MeetingForm.toModel()
	m.MentorReport = report
	return nil
}

type InitialInternForm struct {
	MeetingForm
	InternReportForm
}

func (f *InitialInternForm) ApplyTo(rec feedbackModel.Feedback) error {
	m, ok := rec.(*feedbackModel.InitialInternFeedbackModel)
	if !ok {
		return wrongRecord(f, rec)
	}
	report, err := f.InternReportForm.toModel()
	if err != nil {
		return err
	}
	m.MeetingAnswers = f.MeetingForm.toModel()
	m.InternReport = report
	return nil
}

type MidpointMentorForm struct {
	ProgressForm
	MentorReportForm
}

func (f *MidpointMentorForm) ApplyTo(rec feedbackModel.Feedback) error {
	m, ok := rec.(*feedbackModel.MidpointMentorFeedbackModel)
	if !ok {
		return wrongRecord(f, rec)
	}
	report, err := f.MentorReportForm.toModel()
	if err != nil {
		return err
	}
	m.ProgressAnswers = f.ProgressForm.toModel()
	m.MentorReport = report
	return nil
}

type MidpointInternForm struct {
	ProgressForm
	InternReportForm
}

func (f *MidpointInternForm) ApplyTo(rec feedbackModel.Feedback) error {
	m, ok := rec.(*feedbackModel.MidpointInternFeedbackModel)
	if !ok {
		return wrongRecord(f, rec)
	}
	report, err := f.InternReportForm.toModel()
	if err != nil {
		return err
	}
	m.ProgressAnswers = f.ProgressForm.toModel()
	m.InternReport = report
	return nil
}

type FinalMentorForm struct {
	ProgressForm
	MentorReportForm
	SurveyForm

	MentoringRecommended string `form:"mentoring_recommended" json:"mentoring_recommended" validate:"required,oneof=yes no no_opinion"`
}

func (f *FinalMentorForm) ApplyTo(rec feedbackModel.Feedback) error {
	m, ok := rec.(*feedbackModel.FinalMentorFeedbackModel)
	if !ok {
		return wrongRecord(f, rec)
	}
	report, err := f.MentorReportForm.toModel()
	if err != nil {
		return err
	}
	m.ProgressAnswers = f.ProgressForm.toModel()
	m.MentorReport = report
	m.ProgramSurvey = f.SurveyForm.toModel()
	m.MentoringRecommended = feedbackModel.Opinion(f.MentoringRecommended)
	return nil
}

type FinalInternForm struct {
	ProgressForm
	InternReportForm
	SurveyForm

	InterningRecommended string `form:"interning_recommended" json:"interning_recommended" validate:"required,oneof=yes no no_opinion"`
	RecommendInternChat  string `form:"recommend_intern_chat" json:"recommend_intern_chat" validate:"required,oneof=yes no no_opinion"`
	ChatFrequency        string `form:"chat_frequency" json:"chat_frequency" validate:"required,oneof=week1 week2 week3 week4 week5 week6 never no_opinion"`
	TechIndustryPrep     string `form:"tech_industry_prep" json:"tech_industry_prep" validate:"required,oneof=yes no no_opinion"`
	FossConfidence       string `form:"foss_confidence" json:"foss_confidence" validate:"required,oneof=yes no no_opinion"`
}

func (f *FinalInternForm) ApplyTo(rec feedbackModel.Feedback) error {
	m, ok := rec.(*feedbackModel.FinalInternFeedbackModel)
	if !ok {
		return wrongRecord(f, rec)
	}
	report, err := f.InternReportForm.toModel()
	if err != nil {
		return err
	}
	m.ProgressAnswers = f.ProgressForm.toModel()
	m.InternReport = report
	m.ProgramSurvey = f.SurveyForm.toModel()
	m.InterningRecommended = feedbackModel.Opinion(f.InterningRecommended)
	m.RecommendInternChat = feedbackModel.Opinion(f.RecommendInternChat)
	m.ChatFrequency = feedbackModel.Cadence(f.ChatFrequency)
	m.TechIndustryPrep = feedbackModel.Opinion(f.TechIndustryPrep)
	m.FossConfidence = feedbackModel.Opinion(f.FossConfidence)
	return nil
}

func wrongRecord(f Form, rec feedbackModel.Feedback) error {
	return fmt.Errorf("form %T cannot fill %T", f, rec)
}

// NewForm returns an empty form for the given variant.
func NewForm(kind feedbackModel.Kind) (Form, error) {
	rec, err := feedbackModel.New(kind)
	if err != nil {
		return nil, err
	}
	switch rec.(type) {
	case *feedbackModel.InitialMentorFeedbackModel:
		return &InitialMentorForm{}, nil
	case *feedbackModel.InitialInternFeedbackModel:
		return &InitialInternForm{}, nil
	case *feedbackModel.MidpointMentorFeedbackModel:
		return &MidpointMentorForm{}, nil
	case *feedbackModel.MidpointInternFeedbackModel:
		return &MidpointInternForm{}, nil
	case *feedbackModel.FinalMentorFeedbackModel:
		return &FinalMentorForm{}, nil
	default:
		return &FinalInternForm{}, nil
	}
}
