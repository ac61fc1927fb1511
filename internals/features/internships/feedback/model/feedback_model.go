package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"internship_backend/internals/constants"
	"internship_backend/internals/helpers/dbtime"
)

// Kind identifies one feedback variant: a stage filled in by a role.
type Kind struct {
	Stage constants.Stage        `json:"stage"`
	Role  constants.FeedbackRole `json:"role"`
}

// String is the record type recorded in the audit trail, e.g. "initial_mentor_feedback".
func (k Kind) String() string {
	return fmt.Sprintf("%s_%s_feedback", k.Stage, k.Role)
}

// ParseKind reads a kind from path segments such as "midpoint" and "intern".
func ParseKind(stage, role string) (Kind, error) {
	st, err := constants.ParseStage(stage)
	if err != nil {
		return Kind{}, err
	}
	r, err := constants.ParseFeedbackRole(role)
	if err != nil {
		return Kind{}, err
	}
	return Kind{Stage: st, Role: r}, nil
}

// Feedback is implemented by every feedback record variant.
type Feedback interface {
	Kind() Kind
	Base() *FeedbackBase
	TableName() string
}

// MentorFeedback records also carry the derived administrative actions.
type MentorFeedback interface {
	Feedback
	Actions() *MentorActions
}

// FeedbackBase holds the columns shared by all variants. intern_selection_id is
// unique per table: at most one record per internship, stage and role.
type FeedbackBase struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	InternSelectionID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex;column:intern_selection_id" json:"intern_selection_id"`
	AllowEdits        bool       `gorm:"not null;default:false;column:allow_edits" json:"allow_edits"`
	SubmittedByUserID *uuid.UUID `gorm:"type:uuid;column:submitted_by_user_id" json:"submitted_by_user_id,omitempty"`
	CreatedAt         time.Time  `gorm:"not null;autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"not null;autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (b *FeedbackBase) Base() *FeedbackBase { return b }

func (b *FeedbackBase) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// MentorActions is derived from ActionsRequested when the form is accepted.
type MentorActions struct {
	ActionsRequested   Action       `gorm:"type:varchar(24);not null;column:actions_requested" json:"actions_requested"`
	PaymentApproved    bool         `gorm:"not null;default:false;column:payment_approved" json:"payment_approved"`
	RequestExtension   bool         `gorm:"not null;default:false;column:request_extension" json:"request_extension"`
	ExtensionDate      *dbtime.Date `gorm:"type:date;column:extension_date" json:"extension_date"`
	RequestTermination bool         `gorm:"not null;default:false;column:request_termination" json:"request_termination"`
}

func (a *MentorActions) Actions() *MentorActions { return a }

// MeetingAnswers are the yes/no questions asked at the initial stage.
type MeetingAnswers struct {
	MentorAnswersQuestions    bool `gorm:"not null;column:mentor_answers_questions" json:"mentor_answers_questions"`
	InternAsksQuestions       bool `gorm:"not null;column:intern_asks_questions" json:"intern_asks_questions"`
	MentorSupportWhenStuck    bool `gorm:"not null;column:mentor_support_when_stuck" json:"mentor_support_when_stuck"`
	MeetsPrivately            bool `gorm:"not null;column:meets_privately" json:"meets_privately"`
	MeetsOverPhoneOrVideoChat bool `gorm:"not null;column:meets_over_phone_or_video_chat" json:"meets_over_phone_or_video_chat"`
	InternMissedMeetings      bool `gorm:"not null;column:intern_missed_meetings" json:"intern_missed_meetings"`
	TalkAboutProjectProgress  bool `gorm:"not null;column:talk_about_project_progress" json:"talk_about_project_progress"`
	BlogCreated               bool `gorm:"not null;column:blog_created" json:"blog_created"`
}

// ProgressAnswers are the frequency questions asked at midpoint and final.
type ProgressAnswers struct {
	InternHelpRequestsFrequency    Frequency    `gorm:"type:varchar(24);not null;column:intern_help_requests_frequency" json:"intern_help_requests_frequency"`
	MentorHelpResponseTime         ResponseTime `gorm:"type:varchar(24);not null;column:mentor_help_response_time" json:"mentor_help_response_time"`
	InternContributionFrequency    Frequency    `gorm:"type:varchar(24);not null;column:intern_contribution_frequency" json:"intern_contribution_frequency"`
	MentorReviewResponseTime       ResponseTime `gorm:"type:varchar(24);not null;column:mentor_review_response_time" json:"mentor_review_response_time"`
	InternContributionRevisionTime ResponseTime `gorm:"type:varchar(24);not null;column:intern_contribution_revision_time" json:"intern_contribution_revision_time"`
}

// MentorReport is written by mentors at every stage.
type MentorReport struct {
	LastContact    dbtime.Date `gorm:"type:date;not null;column:last_contact" json:"last_contact"`
	FullTimeEffort bool        `gorm:"not null;column:full_time_effort" json:"full_time_effort"`
	ProgressReport string      `gorm:"type:text;not null;column:progress_report" json:"progress_report"`
	MentorsReport  string      `gorm:"type:text;not null;column:mentors_report" json:"mentors_report"`
}

// InternReport is written by interns at every stage.
type InternReport struct {
	LastContact    dbtime.Date `gorm:"type:date;not null;column:last_contact" json:"last_contact"`
	MentorSupport  string      `gorm:"type:text;not null;column:mentor_support" json:"mentor_support"`
	HoursWorked    HoursWorked `gorm:"type:varchar(16);not null;column:hours_worked" json:"hours_worked"`
	TimeComments   string      `gorm:"type:text;not null;default:'';column:time_comments" json:"time_comments"`
	ProgressReport string      `gorm:"type:text;not null;column:progress_report" json:"progress_report"`

	ShareMentorFeedbackWithCommunityCoordinator bool `gorm:"not null;column:share_mentor_feedback_with_community_coordinator" json:"share_mentor_feedback_with_community_coordinator"`
}

// ProgramSurvey is asked of both roles at the end of the internship.
type ProgramSurvey struct {
	BlogFrequency               Cadence `gorm:"type:varchar(16);not null;column:blog_frequency" json:"blog_frequency"`
	BlogPromptsCausedWriting    Opinion `gorm:"type:varchar(16);not null;column:blog_prompts_caused_writing" json:"blog_prompts_caused_writing"`
	BlogPromptsCausedOverhead   Opinion `gorm:"type:varchar(16);not null;column:blog_prompts_caused_overhead" json:"blog_prompts_caused_overhead"`
	RecommendBlogPrompts        Opinion `gorm:"type:varchar(16);not null;column:recommend_blog_prompts" json:"recommend_blog_prompts"`
	ZulipCausedInternDiscussion Opinion `gorm:"type:varchar(16);not null;column:zulip_caused_intern_discussion" json:"zulip_caused_intern_discussion"`
	ZulipCausedMentorDiscussion Opinion `gorm:"type:varchar(16);not null;column:zulip_caused_mentor_discussion" json:"zulip_caused_mentor_discussion"`
	RecommendZulip              Opinion `gorm:"type:varchar(16);not null;column:recommend_zulip" json:"recommend_zulip"`
	FeedbackForOrganizers       string  `gorm:"type:text;not null;column:feedback_for_organizers" json:"feedback_for_organizers"`
}

/* ===================== INITIAL ===================== */

type InitialMentorFeedbackModel struct {
	FeedbackBase
	MeetingAnswers
	MentorReport
	MentorActions
}

func (InitialMentorFeedbackModel) TableName() string { return "initial_mentor_feedbacks" }
func (*InitialMentorFeedbackModel) Kind() Kind {
	return Kind{Stage: constants.StageInitial, Role: constants.FeedbackByMentor}
}

type InitialInternFeedbackModel struct {
	FeedbackBase
	MeetingAnswers
	InternReport
}

func (InitialInternFeedbackModel) TableName() string { return "initial_intern_feedbacks" }
func (*InitialInternFeedbackModel) Kind() Kind {
	return Kind{Stage: constants.StageInitial, Role: constants.FeedbackByIntern}
}

/* ===================== MIDPOINT ===================== */

type MidpointMentorFeedbackModel struct {
	FeedbackBase
	ProgressAnswers
	MentorReport
	MentorActions
}

func (MidpointMentorFeedbackModel) TableName() string { return "midpoint_mentor_feedbacks" }
func (*MidpointMentorFeedbackModel) Kind() Kind {
	return Kind{Stage: constants.StageMidpoint, Role: constants.FeedbackByMentor}
}

type MidpointInternFeedbackModel struct {
	FeedbackBase
	ProgressAnswers
	InternReport
}

func (MidpointInternFeedbackModel) TableName() string { return "midpoint_intern_feedbacks" }
func (*MidpointInternFeedbackModel) Kind() Kind {
	return Kind{Stage: constants.StageMidpoint, Role: constants.FeedbackByIntern}
}

/* ===================== FINAL ===================== */

type FinalMentorFeedbackModel struct {
	FeedbackBase
	ProgressAnswers
	MentorReport
	MentorActions
	ProgramSurvey

	MentoringRecommended Opinion `gorm:"type:varchar(16);not null;column:mentoring_recommended" json:"mentoring_recommended"`
}

func (FinalMentorFeedbackModel) TableName() string { return "final_mentor_feedbacks" }
func (*FinalMentorFeedbackModel) Kind() Kind {
	return Kind{Stage: constants.StageFinal, Role: constants.FeedbackByMentor}
}

type FinalInternFeedbackModel struct {
	FeedbackBase
	ProgressAnswers
	InternReport
	ProgramSurvey

	InterningRecommended Opinion `gorm:"type:varchar(16);not null;column:interning_recommended" json:"interning_recommended"`
	RecommendInternChat  Opinion `gorm:"type:varchar(16);not null;column:recommend_intern_chat" json:"recommend_intern_chat"`
	ChatFrequency        Cadence `gorm:"type:varchar(16);not null;column:chat_frequency" json:"chat_frequency"`
	TechIndustryPrep     Opinion `gorm:"type:varchar(16);not null;column:tech_industry_prep" json:"tech_industry_prep"`
	FossConfidence       Opinion `gorm:"type:varchar(16);not null;column:foss_confidence" json:"foss_confidence"`
}

func (FinalInternFeedbackModel) TableName() string { return "final_intern_feedbacks" }
func (*FinalInternFeedbackModel) Kind() Kind {
	return Kind{Stage: constants.StageFinal, Role: constants.FeedbackByIntern}
}

// New returns an empty record of the given kind.
func New(kind Kind) (Feedback, error) {
	switch kind {
	case Kind{Stage: constants.StageInitial, Role: constants.FeedbackByMentor}:
		return &InitialMentorFeedbackModel{}, nil
	case Kind{Stage: constants.StageInitial, Role: constants.FeedbackByIntern}:
		return &InitialInternFeedbackModel{}, nil
	case Kind{Stage: constants.StageMidpoint, Role: constants.FeedbackByMentor}:
		return &MidpointMentorFeedbackModel{}, nil
	case Kind{Stage: constants.StageMidpoint, Role: constants.FeedbackByIntern}:
		return &MidpointInternFeedbackModel{}, nil
	case Kind{Stage: constants.StageFinal, Role: constants.FeedbackByMentor}:
		return &FinalMentorFeedbackModel{}, nil
	case Kind{Stage: constants.StageFinal, Role: constants.FeedbackByIntern}:
		return &FinalInternFeedbackModel{}, nil
	}
	return nil, fmt.Errorf("no feedback record for %s", kind)
}

// Kinds lists every variant, mentor before intern within a stage.
func Kinds() []Kind {
	out := make([]Kind, 0, len(constants.Stages)*len(constants.FeedbackRoles))
	for _, s := range constants.Stages {
		for _, r := range constants.FeedbackRoles {
			out = append(out, Kind{Stage: s, Role: r})
		}
	}
	return out
}

// AllModels is used by migrations.
func AllModels() []any {
	return []any{
		&InitialMentorFeedbackModel{},
		&InitialInternFeedbackModel{},
		&MidpointMentorFeedbackModel{},
		&MidpointInternFeedbackModel{},
		&FinalMentorFeedbackModel{},
		&FinalInternFeedbackModel{},
	}
}
