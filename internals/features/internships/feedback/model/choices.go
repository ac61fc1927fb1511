package model

// Action is the mentor's requested administrative action.
type Action string

const (
	ActionPayAndContinue Action = "pay_and_continue"
	ActionTerminatePay   Action = "terminate_pay"
	ActionTerminateNoPay Action = "terminate_no_pay"
	ActionDontKnow       Action = "dont_know"
	ActionExtend1Week    Action = "ext_1_week"
	ActionExtend2Weeks   Action = "ext_2_week"
	ActionExtend3Weeks   Action = "ext_3_week"
	ActionExtend4Weeks   Action = "ext_4_week"
	ActionExtend5Weeks   Action = "ext_5_week"
)

var Actions = []Action{
	ActionPayAndContinue,
	ActionTerminatePay,
	ActionTerminateNoPay,
	ActionDontKnow,
	ActionExtend1Week,
	ActionExtend2Weeks,
	ActionExtend3Weeks,
	ActionExtend4Weeks,
	ActionExtend5Weeks,
}

// How often the intern asks for help or contributes.
type Frequency string

const (
	FrequencyMultipleDaily  Frequency = "multiple_daily"
	FrequencyOnceDaily      Frequency = "once_daily"
	FrequencyMultipleWeekly Frequency = "multiple_weekly"
	FrequencyOnceWeekly     Frequency = "once_weekly"
	FrequencyEveryTwoWeeks  Frequency = "every_two_weeks"
	FrequencyOnceMonthly    Frequency = "once_monthly"
	FrequencyNotApplicable  Frequency = "not_applicable"
)

// How long a response takes.
type ResponseTime string

const (
	Hours3                ResponseTime = "hours_3"
	Hours6                ResponseTime = "hours_6"
	Hours12               ResponseTime = "hours_12"
	Days1                 ResponseTime = "days_1"
	Days2                 ResponseTime = "days_2"
	Days4                 ResponseTime = "days_4"
	Days6                 ResponseTime = "days_6"
	ResponseLonger        ResponseTime = "longer"
	ResponseNotApplicable ResponseTime = "not_applicable"
)

// Weekly hours the intern reports working.
type HoursWorked string

const (
	HoursWorked20 HoursWorked = "hours_20"
	HoursWorked30 HoursWorked = "hours_30"
	HoursWorked40 HoursWorked = "hours_40"
	HoursWorked50 HoursWorked = "hours_50"
	HoursWorked60 HoursWorked = "hours_60"
)

type Opinion string

const (
	OpinionYes       Opinion = "yes"
	OpinionNo        Opinion = "no"
	OpinionNoOpinion Opinion = "no_opinion"
)

// Cadence for chats and blog posts, in weeks.
type Cadence string

const (
	CadenceWeek1     Cadence = "week1"
	CadenceWeek2     Cadence = "week2"
	CadenceWeek3     Cadence = "week3"
	CadenceWeek4     Cadence = "week4"
	CadenceWeek5     Cadence = "week5"
	CadenceWeek6     Cadence = "week6"
	CadenceNever     Cadence = "never"
	CadenceNoOpinion Cadence = "no_opinion"
)
