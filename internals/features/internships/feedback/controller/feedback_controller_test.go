package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"internship_backend/internals/configs"
	"internship_backend/internals/constants"
	feedbackController "internship_backend/internals/features/internships/feedback/controller"
	feedbackModel "internship_backend/internals/features/internships/feedback/model"
	versionModel "internship_backend/internals/features/internships/feedback_versions/model"
	selectionModel "internship_backend/internals/features/internships/intern_selections/model"
	"internship_backend/internals/helpers/dbtime"
	"internship_backend/internals/testsupport"
)

var (
	initialDue = dbtime.NewDate(2026, time.June, 15)
	midDue     = dbtime.NewDate(2026, time.July, 20)
	finalDue   = dbtime.NewDate(2026, time.August, 24)
)

type env struct {
	db     *gorm.DB
	today  dbtime.Date
	intern testsupport.Participant
	mentor testsupport.Participant
	sel    *selectionModel.InternSelectionModel
}

func newEnv(t *testing.T, today dbtime.Date) *env {
	t.Helper()
	db := testsupport.OpenDB(t)
	r := testsupport.Round(t, db, initialDue, midDue, finalDue)
	e := &env{
		db:     db,
		today:  today,
		intern: testsupport.NewParticipant("ada"),
		mentor: testsupport.NewParticipant("grace"),
	}
	e.sel = testsupport.Selection(t, db, r, e.intern, e.mentor)
	return e
}

// app mounts the feedback routes for caller with the clock pinned to e.today.
func (e *env) app(caller testsupport.Participant, roles ...string) *fiber.App {
	ctl := feedbackController.NewFeedbackController(e.db)
	ctl.Service.Clock = testsupport.FixedClock(e.today)
	ctl.Service.Location = time.UTC

	admin := feedbackController.NewFeedbackAdminController(e.db)
	admin.Service.Clock = ctl.Service.Clock

	app := fiber.New()
	u := app.Group("/api/u", testsupport.AsUser(caller, roles...))
	u.Get("/dashboard", ctl.Dashboard)
	for _, st := range constants.Stages {
		u.Post("/feedback/"+string(st)+"/mentor/:username", ctl.SubmitMentor(st))
		u.Post("/feedback/"+string(st)+"/intern", ctl.SubmitIntern(st))
	}

	a := app.Group("/api/a", testsupport.AsUser(caller, roles...))
	a.Get("/feedback/:stage/:role/:selection_id", admin.Detail)
	a.Post("/feedback/:stage/:role/:selection_id/reopen", admin.Reopen)
	a.Get("/feedback/:stage/:role/:selection_id/versions", admin.Versions)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

// postForm sends an application/x-www-form-urlencoded body the way a browser form does.
func postForm(t *testing.T, app *fiber.App, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func finalProgressAndSurvey() url.Values {
	return url.Values{
		"intern_help_requests_frequency":    {"once_weekly"},
		"mentor_help_response_time":         {"hours_12"},
		"intern_contribution_frequency":     {"multiple_weekly"},
		"mentor_review_response_time":       {"days_1"},
		"intern_contribution_revision_time": {"days_2"},
		"blog_frequency":                    {"week2"},
		"blog_prompts_caused_writing":       {"yes"},
		"blog_prompts_caused_overhead":      {"no"},
		"recommend_blog_prompts":            {"yes"},
		"zulip_caused_intern_discussion":    {"no_opinion"},
		"zulip_caused_mentor_discussion":    {"no"},
		"recommend_zulip":                   {"yes"},
		"feedback_for_organizers":           {"more office hours"},
	}
}

func initialMentorBody(action string) map[string]any {
	return map[string]any{
		"mentor_answers_questions": true,
		"intern_asks_questions":    true,
		"meets_privately":          false,
		"blog_created":             true,
		"last_contact":             "2026-06-12",
		"full_time_effort":         true,
		"progress_report":          "first contribution merged",
		"mentors_report":           "weekly calls",
		"actions_requested":        action,
	}
}

func midpointInternBody() map[string]any {
	return map[string]any{
		"intern_help_requests_frequency":    "once_weekly",
		"mentor_help_response_time":         "hours_12",
		"intern_contribution_frequency":     "multiple_weekly",
		"mentor_review_response_time":       "days_2",
		"intern_contribution_revision_time": "days_1",
		"last_contact":                      "2026-07-18",
		"mentor_support":                    "helpful",
		"hours_worked":                      "hours_30",
		"progress_report":                   "halfway there",
	}
}

func (e *env) versionCount(t *testing.T, kind feedbackModel.Kind) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&versionModel.FeedbackVersionModel{}).
		Where("feedback_version_record_type = ?", kind.String()).
		Count(&n).Error)
	return n
}

func (e *env) recordCount(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Table(table).Count(&n).Error)
	return n
}

var initialMentor = feedbackModel.Kind{Stage: constants.StageInitial, Role: constants.FeedbackByMentor}

func TestMentorSubmitRedirectsToDashboard(t *testing.T) {
	e := newEnv(t, initialDue)
	app := e.app(e.mentor, constants.RoleMentor)

	resp, _ := do(t, app, fiber.MethodPost, "/api/u/feedback/initial/mentor/ada", initialMentorBody("ext_3_week"))
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, configs.DashboardPath, resp.Header.Get("Location"))

	var rec feedbackModel.InitialMentorFeedbackModel
	require.NoError(t, e.db.Where("intern_selection_id = ?", e.sel.InternSelectionID).Take(&rec).Error)
	assert.True(t, rec.MentorAnswersQuestions)
	assert.True(t, rec.InternAsksQuestions)
	assert.False(t, rec.MeetsPrivately)
	assert.True(t, rec.RequestExtension)
	assert.False(t, rec.PaymentApproved)
	require.NotNil(t, rec.ExtensionDate)
	assert.Equal(t, "2026-07-06", rec.ExtensionDate.String())
	require.NotNil(t, rec.SubmittedByUserID)
	assert.Equal(t, e.mentor.ID, *rec.SubmittedByUserID)
	assert.EqualValues(t, 1, e.versionCount(t, initialMentor))
}

func TestSecondSubmitIsForbidden(t *testing.T) {
	e := newEnv(t, initialDue)
	app := e.app(e.mentor)

	resp, _ := do(t, app, fiber.MethodPost, "/api/u/feedback/initial/mentor/ada", initialMentorBody("pay_and_continue"))
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp, body := do(t, app, fiber.MethodPost, "/api/u/feedback/initial/mentor/ada", initialMentorBody("terminate_no_pay"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["error_code"])
	assert.EqualValues(t, 1, e.versionCount(t, initialMentor))

	var rec feedbackModel.InitialMentorFeedbackModel
	require.NoError(t, e.db.Where("intern_selection_id = ?", e.sel.InternSelectionID).Take(&rec).Error)
	assert.Equal(t, feedbackModel.ActionPayAndContinue, rec.ActionsRequested)
}

func TestSubmitBeforeWindowIsForbidden(t *testing.T) {
	e := newEnv(t, initialDue.AddDays(-8))
	app := e.app(e.mentor)

	resp, _ := do(t, app, fiber.MethodPost, "/api/u/feedback/initial/mentor/ada", initialMentorBody("pay_and_continue"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// the gate answers before the form is looked at
	resp, _ = do(t, app, fiber.MethodPost, "/api/u/feedback/initial/mentor/ada", map[string]any{})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	assert.EqualValues(t, 0, e.recordCount(t, "initial_mentor_feedbacks"))
	assert.EqualValues(t, 0, e.versionCount(t, initialMentor))
}

func TestSubmitByNonMentorIsForbidden(t *testing.T) {
	e := newEnv(t, initialDue)
	stranger := testsupport.NewParticipant("mallory")

	resp, _ := do(t, e.app(stranger), fiber.MethodPost, "/api/u/feedback/initial/mentor/ada", initialMentorBody("pay_and_continue"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// interns cannot fill their mentor's form
	resp, _ = do(t, e.app(e.intern), fiber.MethodPost, "/api/u/feedback/initial/mentor/ada", initialMentorBody("pay_and_continue"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.EqualValues(t, 0, e.recordCount(t, "initial_mentor_feedbacks"))
}

func TestSubmitWithoutActiveInternshipIsNotFound(t *testing.T) {
	e := newEnv(t, initialDue)

	resp, _ := do(t, e.app(e.mentor), fiber.MethodPost, "/api/u/feedback/initial/mentor/nobody", initialMentorBody("pay_and_continue"))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, e.app(e.mentor), fiber.MethodPost, "/api/u/feedback/initial/intern", map[string]any{})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInvalidFormIsUnprocessable(t *testing.T) {
	e := newEnv(t, midDue)
	body := midpointInternBody()
	delete(body, "last_contact")
	body["hours_worked"] = "hours_90"

	resp, out := do(t, e.app(e.intern), fiber.MethodPost, "/api/u/feedback/midpoint/intern", body)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	errs, ok := out["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "last_contact")
	assert.Contains(t, errs, "hours_worked")
	assert.EqualValues(t, 0, e.recordCount(t, "midpoint_intern_feedbacks"))
}

func TestInternSubmit(t *testing.T) {
	e := newEnv(t, midDue)

	resp, _ := do(t, e.app(e.intern), fiber.MethodPost, "/api/u/feedback/midpoint/intern", midpointInternBody())
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	var rec feedbackModel.MidpointInternFeedbackModel
	require.NoError(t, e.db.Where("intern_selection_id = ?", e.sel.InternSelectionID).Take(&rec).Error)
	assert.Equal(t, feedbackModel.HoursWorked("hours_30"), rec.HoursWorked)
	assert.Equal(t, "2026-07-18", rec.LastContact.String())
	assert.False(t, rec.ShareMentorFeedbackWithCommunityCoordinator)
}

func TestDashboardEndpoint(t *testing.T) {
	e := newEnv(t, initialDue)

	resp, body := do(t, e.app(e.mentor), fiber.MethodGet, "/api/u/dashboard", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)
	cta := data[0].(map[string]any)
	assert.Equal(t, "Submit Initial Feedback", cta["label"])
	assert.Equal(t, "/api/u/feedback/initial/mentor/ada", cta["submit_path"])

	resp, _ = do(t, e.app(e.mentor), fiber.MethodPost, "/api/u/feedback/initial/mentor/ada", initialMentorBody("dont_know"))
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	_, body = do(t, e.app(e.mentor), fiber.MethodGet, "/api/u/dashboard", nil)
	assert.Empty(t, body["data"])
}

func TestAdminReopenAndVersions(t *testing.T) {
	e := newEnv(t, initialDue)
	organizer := testsupport.NewParticipant("sage")
	admin := e.app(organizer, constants.RoleOrganizer)
	mentor := e.app(e.mentor)
	base := "/api/a/feedback/initial/mentor/" + e.sel.InternSelectionID.String()

	resp, _ := do(t, admin, fiber.MethodGet, base, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, mentor, fiber.MethodPost, "/api/u/feedback/initial/mentor/ada", initialMentorBody("dont_know"))
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp, body := do(t, admin, fiber.MethodPost, base+"/reopen", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["data"].(map[string]any)["allow_edits"])

	resp, _ = do(t, mentor, fiber.MethodPost, "/api/u/feedback/initial/mentor/ada", initialMentorBody("pay_and_continue"))
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp, body = do(t, admin, fiber.MethodGet, base, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	detail := body["data"].(map[string]any)
	assert.Equal(t, false, detail["allow_edits"])
	assert.Equal(t, "pay_and_continue", detail["actions_requested"])
	assert.Equal(t, true, detail["payment_approved"])

	resp, body = do(t, admin, fiber.MethodGet, base+"/versions", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 2)
	assert.EqualValues(t, 2, body["pagination"].(map[string]any)["total"])

	resp, _ = do(t, admin, fiber.MethodGet, "/api/a/feedback/closing/mentor/"+e.sel.InternSelectionID.String(), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, _ = do(t, admin, fiber.MethodGet, "/api/a/feedback/initial/mentor/not-a-uuid", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestFinalMentorFormEncodedSubmit(t *testing.T) {
	e := newEnv(t, finalDue)
	form := finalProgressAndSurvey()
	form.Set("last_contact", "2026-08-20")
	form.Set("full_time_effort", "True")
	form.Set("progress_report", "feature merged upstream")
	form.Set("mentors_report", "would mentor again")
	form.Set("actions_requested", "ext_2_week")
	form.Set("mentoring_recommended", "yes")

	resp := postForm(t, e.app(e.mentor, constants.RoleMentor), "/api/u/feedback/final/mentor/ada", form)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, configs.DashboardPath, resp.Header.Get("Location"))

	var rec feedbackModel.FinalMentorFeedbackModel
	require.NoError(t, e.db.Where("intern_selection_id = ?", e.sel.InternSelectionID).Take(&rec).Error)
	assert.True(t, rec.FullTimeEffort)
	assert.Equal(t, "2026-08-20", rec.LastContact.String())
	assert.Equal(t, feedbackModel.FrequencyOnceWeekly, rec.InternHelpRequestsFrequency)
	assert.Equal(t, feedbackModel.OpinionYes, rec.RecommendZulip)
	assert.Equal(t, feedbackModel.OpinionYes, rec.MentoringRecommended)
	assert.Equal(t, "more office hours", rec.FeedbackForOrganizers)
	assert.True(t, rec.RequestExtension)
	assert.False(t, rec.PaymentApproved)
	require.NotNil(t, rec.ExtensionDate)
	assert.Equal(t, "2026-09-07", rec.ExtensionDate.String())

	final := feedbackModel.Kind{Stage: constants.StageFinal, Role: constants.FeedbackByMentor}
	assert.EqualValues(t, 1, e.versionCount(t, final))
}

func TestFinalInternFormEncodedSubmit(t *testing.T) {
	e := newEnv(t, finalDue)
	form := finalProgressAndSurvey()
	form.Set("last_contact", "2026-08-21")
	form.Set("mentor_support", "weekly pairing")
	form.Set("hours_worked", "hours_40")
	form.Set("progress_report", "done")
	form.Set("share_mentor_feedback_with_community_coordinator", "False")
	form.Set("interning_recommended", "yes")
	form.Set("recommend_intern_chat", "no_opinion")
	form.Set("chat_frequency", "week1")
	form.Set("tech_industry_prep", "yes")
	form.Set("foss_confidence", "no")

	resp := postForm(t, e.app(e.intern, constants.RoleIntern), "/api/u/feedback/final/intern", form)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	var rec feedbackModel.FinalInternFeedbackModel
	require.NoError(t, e.db.Where("intern_selection_id = ?", e.sel.InternSelectionID).Take(&rec).Error)
	assert.False(t, rec.ShareMentorFeedbackWithCommunityCoordinator)
	assert.Empty(t, rec.TimeComments)
	assert.Equal(t, feedbackModel.HoursWorked40, rec.HoursWorked)
	assert.Equal(t, feedbackModel.CadenceWeek1, rec.ChatFrequency)
	assert.Equal(t, feedbackModel.OpinionNo, rec.FossConfidence)
	assert.Equal(t, feedbackModel.OpinionNo, rec.ZulipCausedMentorDiscussion)
}

func TestFormEncodedValidationErrors(t *testing.T) {
	e := newEnv(t, finalDue)
	form := finalProgressAndSurvey()
	form.Del("recommend_zulip")
	form.Set("full_time_effort", "True")

	resp := postForm(t, e.app(e.mentor), "/api/u/feedback/final/mentor/ada", form)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	errs := out["errors"].(map[string]any)
	assert.Contains(t, errs, "recommend_zulip")
	assert.Contains(t, errs, "actions_requested")
	assert.EqualValues(t, 0, e.recordCount(t, "final_mentor_feedbacks"))
}

func TestJSONBooleansMustBeJSONBooleans(t *testing.T) {
	e := newEnv(t, initialDue)
	body := initialMentorBody("pay_and_continue")
	body["full_time_effort"] = "True"

	resp, _ := do(t, e.app(e.mentor), fiber.MethodPost, "/api/u/feedback/initial/mentor/ada", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.EqualValues(t, 0, e.recordCount(t, "initial_mentor_feedbacks"))
}
