package feedback

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncExecutor struct{}

func (syncExecutor) Add(task func()) { task() }

type fakeMailer struct {
	recipient string
	tmplName  string
	data      any
	err       error
}

func (m *fakeMailer) Send(recipient string, tmplName string, tmplData any) error {
	m.recipient = recipient
	m.tmplName = tmplName
	m.data = tmplData
	return m.err
}

func TestSubmitSendsMailWithReference(t *testing.T) {
	mailer := &fakeMailer{}
	service := New(slog.Default(), mailer, syncExecutor{}, "support@tinyviewers.app")
	reference := service.Submit(Submission{
		Name:    "Jamie",
		Email:   "jamie@example.com",
		Topic:   "bug",
		Message: "the poster for movie 12 is missing",
	})
	_, err := uuid.Parse(reference)
	require.NoError(t, err)
	assert.Equal(t, "support@tinyviewers.app", mailer.recipient)
	assert.Equal(t, "feedback.tmpl", mailer.tmplName)
	data, ok := mailer.data.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, reference, data["Reference"])
	assert.Equal(t, "jamie@example.com", data["Email"])
}

func TestSubmitSwallowsDeliveryFailure(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp unreachable")}
	service := New(slog.Default(), mailer, syncExecutor{}, "support@tinyviewers.app")
	reference := service.Submit(Submission{Name: "x", Email: "x@example.com", Message: "y"})
	assert.NotEmpty(t, reference)
}
