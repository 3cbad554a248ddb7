package storefront

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/chrisdamba/foodstore/internal/scheduler"
	"github.com/chrisdamba/foodstore/internal/session"
	"github.com/chrisdamba/foodstore/internal/validation"
)

// ErrSubmitting is returned when a form is submitted while its previous
// submit is still pending.
var ErrSubmitting = errors.New("form is already being submitted")

// AuthFlow drives the login or register form: validate, wait out the
// simulated delay, then sign the synthesized user in.
type AuthFlow struct {
	store     *session.Store
	sched     *scheduler.Scheduler
	event     string
	delay     time.Duration
	newForm   func() *validation.Form
	buildUser func(values map[string]string) models.User

	form       *validation.Form
	submitting bool
	completed  bool
}

func newAuthFlow(
	store *session.Store,
	sched *scheduler.Scheduler,
	event string,
	delay time.Duration,
	newForm func() *validation.Form,
	buildUser func(map[string]string) models.User,
) *AuthFlow {
	a := &AuthFlow{
		store:     store,
		sched:     sched,
		event:     event,
		delay:     delay,
		newForm:   newForm,
		buildUser: buildUser,
		form:      newForm(),
	}
	sched.Handle(event, a.complete)
	return a
}

func (a *AuthFlow) Form() *validation.Form {
	return a.form
}

func (a *AuthFlow) Submitting() bool {
	return a.submitting
}

// Change forwards a keystroke; it also clears a stale completion so the
// form is usable again.
func (a *AuthFlow) Change(field, value string) error {
	a.completed = false
	return a.form.Change(field, value)
}

func (a *AuthFlow) Blur(field string) error {
	return a.form.Blur(field)
}

// Submit validates the form and schedules the sign-in.
func (a *AuthFlow) Submit() (time.Time, error) {
	if a.submitting {
		return time.Time{}, ErrSubmitting
	}
	if err := a.form.Submit(); err != nil {
		return time.Time{}, err
	}
	due, err := a.sched.After(a.delay, a.event, a.form.Values())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to schedule %s: %w", a.event, err)
	}
	a.submitting = true
	a.completed = false
	return due, nil
}

func (a *AuthFlow) complete(event *models.Event) {
	values, _ := event.Data.(map[string]string)
	a.store.Login(a.buildUser(values))
	a.submitting = false
	a.completed = true
	a.form = a.newForm()
}

// Redirect is "/" once a submit has signed the user in.
func (a *AuthFlow) Redirect() string {
	if a.completed {
		return models.RouteHome
	}
	return ""
}

// loginUser names the shopper after the local part of their email, first
// letter upper-cased. The email is kept as typed.
func loginUser(values map[string]string) models.User {
	email := values[validation.FieldEmail]
	name, _, _ := strings.Cut(email, "@")
	if r, size := utf8.DecodeRuneInString(name); r != utf8.RuneError {
		name = string(unicode.ToUpper(r)) + name[size:]
	}
	return models.User{Name: name, Email: email}
}

func registerUser(values map[string]string) models.User {
	return models.User{
		Name:  strings.TrimSpace(values[validation.FieldName]),
		Email: strings.ToLower(strings.TrimSpace(values[validation.FieldEmail])),
	}
}
