package main

import (
	"net/http"

	"tinyviewers/proj/internal/lib/validator"
	"tinyviewers/proj/internal/services/feedback"
)

type submitFeedbackInput struct {
	Name    string `json:"name" validate:"omitempty,max=100"`
	Email   string `json:"email" validate:"omitempty,email"`
	Topic   string `json:"topic" validate:"required,max=120"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (app *Application) submitFeedback(w http.ResponseWriter, r *http.Request) {
	var input submitFeedbackInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := validator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	user := app.contextUser(r)
	if input.Name == "" {
		input.Name = user.Name
	}
	if input.Email == "" {
		input.Email = user.Email
	}
	reference := app.services.Feedback.Submit(feedback.Submission{
		Name:    input.Name,
		Email:   input.Email,
		Topic:   input.Topic,
		Message: input.Message,
	})
	app.Http.Accepted(w, r, envelop{"reference": reference}, "Thanks for your feedback!")
}
