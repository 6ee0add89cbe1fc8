// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/taibuivan/node/internal/gateway"
	"github.com/taibuivan/node/internal/platform/apperr"
	"github.com/taibuivan/node/internal/platform/requestutil"
	"github.com/taibuivan/node/internal/platform/view"
	"github.com/taibuivan/node/internal/report"
)

// ReportPage is the payload of the report template.
type ReportPage struct {
	Target  string
	Action  string
	Back    string
	State   report.State
	Reasons []report.Reason
}

// reportTarget binds the report flow to what is being reported.
type reportTarget struct {
	name   string
	action string
	submit func(reason report.Reason) error
}

func (handler *Handler) reportPost(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	handler.runReport(writer, request, postURL(id), reportTarget{
		name:   "post",
		action: postURL(id) + "/report",
		submit: func(reason report.Reason) error {
			return handler.backend.Report(request.Context(), id, string(reason))
		},
	})
}

func (handler *Handler) reportComment(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")
	commentID := requestutil.Param(request, "commentID")

	handler.runReport(writer, request, postURL(id), reportTarget{
		name:   "comment",
		action: postURL(id) + "/comments/" + url.PathEscape(commentID) + "/report",
		submit: func(reason report.Reason) error {
			return handler.backend.ReportComment(request.Context(), commentID, string(reason))
		},
	})
}

/*
runReport drives the report flow over form posts.

GET starts at the selecting phase. POST restores the phase and reason from
the form, applies the requested action, and renders the resulting phase.
The report is submitted to the backend on confirm, before the done phase is
shown; a backend failure keeps the visitor on the confirming phase.
*/
func (handler *Handler) runReport(writer http.ResponseWriter, request *http.Request, back string, target reportTarget) {
	page := ReportPage{
		Target:  target.name,
		Action:  target.action,
		Back:    back,
		State:   report.Start(),
		Reasons: report.Reasons,
	}

	if request.Method == http.MethodGet {
		handler.renderReport(writer, request, http.StatusOK, page, nil)
		return
	}

	if err := requestutil.ParseForm(writer, request); err != nil {
		handler.pages.Error(writer, request, err)
		return
	}

	// 1. Restore the flow from the untrusted form
	current := report.Restore(
		requestutil.FormValue(request, FieldPhase),
		requestutil.FormValue(request, FieldReason),
	)
	page.State = current

	// 2. Apply the transition
	next, err := current.Apply(requestutil.FormValue(request, FieldAction), current.Reason)
	switch {
	case errors.Is(err, report.ErrReasonRequired):
		handler.renderReport(writer, request, http.StatusBadRequest, page, apperr.ValidationError(
			"Choose a reason.", apperr.FieldError{Field: FieldReason, Message: "Choose a reason"},
		))
		return
	case err != nil:
		page.State = report.Start()
		handler.renderReport(writer, request, http.StatusBadRequest, page, apperr.BadRequest(gateway.MsgBadRequest))
		return
	}

	// 3. Submit on confirm
	if next.Phase == report.PhaseDone {
		if err := target.submit(next.Reason); err != nil {
			handler.renderReport(writer, request, gateway.Normalize(err).HTTPStatus, page, err)
			return
		}
	}

	page.State = next
	handler.renderReport(writer, request, http.StatusOK, page, nil)
}

func (handler *Handler) renderReport(writer http.ResponseWriter, request *http.Request, status int, page ReportPage, failure error) {
	data := view.Data{Title: "Report", Page: page}

	if failure != nil {
		appError := gateway.Normalize(failure)
		data.Flash = appError.Message
		if len(appError.Details) > 0 {
			data.Errors = map[string]string{appError.Details[0].Field: appError.Details[0].Message}
		}
	}

	handler.pages.Render(writer, request, status, view.PageReport, data)
}
