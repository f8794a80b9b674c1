package submission

import (
	"net/http"

	"github.com/fieldpost/core/internal/middleware"
	"github.com/fieldpost/core/internal/modules/form"
	"github.com/fieldpost/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// BindRequest decodes the submission POST out of the gin context.
func BindRequest(c *gin.Context) (Request, error) {
	if err := c.Request.ParseForm(); err != nil {
		return Request{}, err
	}
	values := c.Request.PostForm

	return Request{
		FormID:    values.Get("contact-form-id"),
		Values:    values,
		IP:        c.ClientIP(),
		Referrer:  c.GetHeader("Referer"),
		SourceURL: c.GetHeader("Referer"),
		UserLabel: middleware.CurrentUserID(c),
		WantsJSON: c.Query("format") == "json",
	}, nil
}

// Dispatch offers the POST to each active form in turn. Forms that are not
// addressed by it step aside; the first one that reacts decides the response.
// When no form reacts the POST was for nobody and gets a 404.
func Dispatch(c *gin.Context, proc *Processor, forms []*form.Form, req Request) {
	for _, f := range forms {
		outcome, err := proc.Process(c.Request.Context(), f, req)
		if err != nil {
			response.BadGateway(c, err.Error())
			return
		}
		if outcome.Kind == OutcomeIgnored {
			continue
		}
		respond(c, outcome)
		return
	}
	response.NotFoundMsg(c, "no matching form")
}

func respond(c *gin.Context, outcome Outcome) {
	switch outcome.Kind {
	case OutcomeFieldErrors:
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"ok":      0,
			"code":    http.StatusUnprocessableEntity,
			"message": "validation failed",
			"errors":  outcome.FieldErrors,
		})
	case OutcomeSummary:
		response.OK(c, gin.H{
			"id":      outcome.FeedbackID,
			"summary": outcome.Summary,
		})
	case OutcomeRedirect:
		c.Redirect(http.StatusFound, outcome.RedirectURL)
	}
}
