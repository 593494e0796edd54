package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	browseMiddleware := standardMiddleware.Append(app.optionalAuth)
	authMiddleware := standardMiddleware.Append(app.requireAuth)

	mux := pat.New()

	// Tasks. The search route is registered before the :idOrSlug route so
	// pat does not swallow "search" as a task reference.
	mux.Get("/tasks/search", browseMiddleware.ThenFunc(app.taskHandler.SearchTasks))
	mux.Get("/tasks", browseMiddleware.ThenFunc(app.taskHandler.ListTasks))
	mux.Post("/tasks", authMiddleware.ThenFunc(app.taskHandler.CreateTask))
	mux.Get("/tasks/:idOrSlug", browseMiddleware.ThenFunc(app.taskHandler.GetTask))
	mux.Put("/tasks/:id", authMiddleware.ThenFunc(app.taskHandler.UpdateTask))
	mux.Del("/tasks/:id", authMiddleware.ThenFunc(app.taskHandler.DeleteTask))

	return mux
}
