package handlers

import (
	"net/http"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	auth *AuthHandler,
	quiz *QuizHandler,
	question *QuestionHandler,
	answer *AnswerHandler,
	task *TaskHandler,
	authMiddleware func(http.Handler) http.Handler,
	loggerMiddleware func(http.Handler) http.Handler,
) http.Handler {
	withAuth := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}

	api := http.NewServeMux()

	api.HandleFunc("POST /auth/register", auth.register)
	api.HandleFunc("POST /auth/login", auth.login)
	api.HandleFunc("POST /auth/refresh", auth.refresh)

	// Quiz lists are scoped to the acting user, single reads are open
	api.Handle("GET /quizzes", withAuth(quiz.list))
	api.Handle("POST /quizzes", withAuth(quiz.create))
	api.HandleFunc("GET /quizzes/{id}", quiz.get)
	api.Handle("DELETE /quizzes/{id}", withAuth(quiz.delete))

	api.HandleFunc("POST /quizzes/{quizID}/questions", question.create)
	api.HandleFunc("GET /questions/{id}", question.get)
	api.HandleFunc("DELETE /questions/{id}", question.delete)

	api.HandleFunc("POST /questions/{questionID}/answers", answer.create)
	api.HandleFunc("GET /answers/{id}", answer.get)

	// Task creation resolves the user itself, see TaskHandler.create
	api.HandleFunc("POST /tasks", task.create)
	api.HandleFunc("GET /groups/{groupID}/tasks", task.list)
	api.Handle("DELETE /tasks/{id}", withAuth(task.delete))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return chain(root, loggerMiddleware)
}
