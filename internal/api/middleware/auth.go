package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/api/handlers"
)

type ctxKey string

// UserIDKey ключ контекста с идентификатором пользователя
const UserIDKey ctxKey = "userID"

// Auth проверяет наличие заголовка X-User-ID и кладёт его в контекст запроса
// Аутентификацией занимается API gateway выше по стеку; здесь только
// доверенная передача идентификатора
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawUserID := r.Header.Get("X-User-ID")
		if rawUserID == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(rawUserID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext извлекает идентификатор пользователя из контекста
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
