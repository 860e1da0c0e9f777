package domain

// Session - явный контекст авторизации администратора.
// Передается через context.Context вместо глобального хранилища токена.
type Session struct {
	AccessToken string
}

// Authenticated сообщает, есть ли у сессии токен.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}
