package session

import "github.com/pawansuthar6813/url-shortener/internal/model"

// Actions form a closed set; every state transition goes through reduce.
type action interface{ isAction() }

type setLoading struct{ v bool }
type loginSuccess struct{ user model.UserProfile }
type logoutAction struct{}
type setError struct{ msg string }
type clearError struct{}
type updateUser struct{ patch model.UserProfile }

func (setLoading) isAction()   {}
func (loginSuccess) isAction() {}
func (logoutAction) isAction() {}
func (setError) isAction()     {}
func (clearError) isAction()   {}
func (updateUser) isAction()   {}

// reduce is the pure transition function over one action. Unknown actions
// cannot occur: the action set is closed within this package.
func reduce(s State, a action) State {
	switch a := a.(type) {
	case setLoading:
		s.IsLoading = a.v
		return s

	case loginSuccess:
		u := a.user
		s.User = &u
		s.IsAuthenticated = true
		s.IsAdmin = u.IsAdmin()
		s.IsLoading = false
		s.Error = ""
		return s

	case logoutAction:
		out := initialState()
		out.IsLoading = false
		return out

	case setError:
		s.Error = a.msg
		s.IsLoading = false
		return s

	case clearError:
		s.Error = ""
		return s

	case updateUser:
		if s.User == nil {
			return s
		}
		merged := s.User.Merge(a.patch)
		s.User = &merged
		s.IsAdmin = merged.IsAdmin()
		return s
	}
	return s
}
