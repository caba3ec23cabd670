package session

import "github.com/Veraticus/ckd-predict/internal/model"

// selectView decides which screen is rendered for the current state.
func selectView(identity model.Identity, authView model.View, tab model.Tab, hasResults bool) model.View {
	switch {
	case identity.IsAdmin():
		return model.ViewAdminDashboard
	case identity.IsUser():
		if hasResults {
			return model.ViewResults
		}
		return tab.View()
	default:
		if authView.IsAuthView() {
			return authView
		}
		return model.ViewLogin
	}
}
