package model

// View identifies the screen currently rendered.
type View int

// View constants. The first four are the pre-auth screens.
const (
	ViewLogin View = iota
	ViewSignup
	ViewAdminLogin
	ViewAdminSignup
	ViewSinglePrediction
	ViewCSVBatch
	ViewResults
	ViewAdminDashboard
)

var viewNames = map[View]string{
	ViewLogin:            "login",
	ViewSignup:           "signup",
	ViewAdminLogin:       "admin-login",
	ViewAdminSignup:      "admin-signup",
	ViewSinglePrediction: "single-prediction",
	ViewCSVBatch:         "csv-batch",
	ViewResults:          "results",
	ViewAdminDashboard:   "admin-dashboard",
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return "unknown"
}

// IsAuthView reports whether v is one of the pre-auth screens.
func (v View) IsAuthView() bool {
	return v >= ViewLogin && v <= ViewAdminSignup
}

// Tab is the active prediction tab for an authenticated user.
type Tab int

// Tab constants.
const (
	TabSinglePrediction Tab = iota
	TabCSVBatch
)

// View returns the form view the tab renders.
func (t Tab) View() View {
	if t == TabCSVBatch {
		return ViewCSVBatch
	}
	return ViewSinglePrediction
}

func (t Tab) String() string {
	if t == TabCSVBatch {
		return "csv"
	}
	return "single"
}

// AdminMenu is the dashboard's internal section selector.
type AdminMenu int

// AdminMenu constants.
const (
	MenuOverview AdminMenu = iota
	MenuUsers
	MenuPredictions
	MenuAnalytics
	MenuSettings
)

// AdminMenus lists the dashboard sections in display order.
var AdminMenus = []AdminMenu{MenuOverview, MenuUsers, MenuPredictions, MenuAnalytics, MenuSettings}

func (m AdminMenu) String() string {
	switch m {
	case MenuOverview:
		return "Overview"
	case MenuUsers:
		return "Users"
	case MenuPredictions:
		return "Predictions"
	case MenuAnalytics:
		return "Analytics"
	case MenuSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}
